package repository

import (
	"errors"

	"medical-record/internal/domain/entity"
	domainRepo "medical-record/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type examinationRepository struct{}

func NewExaminationRepository() domainRepo.ExaminationRepository {
	return &examinationRepository{}
}

func preloadExamination(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Patient").
		Preload("Doctor").
		Preload("Diagnosis").
		Preload("SickLeave")
}

func (r *examinationRepository) Create(db *gorm.DB, examination *entity.Examination) error {
	return db.Omit(clause.Associations).Create(examination).Error
}

func (r *examinationRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Examination, error) {
	var examination entity.Examination
	err := preloadExamination(db).Where("id = ?", id).First(&examination).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &examination, nil
}

func (r *examinationRepository) FindAll(db *gorm.DB) ([]entity.Examination, error) {
	return r.findMany(db.Order("examination_date DESC, id"))
}

func (r *examinationRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Examination, error) {
	return r.findMany(db.Where("patient_id = ?", patientID).Order("examination_date DESC, id"))
}

func (r *examinationRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.Examination, error) {
	return r.findMany(db.Where("doctor_id = ?", doctorID).Order("examination_date DESC, id"))
}

func (r *examinationRepository) FindInPeriod(db *gorm.DB, period entity.ExaminationPeriod) ([]entity.Examination, error) {
	q := db.Where("examination_date BETWEEN ? AND ?", period.From, period.To)
	if period.DoctorID != nil {
		q = q.Where("doctor_id = ?", *period.DoctorID).Order("examination_date")
	} else {
		q = q.Order("doctor_id").Order("examination_date")
	}
	return r.findMany(q)
}

func (r *examinationRepository) findMany(q *gorm.DB) ([]entity.Examination, error) {
	var examinations []entity.Examination
	err := preloadExamination(q).Find(&examinations).Error
	if err != nil {
		return nil, err
	}
	return examinations, nil
}

func (r *examinationRepository) CountByPatientID(db *gorm.DB, patientID uuid.UUID) (int64, error) {
	return r.countWhere(db, "patient_id = ?", patientID)
}

func (r *examinationRepository) CountByDoctorID(db *gorm.DB, doctorID uuid.UUID) (int64, error) {
	return r.countWhere(db, "doctor_id = ?", doctorID)
}

func (r *examinationRepository) CountByDiagnosisID(db *gorm.DB, diagnosisID uuid.UUID) (int64, error) {
	return r.countWhere(db, "diagnosis_id = ?", diagnosisID)
}

func (r *examinationRepository) countWhere(db *gorm.DB, cond string, arg any) (int64, error) {
	var count int64
	err := db.Model(&entity.Examination{}).Where(cond, arg).Count(&count).Error
	return count, err
}

func (r *examinationRepository) Update(db *gorm.DB, examination *entity.Examination) error {
	return db.Omit(clause.Associations).Save(examination).Error
}

func (r *examinationRepository) Delete(db *gorm.DB, id uuid.UUID) error {
	return db.Where("id = ?", id).Delete(&entity.Examination{}).Error
}
