package repository

import (
	"errors"

	"medical-record/internal/domain/entity"
	domainRepo "medical-record/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type patientRepository struct{}

func NewPatientRepository() domainRepo.PatientRepository {
	return &patientRepository{}
}

func (r *patientRepository) Create(db *gorm.DB, patient *entity.Patient) error {
	return db.Omit(clause.Associations).Create(patient).Error
}

func (r *patientRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Patient, error) {
	return r.findOne(db.Where("id = ?", id))
}

func (r *patientRepository) FindByEGN(db *gorm.DB, egn string) (*entity.Patient, error) {
	return r.findOne(db.Where("egn = ?", egn))
}

func (r *patientRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.Patient, error) {
	return r.findOne(db.Where("user_id = ?", userID))
}

func (r *patientRepository) findOne(q *gorm.DB) (*entity.Patient, error) {
	var patient entity.Patient
	err := q.Preload("GP").First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) ExistsByEGN(db *gorm.DB, egn string, excludeID *uuid.UUID) (bool, error) {
	var count int64
	q := db.Model(&entity.Patient{}).Where("egn = ?", egn)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *patientRepository) FindAll(db *gorm.DB) ([]entity.Patient, error) {
	return r.findMany(db)
}

func (r *patientRepository) FindByGPID(db *gorm.DB, gpID uuid.UUID) ([]entity.Patient, error) {
	return r.findMany(db.Where("gp_id = ?", gpID))
}

func (r *patientRepository) FindByDiagnosisID(db *gorm.DB, diagnosisID uuid.UUID) ([]entity.Patient, error) {
	examined := db.Model(&entity.Examination{}).Select("patient_id").Where("diagnosis_id = ?", diagnosisID)
	return r.findMany(db.Where("id IN (?)", examined))
}

func (r *patientRepository) FindByIDs(db *gorm.DB, ids []uuid.UUID) ([]entity.Patient, error) {
	if len(ids) == 0 {
		return []entity.Patient{}, nil
	}
	return r.findMany(db.Where("id IN ?", ids))
}

func (r *patientRepository) findMany(q *gorm.DB) ([]entity.Patient, error) {
	var patients []entity.Patient
	err := q.Preload("GP").Order("name").Find(&patients).Error
	if err != nil {
		return nil, err
	}
	return patients, nil
}

func (r *patientRepository) Update(db *gorm.DB, patient *entity.Patient) error {
	return db.Omit(clause.Associations).Save(patient).Error
}

func (r *patientRepository) Delete(db *gorm.DB, id uuid.UUID) error {
	return db.Where("id = ?", id).Delete(&entity.Patient{}).Error
}

func (r *patientRepository) UnlinkUser(db *gorm.DB, userID uuid.UUID) error {
	return db.Model(&entity.Patient{}).Where("user_id = ?", userID).Update("user_id", nil).Error
}
