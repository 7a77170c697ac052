package repository

import (
	"errors"

	"medical-record/internal/domain/entity"
	domainRepo "medical-record/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type sickLeaveRepository struct{}

func NewSickLeaveRepository() domainRepo.SickLeaveRepository {
	return &sickLeaveRepository{}
}

func (r *sickLeaveRepository) Create(db *gorm.DB, sickLeave *entity.SickLeave) error {
	return db.Create(sickLeave).Error
}

func (r *sickLeaveRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.SickLeave, error) {
	return r.findOne(db.Where("id = ?", id))
}

func (r *sickLeaveRepository) FindByExaminationID(db *gorm.DB, examinationID uuid.UUID) (*entity.SickLeave, error) {
	return r.findOne(db.Where("examination_id = ?", examinationID))
}

func (r *sickLeaveRepository) findOne(q *gorm.DB) (*entity.SickLeave, error) {
	var sickLeave entity.SickLeave
	err := q.First(&sickLeave).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sickLeave, nil
}

func (r *sickLeaveRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.SickLeave, error) {
	var sickLeaves []entity.SickLeave
	err := db.
		Joins("JOIN examinations ON examinations.id = sick_leaves.examination_id").
		Where("examinations.patient_id = ?", patientID).
		Order("sick_leaves.start_date DESC").
		Find(&sickLeaves).Error
	if err != nil {
		return nil, err
	}
	return sickLeaves, nil
}

func (r *sickLeaveRepository) FindAll(db *gorm.DB) ([]entity.SickLeave, error) {
	var sickLeaves []entity.SickLeave
	err := db.Order("start_date DESC").Find(&sickLeaves).Error
	if err != nil {
		return nil, err
	}
	return sickLeaves, nil
}

func (r *sickLeaveRepository) Update(db *gorm.DB, sickLeave *entity.SickLeave) error {
	return db.Save(sickLeave).Error
}

func (r *sickLeaveRepository) Delete(db *gorm.DB, id uuid.UUID) error {
	return db.Where("id = ?", id).Delete(&entity.SickLeave{}).Error
}

func (r *sickLeaveRepository) DeleteByExaminationID(db *gorm.DB, examinationID uuid.UUID) error {
	return db.Where("examination_id = ?", examinationID).Delete(&entity.SickLeave{}).Error
}
