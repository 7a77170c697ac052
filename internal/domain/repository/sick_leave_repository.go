package repository

import (
	"medical-record/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SickLeaveRepository interface {
	Create(db *gorm.DB, sickLeave *entity.SickLeave) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.SickLeave, error)
	FindByExaminationID(db *gorm.DB, examinationID uuid.UUID) (*entity.SickLeave, error)
	FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.SickLeave, error)
	FindAll(db *gorm.DB) ([]entity.SickLeave, error)
	Update(db *gorm.DB, sickLeave *entity.SickLeave) error
	Delete(db *gorm.DB, id uuid.UUID) error
	DeleteByExaminationID(db *gorm.DB, examinationID uuid.UUID) error
}
