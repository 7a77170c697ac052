package repository

import (
	"medical-record/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PatientRepository interface {
	Create(db *gorm.DB, patient *entity.Patient) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Patient, error)
	FindByEGN(db *gorm.DB, egn string) (*entity.Patient, error)
	FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.Patient, error)
	ExistsByEGN(db *gorm.DB, egn string, excludeID *uuid.UUID) (bool, error)
	FindAll(db *gorm.DB) ([]entity.Patient, error)
	FindByGPID(db *gorm.DB, gpID uuid.UUID) ([]entity.Patient, error)
	// FindByDiagnosisID returns each patient examined with the diagnosis once.
	FindByDiagnosisID(db *gorm.DB, diagnosisID uuid.UUID) ([]entity.Patient, error)
	FindByIDs(db *gorm.DB, ids []uuid.UUID) ([]entity.Patient, error)
	Update(db *gorm.DB, patient *entity.Patient) error
	Delete(db *gorm.DB, id uuid.UUID) error
	UnlinkUser(db *gorm.DB, userID uuid.UUID) error
}
