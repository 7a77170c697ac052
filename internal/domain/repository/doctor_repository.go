package repository

import (
	"medical-record/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorRepository interface {
	Create(db *gorm.DB, doctor *entity.Doctor) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Doctor, error)
	FindByUIN(db *gorm.DB, uin string) (*entity.Doctor, error)
	FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.Doctor, error)
	ExistsByUIN(db *gorm.DB, uin string, excludeID *uuid.UUID) (bool, error)
	FindAll(db *gorm.DB) ([]entity.Doctor, error)
	FindGPs(db *gorm.DB) ([]entity.Doctor, error)
	FindBySpecialtyID(db *gorm.DB, specialtyID uuid.UUID) ([]entity.Doctor, error)
	// CountPatients counts the patients whose GP is the doctor.
	CountPatients(db *gorm.DB, id uuid.UUID) (int64, error)
	// Update saves scalar fields and replaces the specialty set.
	Update(db *gorm.DB, doctor *entity.Doctor) error
	// Delete detaches the doctor from patients and specialties, then removes it.
	Delete(db *gorm.DB, id uuid.UUID) error
	UnlinkUser(db *gorm.DB, userID uuid.UUID) error
}
