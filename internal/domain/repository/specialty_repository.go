package repository

import (
	"medical-record/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SpecialtyRepository interface {
	Create(db *gorm.DB, specialty *entity.Specialty) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Specialty, error)
	FindByIDs(db *gorm.DB, ids []uuid.UUID) ([]entity.Specialty, error)
	FindByName(db *gorm.DB, name string) (*entity.Specialty, error)
	ExistsByName(db *gorm.DB, name string, excludeID *uuid.UUID) (bool, error)
	FindAll(db *gorm.DB) ([]entity.Specialty, error)
	Update(db *gorm.DB, specialty *entity.Specialty) error
	// Delete removes the specialty together with its doctor links.
	Delete(db *gorm.DB, id uuid.UUID) error
}
