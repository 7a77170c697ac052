package repository

import (
	"medical-record/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DiagnosisRepository interface {
	Create(db *gorm.DB, diagnosis *entity.Diagnosis) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Diagnosis, error)
	FindByCode(db *gorm.DB, code string) (*entity.Diagnosis, error)
	ExistsByCode(db *gorm.DB, code string, excludeID *uuid.UUID) (bool, error)
	SearchByName(db *gorm.DB, name string) ([]entity.Diagnosis, error)
	FindAll(db *gorm.DB) ([]entity.Diagnosis, error)
	Update(db *gorm.DB, diagnosis *entity.Diagnosis) error
	Delete(db *gorm.DB, id uuid.UUID) error
}
