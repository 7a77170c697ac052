package repository

import (
	"medical-record/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(db *gorm.DB, user *entity.User) error
	FindByUsername(db *gorm.DB, username string) (*entity.User, error)
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error)
	ExistsByUsername(db *gorm.DB, username string) (bool, error)
	FindAll(db *gorm.DB) ([]entity.User, error)
	Count(db *gorm.DB) (int64, error)
	Delete(db *gorm.DB, id uuid.UUID) error
}
