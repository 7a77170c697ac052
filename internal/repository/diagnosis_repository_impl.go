package repository

import (
	"errors"

	"medical-record/internal/domain/entity"
	domainRepo "medical-record/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type diagnosisRepository struct{}

func NewDiagnosisRepository() domainRepo.DiagnosisRepository {
	return &diagnosisRepository{}
}

func (r *diagnosisRepository) Create(db *gorm.DB, diagnosis *entity.Diagnosis) error {
	return db.Create(diagnosis).Error
}

func (r *diagnosisRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Diagnosis, error) {
	var diagnosis entity.Diagnosis
	err := db.Where("id = ?", id).First(&diagnosis).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &diagnosis, nil
}

func (r *diagnosisRepository) FindByCode(db *gorm.DB, code string) (*entity.Diagnosis, error) {
	var diagnosis entity.Diagnosis
	err := db.Where("code = ?", code).First(&diagnosis).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &diagnosis, nil
}

func (r *diagnosisRepository) ExistsByCode(db *gorm.DB, code string, excludeID *uuid.UUID) (bool, error) {
	var count int64
	q := db.Model(&entity.Diagnosis{}).Where("code = ?", code)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// SearchByName matches a case-insensitive substring of the name.
func (r *diagnosisRepository) SearchByName(db *gorm.DB, name string) ([]entity.Diagnosis, error) {
	var diagnoses []entity.Diagnosis
	err := db.Where("LOWER(name) LIKE LOWER(?) ESCAPE '\\'", "%"+escapeLike(name)+"%").
		Order("code").
		Find(&diagnoses).Error
	if err != nil {
		return nil, err
	}
	return diagnoses, nil
}

func (r *diagnosisRepository) FindAll(db *gorm.DB) ([]entity.Diagnosis, error) {
	var diagnoses []entity.Diagnosis
	err := db.Order("code").Find(&diagnoses).Error
	if err != nil {
		return nil, err
	}
	return diagnoses, nil
}

func (r *diagnosisRepository) Update(db *gorm.DB, diagnosis *entity.Diagnosis) error {
	return db.Save(diagnosis).Error
}

func (r *diagnosisRepository) Delete(db *gorm.DB, id uuid.UUID) error {
	return db.Where("id = ?", id).Delete(&entity.Diagnosis{}).Error
}
