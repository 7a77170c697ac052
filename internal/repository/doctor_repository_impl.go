package repository

import (
	"errors"

	"medical-record/internal/domain/entity"
	domainRepo "medical-record/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type doctorRepository struct{}

func NewDoctorRepository() domainRepo.DoctorRepository {
	return &doctorRepository{}
}

func (r *doctorRepository) Create(db *gorm.DB, doctor *entity.Doctor) error {
	if err := db.Omit(clause.Associations).Create(doctor).Error; err != nil {
		return err
	}
	return r.linkSpecialties(db, doctor)
}

func (r *doctorRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Doctor, error) {
	return r.findOne(db.Where("id = ?", id))
}

func (r *doctorRepository) FindByUIN(db *gorm.DB, uin string) (*entity.Doctor, error) {
	return r.findOne(db.Where("uin = ?", uin))
}

func (r *doctorRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.Doctor, error) {
	return r.findOne(db.Where("user_id = ?", userID))
}

func (r *doctorRepository) findOne(q *gorm.DB) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := q.Preload("Specialties").First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) ExistsByUIN(db *gorm.DB, uin string, excludeID *uuid.UUID) (bool, error) {
	var count int64
	q := db.Model(&entity.Doctor{}).Where("uin = ?", uin)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *doctorRepository) FindAll(db *gorm.DB) ([]entity.Doctor, error) {
	return r.findMany(db)
}

func (r *doctorRepository) FindGPs(db *gorm.DB) ([]entity.Doctor, error) {
	return r.findMany(db.Where("is_gp = ?", true))
}

func (r *doctorRepository) FindBySpecialtyID(db *gorm.DB, specialtyID uuid.UUID) ([]entity.Doctor, error) {
	return r.findMany(db.
		Joins("JOIN doctor_specialties ON doctor_specialties.doctor_id = doctors.id").
		Where("doctor_specialties.specialty_id = ?", specialtyID))
}

func (r *doctorRepository) findMany(q *gorm.DB) ([]entity.Doctor, error) {
	var doctors []entity.Doctor
	err := q.Preload("Specialties").Order("doctors.name").Find(&doctors).Error
	if err != nil {
		return nil, err
	}
	return doctors, nil
}

func (r *doctorRepository) CountPatients(db *gorm.DB, id uuid.UUID) (int64, error) {
	var count int64
	err := db.Model(&entity.Patient{}).Where("gp_id = ?", id).Count(&count).Error
	return count, err
}

func (r *doctorRepository) Update(db *gorm.DB, doctor *entity.Doctor) error {
	if err := db.Omit(clause.Associations).Save(doctor).Error; err != nil {
		return err
	}
	if err := db.Where("doctor_id = ?", doctor.ID).Delete(&doctorSpecialty{}).Error; err != nil {
		return err
	}
	return r.linkSpecialties(db, doctor)
}

func (r *doctorRepository) linkSpecialties(db *gorm.DB, doctor *entity.Doctor) error {
	if len(doctor.Specialties) == 0 {
		return nil
	}
	links := make([]doctorSpecialty, 0, len(doctor.Specialties))
	for _, s := range doctor.Specialties {
		links = append(links, doctorSpecialty{DoctorID: doctor.ID, SpecialtyID: s.ID})
	}
	return db.Create(&links).Error
}

func (r *doctorRepository) Delete(db *gorm.DB, id uuid.UUID) error {
	if err := db.Model(&entity.Patient{}).Where("gp_id = ?", id).Update("gp_id", nil).Error; err != nil {
		return err
	}
	if err := db.Where("doctor_id = ?", id).Delete(&doctorSpecialty{}).Error; err != nil {
		return err
	}
	return db.Where("id = ?", id).Delete(&entity.Doctor{}).Error
}

func (r *doctorRepository) UnlinkUser(db *gorm.DB, userID uuid.UUID) error {
	return db.Model(&entity.Doctor{}).Where("user_id = ?", userID).Update("user_id", nil).Error
}
