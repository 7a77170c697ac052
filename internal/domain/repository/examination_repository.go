package repository

import (
	"medical-record/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ExaminationRepository reads always return the patient, doctor, diagnosis
// and sick leave preloaded.
type ExaminationRepository interface {
	Create(db *gorm.DB, examination *entity.Examination) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Examination, error)
	FindAll(db *gorm.DB) ([]entity.Examination, error)
	FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Examination, error)
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.Examination, error)
	// FindInPeriod orders by doctor id then date, or by date alone when the
	// period names a doctor.
	FindInPeriod(db *gorm.DB, period entity.ExaminationPeriod) ([]entity.Examination, error)
	CountByPatientID(db *gorm.DB, patientID uuid.UUID) (int64, error)
	CountByDoctorID(db *gorm.DB, doctorID uuid.UUID) (int64, error)
	CountByDiagnosisID(db *gorm.DB, diagnosisID uuid.UUID) (int64, error)
	Update(db *gorm.DB, examination *entity.Examination) error
	Delete(db *gorm.DB, id uuid.UUID) error
}
