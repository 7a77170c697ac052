package repository

import (
	"medical-record/internal/domain/entity"

	"gorm.io/gorm"
)

// ReportRepository runs the grouped count queries behind the reports. Rows
// come back already materialized.
type ReportRepository interface {
	MostFrequentDiagnoses(db *gorm.DB) ([]entity.DiagnosisFrequency, error)
	PatientCountPerGP(db *gorm.DB) ([]entity.DoctorPatientCount, error)
	ExaminationCountPerDoctor(db *gorm.DB) ([]entity.DoctorExaminationCount, error)
	DoctorsBySickLeaveCount(db *gorm.DB) ([]entity.DoctorSickLeaveCount, error)
	// SickLeaveCountsByMonth groups by the calendar month of the start date.
	SickLeaveCountsByMonth(db *gorm.DB) ([]entity.MonthSickLeaveCount, error)
}
