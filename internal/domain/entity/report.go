package entity

import (
	"time"

	"github.com/google/uuid"
)

// Report rows. Each pairs a materialized entity with its metric.

type DiagnosisFrequency struct {
	Diagnosis Diagnosis
	Frequency int64
}

type DoctorPatientCount struct {
	Doctor       Doctor
	PatientCount int64
}

type DoctorExaminationCount struct {
	Doctor           Doctor
	ExaminationCount int64
}

type DoctorSickLeaveCount struct {
	Doctor         Doctor
	SickLeaveCount int64
}

type MonthSickLeaveCount struct {
	Month time.Month
	Year  int
	Count int64
}

type PatientExaminations struct {
	Patient      Patient
	Examinations []Examination
}

// IDCount is the raw shape of a grouped count query.
type IDCount struct {
	ID    uuid.UUID
	Count int64
}
