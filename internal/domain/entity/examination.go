package entity

import (
	"time"

	"medical-record/pkg/apperror"

	"github.com/google/uuid"
)

var (
	ErrExaminationDateInFuture = apperror.Validation("examination date cannot be in the future")
	ErrExaminationPatientEmpty = apperror.Validation("examination requires a patient")
	ErrExaminationDoctorEmpty  = apperror.Validation("examination requires a doctor")
	ErrSickLeaveStartMissing   = apperror.Validation("sick leave requires a start date")
)

// Examination is a visit of a patient to a doctor. The doctor is fixed at
// creation; Revise never touches it.
type Examination struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ExaminationDate time.Time  `gorm:"type:date;not null;index" json:"examination_date"`
	PatientID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID        uuid.UUID  `gorm:"type:uuid;not null;index" json:"doctor_id"`
	DiagnosisID     *uuid.UUID `gorm:"type:uuid;index" json:"diagnosis_id,omitempty"`
	Treatment       string     `gorm:"type:varchar(2000)" json:"treatment,omitempty"`
	Prescription    string     `gorm:"type:varchar(1000)" json:"prescription,omitempty"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient   *Patient   `gorm:"foreignKey:PatientID;constraint:OnDelete:RESTRICT" json:"patient,omitempty"`
	Doctor    *Doctor    `gorm:"foreignKey:DoctorID;constraint:OnDelete:RESTRICT" json:"doctor,omitempty"`
	Diagnosis *Diagnosis `gorm:"foreignKey:DiagnosisID;constraint:OnDelete:RESTRICT" json:"diagnosis,omitempty"`
	SickLeave *SickLeave `gorm:"foreignKey:ExaminationID;constraint:OnDelete:CASCADE" json:"sick_leave,omitempty"`
}

func (Examination) TableName() string {
	return "examinations"
}

// SickLeavePeriod is the optional leave requested alongside an examination.
type SickLeavePeriod struct {
	StartDate    *time.Time
	NumberOfDays int
}

// IsEmpty reports whether no sick-leave field was supplied at all.
func (p *SickLeavePeriod) IsEmpty() bool {
	return p == nil || (p.StartDate == nil && p.NumberOfDays == 0)
}

func (p *SickLeavePeriod) validate() error {
	if p.StartDate == nil {
		return ErrSickLeaveStartMissing
	}
	if p.NumberOfDays < 1 {
		return ErrSickLeaveDaysInvalid
	}
	return nil
}

// NewExamination builds an examination for an already resolved patient,
// doctor and optional diagnosis. today bounds the examination date.
func NewExamination(date time.Time, patient *Patient, doctor *Doctor, diagnosis *Diagnosis, treatment, prescription string, today time.Time) (*Examination, error) {
	if doctor == nil {
		return nil, ErrExaminationDoctorEmpty
	}
	e := &Examination{ID: uuid.New()}
	if err := e.Revise(date, patient, diagnosis, treatment, prescription, today); err != nil {
		return nil, err
	}
	e.Doctor = doctor
	e.DoctorID = doctor.ID
	return e, nil
}

// Revise replaces everything except the doctor.
func (e *Examination) Revise(date time.Time, patient *Patient, diagnosis *Diagnosis, treatment, prescription string, today time.Time) error {
	if patient == nil {
		return ErrExaminationPatientEmpty
	}
	date = DateOf(date)
	if date.After(DateOf(today)) {
		return ErrExaminationDateInFuture
	}
	if err := checkMaxLength("treatment", treatment, 2000); err != nil {
		return err
	}
	if err := checkMaxLength("prescription", prescription, 1000); err != nil {
		return err
	}
	e.ExaminationDate = date
	e.Patient = patient
	e.PatientID = patient.ID
	e.Diagnosis = diagnosis
	if diagnosis != nil {
		e.DiagnosisID = &diagnosis.ID
	} else {
		e.DiagnosisID = nil
	}
	e.Treatment = treatment
	e.Prescription = prescription
	return nil
}

// ApplySickLeave creates the sick leave when absent and reschedules it in
// place otherwise. An empty period leaves any existing sick leave untouched.
// It returns true when a new sick leave was created.
func (e *Examination) ApplySickLeave(period *SickLeavePeriod) (bool, error) {
	if period.IsEmpty() {
		return false, nil
	}
	if err := period.validate(); err != nil {
		return false, err
	}
	if e.SickLeave != nil {
		return false, e.SickLeave.Reschedule(*period.StartDate, period.NumberOfDays)
	}
	sl, err := NewSickLeave(e.ID, *period.StartDate, period.NumberOfDays)
	if err != nil {
		return false, err
	}
	e.SickLeave = sl
	return true, nil
}
