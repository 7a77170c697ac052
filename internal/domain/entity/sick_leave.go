package entity

import (
	"time"

	"medical-record/pkg/apperror"

	"github.com/google/uuid"
)

var ErrSickLeaveDaysInvalid = apperror.Validation("sick leave must last at least 1 day")

// SickLeave is a leave certificate issued with exactly one examination.
// The end date is derived from the start date and the number of days.
type SickLeave struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ExaminationID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"examination_id"`
	StartDate     time.Time `gorm:"type:date;not null;index" json:"start_date"`
	NumberOfDays  int       `gorm:"not null" json:"number_of_days"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (SickLeave) TableName() string {
	return "sick_leaves"
}

func NewSickLeave(examinationID uuid.UUID, startDate time.Time, numberOfDays int) (*SickLeave, error) {
	s := &SickLeave{ID: uuid.New(), ExaminationID: examinationID}
	if err := s.Reschedule(startDate, numberOfDays); err != nil {
		return nil, err
	}
	return s, nil
}

// Reschedule replaces the leave period in place.
func (s *SickLeave) Reschedule(startDate time.Time, numberOfDays int) error {
	if numberOfDays < 1 {
		return ErrSickLeaveDaysInvalid
	}
	s.StartDate = DateOf(startDate)
	s.NumberOfDays = numberOfDays
	return nil
}

func (s *SickLeave) EndDate() time.Time {
	return SickLeaveEndDate(s.StartDate, s.NumberOfDays)
}

// SickLeaveEndDate returns the last day of leave: start + days - 1.
func SickLeaveEndDate(startDate time.Time, numberOfDays int) time.Time {
	return DateOf(startDate).AddDate(0, 0, numberOfDays-1)
}
