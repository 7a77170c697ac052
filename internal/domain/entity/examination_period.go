package entity

import (
	"time"

	"medical-record/pkg/apperror"

	"github.com/google/uuid"
)

var ErrPeriodInverted = apperror.Validation("start date must not be after end date")

// ExaminationPeriod selects examinations whose date lies within [From, To]
// inclusive, optionally for a single doctor.
type ExaminationPeriod struct {
	From     time.Time
	To       time.Time
	DoctorID *uuid.UUID
}

func NewExaminationPeriod(from, to time.Time, doctorID *uuid.UUID) (ExaminationPeriod, error) {
	from, to = DateOf(from), DateOf(to)
	if from.After(to) {
		return ExaminationPeriod{}, ErrPeriodInverted
	}
	return ExaminationPeriod{From: from, To: to, DoctorID: doctorID}, nil
}
