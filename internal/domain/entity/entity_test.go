package entity

import (
	"errors"
	"testing"
	"time"

	"medical-record/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func datePtr(s string) *time.Time {
	d := date(s)
	return &d
}

func TestMinusMonths(t *testing.T) {
	tests := []struct {
		name string
		from string
		n    int
		want string
	}{
		{"same day", "2024-09-15", 6, "2024-03-15"},
		{"clamps to leap february", "2024-08-31", 6, "2024-02-29"},
		{"clamps to short february", "2023-08-31", 6, "2023-02-28"},
		{"crosses year", "2024-03-31", 6, "2023-09-30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, date(tt.want), MinusMonths(date(tt.from), tt.n))
		})
	}
}

func TestHasValidInsurance(t *testing.T) {
	today := date("2024-09-15")

	tests := []struct {
		name    string
		payment *time.Time
		want    bool
	}{
		{"no payment", nil, false},
		{"exactly six months ago", datePtr("2024-03-15"), false},
		{"one day inside window", datePtr("2024-03-16"), true},
		{"paid today", datePtr("2024-09-15"), true},
		{"long expired", datePtr("2023-01-01"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasValidInsurance(tt.payment, today))
		})
	}
}

func TestNewPatient(t *testing.T) {
	gp := &Doctor{IsGP: true}
	specialist := &Doctor{IsGP: false}

	t.Run("accepts GP", func(t *testing.T) {
		p, err := NewPatient("Georgi Dimitrov", "8501011234", datePtr("2024-01-01"), gp)
		require.NoError(t, err)
		assert.Equal(t, gp.ID, *p.GPID)
	})

	t.Run("accepts no GP", func(t *testing.T) {
		p, err := NewPatient("Georgi Dimitrov", "8501011234", nil, nil)
		require.NoError(t, err)
		assert.Nil(t, p.GPID)
	})

	t.Run("rejects non GP", func(t *testing.T) {
		_, err := NewPatient("Georgi Dimitrov", "8501011234", nil, specialist)
		assert.ErrorIs(t, err, ErrGPNotEligible)
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	})

	t.Run("rejects malformed EGN", func(t *testing.T) {
		for _, egn := range []string{"", "123", "12345678901", "85010112a4"} {
			_, err := NewPatient("Georgi Dimitrov", egn, nil, nil)
			assert.True(t, errors.Is(err, apperror.ErrValidation), egn)
		}
	})

	t.Run("rejects blank name", func(t *testing.T) {
		_, err := NewPatient("   ", "8501011234", nil, nil)
		assert.ErrorIs(t, err, apperror.ErrValidation)
	})
}

func TestPatientReviseKeepsStateOnError(t *testing.T) {
	p, err := NewPatient("Maria Ivanova", "9002025678", nil, nil)
	require.NoError(t, err)

	err = p.Revise("Maria Petrova", "9002025678", nil, &Doctor{IsGP: false})
	require.Error(t, err)
	assert.Equal(t, "Maria Ivanova", p.Name)
}

func TestSickLeave(t *testing.T) {
	t.Run("end date counts the start day", func(t *testing.T) {
		sl, err := NewSickLeave(uuid.New(), date("2024-05-10"), 5)
		require.NoError(t, err)
		assert.Equal(t, date("2024-05-14"), sl.EndDate())
	})

	t.Run("single day ends on start", func(t *testing.T) {
		assert.Equal(t, date("2024-05-10"), SickLeaveEndDate(date("2024-05-10"), 1))
	})

	t.Run("rejects less than one day", func(t *testing.T) {
		_, err := NewSickLeave(uuid.New(), date("2024-05-10"), 0)
		assert.ErrorIs(t, err, ErrSickLeaveDaysInvalid)
	})
}

func TestNewExamination(t *testing.T) {
	today := date("2024-06-01")
	patient := &Patient{Name: "Georgi Dimitrov"}
	doctor := &Doctor{Name: "Dr. Ivan Petrov"}

	t.Run("today is allowed", func(t *testing.T) {
		e, err := NewExamination(today, patient, doctor, nil, "rest", "", today)
		require.NoError(t, err)
		assert.Equal(t, doctor.ID, e.DoctorID)
		assert.Nil(t, e.DiagnosisID)
	})

	t.Run("future date is rejected", func(t *testing.T) {
		_, err := NewExamination(date("2024-06-02"), patient, doctor, nil, "", "", today)
		assert.ErrorIs(t, err, ErrExaminationDateInFuture)
	})

	t.Run("requires doctor and patient", func(t *testing.T) {
		_, err := NewExamination(today, patient, nil, nil, "", "", today)
		assert.ErrorIs(t, err, ErrExaminationDoctorEmpty)

		_, err = NewExamination(today, nil, doctor, nil, "", "", today)
		assert.ErrorIs(t, err, ErrExaminationPatientEmpty)
	})
}

func TestExaminationReviseKeepsDoctor(t *testing.T) {
	today := date("2024-06-01")
	doctor := &Doctor{Name: "Dr. Ivan Petrov"}
	e, err := NewExamination(today, &Patient{}, doctor, nil, "", "", today)
	require.NoError(t, err)
	original := e.DoctorID

	other := &Patient{Name: "Maria Ivanova"}
	diagnosis := &Diagnosis{Code: "I10"}
	require.NoError(t, e.Revise(date("2024-05-20"), other, diagnosis, "diet", "", today))

	assert.Equal(t, original, e.DoctorID)
	assert.Equal(t, other.ID, e.PatientID)
	assert.Equal(t, diagnosis.ID, *e.DiagnosisID)
	assert.Equal(t, date("2024-05-20"), e.ExaminationDate)
}

func TestApplySickLeave(t *testing.T) {
	today := date("2024-06-01")
	newExam := func(t *testing.T) *Examination {
		e, err := NewExamination(today, &Patient{}, &Doctor{}, nil, "", "", today)
		require.NoError(t, err)
		return e
	}

	t.Run("empty period is ignored", func(t *testing.T) {
		e := newExam(t)
		created, err := e.ApplySickLeave(&SickLeavePeriod{})
		require.NoError(t, err)
		assert.False(t, created)
		assert.Nil(t, e.SickLeave)

		created, err = e.ApplySickLeave(nil)
		require.NoError(t, err)
		assert.False(t, created)
	})

	t.Run("partial period is invalid", func(t *testing.T) {
		e := newExam(t)
		_, err := e.ApplySickLeave(&SickLeavePeriod{NumberOfDays: 3})
		assert.ErrorIs(t, err, ErrSickLeaveStartMissing)

		_, err = e.ApplySickLeave(&SickLeavePeriod{StartDate: datePtr("2024-06-01")})
		assert.ErrorIs(t, err, ErrSickLeaveDaysInvalid)
	})

	t.Run("creates then reschedules in place", func(t *testing.T) {
		e := newExam(t)
		created, err := e.ApplySickLeave(&SickLeavePeriod{StartDate: datePtr("2024-06-01"), NumberOfDays: 3})
		require.NoError(t, err)
		assert.True(t, created)
		id := e.SickLeave.ID
		assert.Equal(t, e.ID, e.SickLeave.ExaminationID)

		created, err = e.ApplySickLeave(&SickLeavePeriod{StartDate: datePtr("2024-06-02"), NumberOfDays: 7})
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, id, e.SickLeave.ID)
		assert.Equal(t, 7, e.SickLeave.NumberOfDays)
		assert.Equal(t, date("2024-06-08"), e.SickLeave.EndDate())
	})
}

func TestNewExaminationPeriod(t *testing.T) {
	_, err := NewExaminationPeriod(date("2024-06-02"), date("2024-06-01"), nil)
	assert.ErrorIs(t, err, ErrPeriodInverted)

	p, err := NewExaminationPeriod(date("2024-06-01"), date("2024-06-01"), nil)
	require.NoError(t, err)
	assert.Equal(t, p.From, p.To)
}

func TestNewUser(t *testing.T) {
	_, err := NewUser("doctor1", "hash", RoleDoctor)
	require.NoError(t, err)

	_, err = NewUser("doctor1", "hash", Role("NURSE"))
	assert.ErrorIs(t, err, apperror.ErrValidation)

	_, err = NewUser("ab", "hash", RolePatient)
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestCallerNilSafety(t *testing.T) {
	var c *Caller
	assert.False(t, c.IsAdmin())
	assert.False(t, c.HasRole(RoleAdmin, RoleDoctor))
	_, ok := c.LinkedDoctorID()
	assert.False(t, ok)
}
