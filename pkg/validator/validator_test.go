package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type address struct {
	City string `json:"city" validate:"required"`
}

type sample struct {
	Name    string   `json:"name" validate:"required,min=2"`
	EGN     string   `json:"egn" validate:"len=10,numeric"`
	Role    string   `json:"role" validate:"oneof=ADMIN DOCTOR PATIENT"`
	Date    string   `json:"examination_date" validate:"datetime=2006-01-02"`
	Days    int      `json:"days" validate:"gte=1,lte=365"`
	Address *address `json:"address" validate:"required"`
}

func valid() sample {
	return sample{
		Name:    "Ivan",
		EGN:     "8501011234",
		Role:    "DOCTOR",
		Date:    "2024-03-01",
		Days:    5,
		Address: &address{City: "Sofia"},
	}
}

func TestValidate(t *testing.T) {
	v := NewValidator()
	s := valid()
	assert.NoError(t, v.Validate(&s))
}

func TestFormatValidationErrors(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name   string
		mutate func(*sample)
		field  string
		want   string
	}{
		{"required", func(s *sample) { s.Name = "" }, "name", "name is required"},
		{"min", func(s *sample) { s.Name = "I" }, "name", "name must be at least 2 characters"},
		{"len", func(s *sample) { s.EGN = "123" }, "egn", "egn must be exactly 10 characters"},
		{"numeric", func(s *sample) { s.EGN = "85010112ab" }, "egn", "egn must contain only digits"},
		{"oneof", func(s *sample) { s.Role = "NURSE" }, "role", "role must be one of: ADMIN DOCTOR PATIENT"},
		{"datetime", func(s *sample) { s.Date = "01.03.2024" }, "examination_date", "examination_date must be a date in the format YYYY-MM-DD"},
		{"gte", func(s *sample) { s.Days = 0 }, "days", "days must be greater than or equal to 1"},
		{"nested", func(s *sample) { s.Address.City = "" }, "address.city", "address.city is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid()
			s.Address = &address{City: "Sofia"}
			tt.mutate(&s)

			err := v.Validate(&s)
			require.Error(t, err)
			assert.Equal(t, map[string]string{tt.field: tt.want}, v.FormatValidationErrors(err))
		})
	}
}
