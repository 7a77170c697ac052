package repository

import (
	"strings"

	"github.com/google/uuid"
)

// doctorSpecialty maps the many-to-many join table so its rows can be
// written and removed explicitly.
type doctorSpecialty struct {
	DoctorID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	SpecialtyID uuid.UUID `gorm:"type:uuid;primaryKey"`
}

func (doctorSpecialty) TableName() string {
	return "doctor_specialties"
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
