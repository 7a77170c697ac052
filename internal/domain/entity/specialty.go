package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Specialty is a medical specialty a doctor may hold.
type Specialty struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Specialty) TableName() string {
	return "specialties"
}

func NewSpecialty(name string) (*Specialty, error) {
	s := &Specialty{ID: uuid.New()}
	if err := s.Rename(name); err != nil {
		return nil, err
	}
	return s, nil
}

// Rename validates and sets the specialty name.
func (s *Specialty) Rename(name string) error {
	name = strings.TrimSpace(name)
	if err := checkLength("name", name, 2, 100); err != nil {
		return err
	}
	s.Name = name
	return nil
}
