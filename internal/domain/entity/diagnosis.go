package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Diagnosis is a coded diagnosis (e.g. ICD-10).
type Diagnosis struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Code        string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"code"`
	Name        string    `gorm:"type:varchar(200);not null" json:"name"`
	Description string    `gorm:"type:varchar(1000)" json:"description,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Diagnosis) TableName() string {
	return "diagnoses"
}

func NewDiagnosis(code, name, description string) (*Diagnosis, error) {
	d := &Diagnosis{ID: uuid.New()}
	if err := d.Revise(code, name, description); err != nil {
		return nil, err
	}
	return d, nil
}

// Revise validates all fields before mutating any of them.
func (d *Diagnosis) Revise(code, name, description string) error {
	code = strings.TrimSpace(code)
	name = strings.TrimSpace(name)
	if err := checkLength("code", code, 1, 20); err != nil {
		return err
	}
	if err := checkLength("name", name, 2, 200); err != nil {
		return err
	}
	if err := checkMaxLength("description", description, 1000); err != nil {
		return err
	}
	d.Code = code
	d.Name = name
	d.Description = description
	return nil
}
