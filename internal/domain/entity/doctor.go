package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Doctor is a practitioner. Only doctors with IsGP set may be assigned as a
// patient's general practitioner.
type Doctor struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UIN       string     `gorm:"column:uin;type:varchar(20);uniqueIndex;not null" json:"uin"`
	Name      string     `gorm:"type:varchar(100);not null" json:"name"`
	IsGP      bool       `gorm:"column:is_gp;not null;index" json:"is_gp"`
	UserID    *uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"user_id,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User        *User       `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"-"`
	Specialties []Specialty `gorm:"many2many:doctor_specialties;constraint:OnDelete:CASCADE" json:"specialties,omitempty"`
}

func (Doctor) TableName() string {
	return "doctors"
}

func NewDoctor(uin, name string, isGP bool, specialties []Specialty) (*Doctor, error) {
	d := &Doctor{ID: uuid.New()}
	if err := d.Revise(uin, name, isGP, specialties); err != nil {
		return nil, err
	}
	return d, nil
}

// Revise validates and replaces every mutable attribute.
func (d *Doctor) Revise(uin, name string, isGP bool, specialties []Specialty) error {
	uin = strings.TrimSpace(uin)
	name = strings.TrimSpace(name)
	if err := checkLength("uin", uin, 6, 20); err != nil {
		return err
	}
	if err := checkLength("name", name, 2, 100); err != nil {
		return err
	}
	d.UIN = uin
	d.Name = name
	d.IsGP = isGP
	d.Specialties = specialties
	return nil
}

// LinkUser attaches the identity account that logs in as this doctor.
func (d *Doctor) LinkUser(userID uuid.UUID) {
	d.UserID = &userID
}
