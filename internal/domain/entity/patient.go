package entity

import (
	"strings"
	"time"

	"medical-record/pkg/apperror"

	"github.com/google/uuid"
)

// InsuranceValidityMonths is how far back the last insurance payment may lie.
const InsuranceValidityMonths = 6

// ErrGPNotEligible is returned when a non-GP doctor is assigned as a GP.
var ErrGPNotEligible = apperror.Validation("selected doctor is not a general practitioner")

// Patient is a person registered with the practice.
type Patient struct {
	ID                   uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name                 string     `gorm:"type:varchar(100);not null" json:"name"`
	EGN                  string     `gorm:"column:egn;type:char(10);uniqueIndex;not null" json:"egn"`
	LastInsurancePayment *time.Time `gorm:"type:date" json:"last_insurance_payment,omitempty"`
	GPID                 *uuid.UUID `gorm:"column:gp_id;type:uuid;index" json:"gp_id,omitempty"`
	UserID               *uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"user_id,omitempty"`
	CreatedAt            time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	GP   *Doctor `gorm:"foreignKey:GPID;constraint:OnDelete:SET NULL" json:"gp,omitempty"`
	User *User   `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"-"`
}

func (Patient) TableName() string {
	return "patients"
}

// NewPatient builds a patient; gp may be nil.
func NewPatient(name, egn string, lastInsurancePayment *time.Time, gp *Doctor) (*Patient, error) {
	p := &Patient{ID: uuid.New()}
	if err := p.Revise(name, egn, lastInsurancePayment, gp); err != nil {
		return nil, err
	}
	return p, nil
}

// Revise validates and replaces every mutable attribute, including the GP.
func (p *Patient) Revise(name, egn string, lastInsurancePayment *time.Time, gp *Doctor) error {
	name = strings.TrimSpace(name)
	if err := checkLength("name", name, 2, 100); err != nil {
		return err
	}
	if !egnPattern.MatchString(egn) {
		return apperror.Validation("egn must contain exactly 10 digits")
	}
	if err := CheckGPEligible(gp); err != nil {
		return err
	}
	p.Name = name
	p.EGN = egn
	if lastInsurancePayment != nil {
		d := DateOf(*lastInsurancePayment)
		p.LastInsurancePayment = &d
	} else {
		p.LastInsurancePayment = nil
	}
	p.GP = gp
	if gp != nil {
		p.GPID = &gp.ID
	} else {
		p.GPID = nil
	}
	return nil
}

// LinkUser attaches the identity account that logs in as this patient.
func (p *Patient) LinkUser(userID uuid.UUID) {
	p.UserID = &userID
}

// HasValidInsurance reports whether the last payment is strictly later than
// six months before today. A payment exactly six months ago is not valid.
func (p *Patient) HasValidInsurance(today time.Time) bool {
	return HasValidInsurance(p.LastInsurancePayment, today)
}

func HasValidInsurance(lastPayment *time.Time, today time.Time) bool {
	if lastPayment == nil {
		return false
	}
	return DateOf(*lastPayment).After(MinusMonths(today, InsuranceValidityMonths))
}

// CheckGPEligible accepts nil (no GP) or a doctor flagged as GP.
func CheckGPEligible(gp *Doctor) error {
	if gp != nil && !gp.IsGP {
		return ErrGPNotEligible
	}
	return nil
}
