package entity

import "github.com/google/uuid"

// Caller is the identity of whoever invokes an operation, as resolved from
// the identity subsystem. A nil *Caller means an anonymous caller.
type Caller struct {
	UserID    uuid.UUID
	Role      Role
	DoctorID  *uuid.UUID
	PatientID *uuid.UUID
}

func (c *Caller) IsAdmin() bool {
	return c != nil && c.Role == RoleAdmin
}

func (c *Caller) HasRole(roles ...Role) bool {
	if c == nil {
		return false
	}
	for _, r := range roles {
		if c.Role == r {
			return true
		}
	}
	return false
}

// LinkedDoctorID returns the caller's own doctor record id, if any.
func (c *Caller) LinkedDoctorID() (uuid.UUID, bool) {
	if c == nil || c.DoctorID == nil {
		return uuid.Nil, false
	}
	return *c.DoctorID, true
}

func (c *Caller) LinkedPatientID() (uuid.UUID, bool) {
	if c == nil || c.PatientID == nil {
		return uuid.Nil, false
	}
	return *c.PatientID, true
}
