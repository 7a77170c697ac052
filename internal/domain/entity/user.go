package entity

import (
	"strings"
	"time"

	"medical-record/pkg/apperror"

	"github.com/google/uuid"
)

// User is an identity account. Doctor and Patient records point back to it.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username  string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	Password  string    `gorm:"type:text;not null" json:"-"`
	Role      Role      `gorm:"type:varchar(20);not null;index" json:"role"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// NewUser expects an already hashed password.
func NewUser(username, passwordHash string, role Role) (*User, error) {
	username = strings.TrimSpace(username)
	if err := checkLength("username", username, 3, 50); err != nil {
		return nil, err
	}
	if !role.IsValid() {
		return nil, apperror.Validation("unknown role %q", role)
	}
	if passwordHash == "" {
		return nil, apperror.Validation("password is required")
	}
	return &User{
		ID:       uuid.New(),
		Username: username,
		Password: passwordHash,
		Role:     role,
	}, nil
}
