package usecase

import (
	"errors"

	"medical-record/pkg/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrSpecialtyNotFound   = apperror.NotFound("specialty not found")
	ErrSpecialtyNameExists = apperror.Duplicate("specialty name already exists")

	ErrDiagnosisNotFound   = apperror.NotFound("diagnosis not found")
	ErrDiagnosisCodeExists = apperror.Duplicate("diagnosis code already exists")
	ErrDiagnosisInUse      = apperror.Validation("diagnosis is referenced by examinations")

	ErrDoctorNotFound        = apperror.NotFound("doctor not found")
	ErrUINAlreadyExists      = apperror.Duplicate("doctor UIN already exists")
	ErrDoctorHasExaminations = apperror.Validation("doctor has examinations and cannot be deleted")
	ErrGPNotFound            = apperror.NotFound("general practitioner not found")
	ErrDoctorHasGPPatients   = apperror.Validation("doctor is the GP of existing patients and must stay a GP")

	ErrPatientNotFound        = apperror.NotFound("patient not found")
	ErrEGNAlreadyExists       = apperror.Duplicate("patient EGN already exists")
	ErrPatientHasExaminations = apperror.Validation("patient has examinations and cannot be deleted")

	ErrExaminationNotFound = apperror.NotFound("examination not found")
	ErrNoDoctorForCaller   = apperror.Forbidden("no doctor is linked to the current user")
	ErrSickLeaveNotFound   = apperror.NotFound("sick leave not found")

	ErrUserNotFound         = apperror.NotFound("user not found")
	ErrUsernameExists       = apperror.Duplicate("username already exists")
	ErrInvalidCredentials   = apperror.Unauthorized("invalid username or password")
	ErrInvalidToken         = apperror.Unauthorized("invalid or expired token")
	ErrTokenRevoked         = apperror.Unauthorized("token has been revoked")
	ErrProfileAlreadyLinked = apperror.Duplicate("record is already linked to a user")

	ErrAuditLogNotFound  = apperror.NotFound("audit log not found")
	ErrInvalidDateFormat = apperror.Validation("invalid date format, use YYYY-MM-DD")
)

// isDuplicateKeyError reports a unique-constraint rejection, either already
// translated by gorm or as a raw PostgreSQL error (23505 unique_violation).
func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

// isForeignKeyError reports a foreign-key rejection (23503 foreign_key_violation).
func isForeignKeyError(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}
