package database

import "medical-record/internal/domain/entity"

// Models lists every persisted entity in dependency order, for gorm
// AutoMigrate on databases the SQL migrations do not target.
func Models() []any {
	return []any{
		&entity.User{},
		&entity.Specialty{},
		&entity.Diagnosis{},
		&entity.Doctor{},
		&entity.Patient{},
		&entity.Examination{},
		&entity.SickLeave{},
		&entity.AuditLog{},
	}
}
