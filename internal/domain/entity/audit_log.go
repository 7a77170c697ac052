package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AuditLog is one entry of the clinical-record change trail. ActorID is not a
// foreign key: entries outlive the accounts that produced them.
type AuditLog struct {
	ID         int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	ActorID    *uuid.UUID `gorm:"type:uuid;index" json:"actor_id,omitempty"`
	Action     string     `gorm:"type:varchar(100);not null;index" json:"action"`
	EntityName string     `gorm:"type:varchar(50);not null;index" json:"entity"`
	EntityID   string     `gorm:"type:varchar(64);not null" json:"entity_id"`
	Metadata   JSON       `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt  time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// JSON type for GORM JSONB support
type JSON map[string]any

// Value returns json value, implement driver.Valuer interface
func (j JSON) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan scan value into Jsonb, implements sql.Scanner interface
func (j *JSON) Scan(value any) error {
	if value == nil {
		*j = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("failed to unmarshal JSONB value: %v", value)
	}

	result := map[string]any{}
	err := json.Unmarshal(bytes, &result)
	*j = JSON(result)
	return err
}

// Audit actions
const (
	AuditActionUserRegister      = "user.register"
	AuditActionUserDelete        = "user.delete"
	AuditActionSpecialtyCreate   = "specialty.create"
	AuditActionSpecialtyUpdate   = "specialty.update"
	AuditActionSpecialtyDelete   = "specialty.delete"
	AuditActionDiagnosisCreate   = "diagnosis.create"
	AuditActionDiagnosisUpdate   = "diagnosis.update"
	AuditActionDiagnosisDelete   = "diagnosis.delete"
	AuditActionDoctorCreate      = "doctor.create"
	AuditActionDoctorUpdate      = "doctor.update"
	AuditActionDoctorDelete      = "doctor.delete"
	AuditActionPatientCreate     = "patient.create"
	AuditActionPatientUpdate     = "patient.update"
	AuditActionPatientDelete     = "patient.delete"
	AuditActionExaminationCreate = "examination.create"
	AuditActionExaminationUpdate = "examination.update"
	AuditActionExaminationDelete = "examination.delete"
	AuditActionSickLeaveDelete   = "sick_leave.delete"
)

// AuditLogFilter narrows an audit listing. Zero values match everything.
type AuditLogFilter struct {
	EntityName string
	EntityID   string
	Limit      int
}
