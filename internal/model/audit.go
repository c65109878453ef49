package model

import "time"

type AuditAction string

const (
	AuditCreate AuditAction = "create"
	AuditUpdate AuditAction = "update"
	AuditDelete AuditAction = "delete"
)

// AuditLog records who changed what. Writes are best-effort: a failed audit
// write is logged and swallowed, it never aborts the business operation.
type AuditLog struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	UserID     uint        `gorm:"not null;index" json:"user_id"`
	Username   string      `gorm:"type:varchar(50)" json:"username"`
	Action     AuditAction `gorm:"type:varchar(10);not null" json:"action"`
	EntityType string      `gorm:"type:varchar(30);not null;index" json:"entity_type"`
	EntityID   uint        `gorm:"not null" json:"entity_id"`
	EntityName string      `gorm:"type:varchar(255)" json:"entity_name"`
	OldData    *string     `gorm:"type:text" json:"old_data,omitempty"`
	NewData    *string     `gorm:"type:text" json:"new_data,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
}
