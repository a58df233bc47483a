package models

import (
	"time"

	"gorm.io/datatypes"
)

// AuditEntryModel rows are append-only; there is no UpdatedAt on purpose.
type AuditEntryModel struct {
	ID         uint   `gorm:"primaryKey"`
	UserID     uint   `gorm:"index;not null"`
	Action     string `gorm:"size:64;not null;index"`
	EntityType string `gorm:"size:32;not null"`
	EntityID   string `gorm:"size:64;index"`
	Details    datatypes.JSON
	CreatedAt  time.Time `gorm:"index"`
}

func (AuditEntryModel) TableName() string {
	return "audit_entries"
}
