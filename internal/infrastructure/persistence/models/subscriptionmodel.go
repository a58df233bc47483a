package models

import (
	"time"

	"gorm.io/datatypes"
)

type SubscriptionModel struct {
	ID                   uint      `gorm:"primaryKey"`
	SID                  string    `gorm:"uniqueIndex;size:32;not null"`
	UserID               uint      `gorm:"index;not null"`
	PlanID               uint      `gorm:"index;not null"`
	Status               string    `gorm:"size:20;not null;index"`
	IsActive             bool      `gorm:"not null;default:false;index"`
	StartDate            time.Time `gorm:"not null"`
	EndDate              time.Time `gorm:"not null;index"`
	PaymentMethod        string    `gorm:"size:20;not null"`
	StripeSubscriptionID *string   `gorm:"size:128;index"`
	PaymentReference     *string   `gorm:"uniqueIndex;size:64"`
	ServiceSettings      datatypes.JSON
	Version              int `gorm:"default:0"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func (SubscriptionModel) TableName() string {
	return "subscriptions"
}
