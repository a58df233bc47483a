package models

import "time"

type PlanModel struct {
	ID            uint   `gorm:"primaryKey"`
	SID           string `gorm:"uniqueIndex;size:32;not null"`
	Name          string `gorm:"uniqueIndex;size:100;not null"`
	Description   string `gorm:"type:text"`
	Price         int64  `gorm:"not null"`
	Currency      string `gorm:"size:10;not null;default:'USD'"`
	BillingCycle  string `gorm:"size:10;not null"`
	StripePriceID string `gorm:"size:128"`
	Visible       bool   `gorm:"not null;default:true;index"`
	Active        bool   `gorm:"not null;default:true;index"`
	SortOrder     int    `gorm:"not null;default:0"`
	Version       int    `gorm:"default:0"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (PlanModel) TableName() string {
	return "plans"
}
