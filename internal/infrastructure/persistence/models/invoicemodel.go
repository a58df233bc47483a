package models

import "time"

type InvoiceModel struct {
	ID            uint   `gorm:"primaryKey"`
	UserID        uint   `gorm:"index;not null"`
	InvoiceNumber string `gorm:"uniqueIndex;size:32;not null"`
	Status        string `gorm:"size:20;not null;index"`
	Version       int    `gorm:"default:0"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (InvoiceModel) TableName() string {
	return "invoices"
}
