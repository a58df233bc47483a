package models

import "time"

// PaymentModel is one ledger row. Refund rows carry negative amounts and
// link back to the original charge via RefundOfPaymentID.
type PaymentModel struct {
	ID                    uint    `gorm:"primaryKey"`
	SID                   string  `gorm:"uniqueIndex;size:32;not null"`
	UserID                uint    `gorm:"index;not null"`
	SubscriptionID        *uint   `gorm:"index"`
	InvoiceID             *uint   `gorm:"index"`
	Amount                int64   `gorm:"not null"`
	Currency              string  `gorm:"size:10;not null;default:'USD'"`
	PaymentType           string  `gorm:"size:20;not null;index"`
	Status                string  `gorm:"size:20;not null;index"`
	PaymentMethod         string  `gorm:"size:20;not null"`
	StripePaymentIntentID *string `gorm:"size:128;index"`
	RefundReason          *string `gorm:"type:text"`
	RefundOfPaymentID     *uint   `gorm:"index"`
	Version               int     `gorm:"default:0"`
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

func (PaymentModel) TableName() string {
	return "payments"
}
