package models

import "time"

type UserModel struct {
	ID            uint   `gorm:"primaryKey"`
	Email         string `gorm:"uniqueIndex;size:255;not null"`
	Username      string `gorm:"size:100;not null"`
	PasswordHash  string `gorm:"size:255;not null"`
	Role          string `gorm:"size:20;not null;default:'user'"`
	EmailVerified bool   `gorm:"not null;default:false"`
	// StripeCustomerID is unique so two racing subscribe calls cannot both
	// claim a customer. NULL rows do not collide under the unique index.
	StripeCustomerID     *string `gorm:"uniqueIndex;size:128"`
	StripeSubscriptionID *string `gorm:"size:128;index"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func (UserModel) TableName() string {
	return "users"
}
