package models

import (
	"time"

	"gorm.io/gorm"
)

// BankAccount is a withdrawal destination. Withdrawals require a verified,
// active account; at most one default per user.
type BankAccount struct {
	ID                     uint   `gorm:"primaryKey" json:"id"`
	UserID                 uint   `gorm:"not null;index" json:"user_id"`
	GatewayBankAccountID   string `gorm:"size:100;not null;index" json:"-"`
	BankName               string `gorm:"size:100;not null" json:"bank_name"`
	AccountHolderName      string `gorm:"size:100;not null" json:"account_holder_name"`
	LastFour               string `gorm:"size:4" json:"last_four"`
	RoutingNumberLastFour  string `gorm:"size:4" json:"routing_number_last_four"`
	IsVerified             bool   `gorm:"not null;default:false" json:"is_verified"`
	IsDefault              bool   `gorm:"not null;default:false;index" json:"is_default"`
	IsActive               bool   `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (BankAccount) TableName() string {
	return "bank_accounts"
}
