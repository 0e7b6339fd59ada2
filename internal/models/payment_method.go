package models

import (
	"time"

	"gorm.io/gorm"
)

// PaymentMethod is a stored charge source (card, PayPal) attached to the
// user's gateway customer. At most one default per user.
type PaymentMethod struct {
	ID               uint   `gorm:"primaryKey" json:"id"`
	UserID           uint   `gorm:"not null;index" json:"user_id"`
	GatewayMethodID  string `gorm:"size:100;not null;index" json:"-"`
	Type             string `gorm:"size:20;not null" json:"type"`
	LastFour         string `gorm:"size:4" json:"last_four"`
	Brand            string `gorm:"size:20" json:"brand"`
	IsDefault        bool   `gorm:"not null;default:false;index" json:"is_default"`
	IsActive         bool   `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (PaymentMethod) TableName() string {
	return "payment_methods"
}
