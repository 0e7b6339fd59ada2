package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// WalletTransaction is the append-only log of balance-affecting operations.
// Rows are created pending and terminate in exactly one of completed, failed,
// cancelled or refunded; terminal rows are never mutated again except for the
// single completed -> refunded edge driven by the refund operation.
type WalletTransaction struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	WalletID uint   `gorm:"not null;index" json:"wallet_id"`
	Type     string `gorm:"column:transaction_type;size:20;not null;index" json:"transaction_type"`

	Amount      decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"amount"`
	Status      string          `gorm:"size:20;not null;index;default:'pending'" json:"status"`
	Description string          `gorm:"type:text" json:"description"`

	// Gateway references: the charge/payout intent created at initiation and
	// the settlement reference delivered by the confirmation webhook.
	GatewayIntentID string `gorm:"size:100;index" json:"gateway_intent_id,omitempty"`
	GatewayChargeID string `gorm:"size:100" json:"gateway_charge_id,omitempty"`

	PaymentMethodID *uint   `gorm:"index" json:"payment_method_id,omitempty"`
	TradeID         *string `gorm:"size:36;index" json:"trade_id,omitempty"`

	PlatformFee  decimal.Decimal `gorm:"type:numeric(8,2);not null;default:0" json:"platform_fee"`
	ProcessorFee decimal.Decimal `gorm:"type:numeric(8,2);not null;default:0" json:"processor_fee"`

	// Snapshots of the wallet's available balance at creation and completion.
	BalanceBefore decimal.NullDecimal `gorm:"type:numeric(10,2)" json:"balance_before"`
	BalanceAfter  decimal.NullDecimal `gorm:"type:numeric(10,2)" json:"balance_after"`

	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	CompletedAt *time.Time     `json:"completed_at,omitempty"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Wallet Wallet `gorm:"foreignKey:WalletID" json:"-"`
}

func (WalletTransaction) TableName() string {
	return "wallet_transactions"
}

// NetAmount is the transaction amount minus platform and processor fees.
func (t *WalletTransaction) NetAmount() decimal.Decimal {
	return t.Amount.Sub(t.PlatformFee).Sub(t.ProcessorFee)
}
