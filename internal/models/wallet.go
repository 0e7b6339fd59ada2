package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"swapyard/internal/domain"
)

// Wallet holds a user's balances. One wallet per user, created lazily on the
// first financial operation and never deleted (soft-retained for audit).
// Balances are only ever mutated through the wallet service so that every
// change is paired with exactly one WalletTransaction row.
type Wallet struct {
	ID                uint   `gorm:"primaryKey" json:"id"`
	UserID            uint   `gorm:"uniqueIndex;not null" json:"user_id"`
	GatewayCustomerID string `gorm:"size:100;index" json:"-"`

	AvailableBalance decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0" json:"available_balance"`
	EscrowBalance    decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0" json:"escrow_balance"`

	// Lifetime counters, monotonically non-decreasing.
	TotalDeposited    decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"total_deposited"`
	TotalWithdrawn    decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"total_withdrawn"`
	TotalShippingPaid decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0" json:"total_shipping_paid"`

	WithdrawalLimitDaily   decimal.Decimal `gorm:"type:numeric(8,2);not null;default:1000" json:"withdrawal_limit_daily"`
	WithdrawalLimitMonthly decimal.Decimal `gorm:"type:numeric(10,2);not null;default:10000" json:"withdrawal_limit_monthly"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Wallet) TableName() string {
	return "wallets"
}

// TotalBalance is available plus escrow.
func (w *Wallet) TotalBalance() decimal.Decimal {
	return w.AvailableBalance.Add(w.EscrowBalance)
}

// CanWithdraw reports whether amount can be taken from the available balance.
func (w *Wallet) CanWithdraw(amount decimal.Decimal) bool {
	return amount.LessThanOrEqual(w.AvailableBalance)
}

// CanEscrow reports whether amount can be moved from available into escrow.
func (w *Wallet) CanEscrow(amount decimal.Decimal) bool {
	return amount.LessThanOrEqual(w.AvailableBalance)
}

// MoveToEscrow shifts amount from available to escrow in memory.
func (w *Wallet) MoveToEscrow(amount decimal.Decimal) error {
	if !w.CanEscrow(amount) {
		return domain.ErrInsufficientFunds
	}
	w.AvailableBalance = w.AvailableBalance.Sub(amount)
	w.EscrowBalance = w.EscrowBalance.Add(amount)
	return nil
}

// ReleaseFromEscrow takes amount out of escrow. With toAvailable the funds
// return to the available balance; otherwise they leave the wallet entirely
// (paid out to a counterparty, who gets a matching credit elsewhere).
func (w *Wallet) ReleaseFromEscrow(amount decimal.Decimal, toAvailable bool) error {
	if amount.GreaterThan(w.EscrowBalance) {
		return domain.ErrInsufficientEscrow
	}
	w.EscrowBalance = w.EscrowBalance.Sub(amount)
	if toAvailable {
		w.AvailableBalance = w.AvailableBalance.Add(amount)
	}
	return nil
}
