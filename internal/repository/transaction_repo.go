package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"swapyard/internal/domain"
	"swapyard/internal/models"
)

type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) GetByID(id uint) (*models.WalletTransaction, error) {
	var t models.WalletTransaction
	if err := r.db.First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TransactionRepository) GetByGatewayIntentID(ref string) (*models.WalletTransaction, error) {
	var t models.WalletTransaction
	if err := r.db.Where("gateway_intent_id = ?", ref).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// List returns a page of a wallet's transactions, newest first, optionally
// filtered by type and status.
func (r *TransactionRepository) List(walletID uint, txType, status string, limit, offset int) ([]models.WalletTransaction, error) {
	q := r.db.Where("wallet_id = ?", walletID)
	if txType != "" {
		q = q.Where("transaction_type = ?", txType)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var txns []models.WalletTransaction
	err := q.Order("created_at DESC, id DESC").Limit(limit).Offset(offset).Find(&txns).Error
	return txns, err
}

func (r *TransactionRepository) Recent(walletID uint, n int) ([]models.WalletTransaction, error) {
	var txns []models.WalletTransaction
	err := r.db.Where("wallet_id = ?", walletID).
		Order("created_at DESC, id DESC").Limit(n).Find(&txns).Error
	return txns, err
}

// WithdrawnSince sums withdrawal amounts created at or after since, counting
// in-flight (processing) and settled rows toward withdrawal limits.
func (r *TransactionRepository) WithdrawnSince(walletID uint, since time.Time) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.Model(&models.WalletTransaction{}).
		Where("wallet_id = ? AND transaction_type = ? AND status IN ? AND created_at >= ?",
			walletID, domain.TxTypeWithdrawal, []string{domain.TxStatusProcessing, domain.TxStatusCompleted}, since).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}
