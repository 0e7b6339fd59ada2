package repository

import (
	"errors"

	"gorm.io/gorm"

	"swapyard/internal/models"
)

type WalletRepository struct {
	db *gorm.DB
}

func NewWalletRepository(db *gorm.DB) *WalletRepository {
	return &WalletRepository{db: db}
}

func (r *WalletRepository) GetByID(id uint) (*models.Wallet, error) {
	var w models.Wallet
	if err := r.db.First(&w, id).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *WalletRepository) GetByUserID(userID uint) (*models.Wallet, error) {
	var w models.Wallet
	if err := r.db.Where("user_id = ?", userID).First(&w).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

// GetOrCreate is the single entry point for lazy wallet creation. The gateway
// customer is not created here; operations that talk to the processor attach
// one on first use.
func (r *WalletRepository) GetOrCreate(userID uint) (*models.Wallet, error) {
	w, err := r.GetByUserID(userID)
	if err == nil {
		return w, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	w = &models.Wallet{UserID: userID}
	if err := r.db.Create(w).Error; err != nil {
		// Lost a create race: another request inserted the row first.
		if existing, getErr := r.GetByUserID(userID); getErr == nil {
			return existing, nil
		}
		return nil, err
	}
	return w, nil
}

func (r *WalletRepository) SetGatewayCustomerID(walletID uint, customerRef string) error {
	return r.db.Model(&models.Wallet{}).Where("id = ?", walletID).
		Update("gateway_customer_id", customerRef).Error
}
