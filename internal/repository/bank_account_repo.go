package repository

import (
	"gorm.io/gorm"

	"swapyard/internal/models"
)

type BankAccountRepository struct {
	db *gorm.DB
}

func NewBankAccountRepository(db *gorm.DB) *BankAccountRepository {
	return &BankAccountRepository{db: db}
}

func (r *BankAccountRepository) ListActiveByUser(userID uint) ([]models.BankAccount, error) {
	var accounts []models.BankAccount
	err := r.db.Where("user_id = ? AND is_active = ?", userID, true).
		Order("is_default DESC, created_at DESC").Find(&accounts).Error
	return accounts, err
}

func (r *BankAccountRepository) GetByIDForUser(id, userID uint) (*models.BankAccount, error) {
	var a models.BankAccount
	if err := r.db.Where("id = ? AND user_id = ? AND is_active = ?", id, userID, true).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *BankAccountRepository) GetDefaultForUser(userID uint) (*models.BankAccount, error) {
	var a models.BankAccount
	err := r.db.Where("user_id = ? AND is_default = ? AND is_active = ?", userID, true, true).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *BankAccountRepository) Create(a *models.BankAccount) error {
	return r.db.Create(a).Error
}
