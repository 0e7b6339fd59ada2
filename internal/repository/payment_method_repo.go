package repository

import (
	"gorm.io/gorm"

	"swapyard/internal/models"
)

type PaymentMethodRepository struct {
	db *gorm.DB
}

func NewPaymentMethodRepository(db *gorm.DB) *PaymentMethodRepository {
	return &PaymentMethodRepository{db: db}
}

func (r *PaymentMethodRepository) ListActiveByUser(userID uint) ([]models.PaymentMethod, error) {
	var methods []models.PaymentMethod
	err := r.db.Where("user_id = ? AND is_active = ?", userID, true).
		Order("is_default DESC, created_at DESC").Find(&methods).Error
	return methods, err
}

func (r *PaymentMethodRepository) GetByIDForUser(id, userID uint) (*models.PaymentMethod, error) {
	var m models.PaymentMethod
	if err := r.db.Where("id = ? AND user_id = ? AND is_active = ?", id, userID, true).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PaymentMethodRepository) CountByUser(userID uint) (int64, error) {
	var n int64
	err := r.db.Model(&models.PaymentMethod{}).
		Where("user_id = ? AND is_active = ?", userID, true).Count(&n).Error
	return n, err
}

func (r *PaymentMethodRepository) Create(m *models.PaymentMethod) error {
	return r.db.Create(m).Error
}

func (r *PaymentMethodRepository) Deactivate(id uint) error {
	return r.db.Model(&models.PaymentMethod{}).Where("id = ?", id).
		Update("is_active", false).Error
}

// SetDefault marks one method as default and clears the flag on the rest.
func (r *PaymentMethodRepository) SetDefault(userID, id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.PaymentMethod{}).
			Where("user_id = ? AND is_default = ?", userID, true).
			Update("is_default", false).Error; err != nil {
			return err
		}
		return tx.Model(&models.PaymentMethod{}).
			Where("id = ? AND user_id = ?", id, userID).
			Update("is_default", true).Error
	})
}
