package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"swapyard/internal/models"
	"swapyard/internal/repository"
	"swapyard/pkg/gateway"
)

var ErrPaymentMethodNotFound = errors.New("payment method not found")

// PaymentMethodService manages stored charge sources: it attaches/detaches
// them on the gateway customer and keeps the local display records in sync.
type PaymentMethodService struct {
	methods *repository.PaymentMethodRepository
	wallet  *WalletService
	gw      gateway.Gateway
}

func NewPaymentMethodService(methods *repository.PaymentMethodRepository, wallet *WalletService, gw gateway.Gateway) *PaymentMethodService {
	return &PaymentMethodService{methods: methods, wallet: wallet, gw: gw}
}

// Add attaches a gateway payment method to the user's customer and records
// its display metadata. The first method a user adds becomes their default.
func (s *PaymentMethodService) Add(ctx context.Context, userID uint, gatewayMethodRef string) (*models.PaymentMethod, error) {
	w, err := s.wallet.GetOrCreateWallet(userID)
	if err != nil {
		return nil, err
	}
	customerRef, err := s.wallet.ensureCustomer(ctx, w)
	if err != nil {
		return nil, err
	}

	info, err := s.gw.GetPaymentMethod(ctx, gatewayMethodRef)
	if err != nil {
		return nil, err
	}
	if err := s.gw.AttachPaymentMethod(ctx, customerRef, gatewayMethodRef); err != nil {
		return nil, err
	}

	count, err := s.methods.CountByUser(userID)
	if err != nil {
		return nil, err
	}
	m := &models.PaymentMethod{
		UserID:          userID,
		GatewayMethodID: gatewayMethodRef,
		Type:            info.Type,
		LastFour:        info.LastFour,
		Brand:           info.Brand,
		IsDefault:       count == 0,
	}
	if err := s.methods.Create(m); err != nil {
		return nil, err
	}
	return m, nil
}

// Remove detaches the method from the gateway customer and deactivates the
// local record.
func (s *PaymentMethodService) Remove(ctx context.Context, userID, methodID uint) error {
	m, err := s.methods.GetByIDForUser(methodID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPaymentMethodNotFound
		}
		return err
	}
	if err := s.gw.DetachPaymentMethod(ctx, m.GatewayMethodID); err != nil {
		return err
	}
	return s.methods.Deactivate(m.ID)
}

func (s *PaymentMethodService) SetDefault(userID, methodID uint) error {
	if _, err := s.methods.GetByIDForUser(methodID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPaymentMethodNotFound
		}
		return err
	}
	return s.methods.SetDefault(userID, methodID)
}

func (s *PaymentMethodService) List(userID uint) ([]models.PaymentMethod, error) {
	return s.methods.ListActiveByUser(userID)
}
