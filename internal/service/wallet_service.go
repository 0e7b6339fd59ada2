package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"swapyard/config"
	"swapyard/internal/domain"
	"swapyard/internal/models"
	"swapyard/internal/repository"
	"swapyard/pkg/gateway"
)

// WalletService is the only component that mutates wallet balances. Every
// balance change is paired with exactly one WalletTransaction row, and the
// pair is written inside a single database transaction. Wallet mutations are
// guarded relative UPDATEs checked through RowsAffected, so concurrent
// operations against the same wallet can never both pass a stale balance
// check, and status transitions are claimed the same way, which is what makes
// the completion callbacks idempotent.
type WalletService struct {
	db      *gorm.DB
	wallets *repository.WalletRepository
	txns    *repository.TransactionRepository
	banks   *repository.BankAccountRepository
	gw      gateway.Gateway
	cfg     *config.LedgerConfig
	timeout time.Duration
}

func NewWalletService(
	db *gorm.DB,
	wallets *repository.WalletRepository,
	txns *repository.TransactionRepository,
	banks *repository.BankAccountRepository,
	gw gateway.Gateway,
	cfg *config.LedgerConfig,
	gatewayTimeout time.Duration,
) *WalletService {
	if gatewayTimeout == 0 {
		gatewayTimeout = 30 * time.Second
	}
	return &WalletService{
		db:      db,
		wallets: wallets,
		txns:    txns,
		banks:   banks,
		gw:      gw,
		cfg:     cfg,
		timeout: gatewayTimeout,
	}
}

type DepositResult struct {
	TransactionID uint            `json:"transaction_id"`
	ClientSecret  string          `json:"client_secret"`
	NetAmount     decimal.Decimal `json:"net_amount"`
}

type EscrowDepositResult struct {
	TransactionID uint            `json:"transaction_id"`
	EscrowBalance decimal.Decimal `json:"escrow_balance"`
}

type EscrowReleaseResult struct {
	TransactionID    uint            `json:"transaction_id"`
	AvailableBalance decimal.Decimal `json:"available_balance"`
	EscrowBalance    decimal.Decimal `json:"escrow_balance"`
}

type ShippingResult struct {
	TransactionID    uint            `json:"transaction_id"`
	AvailableBalance decimal.Decimal `json:"available_balance"`
}

type WithdrawalResult struct {
	TransactionID uint   `json:"transaction_id"`
	BankName      string `json:"bank_name"`
}

type RefundResult struct {
	TransactionID uint            `json:"transaction_id"`
	Amount        decimal.Decimal `json:"amount"`
}

type Summary struct {
	AvailableBalance  decimal.Decimal            `json:"available_balance"`
	EscrowBalance     decimal.Decimal            `json:"escrow_balance"`
	TotalBalance      decimal.Decimal            `json:"total_balance"`
	TotalDeposited    decimal.Decimal            `json:"total_deposited"`
	TotalWithdrawn    decimal.Decimal            `json:"total_withdrawn"`
	TotalShippingPaid decimal.Decimal            `json:"total_shipping_paid"`
	WithdrawalLimits  WithdrawalLimits           `json:"withdrawal_limits"`
	Recent            []models.WalletTransaction `json:"recent_transactions"`
}

type WithdrawalLimits struct {
	Daily   decimal.Decimal `json:"daily"`
	Monthly decimal.Decimal `json:"monthly"`
}

// GetOrCreateWallet fetches the user's wallet, creating the row on first use.
func (s *WalletService) GetOrCreateWallet(userID uint) (*models.Wallet, error) {
	return s.wallets.GetOrCreate(userID)
}

// ensureCustomer lazily creates the gateway customer the first time an
// operation actually needs one.
func (s *WalletService) ensureCustomer(ctx context.Context, w *models.Wallet) (string, error) {
	if w.GatewayCustomerID != "" {
		return w.GatewayCustomerID, nil
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	ref, err := s.gw.CreateCustomer(ctx, w.UserID)
	if err != nil {
		return "", err
	}
	if err := s.wallets.SetGatewayCustomerID(w.ID, ref); err != nil {
		return "", err
	}
	w.GatewayCustomerID = ref
	return ref, nil
}

func validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() || !amount.Equal(amount.Round(2)) {
		return domain.ErrInvalidAmount
	}
	return nil
}

func defaultDescription(desc, fallback string) string {
	if desc != "" {
		return desc
	}
	return fallback
}

// Deposit creates a pending deposit transaction, initiates the external
// charge, and moves the transaction to processing. Fees are estimated and
// stored now; completion applies the stored net amount. The balance itself
// only changes when the gateway confirms the charge.
func (s *WalletService) Deposit(ctx context.Context, userID uint, amount decimal.Decimal, methodRef, description string) (*DepositResult, error) {
	if err := validateAmount(amount); err != nil {
		return nil, err
	}
	w, err := s.GetOrCreateWallet(userID)
	if err != nil {
		return nil, err
	}
	customerRef, err := s.ensureCustomer(ctx, w)
	if err != nil {
		return nil, err
	}

	processorFee := amount.Mul(s.cfg.ProcessorFeeRate).Add(s.cfg.ProcessorFeeFixed).Round(2)
	platformFee := amount.Mul(s.cfg.PlatformFeeRate).Round(2)

	txn := models.WalletTransaction{
		WalletID:      w.ID,
		Type:          domain.TxTypeDeposit,
		Amount:        amount,
		Status:        domain.TxStatusPending,
		Description:   defaultDescription(description, "Deposit to wallet"),
		PlatformFee:   platformFee,
		ProcessorFee:  processorFee,
		BalanceBefore: decimal.NewNullDecimal(w.AvailableBalance),
	}
	if err := s.db.WithContext(ctx).Create(&txn).Error; err != nil {
		return nil, err
	}

	chargeCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	charge, err := s.gw.ChargePaymentMethod(chargeCtx, customerRef, amount, methodRef, txn.ID)
	if err != nil {
		updErr := s.db.Model(&txn).Updates(map[string]interface{}{
			"status":      domain.TxStatusFailed,
			"description": txn.Description + " - Error: " + err.Error(),
		}).Error
		if updErr != nil {
			log.Printf("[Ledger] deposit %d: failed to record gateway error: %v", txn.ID, updErr)
		}
		return nil, err
	}

	if err := s.db.Model(&txn).Updates(map[string]interface{}{
		"status":            domain.TxStatusProcessing,
		"gateway_intent_id": charge.Reference,
	}).Error; err != nil {
		return nil, err
	}
	return &DepositResult{
		TransactionID: txn.ID,
		ClientSecret:  charge.ClientSecret,
		NetAmount:     txn.NetAmount(),
	}, nil
}

// CompleteDeposit settles a processing deposit: credit the net amount, bump
// the lifetime counter, snapshot the balance and stamp completion, all in one
// atomic unit. Re-delivered callbacks are a no-op: the processing -> completed
// claim only succeeds once. Returns whether this call applied the change.
func (s *WalletService) CompleteDeposit(ctx context.Context, txnID uint, chargeRef string) (bool, error) {
	completed := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var t models.WalletTransaction
		err := tx.Where("id = ? AND transaction_type = ?", txnID, domain.TxTypeDeposit).First(&t).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		claim := tx.Model(&models.WalletTransaction{}).
			Where("id = ? AND status = ?", t.ID, domain.TxStatusProcessing).
			Update("status", domain.TxStatusCompleted)
		if claim.Error != nil {
			return claim.Error
		}
		if claim.RowsAffected == 0 {
			return nil
		}

		net := t.NetAmount()
		if err := tx.Model(&models.Wallet{}).Where("id = ?", t.WalletID).
			Updates(map[string]interface{}{
				"available_balance": gorm.Expr("available_balance + ?", net),
				"total_deposited":   gorm.Expr("total_deposited + ?", t.Amount),
			}).Error; err != nil {
			return err
		}
		var w models.Wallet
		if err := tx.First(&w, t.WalletID).Error; err != nil {
			return err
		}
		now := time.Now()
		if err := tx.Model(&t).Updates(map[string]interface{}{
			"gateway_charge_id": chargeRef,
			"balance_after":     w.AvailableBalance,
			"completed_at":      now,
		}).Error; err != nil {
			return err
		}
		completed = true
		return nil
	})
	return completed, err
}

// EscrowDeposit moves funds from available into escrow for a trade. The
// guarded update is the authoritative balance check; the transaction row is
// written completed with exact before/after snapshots in the same unit.
func (s *WalletService) EscrowDeposit(ctx context.Context, userID uint, amount decimal.Decimal, tradeID, description string) (*EscrowDepositResult, error) {
	if err := validateAmount(amount); err != nil {
		return nil, err
	}
	w, err := s.GetOrCreateWallet(userID)
	if err != nil {
		return nil, err
	}
	if !w.CanEscrow(amount) {
		return nil, domain.ErrInsufficientFunds
	}

	var out *EscrowDepositResult
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Wallet{}).
			Where("id = ? AND available_balance >= ?", w.ID, amount).
			Updates(map[string]interface{}{
				"available_balance": gorm.Expr("available_balance - ?", amount),
				"escrow_balance":    gorm.Expr("escrow_balance + ?", amount),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrInsufficientFunds
		}
		var fresh models.Wallet
		if err := tx.First(&fresh, w.ID).Error; err != nil {
			return err
		}
		now := time.Now()
		txn := models.WalletTransaction{
			WalletID:      w.ID,
			Type:          domain.TxTypeEscrowDeposit,
			Amount:        amount,
			Status:        domain.TxStatusCompleted,
			Description:   defaultDescription(description, "Escrow deposit for trade "+tradeID),
			TradeID:       &tradeID,
			BalanceBefore: decimal.NewNullDecimal(fresh.AvailableBalance.Add(amount)),
			BalanceAfter:  decimal.NewNullDecimal(fresh.AvailableBalance),
			CompletedAt:   &now,
		}
		if err := tx.Create(&txn).Error; err != nil {
			return err
		}
		out = &EscrowDepositResult{TransactionID: txn.ID, EscrowBalance: fresh.EscrowBalance}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// EscrowRelease takes funds out of escrow. With toAvailable they return to the
// available balance (escrow_release); otherwise they leave the wallet as a
// payout to the counterparty (escrow_refund), and the caller records the
// matching credit on the other side.
func (s *WalletService) EscrowRelease(ctx context.Context, userID uint, amount decimal.Decimal, tradeID string, toAvailable bool, description string) (*EscrowReleaseResult, error) {
	if err := validateAmount(amount); err != nil {
		return nil, err
	}
	w, err := s.GetOrCreateWallet(userID)
	if err != nil {
		return nil, err
	}
	if amount.GreaterThan(w.EscrowBalance) {
		return nil, domain.ErrInsufficientEscrow
	}

	txType := domain.TxTypeEscrowRelease
	if !toAvailable {
		txType = domain.TxTypeEscrowRefund
	}
	updates := map[string]interface{}{
		"escrow_balance": gorm.Expr("escrow_balance - ?", amount),
	}
	if toAvailable {
		updates["available_balance"] = gorm.Expr("available_balance + ?", amount)
	}

	var out *EscrowReleaseResult
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Wallet{}).
			Where("id = ? AND escrow_balance >= ?", w.ID, amount).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrInsufficientEscrow
		}
		var fresh models.Wallet
		if err := tx.First(&fresh, w.ID).Error; err != nil {
			return err
		}
		before := fresh.AvailableBalance
		if toAvailable {
			before = fresh.AvailableBalance.Sub(amount)
		}
		now := time.Now()
		txn := models.WalletTransaction{
			WalletID:      w.ID,
			Type:          txType,
			Amount:        amount,
			Status:        domain.TxStatusCompleted,
			Description:   defaultDescription(description, "Escrow release for trade "+tradeID),
			TradeID:       &tradeID,
			BalanceBefore: decimal.NewNullDecimal(before),
			BalanceAfter:  decimal.NewNullDecimal(fresh.AvailableBalance),
			CompletedAt:   &now,
		}
		if err := tx.Create(&txn).Error; err != nil {
			return err
		}
		out = &EscrowReleaseResult{
			TransactionID:    txn.ID,
			AvailableBalance: fresh.AvailableBalance,
			EscrowBalance:    fresh.EscrowBalance,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// PayShipping deducts a shipping cost from the available balance.
func (s *WalletService) PayShipping(ctx context.Context, userID uint, amount decimal.Decimal, tradeID, description string) (*ShippingResult, error) {
	if err := validateAmount(amount); err != nil {
		return nil, err
	}
	w, err := s.GetOrCreateWallet(userID)
	if err != nil {
		return nil, err
	}
	if !w.CanWithdraw(amount) {
		return nil, domain.ErrInsufficientFunds
	}

	var out *ShippingResult
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Wallet{}).
			Where("id = ? AND available_balance >= ?", w.ID, amount).
			Updates(map[string]interface{}{
				"available_balance":   gorm.Expr("available_balance - ?", amount),
				"total_shipping_paid": gorm.Expr("total_shipping_paid + ?", amount),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrInsufficientFunds
		}
		var fresh models.Wallet
		if err := tx.First(&fresh, w.ID).Error; err != nil {
			return err
		}
		now := time.Now()
		txn := models.WalletTransaction{
			WalletID:      w.ID,
			Type:          domain.TxTypeShippingPayment,
			Amount:        amount,
			Status:        domain.TxStatusCompleted,
			Description:   defaultDescription(description, "Shipping payment for trade "+tradeID),
			TradeID:       &tradeID,
			BalanceBefore: decimal.NewNullDecimal(fresh.AvailableBalance.Add(amount)),
			BalanceAfter:  decimal.NewNullDecimal(fresh.AvailableBalance),
			CompletedAt:   &now,
		}
		if err := tx.Create(&txn).Error; err != nil {
			return err
		}
		out = &ShippingResult{TransactionID: txn.ID, AvailableBalance: fresh.AvailableBalance}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Withdraw initiates a payout to a verified bank account. Funds are not
// deducted here: deduction happens only on confirmed completion, mirroring the
// deposit pattern so a retried intent can never double-deduct.
func (s *WalletService) Withdraw(ctx context.Context, userID uint, amount decimal.Decimal, bankAccountID *uint, description string) (*WithdrawalResult, error) {
	if err := validateAmount(amount); err != nil {
		return nil, err
	}
	w, err := s.GetOrCreateWallet(userID)
	if err != nil {
		return nil, err
	}
	if !w.CanWithdraw(amount) {
		return nil, domain.ErrInsufficientFunds
	}
	if err := s.checkWithdrawalLimits(w, amount); err != nil {
		return nil, err
	}

	bank, err := s.resolveBankAccount(userID, bankAccountID)
	if err != nil {
		return nil, err
	}
	customerRef, err := s.ensureCustomer(ctx, w)
	if err != nil {
		return nil, err
	}

	txn := models.WalletTransaction{
		WalletID:      w.ID,
		Type:          domain.TxTypeWithdrawal,
		Amount:        amount,
		Status:        domain.TxStatusPending,
		Description:   defaultDescription(description, "Withdrawal to "+bank.BankName),
		BalanceBefore: decimal.NewNullDecimal(w.AvailableBalance),
	}
	if err := s.db.WithContext(ctx).Create(&txn).Error; err != nil {
		return nil, err
	}

	payoutCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	payout, err := s.gw.InitiatePayout(payoutCtx, customerRef, amount, bank.GatewayBankAccountID, txn.ID)
	if err != nil {
		updErr := s.db.Model(&txn).Updates(map[string]interface{}{
			"status":      domain.TxStatusFailed,
			"description": txn.Description + " - Error: " + err.Error(),
		}).Error
		if updErr != nil {
			log.Printf("[Ledger] withdrawal %d: failed to record gateway error: %v", txn.ID, updErr)
		}
		return nil, err
	}

	if err := s.db.Model(&txn).Updates(map[string]interface{}{
		"status":            domain.TxStatusProcessing,
		"gateway_intent_id": payout.Reference,
	}).Error; err != nil {
		return nil, err
	}
	return &WithdrawalResult{TransactionID: txn.ID, BankName: bank.BankName}, nil
}

func (s *WalletService) resolveBankAccount(userID uint, bankAccountID *uint) (*models.BankAccount, error) {
	var bank *models.BankAccount
	var err error
	if bankAccountID != nil {
		bank, err = s.banks.GetByIDForUser(*bankAccountID, userID)
	} else {
		bank, err = s.banks.GetDefaultForUser(userID)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNoPaymentDestination
		}
		return nil, err
	}
	if !bank.IsVerified {
		return nil, domain.ErrNoPaymentDestination
	}
	return bank, nil
}

func (s *WalletService) checkWithdrawalLimits(w *models.Wallet, amount decimal.Decimal) error {
	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	daily, err := s.txns.WithdrawnSince(w.ID, dayStart)
	if err != nil {
		return err
	}
	if daily.Add(amount).GreaterThan(w.WithdrawalLimitDaily) {
		return domain.ErrWithdrawalLimitExceeded
	}
	monthly, err := s.txns.WithdrawnSince(w.ID, monthStart)
	if err != nil {
		return err
	}
	if monthly.Add(amount).GreaterThan(w.WithdrawalLimitMonthly) {
		return domain.ErrWithdrawalLimitExceeded
	}
	return nil
}

// CompleteWithdrawal settles a processing withdrawal by deducting the amount.
// Idempotent the same way as CompleteDeposit. If the available balance fell
// below the amount since the intent, the claim rolls back and the transaction
// stays processing for reconciliation rather than overdrawing the wallet.
func (s *WalletService) CompleteWithdrawal(ctx context.Context, txnID uint) (bool, error) {
	completed := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var t models.WalletTransaction
		err := tx.Where("id = ? AND transaction_type = ?", txnID, domain.TxTypeWithdrawal).First(&t).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		claim := tx.Model(&models.WalletTransaction{}).
			Where("id = ? AND status = ?", t.ID, domain.TxStatusProcessing).
			Update("status", domain.TxStatusCompleted)
		if claim.Error != nil {
			return claim.Error
		}
		if claim.RowsAffected == 0 {
			return nil
		}

		res := tx.Model(&models.Wallet{}).
			Where("id = ? AND available_balance >= ?", t.WalletID, t.Amount).
			Updates(map[string]interface{}{
				"available_balance": gorm.Expr("available_balance - ?", t.Amount),
				"total_withdrawn":   gorm.Expr("total_withdrawn + ?", t.Amount),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrInsufficientFunds
		}
		var w models.Wallet
		if err := tx.First(&w, t.WalletID).Error; err != nil {
			return err
		}
		now := time.Now()
		if err := tx.Model(&t).Updates(map[string]interface{}{
			"balance_after": w.AvailableBalance,
			"completed_at":  now,
		}).Error; err != nil {
			return err
		}
		completed = true
		return nil
	})
	return completed, err
}

// Refund credits the original transaction's gross amount back to available
// balance in a new refund transaction and marks the original refunded. The
// only operation that touches two transaction rows, and the only way out of
// completed.
func (s *WalletService) Refund(ctx context.Context, userID, originalID uint, reason string) (*RefundResult, error) {
	var out *RefundResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var original models.WalletTransaction
		if err := tx.First(&original, originalID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrTransactionNotFound
			}
			return err
		}
		var w models.Wallet
		if err := tx.First(&w, original.WalletID).Error; err != nil {
			return err
		}
		if w.UserID != userID {
			return domain.ErrTransactionNotFound
		}

		claim := tx.Model(&models.WalletTransaction{}).
			Where("id = ? AND status = ?", original.ID, domain.TxStatusCompleted).
			Update("status", domain.TxStatusRefunded)
		if claim.Error != nil {
			return claim.Error
		}
		if claim.RowsAffected == 0 {
			return domain.ErrInvalidStateTransition
		}

		if err := tx.Model(&models.Wallet{}).Where("id = ?", w.ID).
			Update("available_balance", gorm.Expr("available_balance + ?", original.Amount)).Error; err != nil {
			return err
		}
		var fresh models.Wallet
		if err := tx.First(&fresh, w.ID).Error; err != nil {
			return err
		}
		now := time.Now()
		refund := models.WalletTransaction{
			WalletID:      w.ID,
			Type:          domain.TxTypeRefund,
			Amount:        original.Amount,
			Status:        domain.TxStatusCompleted,
			Description:   fmt.Sprintf("Refund for %s - %s", original.Type, reason),
			TradeID:       original.TradeID,
			BalanceBefore: decimal.NewNullDecimal(fresh.AvailableBalance.Sub(original.Amount)),
			BalanceAfter:  decimal.NewNullDecimal(fresh.AvailableBalance),
			CompletedAt:   &now,
		}
		if err := tx.Create(&refund).Error; err != nil {
			return err
		}
		out = &RefundResult{TransactionID: refund.ID, Amount: original.Amount}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Cancel aborts a pending transaction. Once a transaction is processing the
// gateway owns it and cancellation is no longer supported mid-flight.
func (s *WalletService) Cancel(ctx context.Context, userID, txnID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var t models.WalletTransaction
		if err := tx.First(&t, txnID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrTransactionNotFound
			}
			return err
		}
		var w models.Wallet
		if err := tx.First(&w, t.WalletID).Error; err != nil {
			return err
		}
		if w.UserID != userID {
			return domain.ErrTransactionNotFound
		}
		claim := tx.Model(&models.WalletTransaction{}).
			Where("id = ? AND status = ?", t.ID, domain.TxStatusPending).
			Update("status", domain.TxStatusCancelled)
		if claim.Error != nil {
			return claim.Error
		}
		if claim.RowsAffected == 0 {
			return domain.ErrInvalidStateTransition
		}
		return nil
	})
}

// FailTransaction moves an in-flight transaction to failed (gateway declined
// or payout bounced). The wallet is untouched: neither deposits nor
// withdrawals move funds before completion. Returns whether a change occurred
// so duplicate failure callbacks stay a no-op.
func (s *WalletService) FailTransaction(ctx context.Context, txnID uint, reason string) (bool, error) {
	failed := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var t models.WalletTransaction
		if err := tx.First(&t, txnID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		res := tx.Model(&models.WalletTransaction{}).
			Where("id = ? AND status IN ?", t.ID, []string{domain.TxStatusPending, domain.TxStatusProcessing}).
			Updates(map[string]interface{}{
				"status":      domain.TxStatusFailed,
				"description": t.Description + " - Failed: " + reason,
			})
		if res.Error != nil {
			return res.Error
		}
		failed = res.RowsAffected > 0
		return nil
	})
	return failed, err
}

// GetTransactionForUser returns a transaction owned by the user's wallet.
func (s *WalletService) GetTransactionForUser(userID, txnID uint) (*models.WalletTransaction, error) {
	t, err := s.txns.GetByID(txnID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}
	w, err := s.wallets.GetByID(t.WalletID)
	if err != nil {
		return nil, err
	}
	if w.UserID != userID {
		return nil, domain.ErrTransactionNotFound
	}
	return t, nil
}

// ListTransactions returns a page of the user's transaction history.
func (s *WalletService) ListTransactions(userID uint, txType, status string, limit, offset int) ([]models.WalletTransaction, error) {
	w, err := s.GetOrCreateWallet(userID)
	if err != nil {
		return nil, err
	}
	return s.txns.List(w.ID, txType, status, limit, offset)
}

// GetSummary returns balances, lifetime counters, limits and recent activity.
func (s *WalletService) GetSummary(userID uint) (*Summary, error) {
	w, err := s.GetOrCreateWallet(userID)
	if err != nil {
		return nil, err
	}
	recent, err := s.txns.Recent(w.ID, s.cfg.RecentTransactions)
	if err != nil {
		return nil, err
	}
	return &Summary{
		AvailableBalance:  w.AvailableBalance,
		EscrowBalance:     w.EscrowBalance,
		TotalBalance:      w.TotalBalance(),
		TotalDeposited:    w.TotalDeposited,
		TotalWithdrawn:    w.TotalWithdrawn,
		TotalShippingPaid: w.TotalShippingPaid,
		WithdrawalLimits: WithdrawalLimits{
			Daily:   w.WithdrawalLimitDaily,
			Monthly: w.WithdrawalLimitMonthly,
		},
		Recent: recent,
	}, nil
}
