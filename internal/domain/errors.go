package domain

import "errors"

// Ledger error taxonomy. Handlers map these to HTTP responses; nothing in the
// ledger is fatal to the process.
var (
	ErrInsufficientFunds        = errors.New("insufficient available balance")
	ErrInsufficientEscrow       = errors.New("insufficient escrow balance")
	ErrNoPaymentDestination     = errors.New("no verified payment destination")
	ErrTransactionNotFound      = errors.New("transaction not found")
	ErrInvalidStateTransition   = errors.New("invalid transaction state transition")
	ErrInvalidAmount            = errors.New("amount must be a positive value with at most two decimal places")
	ErrWithdrawalLimitExceeded = errors.New("withdrawal limit exceeded")
)
