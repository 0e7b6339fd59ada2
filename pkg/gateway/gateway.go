package gateway

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// Event types delivered by the gateway webhook.
const (
	EventChargeSucceeded = "charge.succeeded"
	EventChargeFailed    = "charge.failed"
	EventPayoutPaid      = "payout.paid"
	EventPayoutFailed    = "payout.failed"
)

// Charge is the result of initiating a payment. ClientSecret is handed to the
// client app to finish 3DS/confirmation on its side.
type Charge struct {
	Reference    string
	ClientSecret string
	Status       string
}

// Payout is the result of initiating a transfer to a bank account.
type Payout struct {
	Reference string
	Status    string
}

// PaymentMethodInfo is display metadata for a stored payment method.
type PaymentMethodInfo struct {
	Reference string
	Type      string
	Brand     string
	LastFour  string
}

// Event is a verified webhook notification. TransactionID carries the ledger
// transaction id embedded in the charge/payout metadata at initiation time.
type Event struct {
	ID            string
	Type          string
	TransactionID string
	Reference     string
}

// Error wraps a processor failure. Retryable signals that re-submitting the
// same request is safe (network faults, 5xx, rate limits).
type Error struct {
	Code      string
	Message   string
	Retryable bool
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("gateway: %s (%s)", e.Message, e.Code)
	}
	return "gateway: " + e.Message
}

// Gateway is the narrow interface to the external payment processor. The
// ledger consumes it but never owns settlement logic.
type Gateway interface {
	CreateCustomer(ctx context.Context, userID uint) (string, error)
	ChargePaymentMethod(ctx context.Context, customerRef string, amount decimal.Decimal, methodRef string, transactionID uint) (*Charge, error)
	GetPaymentMethod(ctx context.Context, methodRef string) (*PaymentMethodInfo, error)
	AttachPaymentMethod(ctx context.Context, customerRef, methodRef string) error
	DetachPaymentMethod(ctx context.Context, methodRef string) error
	InitiatePayout(ctx context.Context, customerRef string, amount decimal.Decimal, destinationRef string, transactionID uint) (*Payout, error)
	// VerifyWebhook authenticates an inbound event before the ledger trusts it.
	VerifyWebhook(payload []byte, signature string) (*Event, error)
}
