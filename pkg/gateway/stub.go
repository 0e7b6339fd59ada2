package gateway

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"
)

// StubGateway is a deterministic in-process gateway for development and tests.
// Set FailCharges/FailPayouts to exercise processor-failure paths.
type StubGateway struct {
	WebhookSecret string
	FailCharges   bool
	FailPayouts   bool

	seq atomic.Uint64
}

func NewStubGateway(webhookSecret string) *StubGateway {
	return &StubGateway{WebhookSecret: webhookSecret}
}

func (s *StubGateway) next(prefix string) string {
	return fmt.Sprintf("%s_stub_%d", prefix, s.seq.Add(1))
}

func (s *StubGateway) CreateCustomer(ctx context.Context, userID uint) (string, error) {
	return fmt.Sprintf("cus_stub_%d", userID), nil
}

func (s *StubGateway) ChargePaymentMethod(ctx context.Context, customerRef string, amount decimal.Decimal, methodRef string, transactionID uint) (*Charge, error) {
	if s.FailCharges {
		return nil, &Error{Code: "card_declined", Message: "your card was declined"}
	}
	ref := s.next("pi")
	return &Charge{
		Reference:    ref,
		ClientSecret: ref + "_secret",
		Status:       "requires_confirmation",
	}, nil
}

func (s *StubGateway) GetPaymentMethod(ctx context.Context, methodRef string) (*PaymentMethodInfo, error) {
	return &PaymentMethodInfo{Reference: methodRef, Type: "card", Brand: "visa", LastFour: "4242"}, nil
}

func (s *StubGateway) AttachPaymentMethod(ctx context.Context, customerRef, methodRef string) error {
	return nil
}

func (s *StubGateway) DetachPaymentMethod(ctx context.Context, methodRef string) error {
	return nil
}

func (s *StubGateway) InitiatePayout(ctx context.Context, customerRef string, amount decimal.Decimal, destinationRef string, transactionID uint) (*Payout, error) {
	if s.FailPayouts {
		return nil, &Error{Code: "balance_insufficient", Message: "platform balance insufficient", Retryable: true}
	}
	return &Payout{Reference: s.next("po"), Status: "pending"}, nil
}

func (s *StubGateway) VerifyWebhook(payload []byte, signature string) (*Event, error) {
	return verifyAndParse(s.WebhookSecret, payload, signature, time.Now())
}
