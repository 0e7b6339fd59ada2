package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StripeGateway talks to the Stripe REST API with form-encoded requests.
type StripeGateway struct {
	BaseURL       string
	SecretKey     string
	WebhookSecret string
	Currency      string
	client        *http.Client
}

func NewStripeGateway(secretKey, webhookSecret, currency string, timeout time.Duration) *StripeGateway {
	if currency == "" {
		currency = "usd"
	}
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &StripeGateway{
		BaseURL:       "https://api.stripe.com",
		SecretKey:     secretKey,
		WebhookSecret: webhookSecret,
		Currency:      strings.ToLower(currency),
		client:        &http.Client{Timeout: timeout},
	}
}

func (g *StripeGateway) CreateCustomer(ctx context.Context, userID uint) (string, error) {
	form := url.Values{}
	form.Set("metadata[user_id]", strconv.FormatUint(uint64(userID), 10))
	var out struct {
		ID string `json:"id"`
	}
	if err := g.post(ctx, "/v1/customers", form, "", &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

func (g *StripeGateway) ChargePaymentMethod(ctx context.Context, customerRef string, amount decimal.Decimal, methodRef string, transactionID uint) (*Charge, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(toMinorUnits(amount), 10))
	form.Set("currency", g.Currency)
	form.Set("customer", customerRef)
	form.Set("payment_method", methodRef)
	form.Set("confirm", "true")
	form.Set("automatic_payment_methods[enabled]", "true")
	form.Set("automatic_payment_methods[allow_redirects]", "never")
	form.Set("metadata[transaction_id]", strconv.FormatUint(uint64(transactionID), 10))
	var out struct {
		ID           string `json:"id"`
		ClientSecret string `json:"client_secret"`
		Status       string `json:"status"`
	}
	if err := g.post(ctx, "/v1/payment_intents", form, uuid.New().String(), &out); err != nil {
		return nil, err
	}
	return &Charge{Reference: out.ID, ClientSecret: out.ClientSecret, Status: out.Status}, nil
}

func (g *StripeGateway) GetPaymentMethod(ctx context.Context, methodRef string) (*PaymentMethodInfo, error) {
	var out struct {
		ID   string `json:"id"`
		Type string `json:"type"`
		Card struct {
			Brand string `json:"brand"`
			Last4 string `json:"last4"`
		} `json:"card"`
	}
	if err := g.get(ctx, "/v1/payment_methods/"+url.PathEscape(methodRef), &out); err != nil {
		return nil, err
	}
	return &PaymentMethodInfo{
		Reference: out.ID,
		Type:      out.Type,
		Brand:     out.Card.Brand,
		LastFour:  out.Card.Last4,
	}, nil
}

func (g *StripeGateway) AttachPaymentMethod(ctx context.Context, customerRef, methodRef string) error {
	form := url.Values{}
	form.Set("customer", customerRef)
	return g.post(ctx, "/v1/payment_methods/"+url.PathEscape(methodRef)+"/attach", form, "", nil)
}

func (g *StripeGateway) DetachPaymentMethod(ctx context.Context, methodRef string) error {
	return g.post(ctx, "/v1/payment_methods/"+url.PathEscape(methodRef)+"/detach", url.Values{}, "", nil)
}

func (g *StripeGateway) InitiatePayout(ctx context.Context, customerRef string, amount decimal.Decimal, destinationRef string, transactionID uint) (*Payout, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(toMinorUnits(amount), 10))
	form.Set("currency", g.Currency)
	form.Set("destination", destinationRef)
	form.Set("metadata[transaction_id]", strconv.FormatUint(uint64(transactionID), 10))
	var out struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	if err := g.post(ctx, "/v1/payouts", form, uuid.New().String(), &out); err != nil {
		return nil, err
	}
	return &Payout{Reference: out.ID, Status: out.Status}, nil
}

func (g *StripeGateway) VerifyWebhook(payload []byte, signature string) (*Event, error) {
	return verifyAndParse(g.WebhookSecret, payload, signature, time.Now())
}

// toMinorUnits converts a 2dp decimal amount to integer cents.
func toMinorUnits(amount decimal.Decimal) int64 {
	return amount.Shift(2).IntPart()
}

func (g *StripeGateway) post(ctx context.Context, path string, form url.Values, idempotencyKey string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.BaseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return &Error{Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}
	return g.do(req, out)
}

func (g *StripeGateway) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.BaseURL+path, nil)
	if err != nil {
		return &Error{Message: err.Error()}
	}
	return g.do(req, out)
}

func (g *StripeGateway) do(req *http.Request, out interface{}) error {
	req.SetBasicAuth(g.SecretKey, "")
	resp, err := g.client.Do(req)
	if err != nil {
		return &Error{Code: "network_error", Message: err.Error(), Retryable: true}
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return &Error{Code: "network_error", Message: err.Error(), Retryable: true}
	}
	if resp.StatusCode >= 400 {
		return parseAPIError(resp.StatusCode, body)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &Error{Code: "invalid_response", Message: err.Error()}
	}
	return nil
}

func parseAPIError(status int, body []byte) *Error {
	var wrapped struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	_ = json.Unmarshal(body, &wrapped)
	msg := wrapped.Error.Message
	if msg == "" {
		msg = fmt.Sprintf("request failed with status %d", status)
	}
	return &Error{
		Code:      wrapped.Error.Code,
		Message:   msg,
		Retryable: status == http.StatusTooManyRequests || status >= 500,
	}
}
