package handler

import (
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"swapyard/internal/service"
	"swapyard/pkg/gateway"
)

// GatewayWebhookHandler receives signed events from the payment processor and
// maps them to ledger completion/failure calls. Once an event authenticates
// and parses, the response is 200 regardless of business outcome so the
// gateway stops retrying; the status-guarded completions make redelivery safe.
type GatewayWebhookHandler struct {
	svc *service.WalletService
	gw  gateway.Gateway
}

func NewGatewayWebhookHandler(svc *service.WalletService, gw gateway.Gateway) *GatewayWebhookHandler {
	return &GatewayWebhookHandler{svc: svc, gw: gw}
}

func (h *GatewayWebhookHandler) Handle(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	event, err := h.gw.VerifyWebhook(body, c.GetHeader("X-Gateway-Signature"))
	if err != nil {
		log.Printf("[Webhook] rejected event: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid signature"})
		return
	}

	txnID, err := strconv.ParseUint(event.TransactionID, 10, 32)
	if err != nil {
		// Event for something we did not create (or missing metadata); ack it.
		log.Printf("[Webhook] event %s has no usable transaction id", event.ID)
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}
	ctx := c.Request.Context()

	switch event.Type {
	case gateway.EventChargeSucceeded:
		applied, err := h.svc.CompleteDeposit(ctx, uint(txnID), event.Reference)
		h.logOutcome(event, "deposit completion", applied, err)
	case gateway.EventChargeFailed:
		applied, err := h.svc.FailTransaction(ctx, uint(txnID), "charge failed")
		h.logOutcome(event, "charge failure", applied, err)
	case gateway.EventPayoutPaid:
		applied, err := h.svc.CompleteWithdrawal(ctx, uint(txnID))
		h.logOutcome(event, "withdrawal completion", applied, err)
	case gateway.EventPayoutFailed:
		applied, err := h.svc.FailTransaction(ctx, uint(txnID), "payout failed")
		h.logOutcome(event, "payout failure", applied, err)
	default:
		log.Printf("[Webhook] ignoring event %s of type %s", event.ID, event.Type)
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

func (h *GatewayWebhookHandler) logOutcome(event *gateway.Event, op string, applied bool, err error) {
	switch {
	case err != nil:
		log.Printf("[Webhook] event %s: %s error: %v", event.ID, op, err)
	case !applied:
		log.Printf("[Webhook] event %s: %s no-op (transaction %s not in expected state)", event.ID, op, event.TransactionID)
	default:
		log.Printf("[Webhook] event %s: %s applied to transaction %s", event.ID, op, event.TransactionID)
	}
}
