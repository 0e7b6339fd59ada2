package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"swapyard/internal/middleware"
	"swapyard/internal/service"
)

type WalletHandler struct {
	svc *service.WalletService
}

func NewWalletHandler(svc *service.WalletService) *WalletHandler {
	return &WalletHandler{svc: svc}
}

// GetSummary returns balances, lifetime totals and recent transactions.
func (h *WalletHandler) GetSummary(c *gin.Context) {
	userID := middleware.GetUserID(c)
	summary, err := h.svc.GetSummary(userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

type depositRequest struct {
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	PaymentMethodID string          `json:"payment_method_id" binding:"required"`
	Description     string          `json:"description"`
}

// Deposit initiates a wallet top-up through the payment gateway.
func (h *WalletHandler) Deposit(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req depositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := h.svc.Deposit(c.Request.Context(), userID, req.Amount, req.PaymentMethodID, req.Description)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"transaction_id": result.TransactionID,
		"client_secret":  result.ClientSecret,
		"net_amount":     result.NetAmount,
		"message":        "Deposit initiated successfully",
	})
}

type withdrawRequest struct {
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	BankAccountID *uint           `json:"bank_account_id"`
	Description   string          `json:"description"`
}

// Withdraw initiates a payout to a verified bank account.
func (h *WalletHandler) Withdraw(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req withdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := h.svc.Withdraw(c.Request.Context(), userID, req.Amount, req.BankAccountID, req.Description)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"transaction_id": result.TransactionID,
		"bank_account":   result.BankName,
		"message":        "Withdrawal initiated successfully",
	})
}

type escrowRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	TradeID     string          `json:"trade_id" binding:"required,uuid"`
	Description string          `json:"description"`
}

// EscrowDeposit moves funds into escrow for a trade.
func (h *WalletHandler) EscrowDeposit(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req escrowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := h.svc.EscrowDeposit(c.Request.Context(), userID, req.Amount, req.TradeID, req.Description)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"transaction_id": result.TransactionID,
		"escrow_balance": result.EscrowBalance,
		"message":        "Funds moved to escrow successfully",
	})
}

type escrowReleaseRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	TradeID     string          `json:"trade_id" binding:"required,uuid"`
	ToAvailable *bool           `json:"to_available"`
	Description string          `json:"description"`
}

// EscrowRelease releases escrowed funds, back to available or as payout.
func (h *WalletHandler) EscrowRelease(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req escrowReleaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	toAvailable := true
	if req.ToAvailable != nil {
		toAvailable = *req.ToAvailable
	}
	result, err := h.svc.EscrowRelease(c.Request.Context(), userID, req.Amount, req.TradeID, toAvailable, req.Description)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"transaction_id":    result.TransactionID,
		"available_balance": result.AvailableBalance,
		"escrow_balance":    result.EscrowBalance,
		"message":           "Funds released from escrow successfully",
	})
}

// PayShipping pays a shipping cost from the available balance.
func (h *WalletHandler) PayShipping(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req escrowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := h.svc.PayShipping(c.Request.Context(), userID, req.Amount, req.TradeID, req.Description)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"transaction_id":    result.TransactionID,
		"available_balance": result.AvailableBalance,
		"message":           "Shipping payment processed successfully",
	})
}

type refundRequest struct {
	Reason string `json:"reason"`
}

// Refund reverses a completed transaction back into the available balance.
func (h *WalletHandler) Refund(c *gin.Context) {
	userID := middleware.GetUserID(c)
	txnID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid transaction id"})
		return
	}
	var req refundRequest
	_ = c.ShouldBindJSON(&req)
	result, err := h.svc.Refund(c.Request.Context(), userID, uint(txnID), req.Reason)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"refund_transaction_id": result.TransactionID,
		"refund_amount":         result.Amount,
		"message":               "Transaction refunded successfully",
	})
}

// Cancel aborts a pending transaction.
func (h *WalletHandler) Cancel(c *gin.Context) {
	userID := middleware.GetUserID(c)
	txnID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid transaction id"})
		return
	}
	if err := h.svc.Cancel(c.Request.Context(), userID, uint(txnID)); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Transaction cancelled"})
}

// ListTransactions returns the caller's transaction history, newest first.
func (h *WalletHandler) ListTransactions(c *gin.Context) {
	userID := middleware.GetUserID(c)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if offset < 0 {
		offset = 0
	}
	txns, err := h.svc.ListTransactions(userID, c.Query("type"), c.Query("status"), limit, offset)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": txns})
}
