package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"swapyard/internal/middleware"
	"swapyard/internal/repository"
)

// BankAccountHandler exposes withdrawal destinations read-only; onboarding and
// verification run through the gateway's hosted flow.
type BankAccountHandler struct {
	banks *repository.BankAccountRepository
}

func NewBankAccountHandler(banks *repository.BankAccountRepository) *BankAccountHandler {
	return &BankAccountHandler{banks: banks}
}

func (h *BankAccountHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)
	accounts, err := h.banks.ListActiveByUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bank_accounts": accounts})
}
