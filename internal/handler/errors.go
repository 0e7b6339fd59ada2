package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"swapyard/internal/domain"
	"swapyard/internal/service"
	"swapyard/pkg/gateway"
)

// writeServiceError translates ledger errors into HTTP responses.
func writeServiceError(c *gin.Context, err error) {
	var gwErr *gateway.Error
	switch {
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrInsufficientEscrow),
		errors.Is(err, domain.ErrNoPaymentDestination),
		errors.Is(err, domain.ErrWithdrawalLimitExceeded):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrTransactionNotFound),
		errors.Is(err, service.ErrPaymentMethodNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidStateTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &gwErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": gwErr.Message, "retryable": gwErr.Retryable})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
