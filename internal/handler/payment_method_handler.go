package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"swapyard/internal/middleware"
	"swapyard/internal/service"
)

type PaymentMethodHandler struct {
	svc *service.PaymentMethodService
}

func NewPaymentMethodHandler(svc *service.PaymentMethodService) *PaymentMethodHandler {
	return &PaymentMethodHandler{svc: svc}
}

func (h *PaymentMethodHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)
	methods, err := h.svc.List(userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payment_methods": methods})
}

func (h *PaymentMethodHandler) Add(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req struct {
		GatewayPaymentMethodID string `json:"gateway_payment_method_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	m, err := h.svc.Add(c.Request.Context(), userID, req.GatewayPaymentMethodID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

func (h *PaymentMethodHandler) Remove(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment method id"})
		return
	}
	if err := h.svc.Remove(c.Request.Context(), userID, uint(id)); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PaymentMethodHandler) SetDefault(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment method id"})
		return
	}
	if err := h.svc.SetDefault(userID, uint(id)); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Default payment method updated"})
}
