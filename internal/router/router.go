package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"swapyard/config"
	"swapyard/internal/handler"
	"swapyard/internal/middleware"
	"swapyard/internal/repository"
	"swapyard/internal/service"
	"swapyard/pkg/gateway"
)

func Setup(cfg *config.Config, db *gorm.DB, gw gateway.Gateway) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit(middleware.NewSlidingWindowLimiter(100, time.Minute)))

	// Repositories
	walletRepo := repository.NewWalletRepository(db)
	txnRepo := repository.NewTransactionRepository(db)
	methodRepo := repository.NewPaymentMethodRepository(db)
	bankRepo := repository.NewBankAccountRepository(db)

	// Services
	walletSvc := service.NewWalletService(db, walletRepo, txnRepo, bankRepo, gw, &cfg.Ledger, cfg.Gateway.Timeout)
	methodSvc := service.NewPaymentMethodService(methodRepo, walletSvc, gw)

	// Handlers
	walletHandler := handler.NewWalletHandler(walletSvc)
	methodHandler := handler.NewPaymentMethodHandler(methodSvc)
	bankHandler := handler.NewBankAccountHandler(bankRepo)
	webhookHandler := handler.NewGatewayWebhookHandler(walletSvc, gw)

	authMw := middleware.AuthRequired(&cfg.JWT)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	api := r.Group("/api/v1")
	{
		wallet := api.Group("/wallet")
		wallet.Use(authMw)
		{
			wallet.GET("/summary", walletHandler.GetSummary)
			wallet.GET("/transactions", walletHandler.ListTransactions)
			wallet.POST("/deposit", walletHandler.Deposit)
			wallet.POST("/withdraw", walletHandler.Withdraw)
			wallet.POST("/escrow/deposit", walletHandler.EscrowDeposit)
			wallet.POST("/escrow/release", walletHandler.EscrowRelease)
			wallet.POST("/shipping", walletHandler.PayShipping)
			wallet.POST("/transactions/:id/refund", walletHandler.Refund)
			wallet.POST("/transactions/:id/cancel", walletHandler.Cancel)
		}

		methods := api.Group("/payment-methods")
		methods.Use(authMw)
		{
			methods.GET("", methodHandler.List)
			methods.POST("", methodHandler.Add)
			methods.DELETE("/:id", methodHandler.Remove)
			methods.POST("/:id/default", methodHandler.SetDefault)
		}

		api.GET("/bank-accounts", authMw, bankHandler.List)

		api.POST("/webhooks/gateway", webhookHandler.Handle)
	}

	return r
}
