package handler

import (
	"escrow-settlement/internal/adapter/http/middleware"
	"escrow-settlement/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	TxnSvc         ports.TransactionService
	WebhookSvc     ports.WebhookIngestor
	SellerRepo     ports.SellerRepository
	WalletRepo     ports.WalletRepository
	PayoutRepo     ports.PayoutRepository
	TxnRepo        ports.TransactionRepository
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Health check (deep — verifies PostgreSQL + Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// Gateway webhook (signature-authenticated, no identity headers)
	webhookHandler := NewWebhookHandler(deps.WebhookSvc)
	r.POST("/webhooks/gateway", webhookHandler.Receive)

	// API v1 routes
	v1 := r.Group("/api/v1")

	txnHandler := NewTransactionHandler(deps.TxnSvc)

	// --- Public routes (buyer opens the shared link before signing in) ---
	v1.GET("/links/:link", txnHandler.GetByLink)

	// --- Identity-authenticated routes ---
	auth := v1.Group("", middleware.Identity())

	auth.POST("/links/:link/accept", txnHandler.Accept)

	transactions := auth.Group("/transactions")
	{
		transactions.POST("", txnHandler.Create)
		transactions.POST("/:id/checkout", txnHandler.Checkout)
		transactions.POST("/:id/cancel", txnHandler.Cancel)
		transactions.POST("/:id/asset-transferred", txnHandler.MarkAssetTransferred)
		transactions.POST("/:id/confirm-receipt", txnHandler.ConfirmReceipt)
	}

	payoutHandler := NewPayoutHandler(deps.PayoutRepo, deps.TxnRepo)
	transactions.GET("/:id/payout", payoutHandler.GetByTransaction)

	walletHandler := NewWalletHandler(deps.SellerRepo, deps.WalletRepo)
	sellers := auth.Group("/sellers/me")
	{
		sellers.POST("", walletHandler.RegisterSeller)
		sellers.GET("", walletHandler.GetProfile)
		sellers.PUT("/bank-details", walletHandler.UpdateBankDetails)
	}
	auth.GET("/wallets/me", walletHandler.GetWallet)

	return r
}
