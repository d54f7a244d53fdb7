package handler

import (
	"stablegate/internal/adapter/http/middleware"
	redisStore "stablegate/internal/adapter/storage/redis"
	"stablegate/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	InvoiceSvc     ports.InvoiceService
	IngressSvc     ports.IngressService
	MerchantRepo   ports.MerchantRepository
	WebhookSecret  string
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
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

	// Health check (deep — verifies PostgreSQL + Redis + blockchain reader)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// Rate limit rules
	rules := middleware.DefaultRateLimitRules()

	// rl returns rate limiter middleware if a store is configured, else a
	// no-op — the gateway still runs with rate limiting disabled.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	v1 := r.Group("/api/v1")

	// --- Provider webhook ingress (shared-secret authenticated) ---
	providerAuth := middleware.ProviderWebhookAuth(deps.WebhookSecret)
	providerHandler := NewProviderHandler(deps.IngressSvc)
	provider := v1.Group("/provider", providerAuth)
	{
		provider.POST("/transfers", rl("provider_ingest"), providerHandler.IngestTransfer)
	}

	// --- Merchant API (trusted-header API key authenticated) ---
	apiKeyAuth := middleware.APIKeyAuth(deps.MerchantRepo, deps.Logger)
	invoiceHandler := NewInvoiceHandler(deps.InvoiceSvc)
	invoices := v1.Group("/invoices", apiKeyAuth)
	{
		invoices.POST("", rl("invoices_create"), invoiceHandler.CreateInvoice)
		invoices.GET("/:id", rl("invoices_read"), invoiceHandler.GetInvoice)
		invoices.GET("/:id/status", rl("invoices_read"), invoiceHandler.GetInvoiceStatus)
		invoices.POST("/:id/cancel", rl("invoices_create"), invoiceHandler.CancelInvoice)
		invoices.POST("/:id/intents", rl("intents_create"), invoiceHandler.CreateIntent)
		invoices.GET("/:id/transfers", rl("invoices_read"), invoiceHandler.ListTransfers)
	}

	return r
}
