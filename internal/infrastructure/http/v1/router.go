// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"oilbook/internal/domain"
	"oilbook/internal/domain/auth"
	"oilbook/internal/domain/catalogs/customer"
	"oilbook/internal/domain/catalogs/office"
	"oilbook/internal/domain/catalogs/product"
	"oilbook/internal/domain/catalogs/supplier"
	"oilbook/internal/domain/documents/invoice"
	"oilbook/internal/domain/documents/purchase"
	"oilbook/internal/domain/ledger/adjustments"
	"oilbook/internal/domain/ledger/dips"
	"oilbook/internal/domain/ledger/meters"
	"oilbook/internal/domain/ledger/prices"
	"oilbook/internal/domain/reports"
	"oilbook/internal/infrastructure/http/v1/handlers"
	"oilbook/internal/infrastructure/http/v1/middleware"
	"oilbook/internal/infrastructure/storage/postgres"
	"oilbook/internal/infrastructure/storage/postgres/catalog_repo"
	"oilbook/internal/infrastructure/storage/postgres/document_repo"
	"oilbook/internal/infrastructure/storage/postgres/ledger_repo"
	"oilbook/internal/infrastructure/storage/postgres/report_repo"
	"oilbook/pkg/logger"
	"oilbook/pkg/numerator"
)

// RouterConfig holds router configuration.
type RouterConfig struct {
	// Pool is the database connection pool (health checks)
	Pool *postgres.Pool

	// TxManager runs repository work in transactions
	TxManager *postgres.TxManager

	// Numerator generates document and catalog numbers
	Numerator *numerator.Service

	// Logger for request logging
	Logger *logger.Logger

	// JWTValidator for token validation
	JWTValidator middleware.JWTValidator

	// AuthService for authentication endpoints
	AuthService *auth.Service

	// Events publishes document events to the notification outbox.
	// Nil disables notifications.
	Events domain.EventPublisher
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no auth required)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	// API v1
	v1 := router.Group("/api/v1")
	{
		registerAuthRoutes(v1, cfg)

		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.JWTValidator))

		registerCatalogRoutes(protected, cfg)
		registerLedgerRoutes(protected, cfg)
		registerDocumentRoutes(protected, cfg)
		registerReportRoutes(protected, cfg)
		registerSettingsRoutes(protected, cfg)
	}

	return router
}

// registerAuthRoutes registers authentication and user management endpoints.
func registerAuthRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	baseHandler := handlers.NewBaseHandler()
	authHandler := handlers.NewAuthHandler(baseHandler, cfg.AuthService)

	// Public auth endpoints (no JWT required)
	public := rg.Group("/auth")
	public.POST("/login", authHandler.Login)

	// Protected auth endpoints (JWT required)
	protected := rg.Group("/auth")
	protected.Use(middleware.Auth(cfg.JWTValidator))
	protected.GET("/me", authHandler.Me)
	protected.POST("/change-password", authHandler.ChangePassword)

	users := protected.Group("/users")
	users.Use(middleware.RequireCapability(auth.CapUsersManage))
	users.GET("", authHandler.ListUsers)
	users.POST("", authHandler.CreateUser)
	users.POST("/:id/active", authHandler.SetUserActive)
}

// registerCatalogRoutes registers master data endpoints.
func registerCatalogRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	catalogs := rg.Group("/catalog")
	baseHandler := handlers.NewBaseHandler()

	// --- CUSTOMERS ---
	{
		repo := catalog_repo.NewCustomerRepo(cfg.TxManager)
		service := customer.NewService(repo, cfg.TxManager, cfg.Numerator)
		handler := handlers.NewCustomerHandler(baseHandler, service)

		group := catalogs.Group("/customers")
		group.GET("/debtors", middleware.RequireCapability(auth.CapReportsView), handler.Debtors)
		RegisterCatalogRoutes(group, handler, auth.CapReportsView, auth.CapMasterData)
	}

	// --- SUPPLIERS ---
	{
		repo := catalog_repo.NewSupplierRepo(cfg.TxManager)
		service := supplier.NewService(repo, cfg.TxManager, cfg.Numerator)
		handler := handlers.NewSupplierHandler(baseHandler, service)
		RegisterCatalogRoutes(catalogs.Group("/suppliers"), handler, auth.CapReportsView, auth.CapMasterData)
	}

	// --- PRODUCTS ---
	{
		repo := catalog_repo.NewProductRepo(cfg.TxManager)
		service := product.NewService(repo, cfg.TxManager, cfg.Numerator)
		handler := handlers.NewProductHandler(baseHandler, service)

		group := catalogs.Group("/products")
		group.GET("/by-oil-type/:oilType", middleware.RequireCapability(auth.CapReportsView), handler.ByOilType)
		RegisterCatalogRoutes(group, handler, auth.CapReportsView, auth.CapMasterData)
	}

	// --- OFFICES (superadmin fleet management) ---
	{
		repo := catalog_repo.NewOfficeRepo(cfg.TxManager)
		service := office.NewService(repo, cfg.TxManager)
		handler := handlers.NewOfficeHandler(baseHandler, service)

		group := catalogs.Group("/offices")
		group.Use(middleware.RequireCapability(auth.CapOfficesManage))
		group.GET("", handler.List)
		group.POST("", handler.Create)
		group.GET("/:id", handler.Get)
		group.POST("/:id/active", handler.SetActive)
	}
}

// registerLedgerRoutes registers the daily ledger endpoints.
func registerLedgerRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	ledgers := rg.Group("/ledgers")
	baseHandler := handlers.NewBaseHandler()

	// --- METER READINGS ---
	{
		repo := ledger_repo.NewMeterRepo(cfg.TxManager)
		service := meters.NewService(repo, cfg.TxManager)
		handler := handlers.NewMeterHandler(baseHandler, service)

		group := ledgers.Group("/meters")
		group.GET("", middleware.RequireCapability(auth.CapReportsView), handler.GetDay)
		group.GET("/defaults", middleware.RequireCapability(auth.CapLedgerWrite), handler.Defaults)
		group.GET("/recent", middleware.RequireCapability(auth.CapReportsView), handler.Recent)
		group.PUT("", middleware.RequireCapability(auth.CapLedgerWrite), handler.SaveDay)
	}

	// --- TANK DIPS ---
	{
		repo := ledger_repo.NewDipRepo(cfg.TxManager)
		service := dips.NewService(repo, cfg.TxManager)
		handler := handlers.NewDipHandler(baseHandler, service)

		group := ledgers.Group("/dips")
		group.GET("", middleware.RequireCapability(auth.CapReportsView), handler.GetDay)
		group.GET("/defaults", middleware.RequireCapability(auth.CapLedgerWrite), handler.Defaults)
		group.GET("/recent", middleware.RequireCapability(auth.CapReportsView), handler.Recent)
		group.PUT("", middleware.RequireCapability(auth.CapLedgerWrite), handler.SaveDay)
	}

	// --- STOCK ADJUSTMENTS ---
	{
		repo := ledger_repo.NewAdjustmentRepo(cfg.TxManager)
		service := adjustments.NewService(repo, cfg.TxManager)
		handler := handlers.NewAdjustmentHandler(baseHandler, service)

		group := ledgers.Group("/adjustments")
		group.GET("", middleware.RequireCapability(auth.CapReportsView), handler.Recent)
		group.POST("", middleware.RequireCapability(auth.CapAdjustmentsWrite), handler.Create)
	}

	// --- OIL PRICES ---
	{
		repo := ledger_repo.NewPriceRepo(cfg.TxManager)
		service := prices.NewService(repo, cfg.TxManager)
		handler := handlers.NewPriceHandler(baseHandler, service)

		group := ledgers.Group("/prices")
		group.GET("", middleware.RequireCapability(auth.CapReportsView), handler.GetDay)
		group.GET("/recent", middleware.RequireCapability(auth.CapReportsView), handler.Recent)
		group.PUT("", middleware.RequireCapability(auth.CapLedgerWrite), handler.Upsert)
	}
}

// registerDocumentRoutes registers purchase and invoice endpoints.
func registerDocumentRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	docs := rg.Group("/documents")
	baseHandler := handlers.NewBaseHandler()

	customerRepo := catalog_repo.NewCustomerRepo(cfg.TxManager)

	// --- PURCHASES ---
	{
		repo := document_repo.NewPurchaseRepo(cfg.TxManager)
		service := purchase.NewService(repo, cfg.TxManager, cfg.Numerator)
		if cfg.Events != nil {
			service.SetEventPublisher(cfg.Events)
		}
		handler := handlers.NewPurchaseHandler(baseHandler, service)

		group := docs.Group("/purchases")
		group.GET("", middleware.RequireCapability(auth.CapReportsView), handler.List)
		group.GET("/:id", middleware.RequireCapability(auth.CapReportsView), handler.Get)
		group.POST("", middleware.RequireCapability(auth.CapDocumentsWrite), handler.Create)
	}

	// --- INVOICES ---
	{
		repo := document_repo.NewInvoiceRepo(cfg.TxManager)
		service := invoice.NewService(repo, customerRepo, cfg.TxManager, cfg.Numerator)
		if cfg.Events != nil {
			service.SetEventPublisher(cfg.Events)
		}
		handler := handlers.NewInvoiceHandler(baseHandler, service)

		group := docs.Group("/invoices")
		group.GET("", middleware.RequireCapability(auth.CapReportsView), handler.List)
		group.GET("/:id", middleware.RequireCapability(auth.CapReportsView), handler.Get)
		group.POST("", middleware.RequireCapability(auth.CapDocumentsWrite), handler.Create)
		group.POST("/:id/pay", middleware.RequireCapability(auth.CapDocumentsWrite), handler.MarkPaid)
	}
}

// registerReportRoutes registers report endpoints.
func registerReportRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	baseHandler := handlers.NewBaseHandler()

	reportRepo := report_repo.NewReportRepo(cfg.TxManager)
	reportService := reports.NewService(reportRepo)
	customerService := customer.NewService(catalog_repo.NewCustomerRepo(cfg.TxManager), cfg.TxManager, cfg.Numerator)
	handler := handlers.NewReportsHandler(baseHandler, reportService, customerService)

	group := rg.Group("/reports")
	group.Use(middleware.RequireCapability(auth.CapReportsView))
	group.GET("/stock", handler.StockMonth)
	group.GET("/stock/export", handler.StockMonthXLSX)
	group.GET("/daily-closing", handler.DailyClosing)
	group.GET("/meter-usage", handler.MeterUsage)
	group.GET("/sales", handler.Sales)
	group.GET("/vat", handler.VAT)
	group.GET("/debtors", handler.Debtors)
}

// registerSettingsRoutes registers the own-office settings endpoints.
func registerSettingsRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	baseHandler := handlers.NewBaseHandler()

	repo := catalog_repo.NewOfficeRepo(cfg.TxManager)
	service := office.NewService(repo, cfg.TxManager)
	handler := handlers.NewOfficeHandler(baseHandler, service)

	group := rg.Group("/settings")
	group.GET("/office", handler.Me)
	group.PUT("/office", middleware.RequireCapability(auth.CapSettings), handler.UpdateSettings)
}

