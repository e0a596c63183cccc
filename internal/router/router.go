package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"gstrecon/internal/handler"
	"gstrecon/internal/middleware"
	"gstrecon/internal/service"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Auth    *handler.AuthHandler
	Profile *handler.ProfileHandler
	Invoice *handler.InvoiceHandler
	Return  *handler.ReturnHandler
	Rate    *handler.RateHandler
	Health  *handler.HealthHandler
}

// Options holds the cross-cutting middleware settings.
type Options struct {
	AllowedOrigins []string
	Limiter        *middleware.IPRateLimiter
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(authSvc service.AuthService, h Handlers, opts Options) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(opts.AllowedOrigins))

	// Health checks
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	v1.Use(middleware.RateLimit(opts.Limiter))

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/signup", h.Auth.Signup)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.RefreshToken)

	v1.GET("/gst-rates", h.Rate.Resolve)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	profile := protected.Group("/profile")
	profile.GET("/me", h.Profile.Me)
	profile.POST("/gstin", h.Profile.UpdateGSTIN)

	protected.POST("/parse", h.Invoice.Parse)
	protected.POST("/voice-invoice", h.Invoice.Voice)

	invoices := protected.Group("/invoices")
	invoices.GET("", h.Invoice.List)
	invoices.GET("/:id", h.Invoice.GetByID)
	invoices.GET("/:id/file", h.Invoice.FileURL)
	invoices.DELETE("/:id", h.Invoice.Delete)

	// Returns
	protected.GET("/gstr1", h.Return.GSTR1)
	protected.GET("/gstr2a", h.Return.GSTR2A)
	protected.GET("/gstr2a/download/:format", h.Return.DownloadGSTR2A)
	protected.GET("/gstr2b", h.Return.GSTR2B)
	protected.GET("/gstr3b", h.Return.GSTR3B)
	protected.GET("/gstr3b/summary", h.Return.GSTR3BSummary)
	protected.GET("/summary", h.Return.PeriodSummary)

	return r
}
