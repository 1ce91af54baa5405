package router

import (
	"github.com/gin-gonic/gin"

	"docpipe/internal/handler"
	"docpipe/internal/middleware"
	"docpipe/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	tokenSvc service.TokenService,
	allowedOrigins []string,
	providerH *handler.ProviderHandler,
	jobH *handler.JobHandler,
	billH *handler.BillHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// All API routes require a valid tenant token
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(tokenSvc))

	// Provider configuration
	providers := protected.Group("/providers")
	providers.POST("", providerH.Create)
	providers.GET("", providerH.List)
	providers.GET("/:id", providerH.GetByID)
	providers.PUT("/:id", providerH.Update)
	providers.DELETE("/:id", providerH.Delete)
	providers.POST("/:id/test", providerH.TestConnection)

	// Processing jobs
	jobs := protected.Group("/jobs")
	jobs.POST("", jobH.Create)
	jobs.GET("", jobH.List)
	jobs.GET("/:id", jobH.GetByID)
	jobs.POST("/:id/process", jobH.Process)
	jobs.DELETE("/:id", jobH.Delete)

	// Vendor bills
	bills := protected.Group("/bills")
	bills.GET("", billH.List)
	bills.GET("/export", billH.Export)
	bills.GET("/:id", billH.GetByID)

	return r
}
