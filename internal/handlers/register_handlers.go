package handlers

import (
	"github.com/SscSPs/easyledger/cmd/docs"
	portssvc "github.com/SscSPs/easyledger/internal/core/ports/services"
	"github.com/SscSPs/easyledger/internal/middleware"
	"github.com/SscSPs/easyledger/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// RegisterRoutes sets up all application routes. rl throttles the login and
// upload endpoints; nil disables throttling.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	rl *limiter.Limiter,
) {
	RegisterValidators()

	r.GET("/health", getHealth)

	registerAuthRoutes(r, services, rl)

	setupAPIV1Routes(r, cfg, services, rl)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the authenticated /api/v1 group.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
	rl *limiter.Limiter,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerUserRoutes(v1, service.User)
	registerCustomerRoutes(v1, service.Customer)
	registerSupplierRoutes(v1, service.Supplier)
	registerCategoryRoutes(v1, service.Category)
	registerSettingsRoutes(v1, service.Settings)
	registerInvoiceRoutes(v1, service.Invoice)
	registerExpenseRoutes(v1, service.Expense, service.Receipt, cfg.MaxUploadBytes)
	registerUploadRoutes(v1, service.Receipt, cfg.MaxUploadBytes, middleware.RateLimit(rl))
	registerReportingRoutes(v1, service.Reporting)
}

func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
