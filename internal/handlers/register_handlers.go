package handlers

import (
	"fmt"

	"github.com/SscSPs/splitledger/cmd/docs"
	portssvc "github.com/SscSPs/splitledger/internal/core/ports/services"
	"github.com/SscSPs/splitledger/internal/middleware"
	"github.com/SscSPs/splitledger/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

const apiBasePath = "/api/v1"

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) error {
	if err := RegisterValidators(); err != nil {
		return err
	}

	registerRootRoutes(r)

	apiLimiter, err := newLimiter(cfg, "splitledger:api", cfg.RateLimit)
	if err != nil {
		return err
	}
	loginLimiter, err := newLimiter(cfg, "splitledger:login", cfg.LoginRateLimit)
	if err != nil {
		return err
	}

	api := r.Group(apiBasePath, middleware.RateLimit(apiLimiter))

	// Public authentication routes
	registerAuthRoutes(api, services.Auth, middleware.RateLimit(loginLimiter))

	setupAPIV1Routes(api, cfg, services)

	setupSwaggerRoutes(r, cfg)
	return nil
}

// newLimiter gives every limit its own key prefix so counters are not shared.
func newLimiter(cfg *config.Config, prefix, rate string) (*limiter.Limiter, error) {
	store, err := middleware.NewLimiterStore(cfg.RedisURL, prefix)
	if err != nil {
		return nil, err
	}
	l, err := middleware.NewLimiter(rate, store)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", prefix, err)
	}
	return l, nil
}

// setupAPIV1Routes applies the auth middleware and delegates to specific entity route registrations
func setupAPIV1Routes(
	api *gin.RouterGroup,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
) {
	v1 := api.Group("", middleware.AuthMiddleware(cfg.JWTSecret))

	registerUserRoutes(v1, service.User)
	registerCurrencyRoutes(v1, service.Currency)
	registerDebtRoutes(v1, service.Debt, service.Sync)
	registerSyncRoutes(v1, service.Sync)
	registerReceiptRoutes(v1, service.Receipt, service.Debt)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = apiBasePath
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
