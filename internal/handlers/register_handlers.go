package handlers

import (
	"log/slog"

	"github.com/SscSPs/tx_classify_app/cmd/docs"
	portssvc "github.com/SscSPs/tx_classify_app/internal/core/ports/services"
	"github.com/SscSPs/tx_classify_app/internal/middleware"
	"github.com/SscSPs/tx_classify_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) error {
	RegisterValidators()

	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	mutationLimiter, err := newMutationLimiter(cfg)
	if err != nil {
		return err
	}

	setupAPIV1Routes(r, cfg, services, mutationLimiter)
	setupSwaggerRoutes(r, cfg)
	return nil
}

// newMutationLimiter prefers a Redis store when one is configured.
func newMutationLimiter(cfg *config.Config) (*limiter.Limiter, error) {
	if cfg.MutationRateLimit == "" {
		return nil, nil
	}
	if cfg.RedisURL != "" {
		slog.Info("Using Redis store for mutation rate limiting")
		return middleware.NewRedisLimiter(cfg.MutationRateLimit, cfg.RedisURL)
	}
	return middleware.NewMemoryLimiter(cfg.MutationRateLimit)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
	mutationLimiter *limiter.Limiter,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	RegisterTxClassifyRoutes(v1, service.Classification, mutationLimiter)
	RegisterLookupRoutes(v1, service.Lookup)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
