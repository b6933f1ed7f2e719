package router

import (
	"context"

	"github.com/denlahodnyi/sneakers-store-sub000/internal/config"
	"github.com/denlahodnyi/sneakers-store-sub000/internal/handler"
	"github.com/denlahodnyi/sneakers-store-sub000/internal/infra"
	"github.com/denlahodnyi/sneakers-store-sub000/internal/metrics"
	"github.com/denlahodnyi/sneakers-store-sub000/internal/middleware"
	"github.com/denlahodnyi/sneakers-store-sub000/internal/repository"
	"github.com/denlahodnyi/sneakers-store-sub000/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/fixture (+ Redis cache)
//
// db and rdb may be nil: db when the catalog is served from a fixture, rdb
// when no cache is configured. ctx bounds background goroutines (rate
// limiter purge).
func New(ctx context.Context, cfg *config.Config, db *gorm.DB, rdb *redis.Client, repo repository.CatalogRepository, storeCB *infra.CircuitBreaker) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	if cfg.RateLimitRPS > 0 {
		r.Use(middleware.NewIPRateLimiter(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst).Middleware())
	}

	// ── Services ─────────────────────────────────────────────────────────────
	settings := cfg.Settings()
	catalogSvc := service.NewCatalogService(repo, rdb, storeCB, service.CatalogOptions{
		Settings:         settings,
		StoreTimeout:     cfg.StoreTimeout,
		FacetTimeout:     cfg.FacetTimeout,
		CategoryCacheTTL: cfg.CategoryCacheTTL,
	})

	// ── Handlers ─────────────────────────────────────────────────────────────
	catalogH := handler.NewCatalogHandler(catalogSvc, settings)

	// ── Routes ───────────────────────────────────────────────────────────────
	r.GET("/health", handler.Health(db, rdb, storeCB))
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Public catalog; a Bearer token only adds favourite flags
	v1 := r.Group("/v1", middleware.OptionalIdentity(cfg.JWTSecret))
	{
		v1.GET("/products", catalogH.ListProducts)
		v1.GET("/products/:idOrSlug", catalogH.GetProductDetails)
		v1.GET("/filters", catalogH.GetFilters)
		v1.GET("/catalog", catalogH.Browse)
		v1.GET("/search", catalogH.Search)
		v1.GET("/categories", catalogH.GetCategoryTree)
	}

	// Swagger UI, only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
