package api

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/firmsite/site-api/api/carousel"
	"github.com/firmsite/site-api/api/content"
	"github.com/firmsite/site-api/api/health"
	"github.com/firmsite/site-api/api/locale"
	"github.com/firmsite/site-api/api/middleware"
	"github.com/firmsite/site-api/api/search"
	"github.com/firmsite/site-api/api/subscribers"
	"github.com/firmsite/site-api/api/types"
	"github.com/firmsite/site-api/api/version"
	_ "github.com/firmsite/site-api/docs/swagger"
	"github.com/firmsite/site-api/internal/services/cache"
	"github.com/firmsite/site-api/pkg/config"
)

// Default per-client limits in requests per second
var defaultRateLimits = map[string]int{
	"default":     20,
	"search":      5,
	"subscribers": 1,
}

// RegisterRoutes registers all API routes
func RegisterRoutes(engine *gin.Engine, deps *types.Dependencies, rateLimiters *sync.Map, cleanupStop chan struct{}, cleanupInitialized *sync.Once) error {
	if deps == nil {
		deps = &types.Dependencies{}
	}

	// Public routes, no rate limiting
	health.RegisterRoutes(engine, deps)
	version.RegisterRoutes(engine, deps)

	engine.GET("/docs", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/docs/index.html")
	})
	engine.Group("/docs").GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	engine.NoRoute(NotFoundHandler(deps))

	limit := func(endpoint string) gin.HandlerFunc {
		rps, enabled := rateLimitFor(deps.Config, endpoint)
		if !enabled {
			return func(c *gin.Context) { c.Next() }
		}
		return PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, rps, rps*2)
	}

	v1 := engine.Group("/api/v1")

	contentGroup := v1.Group("")
	contentGroup.Use(limit("default"))
	contentGroup.Use(middleware.CacheMiddleware(middleware.CacheConfig{
		Cache:      deps.Cache,
		DefaultTTL: contentTTL(deps.Config),
		// Hero slides report the live rotator position
		SkipPaths: []string{"/api/v1/hero-slides"},
		Enabled:   deps.Cache != nil,
	}))
	content.RegisterRoutes(contentGroup, deps)

	carouselGroup := v1.Group("")
	carouselGroup.Use(limit("default"))
	carousel.RegisterRoutes(carouselGroup, deps)

	localeGroup := v1.Group("/locale")
	localeGroup.Use(limit("default"))
	locale.RegisterRoutes(localeGroup, deps)

	searchGroup := v1.Group("/search")
	searchGroup.Use(limit("search"))
	search.RegisterRoutes(searchGroup, deps)

	subscribersGroup := v1.Group("/subscribers")
	subscribersGroup.Use(limit("subscribers"))
	subscribers.RegisterRoutes(subscribersGroup, deps)

	return nil
}

// rateLimitFor returns the configured rps for an endpoint group
func rateLimitFor(cfg *config.Config, endpoint string) (int, bool) {
	if cfg == nil {
		return defaultRateLimits[endpoint], true
	}
	if !cfg.RateLimiting.Enabled {
		return 0, false
	}
	if rps, ok := cfg.RateLimiting.Endpoints[endpoint]; ok && rps > 0 {
		return rps, true
	}
	if rps, ok := cfg.RateLimiting.Endpoints["default"]; ok && rps > 0 {
		return rps, true
	}
	return defaultRateLimits[endpoint], true
}

func contentTTL(cfg *config.Config) time.Duration {
	if cfg == nil || cfg.Cache.ContentTTL <= 0 {
		return cache.DefaultTTL
	}
	return cfg.Cache.ContentTTL
}

// NotFoundHandler handles 404 errors
func NotFoundHandler(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := types.Language(c)
		c.JSON(http.StatusNotFound, types.ErrorResponse{
			Status:  types.StatusError,
			Message: deps.T(lang, "page_not_found"),
			Error:   "NOT_FOUND",
			Back:    &types.Link{Label: deps.T(lang, "back_to_home"), Href: "/"},
		})
	}
}
