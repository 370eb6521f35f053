package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/use-agent/prodscrape/api/handler"
	"github.com/use-agent/prodscrape/api/middleware"
	"github.com/use-agent/prodscrape/config"
	"github.com/use-agent/prodscrape/observability"
	"github.com/use-agent/prodscrape/scraper"
)

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  Recovery → Logger
//	API:     Auth (if enabled) → RateLimit
//
// Health and metrics stay outside auth so probes and scrapers always work.
func NewRouter(sc *scraper.Scraper, cfg *config.Config, metrics *observability.Metrics, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())

	if metrics != nil {
		r.GET("/metrics", gin.WrapH(metrics.Handler()))
	}

	v1 := r.Group("/api/v1")
	v1.GET("/health", handler.Health(sc, startTime))

	protected := v1.Group("")
	if cfg.Auth.Enabled {
		protected.Use(middleware.Auth(cfg.Auth.APIKeys))
	}
	protected.Use(middleware.RateLimit(cfg.RateLimit))

	protected.GET("/products/:id", handler.Product(sc))

	return r
}
