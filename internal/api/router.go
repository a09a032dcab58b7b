package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"station-track-backend/config"
	"station-track-backend/internal/mw"
	"station-track-backend/internal/station"
	"station-track-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(cfg *config.Config, svc *station.Service, s store.Store) *gin.Engine {
	r := gin.Default()

	corsCfg := cors.DefaultConfig()
	if len(cfg.Server.AllowedOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.Server.AllowedOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	r.Use(cors.New(corsCfg))

	handler := NewHandler(svc, s)
	rateLimiter := mw.RateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst)

	// GET responses are cacheable when a TTL is configured.
	caching := func(c *gin.Context) { c.Next() }
	if cfg.Server.CacheTTLSeconds > 0 {
		ttl := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
		cacheStore := cache.New(ttl, 2*ttl)
		caching = mw.Cache(cacheStore, ttl)
	}

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		// Barcode log
		api.POST("/insert", handler.InsertBarcode)
		api.GET("/fetch", caching, handler.FetchBarcodes)

		// User records and station updates
		api.GET("/fetch/user", handler.FetchUserByID)
		api.GET("/fetch/user/:name", handler.FetchUsersByIdentity)
		api.POST("/insert/user", handler.InsertUser)
		api.POST("/updateStationStatus", handler.UpdateStationStatus)
	}

	return r
}
