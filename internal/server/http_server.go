package server

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"cupid-backend/internal/config"
	"cupid-backend/internal/logger"
)

// Registrar is a common interface for all HTTP route registrars.
type Registrar interface {
	Register(api *gin.RouterGroup)
}

// NewRouter builds the gin engine and mounts every registrar under /api.
func NewRouter(cfg *config.Config, registrars ...Registrar) *gin.Engine {
	if cfg.App.ENV != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger())

	// uploaded pictures are served statically
	engine.Static("/uploads", cfg.Upload.Dir)

	api := engine.Group("/api")
	for _, r := range registrars {
		r.Register(api)
	}

	return engine
}

// StartHTTPServer boots the REST server with all provided registrars.
func StartHTTPServer(cfg *config.Config, registrars ...Registrar) error {
	engine := NewRouter(cfg, registrars...)
	addr := fmt.Sprintf("%s:%s", cfg.HTTP.Host, cfg.HTTP.Port)
	return engine.Run(addr)
}

// requestLogger emits one slog line per request.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}
