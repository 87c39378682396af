package main

import (
	"context"

	"github.com/joho/godotenv"

	"cupid-backend/internal/app"
	"cupid-backend/internal/cache"
	"cupid-backend/internal/config"
	"cupid-backend/internal/db"
	"cupid-backend/internal/logger"
	"cupid-backend/internal/server"
	"cupid-backend/internal/service/admin"
	"cupid-backend/internal/service/auth"
	"cupid-backend/internal/service/block"
	"cupid-backend/internal/service/chat"
	"cupid-backend/internal/service/discover"
	"cupid-backend/internal/service/profile"
	"cupid-backend/internal/service/swipe"
)

func main() {
	_ = godotenv.Load()

	cfg := config.New()

	// Init logger (global singleton)
	logger.InitFromConfig(cfg)
	log := logger.L()

	// Init DB
	database, err := db.NewDB(cfg)
	if err != nil {
		log.Error("failed to init db", "err", err)
		return
	}

	// Init Redis
	redisCache := cache.NewRedisCache(cfg)
	if err := redisCache.Ping(context.Background()); err != nil {
		log.Error("failed to connect to redis", "err", err)
		return
	}

	appCtx := app.New(cfg, database, redisCache, log)

	registrars := []server.Registrar{
		auth.NewRegistrar(appCtx),
		profile.NewRegistrar(appCtx),
		discover.NewRegistrar(appCtx),
		swipe.NewRegistrar(appCtx),
		block.NewRegistrar(appCtx),
		chat.NewRegistrar(appCtx),
		admin.NewRegistrar(appCtx),
	}

	if cfg.App.ENV == "development" {
		if err := db.SeedTestData(database); err != nil {
			log.Error("failed to seed", "err", err)
		}
	}

	addr := cfg.HTTP.Host + ":" + cfg.HTTP.Port
	log.Info("starting HTTP server", "addr", addr)

	if err := server.StartHTTPServer(cfg, registrars...); err != nil {
		log.Error("failed to start HTTP server", "err", err)
	}
}
