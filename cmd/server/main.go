package main

import (
	"github.com/labstack/echo/v4"
	"github.com/sociafam/backend/internal/router"
	"github.com/sociafam/backend/pkg/config"
	"github.com/sociafam/backend/pkg/logger"
	"github.com/sociafam/backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger.Init(cfg.LogLevel, cfg.LogFile)
	defer logger.Sync()

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		logger.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB()

	// Redis is optional; without it unread counters fall back to SQL
	if cfg.RedisAddr != "" {
		if err := redis.Init(cfg.RedisAddr, "", 0); err != nil {
			logger.Warnf("Redis unavailable, unread counters served from SQL: %v", err)
		} else {
			defer redis.Close()
		}
	}

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, db.Postgres, db.Mongo, cfg.MongoDBName)

	// Start server
	logger.Infof("Starting server on port %s", cfg.Port)
	if err := e.Start(":" + cfg.Port); err != nil {
		logger.Fatalf("Server stopped: %v", err)
	}
}
