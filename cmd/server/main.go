package main

import (
	"net/http"
	"os"

	"github.com/EdsonAvelino/StrikeTec-backend/internal/api"
	"github.com/EdsonAvelino/StrikeTec-backend/internal/cache"
	"github.com/EdsonAvelino/StrikeTec-backend/internal/config"
	"github.com/EdsonAvelino/StrikeTec-backend/internal/database"
	"github.com/EdsonAvelino/StrikeTec-backend/internal/handler"
	"github.com/EdsonAvelino/StrikeTec-backend/internal/logger"
	"github.com/EdsonAvelino/StrikeTec-backend/internal/middleware"
	"github.com/EdsonAvelino/StrikeTec-backend/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Could not load config: %v", err)
		os.Exit(1)
	}

	// Connect to PostgreSQL
	db, err := database.ConnectPostgres(cfg)
	if err != nil {
		logger.Error("Database connection failed: %v", err)
		os.Exit(1)
	}
	defer db.Close()

	// Redis est optionnel: sans lui, le cache de classement est simplement désactivé
	if err := cache.ConnectRedis(cfg); err != nil {
		logger.Warning("Redis unavailable, leaderboard cache disabled: %v", err)
	}

	// Cloudinary est optionnel: sans lui, l'upload de photos est désactivé
	if cfg.CloudinaryCloudName != "" {
		cloudinary, err := services.NewCloudinaryService(cfg)
		if err != nil {
			logger.Warning("Cloudinary init failed, photo upload disabled: %v", err)
		} else {
			handler.Cloudinary = cloudinary
		}
	}

	// Initialize routes
	router := api.SetupRouter()

	// Wrap router with CORS middleware
	h := middleware.CORSMiddleware(router)

	// Start server
	logger.Success("Server starting on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, h); err != nil {
		logger.Error("Server failed: %v", err)
		os.Exit(1)
	}
}
