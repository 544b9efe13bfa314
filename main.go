package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"medication-app-server/internal/config"
	"medication-app-server/internal/models"
	"medication-app-server/internal/notify"
	"medication-app-server/internal/routes"
)

func main() {
	// Load environment variables; a missing .env falls back to defaults
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Error loading .env file: %v", err)
	}

	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize structured logging
	var logger *zap.Logger
	if cfg.Environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("Error creating logger: %v", err)
	}
	defer logger.Sync()

	// Initialize database connection
	if dir := filepath.Dir(cfg.Database.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.Fatal("Failed to create database directory", zap.Error(err))
		}
	}
	db, err := models.InitDB(models.DatabaseConfig{Path: cfg.Database.Path})
	if err != nil {
		logger.Fatal("Failed to open database", zap.Error(err))
	}

	// Start the reminder scheduler and re-register reminders for every
	// stored medication
	reminders := notify.NewReminders(&notify.LogSink{Logger: logger}, logger)
	if cfg.RemindersEnabled {
		reminders.Start()
		defer reminders.Stop()

		var meds []models.Medication
		if err := db.Find(&meds).Error; err != nil {
			logger.Fatal("Failed to load medications", zap.Error(err))
		}
		for _, med := range meds {
			if err := reminders.ScheduleMedication(med); err != nil {
				logger.Warn("Failed to schedule reminders",
					zap.String("medicationId", med.ID), zap.Error(err))
			}
		}
	}

	// Initialize Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	// Configure CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Origin}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	router.Use(cors.New(corsConfig))

	// Set up routes
	routes.SetupRoutes(router, db, reminders, logger)

	// Start server
	serverAddr := fmt.Sprintf(":%s", cfg.Port)
	logger.Info("Server running", zap.String("port", cfg.Port))
	if err := router.Run(serverAddr); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}
