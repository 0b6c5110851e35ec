// Seeds the registry collection with the initial gift items. Safe to rerun:
// items are upserted by id, existing contributions are preserved.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/anafaris/wedding-api/internal/config"
	"github.com/anafaris/wedding-api/internal/connect"
	"github.com/anafaris/wedding-api/internal/models"
	"github.com/anafaris/wedding-api/internal/services"
)

func main() {
	_ = godotenv.Load(".env")

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	mongoClient, err := connect.MongoDBConnect(cfg.MongoDBURI)
	if err != nil {
		slog.Error("Failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := connect.MongoDBDisconnect(); err != nil {
			slog.Error("Error disconnecting from MongoDB", "error", err)
		}
	}()

	repo := models.MongodbNewRepo(mongoClient, cfg.DBName)
	registryService := services.NewRegistryService(repo)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := registryService.SeedDefaults(ctx); err != nil {
		slog.Error("Failed to seed registry", "error", err)
		os.Exit(1)
	}

	slog.Info("Registry initialized successfully")
}
