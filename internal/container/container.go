package container

import (
	"log/slog"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/anafaris/wedding-api/internal/config"
	"github.com/anafaris/wedding-api/internal/middleware"
	"github.com/anafaris/wedding-api/internal/models"
	"github.com/anafaris/wedding-api/internal/services"
)

// Container holds all application dependencies
type Container struct {
	Logger *slog.Logger
	Config *config.Config
	// Database clients
	MongoDBClient *mongo.Client
	RedisClient   *redis.Client

	RSVPService     *services.RSVPService
	RegistryService *services.RegistryService
	Invalidator     *middleware.CacheInvalidator
}

// NewContainer creates a new dependency injection container
func NewContainer(
	logger *slog.Logger,
	cfg *config.Config,
	mongoDBClient *mongo.Client,
	redisClient *redis.Client,
) *Container {
	// Initialize repositories
	mongoRepo := models.MongodbNewRepo(mongoDBClient, cfg.DBName)
	rsvpService := services.NewRSVPService(mongoRepo)
	registryService := services.NewRegistryService(mongoRepo)
	invalidator := middleware.NewCacheInvalidator(redisClient)

	return &Container{
		Logger:          logger,
		Config:          cfg,
		MongoDBClient:   mongoDBClient,
		RedisClient:     redisClient,
		RSVPService:     rsvpService,
		RegistryService: registryService,
		Invalidator:     invalidator,
	}
}
