package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/anafaris/wedding-api/internal/container"
	"github.com/anafaris/wedding-api/internal/handlers"
	"github.com/anafaris/wedding-api/internal/middleware"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(container *container.Container) *gin.Engine {
	if container.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     container.Config.AllowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))

	// Add middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(middleware.ErrorHandler(container.Logger))
	r.Use(gin.Recovery())
	r.Use(middleware.ResponseCache(container.RedisClient, 30*time.Second))

	// Guests submit from shared venue wifi, so keep the write limits roomy.
	writeLimiter := middleware.NewRateLimiter(middleware.LimiterConfig{
		RPS:     2,
		Burst:   5,
		IdleTTL: 10 * time.Minute,
	})
	limitByIP := writeLimiter.Middleware(func(c *gin.Context) string { return c.ClientIP() })

	api := r.Group("/api")
	{
		api.GET("/", func(c *gin.Context) {
			c.JSON(200, gin.H{"message": "Ana & Faris Wedding API"})
		})
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "OK",
				"service": "wedding-api",
			})
		})

		// public routes
		api.POST("/rsvp", limitByIP, handlers.CreateRSVP(container.RSVPService, container.Invalidator))
		api.GET("/rsvp", handlers.ListRSVPs(container.RSVPService))
		api.GET("/registry", handlers.ListRegistry(container.RegistryService))
		api.POST("/registry/contribute", limitByIP, handlers.Contribute(container.RegistryService, container.Invalidator))
		api.GET("/registry/download-template", handlers.DownloadRegistryTemplate())
		api.POST("/admin/login", limitByIP, handlers.AdminLogin(container.Config))
	}

	protected := api.Group("/")
	protected.Use(middleware.AdminAuth(container.Config.JWTSecret, container.Logger))
	{
		protected.POST("/registry/upload-csv", handlers.UploadRegistryCSV(container.RegistryService, container.Invalidator))
		protected.GET("/registry/export-csv", handlers.ExportRegistryCSV(container.RegistryService))
		protected.GET("/rsvp/export-csv", handlers.ExportRSVPs(container.RSVPService))
	}

	return r
}
