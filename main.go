package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	rd "github.com/redis/go-redis/v9"

	"github.com/printflow/printflow-logistics-api/config"
	"github.com/printflow/printflow-logistics-api/models"
	"github.com/printflow/printflow-logistics-api/services"
	"github.com/printflow/printflow-logistics-api/storage"
)

func main() {
	// Basic logging
	log.Println("Starting Printflow Logistics API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
	if err := db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Order{},
		&models.ProductionJob{},
		&models.Shipment{},
		&models.Alert{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// The repository is constructed once here and injected everywhere else
	store := storage.NewGormStore(db)

	// Seed sample data on an empty database
	if err := seedDatabase(store); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	// Artwork storage is only wired when a bucket is configured
	var artwork services.ArtworkService
	if cfg.AWSS3Bucket != "" {
		s3Service, err := services.NewS3Service(cfg)
		if err != nil {
			log.Fatalf("Failed to initialize S3 service: %v", err)
		}
		artwork = services.NewArtworkService(s3Service)
	}

	// Optional Redis-backed rate limiting for mutation endpoints
	var rdb *rd.Client
	if cfg.RedisAddr != "" {
		rdb = rd.NewClient(&rd.Options{Addr: cfg.RedisAddr})
	}

	router, err := setupRouter(cfg, store, artwork, rdb)
	if err != nil {
		log.Fatalf("Failed to set up router: %v", err)
	}

	// Start server
	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Printflow Logistics API is running",
	})
}

// databaseStatus checks database connectivity and returns table information
func databaseStatus(c *gin.Context) {
	db := config.GetDB()

	sqlDB, err := db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to get database instance",
		})
		return
	}

	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Database connection failed",
		})
		return
	}

	tables, err := db.Migrator().GetTables()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to query tables",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database connected",
		"tables":  tables,
	})
}
