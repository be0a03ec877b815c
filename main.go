package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/urbantrove-ng/Urbantrove-Api/config"
	"github.com/urbantrove-ng/Urbantrove-Api/events"
	"github.com/urbantrove-ng/Urbantrove-Api/models"
	"github.com/urbantrove-ng/Urbantrove-Api/notify"
	"github.com/urbantrove-ng/Urbantrove-Api/payment"
	"github.com/urbantrove-ng/Urbantrove-Api/routes"
	"github.com/urbantrove-ng/Urbantrove-Api/store"
)

func main() {
	log.Println("✅ Starting application...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	// Init DB
	db := initDatabase(cfg.DatabaseDSN)

	// Auto-migrate all tables
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}

	// Gin setup
	r := gin.Default()

	// Product images are uploaded as multipart files
	r.MaxMultipartMemory = 64 << 20 // 64MB

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-KEY", "X-Guest-ID"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Serve uploaded images
	if err := os.MkdirAll(cfg.UploadDir, os.ModePerm); err != nil {
		log.Fatalf("❌ Failed to create upload folder: %v", err)
	}
	r.Static("/uploads", cfg.UploadDir)

	carts := store.NewCartStore()
	go sweepCarts(carts, cfg.CartIdleTTL)

	// Setup routes
	routes.SetupRoutes(r, routes.Deps{
		DB:       db,
		Config:   cfg,
		Carts:    carts,
		Gateway:  payment.NewTelr(cfg.Telr),
		Notifier: notify.NewMailer(cfg.SMTP),
		Hub:      events.NewHub(),
	})

	// Start server
	log.Printf("🚀 Server running on port %s...", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// initDatabase sets up the GORM DB connection
func initDatabase(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ DB connection failed: %v", err)
	}
	return db
}

// sweepCarts drops abandoned session carts; it checks every tenth of the idle TTL.
func sweepCarts(carts *store.CartStore, idle time.Duration) {
	interval := idle / 10
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		if n := carts.Sweep(idle); n > 0 {
			log.Printf("🗑️ Removed %d idle carts", n)
		}
	}
}
