package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sunutees/storefront-api/catalog"
	checkoutControllers "github.com/sunutees/storefront-api/controllers/checkout"
	"github.com/sunutees/storefront-api/models"
	"github.com/sunutees/storefront-api/payments"
	"github.com/sunutees/storefront-api/pricing"
	"github.com/sunutees/storefront-api/routes"
	"github.com/sunutees/storefront-api/settings"
	"github.com/sunutees/storefront-api/store"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	log.Println("✅ Starting application...")

	// Load environment variables
	_ = godotenv.Load()

	// Init DB
	db := initDatabase()

	// Auto-migrate all tables
	if err := db.AutoMigrate(
		&models.Customer{},
		&models.Order{},
		&models.OrderItem{},
		&models.TaxSettings{},
		&models.TaxRate{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}

	// Gin setup
	r := gin.Default()

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-KEY"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Pricing core wiring
	converter, err := pricing.NewConverter(pricing.DefaultRates())
	if err != nil {
		log.Fatalf("❌ Invalid rate table: %v", err)
	}
	oracle := catalog.NewClient(
		os.Getenv("CMS_QUERY_URL"),
		os.Getenv("CMS_API_TOKEN"),
	)
	deps := checkoutControllers.Deps{
		Validator:  pricing.NewValidator(oracle, converter),
		Converter:  converter,
		Tax:        settings.NewResolver(db),
		Store:      store.New(db),
		Gateway:    payments.NewClient(os.Getenv("PAYMENT_API_URL"), os.Getenv("PAYMENT_API_KEY")),
		SuccessURL: os.Getenv("PAYMENT_SUCCESS_URL"),
		CancelURL:  os.Getenv("PAYMENT_CANCEL_URL"),
	}

	// Setup routes
	routes.SetupRoutes(r, db, deps)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("🚀 Server running on port %s...", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// initDatabase sets up the GORM DB connection
func initDatabase() *gorm.DB {
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
		if err != nil {
			log.Fatalf("❌ DB connection failed: %v", err)
		}
		return db
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		host, user, password, dbname, port,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ Failed to connect DB: %v", err)
	}
	return db
}
