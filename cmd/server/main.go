package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"nomadtax/internal/adapters/http/middleware"
	"nomadtax/internal/adapters/http/routes"
	"nomadtax/internal/adapters/persistence/models"
	"nomadtax/internal/adapters/persistence/repositories"
	"nomadtax/internal/config"
	"nomadtax/internal/core/services"

	"github.com/gofiber/fiber/v2"

	_ "nomadtax/docs" // Swagger docs
)

// @title NomadTax API
// @version 1.0
// @description Tax-residency tracking for location-independent workers: travel log, document vault and per-country risk dashboard.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@nomadtax.io

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host api.nomadtax.io
// @BasePath /api/v1
// @schemes https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Seed reference data and the default admin
	if err := config.SeedCountryRules(); err != nil {
		log.Printf("⚠️ Warning: Failed to seed country rules: %v", err)
	}
	if err := config.SeedAdminUser(); err != nil {
		log.Printf("⚠️ Warning: Failed to seed admin user: %v", err)
	}

	// Start cron jobs (document-expiry scan 08:30 daily, token cleanup)
	cronService := services.NewCronService(
		repositories.NewUserRepository(db),
		repositories.NewDocumentRepository(db),
		repositories.NewRefreshTokenRepository(db),
		services.NewNotificationService(cfg),
	)
	if err := cronService.Start(); err != nil {
		log.Fatalf("❌ Failed to start cron jobs: %v", err)
	}
	defer cronService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "NomadTax API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	routes.Setup(app, db, cfg)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
