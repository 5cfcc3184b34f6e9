package routes

import (
	"nomadtax/internal/adapters/http/handlers"
	"nomadtax/internal/adapters/http/middleware"
	"nomadtax/internal/adapters/persistence/repositories"
	"nomadtax/internal/config"
	"nomadtax/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	travelRepo := repositories.NewTravelRepository(db)
	documentRepo := repositories.NewDocumentRepository(db)
	countryRepo := repositories.NewCountryRuleRepository(db)
	taxStatusRepo := repositories.NewTaxStatusRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, refreshTokenRepo, cfg)
	userService := services.NewUserService(userRepo)
	travelService := services.NewTravelService(travelRepo)
	documentService := services.NewDocumentService(documentRepo)
	residencyService := services.NewResidencyService(
		travelRepo,
		documentRepo,
		countryRepo,
		taxStatusRepo,
		services.NewNarrator(cfg),
	)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	travelHandler := handlers.NewTravelHandler(travelService)
	documentHandler := handlers.NewDocumentHandler(documentService)
	dashboardHandler := handlers.NewDashboardHandler(residencyService)
	taxStatusHandler := handlers.NewTaxStatusHandler(residencyService)
	countryHandler := handlers.NewCountryHandler(countryRepo)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)

	// Auth routes (public, rate limited)
	authRoutes := apiV1.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler, cfg)

	// Public share resolution (the token is the capability)
	apiV1.Get("/shared/:token", documentHandler.GetShared)

	// Country reference data (public, cached)
	countryRoutes := apiV1.Group("/countries")
	setupCountryRoutes(countryRoutes, countryHandler, cfg)

	// Profile routes (authenticated)
	profileRoutes := apiV1.Group("/profile")
	profileRoutes.Use(middleware.AuthMiddleware(cfg))
	setupProfileRoutes(profileRoutes, userHandler)

	// User management routes (admin only)
	userRoutes := apiV1.Group("/users")
	userRoutes.Use(middleware.AuthMiddleware(cfg))
	userRoutes.Use(middleware.AdminOnly())
	setupUserRoutes(userRoutes, userHandler)

	// Travel routes (authenticated)
	travelRoutes := apiV1.Group("/travel")
	travelRoutes.Use(middleware.AuthMiddleware(cfg))
	setupTravelRoutes(travelRoutes, travelHandler)

	// Document routes (authenticated)
	documentRoutes := apiV1.Group("/documents")
	documentRoutes.Use(middleware.AuthMiddleware(cfg))
	setupDocumentRoutes(documentRoutes, documentHandler)

	// Tax status routes (authenticated)
	taxStatusRoutes := apiV1.Group("/tax-statuses")
	taxStatusRoutes.Use(middleware.AuthMiddleware(cfg))
	setupTaxStatusRoutes(taxStatusRoutes, taxStatusHandler)

	// Dashboard routes (authenticated, never cached)
	dashboardRoutes := apiV1.Group("/dashboard")
	dashboardRoutes.Use(middleware.AuthMiddleware(cfg))
	dashboardRoutes.Use(middleware.NoCacheHeaders())
	setupDashboardRoutes(dashboardRoutes, dashboardHandler)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	// Public routes (5 req/min/IP)
	router.Post("/register", middleware.AuthRateLimiter(), handler.Register)
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/refresh", handler.RefreshToken)
	router.Post("/logout", handler.Logout)

	// Protected routes
	router.Get("/me", middleware.AuthMiddleware(cfg), handler.Me)
	router.Post("/logout-all", middleware.AuthMiddleware(cfg), handler.LogoutAll)
}

// setupProfileRoutes configures profile routes (authenticated)
func setupProfileRoutes(router fiber.Router, handler *handlers.UserHandler) {
	router.Get("/", handler.GetProfile)
	router.Put("/", handler.UpdateProfile)
	router.Put("/password", middleware.StrictRateLimiter(), handler.ChangePassword)
}

// setupUserRoutes configures user management routes (admin only)
func setupUserRoutes(router fiber.Router, handler *handlers.UserHandler) {
	router.Get("/", handler.ListUsers)
	router.Put("/:id/deactivate", handler.DeactivateUser)
}

// setupTravelRoutes configures travel record routes
func setupTravelRoutes(router fiber.Router, handler *handlers.TravelHandler) {
	router.Post("/", handler.Create)
	router.Get("/", handler.List)
	router.Get("/open", handler.ListOpen)
	router.Get("/:id", handler.GetByID)
	router.Put("/:id", handler.Update)
	router.Put("/:id/close", handler.CloseStay)
	router.Delete("/:id", handler.Delete)
}

// setupDocumentRoutes configures document routes
func setupDocumentRoutes(router fiber.Router, handler *handlers.DocumentHandler) {
	router.Post("/", handler.Create)
	router.Get("/", handler.List)
	router.Get("/:id", handler.GetByID)
	router.Put("/:id", handler.Update)
	router.Put("/:id/status", handler.SetStatus)
	router.Delete("/:id", handler.Delete)

	// Sharing (3 req/min/IP on creation)
	router.Post("/:id/share", middleware.StrictRateLimiter(), handler.Share)
	router.Delete("/:id/share/:share_id", handler.RevokeShare)
}

// setupTaxStatusRoutes configures declared tax status routes
func setupTaxStatusRoutes(router fiber.Router, handler *handlers.TaxStatusHandler) {
	router.Put("/", handler.Set)
	router.Get("/", handler.List)
	router.Delete("/:id", handler.Delete)
}

// setupDashboardRoutes configures dashboard routes
func setupDashboardRoutes(router fiber.Router, handler *handlers.DashboardHandler) {
	router.Get("/", handler.GetDashboard)
	router.Get("/risks", handler.GetTaxRisks)
	router.Get("/alerts", handler.GetAlerts)
	router.Get("/critical-dates", handler.GetCriticalDates)
}

// setupCountryRoutes configures country reference routes
func setupCountryRoutes(router fiber.Router, handler *handlers.CountryHandler, cfg *config.Config) {
	// Public reads, cached for an hour
	router.Get("/", middleware.ReferenceDataCache(), handler.List)
	router.Get("/:code", middleware.ReferenceDataCache(), handler.GetByCode)

	// Admin writes
	router.Put("/", middleware.AuthMiddleware(cfg), middleware.AdminOnly(), handler.Upsert)
}
