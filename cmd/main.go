package main

import (
	"context"
	"fmt"
	"log"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"servicefinder/internal/caching"
	"servicefinder/internal/config"
	"servicefinder/internal/handlers"
	"servicefinder/internal/middleware"
	"servicefinder/internal/repositories"
	"servicefinder/internal/seed"
	"servicefinder/internal/services"
	"servicefinder/pkg/database"
)

const version = "1.0.0"

func main() {
	cfg := config.Load()
	ctx := context.Background()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := database.EnsureSchema(ctx, pool); err != nil {
		log.Fatalf("Failed to bootstrap schema: %v", err)
	}

	// Repositories
	userRepo := repositories.NewUserRepo(pool)
	serviceRepo := repositories.NewServiceRepo(pool)

	// Services
	hasher := services.NewPasswordHasher()
	authSvc := services.NewAuthService(cfg.JWTSecret, cfg.TokenTTL)
	cacheSvc := caching.NewRedisCacheService(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	catalogSvc := services.NewCatalogService(serviceRepo, cacheSvc)

	// Sample data for fresh databases
	if err := seed.Run(ctx, userRepo, serviceRepo, hasher); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	// Handlers
	authHandlers := handlers.NewAuthHandlers(userRepo, hasher, authSvc)
	serviceHandlers := handlers.NewServiceHandlers(catalogSvc)
	healthHandlers := handlers.NewHealthHandlers(pool)

	e := echo.New()
	e.HideBanner = true

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints (no auth required)
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)

	// Authentication routes
	e.POST("/signup", authHandlers.Signup)
	e.POST("/login", authHandlers.Login)

	jwtMiddleware := echojwt.WithConfig(middleware.JWTConfig(authSvc))
	e.GET("/protected", authHandlers.Protected, jwtMiddleware)

	// Catalog routes
	api := e.Group("/api")
	api.GET("/services", serviceHandlers.ListServices)
	api.GET("/services/categories", serviceHandlers.ListCategories)
	api.POST("/services", serviceHandlers.CreateService, jwtMiddleware)

	log.Printf("servicefinder v%s starting on port %d", version, cfg.Port)
	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", cfg.Port)))
}
