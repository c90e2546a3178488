package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"pos-backend/internal/auth"
	"pos-backend/internal/cache"
	"pos-backend/internal/config"
	"pos-backend/internal/database"
	"pos-backend/internal/db"
	"pos-backend/internal/handlers"
	"pos-backend/internal/health"
	h "pos-backend/internal/http"
	"pos-backend/internal/middleware"
	"pos-backend/internal/repositories"
	"pos-backend/internal/services"
)

func main() {
	migrationsDir := flag.String("migrations", "migrations", "path to SQL migration files")
	flag.Parse()

	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Redis is optional - summaries just skip the cache if unavailable
	if err := cache.Init(cfg); err != nil {
		log.Printf("[Redis] Cache unavailable: %v (summary caching disabled)", err)
	} else {
		log.Println("[Redis] Cache connected successfully")
	}

	// Run database migrations
	log.Println("Running database migrations...")
	migrator := database.NewMigrator(pool, *migrationsDir)
	if err := migrator.RunMigrations(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	healthChecker := health.NewHealthChecker(pool)
	jwtManager := auth.NewJWTManager(cfg)

	// Repositories
	userRepo := repositories.NewUserRepository(pool)
	shopRepo := repositories.NewShopRepository(pool)
	customerRepo := repositories.NewCustomerRepository(pool)
	inventoryRepo := repositories.NewInventoryRepository(pool)
	saleRepo := repositories.NewSaleRepository(pool)
	loginLogRepo := repositories.NewLoginLogRepository(pool)

	// Services
	userService := services.NewUserService(userRepo, jwtManager)
	shopService := services.NewShopService(shopRepo)
	customerService := services.NewCustomerService(customerRepo)
	inventoryService := services.NewInventoryService(inventoryRepo)
	checkoutService := services.NewCheckoutService(inventoryRepo, customerRepo, saleRepo)
	reportService := services.NewReportService(saleRepo, inventoryRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, loginLogRepo)
	userHandler := handlers.NewUserHandler(userService)
	shopHandler := handlers.NewShopHandler(shopService)
	customerHandler := handlers.NewCustomerHandler(customerService, shopService)
	inventoryHandler := handlers.NewInventoryHandler(inventoryService, shopService)
	saleHandler := handlers.NewSaleHandler(checkoutService, reportService, shopService)
	reportHandler := handlers.NewReportHandler(reportService, shopService)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	authMiddleware := middleware.NewAuthMiddleware(jwtManager, userRepo)
	corsMiddleware := middleware.NewCORS(cfg)

	router := h.NewRouter(
		authHandler,
		userHandler,
		shopHandler,
		customerHandler,
		inventoryHandler,
		saleHandler,
		reportHandler,
		healthHandler,
		authMiddleware,
	)

	// RequestID wraps PanicRecovery so a crash log still carries the id.
	handler := middleware.RequestID(
		middleware.PanicRecovery(
			middleware.MetricsMiddleware(corsMiddleware(router))))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server running on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
