package http

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pos-backend/internal/handlers"
	"pos-backend/internal/middleware"
	"pos-backend/internal/models"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	shopHandler *handlers.ShopHandler,
	customerHandler *handlers.CustomerHandler,
	inventoryHandler *handlers.InventoryHandler,
	saleHandler *handlers.SaleHandler,
	reportHandler *handlers.ReportHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Public API routes - Authentication
	r.HandleFunc("/auth/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Current principal
	meAPI := r.PathPrefix("/api/user").Subrouter()
	meAPI.Use(authMiddleware.Authenticate)
	meAPI.HandleFunc("", authHandler.Me).Methods("GET")

	// Protected API routes - User administration (superuser only)
	adminAPI := r.PathPrefix("/api/admin").Subrouter()
	adminAPI.Use(authMiddleware.RequireRole(models.RoleSuperuser))
	adminAPI.HandleFunc("/users", userHandler.List).Methods("GET")
	adminAPI.HandleFunc("/users", userHandler.Create).Methods("POST")
	adminAPI.HandleFunc("/users/{id}", userHandler.Get).Methods("GET")
	adminAPI.HandleFunc("/users/{id}", userHandler.Update).Methods("PUT")
	adminAPI.HandleFunc("/users/{id}", userHandler.Delete).Methods("DELETE")
	adminAPI.HandleFunc("/login-logs", authHandler.ListLoginLogs).Methods("GET")

	// Protected API routes - Shops
	shopsAPI := r.PathPrefix("/api/shops").Subrouter()
	shopsAPI.Use(authMiddleware.Authenticate)
	shopsAPI.HandleFunc("", shopHandler.List).Methods("GET")
	shopsAPI.HandleFunc("", shopHandler.Create).Methods("POST")
	shopsAPI.HandleFunc("/{id:[0-9]+}", shopHandler.Get).Methods("GET")
	shopsAPI.HandleFunc("/{id:[0-9]+}", shopHandler.Update).Methods("PUT")
	shopsAPI.HandleFunc("/{id:[0-9]+}", shopHandler.Delete).Methods("DELETE")

	// Protected API routes - per-shop resources
	shopsAPI.HandleFunc("/{shopId:[0-9]+}/inventory", inventoryHandler.List).Methods("GET")
	shopsAPI.HandleFunc("/{shopId:[0-9]+}/inventory", inventoryHandler.Create).Methods("POST")
	shopsAPI.HandleFunc("/{shopId:[0-9]+}/inventory/{id:[0-9]+}", inventoryHandler.Get).Methods("GET")
	shopsAPI.HandleFunc("/{shopId:[0-9]+}/customers", customerHandler.List).Methods("GET")
	shopsAPI.HandleFunc("/{shopId:[0-9]+}/customers", customerHandler.Create).Methods("POST")
	shopsAPI.HandleFunc("/{shopId:[0-9]+}/customers/{id:[0-9]+}", customerHandler.Get).Methods("GET")
	shopsAPI.HandleFunc("/{shopId:[0-9]+}/sales", saleHandler.Create).Methods("POST")
	shopsAPI.HandleFunc("/{shopId:[0-9]+}/sales", saleHandler.List).Methods("GET")
	shopsAPI.HandleFunc("/{shopId:[0-9]+}/sales/export", saleHandler.Export).Methods("GET")
	shopsAPI.HandleFunc("/{shopId:[0-9]+}/reports/summary", reportHandler.Summary).Methods("GET")

	// Protected API routes - inventory items addressed by id alone
	inventoryAPI := r.PathPrefix("/api/inventory").Subrouter()
	inventoryAPI.Use(authMiddleware.Authenticate)
	inventoryAPI.HandleFunc("/{id:[0-9]+}", inventoryHandler.Update).Methods("PUT")
	inventoryAPI.HandleFunc("/{id:[0-9]+}", inventoryHandler.Delete).Methods("DELETE")

	// Health endpoints (no auth required - for Kubernetes probes)
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")
	r.HandleFunc("/health/detailed", healthHandler.DetailedHealth).Methods("GET")

	// Metrics endpoint (Prometheus format)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
