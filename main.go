package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"parcel-router/internal/cache"
	"parcel-router/internal/common/logging"
	"parcel-router/internal/config"
	"parcel-router/internal/handlers"
	"parcel-router/internal/middleware"
	"parcel-router/internal/refdata"
	"parcel-router/internal/routing"
	"parcel-router/internal/server"
)

func main() {
	// A missing .env file is fine, the environment wins anyway
	_ = godotenv.Load()

	logging.InitGlobalLogger()
	defer logging.MustSync()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logging.Error("Invalid configuration", err)
		os.Exit(1)
	}

	// Open the reference store
	var store *refdata.Store
	var err error
	switch cfg.DatabaseType {
	case "postgres", "postgresql":
		store, err = refdata.InitPostgres(cfg.PostgresDSN())
	default:
		store, err = refdata.Init(cfg.DatabasePath)
	}
	if err != nil {
		logging.Error("Failed to open reference store", err)
		os.Exit(1)
	}
	defer store.Close()

	version, err := store.Version()
	if err != nil {
		logging.Error("Failed to read dataset version", err)
		os.Exit(1)
	}
	logging.Info("Reference store opened",
		logging.String("backend", cfg.DatabaseType),
		logging.String("routingtable_version", version),
	)

	// Set up the lookup cache
	routeCache, err := cache.New(cfg)
	if err != nil {
		logging.Error("Failed to initialize cache backend", err)
		os.Exit(1)
	}

	rt, err := routing.NewRouter(store, cfg.OriginCountry, cfg.DefaultServiceCode)
	if err != nil {
		logging.Error("Failed to initialize router", err)
		os.Exit(1)
	}
	resolver := routing.NewCachedRouter(rt, routeCache)

	h := handlers.New(store, resolver, cfg)

	// Set up routes
	router := mux.NewRouter()
	router.Use(middleware.RequestIDMiddleware)
	router.Use(middleware.LoggingMiddleware)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/route", h.ResolveRoute).Methods("POST")
	api.HandleFunc("/route", h.ResolveRouteQuery).Methods("GET")
	api.HandleFunc("/depots/{id}", h.GetDepot).Methods("GET")
	api.HandleFunc("/version", h.GetVersion).Methods("GET")

	router.HandleFunc("/health", h.HealthCheck).Methods("GET")

	// Start the HTTP server
	srv := server.New(router, cfg.Port)
	if err := srv.Start(); err != nil {
		logging.Error("Server failed to start", err)
		os.Exit(1)
	}
	logging.Info("Server started", logging.String("port", cfg.Port))

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logging.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Error("Server forced to shutdown", err)
		os.Exit(1)
	}

	logging.Info("Server exited")
}
