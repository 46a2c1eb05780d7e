package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	api "agrirent-backend/internal/api/http"
	"agrirent-backend/internal/config"
	"agrirent-backend/internal/jobs"
	"agrirent-backend/internal/logger"
	"agrirent-backend/internal/repository/postgres"
	"agrirent-backend/internal/scheduler"
	"agrirent-backend/internal/security"
	"agrirent-backend/internal/service"
	"agrirent-backend/internal/storage"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting AgriRent backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	store := postgres.NewStore(db)

	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.SetRoleTokenExpiry)

	imageStore, err := storage.NewLocalStore(cfg.Storage.UploadDir, cfg.Storage.BaseURL, cfg.Storage.MaxFileSize, cfg.Storage.AllowedTypes)
	if err != nil {
		log.Fatalf("Failed to initialize image storage: %v", err)
	}

	authSvc := service.NewAuthService(store.UserRepository, tokenManager)
	vehicleSvc := service.NewVehicleService(store.VehicleRepository)
	bookingSvc := service.NewBookingService(store.BookingRepository, store.VehicleRepository)

	authMiddleware := api.NewAuthMiddleware(tokenManager, store.UserRepository)
	router := api.NewRouter(
		authMiddleware,
		api.NewAuthHandler(authSvc),
		api.NewVehicleHandler(vehicleSvc),
		api.NewBookingHandler(bookingSvc),
		api.NewImageHandler(imageStore),
	)

	sched := scheduler.NewScheduler(jobs.NewJobRunner(db, cfg))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
}
