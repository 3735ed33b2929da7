package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mkuiper/portfolio-tracker/internal/api"
	"github.com/mkuiper/portfolio-tracker/internal/api/middleware"
	"github.com/mkuiper/portfolio-tracker/internal/config"
	"github.com/mkuiper/portfolio-tracker/internal/database"
	"github.com/mkuiper/portfolio-tracker/internal/jobs"
	"github.com/mkuiper/portfolio-tracker/internal/repository"
	"github.com/mkuiper/portfolio-tracker/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Apply pending migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Create repositories
	positionRepo := repository.NewPositionRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	snapshotRepo := repository.NewSnapshotRepository(db)

	// Create services
	systemService := service.NewSystemService(db)
	positionService := service.NewPositionService(positionRepo)
	transactionService := service.NewTransactionService(transactionRepo, positionRepo)
	snapshotService := service.NewSnapshotService(snapshotRepo, positionRepo)
	analyticsService := service.NewAnalyticsService(positionRepo, transactionRepo, snapshotRepo)

	// API-key verification for mutating endpoints
	apiKeyAuth, err := middleware.NewAPIKeyAuth(cfg.Auth.Key, cfg.Auth.TTL)
	if err != nil {
		log.Fatalf("Failed to configure API key auth: %v", err)
	}
	if cfg.Auth.Key == "" {
		log.Println("API key not set, mutating endpoints are unauthenticated")
	}

	// Start the daily snapshot scheduler
	scheduler := jobs.NewScheduler(snapshotService)
	if err := scheduler.Start(cfg.Snapshot.Schedule); err != nil {
		log.Fatalf("Failed to start snapshot scheduler: %v", err)
	}
	defer scheduler.Stop()

	// Create router
	router := api.NewRouter(api.Services{
		System:      systemService,
		Position:    positionService,
		Transaction: transactionService,
		Snapshot:    snapshotService,
		Analytics:   analyticsService,
	}, apiKeyAuth, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
