package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"

	httpapi "carcompany-backend/internal/api/http"
	"carcompany-backend/internal/config"
	"carcompany-backend/internal/logger"
	"carcompany-backend/internal/repository/postgres"
	"carcompany-backend/internal/service"
	"carcompany-backend/internal/settlement"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// A .env file is optional; real environment variables win either way
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting car rental backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "schema", cfg.Database.Schema, "user", cfg.Database.User)
	logger.Info("Settlement configuration", "late_fee_policy", cfg.Settlement.LateFeePolicy, "default_payment_method", cfg.Settlement.DefaultPaymentMethod)

	// Money is rendered as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxIdleTime(cfg.GetMaxIdleTime())

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Services
	policy, err := settlement.ParseLateFeePolicy(cfg.Settlement.LateFeePolicy)
	if err != nil {
		log.Fatalf("Invalid late fee policy: %v", err)
	}
	calc := settlement.NewCalculator(policy)

	rentalService := service.NewRentalService(store, store.RentalRepository, time.Now)
	returnService := service.NewReturnService(store, calc, cfg.Settlement.DefaultPaymentMethod, time.Now)
	reportService := service.NewReportService(store.ReportRepository, calc, time.Now)
	fleetService := service.NewFleetService(store.CarRepository, store.MaintenanceRepository, time.Now)

	// Initialize HTTP API
	router := httpapi.NewRouter(
		httpapi.NewRentalHandler(rentalService, returnService, reportService),
		httpapi.NewFleetHandler(fleetService),
	)

	srv := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server failed", "error", err)
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down HTTP server...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
}
