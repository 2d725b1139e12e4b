package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/credentialwatch/alertd/internal/config"
	"github.com/credentialwatch/alertd/internal/database"
	"github.com/credentialwatch/alertd/internal/handlers"
	"github.com/credentialwatch/alertd/internal/mcp"
	"github.com/credentialwatch/alertd/internal/middleware"
	"github.com/credentialwatch/alertd/internal/ratelimit"
	"github.com/credentialwatch/alertd/internal/services"
	"github.com/credentialwatch/alertd/internal/tools"
	"github.com/joho/godotenv"
	"gorm.io/gorm/logger"
)

const version = "1.0.0"

func main() {
	// Load .env file if it exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found or error loading it (this is fine if using environment variables): %v", err)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting CredentialWatch alert service...")

	// Initialize database connection
	db, err := database.Connect(cfg.DatabaseURL, logger.Warn)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run database migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	// Initialize alert store and service
	alertStore := database.NewAlertStore(db)
	alertService := services.NewAlertService(alertStore)
	log.Printf("Alert service initialized")

	// Initialize MCP tool server and register the alert tools
	mcpServer := mcp.NewServer("credentialwatch-alerts", version, log.Default())
	registry := tools.NewRegistry(mcpServer, alertService, log.Default())
	registry.RegisterAll()

	// Initialize HTTP handlers
	httpHandler := handlers.NewHTTPHandler(version)
	apiHandler := handlers.NewAPIHandler(alertService)

	// Set up HTTP server routes
	mux := http.NewServeMux()
	httpHandler.SetupRoutes(mux)
	apiHandler.SetupRoutes(mux)

	// The tool-call endpoint is rate limited; agent callers can retry
	// on 429.
	toolLimiter := ratelimit.New(cfg.ToolRatePerSecond, cfg.ToolBurst)
	rateLimited := middleware.NewRateLimitMiddleware(toolLimiter)
	mux.Handle("/mcp", rateLimited.Wrap(http.HandlerFunc(mcpServer.HandleHTTP)))
	mux.Handle("/mcp/sse", rateLimited.Wrap(http.HandlerFunc(mcpServer.HandleHTTP)))
	log.Printf("Tool rate limiter created: %.0f req/sec, burst %d", cfg.ToolRatePerSecond, cfg.ToolBurst)

	// Wrap all routes with request ID and CORS middleware
	corsMiddleware := middleware.NewCORSMiddleware(cfg.AllowedOrigins...)
	handler := middleware.RequestIDMiddleware(corsMiddleware.Wrap(mux))

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler: handler,
	}

	go func() {
		log.Printf("Starting HTTP server on port %d", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	log.Printf("Health check endpoint: http://localhost:%d/health", cfg.HTTPPort)
	log.Printf("API base URL: http://localhost:%d/api", cfg.HTTPPort)
	log.Printf("MCP tool endpoint: http://localhost:%d/mcp", cfg.HTTPPort)

	// Set up graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Println("Received shutdown signal, cleaning up...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("Error shutting down HTTP server: %v", err)
	}

	if err := database.Close(db); err != nil {
		log.Printf("Error closing database: %v", err)
	}

	log.Println("Shutdown complete")
}
