package main

import (
	"alcyxob/fitgpt/internal/api"
	"alcyxob/fitgpt/internal/config"
	"alcyxob/fitgpt/internal/planner"
	"alcyxob/fitgpt/internal/repository"
	"alcyxob/fitgpt/internal/repository/memory"
	"alcyxob/fitgpt/internal/repository/mongo"
	"alcyxob/fitgpt/internal/service"
	"alcyxob/fitgpt/internal/storage"
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

// @title FitGPT API
// @version 1.0
// @description Personal coaching API: onboarding profile, AI-generated weekly plans, workout logs and progress.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token. Only required when a passcode is configured.
func main() {
	log.Println("Starting FitGPT Server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Println("Configuration loaded.")

	// --- State Store ---
	var stateRepo repository.StateRepository
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		log.Println("WARN: Using in-memory state store; data is lost on restart.")
		stateRepo = memory.NewStateRepository()
	case config.BackendMongo:
		dbClient, err := mongo.ConnectDB(cfg.Database.URI)
		if err != nil {
			log.Fatalf("FATAL: Could not connect to MongoDB: %v", err)
		}
		defer func() {
			log.Println("Disconnecting MongoDB...")
			if err := mongo.DisconnectDB(dbClient); err != nil {
				log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
			}
		}()
		appDB := dbClient.Database(cfg.Database.Name)
		log.Println("Database connection established.")

		log.Println("Ensuring database indexes...")
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
			defer cancel()
			if err := mongo.EnsureStateIndexes(ctx, appDB.Collection("app_state")); err != nil {
				log.Printf("ERROR: Failed to create state indexes: %v", err)
				return
			}
			log.Println("Index creation process completed.")
		}()
		stateRepo = mongo.NewMongoStateRepository(appDB)
	default:
		log.Fatalf("FATAL: Unknown storage backend %q (want %q or %q)", cfg.Storage.Backend, config.BackendMongo, config.BackendMemory)
	}

	// --- Initialize Storage ---
	var fileStorage storage.FileStorage
	if cfg.S3.Enabled() {
		log.Println("Initializing backup storage...")
		fileStorage, err = storage.NewS3Storage(context.Background(), cfg.S3)
		if err != nil {
			log.Fatalf("FATAL: Failed to initialize S3 storage: %v", err)
		}
	} else {
		log.Println("WARN: No S3 bucket configured; backups are disabled.")
	}

	// --- Initialize Services ---
	log.Println("Initializing services...")
	generator := planner.NewClient(planner.Config{
		APIURL:    cfg.Anthropic.APIURL,
		Model:     cfg.Anthropic.Model,
		MaxTokens: cfg.Anthropic.MaxTokens,
		Timeout:   cfg.Anthropic.Timeout,
	})
	appService := service.NewAppService(stateRepo, generator)
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 30*time.Second)
	err = appService.Load(loadCtx)
	cancelLoad()
	if err != nil {
		log.Fatalf("FATAL: Could not load app state: %v", err)
	}
	backupService := service.NewBackupService(appService, fileStorage, cfg.S3.PresignExpiry)
	authService, err := service.NewAuthService(cfg.Auth.Passcode, cfg.JWT.Secret, cfg.JWT.Expiration)
	if err != nil {
		log.Fatalf("FATAL: Could not initialize passcode lock: %v", err)
	}
	if !authService.Enabled() {
		log.Println("WARN: No passcode configured; the API is open.")
	}

	// --- Initialize Gin Engine ---
	router := gin.Default() // Includes Logger and Recovery middleware

	log.Println("Setting up API routes...")
	api.SetupRoutes(router, authService, appService, backupService)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:        cfg.Server.Address,
		Handler:     router,
		ReadTimeout: 10 * time.Second,
		// Plan generation waits on the completions endpoint.
		WriteTimeout: cfg.Anthropic.Timeout + 10*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Printf("ERROR: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
