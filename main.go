package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vagas-rmc/config"
	"vagas-rmc/internal/app"
	"vagas-rmc/internal/database"
	"vagas-rmc/internal/server"
	"vagas-rmc/internal/validation"

	_ "vagas-rmc/docs" // Registers the OpenAPI document served under /swagger

	"github.com/joho/godotenv"
)

// @title           Vagas RMC API
// @version         1.0
// @description     Job board for the Campinas metropolitan region: candidates, companies, postings and applications.

// @host      localhost:8080
// @BasePath  /api/v1
// @schemes   http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using the process environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// --- Database ---
	if cfg.Migrations.Enabled {
		if err := database.Migrate(cfg.DB.DSN()); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	}

	dbPool, err := database.NewConnectionPool(cfg.DB)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	if cfg.Seed.Enabled {
		seedCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err := database.Seed(seedCtx, dbPool, cfg.Seed)
		cancel()
		if err != nil {
			log.Fatalf("Failed to seed reference data: %v", err)
		}
	}

	// --- Initialize Redis Client ---
	redisClient, err := database.NewRedisClient(cfg.Redis)
	if err != nil {
		log.Printf("WARN: %v. Continuing without the reference cache.", err)
		redisClient = nil
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	application := &app.Application{
		Config:      cfg,
		DBPool:      dbPool,
		RedisClient: redisClient,
		Validator:   validation.New(),
	}

	srv := server.NewServer(application)

	// --- Graceful Shutdown Handling ---
	go func() {
		if err := srv.Start(); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit // Block until a signal is received

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Application gracefully stopped.")
}
