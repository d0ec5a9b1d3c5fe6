package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fitcoach_backend/config"
	"fitcoach_backend/db"
	"fitcoach_backend/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found") // Non-fatal in production
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	if cfg.DBPassword == "" {
		log.Fatal("DB_PASSWORD environment variable is required")
	}
	if cfg.CronSecret == "" {
		log.Fatal("CRON_SECRET environment variable is required")
	}
	if cfg.InternalPushToken == "" {
		log.Fatal("INTERNAL_PUSH_TOKEN environment variable is required")
	}

	// Connect to database
	database, err := db.Initialize(db.Config{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
	})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	defer database.Close()

	// Initialize database schema
	if err := db.InitSchema(database); err != nil {
		log.Fatalf("Error initializing database schema: %v", err)
	}

	// Seed roles
	if err := db.SeedData(database); err != nil {
		log.Printf("Warning: Error seeding initial data: %v", err)
	}

	// Initialize router
	r := gin.Default()

	// Setup CORS for the web client
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{
		"Origin",
		"Content-Length",
		"Content-Type",
		"Authorization",
		"x-internal-token",
	}
	corsConfig.AllowMethods = []string{
		"GET",
		"POST",
		"PUT",
		"DELETE",
		"PATCH",
	}
	r.Use(cors.New(corsConfig))

	// Setup routes
	routes.SetupRoutes(r, database, cfg)

	// Run server
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}
}
