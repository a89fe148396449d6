package main

import (
	"context"
	"log"

	"github.com/devarchon/vibely/backend/internal/router"
	"github.com/devarchon/vibely/backend/pkg/config"
	"github.com/devarchon/vibely/backend/pkg/firebase"
	"github.com/devarchon/vibely/backend/pkg/validators"
	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connections
	db, err := config.InitDB(cfg.PostgresConnStr, cfg.MongoURI)
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB() // Ensure database connections are closed when main exits

	ctx := context.Background()

	// Initialize Redis for rate limiting; the server runs without it
	redisClient, err := config.InitRedis(ctx, cfg.RedisURL)
	if err != nil {
		log.Printf("Redis unavailable, continuing without it: %v", err)
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	// Initialize Firebase
	firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, db.Postgres, db.Mongo, redisClient, firebaseApp.AuthClient, firebaseApp.MessagingClient)

	// Validator
	e.Validator = validators.NewValidator()

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
