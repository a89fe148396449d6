package router

import (
	"log"
	"time"

	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/messaging"
	"github.com/devarchon/vibely/backend/internal/handlers"
	"github.com/devarchon/vibely/backend/internal/middleware"
	"github.com/devarchon/vibely/backend/internal/models"
	"github.com/devarchon/vibely/backend/internal/push"
	"github.com/devarchon/vibely/backend/internal/ratelimit"
	"github.com/devarchon/vibely/backend/internal/relationships"
	"github.com/devarchon/vibely/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgClient *mongo.Client, redisClient *redis.Client, firebaseAuthClient *auth.Client, messagingClient *messaging.Client) {
	// Register PostgreSQL schema once, at startup
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.Relationship{},
		&models.Block{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	relationshipRepo := repositories.NewPostgresRelationshipRepository(pgdb)
	blockRepo := repositories.NewPostgresBlockRepository(pgdb)
	notificationRepo := repositories.NewPostgresNotificationRepository(pgdb)
	postRepo := repositories.NewMongoPostRepository(mgClient.Database("vibely"))

	// --- Core services ---
	notifier := push.NewFCMNotifier(messagingClient, userRepo)
	relationshipService := relationships.NewService(relationshipRepo, blockRepo, userRepo, notificationRepo, notifier)

	// --- Rate limiting ---
	// Redis counters when available, in-process counters otherwise
	var counterStore ratelimit.CounterStore
	if redisClient != nil {
		counterStore = ratelimit.NewRedisStore(redisClient, "ratelimit:")
	} else {
		counterStore = ratelimit.NewMemoryStore()
		log.Println("Redis not configured, falling back to in-memory rate limiting.")
	}
	limiter := ratelimit.New(counterStore)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authGroup.Use(middleware.RateLimitMiddleware(middleware.RateLimitConfig{
		Limiter: limiter,
		Limit:   10,
		Window:  time.Minute,
	}))
	authHandler := handlers.NewAuthHandler(userRepo, firebaseAuthClient)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware())
	log.Println("JWT authentication middleware applied to /api/v1 group.")

	// User profile routes
	userHandler := handlers.NewUserHandler(userRepo, postRepo, relationshipService)
	userHandler.RegisterProfileRoutes(api)
	api.GET("/users/search", userHandler.SearchUsers)
	log.Println("User profile routes configured.")

	// Relationship routes. The status and pending-request reads answer
	// the none/empty shape for anonymous callers, so they live on a
	// group with optional authentication instead of the JWT-gated one.
	relationshipHandler := handlers.NewRelationshipHandler(relationshipService, userRepo)
	relationshipHandler.RegisterRelationshipRoutes(api)
	apiReads := e.Group("/api/v1")
	apiReads.Use(middleware.OptionalJWTAuthMiddleware())
	relationshipHandler.RegisterRelationshipReadRoutes(apiReads)
	log.Println("Relationship routes configured.")

	// Block routes
	blockHandler := handlers.NewBlockHandler(relationshipService)
	blockHandler.RegisterBlockRoutes(api)
	log.Println("Block routes configured.")

	// Post routes
	postHandler := handlers.NewPostHandler(postRepo, userRepo, relationshipService)
	postHandler.RegisterPostRoutes(api)
	log.Println("Post routes configured.")

	// Notification routes
	notificationHandler := handlers.NewNotificationHandler(notificationRepo, userRepo)
	notificationHandler.RegisterNotificationRoutes(api)
	log.Println("Notification routes configured.")

	log.Println("All routes configured.")
}
