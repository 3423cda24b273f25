package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"time"

	"societyhub/config"
	"societyhub/repository"
	"societyhub/routes"
	"societyhub/schema"
	"societyhub/service"
	"societyhub/worker"

	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Load configuration
	cfg := config.LoadConfig()

	// Initialize database connection (UTC for consistent timestamps)
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DBName,
	)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		log.Fatalf("Failed to open database connection: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	log.Println("Database connection established")

	// Create missing tables (never drops existing data)
	schema.InitializeDatabase(db)

	// Optional Redis verdict cache. An empty REDIS_ADDR disables it and
	// the validator falls back to calling the AI service every time.
	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		log.Printf("Verdict cache enabled (redis at %s)", cfg.Redis.Addr)
	}

	// Initialize repositories
	societyRepo := repository.NewSocietyRepository(db)
	userRepo := repository.NewUserRepository(db)
	complaintRepo := repository.NewComplaintRepository(db)
	voteRepo := repository.NewVoteRepository(db)

	// Initialize services
	validator := service.NewAIValidationService(
		cfg.AI.ServiceURL,
		time.Duration(cfg.AI.TimeoutSeconds)*time.Second,
		redisClient,
		time.Duration(cfg.AI.CacheTTLMinutes)*time.Minute,
	)
	policy := service.NewVerdictPolicy(
		cfg.Complaint.VerdictPolicy,
		cfg.Complaint.ReputationReward,
		cfg.Complaint.ReputationPenalty,
	)
	societyService := service.NewSocietyService(societyRepo)
	userService := service.NewUserService(userRepo, societyRepo, cfg.Auth.JWTSecret, cfg.Auth.TokenExpiryHrs)
	complaintService := service.NewComplaintService(
		complaintRepo,
		userRepo,
		societyRepo,
		validator,
		policy,
		cfg.Complaint.EscalationThreshold,
	)

	// Object storage is optional; without credentials the upload
	// endpoint is simply not registered and clients pass imageUrl directly.
	var storageService *service.StorageService
	if cfg.Storage.AccessKey != "" && cfg.Storage.SecretKey != "" {
		storageService, err = service.NewStorageService(
			cfg.Storage.AccessKey,
			cfg.Storage.SecretKey,
			cfg.Storage.Region,
			cfg.Storage.Endpoint,
			cfg.Storage.Bucket,
			cfg.Storage.PublicURLPrefix,
		)
		if err != nil {
			log.Fatalf("Failed to initialize object storage: %v", err)
		}
		log.Printf("Object storage enabled (bucket %s)", cfg.Storage.Bucket)
	} else {
		log.Println("Object storage disabled (no credentials configured)")
	}

	// Upvote counter reconciliation worker
	var reconcileWorker *worker.ReconcileWorker
	if cfg.Complaint.ReconcileIntervalSeconds > 0 {
		reconcileWorker = worker.NewReconcileWorker(
			complaintRepo,
			time.Duration(cfg.Complaint.ReconcileIntervalSeconds)*time.Second,
		)
		reconcileWorker.Start()
	}

	// Setup routes
	router := routes.SetupRoutes(
		complaintService,
		societyService,
		userService,
		storageService,
		voteRepo,
		[]byte(cfg.Auth.JWTSecret),
		cfg.Auth.Enforce,
	)

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           3600,
	})

	// Start server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Server starting on %s", addr)
	log.Fatal(http.ListenAndServe(addr, c.Handler(router)))
}
