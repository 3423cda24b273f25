package config

import (
	"os"
	"strconv"
)

// Config holds application configuration
type Config struct {
	Database  DatabaseConfig
	Server    ServerConfig
	Auth      AuthConfig
	AI        AIConfig
	Redis     RedisConfig
	Storage   StorageConfig
	Complaint ComplaintConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host string
	Port string
}

// AuthConfig holds JWT configuration
type AuthConfig struct {
	JWTSecret      string
	TokenExpiryHrs int
	// Enforce gates the admin complaint endpoints behind bearer auth.
	// Off by default to match the open pilot posture.
	Enforce bool
}

// AIConfig holds media validator configuration
type AIConfig struct {
	ServiceURL      string // AI_SERVICE_URL: validator endpoint
	TimeoutSeconds  int    // AI_TIMEOUT_SECONDS: per-call budget; expiry is treated as unavailable
	CacheTTLMinutes int    // AI_CACHE_TTL_MINUTES: verdict cache lifetime
}

// RedisConfig holds the optional verdict-cache configuration.
// An empty Addr disables the cache entirely.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// StorageConfig holds S3-compatible blob storage configuration
type StorageConfig struct {
	AccessKey       string
	SecretKey       string
	Region          string
	Endpoint        string
	Bucket          string
	PublicURLPrefix string
}

// ComplaintConfig holds lifecycle-engine knobs
type ComplaintConfig struct {
	EscalationThreshold      int    // upvotes needed to auto-promote PENDING_VERIFICATION -> OPEN
	VerdictPolicy            string // COMPLAINT_VERDICT_POLICY: reject | reputation
	ReputationReward         int    // applied on a positive verdict under the reputation policy
	ReputationPenalty        int    // applied on a negative verdict under the reputation policy
	ReconcileIntervalSeconds int    // upvote reconciliation worker interval (0 = disabled)
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "3306"),
			User:     getEnv("DB_USER", "root"),
			Password: os.Getenv("DB_PASSWORD"),
			DBName:   getEnv("DB_NAME", "societyhub"),
		},
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnv("PORT", getEnv("SERVER_PORT", "8080")),
		},
		Auth: AuthConfig{
			JWTSecret:      getEnv("JWT_SECRET", "dev-secret-change-in-production"),
			TokenExpiryHrs: getEnvInt("JWT_EXPIRY_HOURS", 24),
			Enforce:        getEnvBool("AUTH_ENFORCE", false),
		},
		AI: AIConfig{
			ServiceURL:      getEnv("AI_SERVICE_URL", "http://localhost:5000/verify-video"),
			TimeoutSeconds:  getEnvInt("AI_TIMEOUT_SECONDS", 10),
			CacheTTLMinutes: getEnvInt("AI_CACHE_TTL_MINUTES", 60),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Storage: StorageConfig{
			AccessKey:       os.Getenv("STORAGE_ACCESS_KEY"),
			SecretKey:       os.Getenv("STORAGE_SECRET_KEY"),
			Region:          getEnv("STORAGE_REGION", "us-east-1"),
			Endpoint:        os.Getenv("STORAGE_ENDPOINT"),
			Bucket:          getEnv("STORAGE_BUCKET", "complaint-media"),
			PublicURLPrefix: os.Getenv("STORAGE_PUBLIC_URL_PREFIX"),
		},
		Complaint: ComplaintConfig{
			EscalationThreshold:      getEnvInt("ESCALATION_THRESHOLD", 3),
			VerdictPolicy:            getEnv("COMPLAINT_VERDICT_POLICY", "reject"),
			ReputationReward:         getEnvInt("REPUTATION_REWARD", 10),
			ReputationPenalty:        getEnvInt("REPUTATION_PENALTY", 50),
			ReconcileIntervalSeconds: getEnvInt("UPVOTE_RECONCILE_INTERVAL_SECONDS", 3600),
		},
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable or returns a default value
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
