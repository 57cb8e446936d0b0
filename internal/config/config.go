package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// StorageMemory keeps users, results and sessions in process memory (dev and tests)
const StorageMemory = "memory"

// Config holds all runtime configuration
type Config struct {
	HTTPPort string
	Storage  string // "mongo" or "memory"

	Mongo   MongoConfig
	Redis   RedisConfig
	Auth    AuthConfig
	Scoring ScoringConfig
	Cache   CacheConfig
	CORS    CORSConfig
	Log     LogConfig
}

// MongoConfig is the document store connection
type MongoConfig struct {
	URI      string
	Database string
}

// RedisConfig is the cache connection
type RedisConfig struct {
	Addr     string
	Password string `json:"-"`
	DB       int
}

// AuthConfig controls token issuing and login throttling
type AuthConfig struct {
	JWTSecret   string `json:"-"` // Never serialize
	TokenTTL    time.Duration
	RateLimit   float64 // requests per second per client IP on /v1/auth
	RateBurst   int
	TrustProxy  bool // key rate limits by X-Forwarded-For; enable only behind a proxy that sets it
	BcryptCost  int
	MinPassword int
}

// ScoringConfig controls answer validation in the engine
type ScoringConfig struct {
	StrictAnswers bool
}

// CacheConfig sets TTLs of cached documents
type CacheConfig struct {
	SessionTTL   time.Duration
	DashboardTTL time.Duration
}

// CORSConfig are the values of the CORS response headers
type CORSConfig struct {
	AllowedOrigins string
	AllowedMethods string
	AllowedHeaders string
}

// LogConfig selects the logger mode and optional rotating file
type LogConfig struct {
	Mode       string // "development" or "production"
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Load reads configuration from the environment, after a .env file if present
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		HTTPPort: getEnvOrDefault("PORT", "8080"),
		Storage:  strings.ToLower(getEnvOrDefault("STORAGE_DRIVER", "mongo")),
		Mongo: MongoConfig{
			URI:      getEnvOrDefault("MONGO_URI", "mongodb://localhost:27017"),
			Database: getEnvOrDefault("MONGO_DATABASE", "menteazul"),
		},
		Redis: RedisConfig{
			Addr:     strings.TrimPrefix(getEnvOrDefault("REDIS_URI", "localhost:6379"), "redis://"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Auth: AuthConfig{
			JWTSecret:   getEnvOrDefault("JWT_SECRET", "super-secret-key-change-in-production"),
			TokenTTL:    getEnvDuration("JWT_TTL", 24*time.Hour),
			RateLimit:   getEnvFloat("AUTH_RATE_LIMIT", 1),
			RateBurst:   getEnvInt("AUTH_RATE_BURST", 5),
			TrustProxy:  getEnvBool("TRUST_PROXY_HEADERS", false),
			BcryptCost:  getEnvInt("BCRYPT_COST", 10),
			MinPassword: getEnvInt("PASSWORD_MIN_LENGTH", 6),
		},
		Scoring: ScoringConfig{
			StrictAnswers: getEnvBool("QCHAT_STRICT_ANSWERS", false),
		},
		Cache: CacheConfig{
			SessionTTL:   getEnvDuration("SESSION_TTL", 2*time.Hour),
			DashboardTTL: getEnvDuration("DASHBOARD_TTL", 5*time.Minute),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvOrDefault("CORS_ALLOWED_ORIGINS", "*"),
			AllowedMethods: getEnvOrDefault("CORS_ALLOWED_METHODS", "GET, POST, PUT, DELETE, OPTIONS"),
			AllowedHeaders: getEnvOrDefault("CORS_ALLOWED_HEADERS", "Content-Type, Authorization"),
		},
		Log: LogConfig{
			Mode:       getEnvOrDefault("LOG_MODE", "development"),
			File:       os.Getenv("LOG_FILE"),
			MaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 50),
			MaxBackups: getEnvInt("LOG_MAX_BACKUPS", 5),
			MaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 28),
		},
	}
}

// UseMemoryStorage reports whether external stores are bypassed
func (c *Config) UseMemoryStorage() bool {
	return c.Storage == StorageMemory
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return defaultValue
}
