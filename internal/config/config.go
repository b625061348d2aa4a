package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const PROD_STRING = "prod"

// Config holds all application configuration loaded from environment.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	HTTPAddr     string
	DBDSN        string

	// Messaging. An empty AMQPURL disables event publishing and the
	// waitlist consumer.
	AMQPURL   string
	AMQPQueue string

	// Search cache. MemcachedAddr empty means local-only caching.
	MemcachedAddr  string
	CacheLocalTTL  time.Duration
	CacheSharedTTL time.Duration

	// Ranking prior used by the recommend sort.
	RankingPriorWeight float64
	RankingPriorMean   float64

	// Row-lock wait bound for booking admission.
	AdmissionLockTimeout time.Duration
}

// Load loads configuration from .env (optional) and environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		log.Printf("failed to load .env file: %v", err)
	}

	cfg := &Config{}

	// Production origin (default: empty)
	cfg.ProdOrigins = getEnv("PROD_ORIGINS", "")

	// Application environment (default: dev)
	appEnvStr := getEnv("APP_ENV", "dev")
	cfg.IsProduction = appEnvStr == PROD_STRING

	// HTTP listen address (default: :8080)
	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8080")

	// Database DSN is required
	cfg.DBDSN = os.Getenv("DB_DSN")
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required")
	}

	cfg.AMQPURL = getEnv("AMQP_URL", "")
	cfg.AMQPQueue = getEnv("AMQP_QUEUE", "capacity.released")

	cfg.MemcachedAddr = getEnv("MEMCACHED_ADDR", "")
	cfg.CacheLocalTTL, err = getEnvAsDuration("CACHE_LOCAL_TTL", 30*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.CacheSharedTTL, err = getEnvAsDuration("CACHE_SHARED_TTL", 5*time.Minute)
	if err != nil {
		return nil, err
	}

	cfg.RankingPriorWeight, err = getEnvAsFloat("RANKING_PRIOR_WEIGHT", 10.0)
	if err != nil {
		return nil, err
	}
	cfg.RankingPriorMean, err = getEnvAsFloat("RANKING_PRIOR_MEAN", 4.0)
	if err != nil {
		return nil, err
	}

	cfg.AdmissionLockTimeout, err = getEnvAsDuration("ADMISSION_LOCK_TIMEOUT", 3*time.Second)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable if set,
// otherwise returns the provided default value.
func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultValue
}

// getEnvAsFloat retrieves an environment variable as a float64.
// It returns the default value if the variable is not set.
func getEnvAsFloat(key string, defaultValue float64) (float64, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseFloat(valStr, 64)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid number: %w", key, valStr, err)
	}

	return val, nil
}

// getEnvAsDuration retrieves an environment variable as a time.Duration
// (e.g. "30s", "5m"). It returns the default value if the variable is not set.
func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := time.ParseDuration(valStr)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid duration: %w", key, valStr, err)
	}

	return val, nil
}
