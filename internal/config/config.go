package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration, loaded once at startup.
type Config struct {
	// Server
	Port string

	// Upstream transport
	UpstreamRPS      float64
	UpstreamBurst    int
	MaxInFlight      int
	MaxAttempts      int
	BackoffBase      time.Duration
	RequestTimeout   time.Duration
	UserAgent        string
	ChunkParallelism int

	// Search defaults
	DefaultTopN int

	// Cache
	CacheEnabled bool
	RedisHost    string
	RedisPort    string
	RedisTTL     time.Duration

	// Optional YAML file with extra airport/airline codes.
	RegistryExtraPath string
}

// Load reads configuration from the environment, with a .env file if
// one exists.
func Load() Config {
	godotenv.Load()

	return Config{
		Port: getEnv("PORT", "8080"),

		UpstreamRPS:      getEnvFloat("UPSTREAM_RPS", 2),
		UpstreamBurst:    getEnvInt("UPSTREAM_BURST", 1),
		MaxInFlight:      getEnvInt("UPSTREAM_MAX_IN_FLIGHT", 4),
		MaxAttempts:      getEnvInt("UPSTREAM_MAX_ATTEMPTS", 3),
		BackoffBase:      getEnvDuration("UPSTREAM_BACKOFF_BASE", 250*time.Millisecond),
		RequestTimeout:   getEnvDuration("UPSTREAM_TIMEOUT", 30*time.Second),
		UserAgent:        getEnv("UPSTREAM_USER_AGENT", ""),
		ChunkParallelism: getEnvInt("CHUNK_PARALLELISM", 3),

		DefaultTopN: getEnvInt("DEFAULT_TOP_N", 5),

		CacheEnabled: getEnvBool("CACHE_ENABLED", false),
		RedisHost:    getEnv("REDIS_HOST", "localhost"),
		RedisPort:    getEnv("REDIS_PORT", "6379"),
		RedisTTL:     getEnvDuration("REDIS_TTL", 5*time.Minute),

		RegistryExtraPath: getEnv("REGISTRY_EXTRA", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}
