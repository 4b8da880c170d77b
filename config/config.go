// Package config provides configuration management for the pricing service.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the complete application configuration.
type Config struct {
	Server      ServerConfig
	Cache       CacheConfig
	Pricing     PricingConfig
	Auth        AuthConfig
	Database    DatabaseConfig
	Idempotency IdempotencyConfig
	Log         LogConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port           string
	RateLimit      int
	RateWindow     time.Duration
	CORSOrigins    []string
	SwaggerUser    string
	SwaggerPass    string
	RequestTimeout time.Duration
}

// CacheConfig holds the quote memo configuration. A zero size disables it.
type CacheConfig struct {
	Size int
	TTL  time.Duration
}

// PricingConfig holds presentation and input policy settings.
// The pricing rates themselves are fixed and intentionally absent here.
type PricingConfig struct {
	StrictInput    bool
	CurrencySymbol string
	DefaultLocale  string
}

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	Enabled        bool
	APIKeys        map[string]bool
	Clients        map[string]string // client id -> bcrypt hash of the client secret
	JWTSecretKey   string
	JWTIssuer      string
	AccessTokenTTL time.Duration
}

// DatabaseConfig holds MongoDB configuration for the audit log sink.
type DatabaseConfig struct {
	URI          string
	DatabaseName string
	LogsTTL      time.Duration
	Enabled      bool
	// CircuitBreaker configuration
	CircuitBreakerFailureThreshold int
	CircuitBreakerSuccessThreshold int
	CircuitBreakerTimeout          time.Duration
}

// IdempotencyConfig selects and sizes the Idempotency-Key response store.
type IdempotencyConfig struct {
	Backend  string // "memory" or "redis"
	TTL      time.Duration
	Capacity int
	RedisURL string
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string
	Pretty bool
}

// Load creates a Config from environment variables.
func Load() Config {
	return Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			RateLimit:      getEnvInt("RATE_LIMIT", 100),
			RateWindow:     getEnvDuration("RATE_WINDOW", time.Minute),
			CORSOrigins:    parseCORSOrigins(os.Getenv("CORS_ORIGINS")),
			SwaggerUser:    getEnv("SWAGGER_USER", ""),
			SwaggerPass:    getEnv("SWAGGER_PASS", ""),
			RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 10*time.Second),
		},
		Cache: CacheConfig{
			Size: getEnvInt("CACHE_SIZE", 0),
			TTL:  getEnvDuration("CACHE_TTL", 5*time.Minute),
		},
		Pricing: PricingConfig{
			StrictInput:    getEnvBool("PRICING_STRICT_INPUT", false),
			CurrencySymbol: getEnv("CURRENCY_SYMBOL", "R$"),
			DefaultLocale:  strings.ToLower(getEnv("DEFAULT_LOCALE", "en")),
		},
		Auth: AuthConfig{
			Enabled:        getEnvBool("AUTH_ENABLED", false),
			APIKeys:        parseAPIKeys(os.Getenv("API_KEYS")),
			Clients:        parseClients(os.Getenv("AUTH_CLIENTS")),
			JWTSecretKey:   getEnv("JWT_SECRET_KEY", "your-secret-key-change-in-production"),
			JWTIssuer:      getEnv("JWT_ISSUER", "pricing-service"),
			AccessTokenTTL: getEnvDuration("JWT_ACCESS_TOKEN_TTL", 15*time.Minute),
		},
		Database: DatabaseConfig{
			URI:                            getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			DatabaseName:                   getEnv("MONGODB_DATABASE", "pricing_service"),
			LogsTTL:                        getEnvDuration("MONGODB_LOGS_TTL", 30*24*time.Hour),
			Enabled:                        getEnvBool("MONGODB_ENABLED", false),
			CircuitBreakerFailureThreshold: getEnvInt("CIRCUIT_BREAKER_FAILURE_THRESHOLD", 5),
			CircuitBreakerSuccessThreshold: getEnvInt("CIRCUIT_BREAKER_SUCCESS_THRESHOLD", 2),
			CircuitBreakerTimeout:          getEnvDuration("CIRCUIT_BREAKER_TIMEOUT", 30*time.Second),
		},
		Idempotency: IdempotencyConfig{
			Backend:  strings.ToLower(getEnv("IDEMPOTENCY_BACKEND", "memory")),
			TTL:      getEnvDuration("IDEMPOTENCY_TTL", 5*time.Minute),
			Capacity: getEnvInt("IDEMPOTENCY_CAPACITY", 10000),
			RedisURL: getEnv("REDIS_URL", "redis://localhost:6379/0"),
		},
		Log: LogConfig{
			Level:  strings.ToLower(getEnv("LOG_LEVEL", "info")),
			Pretty: getEnvBool("LOG_PRETTY", false),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultValue
}

func parseAPIKeys(s string) map[string]bool {
	if s == "" {
		return nil
	}
	keys := strings.Split(s, ",")
	result := make(map[string]bool, len(keys))
	for _, k := range keys {
		if k = strings.TrimSpace(k); k != "" {
			result[k] = true
		}
	}
	return result
}

// parseClients parses "id:hash,id2:hash2". Bcrypt hashes contain '$' but never ':' or ','.
func parseClients(s string) map[string]string {
	if s == "" {
		return nil
	}
	pairs := strings.Split(s, ",")
	result := make(map[string]string, len(pairs))
	for _, p := range pairs {
		id, hash, ok := strings.Cut(strings.TrimSpace(p), ":")
		id, hash = strings.TrimSpace(id), strings.TrimSpace(hash)
		if !ok || id == "" || hash == "" {
			continue
		}
		result[id] = hash
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

func parseCORSOrigins(s string) []string {
	// Default origins for local development
	defaults := []string{
		"http://localhost:3000",
		"http://127.0.0.1:3000",
	}
	if s == "" {
		return defaults
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts)+len(defaults))
	result = append(result, defaults...)
	for _, p := range parts {
		if origin := strings.TrimSpace(p); origin != "" {
			result = append(result, origin)
		}
	}
	return result
}
