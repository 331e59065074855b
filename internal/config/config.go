package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"blog-service/internal/domain/entities"
	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	HTTPAddr        string
	HandlerTimeout  time.Duration
	ShutdownTimeout time.Duration

	DBDriver           string
	DatabaseURL        string
	DBLogLevel         string
	MemorySnapshotPath string

	TagVocabulary     []string
	CategoryImmutable bool

	RedisURL       string
	RedisHost      string
	RedisPort      string
	RedisPassword  string
	RedisDB        int
	IdempotencyTTL time.Duration

	NatsURL string

	RateLimitWindow      time.Duration
	RateLimitMaxRequests int
	RateLimitRPS         float64
	RateLimitBurst       int
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	} else if err == nil {
		log.Println("Loaded configuration from .env")
	}

	cfg := FromEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromEnv builds a Config from the process environment and defaults.
func FromEnv() *Config {
	return &Config{
		HTTPAddr:        GetEnvAsString("HTTP_ADDR", ":8080"),
		HandlerTimeout:  GetEnvAsDuration("HANDLER_TIMEOUT", 5*time.Second),
		ShutdownTimeout: GetEnvAsDuration("SHUTDOWN_TIMEOUT", 5*time.Second),

		DBDriver:           GetEnvAsString("DB_DRIVER", DriverSQLite),
		DatabaseURL:        GetEnvAsString("DATABASE_URL", "blog.db"),
		DBLogLevel:         GetEnvAsString("DB_LOG_LEVEL", "warn"),
		MemorySnapshotPath: GetEnvAsString("MEMORY_SNAPSHOT_PATH", ""),

		TagVocabulary:     GetEnvAsList("TAG_VOCABULARY", entities.DefaultTagVocabulary),
		CategoryImmutable: GetEnvAsBool("CATEGORY_IMMUTABLE", true),

		RedisURL:       GetEnvAsString("REDIS_URL", ""),
		RedisHost:      GetEnvAsString("REDIS_HOST", ""),
		RedisPort:      GetEnvAsString("REDIS_PORT", "6379"),
		RedisPassword:  GetEnvAsString("REDIS_PASSWORD", ""),
		RedisDB:        GetEnvAsInt("REDIS_DB", 0),
		IdempotencyTTL: GetEnvAsDuration("IDEMPOTENCY_TTL", 24*time.Hour),

		NatsURL: GetEnvAsString("NATS_URL", ""),

		RateLimitWindow:      GetEnvAsDuration("RATE_LIMIT_WINDOW", time.Minute),
		RateLimitMaxRequests: GetEnvAsInt("RATE_LIMIT_MAX_REQUESTS", 120),
		RateLimitRPS:         GetEnvAsFloat("RATE_LIMIT_RPS", 100),
		RateLimitBurst:       GetEnvAsInt("RATE_LIMIT_BURST", 50),
	}
}

func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverSQLite, DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for driver %q", c.DBDriver)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if len(c.TagVocabulary) == 0 {
		return errors.New("TAG_VOCABULARY must name at least one tag")
	}
	if c.RateLimitMaxRequests <= 0 || c.RateLimitBurst <= 0 || c.RateLimitRPS <= 0 {
		return errors.New("rate limits must be positive")
	}
	return nil
}

func (c *Config) RedisEnabled() bool {
	return c.RedisURL != "" || c.RedisHost != ""
}
