package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultEnv          = "development"
	defaultDBPath       = "./dev.db"
	defaultPort         = "8080"
	defaultQuoteTopic   = "quotations"
	defaultCacheTTLSecs = 300
	defaultLogLevel     = "info"
	defaultLogFormat    = "text"
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	Env    string
	DBPath string
	Port   string

	Logger LoggerConfig
	Redis  RedisConfig
	Kafka  KafkaConfig

	CatalogCacheTTL time.Duration
}

// LoggerConfig configures the structured logger.
type LoggerConfig struct {
	Level  string
	Format string
	File   string
}

// RedisConfig configures the catalog snapshot cache. An empty Addr disables it.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// KafkaConfig configures quotation event publishing. No brokers disables it.
type KafkaConfig struct {
	Brokers         []string
	QuotationsTopic string
}

// Enabled reports whether any broker is configured.
func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

// IsDev reports whether the service runs in a development environment.
func (c Config) IsDev() bool {
	env := strings.ToLower(c.Env)
	return env == "development" || env == "dev"
}

// Load reads environment variables and returns a populated Config.
func Load() Config {
	// Best-effort: production injects real env vars.
	_ = loadDotEnv(".env")

	return Config{
		Env:    getEnv("APP_ENV", defaultEnv),
		DBPath: getEnv("DB_PATH", defaultDBPath),
		Port:   getEnv("PORT", defaultPort),
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", defaultLogLevel),
			Format: getEnv("LOG_FORMAT", defaultLogFormat),
			File:   getEnv("LOG_FILE", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Kafka: KafkaConfig{
			Brokers:         splitList(getEnv("KAFKA_BROKERS", "")),
			QuotationsTopic: getEnv("KAFKA_TOPIC_QUOTATIONS", defaultQuoteTopic),
		},
		CatalogCacheTTL: time.Duration(getEnvAsInt("CATALOG_CACHE_TTL_SECONDS", defaultCacheTTLSecs)) * time.Second,
	}
}

// getEnv returns the variable's value, or def when it is unset or blank.
func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getEnvAsInt(key string, def int) int {
	if v, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return v
	}
	return def
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
