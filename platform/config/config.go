// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// SchedulerConfig provides settings for the asynq scheduler and worker.
type SchedulerConfig interface {
	GetRedisURL() string
	GetRedisTLSInsecure() bool
	GetAsynqQueueName() string
	GetAsynqConcurrency() int
}

// ConsistencyConfig provides the tunable parameters of the quote
// consistency engine. The tolerance bands and penalty thresholds carry the
// historical defaults but are deliberately not hard-coded in the analyzer.
type ConsistencyConfig interface {
	GetSizeTolerance() float64
	GetRoomsTolerance() float64
	GetRecencyWindow() time.Duration
	GetSimilarQuotesLimit() int
	GetPenaltyTiers() []PenaltyTier
	GetLimitedDataThreshold() int
	GetDefaultDayRate() float64
	GetReportWindow() time.Duration
	GetReportLimit() int
}

// PenaltyTier pairs an absolute variance threshold (percent) with the score
// penalty applied when a category's variance exceeds it. Tiers are ordered
// largest threshold first; only the first matching tier applies.
type PenaltyTier struct {
	ThresholdPct float64
	Penalty      float64
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env            string
	HTTPAddr       string
	DatabaseURL    string
	CORSAllowAll   bool
	CORSOrigins    []string
	CORSAllowCreds bool

	RedisURL         string
	RedisTLSInsecure bool
	AsynqQueueName   string
	AsynqConcurrency int

	SizeTolerance        float64
	RoomsTolerance       float64
	RecencyWindow        time.Duration
	SimilarQuotesLimit   int
	LimitedDataThreshold int
	DefaultDayRate       float64
	ReportWindow         time.Duration
	ReportLimit          int
}

// =============================================================================
// Interface Implementations
// =============================================================================

// DatabaseConfig implementation
func (c *Config) GetDatabaseURL() string { return c.DatabaseURL }

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }

// SchedulerConfig implementation
func (c *Config) GetRedisURL() string      { return c.RedisURL }
func (c *Config) GetRedisTLSInsecure() bool { return c.RedisTLSInsecure }
func (c *Config) GetAsynqQueueName() string { return c.AsynqQueueName }
func (c *Config) GetAsynqConcurrency() int  { return c.AsynqConcurrency }

// ConsistencyConfig implementation
func (c *Config) GetSizeTolerance() float64       { return c.SizeTolerance }
func (c *Config) GetRoomsTolerance() float64      { return c.RoomsTolerance }
func (c *Config) GetRecencyWindow() time.Duration { return c.RecencyWindow }
func (c *Config) GetSimilarQuotesLimit() int      { return c.SimilarQuotesLimit }
func (c *Config) GetLimitedDataThreshold() int    { return c.LimitedDataThreshold }
func (c *Config) GetDefaultDayRate() float64      { return c.DefaultDayRate }
func (c *Config) GetReportWindow() time.Duration  { return c.ReportWindow }
func (c *Config) GetReportLimit() int             { return c.ReportLimit }

// GetPenaltyTiers returns the score penalty tiers, largest threshold first.
func (c *Config) GetPenaltyTiers() []PenaltyTier {
	return []PenaltyTier{
		{ThresholdPct: 50, Penalty: 20},
		{ThresholdPct: 30, Penalty: 10},
		{ThresholdPct: 15, Penalty: 5},
	}
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:            getEnv("APP_ENV", "development"),
		HTTPAddr:       getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		CORSAllowAll:   corsAllowAll,
		CORSOrigins:    corsOrigins,
		CORSAllowCreds: strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),

		RedisURL:         getEnv("REDIS_URL", ""),
		RedisTLSInsecure: strings.EqualFold(getEnv("REDIS_TLS_INSECURE", "false"), "true"),
		AsynqQueueName:   getEnv("ASYNQ_QUEUE", "default"),
		AsynqConcurrency: mustInt(getEnv("ASYNQ_CONCURRENCY", "10")),

		SizeTolerance:        mustFloat(getEnv("CONSISTENCY_SIZE_TOLERANCE", "0.2")),
		RoomsTolerance:       mustFloat(getEnv("CONSISTENCY_ROOMS_TOLERANCE", "0.5")),
		RecencyWindow:        time.Duration(mustInt(getEnv("CONSISTENCY_RECENCY_DAYS", "365"))) * 24 * time.Hour,
		SimilarQuotesLimit:   mustInt(getEnv("CONSISTENCY_SIMILAR_LIMIT", "10")),
		LimitedDataThreshold: mustInt(getEnv("CONSISTENCY_LIMITED_DATA_THRESHOLD", "3")),
		DefaultDayRate:       mustFloat(getEnv("DEFAULT_DAY_RATE", "300")),
		ReportWindow:         time.Duration(mustInt(getEnv("CONSISTENCY_REPORT_DAYS", "30"))) * 24 * time.Hour,
		ReportLimit:          mustInt(getEnv("CONSISTENCY_REPORT_LIMIT", "20")),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.SizeTolerance <= 0 || cfg.SizeTolerance >= 1 {
		return nil, fmt.Errorf("CONSISTENCY_SIZE_TOLERANCE must be in (0, 1)")
	}
	if cfg.RoomsTolerance <= 0 || cfg.RoomsTolerance >= 1 {
		return nil, fmt.Errorf("CONSISTENCY_ROOMS_TOLERANCE must be in (0, 1)")
	}
	if cfg.SimilarQuotesLimit < 1 {
		return nil, fmt.Errorf("CONSISTENCY_SIMILAR_LIMIT must be at least 1")
	}
	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustInt(value string) int {
	result, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return result
}

func mustFloat(value string) float64 {
	result, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
