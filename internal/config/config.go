// Package config provides application configuration loading from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Env       string
	Server    ServerConfig
	Database  DatabaseConfig
	Supabase  SupabaseConfig
	Resume    ResumeConfig
	RateLimit RateLimitConfig
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host string
	Port string
}

// DatabaseConfig contains PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	Migrate  bool
}

// SupabaseConfig contains identity provider and storage settings.
type SupabaseConfig struct {
	URL        string
	AnonKey    string
	ServiceKey string
	JWTSecret  string
}

// ResumeConfig contains resume upload settings.
type ResumeConfig struct {
	Bucket   string
	MaxBytes int64
}

// RateLimitConfig contains per-user request limits.
type RateLimitConfig struct {
	RPS   float64
	Burst int
}

const (
	defaultResumeBucket   = "Resumes"
	defaultResumeMaxBytes = 5 * 1024 * 1024
	defaultRateLimitRPS   = 10
	defaultRateLimitBurst = 20
)

// Load reads configuration from environment variables.
// Returns error if required variables are not set.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var missing []string
	required := func(key string) string {
		value := os.Getenv(key)
		if value == "" {
			missing = append(missing, key)
		}
		return value
	}

	cfg := &Config{
		Env: getEnv("APP_ENV", "development"),
		Server: ServerConfig{
			Host: required("SERVER_HOST"),
			Port: required("SERVER_PORT"),
		},
		Database: DatabaseConfig{
			Host:     required("DB_HOST"),
			Port:     required("DB_PORT"),
			User:     required("DB_USER"),
			Password: required("DB_PASSWORD"),
			DBName:   required("DB_NAME"),
			SSLMode:  required("DB_SSLMODE"),
		},
		Supabase: SupabaseConfig{
			URL:        strings.TrimRight(required("SUPABASE_URL"), "/"),
			ServiceKey: required("SUPABASE_SERVICE_KEY"),
			AnonKey:    os.Getenv("SUPABASE_ANON_KEY"),
			JWTSecret:  os.Getenv("SUPABASE_JWT_SECRET"),
		},
		Resume: ResumeConfig{
			Bucket: getEnv("RESUME_BUCKET", defaultResumeBucket),
		},
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("required environment variables are not set: %s", strings.Join(missing, ", "))
	}

	var err error
	if cfg.Database.Migrate, err = getBool("DB_MIGRATE", true); err != nil {
		return nil, err
	}
	if cfg.Resume.MaxBytes, err = getInt64("RESUME_MAX_BYTES", defaultResumeMaxBytes); err != nil {
		return nil, err
	}
	if cfg.RateLimit.RPS, err = getFloat("RATE_LIMIT_RPS", defaultRateLimitRPS); err != nil {
		return nil, err
	}
	burst, err := getInt64("RATE_LIMIT_BURST", defaultRateLimitBurst)
	if err != nil {
		return nil, err
	}
	cfg.RateLimit.Burst = int(burst)

	return cfg, nil
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Addr returns the host:port the HTTP server listens on.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// DSN returns PostgreSQL connection string.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getBool(key string, fallback bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("environment variable %s must be a boolean: %w", key, err)
	}
	return b, nil
}

func getInt64(key string, fallback int64) (int64, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("environment variable %s must be a positive integer", key)
	}
	return n, nil
}

func getFloat(key string, fallback float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || f <= 0 {
		return 0, fmt.Errorf("environment variable %s must be a positive number", key)
	}
	return f, nil
}
