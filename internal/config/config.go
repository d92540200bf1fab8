package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Environment
	Env string

	// Database
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string

	// Server
	Port        string
	CORSOrigins string
	BodyLimit   int

	// Admission control
	RateLimitWindow    time.Duration
	RateLimitMax       int
	ReportRateLimitMax int
	SlowDownAfter      int
	SlowDownStep       time.Duration
	SlowDownMaxDelay   time.Duration
}

func Load() *Config {
	// Values already present in the environment win over .env entries.
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using system environment")
	}

	return &Config{
		Env: getEnv("APP_ENV", "development"),

		DatabaseURL: getEnv("DATABASE_URL", ""),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  getEnv("DB_PASSWORD", ""),
		DBName:      getEnv("DB_NAME", "chatline_reports"),
		DBSSLMode:   getEnv("DB_SSLMODE", "disable"),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
		BodyLimit:   parseInt(getEnv("BODY_LIMIT_BYTES", ""), 1024*1024),

		RateLimitWindow:    parseDuration(getEnv("RATE_LIMIT_WINDOW", "15m"), 15*time.Minute),
		RateLimitMax:       parseInt(getEnv("RATE_LIMIT_MAX", ""), 100),
		ReportRateLimitMax: parseInt(getEnv("REPORT_RATE_LIMIT_MAX", ""), 10),
		SlowDownAfter:      parseInt(getEnv("SLOW_DOWN_AFTER", ""), 5),
		SlowDownStep:       parseDuration(getEnv("SLOW_DOWN_STEP", "500ms"), 500*time.Millisecond),
		SlowDownMaxDelay:   parseDuration(getEnv("SLOW_DOWN_MAX_DELAY", "0"), 0),
	}
}

// IsProduction reports whether error detail must be hidden from responses.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// RetryAfterHint renders the rate limit window as the human-readable hint
// carried in 429 responses.
func (c *Config) RetryAfterHint() string {
	d := c.RateLimitWindow
	if d >= time.Hour && d%time.Hour == 0 {
		if h := int(d / time.Hour); h > 1 {
			return fmt.Sprintf("%d hours", h)
		}
		return "1 hour"
	}
	if m := int(d / time.Minute); m > 1 {
		return fmt.Sprintf("%d minutes", m)
	}
	return "1 minute"
}

// DSN returns the PostgreSQL connection string. DATABASE_URL, when set,
// takes precedence over the individual DB_* fields.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return fallback
	}
	return d
}

func parseInt(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
