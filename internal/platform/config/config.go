package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Addr                string
	DatabaseURL         string
	JWTSecret           string
	Environment         string
	AllowedOrigins      []string
	SalaryPeriod        string
	DefaultMonthlyHours float64
	DefaultUserPassword string
	SeedAdminName       string
	SeedAdminEmail      string
	SeedAdminPassword   string
	JiraBaseURL         string
	JiraEmail           string
	JiraAPIToken        string
	RolloverInterval    time.Duration
	RunMigrations       bool
	RunSeed             bool
	MaxBodyBytes        int64
}

const (
	SalaryPeriodMonthly = "monthly"
	SalaryPeriodAnnual  = "annual"
)

func Load() Config {
	return Config{
		Addr:                getEnv("APP_ADDR", ":8080"),
		DatabaseURL:         getEnv("DATABASE_URL", ""),
		JWTSecret:           getEnv("JWT_SECRET", ""),
		Environment:         getEnv("APP_ENV", "development"),
		AllowedOrigins:      splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		SalaryPeriod:        getEnv("SALARY_PERIOD", SalaryPeriodMonthly),
		DefaultMonthlyHours: getEnvFloat("DEFAULT_MONTHLY_HOURS", 160),
		DefaultUserPassword: getEnv("DEFAULT_USER_PASSWORD", ""),
		SeedAdminName:       getEnv("SEED_ADMIN_NAME", "Administrator"),
		SeedAdminEmail:      getEnv("SEED_ADMIN_EMAIL", ""),
		SeedAdminPassword:   getEnv("SEED_ADMIN_PASSWORD", ""),
		JiraBaseURL:         getEnv("JIRA_BASE_URL", ""),
		JiraEmail:           getEnv("JIRA_EMAIL", ""),
		JiraAPIToken:        getEnv("JIRA_API_TOKEN", ""),
		RolloverInterval:    getEnvDuration("ROLLOVER_CHECK_INTERVAL", 6*time.Hour),
		RunMigrations:       getEnvBool("RUN_MIGRATIONS", true),
		RunSeed:             getEnvBool("RUN_SEED", true),
		MaxBodyBytes:        int64(getEnvInt("MAX_BODY_BYTES", 1048576)),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvFloat(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.SalaryPeriod != SalaryPeriodMonthly && c.SalaryPeriod != SalaryPeriodAnnual {
		return fmt.Errorf("SALARY_PERIOD must be %q or %q", SalaryPeriodMonthly, SalaryPeriodAnnual)
	}
	if c.DefaultMonthlyHours <= 0 {
		return fmt.Errorf("DEFAULT_MONTHLY_HOURS must be positive")
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.RunSeed && c.SeedAdminEmail != "" && c.SeedAdminPassword == "" && c.DefaultUserPassword == "" {
		return fmt.Errorf("SEED_ADMIN_PASSWORD or DEFAULT_USER_PASSWORD must be set when seeding an admin account")
	}
	if c.Environment == "production" {
		if strings.TrimSpace(c.JWTSecret) == "" {
			return fmt.Errorf("JWT_SECRET must be set to a strong value in production")
		}
		if c.RunSeed && strings.TrimSpace(c.SeedAdminPassword) == "" {
			return fmt.Errorf("SEED_ADMIN_PASSWORD must be set or RUN_SEED disabled in production")
		}
	}
	if c.JiraBaseURL != "" && (c.JiraEmail == "" || c.JiraAPIToken == "") {
		return fmt.Errorf("JIRA_EMAIL and JIRA_API_TOKEN must be set when JIRA_BASE_URL is configured")
	}
	return nil
}
