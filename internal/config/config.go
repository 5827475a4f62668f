package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

const defaultDSN = "host=localhost user=postgres password=postgres dbname=kadai port=5432 sslmode=disable"

type Config struct {
	HTTPPort       string
	DatabaseDriver string // postgres | sqlite
	DatabaseDSN    string
	DatabaseLog    bool
	CORSOrigins    string

	CompanyName    string
	OpeningBalance decimal.Decimal
	Currency       string
	DisplayZone    *time.Location
	PageSize       int

	LogLevel  string
	LogFormat string // json | console
}

// Load reads the configuration from the environment. A .env file in the
// working directory is applied first when it exists.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{
		HTTPPort:       getEnv("HTTP_PORT", "8080"),
		DatabaseDriver: strings.ToLower(getEnv("DATABASE_DRIVER", "postgres")),
		DatabaseDSN:    getEnv("DATABASE_DSN", defaultDSN),
		CORSOrigins:    getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		CompanyName:    getEnv("COMPANY_NAME", "Namma Kadai"),
		Currency:       strings.ToUpper(getEnv("CURRENCY", "INR")),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
	}

	switch cfg.DatabaseDriver {
	case "postgres", "sqlite":
	default:
		return nil, fmt.Errorf("DATABASE_DRIVER must be postgres or sqlite, got %q", cfg.DatabaseDriver)
	}

	var err error
	if cfg.DatabaseLog, err = strconv.ParseBool(getEnv("DATABASE_LOG", "false")); err != nil {
		return nil, fmt.Errorf("DATABASE_LOG: %w", err)
	}

	if cfg.OpeningBalance, err = decimal.NewFromString(getEnv("OPENING_BALANCE", "1000.00")); err != nil {
		return nil, fmt.Errorf("OPENING_BALANCE: %w", err)
	}
	if cfg.OpeningBalance.IsNegative() {
		return nil, fmt.Errorf("OPENING_BALANCE must not be negative")
	}

	if cfg.DisplayZone, err = time.LoadLocation(getEnv("DISPLAY_TIMEZONE", "Asia/Kolkata")); err != nil {
		return nil, fmt.Errorf("DISPLAY_TIMEZONE: %w", err)
	}

	if cfg.PageSize, err = strconv.Atoi(getEnv("PAGE_SIZE", "20")); err != nil || cfg.PageSize < 1 {
		return nil, fmt.Errorf("PAGE_SIZE must be a positive integer")
	}

	if cfg.DatabaseDriver == "postgres" && cfg.DatabaseDSN == defaultDSN {
		log.Println("[WARN] DATABASE_DSN is using the default value, set your own Postgres connection for production.")
	}
	if cfg.CORSOrigins == "http://localhost:5173" {
		log.Println("[WARN] CORS_ALLOWED_ORIGINS is using the default value, set your own domain for production.")
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
