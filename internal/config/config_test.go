package config

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("DATABASE_DSN", "kadai.db")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.HTTPPort != "8080" {
		t.Errorf("HTTPPort = %q, want 8080", cfg.HTTPPort)
	}
	if cfg.CompanyName != "Namma Kadai" {
		t.Errorf("CompanyName = %q, want Namma Kadai", cfg.CompanyName)
	}
	if !cfg.OpeningBalance.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("OpeningBalance = %s, want 1000", cfg.OpeningBalance)
	}
	if cfg.Currency != "INR" {
		t.Errorf("Currency = %q, want INR", cfg.Currency)
	}
	if cfg.DisplayZone.String() != "Asia/Kolkata" {
		t.Errorf("DisplayZone = %q, want Asia/Kolkata", cfg.DisplayZone)
	}
	if cfg.PageSize != 20 {
		t.Errorf("PageSize = %d, want 20", cfg.PageSize)
	}
	if cfg.DatabaseLog {
		t.Error("DatabaseLog = true, want false")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "SQLite")
	t.Setenv("OPENING_BALANCE", "2500.50")
	t.Setenv("CURRENCY", "usd")
	t.Setenv("DISPLAY_TIMEZONE", "UTC")
	t.Setenv("PAGE_SIZE", "5")
	t.Setenv("DATABASE_LOG", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.DatabaseDriver != "sqlite" {
		t.Errorf("DatabaseDriver = %q, want sqlite", cfg.DatabaseDriver)
	}
	if !cfg.OpeningBalance.Equal(decimal.RequireFromString("2500.50")) {
		t.Errorf("OpeningBalance = %s, want 2500.50", cfg.OpeningBalance)
	}
	if cfg.Currency != "USD" {
		t.Errorf("Currency = %q, want USD", cfg.Currency)
	}
	if cfg.DisplayZone.String() != "UTC" {
		t.Errorf("DisplayZone = %q, want UTC", cfg.DisplayZone)
	}
	if cfg.PageSize != 5 {
		t.Errorf("PageSize = %d, want 5", cfg.PageSize)
	}
	if !cfg.DatabaseLog {
		t.Error("DatabaseLog = false, want true")
	}
}

func TestLoad_Invalid(t *testing.T) {
	testCases := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown driver", "DATABASE_DRIVER", "mysql"},
		{"malformed balance", "OPENING_BALANCE", "lots"},
		{"negative balance", "OPENING_BALANCE", "-1"},
		{"unknown zone", "DISPLAY_TIMEZONE", "Mars/Olympus"},
		{"zero page size", "PAGE_SIZE", "0"},
		{"text page size", "PAGE_SIZE", "ten"},
		{"bad log flag", "DATABASE_LOG", "maybe"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("DATABASE_DRIVER", "sqlite")
			t.Setenv(tc.key, tc.value)

			if _, err := Load(); err == nil {
				t.Errorf("Load() with %s=%q error = nil, want error", tc.key, tc.value)
			}
		})
	}
}
