package main

import (
	"context"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"kadai-backend/internal/config"
	"kadai-backend/internal/currency"
	"kadai-backend/internal/database"
	"kadai-backend/internal/ledger"
	"kadai-backend/internal/logger"
	"kadai-backend/internal/server"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		stdlog.Fatalf("config: %v", err)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		stdlog.Fatalf("logger: %v", err)
	}

	cur, err := currency.New(cfg.Currency)
	if err != nil {
		log.Fatal().Err(err).Msg("currency")
	}

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DatabaseDriver).Msg("database connection failed")
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}

	store := ledger.New(db,
		ledger.WithLogger(log),
		ledger.WithCompany(cfg.CompanyName, cfg.OpeningBalance),
		ledger.WithPageSize(cfg.PageSize),
	)
	company, err := store.Bootstrap(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("bootstrap failed")
	}
	log.Info().
		Str("company", company.Name).
		Str("cash_balance", company.CashBalance.StringFixed(ledger.MoneyPlaces)).
		Msg("ledger ready")

	app := server.New(cfg, store, cur, log)

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("server listening")
		if err := app.Listen(":" + cfg.HTTPPort); err != nil {
			log.Fatal().Err(err).Msg("listen")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)
	<-stop
	log.Info().Msg("shutting down")

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
