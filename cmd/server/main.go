package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/hongminglow/finance-be/internal/config"
	"github.com/hongminglow/finance-be/internal/logging"
	"github.com/hongminglow/finance-be/internal/seed"
	"github.com/hongminglow/finance-be/internal/server"
	"github.com/hongminglow/finance-be/internal/storage"
	"github.com/hongminglow/finance-be/internal/storage/memory"
	postgres "github.com/hongminglow/finance-be/internal/storage/postgres"
)

func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)
	if envErr != nil {
		logger.Debug("no .env file found; relying on existing environment")
	}

	ctx := context.Background()
	store, err := openStore(ctx, cfg)
	if err != nil {
		logger.Error("init storage", slog.String("backend", cfg.Storage), slog.Any("error", err))
		os.Exit(1)
	}
	defer store.Close()

	if cfg.SeedFile != "" {
		res, err := seed.FromFile(ctx, store, cfg.SeedFile, logger)
		if err != nil {
			logger.Error("seed data", slog.String("path", cfg.SeedFile), slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("seed complete", slog.Int("employees", res.Employees), slog.Int("customers", res.Customers))
	}

	srv, err := server.New(cfg, store, logger)
	if err != nil {
		logger.Error("init server", slog.Any("error", err))
		os.Exit(1)
	}

	go func() {
		logger.Info("server listening",
			slog.String("service", cfg.ProjectName),
			slog.String("addr", cfg.HTTPAddress()),
			slog.String("prefix", cfg.RoutePrefix()),
		)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Error("graceful shutdown error", slog.Any("error", err))
	}
}

func openStore(ctx context.Context, cfg config.Config) (storage.Store, error) {
	if cfg.Storage == config.StorageMemory {
		return memory.NewStore(), nil
	}
	return postgres.NewStore(ctx, cfg.DatabaseURL, cfg.DBMaxConns)
}
