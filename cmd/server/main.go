package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"mailmerge/backend/internal/auth"
	"mailmerge/backend/internal/config"
	"mailmerge/backend/internal/core"
	"mailmerge/backend/internal/history"
	"mailmerge/backend/internal/logging"
	"mailmerge/backend/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"send_profile", cfg.Send.Profile,
		"history_enabled", cfg.HistoryEnabled(),
	)

	ctx := context.Background()

	// Connect to the optional send-history database
	var pool *pgxpool.Pool
	if cfg.HistoryEnabled() {
		poolConfig, err := pgxpool.ParseConfig(cfg.Database.URL)
		if err != nil {
			slog.Error("failed to parse database URL", "error", err)
			os.Exit(1)
		}
		poolConfig.MaxConns = int32(cfg.Database.MaxConns)
		poolConfig.MinConns = int32(cfg.Database.MinConns)
		poolConfig.MaxConnLifetime = cfg.Database.MaxConnLifetime

		pool, err = pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		if err := pool.Ping(ctx); err != nil {
			slog.Error("failed to ping database", "error", err)
			os.Exit(1)
		}
		slog.Info("send history enabled")
	} else {
		slog.Info("send history disabled, running fully in memory")
	}

	var hist *history.Store
	if pool != nil {
		hist = history.NewStore(pool)
	} else {
		hist = history.NewStore(nil)
	}
	if err := hist.EnsureSchema(ctx); err != nil {
		slog.Error("failed to ensure send history schema", "error", err)
		os.Exit(1)
	}

	service := core.NewService()

	authMgr := auth.NewManager(
		cfg.Auth.Username,
		cfg.Auth.PasswordHash,
		cfg.Auth.TokenSecret,
		cfg.Auth.TokenIssuer,
		cfg.Auth.SessionExpiry,
	)

	server := web.NewServer(cfg, service, authMgr, hist)

	// Janitor drops idle workspaces
	jobCtx, cancelJobs := context.WithCancel(context.Background())
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if removed := service.Sweep(); removed > 0 {
					slog.Info("swept idle sessions", "removed", removed)
				}
			case <-jobCtx.Done():
				return
			}
		}
	}()

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")
		cancelJobs()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	if err := server.Start(cfg.Server.Addr()); err != nil && err != http.ErrServerClosed {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
