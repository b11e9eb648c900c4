package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/garnizeh/trivia/api"
	dbfs "github.com/garnizeh/trivia/db"
	"github.com/garnizeh/trivia/internal/config"
	"github.com/garnizeh/trivia/internal/db"
	"github.com/garnizeh/trivia/internal/repository/postgres"
	"github.com/garnizeh/trivia/internal/repository/sqlite"
	"github.com/garnizeh/trivia/internal/seed"
	"github.com/garnizeh/trivia/pkg/repository"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

// store is the configured backend with its closer.
type store struct {
	repo  repository.Store
	close func() error
}

func main() {
	var configPath = flag.String("config", "", "Path to config YAML file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)
	api.SetLogger(logger)

	logger.Info("starting trivia server", slog.String("version", version), slog.String("build_time", buildTime))

	ctx := context.Background()

	startCtx, startCancel := context.WithTimeout(ctx, cfg.APITimeout)
	st, err := openStore(startCtx, cfg, logger)
	startCancel()
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}

	handler := api.SetupRoutes(cfg, version, buildTime, st.repo, st.repo)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.APITimeout,
		WriteTimeout: cfg.APITimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server listening", slog.String("addr", cfg.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	// Give outstanding requests 30 seconds to complete
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	if err := st.close(); err != nil {
		logger.Error("error closing store", slog.Any("err", err))
	}

	logger.Info("server exited")
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}

// openStore connects to the configured backend, prepares its schema when
// migrate_on_start is set and loads the bundled data set when seed_on_start
// is set.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*store, error) {
	var st *store

	switch cfg.Database.Driver {
	case "postgres":
		gdb, err := postgres.Open(cfg.Database.DSN, logger)
		if err != nil {
			return nil, err
		}
		repo := postgres.New(gdb, logger)
		if cfg.MigrateOnStart {
			if err := repo.AutoMigrate(ctx); err != nil {
				repo.Close()
				return nil, err
			}
		}
		st = &store{repo: repo, close: repo.Close}

	case "sqlite":
		d, err := db.New(ctx, cfg.Database.DSN, logger)
		if err != nil {
			return nil, err
		}
		if cfg.MigrateOnStart {
			if err := db.Migrate(ctx, d, dbfs.Migrations); err != nil {
				d.Close()
				return nil, err
			}
		}
		repo := sqlite.New(d, logger)
		st = &store{repo: repo, close: d.Close}

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	if cfg.SeedOnStart {
		if _, err := seed.Load(ctx, dbfs.SeedFiles, st.repo, logger); err != nil {
			st.close()
			return nil, err
		}
	}

	return st, nil
}
