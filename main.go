package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"simpletodo/internal/config"
	"simpletodo/internal/handlers"
	"simpletodo/internal/store"
	"simpletodo/internal/todo"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "config.yaml", "server configuration file")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	log := makeLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	kv, err := openKV(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	gateway := store.NewGateway(kv, cfg.StorageKey)
	defer gateway.Close()

	opts := []todo.Option{todo.WithLogger(log)}
	if cfg.StrictPersistence {
		opts = append(opts, todo.WithStrictPersistence())
	}
	tasks := todo.New(ctx, gateway, opts...)
	log.Info("tasks loaded", "backend", cfg.StorageBackend, "key", gateway.Key(), "count", tasks.Len())

	unsubscribe := tasks.Subscribe(func(e todo.Event) {
		log.Debug("task store changed", "kind", e.Kind, "ids", e.TaskIDs, "persist_error", e.PersistErr)
	})
	defer unsubscribe()

	h := handlers.New(tasks, log)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	h.Routes(r)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting server", "address", "http://localhost"+server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown requested")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// openKV opens the key-value backend named in the config.
func openKV(ctx context.Context, cfg config.Config) (store.KV, error) {
	switch cfg.StorageBackend {
	case config.BackendRedis:
		return store.NewRedisKV(ctx, cfg.RedisAddr, cfg.RedisPrefix)
	case config.BackendMemory:
		return store.NewMemoryKV(), nil
	default:
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		return store.NewSQLiteKV(cfg.DBPath)
	}
}

func makeLogger(logLevel string) *slog.Logger {
	var level slog.Level
	switch logLevel {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
