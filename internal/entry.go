// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/starford/lifeos/internal/api"
	"github.com/starford/lifeos/internal/mcpserver"
	"github.com/starford/lifeos/internal/metrics"
	"github.com/starford/lifeos/internal/seed"
	"github.com/starford/lifeos/internal/session"
	"github.com/starford/lifeos/internal/sse"
)

func newApplication(opts []Option) (*application, error) {
	app := &application{}
	for _, opt := range opts {
		opt(app)
	}
	if app.config == nil {
		return nil, fmt.Errorf("config is required")
	}
	return app, nil
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

// Run starts the application with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	cfg := app.config

	// Initialize structured JSON logger.
	logger := newLogger(os.Stdout, cfg.App.LogLevel)
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("seed_path", cfg.Seed.Path),
		slog.Bool("seed_watch", cfg.Seed.Watch),
		slog.Duration("idle_ttl", cfg.Sessions.IdleTTL),
		slog.String("log_level", cfg.App.LogLevel.String()))

	store, err := seed.NewStore(cfg.Seed.Path)
	if err != nil {
		return fmt.Errorf("load seed: %w", err)
	}

	m := metrics.New()
	broker := sse.NewBroker(15 * time.Second)
	defer broker.Close()

	sessions := session.NewManager(session.Deps{
		Seed:   store,
		Collab: app.collab,
		Delays: cfg.Delays.Session(),
		Publisher: session.PublisherFunc(func(id, kind string, data any) {
			broker.Publish(sse.Event{Session: id, Type: kind, Data: data})
		}),
		Metrics: m,
		Logger:  logger,
		OnClose: broker.Drop,
	})
	defer sessions.Close()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(m.Middleware)

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", m.Handler())

	// Mount API routes under /api.
	r.Mount("/api", api.NewRouter(sessions, broker, cfg.Auth.AuthEnabled(), cfg.Auth.Token))

	httpServer := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: r,
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	// Reload the seed document when its override file changes.
	if cfg.Seed.Watch && cfg.Seed.Path != "" {
		g.Go(func() error {
			return seed.Watch(gCtx, store, logger, func() {
				broker.Publish(sse.Event{Type: "seed.reloaded", Data: map[string]string{"path": store.Path()}})
			})
		})
	}

	// Reap idle sessions.
	g.Go(func() error {
		return sessions.RunReaper(gCtx, cfg.Sessions.ReapInterval, cfg.Sessions.IdleTTL)
	})

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		// Unblock the reaper and the watcher.
		return errShutdown
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errShutdown) {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

var errShutdown = errors.New("shutdown")

// RunMCP serves a single LifeOS session over the MCP stdio transport.
// Logs go to stderr because stdout carries the protocol.
func RunMCP(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	cfg := app.config

	logger := newLogger(os.Stderr, cfg.App.LogLevel)
	slog.SetDefault(logger)

	store, err := seed.NewStore(cfg.Seed.Path)
	if err != nil {
		return fmt.Errorf("load seed: %w", err)
	}

	sessions := session.NewManager(session.Deps{
		Seed:   store,
		Collab: app.collab,
		Delays: cfg.Delays.Session(),
		Logger: logger,
	})
	defer sessions.Close()

	srv, err := mcpserver.New(sessions)
	if err != nil {
		return fmt.Errorf("init mcp server: %w", err)
	}

	if cfg.Seed.Watch && cfg.Seed.Path != "" {
		watchCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		go func() {
			if err := seed.Watch(watchCtx, store, logger, nil); err != nil {
				logger.Warn("seed watcher failed", slog.String("error", err.Error()))
			}
		}()
	}

	logger.Info("MCP server starting on stdio", slog.String("session", srv.Session().ID()))
	return srv.ServeStdio()
}
