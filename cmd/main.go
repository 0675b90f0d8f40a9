// Package main provides the entry point for the lead capture service.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/cbummouad/appall/internal/config"
	"github.com/cbummouad/appall/internal/handler"
	"github.com/cbummouad/appall/internal/logger"
	"github.com/cbummouad/appall/internal/metrics"
	"github.com/cbummouad/appall/internal/middleware"
	"github.com/cbummouad/appall/internal/store"
	"github.com/cbummouad/appall/internal/validation"
)

// Run is the testable entrypoint for the application.
func Run(ctx context.Context) error {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	defer func() { _ = log.Sync() }()
	log.Info("Starting lead capture service", zap.String("store", cfg.StoreDriver))

	leads, closeStore, err := newStore(ctx, cfg, log)
	if err != nil {
		log.Error("store setup failed", zap.Error(err))
		return err
	}
	defer closeStore()

	reg := prometheus.NewRegistry()
	h := handler.New(log, validation.New(nil, nil), leads, metrics.NewLeadMetrics(reg))

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      newRouter(cfg, log, h, reg),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()

	log.Info("Shutting down server")
	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctxShutdown)
	return nil
}

func newRouter(cfg *config.Config, log *zap.Logger, h *handler.Handler, reg *prometheus.Registry) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	r.Get("/healthz", h.Healthz)
	r.Get("/plans", h.Plans)
	r.Post("/demo-requests", h.CreateDemoRequest)
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	return r
}

func newStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (store.Store, func(), error) {
	switch cfg.StoreDriver {
	case config.DriverSupabase:
		if cfg.SupabaseURL == "" {
			return nil, nil, errors.New("SUPABASE_URL is required for the supabase store")
		}
		return store.NewRestStore(store.RestConfig{
			BaseURL: cfg.SupabaseURL,
			APIKey:  cfg.SupabaseAnonKey,
			Table:   cfg.LeadsTable,
			Timeout: cfg.StoreTimeout,
		}, log), func() {}, nil
	case config.DriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, nil, errors.New("DATABASE_URL is required for the postgres store")
		}
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		return store.NewPostgresStore(pool, cfg.LeadsTable), pool.Close, nil
	default:
		log.Warn("using in-memory store, leads are not persisted")
		return store.NewMemoryStore(), func() {}, nil
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := Run(ctx); err != nil {
		os.Exit(1)
	}
}
