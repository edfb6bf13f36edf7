package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/atmx/payoff-engine/internal/cache"
	"github.com/atmx/payoff-engine/internal/calc"
	"github.com/atmx/payoff-engine/internal/config"
	"github.com/atmx/payoff-engine/internal/logging"
	"github.com/atmx/payoff-engine/internal/metrics"
	"github.com/atmx/payoff-engine/internal/payoff"
)

func main() {
	configFile := flag.String("config", "", "path to payoff.yaml")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	logger, logCloser, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logging:", err)
		os.Exit(1)
	}
	defer logCloser.Close()
	slog.SetDefault(logger)

	decimal.MarshalJSONWithoutQuotes = true

	// --- Result cache ---
	resultCache, closeCache, err := newCache(cfg.Cache)
	if err != nil {
		slog.Error("cache init failed", "err", err)
		os.Exit(1)
	}
	defer closeCache()

	// --- WebSocket hub ---
	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	wsHub := calc.NewWSHub()
	go wsHub.Run(ctx)

	// --- Calculation service ---
	svc := calc.NewService(cfg.Grid.ToGrid(), cfg.Limits.Limiter(), resultCache, wsHub)
	svc.SetBatchLimits(cfg.Batch.MaxItems, cfg.Batch.Concurrency)

	// --- HTTP router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.Middleware(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.Server.RequestTimeout))
	r.Use(metrics.Middleware)
	r.Use(cors(cfg.Server.CORSOrigin))
	if cfg.RateLimit.Enabled {
		r.Use(calc.RateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"status":"ok","service":"payoff-engine","strategies":%d,"wsClients":%d}`,
			len(payoff.IDs()), wsHub.Clients())
	})

	// Prometheus metrics endpoint.
	r.Handle("/metrics", metrics.Handler())

	svc.Routes(r)

	// --- Server ---
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		slog.Info("payoff-engine listening", "port", cfg.Server.Port, "cache", cfg.Cache.Backend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	slog.Info("shutting down payoff-engine...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "err", err)
	}
	stop()
	slog.Info("payoff-engine stopped")
}

// newCache builds the configured result cache. The returned func releases
// its connections.
func newCache(cfg config.CacheConfig) (cache.Cache, func(), error) {
	noop := func() {}
	switch cfg.Backend {
	case config.CacheNone:
		slog.Warn("result cache disabled")
		return nil, noop, nil
	case config.CacheMemory:
		return cache.NewMemoryCache(cfg.TTL, cfg.Cleanup), noop, nil
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, noop, fmt.Errorf("invalid redis url: %w", err)
	}
	rdb := redis.NewClient(opt)
	closeFn := func() { rdb.Close() }

	rc := cache.NewRedisCache(rdb, cfg.TTL)
	pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rc.Ping(pingCtx); err != nil {
		slog.Warn("redis unreachable, lookups will miss until it recovers", "err", err)
	} else {
		slog.Info("Redis cache enabled")
	}

	if cfg.Backend == config.CacheTiered {
		return cache.NewTiered(cache.NewMemoryCache(cfg.TTL, cfg.Cleanup), rc), closeFn, nil
	}
	return rc, closeFn, nil
}

// cors allows cross-origin requests from origin.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
