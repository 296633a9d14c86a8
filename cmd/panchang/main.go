package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"panchang-service/internal/almanac"
	"panchang-service/internal/cache"
	"panchang-service/internal/config"
	"panchang-service/internal/handlers"
	"panchang-service/internal/httpserver"
	"panchang-service/internal/metrics"
	"panchang-service/internal/panchang"
	"panchang-service/pkg/logging"
)

type Config struct {
	Port          string
	CacheBackend  string // "memory" or "redis"
	CacheCapacity int    // 0 = unbounded
	CacheTTL      time.Duration
	RedisAddr     string
	WarmConfig    string // optional YAML warm-list path
}

func LoadConfig() Config {
	return Config{
		Port:          getenv("PORT", "8080"),
		CacheBackend:  getenv("CACHE_BACKEND", "memory"),
		CacheCapacity: getenvInt("CACHE_CAPACITY", 0),
		CacheTTL:      getenvDuration("CACHE_TTL", 0),
		RedisAddr:     getenv("REDIS_ADDR", "127.0.0.1:6379"),
		WarmConfig:    os.Getenv("WARM_CONFIG"),
	}
}

func main() {
	if err := run(); err != nil {
		log.Fatalf("panchang service exited with error: %v", err)
	}
}

func run() error {
	// .env is optional; real env vars win either way.
	_ = godotenv.Load()

	// ----- Logger -----
	logger := logging.DefaultLogger()
	defer logger.Sync()

	// ----- Metrics -----
	metrics.Register()

	// ----- Config -----
	cfg := LoadConfig()

	logger.Info("loaded config",
		zap.String("port", cfg.Port),
		zap.String("cache_backend", cfg.CacheBackend),
		zap.Int("cache_capacity", cfg.CacheCapacity),
		zap.Duration("cache_ttl", cfg.CacheTTL),
		zap.String("redis_addr", cfg.RedisAddr),
		zap.String("warm_config", cfg.WarmConfig),
	)

	// ----- Redis client (only if needed) -----
	var redisClient *redis.Client
	if cfg.CacheBackend == "redis" {
		redisClient = redis.NewClient(&redis.Options{
			Addr: cfg.RedisAddr,
		})

		// Fail fast if Redis is misconfigured
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Error("redis connection failed", zap.Error(err))
			return err
		}
		logger.Info("redis connection established",
			zap.String("addr", cfg.RedisAddr),
		)
	}

	// ----- Cache tiers -----
	cacheCfg := cache.Config{
		Backend:  cfg.CacheBackend,
		Capacity: cfg.CacheCapacity,
		TTL:      cfg.CacheTTL,
		Prefix:   "panchang",
	}
	resultStore := cache.NewLoggingStore(cache.NewStore(cacheCfg, redisClient, "result"), "panchang")
	searchStore := cache.NewLoggingStore(cache.NewStore(cacheCfg, redisClient, "search"), "tithi-search")

	// ----- Service + warmer -----
	svc := panchang.NewService(resultStore, searchStore, almanac.NewMeanMotion())
	warmer := panchang.NewWarmer(svc, logger)
	defer warmer.Close()

	// ----- Startup warming -----
	if cfg.WarmConfig != "" {
		warmList, err := config.LoadWarmList(cfg.WarmConfig)
		if err != nil {
			return err
		}
		year := time.Now().Year()
		for _, loc := range warmList.Locations {
			receipt := warmer.Warm(year, loc.Lat, loc.Lng)
			logger.Info("startup warm enqueued",
				zap.String("name", loc.Name),
				zap.String("job_id", receipt.JobID),
				zap.Int("total_dates", receipt.TotalDates),
				zap.String("location", receipt.Location),
			)
		}
	}

	// ----- Handlers -----
	h := handlers.NewPanchangHandler(svc, warmer)

	// ----- Router + middleware -----
	r := chi.NewRouter()
	httpserver.SetupRouter(r, logger, h)

	// ----- HTTP server -----
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      90 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	logger.Info("starting panchang service",
		zap.String("addr", srv.Addr),
		zap.String("cache_backend", cfg.CacheBackend),
	)

	// Start server in background
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", zap.Error(err))
		}
	}()

	// ----- Graceful shutdown -----
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
		return err
	}

	logger.Info("server shutdown complete")
	return nil
}

// getenv returns the value of the environment variable key or def if not set.
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getenvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
