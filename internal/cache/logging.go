package cache

import (
	"context"
	"time"

	"panchang-service/internal/metrics"
	"panchang-service/pkg/logging"

	"go.uber.org/zap"
)

// LoggingStore wraps a Store with logging + metrics, labeled by tier.
type LoggingStore struct {
	inner Store
	tier  string
}

// NewLoggingStore returns a store that logs and records metrics.
func NewLoggingStore(inner Store, tier string) Store {
	return &LoggingStore{inner: inner, tier: tier}
}

func (s *LoggingStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	start := time.Now()
	value, ok, err := s.inner.Get(ctx, key)
	latencyMs := float64(time.Since(start).Microseconds()) / 1000.0

	logger := logging.L(ctx)

	result := "miss"
	if err != nil {
		result = "error"
	} else if ok {
		result = "hit"
		metrics.CacheHitsTotal.WithLabelValues(s.tier).Inc()
	}
	if result == "miss" {
		metrics.CacheMissesTotal.WithLabelValues(s.tier).Inc()
	}

	fields := []zap.Field{
		zap.String("cache_tier", s.tier),
		zap.String("cache_key", key),
		zap.String("cache_result", result), // hit | miss | error
		zap.Float64("latency_ms", latencyMs),
	}

	if err != nil {
		logger.Error("cache_get", append(fields, zap.Error(err))...)
	} else {
		logger.Debug("cache_get", fields...)
	}

	return value, ok, err
}

func (s *LoggingStore) Set(ctx context.Context, key string, value []byte) error {
	start := time.Now()
	err := s.inner.Set(ctx, key, value)
	latencyMs := float64(time.Since(start).Microseconds()) / 1000.0

	logger := logging.L(ctx)

	fields := []zap.Field{
		zap.String("cache_tier", s.tier),
		zap.String("cache_key", key),
		zap.Float64("latency_ms", latencyMs),
	}

	if err != nil {
		logger.Error("cache_set", append(fields, zap.Error(err))...)
	} else {
		logger.Debug("cache_set", fields...)
	}

	return err
}

func (s *LoggingStore) Len(ctx context.Context) (int, error) {
	return s.inner.Len(ctx)
}

func (s *LoggingStore) Clear(ctx context.Context) error {
	err := s.inner.Clear(ctx)
	logger := logging.L(ctx)
	if err != nil {
		logger.Error("cache_clear", zap.String("cache_tier", s.tier), zap.Error(err))
	} else {
		logger.Info("cache_clear", zap.String("cache_tier", s.tier))
	}
	return err
}
