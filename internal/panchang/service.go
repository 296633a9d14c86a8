package panchang

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"panchang-service/internal/almanac"
	"panchang-service/internal/cache"
	"panchang-service/internal/metrics"
	"panchang-service/pkg/logging"

	"go.uber.org/zap"
)

// Service owns both cache tiers and the almanac computer. Owning both
// stores in one place is what makes ClearAll atomic from the caller's
// perspective: there is no path that clears one tier without the other.
type Service struct {
	results  cache.Store
	searches cache.Store
	computer almanac.Computer

	// Now resolves "the current year" for search, suggestions, and startup
	// warming. Overridable in tests.
	Now func() time.Time
}

func NewService(results, searches cache.Store, computer almanac.Computer) *Service {
	return &Service{
		results:  results,
		searches: searches,
		computer: computer,
		Now:      time.Now,
	}
}

// Lookup returns the almanac record for (date, lat, lng), computing and
// caching it on a miss.
//
// Store failures are logged and treated as misses: the cache is
// best-effort. Computation failures are returned wrapped in ErrComputation
// and nothing is cached, so a later call retries. There is no cross-request
// locking; two concurrent misses for the same key may both compute, which
// is safe because the computer is deterministic and last write wins.
func (s *Service) Lookup(ctx context.Context, date, lat, lng string) (Record, error) {
	logger := logging.L(ctx)
	key := cache.Key{Date: date, Lat: lat, Lng: lng}.String()

	cached, hit, err := s.results.Get(ctx, key)
	if err != nil {
		logger.Warn("result_cache_get_error", zap.Error(err))
	}
	if hit {
		var rec Record
		if uerr := json.Unmarshal(cached, &rec); uerr != nil {
			// Corrupt entry; recompute and overwrite it.
			logger.Warn("result_cache_unmarshal_error", zap.String("cache_key", key), zap.Error(uerr))
		} else {
			return rec, nil
		}
	}

	rec, err := s.compute(ctx, date, lat, lng)
	if err != nil {
		return Record{}, err
	}

	if payload, err := json.Marshal(rec); err != nil {
		logger.Warn("result_marshal_error", zap.Error(err))
	} else if err := s.results.Set(ctx, key, payload); err != nil {
		logger.Warn("result_cache_set_error", zap.Error(err))
	}

	return rec, nil
}

func (s *Service) compute(ctx context.Context, date, lat, lng string) (Record, error) {
	metrics.ComputationsTotal.Inc()

	fields, err := s.computer.Compute(ctx, date, lat, lng)
	if err != nil {
		metrics.ComputationErrorsTotal.Inc()
		return Record{}, fmt.Errorf("%w: %w", ErrComputation, err)
	}

	sunrise, sunset, err := s.computer.SunTimes(ctx, date, lat, lng)
	if err != nil {
		metrics.ComputationErrorsTotal.Inc()
		return Record{}, fmt.Errorf("%w: %w", ErrComputation, err)
	}

	return Record{
		Date:      date,
		Latitude:  lat,
		Longitude: lng,
		Tithi:     fields.Tithi,
		Paksha:    fields.Paksha,
		Nakshatra: fields.Nakshatra,
		Yoga:      fields.Yoga,
		Karna:     fields.Karna,
		Masa:      fields.Masa,
		Raasi:     fields.Raasi,
		Ritu:      fields.Ritu,
		Sunrise:   sunrise,
		Sunset:    sunset,
	}, nil
}

// Stats reports the entry count of each cache tier.
func (s *Service) Stats(ctx context.Context) (resultSize, searchSize int, err error) {
	resultSize, err = s.results.Len(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("result cache size: %w", err)
	}
	searchSize, err = s.searches.Len(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("search cache size: %w", err)
	}
	return resultSize, searchSize, nil
}

// ClearAll empties both tiers. A partial failure still attempts the second
// clear and reports both errors.
func (s *Service) ClearAll(ctx context.Context) error {
	resultErr := s.results.Clear(ctx)
	searchErr := s.searches.Clear(ctx)
	if resultErr != nil {
		return fmt.Errorf("clear result cache: %w", resultErr)
	}
	if searchErr != nil {
		return fmt.Errorf("clear search cache: %w", searchErr)
	}
	return nil
}

func (s *Service) currentYear() int {
	return s.Now().Year()
}

func location(lat, lng string) string {
	return lat + "," + lng
}
