package panchang

import (
	"context"
	"encoding/json"
	"strings"

	"panchang-service/internal/cache"
	"panchang-service/pkg/logging"

	"go.uber.org/zap"
)

// SearchTithi scans every date of the current year for records whose tithi
// matches term case-insensitively, in ascending date order.
//
// The assembled result is memoized in the search index tier under the
// original-case term, so terms differing only in case populate separate
// entries with identical content. A cached result is returned verbatim even
// if the result cache was cleared since it was built: the two tiers are
// independently stale by design, and only ClearAll resets both.
func (s *Service) SearchTithi(ctx context.Context, term, lat, lng string) (SearchResult, error) {
	logger := logging.L(ctx)
	key := cache.SearchKey(term, lat, lng)

	cached, hit, err := s.searches.Get(ctx, key)
	if err != nil {
		logger.Warn("search_cache_get_error", zap.Error(err))
	}
	if hit {
		var res SearchResult
		if uerr := json.Unmarshal(cached, &res); uerr != nil {
			// Corrupt entry; rescan and overwrite it.
			logger.Warn("search_cache_unmarshal_error", zap.String("cache_key", key), zap.Error(uerr))
		} else {
			return res, nil
		}
	}

	matches := []SearchMatch{}
	for _, date := range YearDates(s.currentYear()) {
		rec, err := s.Lookup(ctx, date, lat, lng)
		if err != nil {
			// Skip the date; the caller sees a shorter result, not a gap.
			logger.Warn("search_date_skipped", zap.String("date", date), zap.Error(err))
			continue
		}
		if strings.EqualFold(rec.Tithi, term) {
			matches = append(matches, SearchMatch{
				Date:      rec.Date,
				Tithi:     rec.Tithi,
				Paksha:    rec.Paksha,
				Nakshatra: rec.Nakshatra,
				Sunrise:   rec.Sunrise,
				Sunset:    rec.Sunset,
			})
		}
	}

	res := SearchResult{
		Tithi:        term,
		Location:     location(lat, lng),
		TotalMatches: len(matches),
		Results:      matches,
	}

	if payload, err := json.Marshal(res); err != nil {
		logger.Warn("search_marshal_error", zap.Error(err))
	} else if err := s.searches.Set(ctx, key, payload); err != nil {
		logger.Warn("search_cache_set_error", zap.Error(err))
	}

	return res, nil
}
