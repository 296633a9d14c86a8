package panchang

import (
	"context"
	"sort"

	"panchang-service/pkg/logging"

	"go.uber.org/zap"
)

// sampleStride selects every 15th date of the year for suggestions.
const sampleStride = 15

// SampleTithis returns the sorted distinct tithi names found on a
// stride-sampled subset of the current year (indexes 0, 15, 30, ...).
//
// The sample is a deliberate approximation: a tithi occurring only on
// non-sampled dates is omitted. Good enough for autocomplete without
// scanning all ~365 dates.
func (s *Service) SampleTithis(ctx context.Context, lat, lng string) []string {
	logger := logging.L(ctx)

	dates := YearDates(s.currentYear())
	seen := make(map[string]struct{})
	for i := 0; i < len(dates); i += sampleStride {
		rec, err := s.Lookup(ctx, dates[i], lat, lng)
		if err != nil {
			logger.Warn("sample_date_skipped", zap.String("date", dates[i]), zap.Error(err))
			continue
		}
		seen[rec.Tithi] = struct{}{}
	}

	tithis := make([]string, 0, len(seen))
	for t := range seen {
		tithis = append(tithis, t)
	}
	sort.Strings(tithis)
	return tithis
}
