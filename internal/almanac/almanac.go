package almanac

import "context"

// Fields are the derived almanac values for one date at one location.
// All values are opaque display strings.
type Fields struct {
	Tithi     string
	Paksha    string
	Nakshatra string
	Yoga      string
	Karna     string
	Masa      string
	Raasi     string
	Ritu      string
}

// Computer produces almanac fields and sun times for a calendar date at a
// coordinate. Implementations must be deterministic for fixed inputs: the
// caching layer relies on recomputation yielding identical results.
type Computer interface {
	Compute(ctx context.Context, date, lat, lng string) (Fields, error)
	SunTimes(ctx context.Context, date, lat, lng string) (sunrise, sunset string, err error)
}
