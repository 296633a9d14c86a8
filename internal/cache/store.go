package cache

import "context"

// Key identifies one memoized panchang computation.
//
// All three parts are opaque strings taken verbatim from the request. Two
// keys address the same entry iff their concatenations are byte-equal, so
// coordinate comparison is string-exact: lat "12.9" and "12.90" are distinct
// entries even though they are numerically equal.
type Key struct {
	Date string // YYYY-MM-DD
	Lat  string
	Lng  string
}

func (k Key) String() string {
	return k.Date + k.Lat + k.Lng
}

// SearchKey builds the tithi-search index key. The term is kept in its
// original case: the index key is case-sensitive even though the search
// match itself is case-insensitive, so "purnima" and "PURNIMA" populate two
// entries with identical content.
func SearchKey(term, lat, lng string) string {
	return term + lat + lng
}

// Store is the key-value contract shared by both cache tiers.
// Implemented by the in-memory store (default) and the Redis store.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Len(ctx context.Context) (int, error)
	Clear(ctx context.Context) error
}
