package panchang

// Record is one computed almanac entry for a (date, lat, lng) key.
// Derived fields are opaque display strings; sunrise/sunset are HH:MM
// time-of-day strings. Records are immutable once computed: the computer is
// deterministic, so a cached record never goes stale.
type Record struct {
	Date      string `json:"date"`
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
	Tithi     string `json:"tithi"`
	Paksha    string `json:"paksha"`
	Nakshatra string `json:"nakshatra"`
	Yoga      string `json:"yoga"`
	Karna     string `json:"karna"`
	Masa      string `json:"masa"`
	Raasi     string `json:"raasi"`
	Ritu      string `json:"ritu"`
	Sunrise   string `json:"sunrise"`
	Sunset    string `json:"sunset"`
}

// SearchMatch is one matching date inside a SearchResult.
type SearchMatch struct {
	Date      string `json:"date"`
	Tithi     string `json:"tithi"`
	Paksha    string `json:"paksha"`
	Nakshatra string `json:"nakshatra"`
	Sunrise   string `json:"sunrise"`
	Sunset    string `json:"sunset"`
}

// SearchResult is the outcome of a full-year tithi search, cached as a
// whole in the search index tier.
type SearchResult struct {
	Tithi        string        `json:"tithi"`
	Location     string        `json:"location"`
	TotalMatches int           `json:"totalMatches"`
	Results      []SearchMatch `json:"results"`
}
