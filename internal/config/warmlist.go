package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// WarmLocation is one coordinate to pre-warm at startup.
type WarmLocation struct {
	Name string `yaml:"name"`
	Lat  string `yaml:"lat"`
	Lng  string `yaml:"lng"`
}

// WarmList is the optional startup-warming config file:
//
//	locations:
//	  - name: bengaluru
//	    lat: "12.9716"
//	    lng: "77.5946"
//
// Coordinates are strings on purpose: they pass through the cache-key path
// verbatim, and key matching is string-exact.
type WarmList struct {
	Locations []WarmLocation `yaml:"locations"`
}

// LoadWarmList reads and validates a warm-list YAML file.
func LoadWarmList(path string) (WarmList, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return WarmList{}, fmt.Errorf("read warm list %s: %w", path, err)
	}

	var wl WarmList
	if err := yaml.Unmarshal(data, &wl); err != nil {
		return WarmList{}, fmt.Errorf("parse warm list: %w", err)
	}

	for i, loc := range wl.Locations {
		if loc.Lat == "" || loc.Lng == "" {
			return WarmList{}, fmt.Errorf("warm list entry %d (%s): lat and lng are required", i, loc.Name)
		}
	}
	return wl, nil
}
