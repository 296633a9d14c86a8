package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "warm.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}

func TestLoadWarmList(t *testing.T) {
	path := writeTemp(t, `
locations:
  - name: bengaluru
    lat: "12.9716"
    lng: "77.5946"
  - name: varanasi
    lat: "25.3176"
    lng: "82.9739"
`)

	wl, err := LoadWarmList(path)
	if err != nil {
		t.Fatalf("LoadWarmList failed: %v", err)
	}
	if len(wl.Locations) != 2 {
		t.Fatalf("expected 2 locations, got %d", len(wl.Locations))
	}
	if wl.Locations[0].Name != "bengaluru" || wl.Locations[0].Lat != "12.9716" {
		t.Fatalf("unexpected first location: %+v", wl.Locations[0])
	}
}

func TestLoadWarmListMissingCoordinate(t *testing.T) {
	path := writeTemp(t, `
locations:
  - name: nowhere
    lat: "12.9716"
`)

	if _, err := LoadWarmList(path); err == nil {
		t.Fatalf("expected error for missing lng")
	}
}

func TestLoadWarmListMissingFile(t *testing.T) {
	if _, err := LoadWarmList(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
