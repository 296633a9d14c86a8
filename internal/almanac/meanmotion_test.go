package almanac

import (
	"context"
	"testing"
)

func TestMeanMotionDeterministic(t *testing.T) {
	m := NewMeanMotion()
	ctx := context.Background()

	first, err := m.Compute(ctx, "2024-06-01", "12.9716", "77.5946")
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	second, err := m.Compute(ctx, "2024-06-01", "12.9716", "77.5946")
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if first != second {
		t.Fatalf("expected identical results, got %+v vs %+v", first, second)
	}
	if first.Tithi == "" || first.Nakshatra == "" || first.Masa == "" {
		t.Fatalf("incomplete fields: %+v", first)
	}
}

func TestMeanMotionLunarPhaseAnchors(t *testing.T) {
	m := NewMeanMotion()
	ctx := context.Background()

	// The epoch day itself falls at the tail of the previous lunation.
	newMoon, err := m.Compute(ctx, "2000-01-06", "0", "0")
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if newMoon.Tithi != "Amavasya" || newMoon.Paksha != "Krishna" {
		t.Fatalf("expected Amavasya/Krishna at epoch, got %s/%s", newMoon.Tithi, newMoon.Paksha)
	}

	// Half a lunation later is the full moon.
	fullMoon, err := m.Compute(ctx, "2000-01-21", "0", "0")
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if fullMoon.Tithi != "Purnima" || fullMoon.Paksha != "Shukla" {
		t.Fatalf("expected Purnima/Shukla at full moon, got %s/%s", fullMoon.Tithi, fullMoon.Paksha)
	}
}

func TestMeanMotionRejectsBadInput(t *testing.T) {
	m := NewMeanMotion()
	ctx := context.Background()

	if _, err := m.Compute(ctx, "not-a-date", "12.9716", "77.5946"); err == nil {
		t.Fatalf("expected error for unparseable date")
	}
	if _, err := m.Compute(ctx, "2024-06-01", "91", "77.5946"); err == nil {
		t.Fatalf("expected error for out-of-range latitude")
	}
	if _, err := m.Compute(ctx, "2024-06-01", "12.9716", "x"); err == nil {
		t.Fatalf("expected error for non-numeric longitude")
	}
	if _, _, err := m.SunTimes(ctx, "2024-13-40", "12.9716", "77.5946"); err == nil {
		t.Fatalf("expected error for invalid date in SunTimes")
	}
}

func TestMeanMotionSunTimes(t *testing.T) {
	m := NewMeanMotion()
	ctx := context.Background()

	// At the equator day length is always 12 hours of local solar time.
	sunrise, sunset, err := m.SunTimes(ctx, "2024-06-01", "0", "77.5946")
	if err != nil {
		t.Fatalf("SunTimes failed: %v", err)
	}
	if sunrise != "06:00" || sunset != "18:00" {
		t.Fatalf("expected 06:00/18:00 at equator, got %s/%s", sunrise, sunset)
	}

	// Midnight sun near the pole at midsummer.
	sunrise, sunset, err = m.SunTimes(ctx, "2024-06-21", "89", "0")
	if err != nil {
		t.Fatalf("SunTimes failed: %v", err)
	}
	if sunrise != "00:00" || sunset != "23:59" {
		t.Fatalf("expected midnight sun, got %s/%s", sunrise, sunset)
	}

	// Polar night near the pole at midwinter.
	sunrise, sunset, err = m.SunTimes(ctx, "2024-12-21", "89", "0")
	if err != nil {
		t.Fatalf("SunTimes failed: %v", err)
	}
	if sunrise != "--:--" || sunset != "--:--" {
		t.Fatalf("expected polar night, got %s/%s", sunrise, sunset)
	}
}
