package panchang

import (
	"context"
	"sort"
	"testing"
)

func TestSampleTithisSortedDistinct(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	dates := YearDates(2024)
	env.computer.tithiFor[dates[0]] = "Zeta"
	env.computer.tithiFor[dates[15]] = "Alpha"
	env.computer.tithiFor[dates[30]] = "Alpha"

	tithis := env.svc.SampleTithis(ctx, "10", "20")

	if !sort.StringsAreSorted(tithis) {
		t.Fatalf("expected sorted output, got %v", tithis)
	}

	counts := make(map[string]int)
	for _, v := range tithis {
		counts[v]++
	}
	if counts["Alpha"] != 1 || counts["Zeta"] != 1 || counts["Pratipada"] != 1 {
		t.Fatalf("expected distinct values, got %v", tithis)
	}

	// 366 dates at stride 15 touch ceil(366/15) = 25 of them.
	if got := env.computer.callCount(); got != 25 {
		t.Fatalf("expected 25 sampled computations, got %d", got)
	}
}

func TestSampleTithisStrideGap(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	// A tithi that only occurs on day index 7 is invisible to the
	// every-15th-date sample. Intentional trade-off, pinned here.
	dates := YearDates(2024)
	env.computer.tithiFor[dates[7]] = "Once-A-Year"

	tithis := env.svc.SampleTithis(ctx, "10", "20")

	for _, v := range tithis {
		if v == "Once-A-Year" {
			t.Fatalf("tithi on a non-sampled date must be omitted, got %v", tithis)
		}
	}
	if len(tithis) != 1 || tithis[0] != "Pratipada" {
		t.Fatalf("expected only the default tithi, got %v", tithis)
	}
}

func TestSampleTithisSkipsFailedDates(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	dates := YearDates(2024)
	env.computer.failDates[dates[0]] = true

	tithis := env.svc.SampleTithis(ctx, "10", "20")

	if len(tithis) != 1 || tithis[0] != "Pratipada" {
		t.Fatalf("expected failed date skipped, got %v", tithis)
	}
}
