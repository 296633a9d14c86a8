package panchang

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
)

func waitForJob(t *testing.T, w *Warmer, id string) Job {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		job, ok := w.Job(id)
		if !ok {
			t.Fatalf("job %s disappeared", id)
		}
		if job.Status == JobDone || job.Status == JobFailed {
			return job
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("job %s did not finish in time", id)
	return Job{}
}

func TestWarmReturnsImmediatelyThenFillsCache(t *testing.T) {
	env := newTestEnv()
	w := NewWarmer(env.svc, zap.NewNop())
	t.Cleanup(w.Close)

	receipt := w.Warm(2024, "12.9716", "77.5946")

	if receipt.TotalDates != 366 {
		t.Fatalf("expected 366 total dates, got %d", receipt.TotalDates)
	}
	if receipt.Location != "12.9716,77.5946" {
		t.Fatalf("unexpected location %q", receipt.Location)
	}
	if receipt.JobID == "" {
		t.Fatalf("expected a job id")
	}

	job := waitForJob(t, w, receipt.JobID)
	if job.Status != JobDone {
		t.Fatalf("expected done, got %s", job.Status)
	}
	if job.Processed != 366 || job.Failed != 0 {
		t.Fatalf("unexpected progress: processed=%d failed=%d", job.Processed, job.Failed)
	}

	// Eventual consistency: the result tier now holds one entry per date.
	resultSize, _, err := env.svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if resultSize != 366 {
		t.Fatalf("expected 366 cached dates, got %d", resultSize)
	}
}

func TestWarmSkipsFailedDates(t *testing.T) {
	env := newTestEnv()
	dates := YearDates(2024)
	env.computer.failDates[dates[3]] = true
	env.computer.failDates[dates[100]] = true

	w := NewWarmer(env.svc, zap.NewNop())
	t.Cleanup(w.Close)

	receipt := w.Warm(2024, "10", "20")
	job := waitForJob(t, w, receipt.JobID)

	// Per-date failures never abort the batch.
	if job.Status != JobDone {
		t.Fatalf("expected done despite failures, got %s", job.Status)
	}
	if job.Failed != 2 || job.Processed != 366 {
		t.Fatalf("unexpected progress: processed=%d failed=%d", job.Processed, job.Failed)
	}

	resultSize, _, _ := env.svc.Stats(context.Background())
	if resultSize != 364 {
		t.Fatalf("expected 364 cached dates, got %d", resultSize)
	}
}

func TestWarmDoesNotRecomputeCachedDates(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	if _, err := env.svc.Lookup(ctx, "2024-03-01", "10", "20"); err != nil {
		t.Fatalf("prewarm lookup failed: %v", err)
	}

	w := NewWarmer(env.svc, zap.NewNop())
	t.Cleanup(w.Close)

	receipt := w.Warm(2024, "10", "20")
	waitForJob(t, w, receipt.JobID)

	// 1 manual + 365 new; the already cached date is a hit, not a compute.
	if got := env.computer.callCount(); got != 366 {
		t.Fatalf("expected 366 computations, got %d", got)
	}
}

func TestWarmJobUnknownID(t *testing.T) {
	env := newTestEnv()
	w := NewWarmer(env.svc, zap.NewNop())
	t.Cleanup(w.Close)

	if _, ok := w.Job("warm-999"); ok {
		t.Fatalf("expected unknown job id to be reported missing")
	}
}
