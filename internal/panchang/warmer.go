package panchang

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"panchang-service/internal/metrics"

	"go.uber.org/zap"
)

// warmBatchSize is how many dates the worker computes between yield points.
const warmBatchSize = 50

type JobStatus string

const (
	JobPending JobStatus = "pending"
	JobRunning JobStatus = "running"
	JobDone    JobStatus = "done"
	JobFailed  JobStatus = "failed"
)

// Job is the observable state of one year-warming task.
type Job struct {
	ID         string    `json:"jobId"`
	Year       int       `json:"year"`
	Lat        string    `json:"-"`
	Lng        string    `json:"-"`
	Status     JobStatus `json:"status"`
	TotalDates int       `json:"totalDates"`
	Processed  int       `json:"processed"`
	Failed     int       `json:"failed"`
}

// Receipt is returned to the caller immediately on enqueue, before any
// caching work begins. Completion is observable via Job or cache stats.
type Receipt struct {
	JobID      string
	TotalDates int
	Location   string
}

// Warmer pre-populates the result cache for every date of a year at one
// coordinate. Jobs go through a queue drained by a single worker goroutine,
// which processes dates in batches of warmBatchSize and yields between
// batches. The worker stops when Close is called; a job interrupted by
// shutdown is marked failed.
type Warmer struct {
	svc    *Service
	logger *zap.Logger

	mu   sync.Mutex
	jobs map[string]*Job
	seq  int

	queue  chan string
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

func NewWarmer(svc *Service, logger *zap.Logger) *Warmer {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Warmer{
		svc:    svc,
		logger: logger,
		jobs:   make(map[string]*Job),
		queue:  make(chan string, 128),
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go w.run()
	return w
}

// Warm enqueues a warming job for every date of year at (lat, lng) and
// returns immediately. Dates already cached are not recomputed; per-date
// computation errors are counted and skipped, never aborting the job.
func (w *Warmer) Warm(year int, lat, lng string) Receipt {
	total := len(YearDates(year))

	w.mu.Lock()
	w.seq++
	job := &Job{
		ID:         fmt.Sprintf("warm-%d", w.seq),
		Year:       year,
		Lat:        lat,
		Lng:        lng,
		Status:     JobPending,
		TotalDates: total,
	}
	w.jobs[job.ID] = job
	w.mu.Unlock()

	metrics.WarmJobsTotal.Inc()

	select {
	case w.queue <- job.ID:
	default:
		w.setStatus(job.ID, JobFailed)
		w.logger.Warn("warm queue full, job rejected", zap.String("job_id", job.ID))
	}

	return Receipt{
		JobID:      job.ID,
		TotalDates: total,
		Location:   location(lat, lng),
	}
}

// Job returns a snapshot of a job's state.
func (w *Warmer) Job(id string) (Job, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	job, ok := w.jobs[id]
	if !ok {
		return Job{}, false
	}
	return *job, true
}

// Close cancels the worker. In-flight work stops at the next batch boundary.
func (w *Warmer) Close() {
	w.cancel()
	<-w.done
}

func (w *Warmer) run() {
	defer close(w.done)
	for {
		select {
		case <-w.ctx.Done():
			return
		case id := <-w.queue:
			w.process(id)
		}
	}
}

func (w *Warmer) process(id string) {
	w.mu.Lock()
	job, ok := w.jobs[id]
	if !ok || job.Status != JobPending {
		w.mu.Unlock()
		return
	}
	job.Status = JobRunning
	year, lat, lng := job.Year, job.Lat, job.Lng
	w.mu.Unlock()

	w.logger.Info("warm job started",
		zap.String("job_id", id),
		zap.Int("year", year),
		zap.String("location", location(lat, lng)),
	)

	dates := YearDates(year)
	for start := 0; start < len(dates); start += warmBatchSize {
		if w.ctx.Err() != nil {
			w.setStatus(id, JobFailed)
			w.logger.Warn("warm job interrupted by shutdown", zap.String("job_id", id))
			return
		}

		end := min(start+warmBatchSize, len(dates))
		for _, date := range dates[start:end] {
			_, err := w.svc.Lookup(w.ctx, date, lat, lng)

			w.mu.Lock()
			job.Processed++
			if err != nil {
				job.Failed++
			}
			w.mu.Unlock()

			if err != nil {
				w.logger.Warn("warm date failed", zap.String("date", date), zap.Error(err))
			}
		}

		// Yield between batches so a year-long warm shares the scheduler.
		runtime.Gosched()
	}

	w.setStatus(id, JobDone)

	w.mu.Lock()
	processed, failed := job.Processed, job.Failed
	w.mu.Unlock()
	w.logger.Info("warm job finished",
		zap.String("job_id", id),
		zap.Int("processed", processed),
		zap.Int("failed", failed),
	)
}

func (w *Warmer) setStatus(id string, status JobStatus) {
	w.mu.Lock()
	if job, ok := w.jobs[id]; ok {
		job.Status = status
	}
	w.mu.Unlock()
}
