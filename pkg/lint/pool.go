package lint

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gnana997/proplint/pkg/util"
)

// Job is one file submitted to the pool.
type Job struct {
	FilePath string
	JobID    int
}

// JobResult is the outcome of a Job. Exactly one of Result and Err is set.
type JobResult struct {
	JobID  int
	Result *FileResult
	Err    error
}

// WorkerPool lints files on a fixed number of goroutines.
//
// Usage:
//
//	pool := NewWorkerPool(0, linter, logger)
//	pool.Start()
//	for i, file := range files {
//	    pool.Submit(ctx, Job{FilePath: file, JobID: i})
//	}
//	pool.FinishSubmitting()
//	for res := range pool.Results() {
//	    // ...
//	}
//
// Results is closed once every submitted job has been processed.
type WorkerPool struct {
	numWorkers int
	jobs       chan Job
	results    chan JobResult
	wg         sync.WaitGroup
	linter     *Linter
	logger     *slog.Logger

	started    atomic.Bool
	jobsClosed atomic.Bool

	jobsSubmitted atomic.Int64
	jobsProcessed atomic.Int64
	jobsFailed    atomic.Int64
}

// NewWorkerPool creates a pool. numWorkers 0 matches the parser pool size
// so workers never wait on a parser.
func NewWorkerPool(numWorkers int, linter *Linter, logger *slog.Logger) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = util.GetOptimalPoolSize()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkerPool{
		numWorkers: numWorkers,
		jobs:       make(chan Job, numWorkers*2),
		results:    make(chan JobResult, numWorkers),
		linter:     linter,
		logger:     logger,
	}
}

// Start spawns the workers. Calling it twice is a no-op.
func (wp *WorkerPool) Start() {
	if !wp.started.CompareAndSwap(false, true) {
		return
	}
	wp.logger.Debug("starting worker pool", "workers", wp.numWorkers)
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.worker(i)
	}
	go func() {
		wp.wg.Wait()
		close(wp.results)
	}()
}

func (wp *WorkerPool) worker(id int) {
	defer wp.wg.Done()
	for job := range wp.jobs {
		res, err := wp.linter.LintFile(job.FilePath)
		if err != nil {
			wp.jobsFailed.Add(1)
			wp.logger.Debug("lint failed", "worker_id", id, "file", job.FilePath, "error", err)
			wp.results <- JobResult{JobID: job.JobID, Err: err}
			continue
		}
		wp.jobsProcessed.Add(1)
		wp.results <- JobResult{JobID: job.JobID, Result: res}
	}
}

// Submit enqueues job, blocking while the queue is full.
func (wp *WorkerPool) Submit(ctx context.Context, job Job) error {
	if wp.jobsClosed.Load() {
		return fmt.Errorf("worker pool is closed")
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case wp.jobs <- job:
		wp.jobsSubmitted.Add(1)
		return nil
	}
}

// Results returns the result channel.
func (wp *WorkerPool) Results() <-chan JobResult {
	return wp.results
}

// FinishSubmitting signals that no more jobs follow. It is idempotent.
func (wp *WorkerPool) FinishSubmitting() {
	if wp.jobsClosed.CompareAndSwap(false, true) {
		close(wp.jobs)
	}
}

// WorkerPoolStats contains pool counters.
type WorkerPoolStats struct {
	NumWorkers    int
	JobsSubmitted int64
	JobsProcessed int64
	JobsFailed    int64
}

// GetStats returns current pool counters.
func (wp *WorkerPool) GetStats() WorkerPoolStats {
	return WorkerPoolStats{
		NumWorkers:    wp.numWorkers,
		JobsSubmitted: wp.jobsSubmitted.Load(),
		JobsProcessed: wp.jobsProcessed.Load(),
		JobsFailed:    wp.jobsFailed.Load(),
	}
}

// LintFiles lints files concurrently and returns results in input order.
// Per-file failures are reported in FileResult.Err; the returned error is
// only set when ctx is cancelled.
func (l *Linter) LintFiles(ctx context.Context, files []string, workers int) ([]FileResult, error) {
	pool := NewWorkerPool(workers, l, l.logger)
	pool.Start()

	go func() {
		defer pool.FinishSubmitting()
		for i, f := range files {
			if err := pool.Submit(ctx, Job{FilePath: f, JobID: i}); err != nil {
				return
			}
		}
	}()

	out := make([]FileResult, len(files))
	for i, f := range files {
		out[i].FilePath = f
	}
	for res := range pool.Results() {
		if res.Err != nil {
			out[res.JobID].Err = res.Err
			continue
		}
		out[res.JobID] = *res.Result
	}

	if err := ctx.Err(); err != nil {
		return out, err
	}
	return out, nil
}
