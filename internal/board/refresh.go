package board

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// refreshJob asks the worker to re-fetch the version-scoped collections.
// Jobs carry the epoch they were scheduled under; a job whose epoch no
// longer matches the board's is stale and must not touch the store.
type refreshJob struct {
	ID       string
	Epoch    uint64
	Attempt  int
	Enqueued time.Time
}

// refreshQueue is a small in-memory worker pool draining refresh jobs, so
// the board lock is never held across an upstream round-trip.
type refreshQueue struct {
	handler    func(context.Context, refreshJob) error
	workers    int
	maxRetries int
	retryDelay time.Duration
	logger     *zap.Logger

	jobs   chan refreshJob
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	started bool
}

type refreshQueueConfig struct {
	Workers    int
	BufferSize int
	MaxRetries int
	RetryDelay time.Duration
	Logger     *zap.Logger
}

func newRefreshQueue(handler func(context.Context, refreshJob) error, cfg refreshQueueConfig) *refreshQueue {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = cfg.Workers * 4
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return &refreshQueue{
		handler:    handler,
		workers:    cfg.Workers,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		logger:     cfg.Logger,
		jobs:       make(chan refreshJob, cfg.BufferSize),
	}
}

// start begins worker consumption. Safe to call once.
func (q *refreshQueue) start(ctx context.Context) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.started {
		return
	}
	q.ctx, q.cancel = context.WithCancel(ctx)
	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go q.worker()
	}
	q.started = true
}

// stop cancels workers and waits for them to exit.
func (q *refreshQueue) stop() {
	q.mu.Lock()
	if !q.started {
		q.mu.Unlock()
		return
	}
	q.cancel()
	q.mu.Unlock()
	q.wg.Wait()
}

// enqueue pushes a job without blocking. When the buffer is full the job is
// dropped: a newer refresh is already queued and will observe fresher state.
func (q *refreshQueue) enqueue(job refreshJob) {
	q.mu.Lock()
	started := q.started
	q.mu.Unlock()
	if !started {
		return
	}
	if job.Enqueued.IsZero() {
		job.Enqueued = time.Now().UTC()
	}

	select {
	case q.jobs <- job:
	default:
		q.logger.Debug("refresh queue full, dropping job", zap.String("job_id", job.ID))
	}
}

func (q *refreshQueue) worker() {
	defer q.wg.Done()
	for {
		select {
		case <-q.ctx.Done():
			return
		case job := <-q.jobs:
			if err := q.handler(q.ctx, job); err != nil {
				q.handleFailure(job, err)
			}
		}
	}
}

func (q *refreshQueue) handleFailure(job refreshJob, err error) {
	job.Attempt++
	if job.Attempt > q.maxRetries {
		q.logger.Error("refresh job exceeded retries",
			zap.String("job_id", job.ID),
			zap.Error(err))
		return
	}
	q.logger.Warn("refresh job failed, retrying",
		zap.String("job_id", job.ID),
		zap.Int("attempt", job.Attempt),
		zap.Error(err))

	go func(j refreshJob) {
		timer := time.NewTimer(q.retryDelay)
		defer timer.Stop()
		select {
		case <-q.ctx.Done():
		case <-timer.C:
			q.enqueue(j)
		}
	}(job)
}
