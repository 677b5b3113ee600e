package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scribe/internal/models"
)

// ErrBatchRunning is returned by RunNow while another batch is in progress
var ErrBatchRunning = errors.New("a queue batch is already running")

// QueueProcessor runs one batch over the queued titles
type QueueProcessor interface {
	ProcessQueueDetailed(ctx context.Context, limit int) (*models.BatchResult, error)
}

// QueueScheduler runs queue batches on a cron schedule. At most one batch runs at a time;
// a tick that fires while a batch is running is skipped.
type QueueScheduler struct {
	processor QueueProcessor
	limit     int
	logger    arbor.ILogger

	mu      sync.Mutex
	cron    *cron.Cron
	entryID cron.EntryID
	cancel  context.CancelFunc

	processing atomic.Bool
	lastMu     sync.Mutex
	lastRun    time.Time
	lastResult *models.BatchResult
	lastErr    error
}

// NewQueueScheduler creates a scheduler that processes up to limit titles per batch
func NewQueueScheduler(processor QueueProcessor, limit int, logger arbor.ILogger) *QueueScheduler {
	return &QueueScheduler{
		processor: processor,
		limit:     limit,
		logger:    logger,
	}
}

// Start registers the batch on the cron schedule (seconds field supported) and starts the cron runner
func (s *QueueScheduler) Start(schedule string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil {
		return fmt.Errorf("scheduler already running")
	}

	cl := cronLogger{logger: s.logger}
	c := cron.New(
		cron.WithSeconds(),
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl)),
	)

	ctx, cancel := context.WithCancel(context.Background())
	id, err := c.AddFunc(schedule, func() {
		if _, err := s.run(ctx); err != nil && !errors.Is(err, ErrBatchRunning) {
			s.logger.Error().Err(err).Msg("Scheduled queue batch failed")
		}
	})
	if err != nil {
		cancel()
		return fmt.Errorf("invalid queue schedule '%s': %w", schedule, err)
	}

	c.Start()
	s.cron = c
	s.entryID = id
	s.cancel = cancel

	s.logger.Info().
		Str("schedule", schedule).
		Int("limit", s.limit).
		Str("next_run", c.Entry(id).Next.Format(time.RFC3339)).
		Msg("Queue scheduler started")
	return nil
}

// Stop halts scheduling and waits for a running batch to finish
func (s *QueueScheduler) Stop() {
	s.mu.Lock()
	c := s.cron
	cancel := s.cancel
	s.cron = nil
	s.cancel = nil
	s.mu.Unlock()

	if c == nil {
		return
	}

	<-c.Stop().Done()
	cancel()
	s.logger.Info().Msg("Queue scheduler stopped")
}

// IsRunning reports whether the cron runner is active
func (s *QueueScheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cron != nil
}

// RunNow runs one batch synchronously. It fails with ErrBatchRunning instead of overlapping a running batch.
func (s *QueueScheduler) RunNow(ctx context.Context) (*models.BatchResult, error) {
	return s.run(ctx)
}

// LastRun returns the time, result and error of the most recent batch
func (s *QueueScheduler) LastRun() (time.Time, *models.BatchResult, error) {
	s.lastMu.Lock()
	defer s.lastMu.Unlock()
	return s.lastRun, s.lastResult, s.lastErr
}

func (s *QueueScheduler) run(ctx context.Context) (*models.BatchResult, error) {
	if !s.processing.CompareAndSwap(false, true) {
		s.logger.Debug().Msg("Queue batch still running, skipping")
		return nil, ErrBatchRunning
	}
	defer s.processing.Store(false)

	started := time.Now()
	result, err := s.processor.ProcessQueueDetailed(ctx, s.limit)

	s.lastMu.Lock()
	s.lastRun = started
	s.lastResult = result
	s.lastErr = err
	s.lastMu.Unlock()

	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int("selected", result.Selected).
		Int("completed", result.Completed).
		Int("failed", result.Failed).
		Dur("duration", time.Since(started)).
		Msg("Queue batch finished")
	return result, nil
}

// cronLogger adapts arbor to cron's logger interface
type cronLogger struct {
	logger arbor.ILogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug().Str("cron", fmt.Sprint(keysAndValues...)).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error().Err(err).Str("cron", fmt.Sprint(keysAndValues...)).Msg(msg)
}
