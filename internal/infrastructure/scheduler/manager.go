// Package scheduler provides unified scheduler management using gocron v2.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/joshuahale/portfolio-backend/internal/shared/logger"
)

// BatchJob defines the interface for a scheduled batch processing job.
// Each Execute call processes a batch and returns the number of items processed.
type BatchJob interface {
	Execute(ctx context.Context) (int64, error)
}

// SchedulerManager manages all scheduled background jobs using gocron v2.
type SchedulerManager struct {
	scheduler gocron.Scheduler
	logger    logger.Interface

	started   bool
	startedMu sync.RWMutex
}

// NewSchedulerManager creates a new SchedulerManager instance.
func NewSchedulerManager(log logger.Interface) (*SchedulerManager, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	return &SchedulerManager{
		scheduler: scheduler,
		logger:    log,
	}, nil
}

// RegisterSessionPurgeJob registers the periodic sweep that deletes expired
// sessions. The sweep is safe to run concurrently with request handling; it
// only removes rows whose expiry has already passed.
func (m *SchedulerManager) RegisterSessionPurgeJob(job BatchJob, interval time.Duration) error {
	_, err := m.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			m.runSessionPurge(ctx, job)
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithTags("auth", "session-purge"),
		gocron.WithName("session-purge"),
	)
	if err != nil {
		return err
	}

	m.logger.Infow("registered session purge job", "interval", interval.String())
	return nil
}

func (m *SchedulerManager) runSessionPurge(ctx context.Context, job BatchJob) {
	count, err := job.Execute(ctx)
	if err != nil {
		m.logger.Errorw("session purge failed", "error", err)
		return
	}
	if count > 0 {
		m.logger.Infow("purged expired sessions", "count", count)
	}
}

// Start begins executing registered jobs. Calling Start twice is a no-op.
func (m *SchedulerManager) Start() {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if m.started {
		return
	}

	m.scheduler.Start()
	m.started = true
	m.logger.Infow("scheduler started")
}

// Stop shuts the scheduler down, waiting for running jobs to finish.
func (m *SchedulerManager) Stop() error {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if !m.started {
		return nil
	}

	if err := m.scheduler.Shutdown(); err != nil {
		return err
	}
	m.started = false
	m.logger.Infow("scheduler stopped")
	return nil
}
