// Package scheduler runs the periodic maintenance jobs using gocron v2.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/boostline-inc/boostline/internal/application/billing/usecases"
	"github.com/boostline-inc/boostline/internal/shared/logger"
)

// SchedulerManager owns the single gocron scheduler instance.
type SchedulerManager struct {
	scheduler gocron.Scheduler
	logger    logger.Interface

	started   bool
	startedMu sync.RWMutex
}

func NewSchedulerManager(log logger.Interface) (*SchedulerManager, error) {
	scheduler, err := gocron.NewScheduler(
		gocron.WithLocation(time.UTC),
	)
	if err != nil {
		return nil, err
	}

	return &SchedulerManager{
		scheduler: scheduler,
		logger:    log,
	}, nil
}

// RegisterSweepJob schedules the subscription sweep: cancelled rows past
// their grace period are deactivated, active rows past their end date
// are expired. Singleton mode keeps a slow sweep from overlapping the
// next tick.
func (m *SchedulerManager) RegisterSweepJob(sweep *usecases.SweepExpiredUseCase, interval time.Duration) error {
	_, err := m.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()

			if _, err := sweep.Execute(ctx); err != nil {
				m.logger.Errorw("subscription sweep failed", "error", err)
			}
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithName("subscription-sweeper"),
	)
	if err != nil {
		return err
	}

	m.logger.Infow("registered subscription sweep job", "interval", interval)
	return nil
}

// Start begins executing registered jobs.
func (m *SchedulerManager) Start() {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if m.started {
		return
	}

	m.scheduler.Start()
	m.started = true
	m.logger.Info("scheduler started")
}

// Stop shuts the scheduler down, waiting for running jobs.
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
	m.logger.Info("scheduler stopped")
	return nil
}
