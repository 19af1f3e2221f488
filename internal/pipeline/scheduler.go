package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"git.home.luguber.info/inful/plenar/internal/logfields"
)

// Scheduler wraps a gocron scheduler for periodic runs.
type Scheduler struct {
	scheduler gocron.Scheduler
	logger    *slog.Logger
}

// NewScheduler creates a stopped scheduler.
func NewScheduler(logger *slog.Logger) (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{scheduler: s, logger: logger}, nil
}

// ScheduleEvery runs task every interval. A run still in progress when the
// next one is due is not overlapped; the next run is rescheduled instead.
// When immediately is set the first run starts right after Start.
func (s *Scheduler) ScheduleEvery(name string, interval time.Duration, immediately bool, task func()) (string, error) {
	if interval <= 0 {
		return "", fmt.Errorf("interval must be positive, got %s", interval)
	}
	opts := []gocron.JobOption{
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	}
	if immediately {
		opts = append(opts, gocron.WithStartAt(gocron.WithStartImmediately()))
	}
	job, err := s.scheduler.NewJob(gocron.DurationJob(interval), gocron.NewTask(task), opts...)
	if err != nil {
		return "", fmt.Errorf("failed to create periodic job: %w", err)
	}
	return job.ID().String(), nil
}

// Start begins the scheduler.
func (s *Scheduler) Start() {
	s.logger.Info("Starting scheduler")
	s.scheduler.Start()
}

// Stop shuts the scheduler down and waits for running jobs.
func (s *Scheduler) Stop() error {
	s.logger.Info("Stopping scheduler")
	return s.scheduler.Shutdown()
}

// Watch calls run every interval, starting immediately, until ctx is done.
// Run errors are logged; the schedule keeps going.
func Watch(ctx context.Context, interval time.Duration, logger *slog.Logger, run func(ctx context.Context) error) error {
	s, err := NewScheduler(logger)
	if err != nil {
		return err
	}
	_, err = s.ScheduleEvery("plenar-run", interval, true, func() {
		if ctx.Err() != nil {
			return
		}
		if err := run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			s.logger.Error("Scheduled run failed", logfields.Error(err))
		}
	})
	if err != nil {
		_ = s.Stop()
		return err
	}
	s.logger.Info("Watching for new protocols", slog.Duration("interval", interval))
	s.Start()
	<-ctx.Done()
	return s.Stop()
}
