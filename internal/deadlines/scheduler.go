package deadlines

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/bugjanitor/go-janitor-backend/internal/logging"
)

// Schedules take an optional seconds field, so both "0 8 * * *" and
// "0 0 8 * * *" run at 08:00. Descriptors such as "@hourly" work too.
var parser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

type Scheduler struct {
	finder   TaskFinder
	schedule string
	timeout  time.Duration
	now      func() time.Time
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewScheduler(finder TaskFinder, schedule string) *Scheduler {
	return &Scheduler{
		finder:   finder,
		schedule: schedule,
		timeout:  30 * time.Second,
		now:      time.Now,
		logger:   slog.Default().With("component", "deadline_watcher"),
	}
}

// Start registers the watch job and starts the cron loop. An empty schedule
// leaves the watcher disabled.
func (s *Scheduler) Start() error {
	if s.schedule == "" {
		s.logger.Info("deadline watcher disabled")
		return nil
	}

	s.cron = cron.New(cron.WithParser(parser))
	if _, err := s.cron.AddFunc(s.schedule, s.run); err != nil {
		return fmt.Errorf("invalid deadline schedule %q: %w", s.schedule, err)
	}
	s.cron.Start()
	s.logger.Info("deadline watcher started", "schedule", s.schedule)
	return nil
}

// Stop halts the cron loop and waits for a running job up to ctx.
func (s *Scheduler) Stop(ctx context.Context) {
	if s.cron == nil {
		return
	}
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	_, _ = s.RunOnce(logging.WithContext(ctx, s.logger))
}

// RunOnce builds one report and logs its counts.
func (s *Scheduler) RunOnce(ctx context.Context) (Report, error) {
	logger := logging.Op(ctx, "deadline_watch")

	report, err := BuildReport(ctx, s.finder, s.now())
	if err != nil {
		logger.Error("deadline report failed", "error", err)
		return Report{}, err
	}
	if len(report.Overdue) > 0 {
		logger.Warn("tasks overdue", "overdue", len(report.Overdue), "upcoming", len(report.Upcoming))
	} else {
		logger.Info("deadline report", "overdue", 0, "upcoming", len(report.Upcoming))
	}
	return report, nil
}
