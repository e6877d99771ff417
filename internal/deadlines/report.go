// Package deadlines reports open tasks that are past due or due soon, on
// demand or on a cron schedule.
package deadlines

import (
	"context"
	"fmt"
	"time"

	"github.com/bugjanitor/go-janitor-backend/internal/tasks/domain"
)

// TaskFinder is implemented by the task service.
type TaskFinder interface {
	FindOverdueTasks(ctx context.Context) ([]domain.Task, error)
	FindUpcomingTasks(ctx context.Context) ([]domain.Task, error)
}

type Report struct {
	GeneratedAt time.Time     `json:"generatedAt"`
	Overdue     []domain.Task `json:"overdue"`
	Upcoming    []domain.Task `json:"upcoming"`
}

func BuildReport(ctx context.Context, finder TaskFinder, now time.Time) (Report, error) {
	overdue, err := finder.FindOverdueTasks(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("overdue tasks: %w", err)
	}
	upcoming, err := finder.FindUpcomingTasks(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("upcoming tasks: %w", err)
	}

	if overdue == nil {
		overdue = []domain.Task{}
	}
	if upcoming == nil {
		upcoming = []domain.Task{}
	}
	return Report{GeneratedAt: now.UTC(), Overdue: overdue, Upcoming: upcoming}, nil
}
