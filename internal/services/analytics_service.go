package services

import (
	"context"
	"fmt"
	"time"

	"github.com/yukikurage/taskflow-api/internal/constants"
	"github.com/yukikurage/taskflow-api/internal/models"
	"github.com/yukikurage/taskflow-api/internal/repository"
)

// TaskMetrics summarizes task progress. AvgCompletionTime and
// TeamProductivity are placeholders until completion history is tracked.
type TaskMetrics struct {
	CompletedTasks    int     `json:"completedTasks"`
	AvgCompletionTime float64 `json:"avgCompletionTime"`
	TeamProductivity  int     `json:"teamProductivity"`
	OverdueTasks      int     `json:"overdueTasks"`
}

// DashboardInsights holds the dashboard summary tiles. All values are
// placeholders.
type DashboardInsights struct {
	FocusTime      string `json:"focusTime"`
	CompletionRate int    `json:"completionRate"`
	TeamVelocity   int    `json:"teamVelocity"`
	BestWorkHours  string `json:"bestWorkHours"`
}

// AnalyticsService derives metrics from stored tasks
type AnalyticsService struct {
	taskRepo repository.TaskRepository
	now      func() time.Time
}

func NewAnalyticsService(taskRepo repository.TaskRepository) *AnalyticsService {
	return &AnalyticsService{
		taskRepo: taskRepo,
		now:      time.Now,
	}
}

// TaskMetrics computes metrics over the tasks assigned to userID, or over
// every task when userID is nil.
func (s *AnalyticsService) TaskMetrics(ctx context.Context, userID *string) (*TaskMetrics, error) {
	var (
		tasks []models.Task
		err   error
	)
	if userID != nil {
		tasks, err = s.taskRepo.ListByAssignee(ctx, *userID)
	} else {
		tasks, err = s.taskRepo.List(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}

	metrics := ComputeTaskMetrics(tasks, s.now())
	return &metrics, nil
}

// DashboardInsights returns the dashboard summary
func (s *AnalyticsService) DashboardInsights(_ context.Context) *DashboardInsights {
	return &DashboardInsights{
		FocusTime:      constants.PlaceholderFocusTime,
		CompletionRate: constants.PlaceholderCompletionRate,
		TeamVelocity:   constants.PlaceholderTeamVelocity,
		BestWorkHours:  constants.PlaceholderBestWorkHours,
	}
}

// ComputeTaskMetrics counts done and overdue tasks as of now.
func ComputeTaskMetrics(tasks []models.Task, now time.Time) TaskMetrics {
	metrics := TaskMetrics{
		AvgCompletionTime: constants.PlaceholderAvgCompletionHours,
		TeamProductivity:  constants.PlaceholderTeamProductivity,
	}
	for i := range tasks {
		if tasks[i].Status == models.TaskStatusDone {
			metrics.CompletedTasks++
		}
		if tasks[i].IsOverdue(now) {
			metrics.OverdueTasks++
		}
	}
	return metrics
}
