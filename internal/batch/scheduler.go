package batch

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

const (
	defaultCustomerStatsSchedule = "@every 1m"
	defaultCustomerStatsTimeout  = 30 * time.Second
)

// Job is a unit of work run by the scheduler.
type Job interface {
	Run(ctx context.Context) error
}

// ScheduleCustomerStats registers job on c. Each run gets its own context
// bounded by timeout.
func ScheduleCustomerStats(c *cron.Cron, schedule string, timeout time.Duration, job Job, logger *slog.Logger) (cron.EntryID, error) {
	if schedule == "" {
		schedule = defaultCustomerStatsSchedule
		logger.Warn("Customer stats schedule not configured, using default", "schedule", schedule)
	}
	if timeout <= 0 {
		timeout = defaultCustomerStatsTimeout
	}

	jobID, err := c.AddJob(schedule, cron.FuncJob(func() {
		jobLogger := logger.With("job_name", "CustomerStats")
		jobLogger.Debug("Cron triggered: Running customer stats job.")

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if runErr := job.Run(ctx); runErr != nil {
			jobLogger.Error("Customer stats job finished with error", slog.Any("error", runErr))
		}
	}))
	if err != nil {
		logger.Error("Failed to schedule customer stats job", "schedule", schedule, slog.Any("error", err))
		return 0, err
	}

	logger.Info("Scheduled customer stats job", "schedule", schedule, "job_id", jobID)
	return jobID, nil
}
