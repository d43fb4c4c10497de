package batch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var customersTotal = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "customers_total",
	Help: "Number of customer profiles currently stored.",
})

// CustomerCounter is the part of customer.CustomerService the stats job reads.
type CustomerCounter interface {
	Count(ctx context.Context) (int64, error)
}

type CustomerStatsJob struct {
	counter CustomerCounter
	gauge   prometheus.Gauge
	logger  *slog.Logger
}

func NewCustomerStatsJob(counter CustomerCounter, logger *slog.Logger) *CustomerStatsJob {
	return newCustomerStatsJob(counter, customersTotal, logger)
}

func newCustomerStatsJob(counter CustomerCounter, gauge prometheus.Gauge, logger *slog.Logger) *CustomerStatsJob {
	if counter == nil || gauge == nil || logger == nil {
		panic("CustomerStatsJob dependencies cannot be nil")
	}
	return &CustomerStatsJob{
		counter: counter,
		gauge:   gauge,
		logger:  logger.With("job", "CustomerStats"),
	}
}

// Run refreshes the customers_total gauge. The gauge keeps its last value
// when counting fails.
func (j *CustomerStatsJob) Run(ctx context.Context) error {
	startTime := time.Now()
	j.logger.DebugContext(ctx, "Starting customer stats job.")

	total, err := j.counter.Count(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to count customers, gauge left unchanged.", slog.Any("error", err))
		return fmt.Errorf("cannot refresh customer stats: %w", err)
	}

	j.gauge.Set(float64(total))
	j.logger.InfoContext(ctx, "Customer stats job finished.",
		slog.Int64("customers_total", total),
		slog.Duration("duration", time.Since(startTime)),
	)
	return nil
}
