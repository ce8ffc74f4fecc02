// Package expiry removes listings that outlived their retention window.
// MongoDB's TTL index does the same server-side with roughly minute
// granularity; the sweep makes the behavior uniform across store backends
// and observable through metrics.
package expiry

import (
	"context"
	"log/slog"
	"time"

	"jobboard/internal/domain"
	"jobboard/internal/metrics"

	"github.com/robfig/cron/v3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// sweepTimeout bounds one sweep pass against a slow store.
const sweepTimeout = 30 * time.Second

// Sweeper periodically purges expired listings on a cron schedule.
type Sweeper struct {
	repo   domain.JobRepository
	cron   *cron.Cron
	logger *slog.Logger
	tracer trace.Tracer
}

// NewSweeper creates a sweeper running repo.DeleteExpired on the given cron
// schedule (e.g. "@every 10m").
func NewSweeper(repo domain.JobRepository, schedule string, logger *slog.Logger) (*Sweeper, error) {
	s := &Sweeper{
		repo:   repo,
		cron:   cron.New(),
		logger: logger.With("component", "expiry-sweeper"),
		tracer: otel.Tracer("jobboard-expiry"),
	}

	if _, err := s.cron.AddFunc(schedule, s.sweep); err != nil {
		return nil, err
	}
	return s, nil
}

// Start runs the sweeper until the context is cancelled, then waits for an
// in-flight sweep to finish.
func (s *Sweeper) Start(ctx context.Context) error {
	s.logger.Info("expiry sweeper started")
	s.cron.Start()
	<-ctx.Done()
	s.logger.Info("expiry sweeper stopping...")
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	s.logger.Info("expiry sweeper stopped")
	return ctx.Err()
}

// Sweep runs one purge pass immediately. Exposed for startup and tests;
// the cron schedule calls the same path.
func (s *Sweeper) Sweep() {
	s.sweep()
}

func (s *Sweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	ctx, span := s.tracer.Start(ctx, "expiry.Sweep")
	defer span.End()

	removed, err := s.repo.DeleteExpired(ctx, time.Now().UTC())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to delete expired jobs")
		s.logger.Error("expiry sweep failed", "error", err)
		return
	}

	span.SetAttributes(attribute.Int64("jobs.removed", removed))
	if removed > 0 {
		metrics.JobsDeletedTotal.WithLabelValues("expired").Add(float64(removed))
		s.logger.Info("expired jobs purged", "removed", removed)
	}
}
