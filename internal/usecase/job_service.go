package usecase

import (
	"context"
	"log/slog"
	"math"
	"time"

	"jobboard/internal/domain"
	"jobboard/internal/metrics"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Policy holds the tunable lifecycle rules: which fields a new listing must
// carry and how long a listing stays live. A zero Retention disables expiry.
type Policy struct {
	Retention      time.Duration
	RequiredFields []string
}

// DefaultPolicy matches the canonical variant: 30-day retention, listings
// must carry a role, city, phone and the email used for later verification.
func DefaultPolicy() Policy {
	return Policy{
		Retention:      30 * 24 * time.Hour,
		RequiredFields: []string{"jobRole", "city", "phone", "email"},
	}
}

// JobService implements the listing lifecycle: create, list, ownership-gated
// update and delete, and best-effort view counting.
type JobService struct {
	repo   domain.JobRepository
	policy Policy
	logger *slog.Logger
	tracer trace.Tracer
}

// NewJobService creates a new JobService instance.
func NewJobService(repo domain.JobRepository, policy Policy, logger *slog.Logger) *JobService {
	if len(policy.RequiredFields) == 0 {
		policy.RequiredFields = DefaultPolicy().RequiredFields
	}
	return &JobService{
		repo:   repo,
		policy: policy,
		logger: logger.With("component", "job-service"),
		tracer: otel.Tracer("jobboard-usecase"),
	}
}

// Create validates required fields, stamps creation and expiry times and
// persists the listing. The store assigns the identifier.
func (s *JobService) Create(ctx context.Context, job *domain.Job) (*domain.Job, error) {
	ctx, span := s.tracer.Start(ctx, "service.Create")
	defer span.End()

	job.TrimFields()

	var missing []string
	for _, f := range s.policy.RequiredFields {
		if job.Field(f) == "" {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		span.SetStatus(codes.Error, "validation failed")
		return nil, domain.NewValidationError(missing...)
	}

	now := time.Now().UTC()
	job.ID = ""
	job.CreatedAt = now
	job.UpdatedAt = now
	job.ViewCount = 0
	if s.policy.Retention > 0 {
		expires := now.Add(s.policy.Retention)
		job.ExpiresAt = &expires
	} else {
		job.ExpiresAt = nil
	}

	if err := s.repo.Insert(ctx, job); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to insert job")
		return nil, err
	}
	span.SetAttributes(attribute.String("job.id", job.ID))
	metrics.JobsCreatedTotal.Inc()

	s.logger.Info("job created", "job_id", job.ID, "city", job.City, "job_role", job.JobRole)
	return job, nil
}

// List returns one page of listings matching the free-text term, newest
// first. totalPages is never below 1, even for an empty result.
func (s *JobService) List(ctx context.Context, q domain.ListQuery) (*domain.JobPage, error) {
	ctx, span := s.tracer.Start(ctx, "service.List")
	defer span.End()

	q = q.Normalized()
	span.SetAttributes(
		attribute.String("query.term", q.Term),
		attribute.Int("query.page", q.Page),
		attribute.Int("query.limit", q.Limit),
	)

	items, total, err := s.repo.FindPage(ctx, q, time.Now().UTC())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to list jobs from repository")
		return nil, err
	}

	totalPages := int64(math.Ceil(float64(total) / float64(q.Limit)))
	if totalPages < 1 {
		totalPages = 1
	}
	if items == nil {
		items = []*domain.Job{}
	}

	return &domain.JobPage{
		Items:      items,
		Page:       q.Page,
		Limit:      q.Limit,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

// Get returns a single listing by identifier.
func (s *JobService) Get(ctx context.Context, id string) (*domain.Job, error) {
	ctx, span := s.tracer.Start(ctx, "service.Get")
	defer span.End()
	span.SetAttributes(attribute.String("job.id", id))

	job, err := s.repo.FindByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to get job from repository")
	}
	return job, err
}

// Update applies a partial change to a listing after verifying the caller
// owns it. The stored email and creation time are not part of the
// changeset and cannot be altered here.
func (s *JobService) Update(ctx context.Context, id, callerEmail string, changes domain.JobChanges) (*domain.Job, error) {
	ctx, span := s.tracer.Start(ctx, "service.Update")
	defer span.End()
	span.SetAttributes(attribute.String("job.id", id))

	job, err := s.repo.FindByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to get job from repository")
		return nil, err
	}

	if err := domain.VerifyOwner(job.Email, callerEmail); err != nil {
		span.SetStatus(codes.Error, "ownership verification failed")
		return nil, err
	}

	if changes.Empty() {
		return job, nil
	}

	updated, err := s.repo.Update(ctx, id, changes)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to update job in repository")
		return nil, err
	}

	s.logger.Info("job updated", "job_id", id)
	return updated, nil
}

// Delete removes a listing after verifying the caller owns it.
func (s *JobService) Delete(ctx context.Context, id, callerEmail string) error {
	ctx, span := s.tracer.Start(ctx, "service.Delete")
	defer span.End()
	span.SetAttributes(attribute.String("job.id", id))

	job, err := s.repo.FindByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to get job from repository")
		return err
	}

	if err := domain.VerifyOwner(job.Email, callerEmail); err != nil {
		span.SetStatus(codes.Error, "ownership verification failed")
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to delete job from repository")
		return err
	}

	metrics.JobsDeletedTotal.WithLabelValues("owner").Inc()
	s.logger.Info("job deleted", "job_id", id)
	return nil
}

// RecordView bumps a listing's view counter. Best-effort: failures are
// logged and swallowed so a broken counter never breaks a read.
func (s *JobService) RecordView(ctx context.Context, id string) {
	ctx, span := s.tracer.Start(ctx, "service.RecordView")
	defer span.End()
	span.SetAttributes(attribute.String("job.id", id))

	if err := s.repo.IncrementViews(ctx, id); err != nil {
		span.RecordError(err)
		s.logger.Warn("failed to record view", "job_id", id, "error", err)
	}
}
