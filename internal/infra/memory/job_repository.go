// Package memory provides an in-memory JobRepository. It exists for tests
// and local development only; production always runs against MongoDB.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"jobboard/internal/domain"

	"github.com/google/uuid"
)

// JobRepository is a mutex-guarded, map-backed implementation of
// domain.JobRepository.
type JobRepository struct {
	mu   sync.RWMutex
	jobs map[string]*domain.Job
}

var _ domain.JobRepository = (*JobRepository)(nil)

// NewJobRepository creates an empty in-memory repository.
func NewJobRepository() *JobRepository {
	return &JobRepository{jobs: make(map[string]*domain.Job)}
}

func (r *JobRepository) Insert(ctx context.Context, job *domain.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	job.ID = uuid.New().String()
	cp := *job
	r.jobs[job.ID] = &cp
	return nil
}

func (r *JobRepository) FindPage(ctx context.Context, q domain.ListQuery, now time.Time) ([]*domain.Job, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]*domain.Job, 0)
	for _, j := range r.jobs {
		if q.Matches(j, now) {
			matched = append(matched, j)
		}
	}
	sort.Slice(matched, func(i, k int) bool { return domain.Less(matched[i], matched[k]) })

	total := int64(len(matched))
	start := q.Offset()
	if start > len(matched) {
		start = len(matched)
	}
	end := start + q.Limit
	if end > len(matched) {
		end = len(matched)
	}

	page := make([]*domain.Job, 0, end-start)
	for _, j := range matched[start:end] {
		cp := *j
		page = append(page, &cp)
	}
	return page, total, nil
}

func (r *JobRepository) FindByID(ctx context.Context, id string) (*domain.Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	j, ok := r.jobs[id]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	cp := *j
	return &cp, nil
}

func (r *JobRepository) Update(ctx context.Context, id string, changes domain.JobChanges) (*domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	j, ok := r.jobs[id]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	changes.Apply(j)
	j.UpdatedAt = time.Now().UTC()
	cp := *j
	return &cp, nil
}

func (r *JobRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.jobs[id]; !ok {
		return domain.ErrJobNotFound
	}
	delete(r.jobs, id)
	return nil
}

func (r *JobRepository) IncrementViews(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	j, ok := r.jobs[id]
	if !ok {
		return domain.ErrJobNotFound
	}
	j.ViewCount++
	return nil
}

func (r *JobRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed int64
	for id, j := range r.jobs {
		if j.Expired(now) {
			delete(r.jobs, id)
			removed++
		}
	}
	return removed, nil
}

// Seed inserts a listing verbatim, keeping its identifier and timestamps.
// Test helper; not part of domain.JobRepository.
func (r *JobRepository) Seed(job *domain.Job) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if job.ID == "" {
		job.ID = uuid.New().String()
	}
	cp := *job
	r.jobs[job.ID] = &cp
}
