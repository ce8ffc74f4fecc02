package domain

import (
	"context"
	"time"
)

// JobRepository defines the interface for persisting and retrieving Job
// listings. Implementations serialize conflicting writes themselves; no
// operation spans more than one record.
type JobRepository interface {
	// Insert persists a new listing and assigns its identifier.
	// Timestamps are stamped by the caller, never by the store.
	Insert(ctx context.Context, job *Job) error

	// FindPage returns one page of listings matching the query, ordered
	// by CreatedAt descending then ID ascending, together with the total
	// number of matches. Expired records are always excluded, whether or
	// not the sweep has removed them yet.
	FindPage(ctx context.Context, q ListQuery, now time.Time) ([]*Job, int64, error)

	// FindByID returns a listing or ErrJobNotFound.
	FindByID(ctx context.Context, id string) (*Job, error)

	// Update merges the changeset into the listing, bumps UpdatedAt and
	// returns the updated record, or ErrJobNotFound.
	Update(ctx context.Context, id string, changes JobChanges) (*Job, error)

	// Delete removes a listing, or returns ErrJobNotFound.
	Delete(ctx context.Context, id string) error

	// IncrementViews atomically bumps the view counter.
	IncrementViews(ctx context.Context, id string) error

	// DeleteExpired purges listings whose ExpiresAt is at or before now
	// and returns how many were removed.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
