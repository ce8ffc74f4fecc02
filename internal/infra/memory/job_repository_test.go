package memory

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"jobboard/internal/domain"
)

func seedJob(t *testing.T, r *JobRepository, id string, createdAt time.Time, expiresAt *time.Time, role, city string) {
	t.Helper()
	r.Seed(&domain.Job{
		ID:        id,
		JobRole:   role,
		City:      city,
		Phone:     "0512345678",
		Email:     "owner@x.com",
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
		ExpiresAt: expiresAt,
	})
}

func TestInsertAssignsID(t *testing.T) {
	r := NewJobRepository()
	ctx := context.Background()

	j := &domain.Job{JobRole: "Driver", City: "Riyadh"}
	if err := r.Insert(ctx, j); err != nil {
		t.Fatalf("Insert returned error: %v", err)
	}
	if j.ID == "" {
		t.Fatal("Insert did not assign an identifier")
	}

	got, err := r.FindByID(ctx, j.ID)
	if err != nil {
		t.Fatalf("FindByID returned error: %v", err)
	}
	if got.JobRole != "Driver" {
		t.Errorf("JobRole = %q, want %q", got.JobRole, "Driver")
	}
}

func TestFindByIDNotFound(t *testing.T) {
	r := NewJobRepository()
	if _, err := r.FindByID(context.Background(), "missing"); !errors.Is(err, domain.ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
}

func TestFindPagePaginationAndOrdering(t *testing.T) {
	r := NewJobRepository()
	ctx := context.Background()
	now := time.Now().UTC()
	base := now.Add(-time.Hour)

	// 7 records: distinct timestamps plus a three-way tie at base.
	for i := 0; i < 4; i++ {
		seedJob(t, r, fmt.Sprintf("d%d", i), base.Add(time.Duration(i+1)*time.Minute), nil, "Driver", "Riyadh")
	}
	for _, id := range []string{"c", "a", "b"} {
		seedJob(t, r, "tie-"+id, base, nil, "Driver", "Riyadh")
	}

	limit := 3
	var all []*domain.Job
	var total int64
	for page := 1; ; page++ {
		items, tot, err := r.FindPage(ctx, domain.ListQuery{Page: page, Limit: limit}.Normalized(), now)
		if err != nil {
			t.Fatalf("FindPage page %d: %v", page, err)
		}
		total = tot
		if len(items) == 0 {
			break
		}
		all = append(all, items...)
	}

	if total != 7 {
		t.Fatalf("total = %d, want 7", total)
	}
	if len(all) != 7 {
		t.Fatalf("concatenated pages hold %d items, want 7", len(all))
	}

	seen := make(map[string]bool)
	for i, j := range all {
		if seen[j.ID] {
			t.Errorf("job %s appeared on more than one page", j.ID)
		}
		seen[j.ID] = true
		if i > 0 && !domain.Less(all[i-1], j) {
			t.Errorf("ordering violated between %s and %s", all[i-1].ID, j.ID)
		}
	}

	// The tied records must come last, in ascending id order.
	wantTail := []string{"tie-a", "tie-b", "tie-c"}
	for i, want := range wantTail {
		if got := all[4+i].ID; got != want {
			t.Errorf("position %d = %s, want %s", 4+i, got, want)
		}
	}
}

func TestFindPageFilterCountsMatchesOnly(t *testing.T) {
	r := NewJobRepository()
	ctx := context.Background()
	now := time.Now().UTC()

	seedJob(t, r, "e1", now.Add(-time.Minute), nil, "Electrician", "Jeddah")
	seedJob(t, r, "p1", now.Add(-2*time.Minute), nil, "Plumber", "Riyadh")

	items, total, err := r.FindPage(ctx, domain.ListQuery{Term: "electric"}.Normalized(), now)
	if err != nil {
		t.Fatalf("FindPage: %v", err)
	}
	if total != 1 {
		t.Errorf("total = %d, want 1 (total must reflect the filter)", total)
	}
	if len(items) != 1 || items[0].ID != "e1" {
		t.Errorf("items = %v, want only e1", items)
	}
}

func TestFindPageExcludesExpiredBeforeSweep(t *testing.T) {
	r := NewJobRepository()
	ctx := context.Background()
	now := time.Now().UTC()
	past := now.Add(-time.Minute)
	future := now.Add(time.Hour)

	seedJob(t, r, "live", now.Add(-2*time.Hour), &future, "Driver", "Riyadh")
	seedJob(t, r, "dead", now.Add(-3*time.Hour), &past, "Driver", "Riyadh")

	items, total, err := r.FindPage(ctx, domain.ListQuery{}.Normalized(), now)
	if err != nil {
		t.Fatalf("FindPage: %v", err)
	}
	if total != 1 || len(items) != 1 || items[0].ID != "live" {
		t.Fatalf("expected only the live record, got total=%d items=%v", total, items)
	}

	// The expired record still physically exists until the sweep runs.
	if _, err := r.FindByID(ctx, "dead"); err != nil {
		t.Fatalf("expired record should exist before sweep: %v", err)
	}

	removed, err := r.DeleteExpired(ctx, now)
	if err != nil {
		t.Fatalf("DeleteExpired: %v", err)
	}
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}
	if _, err := r.FindByID(ctx, "dead"); !errors.Is(err, domain.ErrJobNotFound) {
		t.Errorf("expected ErrJobNotFound after sweep, got %v", err)
	}
}

func TestUpdateMergesPartialChanges(t *testing.T) {
	r := NewJobRepository()
	ctx := context.Background()
	now := time.Now().UTC()

	seedJob(t, r, "j1", now, nil, "Driver", "Riyadh")

	city := "Dammam"
	updated, err := r.Update(ctx, "j1", domain.JobChanges{City: &city})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.City != "Dammam" {
		t.Errorf("City = %q, want %q", updated.City, "Dammam")
	}
	if updated.JobRole != "Driver" {
		t.Errorf("JobRole changed unexpectedly: %q", updated.JobRole)
	}
	if updated.Email != "owner@x.com" {
		t.Errorf("Email changed unexpectedly: %q", updated.Email)
	}
	if !updated.UpdatedAt.After(now.Add(-time.Second)) {
		t.Errorf("UpdatedAt not bumped: %v", updated.UpdatedAt)
	}

	if _, err := r.Update(ctx, "missing", domain.JobChanges{City: &city}); !errors.Is(err, domain.ErrJobNotFound) {
		t.Errorf("expected ErrJobNotFound, got %v", err)
	}
}

func TestDeleteNotIdempotent(t *testing.T) {
	r := NewJobRepository()
	ctx := context.Background()

	seedJob(t, r, "j1", time.Now().UTC(), nil, "Driver", "Riyadh")

	if err := r.Delete(ctx, "j1"); err != nil {
		t.Fatalf("first Delete: %v", err)
	}
	if err := r.Delete(ctx, "j1"); !errors.Is(err, domain.ErrJobNotFound) {
		t.Fatalf("second Delete should be ErrJobNotFound, got %v", err)
	}
}

func TestIncrementViews(t *testing.T) {
	r := NewJobRepository()
	ctx := context.Background()

	seedJob(t, r, "j1", time.Now().UTC(), nil, "Driver", "Riyadh")

	for i := 0; i < 3; i++ {
		if err := r.IncrementViews(ctx, "j1"); err != nil {
			t.Fatalf("IncrementViews: %v", err)
		}
	}
	j, err := r.FindByID(ctx, "j1")
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if j.ViewCount != 3 {
		t.Errorf("ViewCount = %d, want 3", j.ViewCount)
	}

	if err := r.IncrementViews(ctx, "missing"); !errors.Is(err, domain.ErrJobNotFound) {
		t.Errorf("expected ErrJobNotFound, got %v", err)
	}
}

func TestFindPageReturnsCopies(t *testing.T) {
	r := NewJobRepository()
	ctx := context.Background()
	now := time.Now().UTC()

	seedJob(t, r, "j1", now, nil, "Driver", "Riyadh")

	items, _, err := r.FindPage(ctx, domain.ListQuery{}.Normalized(), now)
	if err != nil {
		t.Fatalf("FindPage: %v", err)
	}
	items[0].City = "mutated"

	j, _ := r.FindByID(ctx, "j1")
	if j.City != "Riyadh" {
		t.Error("mutating a returned job leaked into the store")
	}
}
