package domain

import (
	"strings"
	"time"
)

// Pagination limits for list queries.
const (
	DefaultPageLimit = 30
	MaxPageLimit     = 100
)

// ListQuery describes one page window over the filtered listing set: a
// free-text search term plus page number and page size.
type ListQuery struct {
	Term  string
	Page  int
	Limit int
}

// Normalized returns a copy with the term trimmed, the page floored to 1
// and the limit clamped to [1, MaxPageLimit] with DefaultPageLimit as the
// zero-value default.
func (q ListQuery) Normalized() ListQuery {
	q.Term = strings.TrimSpace(q.Term)
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = DefaultPageLimit
	}
	if q.Limit > MaxPageLimit {
		q.Limit = MaxPageLimit
	}
	return q
}

// Offset returns the number of records to skip for this page.
func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// searchFields lists which attributes a search term is matched against.
var searchFields = []string{"jobRole", "city", "companyName", "name", "description"}

// Matches reports whether the job belongs in this query's result set:
// not expired, and, when a term is present, a case-insensitive substring
// match against any searchable field. The term is treated as a literal,
// never as a pattern, so metacharacter input cannot fail a query.
func (q ListQuery) Matches(j *Job, now time.Time) bool {
	if j.Expired(now) {
		return false
	}
	if q.Term == "" {
		return true
	}
	term := strings.ToLower(q.Term)
	for _, f := range searchFields {
		if strings.Contains(strings.ToLower(j.Field(f)), term) {
			return true
		}
	}
	return false
}

// Less orders listings newest-first with the identifier as an ascending
// tie-break, keeping pagination deterministic for equal timestamps.
func Less(a, b *Job) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID < b.ID
}

// JobPage is one page of list results. Total counts every record matching
// the filter, not just this window.
type JobPage struct {
	Items      []*Job `json:"items"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	Total      int64  `json:"total"`
	TotalPages int64  `json:"totalPages"`
}
