package domain

import (
	"strings"
	"time"
)

// Job represents a single classified listing. The identifier is assigned by
// the store at insert time and never reused. Email is set once at creation
// and only ever read for ownership verification.
type Job struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	CompanyName string     `json:"companyName"`
	Phone       string     `json:"phone"`
	Email       string     `json:"email"`
	City        string     `json:"city"`
	JobRole     string     `json:"jobRole"`
	Description string     `json:"description"`
	ViewCount   int64      `json:"viewCount"`
	IsUrgent    bool       `json:"isUrgent,omitempty"`
	UrgentUntil *time.Time `json:"urgentUntil,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
}

// Expired reports whether the listing is past its expiry time. Listings
// without an ExpiresAt never expire.
func (j *Job) Expired(now time.Time) bool {
	return j.ExpiresAt != nil && !j.ExpiresAt.After(now)
}

// TrimFields trims surrounding whitespace from every free-text field.
func (j *Job) TrimFields() {
	j.Name = strings.TrimSpace(j.Name)
	j.CompanyName = strings.TrimSpace(j.CompanyName)
	j.Phone = strings.TrimSpace(j.Phone)
	j.Email = strings.TrimSpace(j.Email)
	j.City = strings.TrimSpace(j.City)
	j.JobRole = strings.TrimSpace(j.JobRole)
	j.Description = strings.TrimSpace(j.Description)
}

// Field returns the value of a named listing field. Used by the
// configurable required-field policy; unknown names return "".
func (j *Job) Field(name string) string {
	switch name {
	case "name":
		return j.Name
	case "companyName":
		return j.CompanyName
	case "phone":
		return j.Phone
	case "email":
		return j.Email
	case "city":
		return j.City
	case "jobRole":
		return j.JobRole
	case "description":
		return j.Description
	}
	return ""
}

// JobChanges is the changeset for a partial update. Nil fields are left
// untouched. Email, CreatedAt, ExpiresAt and ViewCount have no slot here:
// they stay immutable through the update path by construction.
type JobChanges struct {
	Name        *string
	CompanyName *string
	Phone       *string
	City        *string
	JobRole     *string
	Description *string
	IsUrgent    *bool
	UrgentUntil *time.Time
}

// Apply merges the changeset into the job in place.
func (c *JobChanges) Apply(j *Job) {
	if c.Name != nil {
		j.Name = strings.TrimSpace(*c.Name)
	}
	if c.CompanyName != nil {
		j.CompanyName = strings.TrimSpace(*c.CompanyName)
	}
	if c.Phone != nil {
		j.Phone = strings.TrimSpace(*c.Phone)
	}
	if c.City != nil {
		j.City = strings.TrimSpace(*c.City)
	}
	if c.JobRole != nil {
		j.JobRole = strings.TrimSpace(*c.JobRole)
	}
	if c.Description != nil {
		j.Description = strings.TrimSpace(*c.Description)
	}
	if c.IsUrgent != nil {
		j.IsUrgent = *c.IsUrgent
	}
	if c.UrgentUntil != nil {
		j.UrgentUntil = c.UrgentUntil
	}
}

// Empty reports whether the changeset would touch nothing.
func (c *JobChanges) Empty() bool {
	return c.Name == nil && c.CompanyName == nil && c.Phone == nil &&
		c.City == nil && c.JobRole == nil && c.Description == nil &&
		c.IsUrgent == nil && c.UrgentUntil == nil
}
