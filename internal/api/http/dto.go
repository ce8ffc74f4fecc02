package http

import (
	"time"

	"jobboard/internal/domain"
)

// CreateJobRequest is the DTO for posting a new listing. "role" is an
// accepted alias for "jobRole"; the alias set is fixed here at the boundary
// and never reaches the service layer.
type CreateJobRequest struct {
	Name        string `json:"name" validate:"max=128"`
	CompanyName string `json:"companyName" validate:"max=128"`
	Phone       string `json:"phone" validate:"omitempty,phone"`
	Email       string `json:"email" validate:"omitempty,email,max=254"`
	City        string `json:"city" validate:"max=128"`
	JobRole     string `json:"jobRole" validate:"max=128"`
	Role        string `json:"role" validate:"max=128"`
	Description string `json:"description" validate:"max=4000"`
	IsUrgent    bool   `json:"isUrgent"`
}

// ToDomainJob converts a CreateJobRequest DTO to a domain.Job.
func (r *CreateJobRequest) ToDomainJob() *domain.Job {
	jobRole := r.JobRole
	if jobRole == "" {
		jobRole = r.Role
	}

	return &domain.Job{
		Name:        r.Name,
		CompanyName: r.CompanyName,
		Phone:       r.Phone,
		Email:       r.Email,
		City:        r.City,
		JobRole:     jobRole,
		Description: r.Description,
		IsUrgent:    r.IsUrgent,
	}
}

// UpdateJobRequest is the DTO for a partial update. Absent fields stay
// untouched; email identifies the owner and is never written.
type UpdateJobRequest struct {
	Email       string     `json:"email" validate:"required,email"`
	Name        *string    `json:"name" validate:"omitempty,max=128"`
	CompanyName *string    `json:"companyName" validate:"omitempty,max=128"`
	Phone       *string    `json:"phone" validate:"omitempty,phone"`
	City        *string    `json:"city" validate:"omitempty,max=128"`
	JobRole     *string    `json:"jobRole" validate:"omitempty,max=128"`
	Role        *string    `json:"role" validate:"omitempty,max=128"`
	Description *string    `json:"description" validate:"omitempty,max=4000"`
	IsUrgent    *bool      `json:"isUrgent"`
	UrgentUntil *time.Time `json:"urgentUntil"`
}

// ToChanges converts an UpdateJobRequest DTO to a domain changeset.
func (r *UpdateJobRequest) ToChanges() domain.JobChanges {
	jobRole := r.JobRole
	if jobRole == nil {
		jobRole = r.Role
	}

	return domain.JobChanges{
		Name:        r.Name,
		CompanyName: r.CompanyName,
		Phone:       r.Phone,
		City:        r.City,
		JobRole:     jobRole,
		Description: r.Description,
		IsUrgent:    r.IsUrgent,
		UrgentUntil: r.UrgentUntil,
	}
}

// DeleteJobRequest carries the email used to verify ownership of the
// listing being deleted.
type DeleteJobRequest struct {
	Email string `json:"email"`
}
