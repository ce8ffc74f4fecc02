package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"jobboard/internal/domain"
)

// jobModel is the persisted shape of a listing in the jobs collection.
type jobModel struct {
	ID          bson.ObjectID `bson:"_id,omitempty"`
	Name        string        `bson:"name"`
	CompanyName string        `bson:"company_name"`
	Phone       string        `bson:"phone"`
	Email       string        `bson:"email"`
	City        string        `bson:"city"`
	JobRole     string        `bson:"job_role"`
	Description string        `bson:"description"`
	ViewCount   int64         `bson:"view_count"`
	IsUrgent    bool          `bson:"is_urgent"`
	UrgentUntil *time.Time    `bson:"urgent_until,omitempty"`
	CreatedAt   time.Time     `bson:"created_at"`
	UpdatedAt   time.Time     `bson:"updated_at"`
	ExpiresAt   *time.Time    `bson:"expires_at,omitempty"`
}

func toJobModel(j *domain.Job) *jobModel {
	return &jobModel{
		Name:        j.Name,
		CompanyName: j.CompanyName,
		Phone:       j.Phone,
		Email:       j.Email,
		City:        j.City,
		JobRole:     j.JobRole,
		Description: j.Description,
		ViewCount:   j.ViewCount,
		IsUrgent:    j.IsUrgent,
		UrgentUntil: j.UrgentUntil,
		CreatedAt:   j.CreatedAt,
		UpdatedAt:   j.UpdatedAt,
		ExpiresAt:   j.ExpiresAt,
	}
}

func fromJobModel(m *jobModel) *domain.Job {
	return &domain.Job{
		ID:          m.ID.Hex(),
		Name:        m.Name,
		CompanyName: m.CompanyName,
		Phone:       m.Phone,
		Email:       m.Email,
		City:        m.City,
		JobRole:     m.JobRole,
		Description: m.Description,
		ViewCount:   m.ViewCount,
		IsUrgent:    m.IsUrgent,
		UrgentUntil: m.UrgentUntil,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		ExpiresAt:   m.ExpiresAt,
	}
}
