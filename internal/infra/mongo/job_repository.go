package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	mongod "go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"jobboard/internal/domain"
)

const colJobs = "jobs"

// JobRepository is the MongoDB implementation of domain.JobRepository.
// Per-document atomicity comes from the server; no client-side locking.
type JobRepository struct {
	col    *mongod.Collection
	logger *slog.Logger
}

var _ domain.JobRepository = (*JobRepository)(nil)

// NewJobRepository creates a repository over the jobs collection of db.
// The caller owns the client lifecycle; the repository never disconnects it.
func NewJobRepository(db *mongod.Database, logger *slog.Logger) *JobRepository {
	return &JobRepository{
		col:    db.Collection(colJobs),
		logger: logger.With("component", "mongo-job-repository"),
	}
}

// Migrate creates the indexes the query patterns rely on: newest-first
// pagination with identifier tie-break, and a TTL index so the server
// purges listings past expires_at on its own.
func (r *JobRepository) Migrate(ctx context.Context) error {
	indexes := []mongod.IndexModel{
		{Keys: bson.D{
			{Key: "created_at", Value: -1},
			{Key: "_id", Value: 1},
		}},
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		},
	}

	if _, err := r.col.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("mongo: migrate jobs indexes: %w", err)
	}
	r.logger.Info("jobs collection indexes ensured")
	return nil
}

func (r *JobRepository) Insert(ctx context.Context, job *domain.Job) error {
	m := toJobModel(job)
	m.ID = bson.NewObjectID()

	if _, err := r.col.InsertOne(ctx, m); err != nil {
		return fmt.Errorf("mongo: insert job: %w", err)
	}
	job.ID = m.ID.Hex()
	return nil
}

func (r *JobRepository) FindPage(ctx context.Context, q domain.ListQuery, now time.Time) ([]*domain.Job, int64, error) {
	filter := pageFilter(q, now)

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("mongo: count jobs: %w", err)
	}

	findOpts := options.Find().
		SetSort(bson.D{
			{Key: "created_at", Value: -1},
			{Key: "_id", Value: 1},
		}).
		SetSkip(int64(q.Offset())).
		SetLimit(int64(q.Limit))

	cursor, err := r.col.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, 0, fmt.Errorf("mongo: find jobs: %w", err)
	}
	defer cursor.Close(ctx)

	jobs := make([]*domain.Job, 0, q.Limit)
	for cursor.Next(ctx) {
		var m jobModel
		if err := cursor.Decode(&m); err != nil {
			return nil, 0, fmt.Errorf("mongo: decode job: %w", err)
		}
		jobs = append(jobs, fromJobModel(&m))
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("mongo: iterate jobs: %w", err)
	}
	return jobs, total, nil
}

func (r *JobRepository) FindByID(ctx context.Context, id string) (*domain.Job, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrJobNotFound
	}

	var m jobModel
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&m); err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("mongo: get job: %w", err)
	}
	return fromJobModel(&m), nil
}

func (r *JobRepository) Update(ctx context.Context, id string, changes domain.JobChanges) (*domain.Job, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrJobNotFound
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if changes.Name != nil {
		set["name"] = *changes.Name
	}
	if changes.CompanyName != nil {
		set["company_name"] = *changes.CompanyName
	}
	if changes.Phone != nil {
		set["phone"] = *changes.Phone
	}
	if changes.City != nil {
		set["city"] = *changes.City
	}
	if changes.JobRole != nil {
		set["job_role"] = *changes.JobRole
	}
	if changes.Description != nil {
		set["description"] = *changes.Description
	}
	if changes.IsUrgent != nil {
		set["is_urgent"] = *changes.IsUrgent
	}
	if changes.UrgentUntil != nil {
		set["urgent_until"] = *changes.UrgentUntil
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var m jobModel
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&m)
	if err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("mongo: update job: %w", err)
	}
	return fromJobModel(&m), nil
}

func (r *JobRepository) Delete(ctx context.Context, id string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrJobNotFound
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("mongo: delete job: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}

func (r *JobRepository) IncrementViews(ctx context.Context, id string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrJobNotFound
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$inc": bson.M{"view_count": 1}})
	if err != nil {
		return fmt.Errorf("mongo: increment views: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}

// DeleteExpired purges listings at or past their expiry. The TTL index does
// the same server-side with ~minute granularity; this keeps the sweep
// schedule authoritative and the behavior identical across backends.
func (r *JobRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.M{"expires_at": bson.M{"$lte": now}})
	if err != nil {
		return 0, fmt.Errorf("mongo: delete expired jobs: %w", err)
	}
	return res.DeletedCount, nil
}

// pageFilter translates a list query into a Mongo filter: never-expired
// records plus, for a non-empty term, a case-insensitive literal substring
// match across the searchable fields. QuoteMeta keeps metacharacter input
// from ever being interpreted as a pattern.
func pageFilter(q domain.ListQuery, now time.Time) bson.M {
	notExpired := bson.M{"$or": []bson.M{
		{"expires_at": bson.M{"$gt": now}},
		{"expires_at": nil},
	}}

	if q.Term == "" {
		return notExpired
	}

	pattern := regexp.QuoteMeta(q.Term)
	term := bson.M{"$or": []bson.M{
		{"job_role": bson.M{"$regex": pattern, "$options": "i"}},
		{"city": bson.M{"$regex": pattern, "$options": "i"}},
		{"company_name": bson.M{"$regex": pattern, "$options": "i"}},
		{"name": bson.M{"$regex": pattern, "$options": "i"}},
		{"description": bson.M{"$regex": pattern, "$options": "i"}},
	}}

	return bson.M{"$and": []bson.M{notExpired, term}}
}

// isNoDocuments returns true when err indicates no matching document.
func isNoDocuments(err error) bool {
	return errors.Is(err, mongod.ErrNoDocuments)
}
