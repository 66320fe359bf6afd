package repository

import (
	"context"
	"errors"
	"time"

	"github.com/gocql/gocql"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"job-tracker/constant"
	"job-tracker/entities"
)

// ErrStorageUnavailable wraps every Cassandra communication failure. There
// are no retries and no circuit breaking; callers translate it straight to
// an HTTP status.
var ErrStorageUnavailable = errors.New("storage unavailable")

type JobRepository interface {
	InitializeSchema(ctx context.Context) error
	ListJobs(ctx context.Context) ([]entities.Job, error)
	SampleJobs(ctx context.Context, limit int) ([]entities.Job, error)
	InsertJob(ctx context.Context, job entities.Job) error
	Ping(ctx context.Context) error
	Close()
}

type repo struct {
	session *gocql.Session
}

func NewRepo(session *gocql.Session) JobRepository {
	return &repo{
		session: session,
	}
}

const (
	createJobsTable = `
		CREATE TABLE IF NOT EXISTS jobs (
			id UUID PRIMARY KEY,
			title TEXT,
			description TEXT,
			status TEXT,
			assigned_to TEXT,
			priority INT,
			created_at TIMESTAMP,
			updated_at TIMESTAMP
		)`

	selectJobs = `SELECT id, title, description, status, assigned_to, priority, created_at, updated_at FROM jobs`

	insertJob = `
		INSERT INTO jobs (id, title, description, status, assigned_to, priority, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
)

var seedJobs = []entities.Job{
	{Title: "Database Migration", Description: "Migrate database to latest version", Status: constant.JobStatusPending.String(), Priority: 1},
	{Title: "API Development", Description: "Develop REST API endpoints", Status: constant.JobStatusInProgress.String(), Priority: 2},
	{Title: "Testing Suite", Description: "Create comprehensive test suite", Status: constant.JobStatusPending.String(), Priority: 3},
	{Title: "Documentation", Description: "Write technical documentation", Status: constant.JobStatusPending.String(), Priority: 4},
	{Title: "Performance Optimization", Description: "Optimize application performance", Status: constant.JobStatusPending.String(), Priority: 5},
}

// InitializeSchema creates the jobs table and seeds it with sample rows the
// first time it is observed empty. Both steps are safe to run from several
// replicas starting at once: the DDL is IF NOT EXISTS and re-seeding is
// skipped whenever any row already exists.
func (r *repo) InitializeSchema(ctx context.Context) error {
	if err := r.session.Query(createJobsTable).WithContext(ctx).Exec(); err != nil {
		return errors.Join(ErrStorageUnavailable, err)
	}

	return EnsureSeedJobs(ctx, r)
}

// EnsureSeedJobs inserts the fixed sample rows the first time the store is
// observed empty. Calling it again is a no-op: any existing row skips the
// seed.
func EnsureSeedJobs(ctx context.Context, store JobRepository) error {
	existing, err := store.SampleJobs(ctx, 1)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	now := time.Now().UTC()
	for _, job := range seedJobs {
		job.ID = uuid.NewString()
		job.AssignedTo = constant.DefaultAssignee
		job.CreatedAt = now
		job.UpdatedAt = now
		if err := store.InsertJob(ctx, job); err != nil {
			return err
		}
	}

	zerolog.Ctx(ctx).Info().Int("jobs", len(seedJobs)).Msg("seeded sample jobs")
	return nil
}

func (r *repo) ListJobs(ctx context.Context) ([]entities.Job, error) {
	return r.scanJobs(r.session.Query(selectJobs).WithContext(ctx))
}

// SampleJobs returns up to limit rows in the storage engine's default scan
// order. The caller picks among them; this is not a uniform sample of the
// whole table.
func (r *repo) SampleJobs(ctx context.Context, limit int) ([]entities.Job, error) {
	return r.scanJobs(r.session.Query(selectJobs+` LIMIT ?`, limit).WithContext(ctx))
}

func (r *repo) scanJobs(q *gocql.Query) ([]entities.Job, error) {
	iter := q.Iter()

	jobs := []entities.Job{}
	var job entities.Job
	for iter.Scan(&job.ID, &job.Title, &job.Description, &job.Status,
		&job.AssignedTo, &job.Priority, &job.CreatedAt, &job.UpdatedAt) {
		jobs = append(jobs, job)
	}
	if err := iter.Close(); err != nil {
		return nil, errors.Join(ErrStorageUnavailable, err)
	}

	return jobs, nil
}

func (r *repo) InsertJob(ctx context.Context, job entities.Job) error {
	err := r.session.Query(insertJob,
		job.ID, job.Title, job.Description, job.Status,
		job.AssignedTo, job.Priority, job.CreatedAt, job.UpdatedAt,
	).WithContext(ctx).Exec()
	if err != nil {
		return errors.Join(ErrStorageUnavailable, err)
	}
	return nil
}

// Ping is a single-row probe used by the health endpoint.
func (r *repo) Ping(ctx context.Context) error {
	iter := r.session.Query(`SELECT id FROM jobs LIMIT 1`).WithContext(ctx).Iter()
	var id string
	for iter.Scan(&id) {
	}
	if err := iter.Close(); err != nil {
		return errors.Join(ErrStorageUnavailable, err)
	}
	return nil
}

func (r *repo) Close() {
	r.session.Close()
}
