package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"job-tracker/constant"
	"job-tracker/dto"
	"job-tracker/entities"
	"job-tracker/repository"
)

// ErrValidation marks rejected input; handlers map it to a 400.
var ErrValidation = errors.New("validation failed")

// sampleSize bounds the rows PickOne draws from. The pick is uniform only
// within that sample, not over the whole table.
const sampleSize = 5

type JobService interface {
	PickOne(ctx context.Context) (*entities.Job, error)
	ListJobs(ctx context.Context) ([]entities.Job, error)
	CreateJob(ctx context.Context, req dto.CreateJobRequest) (entities.Job, error)
	Ping(ctx context.Context) error
}

type jobService struct {
	repo repository.JobRepository
}

func NewJobService(repo repository.JobRepository) JobService {
	return &jobService{
		repo: repo,
	}
}

// PickOne returns one job from a bounded sample, or nil when the table is
// empty. An empty table is not an error.
func (s *jobService) PickOne(ctx context.Context) (*entities.Job, error) {
	sample, err := s.repo.SampleJobs(ctx, sampleSize)
	if err != nil {
		return nil, err
	}
	if len(sample) == 0 {
		return nil, nil
	}
	return &sample[rand.IntN(len(sample))], nil
}

func (s *jobService) ListJobs(ctx context.Context) ([]entities.Job, error) {
	return s.repo.ListJobs(ctx)
}

func (s *jobService) CreateJob(ctx context.Context, req dto.CreateJobRequest) (entities.Job, error) {
	if req.Title == "" || req.Description == "" {
		return entities.Job{}, fmt.Errorf("%w: title and description are required", ErrValidation)
	}

	status := req.Status
	if status == "" {
		status = constant.JobStatusPending.String()
	}
	assignedTo := req.AssignedTo
	if assignedTo == "" {
		assignedTo = constant.DefaultAssignee
	}
	priority := req.Priority
	if priority == 0 {
		priority = constant.DefaultPriority
	}

	now := time.Now().UTC()
	job := entities.Job{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		AssignedTo:  assignedTo,
		Priority:    priority,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.InsertJob(ctx, job); err != nil {
		return entities.Job{}, err
	}

	return job, nil
}

func (s *jobService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}
