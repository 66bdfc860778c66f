package repository

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/justsurfingit/job-board/internal/apiclient"
	"github.com/justsurfingit/job-board/internal/dtos"
	"github.com/justsurfingit/job-board/internal/models"
	"github.com/justsurfingit/job-board/internal/services"
	"github.com/justsurfingit/job-board/internal/store"
	"github.com/justsurfingit/job-board/internal/transform"
)

// MemoryRepository serves jobs from a local store, answering exactly as the API
// would: replies are envelopes, jobs come out transformed and failures are
// *apiclient.APIError values.
type MemoryRepository struct {
	jobs *services.JobService
	now  func() time.Time
}

// NewMemoryRepository wraps st. A nil now means time.Now.
func NewMemoryRepository(st store.JobStore, now func() time.Time) *MemoryRepository {
	if now == nil {
		now = time.Now
	}
	return &MemoryRepository{jobs: services.NewJobService(st), now: now}
}

// NewDemoRepository is a MemoryRepository over the demo jobs.
func NewDemoRepository() *MemoryRepository {
	return NewMemoryRepository(store.NewDemoMemory(time.Now()), nil)
}

func (r *MemoryRepository) ListJobs(ctx context.Context, filters dtos.JobFilters) (*dtos.Envelope[[]dtos.Job], error) {
	jobs, pg, err := r.jobs.List(ctx, filters)
	if err != nil {
		return nil, failure(err, "Jobs not found", "Failed to fetch jobs")
	}
	display := make([]dtos.Job, 0, len(jobs))
	for _, j := range jobs {
		display = append(display, r.display(j))
	}
	env := dtos.Page("Jobs retrieved successfully", display, pg.Page, pg.Limit, pg.Total)
	return &env, nil
}

func (r *MemoryRepository) GetJob(ctx context.Context, id int) (*dtos.Envelope[dtos.Job], error) {
	job, err := r.jobs.Get(ctx, uint(id))
	if err != nil {
		return nil, failure(err, "Job not found", "Failed to fetch job")
	}
	env := dtos.OK("Job retrieved successfully", r.display(*job))
	return &env, nil
}

func (r *MemoryRepository) ListCategories(ctx context.Context) (*dtos.Envelope[[]dtos.CategoryCount], error) {
	cats, err := r.jobs.Categories(ctx)
	if err != nil {
		return nil, failure(err, "Categories not found", "Failed to fetch categories")
	}
	env := dtos.OK("Categories retrieved successfully", cats)
	return &env, nil
}

func (r *MemoryRepository) CreateJob(ctx context.Context, req dtos.JobRequest) (*dtos.Envelope[dtos.Job], error) {
	if err := dtos.Validate(req); err != nil {
		return nil, invalidJob(err)
	}
	job, err := r.jobs.Create(ctx, &req)
	if err != nil {
		return nil, failure(err, "Job not found", "Failed to create job")
	}
	env := dtos.OK("Job created successfully", r.display(*job))
	return &env, nil
}

func (r *MemoryRepository) UpdateJob(ctx context.Context, id int, req dtos.JobRequest) (*dtos.Envelope[dtos.Job], error) {
	if err := dtos.Validate(req); err != nil {
		return nil, invalidJob(err)
	}
	job, err := r.jobs.Update(ctx, uint(id), &req)
	if err != nil {
		return nil, failure(err, "Job not found", "Failed to update job")
	}
	env := dtos.OK("Job updated successfully", r.display(*job))
	return &env, nil
}

func (r *MemoryRepository) DeleteJob(ctx context.Context, id int) (*dtos.Envelope[json.RawMessage], error) {
	if err := r.jobs.Delete(ctx, uint(id)); err != nil {
		return nil, failure(err, "Job not found", "Failed to delete job")
	}
	return &dtos.Envelope[json.RawMessage]{Success: true, Message: "Job deleted successfully"}, nil
}

func (r *MemoryRepository) display(j models.Job) dtos.Job {
	return transform.Job(transform.FromModel(j), r.now())
}

func failure(err error, notFound, msg string) error {
	if errors.Is(err, store.ErrNotFound) {
		return &apiclient.APIError{StatusCode: http.StatusNotFound, Message: notFound, Detail: err.Error()}
	}
	log.Error().Err(err).Msg(msg)
	return &apiclient.APIError{StatusCode: http.StatusInternalServerError, Message: msg, Detail: err.Error()}
}

func invalidJob(err error) error {
	return &apiclient.APIError{StatusCode: http.StatusBadRequest, Message: "Invalid job data", Detail: err.Error()}
}
