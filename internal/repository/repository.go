// Package repository puts the remote job API and the demo data behind one set of
// job operations, so the listing engine and the command line do not care which
// one they talk to.
package repository

import (
	"context"
	"encoding/json"

	"github.com/justsurfingit/job-board/internal/apiclient"
	"github.com/justsurfingit/job-board/internal/dtos"
)

// JobRepository is the capability set shared by every job source.
type JobRepository interface {
	ListJobs(ctx context.Context, filters dtos.JobFilters) (*dtos.Envelope[[]dtos.Job], error)
	GetJob(ctx context.Context, id int) (*dtos.Envelope[dtos.Job], error)
	ListCategories(ctx context.Context) (*dtos.Envelope[[]dtos.CategoryCount], error)
	CreateJob(ctx context.Context, job dtos.JobRequest) (*dtos.Envelope[dtos.Job], error)
	UpdateJob(ctx context.Context, id int, job dtos.JobRequest) (*dtos.Envelope[dtos.Job], error)
	DeleteJob(ctx context.Context, id int) (*dtos.Envelope[json.RawMessage], error)
}

var (
	_ JobRepository = (*APIRepository)(nil)
	_ JobRepository = (*MemoryRepository)(nil)
)

// APIRepository serves jobs from the remote API.
type APIRepository struct {
	Client *apiclient.Client
}

func NewAPIRepository(c *apiclient.Client) *APIRepository {
	return &APIRepository{Client: c}
}

func (r *APIRepository) ListJobs(ctx context.Context, filters dtos.JobFilters) (*dtos.Envelope[[]dtos.Job], error) {
	return r.Client.ListJobs(ctx, filters)
}

func (r *APIRepository) GetJob(ctx context.Context, id int) (*dtos.Envelope[dtos.Job], error) {
	return r.Client.GetJob(ctx, id)
}

func (r *APIRepository) ListCategories(ctx context.Context) (*dtos.Envelope[[]dtos.CategoryCount], error) {
	return r.Client.ListCategories(ctx)
}

func (r *APIRepository) CreateJob(ctx context.Context, job dtos.JobRequest) (*dtos.Envelope[dtos.Job], error) {
	return r.Client.CreateJob(ctx, job)
}

func (r *APIRepository) UpdateJob(ctx context.Context, id int, job dtos.JobRequest) (*dtos.Envelope[dtos.Job], error) {
	return r.Client.UpdateJob(ctx, id, job)
}

func (r *APIRepository) DeleteJob(ctx context.Context, id int) (*dtos.Envelope[json.RawMessage], error) {
	return r.Client.DeleteJob(ctx, id)
}
