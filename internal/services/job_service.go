package services

import (
	"context"
	"strings"

	"github.com/justsurfingit/job-board/internal/dtos"
	"github.com/justsurfingit/job-board/internal/models"
	"github.com/justsurfingit/job-board/internal/store"
)

type JobService struct {
	Store store.JobStore
}

func NewJobService(s store.JobStore) *JobService {
	return &JobService{
		Store: s,
	}
}

// List returns the page of jobs selected by filters and its pagination.
func (s *JobService) List(ctx context.Context, filters dtos.JobFilters) ([]models.Job, *dtos.Pagination, error) {
	q := JobQueryFromFilters(filters)
	jobs, total, err := s.Store.ListJobs(ctx, q)
	if err != nil {
		return nil, nil, err
	}
	return jobs, dtos.NewPagination(q.Page, q.Limit, total), nil
}

func (s *JobService) Get(ctx context.Context, id uint) (*models.Job, error) {
	return s.Store.GetJob(ctx, id)
}

func (s *JobService) Categories(ctx context.Context) ([]dtos.CategoryCount, error) {
	return s.Store.Categories(ctx)
}

func (s *JobService) Create(ctx context.Context, req *dtos.JobRequest) (*models.Job, error) {
	job := JobFromRequest(req)
	if err := s.Store.CreateJob(ctx, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

func (s *JobService) Update(ctx context.Context, id uint, req *dtos.JobRequest) (*models.Job, error) {
	job := JobFromRequest(req)
	job.ID = id
	if err := s.Store.UpdateJob(ctx, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

func (s *JobService) Delete(ctx context.Context, id uint) error {
	return s.Store.DeleteJob(ctx, id)
}

// JobFromRequest builds the stored record for a job form. Requirements are kept
// comma-joined.
func JobFromRequest(req *dtos.JobRequest) models.Job {
	reqs := make([]string, 0, len(req.Requirements))
	for _, r := range req.Requirements {
		if r = strings.TrimSpace(r); r != "" {
			reqs = append(reqs, r)
		}
	}
	return models.Job{
		Title:             strings.TrimSpace(req.Title),
		Company:           strings.TrimSpace(req.Company),
		Location:          strings.TrimSpace(req.Location),
		Type:              req.Type,
		Salary:            strings.TrimSpace(req.Salary),
		Description:       req.Description,
		Requirements:      strings.Join(reqs, ", "),
		Logo:              strings.TrimSpace(req.Logo),
		CategoryName:      strings.TrimSpace(req.Category),
		FoodAccommodation: req.FoodAccommodation,
		Gender:            req.Gender,
	}
}
