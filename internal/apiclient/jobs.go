package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/justsurfingit/job-board/internal/dtos"
	"github.com/justsurfingit/job-board/internal/transform"
)

// ListJobs fetches jobs matching filters and transforms each for display.
func (c *Client) ListJobs(ctx context.Context, filters dtos.JobFilters) (*dtos.Envelope[[]dtos.Job], error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/jobs", filters.Query(), nil, "", withAuth)
	if err != nil {
		return nil, err
	}
	env, err := do[[]dtos.RawJob](c, req)
	if err != nil {
		return nil, err
	}
	jobs := []dtos.Job{}
	if env.Success {
		jobs = transform.Jobs(env.Data, c.now())
	}
	return withData(env, jobs), nil
}

// GetJob fetches one job by id.
func (c *Client) GetJob(ctx context.Context, id int) (*dtos.Envelope[dtos.Job], error) {
	req, err := c.newRequest(ctx, http.MethodGet, jobPath(id), nil, nil, "", withAuth)
	if err != nil {
		return nil, err
	}
	return c.doJob(req)
}

// ListCategories fetches the job categories with their job counts.
func (c *Client) ListCategories(ctx context.Context) (*dtos.Envelope[[]dtos.CategoryCount], error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/jobs/categories", nil, nil, "", withAuth)
	if err != nil {
		return nil, err
	}
	return do[[]dtos.CategoryCount](c, req)
}

// CreateJob posts a new job. Requires an admin session.
func (c *Client) CreateJob(ctx context.Context, job dtos.JobRequest) (*dtos.Envelope[dtos.Job], error) {
	req, err := c.jsonRequest(ctx, http.MethodPost, "/jobs", job, withAuth)
	if err != nil {
		return nil, err
	}
	return c.doJob(req)
}

// UpdateJob replaces the job with the given id. Requires an admin session.
func (c *Client) UpdateJob(ctx context.Context, id int, job dtos.JobRequest) (*dtos.Envelope[dtos.Job], error) {
	req, err := c.jsonRequest(ctx, http.MethodPut, jobPath(id), job, withAuth)
	if err != nil {
		return nil, err
	}
	return c.doJob(req)
}

// DeleteJob removes the job with the given id. Requires an admin session.
func (c *Client) DeleteJob(ctx context.Context, id int) (*dtos.Envelope[json.RawMessage], error) {
	req, err := c.newRequest(ctx, http.MethodDelete, jobPath(id), nil, nil, "", withAuth)
	if err != nil {
		return nil, err
	}
	return do[json.RawMessage](c, req)
}

// doJob decodes a single-job reply and transforms the job when one was sent.
func (c *Client) doJob(req *http.Request) (*dtos.Envelope[dtos.Job], error) {
	env, err := do[*dtos.RawJob](c, req)
	if err != nil {
		return nil, err
	}
	var job dtos.Job
	if env.Success && env.Data != nil {
		job = transform.Job(*env.Data, c.now())
	}
	return withData(env, job), nil
}

func jobPath(id int) string {
	return fmt.Sprintf("/jobs/%d", id)
}
