package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/job-board/internal/dtos"
	"github.com/justsurfingit/job-board/internal/services"
)

type JobHandler struct {
	JobService *services.JobService
}

// NewJobHandler creates the handler with dependencies
func NewJobHandler(j *services.JobService) *JobHandler {
	return &JobHandler{JobService: j}
}

// ListJobs is the GET /jobs endpoint
func (h *JobHandler) ListJobs(c *gin.Context) {
	var filters dtos.JobFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		badRequest(c, "Invalid query parameters", err)
		return
	}
	jobs, pg, err := h.JobService.List(c.Request.Context(), filters)
	if err != nil {
		respondError(c, err, "Jobs not found", "Failed to fetch jobs")
		return
	}
	c.JSON(http.StatusOK, dtos.Page("Jobs retrieved successfully", jobs, pg.Page, pg.Limit, pg.Total))
}

// GetJob is the GET /jobs/:id endpoint
func (h *JobHandler) GetJob(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	job, err := h.JobService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Job not found", "Failed to fetch job")
		return
	}
	c.JSON(http.StatusOK, dtos.OK("Job retrieved successfully", job))
}

// ListCategories is the GET /jobs/categories endpoint
func (h *JobHandler) ListCategories(c *gin.Context) {
	cats, err := h.JobService.Categories(c.Request.Context())
	if err != nil {
		respondError(c, err, "Categories not found", "Failed to fetch categories")
		return
	}
	c.JSON(http.StatusOK, dtos.OK("Categories retrieved successfully", cats))
}

// CreateJob is the POST /jobs endpoint
func (h *JobHandler) CreateJob(c *gin.Context) {
	var req dtos.JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid job data", err)
		return
	}
	job, err := h.JobService.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Job not found", "Failed to create job")
		return
	}
	c.JSON(http.StatusCreated, dtos.OK("Job created successfully", job))
}

// UpdateJob is the PUT /jobs/:id endpoint
func (h *JobHandler) UpdateJob(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dtos.JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid job data", err)
		return
	}
	job, err := h.JobService.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err, "Job not found", "Failed to update job")
		return
	}
	c.JSON(http.StatusOK, dtos.OK("Job updated successfully", job))
}

// DeleteJob is the DELETE /jobs/:id endpoint
func (h *JobHandler) DeleteJob(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.JobService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "Job not found", "Failed to delete job")
		return
	}
	c.JSON(http.StatusOK, dtos.OK[any]("Job deleted successfully", nil))
}
