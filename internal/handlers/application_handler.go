package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/job-board/internal/dtos"
	"github.com/justsurfingit/job-board/internal/services"
)

// applicationForm is the multipart body of POST /applications.
type applicationForm struct {
	JobID          uint                  `form:"job_id" binding:"required,gt=0"`
	ApplicantName  string                `form:"applicant_name" binding:"required"`
	ApplicantEmail string                `form:"applicant_email" binding:"required,email"`
	ApplicantPhone string                `form:"applicant_phone" binding:"required"`
	CoverLetter    string                `form:"cover_letter"`
	Resume         *multipart.FileHeader `form:"resume" binding:"required"`
	PaymentFile    *multipart.FileHeader `form:"payment_file"`
}

type ApplicationHandler struct {
	ApplicationService *services.ApplicationService
}

func NewApplicationHandler(s *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{ApplicationService: s}
}

// SubmitApplication is the POST /applications endpoint
func (h *ApplicationHandler) SubmitApplication(c *gin.Context) {
	var form applicationForm
	if err := c.ShouldBind(&form); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, dtos.Fail("File too large", err.Error()))
			return
		}
		badRequest(c, "Invalid application data", err)
		return
	}

	app, err := h.ApplicationService.Submit(c.Request.Context(), services.ApplicationSubmission{
		JobID:          form.JobID,
		ApplicantName:  form.ApplicantName,
		ApplicantEmail: form.ApplicantEmail,
		ApplicantPhone: form.ApplicantPhone,
		CoverLetter:    form.CoverLetter,
		Resume:         form.Resume,
		PaymentFile:    form.PaymentFile,
	})
	switch {
	case errors.Is(err, services.ErrUnsupportedFile):
		c.JSON(http.StatusUnsupportedMediaType, dtos.Fail("Unsupported file type", err.Error()))
		return
	case errors.Is(err, services.ErrMissingResume):
		badRequest(c, "Resume is required", err)
		return
	case err != nil:
		respondError(c, err, "Job not found", "Failed to submit application")
		return
	}
	c.JSON(http.StatusCreated, dtos.OK("Application submitted successfully", app))
}

// ListApplications is the GET /applications endpoint
func (h *ApplicationHandler) ListApplications(c *gin.Context) {
	var filters dtos.ApplicationFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		badRequest(c, "Invalid query parameters", err)
		return
	}
	apps, pg, err := h.ApplicationService.List(c.Request.Context(), filters)
	if err != nil {
		respondError(c, err, "Applications not found", "Failed to fetch applications")
		return
	}
	c.JSON(http.StatusOK, dtos.Page("Applications retrieved successfully",
		gin.H{"applications": apps}, pg.Page, pg.Limit, pg.Total))
}

// UpdateApplicationStatus is the PUT /applications/:id/status endpoint
func (h *ApplicationHandler) UpdateApplicationStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dtos.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid status", err)
		return
	}
	app, err := h.ApplicationService.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondError(c, err, "Application not found", "Failed to update application status")
		return
	}
	c.JSON(http.StatusOK, dtos.OK("Application status updated", app))
}
