package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/justsurfingit/job-board/internal/dtos"
	"github.com/justsurfingit/job-board/internal/models"
)

// Multipart field names of an application submission.
const (
	FieldJobID          = "job_id"
	FieldApplicantName  = "applicant_name"
	FieldApplicantEmail = "applicant_email"
	FieldApplicantPhone = "applicant_phone"
	FieldCoverLetter    = "cover_letter"
	FieldResume         = "resume"
	FieldPaymentFile    = "payment_file"
)

// BuildApplicationForm encodes form as a multipart body. It returns the body and the
// content type, which carries the generated boundary.
func BuildApplicationForm(form dtos.ApplicationForm) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	fields := []struct{ name, value string }{
		{FieldJobID, strconv.Itoa(form.JobID)},
		{FieldApplicantName, form.ApplicantName},
		{FieldApplicantEmail, form.ApplicantEmail},
		{FieldApplicantPhone, form.ApplicantPhone},
		{FieldCoverLetter, form.CoverLetter},
	}
	for _, f := range fields {
		if err := writer.WriteField(f.name, f.value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", f.name, err)
		}
	}
	if err := writeFile(writer, FieldResume, form.Resume); err != nil {
		return nil, "", err
	}
	if form.PaymentFile != nil {
		if err := writeFile(writer, FieldPaymentFile, form.PaymentFile); err != nil {
			return nil, "", err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}
	return body, writer.FormDataContentType(), nil
}

func writeFile(writer *multipart.Writer, field string, a *dtos.Attachment) error {
	if a == nil {
		return nil
	}
	part, err := writer.CreateFormFile(field, a.Name)
	if err != nil {
		return fmt.Errorf("create form file %s: %w", field, err)
	}
	if a.Content == nil {
		return nil
	}
	if _, err := io.Copy(part, a.Content); err != nil {
		return fmt.Errorf("copy %s: %w", a.Name, err)
	}
	return nil
}

// SubmitApplication validates form and posts it as multipart data. A session token is
// attached when one is held but is not required.
func (c *Client) SubmitApplication(ctx context.Context, form dtos.ApplicationForm) (*dtos.Envelope[models.Application], error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}
	body, contentType, err := BuildApplicationForm(form)
	if err != nil {
		return nil, err
	}
	req, err := c.newRequest(ctx, http.MethodPost, "/applications", nil, body, contentType, withAuth)
	if err != nil {
		return nil, err
	}
	return do[models.Application](c, req)
}

// ListApplications lists submitted applications. Requires an admin session.
func (c *Client) ListApplications(ctx context.Context, filters dtos.ApplicationFilters) (*dtos.Envelope[[]models.Application], error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/applications", filters.Query(), nil, "", withAuth)
	if err != nil {
		return nil, err
	}
	env, err := do[json.RawMessage](c, req)
	if err != nil {
		return nil, err
	}
	apps, err := decodeList[models.Application](env.Data, "applications")
	if err != nil {
		return nil, err
	}
	return withData(env, apps), nil
}

// UpdateApplicationStatus moves an application to status. Requires an admin session.
func (c *Client) UpdateApplicationStatus(ctx context.Context, id int, status string) (*dtos.Envelope[models.Application], error) {
	payload := dtos.StatusUpdateRequest{Status: status}
	if err := dtos.Validate(payload); err != nil {
		return nil, err
	}
	req, err := c.jsonRequest(ctx, http.MethodPut, fmt.Sprintf("/applications/%d/status", id), payload, withAuth)
	if err != nil {
		return nil, err
	}
	return do[models.Application](c, req)
}
