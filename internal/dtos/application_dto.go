package dtos

import (
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strings"
)

// Accepted upload extensions.
var (
	ResumeExtensions  = []string{".pdf", ".doc", ".docx"}
	ReceiptExtensions = []string{".pdf", ".png", ".jpg", ".jpeg", ".gif", ".webp"}
)

// Attachment is a file sent with an application.
type Attachment struct {
	Name    string `binding:"required"`
	Content io.Reader
	Size    int64
}

// ApplicationForm is the multipart application submission.
type ApplicationForm struct {
	JobID          int    `binding:"required,gt=0"`
	ApplicantName  string `binding:"required"`
	ApplicantEmail string `binding:"required,email"`
	ApplicantPhone string `binding:"required"`
	CoverLetter    string
	Resume         *Attachment `binding:"required"`
	PaymentFile    *Attachment
}

// Validate checks required fields and attachment extensions.
func (f ApplicationForm) Validate() error {
	if err := Validate(f); err != nil {
		return err
	}
	if !HasExtension(f.Resume.Name, ResumeExtensions) {
		return &ValidationError{Problems: []string{fmt.Sprintf("resume must be one of %s", strings.Join(ResumeExtensions, ", "))}}
	}
	if f.PaymentFile != nil && !HasExtension(f.PaymentFile.Name, ReceiptExtensions) {
		return &ValidationError{Problems: []string{"payment receipt must be an image or a pdf"}}
	}
	return nil
}

// HasExtension reports whether name ends in one of exts, ignoring case.
func HasExtension(name string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

type StatusUpdateRequest struct {
	Status string `json:"status" binding:"required,oneof=pending reviewed shortlisted rejected"`
}

type ApplicationFilters struct {
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
	Status string `form:"status"`
}

func (f ApplicationFilters) Query() url.Values {
	q := url.Values{}
	setInt(q, "page", f.Page)
	setInt(q, "limit", f.Limit)
	setString(q, "status", f.Status)
	return q
}
