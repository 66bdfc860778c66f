package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/justsurfingit/job-board/internal/dtos"
	"github.com/justsurfingit/job-board/internal/models"
	"github.com/justsurfingit/job-board/internal/store"
)

// MaxUploadSize bounds a whole application request.
const MaxUploadSize = 10 << 20

var (
	ErrUnsupportedFile = errors.New("unsupported file type")
	ErrMissingResume   = errors.New("resume is required")
)

// ApplicationSubmission is an application as received from the multipart form.
type ApplicationSubmission struct {
	JobID          uint
	ApplicantName  string
	ApplicantEmail string
	ApplicantPhone string
	CoverLetter    string
	Resume         *multipart.FileHeader
	PaymentFile    *multipart.FileHeader
}

type ApplicationService struct {
	Store     store.Store
	UploadDir string
	sanitizer *Sanitizer
}

func NewApplicationService(s store.Store, uploadDir string) *ApplicationService {
	return &ApplicationService{
		Store:     s,
		UploadDir: uploadDir,
		sanitizer: NewSanitizer(),
	}
}

// Submit stores the attachments under random names and records the application as pending.
func (s *ApplicationService) Submit(ctx context.Context, sub ApplicationSubmission) (*models.Application, error) {
	if sub.Resume == nil {
		return nil, ErrMissingResume
	}
	if !dtos.HasExtension(sub.Resume.Filename, dtos.ResumeExtensions) {
		return nil, fmt.Errorf("%w: resume must be one of %s", ErrUnsupportedFile, strings.Join(dtos.ResumeExtensions, ", "))
	}
	if sub.PaymentFile != nil && !dtos.HasExtension(sub.PaymentFile.Filename, dtos.ReceiptExtensions) {
		return nil, fmt.Errorf("%w: payment receipt must be an image or a pdf", ErrUnsupportedFile)
	}

	job, err := s.Store.GetJob(ctx, sub.JobID)
	if err != nil {
		return nil, err
	}

	resumePath, err := s.save(sub.Resume)
	if err != nil {
		return nil, err
	}
	app := &models.Application{
		JobID:          job.ID,
		JobTitle:       job.Title,
		ApplicantName:  s.sanitizer.Clean(sub.ApplicantName),
		ApplicantEmail: strings.TrimSpace(sub.ApplicantEmail),
		ApplicantPhone: s.sanitizer.Clean(sub.ApplicantPhone),
		CoverLetter:    s.sanitizer.Clean(sub.CoverLetter),
		ResumePath:     resumePath,
		Status:         models.ApplicationStatusPending,
	}
	if sub.PaymentFile != nil {
		if app.PaymentFilePath, err = s.save(sub.PaymentFile); err != nil {
			s.discard(resumePath)
			return nil, err
		}
	}
	if err := s.Store.CreateApplication(ctx, app); err != nil {
		s.discard(app.ResumePath, app.PaymentFilePath)
		return nil, err
	}
	return app, nil
}

// discard removes uploads of an application that was not recorded.
func (s *ApplicationService) discard(paths ...string) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Warn().Err(err).Str("file", p).Msg("failed to remove upload")
		}
	}
}

func (s *ApplicationService) List(ctx context.Context, filters dtos.ApplicationFilters) ([]models.Application, *dtos.Pagination, error) {
	page, limit := PageBounds(filters.Page, filters.Limit)
	apps, total, err := s.Store.ListApplications(ctx, filterValue(filters.Status), page, limit)
	if err != nil {
		return nil, nil, err
	}
	return apps, dtos.NewPagination(page, limit, total), nil
}

func (s *ApplicationService) UpdateStatus(ctx context.Context, id uint, status string) (*models.Application, error) {
	if !models.IsApplicationStatus(status) {
		return nil, fmt.Errorf("unknown status %q", status)
	}
	return s.Store.UpdateApplicationStatus(ctx, id, status)
}

// save copies an upload into UploadDir under a uuid name that keeps the extension.
func (s *ApplicationService) save(fh *multipart.FileHeader) (string, error) {
	if err := os.MkdirAll(s.UploadDir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload %s: %w", fh.Filename, err)
	}
	defer src.Close()

	name := uuid.NewString() + strings.ToLower(filepath.Ext(fh.Filename))
	path := filepath.Join(s.UploadDir, name)
	dst, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o640)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}

	_, err = io.Copy(dst, src)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		s.discard(path)
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	log.Debug().Str("file", name).Int64("size", fh.Size).Msg("upload stored")
	return path, nil
}
