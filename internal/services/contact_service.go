package services

import (
	"context"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/justsurfingit/job-board/internal/dtos"
	"github.com/justsurfingit/job-board/internal/models"
	"github.com/justsurfingit/job-board/internal/store"
)

// Sanitizer strips every tag from user supplied text. The result is plain text, so
// entities the policy escapes are decoded again.
type Sanitizer struct {
	policy *bluemonday.Policy
}

func NewSanitizer() *Sanitizer {
	return &Sanitizer{policy: bluemonday.StrictPolicy()}
}

func (s *Sanitizer) Clean(input string) string {
	return strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(input)))
}

type ContactService struct {
	Store     store.MessageStore
	sanitizer *Sanitizer
}

func NewContactService(s store.MessageStore) *ContactService {
	return &ContactService{Store: s, sanitizer: NewSanitizer()}
}

func (s *ContactService) Submit(ctx context.Context, req *dtos.ContactRequest) (*models.ContactMessage, error) {
	msg := &models.ContactMessage{
		Name:    s.sanitizer.Clean(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Phone:   s.sanitizer.Clean(req.Phone),
		Subject: s.sanitizer.Clean(req.Subject),
		Message: s.sanitizer.Clean(req.Message),
	}
	if err := s.Store.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func (s *ContactService) List(ctx context.Context, filters dtos.MessageFilters) ([]models.ContactMessage, *dtos.Pagination, error) {
	page, limit := PageBounds(filters.Page, filters.Limit)
	msgs, total, err := s.Store.ListMessages(ctx, filters.Unread, page, limit)
	if err != nil {
		return nil, nil, err
	}
	return msgs, dtos.NewPagination(page, limit, total), nil
}

func (s *ContactService) MarkRead(ctx context.Context, id uint) (*models.ContactMessage, error) {
	return s.Store.MarkMessageRead(ctx, id)
}
