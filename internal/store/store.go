// Package store defines the backend's persistence interfaces and an in-memory implementation.
package store

import (
	"context"
	"errors"
	"strings"

	"github.com/justsurfingit/job-board/internal/dtos"
	"github.com/justsurfingit/job-board/internal/models"
)

// ErrNotFound is returned when a record with the requested id does not exist.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when a unique key is already taken.
var ErrDuplicate = errors.New("record already exists")

// JobQuery selects a page of jobs. Empty strings match everything.
type JobQuery struct {
	Search   string
	Type     string
	Location string
	Category string
	Page     int
	Limit    int
}

// Offset is the number of records skipped before the page starts.
func (q JobQuery) Offset() int {
	if q.Page < 1 || q.Limit < 1 {
		return 0
	}
	return (q.Page - 1) * q.Limit
}

// Matches reports whether job satisfies every filter of q. Search is a
// case-insensitive substring of title, company or description; the other
// filters compare whole values ignoring case.
func (q JobQuery) Matches(job models.Job) bool {
	if q.Search != "" {
		needle := strings.ToLower(q.Search)
		if !strings.Contains(strings.ToLower(job.Title), needle) &&
			!strings.Contains(strings.ToLower(job.Company), needle) &&
			!strings.Contains(strings.ToLower(job.Description), needle) {
			return false
		}
	}
	if q.Type != "" && !strings.EqualFold(job.Type, q.Type) {
		return false
	}
	if q.Location != "" && !strings.EqualFold(job.Location, q.Location) {
		return false
	}
	if q.Category != "" && !strings.EqualFold(job.CategoryName, q.Category) {
		return false
	}
	return true
}

type JobStore interface {
	// ListJobs returns the requested page, newest first, and the total number of matches.
	ListJobs(ctx context.Context, q JobQuery) ([]models.Job, int, error)
	GetJob(ctx context.Context, id uint) (*models.Job, error)
	CreateJob(ctx context.Context, job *models.Job) error
	UpdateJob(ctx context.Context, job *models.Job) error
	DeleteJob(ctx context.Context, id uint) error
	// Categories counts jobs per category, sorted by name.
	Categories(ctx context.Context) ([]dtos.CategoryCount, error)
}

type ApplicationStore interface {
	CreateApplication(ctx context.Context, app *models.Application) error
	// ListApplications returns a page of applications, newest first. An empty status matches all.
	ListApplications(ctx context.Context, status string, page, limit int) ([]models.Application, int, error)
	UpdateApplicationStatus(ctx context.Context, id uint, status string) (*models.Application, error)
}

type MessageStore interface {
	CreateMessage(ctx context.Context, msg *models.ContactMessage) error
	// ListMessages returns a page of messages, newest first.
	ListMessages(ctx context.Context, unreadOnly bool, page, limit int) ([]models.ContactMessage, int, error)
	MarkMessageRead(ctx context.Context, id uint) (*models.ContactMessage, error)
}

type UserStore interface {
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
}

// Store is everything the backend persists.
type Store interface {
	JobStore
	ApplicationStore
	MessageStore
	UserStore
}
