package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/justsurfingit/job-board/internal/dtos"
	"github.com/justsurfingit/job-board/internal/models"
)

// Memory is a Store kept in process memory. It is safe for concurrent use.
type Memory struct {
	mu  sync.RWMutex
	now func() time.Time

	jobs     map[uint]models.Job
	apps     map[uint]models.Application
	messages map[uint]models.ContactMessage
	users    map[string]models.User

	nextJobID, nextAppID, nextMsgID, nextUserID uint
}

var _ Store = (*Memory)(nil)

// NewMemory creates an empty store.
func NewMemory() *Memory {
	return &Memory{
		now:        time.Now,
		jobs:       map[uint]models.Job{},
		apps:       map[uint]models.Application{},
		messages:   map[uint]models.ContactMessage{},
		users:      map[string]models.User{},
		nextJobID:  1,
		nextAppID:  1,
		nextMsgID:  1,
		nextUserID: 1,
	}
}

// NewDemoMemory creates a store holding the demo jobs.
func NewDemoMemory(now time.Time) *Memory {
	m := NewMemory()
	for _, job := range DemoJobs(now) {
		m.jobs[job.ID] = job
		if job.ID >= m.nextJobID {
			m.nextJobID = job.ID + 1
		}
	}
	return m
}

func (m *Memory) ListJobs(_ context.Context, q JobQuery) ([]models.Job, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	matched := make([]models.Job, 0, len(m.jobs))
	for _, job := range m.jobs {
		if q.Matches(job) {
			matched = append(matched, job)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})
	return paginate(matched, q.Page, q.Limit), len(matched), nil
}

func (m *Memory) GetJob(_ context.Context, id uint) (*models.Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	job, ok := m.jobs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &job, nil
}

func (m *Memory) CreateJob(_ context.Context, job *models.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	job.ID = m.nextJobID
	m.nextJobID++
	job.CreatedAt, job.UpdatedAt = now, now
	m.jobs[job.ID] = *job
	return nil
}

func (m *Memory) UpdateJob(_ context.Context, job *models.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.jobs[job.ID]
	if !ok {
		return ErrNotFound
	}
	job.CreatedAt = existing.CreatedAt
	job.UpdatedAt = m.now()
	m.jobs[job.ID] = *job
	return nil
}

func (m *Memory) DeleteJob(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.jobs[id]; !ok {
		return ErrNotFound
	}
	delete(m.jobs, id)
	for appID, app := range m.apps {
		if app.JobID == id {
			delete(m.apps, appID)
		}
	}
	return nil
}

func (m *Memory) Categories(_ context.Context) ([]dtos.CategoryCount, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	counts := map[string]int{}
	for _, job := range m.jobs {
		name := job.CategoryName
		if name == "" {
			name = models.DefaultCategory
		}
		counts[name]++
	}
	out := make([]dtos.CategoryCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, dtos.CategoryCount{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *Memory) CreateApplication(_ context.Context, app *models.Application) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.jobs[app.JobID]; !ok {
		return ErrNotFound
	}
	now := m.now()
	app.ID = m.nextAppID
	m.nextAppID++
	app.CreatedAt, app.UpdatedAt = now, now
	if app.Status == "" {
		app.Status = models.ApplicationStatusPending
	}
	m.apps[app.ID] = *app
	return nil
}

func (m *Memory) ListApplications(_ context.Context, status string, page, limit int) ([]models.Application, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	matched := make([]models.Application, 0, len(m.apps))
	for _, app := range m.apps {
		if status == "" || strings.EqualFold(app.Status, status) {
			matched = append(matched, app)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })
	return paginate(matched, page, limit), len(matched), nil
}

func (m *Memory) UpdateApplicationStatus(_ context.Context, id uint, status string) (*models.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	app, ok := m.apps[id]
	if !ok {
		return nil, ErrNotFound
	}
	app.Status = status
	app.UpdatedAt = m.now()
	m.apps[id] = app
	return &app, nil
}

func (m *Memory) CreateMessage(_ context.Context, msg *models.ContactMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	msg.ID = m.nextMsgID
	m.nextMsgID++
	msg.CreatedAt = m.now()
	m.messages[msg.ID] = *msg
	return nil
}

func (m *Memory) ListMessages(_ context.Context, unreadOnly bool, page, limit int) ([]models.ContactMessage, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	matched := make([]models.ContactMessage, 0, len(m.messages))
	for _, msg := range m.messages {
		if !unreadOnly || !msg.IsRead {
			matched = append(matched, msg)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })
	return paginate(matched, page, limit), len(matched), nil
}

func (m *Memory) MarkMessageRead(_ context.Context, id uint) (*models.ContactMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	msg, ok := m.messages[id]
	if !ok {
		return nil, ErrNotFound
	}
	msg.IsRead = true
	m.messages[id] = msg
	return &msg, nil
}

func (m *Memory) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[username]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (m *Memory) CreateUser(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.Username]; ok {
		return ErrDuplicate
	}
	now := m.now()
	user.ID = m.nextUserID
	m.nextUserID++
	user.CreatedAt, user.UpdatedAt = now, now
	m.users[user.Username] = *user
	return nil
}

// paginate returns page (1-based) of items. A non-positive limit returns everything.
func paginate[T any](items []T, page, limit int) []T {
	if limit <= 0 {
		return items
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * limit
	if start >= len(items) {
		return []T{}
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
