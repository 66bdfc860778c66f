package database

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/justsurfingit/job-board/internal/dtos"
	"github.com/justsurfingit/job-board/internal/models"
	"github.com/justsurfingit/job-board/internal/store"
)

// Store implements store.Store on a gorm database.
type Store struct {
	DB *gorm.DB
}

var _ store.Store = (*Store)(nil)

func NewStore(db *gorm.DB) *Store {
	return &Store{DB: db}
}

// SeedJobs inserts jobs when the jobs table is empty.
func (s *Store) SeedJobs(ctx context.Context, jobs []models.Job) error {
	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.Job{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 || len(jobs) == 0 {
		return nil
	}
	return s.DB.WithContext(ctx).Create(&jobs).Error
}

func (s *Store) ListJobs(ctx context.Context, q store.JobQuery) ([]models.Job, int, error) {
	tx := s.DB.WithContext(ctx).Model(&models.Job{})
	if q.Search != "" {
		like := "%" + q.Search + "%"
		tx = tx.Where("title ILIKE ? OR company ILIKE ? OR description ILIKE ?", like, like, like)
	}
	if q.Type != "" {
		tx = tx.Where("LOWER(type) = LOWER(?)", q.Type)
	}
	if q.Location != "" {
		tx = tx.Where("LOWER(location) = LOWER(?)", q.Location)
	}
	if q.Category != "" {
		tx = tx.Where("LOWER(category_name) = LOWER(?)", q.Category)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var jobs []models.Job
	tx = tx.Order("created_at DESC").Order("id DESC")
	if q.Limit > 0 {
		tx = tx.Offset(q.Offset()).Limit(q.Limit)
	}
	if err := tx.Find(&jobs).Error; err != nil {
		return nil, 0, err
	}
	return jobs, int(total), nil
}

func (s *Store) GetJob(ctx context.Context, id uint) (*models.Job, error) {
	var job models.Job
	if err := s.DB.WithContext(ctx).First(&job, id).Error; err != nil {
		return nil, translate(err)
	}
	return &job, nil
}

func (s *Store) CreateJob(ctx context.Context, job *models.Job) error {
	return s.DB.WithContext(ctx).Create(job).Error
}

func (s *Store) UpdateJob(ctx context.Context, job *models.Job) error {
	existing, err := s.GetJob(ctx, job.ID)
	if err != nil {
		return err
	}
	job.CreatedAt = existing.CreatedAt
	return s.DB.WithContext(ctx).Save(job).Error
}

func (s *Store) DeleteJob(ctx context.Context, id uint) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("job_id = ?", id).Delete(&models.Application{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Job{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return store.ErrNotFound
		}
		return nil
	})
}

func (s *Store) Categories(ctx context.Context) ([]dtos.CategoryCount, error) {
	var out []dtos.CategoryCount
	err := s.DB.WithContext(ctx).Model(&models.Job{}).
		Select("COALESCE(NULLIF(category_name, ''), ?) AS name, COUNT(*) AS count", models.DefaultCategory).
		Group("name").
		Order("name").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) CreateApplication(ctx context.Context, app *models.Application) error {
	if _, err := s.GetJob(ctx, app.JobID); err != nil {
		return err
	}
	if app.Status == "" {
		app.Status = models.ApplicationStatusPending
	}
	return s.DB.WithContext(ctx).Create(app).Error
}

func (s *Store) ListApplications(ctx context.Context, status string, page, limit int) ([]models.Application, int, error) {
	tx := s.DB.WithContext(ctx).Model(&models.Application{})
	if status != "" {
		tx = tx.Where("LOWER(status) = LOWER(?)", status)
	}
	var apps []models.Application
	total, err := findPage(tx, page, limit, &apps)
	return apps, total, err
}

func (s *Store) UpdateApplicationStatus(ctx context.Context, id uint, status string) (*models.Application, error) {
	var app models.Application
	if err := s.DB.WithContext(ctx).First(&app, id).Error; err != nil {
		return nil, translate(err)
	}
	if err := s.DB.WithContext(ctx).Model(&app).Update("status", status).Error; err != nil {
		return nil, err
	}
	app.Status = status
	return &app, nil
}

func (s *Store) CreateMessage(ctx context.Context, msg *models.ContactMessage) error {
	return s.DB.WithContext(ctx).Create(msg).Error
}

func (s *Store) ListMessages(ctx context.Context, unreadOnly bool, page, limit int) ([]models.ContactMessage, int, error) {
	tx := s.DB.WithContext(ctx).Model(&models.ContactMessage{})
	if unreadOnly {
		tx = tx.Where("is_read = ?", false)
	}
	var msgs []models.ContactMessage
	total, err := findPage(tx, page, limit, &msgs)
	return msgs, total, err
}

func (s *Store) MarkMessageRead(ctx context.Context, id uint) (*models.ContactMessage, error) {
	var msg models.ContactMessage
	if err := s.DB.WithContext(ctx).First(&msg, id).Error; err != nil {
		return nil, translate(err)
	}
	if err := s.DB.WithContext(ctx).Model(&msg).Update("is_read", true).Error; err != nil {
		return nil, err
	}
	msg.IsRead = true
	return &msg, nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	err := s.DB.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return store.ErrDuplicate
	}
	return err
}

// findPage counts the rows selected by tx, then loads the requested page newest first.
func findPage(tx *gorm.DB, page, limit int, dest any) (int, error) {
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return 0, err
	}
	tx = tx.Order("id DESC")
	if limit > 0 {
		if page < 1 {
			page = 1
		}
		tx = tx.Offset((page - 1) * limit).Limit(limit)
	}
	if err := tx.Find(dest).Error; err != nil {
		return 0, fmt.Errorf("load page: %w", err)
	}
	return int(total), nil
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return store.ErrNotFound
	}
	return err
}
