package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justsurfingit/job-board/internal/models"
)

var frozenNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func TestListJobs_NewestFirstAndPaginated(t *testing.T) {
	m := NewDemoMemory(frozenNow)
	ctx := context.Background()

	jobs, total, err := m.ListJobs(ctx, JobQuery{})
	require.NoError(t, err)
	assert.Equal(t, 6, total)
	require.Len(t, jobs, 6)
	assert.Equal(t, uint(1922331), jobs[0].ID, "posted one day ago")
	assert.Equal(t, uint(1922333), jobs[5].ID, "posted a week ago")

	page, total, err := m.ListJobs(ctx, JobQuery{Page: 2, Limit: 4})
	require.NoError(t, err)
	assert.Equal(t, 6, total)
	assert.Len(t, page, 2)

	empty, _, err := m.ListJobs(ctx, JobQuery{Page: 5, Limit: 4})
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestListJobs_Filters(t *testing.T) {
	m := NewDemoMemory(frozenNow)
	ctx := context.Background()

	cases := []struct {
		name string
		q    JobQuery
		want int
	}{
		{"search title", JobQuery{Search: "developer"}, 2},
		{"search company", JobQuery{Search: "innovatelab"}, 1},
		{"search description", JobQuery{Search: "kubernetes"}, 0},
		{"search description text", JobQuery{Search: "pipelines"}, 1},
		{"type", JobQuery{Type: "remote"}, 1},
		{"location", JobQuery{Location: "Austin, TX"}, 1},
		{"category", JobQuery{Category: "Development"}, 3},
		{"combined", JobQuery{Category: "Development", Type: "Full-time"}, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, total, err := m.ListJobs(ctx, tc.q)
			require.NoError(t, err)
			assert.Equal(t, tc.want, total)
		})
	}
}

func TestJobCRUD(t *testing.T) {
	m := NewDemoMemory(frozenNow)
	ctx := context.Background()

	job := &models.Job{Title: "QA", Company: "Acme", Location: "Boston, MA", Type: models.JobTypePartTime}
	require.NoError(t, m.CreateJob(ctx, job))
	assert.Equal(t, uint(1922336), job.ID)

	job.Title = "QA Lead"
	require.NoError(t, m.UpdateJob(ctx, job))
	got, err := m.GetJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, "QA Lead", got.Title)

	require.NoError(t, m.DeleteJob(ctx, job.ID))
	_, err = m.GetJob(ctx, job.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, m.DeleteJob(ctx, job.ID), ErrNotFound)
	assert.ErrorIs(t, m.UpdateJob(ctx, &models.Job{ID: 99}), ErrNotFound)
}

func TestCategories(t *testing.T) {
	m := NewDemoMemory(frozenNow)
	require.NoError(t, m.CreateJob(context.Background(), &models.Job{Title: "x"}))

	cats, err := m.Categories(context.Background())
	require.NoError(t, err)
	names := make([]string, 0, len(cats))
	for _, c := range cats {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"Design", "Development", "General", "Management", "Marketing"}, names)
	assert.Equal(t, 3, cats[1].Count)
}

func TestApplications(t *testing.T) {
	m := NewDemoMemory(frozenNow)
	ctx := context.Background()

	assert.ErrorIs(t, m.CreateApplication(ctx, &models.Application{JobID: 1}), ErrNotFound)

	app := &models.Application{JobID: 1922330, ApplicantName: "Ann"}
	require.NoError(t, m.CreateApplication(ctx, app))
	assert.Equal(t, models.ApplicationStatusPending, app.Status)

	updated, err := m.UpdateApplicationStatus(ctx, app.ID, models.ApplicationStatusShortlisted)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusShortlisted, updated.Status)

	list, total, err := m.ListApplications(ctx, models.ApplicationStatusPending, 1, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, list)

	// removing a job removes its applications
	require.NoError(t, m.DeleteJob(ctx, 1922330))
	_, total, err = m.ListApplications(ctx, "", 1, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestMessages(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	for _, subject := range []string{"General Inquiry", "Partnership"} {
		require.NoError(t, m.CreateMessage(ctx, &models.ContactMessage{Name: "Ann", Subject: subject}))
	}
	_, err := m.MarkMessageRead(ctx, 1)
	require.NoError(t, err)

	unread, total, err := m.ListMessages(ctx, true, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "Partnership", unread[0].Subject)

	_, err = m.MarkMessageRead(ctx, 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUsers(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	require.NoError(t, m.CreateUser(ctx, &models.User{Username: "admin", Role: models.RoleAdmin}))
	assert.ErrorIs(t, m.CreateUser(ctx, &models.User{Username: "admin"}), ErrDuplicate)

	u, err := m.GetUserByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, u.Role)

	_, err = m.GetUserByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}
