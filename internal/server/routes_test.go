package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justsurfingit/job-board/internal/config"
	"github.com/justsurfingit/job-board/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := config.Default()
	cfg.UploadDir = t.TempDir()
	cfg.RateLimitPerSecond = 1000
	srv, err := New(context.Background(), cfg, store.NewDemoMemory(time.Now()))
	require.NoError(t, err)
	return srv.RegisterRoutes()
}

// makeJSONRequest sends body as JSON and decodes the reply envelope.
func makeJSONRequest(r http.Handler, method, endpoint string, body any, token string) (*httptest.ResponseRecorder, map[string]any) {
	var payload []byte
	if body != nil {
		payload, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, endpoint, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	resp := map[string]any{}
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	return rec, resp
}

func adminToken(t *testing.T, r http.Handler) string {
	t.Helper()
	rec, resp := makeJSONRequest(r, http.MethodPost, "/api/auth/login", gin.H{"username": "admin", "password": "admin123"}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	data := resp["data"].(map[string]any)
	return data["token"].(string)
}

func TestHealth(t *testing.T) {
	rec, resp := makeJSONRequest(newTestRouter(t), http.MethodGet, "/api/health", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, resp["success"])
}

func TestListJobs(t *testing.T) {
	r := newTestRouter(t)

	rec, resp := makeJSONRequest(r, http.MethodGet, "/api/jobs?type=Remote", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	jobs := resp["data"].([]any)
	require.Len(t, jobs, 1)
	job := jobs[0].(map[string]any)
	assert.Equal(t, "Backend Developer", job["title"])
	assert.IsType(t, "", job["requirements"], "requirements are sent comma-joined")

	pg := resp["pagination"].(map[string]any)
	assert.Equal(t, float64(1), pg["total"])
	assert.Equal(t, float64(1), pg["totalPages"])

	_, resp = makeJSONRequest(r, http.MethodGet, "/api/jobs?limit=4&page=2", nil, "")
	assert.Len(t, resp["data"], 2)

	rec, _ = makeJSONRequest(r, http.MethodGet, "/api/jobs?page=abc", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetJobAndCategories(t *testing.T) {
	r := newTestRouter(t)

	rec, resp := makeJSONRequest(r, http.MethodGet, "/api/jobs/1922334", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Product Manager", resp["data"].(map[string]any)["title"])

	rec, resp = makeJSONRequest(r, http.MethodGet, "/api/jobs/1", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Job not found", resp["message"])

	rec, _ = makeJSONRequest(r, http.MethodGet, "/api/jobs/x", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, resp = makeJSONRequest(r, http.MethodGet, "/api/jobs/categories", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	cats := resp["data"].([]any)
	assert.Equal(t, "Design", cats[0].(map[string]any)["name"])
}

func TestJobMutationsRequireAdmin(t *testing.T) {
	r := newTestRouter(t)
	job := gin.H{"title": "QA", "company": "Acme", "location": "Boston, MA", "type": "Part-time",
		"description": "test things", "requirements": []string{"Go"}, "food_accommodation": "Not Provided"}

	rec, resp := makeJSONRequest(r, http.MethodPost, "/api/jobs", job, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, false, resp["success"])

	token := adminToken(t, r)
	rec, resp = makeJSONRequest(r, http.MethodPost, "/api/jobs", job, token)
	require.Equal(t, http.StatusCreated, rec.Code)
	id := resp["data"].(map[string]any)["id"].(float64)

	job["type"] = "Gig"
	rec, _ = makeJSONRequest(r, http.MethodPut, "/api/jobs/1922336", job, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	job["type"] = "Contract"
	rec, resp = makeJSONRequest(r, http.MethodPut, "/api/jobs/1922336", job, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Contract", resp["data"].(map[string]any)["type"])
	assert.Equal(t, float64(1922336), id)

	rec, _ = makeJSONRequest(r, http.MethodDelete, "/api/jobs/1922336", nil, token)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec, _ = makeJSONRequest(r, http.MethodDelete, "/api/jobs/1922336", nil, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLoginAndLogout(t *testing.T) {
	r := newTestRouter(t)

	rec, resp := makeJSONRequest(r, http.MethodPost, "/api/auth/login", gin.H{"username": "admin", "password": "wrong-password"}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid credentials", resp["message"])

	rec, _ = makeJSONRequest(r, http.MethodPost, "/api/auth/login", gin.H{"username": "admin"}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	token := adminToken(t, r)
	rec, _ = makeJSONRequest(r, http.MethodPost, "/api/auth/logout", nil, token)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, resp = makeJSONRequest(r, http.MethodGet, "/api/applications", nil, token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Token has been revoked", resp["message"])
}

func multipartRequest(t *testing.T, fields map[string]string, files map[string]string) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for field, name := range files {
		part, err := w.CreateFormFile(field, name)
		require.NoError(t, err)
		_, _ = part.Write([]byte("file body"))
	}
	require.NoError(t, w.Close())
	req := httptest.NewRequest(http.MethodPost, "/api/applications", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestSubmitApplication(t *testing.T) {
	r := newTestRouter(t)
	fields := map[string]string{
		"job_id": "1922330", "applicant_name": "Ann", "applicant_email": "ann@example.com",
		"applicant_phone": "555", "cover_letter": "hi",
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, multipartRequest(t, fields, map[string]string{"resume": "cv.pdf"}))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, multipartRequest(t, fields, map[string]string{"resume": "cv.sh"}))
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, multipartRequest(t, fields, nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	fields["job_id"] = "77"
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, multipartRequest(t, fields, map[string]string{"resume": "cv.pdf"}))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	token := adminToken(t, r)
	rec, resp := makeJSONRequest(r, http.MethodGet, "/api/applications?status=pending", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	apps := resp["data"].(map[string]any)["applications"].([]any)
	require.Len(t, apps, 1)
	app := apps[0].(map[string]any)
	assert.Equal(t, "Senior Frontend Developer", app["job_title"])

	rec, _ = makeJSONRequest(r, http.MethodPut, "/api/applications/1/status", gin.H{"status": "hired"}, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec, resp = makeJSONRequest(r, http.MethodPut, "/api/applications/1/status", gin.H{"status": "shortlisted"}, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "shortlisted", resp["data"].(map[string]any)["status"])
}

func TestSubmitApplicationTooLarge(t *testing.T) {
	r := newTestRouter(t)
	req := httptest.NewRequest(http.MethodPost, "/api/applications", bytes.NewReader(make([]byte, 11<<20)))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestContactMessages(t *testing.T) {
	r := newTestRouter(t)

	rec, _ := makeJSONRequest(r, http.MethodPost, "/api/contact", gin.H{"name": "Ann", "email": "not-an-email",
		"subject": "Other Inquiry", "message": "hi"}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = makeJSONRequest(r, http.MethodPost, "/api/contact", gin.H{"name": "Ann", "email": "ann@example.com",
		"subject": "Other Inquiry", "message": "<i>hi</i>"}, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, _ = makeJSONRequest(r, http.MethodGet, "/api/contact", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token := adminToken(t, r)
	rec, resp := makeJSONRequest(r, http.MethodGet, "/api/contact?unread=true", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	msgs := resp["data"].([]any)
	require.Len(t, msgs, 1)
	assert.Equal(t, "hi", msgs[0].(map[string]any)["message"])

	rec, _ = makeJSONRequest(r, http.MethodPut, "/api/contact/1/read", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	_, resp = makeJSONRequest(r, http.MethodGet, "/api/contact?unread=true", nil, token)
	assert.Empty(t, resp["data"])
}
