package listing_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justsurfingit/job-board/internal/apiclient"
	"github.com/justsurfingit/job-board/internal/config"
	"github.com/justsurfingit/job-board/internal/listing"
	"github.com/justsurfingit/job-board/internal/repository"
	"github.com/justsurfingit/job-board/internal/server"
	"github.com/justsurfingit/job-board/internal/store"
)

func startAPI(t *testing.T) (*httptest.Server, func() []string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := config.Default()
	cfg.UploadDir = t.TempDir()
	srv, err := server.New(context.Background(), cfg, store.NewDemoMemory(time.Now()))
	require.NoError(t, err)
	router := srv.RegisterRoutes()

	var (
		mu      sync.Mutex
		queries []string
	)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/jobs" {
			mu.Lock()
			queries = append(queries, r.URL.RawQuery)
			mu.Unlock()
		}
		router.ServeHTTP(w, r)
	}))
	t.Cleanup(ts.Close)
	return ts, func() []string {
		mu.Lock()
		defer mu.Unlock()
		return append([]string(nil), queries...)
	}
}

func TestEngineAgainstAPIFiltersByType(t *testing.T) {
	ts, queries := startAPI(t)
	client := apiclient.New(ts.URL + "/api")
	e := listing.NewEngine(repository.NewAPIRepository(client))

	require.NoError(t, e.SetType(context.Background(), "Remote"))
	assert.Equal(t, []string{"type=Remote"}, queries())

	shown := e.Displayed()
	require.NotEmpty(t, shown)
	for _, j := range shown {
		assert.Equal(t, "Remote", j.Type)
	}
	assert.Equal(t, "Backend Developer", shown[0].Title)
}

func TestEngineAgainstAPIMatchesServerNormalisation(t *testing.T) {
	ts, queries := startAPI(t)
	e := listing.NewEngine(repository.NewAPIRepository(apiclient.New(ts.URL + "/api")))
	ctx := context.Background()

	require.NoError(t, e.SetType(ctx, "remote"))
	require.Len(t, e.Jobs(), 1)
	assert.Len(t, e.Displayed(), 1)

	require.NoError(t, e.SetCriteria(ctx, listing.Criteria{Search: "developer ", Type: listing.Any, Location: listing.Any}))
	require.Len(t, e.Jobs(), 2)
	assert.Len(t, e.Displayed(), 2)
	assert.Equal(t, []string{"type=remote", "search=developer"}, queries())
}

func TestEngineAgainstAPISearchAndSort(t *testing.T) {
	ts, _ := startAPI(t)
	e := listing.NewEngine(repository.NewAPIRepository(apiclient.New(ts.URL + "/api")))
	ctx := context.Background()

	require.NoError(t, e.SetSearch(ctx, "dev"))
	e.SetSort(listing.SortSalaryHigh)
	shown := e.Displayed()
	titles := make([]string, 0, len(shown))
	for _, j := range shown {
		titles = append(titles, j.Title)
	}
	assert.Equal(t, []string{"DevOps Engineer", "Backend Developer", "Senior Frontend Developer"}, titles)

	require.NoError(t, e.ClearFilters(ctx))
	assert.Len(t, e.Displayed(), 6)
}

func TestEngineOverDemoRepository(t *testing.T) {
	e := listing.NewEngine(repository.NewDemoRepository())
	require.NoError(t, e.SetLocation(context.Background(), "Seattle, WA"))
	shown := e.Displayed()
	require.Len(t, shown, 1)
	assert.Equal(t, "Product Manager", shown[0].Title)
}
