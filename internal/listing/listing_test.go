package listing

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justsurfingit/job-board/internal/apiclient"
	"github.com/justsurfingit/job-board/internal/dtos"
)

func job(id int, title, company, salary string, created time.Time) dtos.Job {
	return dtos.Job{ID: id, Title: title, Company: company, Salary: salary, Type: "Full-time",
		Location: "New York, NY", Category: "Development", CreatedAt: created.Format(time.RFC3339)}
}

var base = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func sample() []dtos.Job {
	return []dtos.Job{
		job(1, "Senior Frontend Developer", "TechCorp", "$80,000 - $120,000", base.Add(-48*time.Hour)),
		job(2, "Product Manager", "InnovateLab", "N/A", base.Add(-24*time.Hour)),
		job(3, "Backend Developer", "DataTech", "$120,000", base.Add(-72*time.Hour)),
	}
}

func ids(jobs []dtos.Job) []int {
	out := make([]int, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, j.ID)
	}
	return out
}

func TestParseSalary(t *testing.T) {
	cases := map[string]int{
		"$80,000 - $120,000": 80000,
		"$120,000":           120000,
		"95000":              95000,
		" $1,500/month":      1500,
		"N/A":                0,
		"":                   0,
		"Competitive":        0,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseSalary(in), in)
	}
}

func TestSortNewestIsReverseOfOldest(t *testing.T) {
	jobs := sample()
	newest := ids(Sort(jobs, SortNewest))
	oldest := ids(Sort(jobs, SortOldest))

	assert.Equal(t, []int{2, 1, 3}, newest)
	for i := range newest {
		assert.Equal(t, newest[i], oldest[len(oldest)-1-i])
	}
	assert.Equal(t, []int{1, 2, 3}, ids(jobs), "input is untouched")
}

func TestSortBySalary(t *testing.T) {
	jobs := sample()
	assert.Equal(t, []int{3, 1, 2}, ids(Sort(jobs, SortSalaryHigh)))
	assert.Equal(t, []int{2, 1, 3}, ids(Sort(jobs, SortSalaryLow)))
	assert.Equal(t, ids(Sort(jobs, SortSalaryHigh)), ids(Sort(Sort(jobs, SortSalaryHigh), SortSalaryHigh)))
}

func TestParseSortKey(t *testing.T) {
	k, ok := ParseSortKey(" Salary-High ")
	assert.True(t, ok)
	assert.Equal(t, SortSalaryHigh, k)
	_, ok = ParseSortKey("cheapest")
	assert.False(t, ok)
}

func TestFilterSearchMatchesTitleOrCompany(t *testing.T) {
	jobs := sample()
	assert.Equal(t, []int{1, 3}, ids(Filter(jobs, Criteria{Search: "dev"})))
	assert.Equal(t, []int{2}, ids(Filter(jobs, Criteria{Search: "INNOVATE"})))
	assert.Len(t, Filter(jobs, DefaultCriteria()), 3)
	assert.Empty(t, Filter(jobs, Criteria{Type: "Remote"}))
	assert.Empty(t, Filter(jobs, Criteria{Type: Any, Location: "Boston, MA"}))
}

func TestFilterNormalisesInput(t *testing.T) {
	jobs := sample()
	jobs[2].Type = "Remote"
	assert.Equal(t, []int{3}, ids(Filter(jobs, Criteria{Type: "remote"})))
	assert.Equal(t, []int{1, 3}, ids(Filter(jobs, Criteria{Search: "developer "})))
	assert.Equal(t, []int{1, 2, 3}, ids(Filter(jobs, Criteria{Location: " new york, ny", Type: "all"})))
}

func TestCriteriaFilters(t *testing.T) {
	assert.Equal(t, dtos.JobFilters{}, DefaultCriteria().Filters())
	assert.Equal(t, dtos.JobFilters{Search: "go", Type: "Remote"},
		Criteria{Search: " go ", Type: "Remote", Location: Any}.Filters())
	assert.Equal(t, dtos.JobFilters{Location: "Boston, MA"},
		Criteria{Type: "all", Location: " Boston, MA "}.Filters())
}

func TestFeaturedAndRelated(t *testing.T) {
	jobs := sample()
	assert.Equal(t, []int{1, 2}, ids(Featured(jobs, 2)))
	assert.Len(t, Featured(jobs, FeaturedCount), 3)

	jobs[1].Category = "Management"
	assert.Equal(t, []int{3}, ids(Related(jobs, jobs[0], 3)))
	assert.Empty(t, Related(jobs, jobs[1], 3))
	assert.Equal(t, Any, JobTypeOptions[0])
	assert.Contains(t, LocationOptions, "Boston, MA")
}

// fakeSource answers each ListJobs call with the next reply in line.
type fakeSource struct {
	mu      sync.Mutex
	calls   []dtos.JobFilters
	replies []func() (*dtos.Envelope[[]dtos.Job], error)
}

func (f *fakeSource) ListJobs(_ context.Context, filters dtos.JobFilters) (*dtos.Envelope[[]dtos.Job], error) {
	f.mu.Lock()
	f.calls = append(f.calls, filters)
	reply := f.replies[0]
	f.replies = f.replies[1:]
	f.mu.Unlock()
	return reply()
}

func ok(jobs ...dtos.Job) func() (*dtos.Envelope[[]dtos.Job], error) {
	return func() (*dtos.Envelope[[]dtos.Job], error) {
		return &dtos.Envelope[[]dtos.Job]{Success: true, Data: jobs}, nil
	}
}

func TestEngineFetchesOnCriteriaChange(t *testing.T) {
	jobs := sample()
	src := &fakeSource{replies: []func() (*dtos.Envelope[[]dtos.Job], error){ok(jobs...), ok(jobs...), ok(jobs...)}}
	e := NewEngine(src)
	ctx := context.Background()

	require.NoError(t, e.Refresh(ctx))
	require.NoError(t, e.SetSearch(ctx, "dev"))
	e.SetSort(SortOldest)
	assert.Equal(t, []int{3, 1}, ids(e.Displayed()))
	assert.Len(t, e.Jobs(), 3, "held list is not filtered")

	require.NoError(t, e.ClearFilters(ctx))
	assert.Equal(t, DefaultCriteria(), e.Criteria())
	assert.Equal(t, []dtos.JobFilters{{}, {Search: "dev"}, {}}, src.calls)
	assert.False(t, e.Loading())
}

func TestEngineErrorAndRetry(t *testing.T) {
	transport := &apiclient.TransportError{Op: "GET", URL: "/jobs", Err: errors.New("refused")}
	src := &fakeSource{replies: []func() (*dtos.Envelope[[]dtos.Job], error){
		func() (*dtos.Envelope[[]dtos.Job], error) { return nil, transport },
		func() (*dtos.Envelope[[]dtos.Job], error) {
			return &dtos.Envelope[[]dtos.Job]{Success: false, Message: "Database down"}, nil
		},
		ok(sample()...),
	}}
	e := NewEngine(src)
	ctx := context.Background()

	err := e.SetType(ctx, "Full-time")
	assert.ErrorIs(t, err, transport)
	assert.Equal(t, apiclient.TransportFailureMessage, e.ErrorMessage())
	assert.False(t, e.Loading())

	assert.Error(t, e.Retry(ctx))
	assert.Equal(t, "Database down", e.ErrorMessage())

	require.NoError(t, e.Retry(ctx))
	assert.NoError(t, e.Err())
	assert.Empty(t, e.ErrorMessage())
	assert.Len(t, e.Displayed(), 3)

	want := dtos.JobFilters{Type: "Full-time"}
	assert.Equal(t, []dtos.JobFilters{want, want, want}, src.calls, "retry repeats the same fetch")
}

func TestEngineDropsStaleReply(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	stale := job(9, "Stale Listing", "Old Co", "", base)
	fresh := job(1, "Go Developer", "NewCo", "", base)

	src := &fakeSource{replies: []func() (*dtos.Envelope[[]dtos.Job], error){
		func() (*dtos.Envelope[[]dtos.Job], error) {
			close(started)
			<-release
			return &dtos.Envelope[[]dtos.Job]{Success: true, Data: []dtos.Job{stale}}, nil
		},
		ok(fresh),
	}}
	e := NewEngine(src)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() { done <- e.SetSearch(ctx, "old") }()
	<-started
	assert.True(t, e.Loading())

	require.NoError(t, e.SetSearch(ctx, "go"))
	close(release)
	require.NoError(t, <-done)

	assert.Equal(t, []int{1}, ids(e.Jobs()))
	assert.Equal(t, "go", e.Criteria().Search)
	assert.False(t, e.Loading())
}

// echoSource replies with one job whose company records the filters it was
// fetched for.
type echoSource struct{}

func (echoSource) ListJobs(_ context.Context, f dtos.JobFilters) (*dtos.Envelope[[]dtos.Job], error) {
	j := dtos.Job{ID: 1, Title: "Echo", Company: f.Search + "|" + f.Type}
	return &dtos.Envelope[[]dtos.Job]{Success: true, Data: []dtos.Job{j}}, nil
}

func TestEngineConcurrentCriteriaChanges(t *testing.T) {
	ctx := context.Background()
	for i := 0; i < 2000; i++ {
		e := NewEngine(echoSource{})
		var wg sync.WaitGroup
		wg.Add(2)
		go func() { defer wg.Done(); assert.NoError(t, e.SetSearch(ctx, "dev")) }()
		go func() { defer wg.Done(); assert.NoError(t, e.SetType(ctx, "Remote")) }()
		wg.Wait()

		f := e.Criteria().Filters()
		require.Equal(t, dtos.JobFilters{Search: "dev", Type: "Remote"}, f)
		held := e.Jobs()
		require.Len(t, held, 1)
		require.Equal(t, f.Search+"|"+f.Type, held[0].Company, "run %d holds a list fetched for older criteria", i)
	}
}
