// Package listing implements the job browser: it fetches jobs for the current
// filter criteria, then filters and sorts the fetched list locally.
package listing

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/justsurfingit/job-board/internal/apiclient"
	"github.com/justsurfingit/job-board/internal/dtos"
)

// Any is the unset value of the type and location criteria.
const Any = "All"

// Source is where the engine fetches jobs from.
type Source interface {
	ListJobs(ctx context.Context, filters dtos.JobFilters) (*dtos.Envelope[[]dtos.Job], error)
}

// Criteria are the filters that cause a fetch when they change.
type Criteria struct {
	Search   string
	Type     string
	Location string
}

// DefaultCriteria has every filter unset.
func DefaultCriteria() Criteria {
	return Criteria{Type: Any, Location: Any}
}

// Filters is the list query for c. Unset values are left out.
func (c Criteria) Filters() dtos.JobFilters {
	var f dtos.JobFilters
	f.Search = strings.TrimSpace(c.Search)
	if isSet(c.Type) {
		f.Type = strings.TrimSpace(c.Type)
	}
	if isSet(c.Location) {
		f.Location = strings.TrimSpace(c.Location)
	}
	return f
}

func isSet(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && !strings.EqualFold(v, Any)
}

// Engine holds the filter criteria, the last fetched jobs and the sort order.
// Every fetch is tagged with a generation; a reply that arrives after a newer
// fetch was started is dropped.
type Engine struct {
	src Source

	mu       sync.Mutex
	criteria Criteria
	sortKey  SortKey
	jobs     []dtos.Job
	limit    int
	loading  bool
	err      error
	gen      uint64
}

func NewEngine(src Source) *Engine {
	return &Engine{src: src, criteria: DefaultCriteria(), sortKey: SortNewest}
}

// SetLimit sets the page size asked of the source. Zero leaves it to the source.
func (e *Engine) SetLimit(n int) {
	e.mu.Lock()
	e.limit = n
	e.mu.Unlock()
}

// Refresh fetches for the current criteria.
func (e *Engine) Refresh(ctx context.Context) error {
	return e.update(ctx, func(*Criteria) {})
}

// Retry repeats the fetch for the current criteria.
func (e *Engine) Retry(ctx context.Context) error {
	return e.Refresh(ctx)
}

func (e *Engine) SetSearch(ctx context.Context, search string) error {
	return e.update(ctx, func(c *Criteria) { c.Search = search })
}

func (e *Engine) SetType(ctx context.Context, jobType string) error {
	return e.update(ctx, func(c *Criteria) { c.Type = jobType })
}

func (e *Engine) SetLocation(ctx context.Context, location string) error {
	return e.update(ctx, func(c *Criteria) { c.Location = location })
}

// SetCriteria replaces every criterion at once and fetches.
func (e *Engine) SetCriteria(ctx context.Context, c Criteria) error {
	return e.update(ctx, func(cur *Criteria) { *cur = c })
}

// ClearFilters resets the criteria to unset and fetches.
func (e *Engine) ClearFilters(ctx context.Context) error {
	return e.update(ctx, func(c *Criteria) { *c = DefaultCriteria() })
}

// SetSort changes the order of Displayed. It does not fetch.
func (e *Engine) SetSort(key SortKey) {
	e.mu.Lock()
	e.sortKey = key
	e.mu.Unlock()
}

// update changes the criteria and starts the fetch for them under one lock, so
// the newest generation always belongs to the current criteria.
func (e *Engine) update(ctx context.Context, change func(*Criteria)) error {
	e.mu.Lock()
	change(&e.criteria)
	gen, filters := e.startLocked()
	e.mu.Unlock()
	return e.fetch(ctx, gen, filters)
}

func (e *Engine) startLocked() (uint64, dtos.JobFilters) {
	e.gen++
	e.loading = true
	e.err = nil
	filters := e.criteria.Filters()
	filters.Limit = e.limit
	return e.gen, filters
}

// fetch returns the error of a failed fetch, unless a newer fetch has started
// meanwhile, in which case the reply is dropped and nil is returned.
func (e *Engine) fetch(ctx context.Context, gen uint64, filters dtos.JobFilters) error {
	env, err := e.src.ListJobs(ctx, filters)
	var jobs []dtos.Job
	if err == nil {
		jobs, err = apiclient.Result(env, nil, "Failed to fetch jobs")
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if gen != e.gen {
		log.Debug().Uint64("generation", gen).Uint64("current", e.gen).Msg("dropping stale job list")
		return nil
	}
	e.loading = false
	if err != nil {
		e.err = err
		return err
	}
	e.jobs = jobs
	return nil
}

// Displayed is the fetched list filtered by the criteria and sorted. The held
// list is never modified.
func (e *Engine) Displayed() []dtos.Job {
	e.mu.Lock()
	jobs, criteria, key := e.jobs, e.criteria, e.sortKey
	e.mu.Unlock()
	return Sort(Filter(jobs, criteria), key)
}

// Jobs returns a copy of the last fetched list, as the source returned it.
func (e *Engine) Jobs() []dtos.Job {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]dtos.Job(nil), e.jobs...)
}

func (e *Engine) Criteria() Criteria {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.criteria
}

func (e *Engine) Sort() SortKey {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sortKey
}

func (e *Engine) Loading() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loading
}

// Err is the error of the last fetch, nil when it succeeded.
func (e *Engine) Err() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.err
}

// ErrorMessage is Err as shown to the user, or "" when there is none.
func (e *Engine) ErrorMessage() string {
	return apiclient.UserMessage(e.Err())
}
