package listing

import (
	"slices"
	"sort"
	"strings"

	"github.com/justsurfingit/job-board/internal/dtos"
)

type SortKey string

const (
	SortNewest     SortKey = "newest"
	SortOldest     SortKey = "oldest"
	SortSalaryHigh SortKey = "salary-high"
	SortSalaryLow  SortKey = "salary-low"
)

// SortKeys lists the accepted sort keys in menu order.
var SortKeys = []SortKey{SortNewest, SortOldest, SortSalaryHigh, SortSalaryLow}

// ParseSortKey accepts a key from SortKeys; anything else is reported as not ok.
func ParseSortKey(s string) (SortKey, bool) {
	k := SortKey(strings.ToLower(strings.TrimSpace(s)))
	return k, slices.Contains(SortKeys, k)
}

// ParseSalary returns the leading whole number of a salary such as
// "$80,000 - $120,000". Salaries without one are 0.
func ParseSalary(salary string) int {
	s := strings.TrimPrefix(strings.TrimSpace(salary), "$")
	n, seen := 0, false
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n = n*10 + int(r-'0')
			seen = true
			continue
		}
		if r == ',' && seen {
			continue
		}
		break
	}
	return n
}

// Sort returns a sorted copy of jobs. An unknown key keeps the fetched order.
func Sort(jobs []dtos.Job, key SortKey) []dtos.Job {
	out := slices.Clone(jobs)
	var less func(a, b dtos.Job) bool
	switch key {
	case SortNewest:
		less = func(a, b dtos.Job) bool { return a.Created().After(b.Created()) }
	case SortOldest:
		less = func(a, b dtos.Job) bool { return a.Created().Before(b.Created()) }
	case SortSalaryHigh:
		less = func(a, b dtos.Job) bool { return ParseSalary(a.Salary) > ParseSalary(b.Salary) }
	case SortSalaryLow:
		less = func(a, b dtos.Job) bool { return ParseSalary(a.Salary) < ParseSalary(b.Salary) }
	default:
		return out
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// Filter returns the jobs matching c. Search is a case-insensitive substring of
// the title or company; type and location match regardless of case when set,
// the same way the server matches them.
func Filter(jobs []dtos.Job, c Criteria) []dtos.Job {
	search := strings.ToLower(strings.TrimSpace(c.Search))
	out := make([]dtos.Job, 0, len(jobs))
	for _, j := range jobs {
		if search != "" &&
			!strings.Contains(strings.ToLower(j.Title), search) &&
			!strings.Contains(strings.ToLower(j.Company), search) {
			continue
		}
		if isSet(c.Type) && !strings.EqualFold(j.Type, strings.TrimSpace(c.Type)) {
			continue
		}
		if isSet(c.Location) && !strings.EqualFold(j.Location, strings.TrimSpace(c.Location)) {
			continue
		}
		out = append(out, j)
	}
	return out
}
