package listing

import (
	"github.com/justsurfingit/job-board/internal/dtos"
	"github.com/justsurfingit/job-board/internal/models"
)

// JobTypeOptions is the job type menu, Any first.
var JobTypeOptions = append([]string{Any}, models.JobTypes...)

// LocationOptions is the location menu, Any first.
var LocationOptions = []string{
	Any,
	"New York, NY",
	"San Francisco, CA",
	"Austin, TX",
	"Seattle, WA",
	"Chicago, IL",
	"Boston, MA",
	"Los Angeles, CA",
}

// FeaturedCount is how many jobs the home page features.
const FeaturedCount = 6

// Featured returns the first n jobs.
func Featured(jobs []dtos.Job, n int) []dtos.Job {
	if n < 0 {
		n = 0
	}
	if n > len(jobs) {
		n = len(jobs)
	}
	return append([]dtos.Job(nil), jobs[:n]...)
}

// Related returns up to n other jobs in the same category as job.
func Related(jobs []dtos.Job, job dtos.Job, n int) []dtos.Job {
	var out []dtos.Job
	for _, j := range jobs {
		if len(out) >= n {
			break
		}
		if j.ID != job.ID && j.Category == job.Category {
			out = append(out, j)
		}
	}
	return out
}
