// Package transform maps raw backend job records into display-ready jobs.
package transform

import (
	"fmt"
	"math"
	"net/url"
	"strings"
	"time"

	"github.com/justsurfingit/job-board/internal/dtos"
	"github.com/justsurfingit/job-board/internal/models"
)

const (
	// Recently is shown when a job has no usable created_at.
	Recently = "Recently"

	logoPlaceholder = "https://ui-avatars.com/api/?name=%s&background=1B4696&color=fff&size=60"
	day             = 24 * time.Hour
)

// Job builds the display job for raw. It never fails and never modifies raw.
func Job(raw dtos.RawJob, now time.Time) dtos.Job {
	job := dtos.Job{
		ID:                raw.ID,
		Title:             raw.Title,
		Company:           raw.Company,
		Location:          raw.Location,
		Type:              raw.Type,
		Salary:            raw.Salary,
		Description:       raw.Description,
		Requirements:      Requirements(raw.Requirements),
		Logo:              raw.Logo,
		CategoryName:      raw.CategoryName,
		Category:          firstNonEmpty(raw.CategoryName, raw.Category, models.DefaultCategory),
		FoodAccommodation: firstNonEmpty(raw.FoodAccommodation, raw.FoodAccommodationCamel),
		Gender:            raw.Gender,
		Posted:            Recently,
		CreatedAt:         raw.CreatedAt,
	}
	if created, ok := dtos.ParseTimestamp(raw.CreatedAt); ok {
		job.Posted = Posted(created, now)
	}
	if job.Logo == "" {
		job.Logo = LogoURL(raw.Company)
	}
	return job
}

// Jobs transforms every element of raws.
func Jobs(raws []dtos.RawJob, now time.Time) []dtos.Job {
	out := make([]dtos.Job, 0, len(raws))
	for _, raw := range raws {
		out = append(out, Job(raw, now))
	}
	return out
}

// Posted renders the age of a posting in whole days, rounded up.
func Posted(created, now time.Time) string {
	diff := now.Sub(created)
	if diff < 0 {
		diff = -diff
	}
	days := int(math.Ceil(float64(diff) / float64(day)))

	switch {
	case days == 1:
		return "1 day ago"
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	case days < 30:
		return fmt.Sprintf("%d weeks ago", ceilDiv(days, 7))
	default:
		return fmt.Sprintf("%d months ago", ceilDiv(days, 30))
	}
}

// Requirements normalises wire requirements into a list. Comma-joined strings are
// split and trimmed; empty pieces are dropped.
func Requirements(r dtos.Requirements) []string {
	if !r.IsText {
		if r.List == nil {
			return []string{}
		}
		out := make([]string, len(r.List))
		copy(out, r.List)
		return out
	}
	out := []string{}
	for _, part := range strings.Split(r.Text, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// LogoURL is the placeholder avatar for a company without a logo.
func LogoURL(company string) string {
	if company == "" {
		company = "Company"
	}
	// encode spaces as %20 to match what browsers produce for the same name
	return fmt.Sprintf(logoPlaceholder, strings.ReplaceAll(url.QueryEscape(company), "+", "%20"))
}

// Raw converts a display job back into its wire form, so a display job can be
// sent through Job again.
func Raw(job dtos.Job) dtos.RawJob {
	return dtos.RawJob{
		ID:                     job.ID,
		Title:                  job.Title,
		Company:                job.Company,
		Location:               job.Location,
		Type:                   job.Type,
		Salary:                 job.Salary,
		Description:            job.Description,
		Requirements:           dtos.RequirementsList(job.Requirements...),
		Logo:                   job.Logo,
		CategoryName:           job.CategoryName,
		Category:               job.Category,
		FoodAccommodationCamel: job.FoodAccommodation,
		Gender:                 job.Gender,
		CreatedAt:              job.CreatedAt,
	}
}

// FromModel renders a stored job in the shape the backend sends it.
func FromModel(m models.Job) dtos.RawJob {
	return dtos.RawJob{
		ID:                int(m.ID),
		Title:             m.Title,
		Company:           m.Company,
		Location:          m.Location,
		Type:              m.Type,
		Salary:            m.Salary,
		Description:       m.Description,
		Requirements:      dtos.RequirementsText(m.Requirements),
		Logo:              m.Logo,
		CategoryName:      m.CategoryName,
		FoodAccommodation: m.FoodAccommodation,
		Gender:            m.Gender,
		CreatedAt:         m.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func ceilDiv(n, d int) int {
	return (n + d - 1) / d
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
