package dtos

import (
	"bytes"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Requirements holds a job's requirements as they arrived on the wire: a single
// comma-joined string or a list.
type Requirements struct {
	Text   string
	List   []string
	IsText bool
}

// RequirementsText wraps a comma-joined requirements string.
func RequirementsText(s string) Requirements {
	return Requirements{Text: s, IsText: true}
}

// RequirementsList wraps an already split requirements list.
func RequirementsList(items ...string) Requirements {
	return Requirements{List: items}
}

func (r *Requirements) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*r = Requirements{}
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*r = RequirementsText(s)
		return nil
	}
	var list []string
	if err := json.Unmarshal(b, &list); err != nil {
		return err
	}
	*r = RequirementsList(list...)
	return nil
}

func (r Requirements) MarshalJSON() ([]byte, error) {
	if r.IsText {
		return json.Marshal(r.Text)
	}
	if r.List == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(r.List)
}

// RawJob is a job record exactly as the backend sends it.
type RawJob struct {
	ID                     int          `json:"id"`
	Title                  string       `json:"title"`
	Company                string       `json:"company"`
	Location               string       `json:"location"`
	Type                   string       `json:"type"`
	Salary                 string       `json:"salary,omitempty"`
	Description            string       `json:"description"`
	Requirements           Requirements `json:"requirements"`
	Logo                   string       `json:"logo,omitempty"`
	CategoryName           string       `json:"category_name,omitempty"`
	Category               string       `json:"category,omitempty"`
	FoodAccommodation      string       `json:"food_accommodation,omitempty"`
	FoodAccommodationCamel string       `json:"foodAccommodation,omitempty"`
	Gender                 string       `json:"gender,omitempty"`
	CreatedAt              string       `json:"created_at,omitempty"`
}

// Job is the display-ready job produced by the transform.
type Job struct {
	ID                int      `json:"id"`
	Title             string   `json:"title"`
	Company           string   `json:"company"`
	Location          string   `json:"location"`
	Type              string   `json:"type"`
	Salary            string   `json:"salary,omitempty"`
	Description       string   `json:"description"`
	Requirements      []string `json:"requirements"`
	Logo              string   `json:"logo"`
	CategoryName      string   `json:"category_name,omitempty"`
	Category          string   `json:"category"`
	FoodAccommodation string   `json:"foodAccommodation,omitempty"`
	Gender            string   `json:"gender,omitempty"`
	Posted            string   `json:"posted"`
	CreatedAt         string   `json:"created_at"`
}

// Created returns the parsed created_at, or the zero time when it is absent or malformed.
func (j Job) Created() time.Time {
	t, _ := ParseTimestamp(j.CreatedAt)
	return t
}

// JobRequest is the body of job create and update calls.
type JobRequest struct {
	Title             string   `json:"title" binding:"required"`
	Company           string   `json:"company" binding:"required"`
	Location          string   `json:"location" binding:"required"`
	Type              string   `json:"type" binding:"required,oneof=Full-time Part-time Contract Internship Remote"`
	Salary            string   `json:"salary"`
	Description       string   `json:"description" binding:"required"`
	Requirements      []string `json:"requirements"`
	Logo              string   `json:"logo"`
	Category          string   `json:"category"`
	FoodAccommodation string   `json:"food_accommodation" binding:"omitempty,oneof=Provided 'Not Provided' Partial"`
	Gender            string   `json:"gender" binding:"omitempty,oneof=Male Female Any"`
}

// JobFilters are the job list query parameters. Zero values are not sent.
type JobFilters struct {
	Search   string `form:"search"`
	Type     string `form:"type"`
	Location string `form:"location"`
	Category string `form:"category"`
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
}

// Query encodes only the defined, non-empty filters.
func (f JobFilters) Query() url.Values {
	q := url.Values{}
	setString(q, "search", f.Search)
	setString(q, "type", f.Type)
	setString(q, "location", f.Location)
	setString(q, "category", f.Category)
	setInt(q, "page", f.Page)
	setInt(q, "limit", f.Limit)
	return q
}

// CategoryCount is one entry of the categories listing.
type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// NoRequirements is submitted when the job form's requirements input is blank.
const NoRequirements = "No specific requirements"

// ParseRequirementsInput splits the comma separated requirements typed into the job form.
func ParseRequirementsInput(input string) []string {
	var out []string
	for _, part := range strings.Split(input, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return []string{NoRequirements}
	}
	return out
}

// JoinRequirements renders requirements back into the form's input format.
func JoinRequirements(reqs []string) string {
	return strings.Join(reqs, ", ")
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses the ISO timestamps the backend emits.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func setString(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}

func setInt(q url.Values, key string, value int) {
	if value > 0 {
		q.Set(key, strconv.Itoa(value))
	}
}
