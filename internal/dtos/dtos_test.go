package dtos

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequirementsAcceptsStringOrList(t *testing.T) {
	var raw RawJob
	require.NoError(t, json.Unmarshal([]byte(`{"requirements":"A, B ,C"}`), &raw))
	assert.Equal(t, RequirementsText("A, B ,C"), raw.Requirements)

	require.NoError(t, json.Unmarshal([]byte(`{"requirements":["Go","SQL"]}`), &raw))
	assert.Equal(t, RequirementsList("Go", "SQL"), raw.Requirements)

	raw = RawJob{}
	require.NoError(t, json.Unmarshal([]byte(`{"requirements":null}`), &raw))
	assert.Equal(t, Requirements{}, raw.Requirements)

	assert.Error(t, json.Unmarshal([]byte(`{"requirements":42}`), &raw))
}

func TestRequirementsKeepsWireShape(t *testing.T) {
	b, err := json.Marshal(RequirementsText("Go, SQL"))
	require.NoError(t, err)
	assert.Equal(t, `"Go, SQL"`, string(b))

	b, err = json.Marshal(Requirements{})
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(b))
}

func TestParseRequirementsInput(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, ParseRequirementsInput("a, b,,c"))
	assert.Equal(t, []string{NoRequirements}, ParseRequirementsInput(" , "))
	assert.Equal(t, "a, b", JoinRequirements([]string{"a", "b"}))
}

func TestQueriesSendOnlyDefinedValues(t *testing.T) {
	assert.Equal(t, "limit=5&type=Remote", JobFilters{Type: "Remote", Limit: 5}.Query().Encode())
	assert.Empty(t, JobFilters{}.Query())
	assert.Equal(t, "status=pending", ApplicationFilters{Status: "pending"}.Query().Encode())
	assert.Empty(t, MessageFilters{Unread: false}.Query())
	assert.Equal(t, "unread=true", MessageFilters{Unread: true}.Query().Encode())
}

func TestParseTimestamp(t *testing.T) {
	ts, ok := ParseTimestamp("2026-03-13T12:00:00Z")
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 3, 13, 12, 0, 0, 0, time.UTC), ts)

	_, ok = ParseTimestamp("2026-03-13 08:30:00")
	assert.True(t, ok)
	_, ok = ParseTimestamp("last tuesday")
	assert.False(t, ok)
	assert.True(t, Job{CreatedAt: "garbage"}.Created().IsZero())
}

func TestValidateReportsEveryProblem(t *testing.T) {
	err := Validate(ContactRequest{Email: "not-an-email"})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Problems, "name is required")
	assert.Contains(t, ve.Problems, "email must be a valid email address")
	assert.True(t, strings.HasPrefix(err.Error(), "invalid input: "))

	assert.NoError(t, Validate(StatusUpdateRequest{Status: "reviewed"}))
	require.ErrorAs(t, Validate(StatusUpdateRequest{Status: "hired"}), &ve)
	assert.Equal(t, []string{"status must be one of: pending reviewed shortlisted rejected"}, ve.Problems)
}

func TestApplicationFormValidate(t *testing.T) {
	form := ApplicationForm{
		JobID: 1, ApplicantName: "Ann", ApplicantEmail: "ann@example.com", ApplicantPhone: "555",
		Resume: &Attachment{Name: "CV.DOCX", Content: strings.NewReader("x")},
	}
	assert.NoError(t, form.Validate())

	form.PaymentFile = &Attachment{Name: "receipt.txt", Content: strings.NewReader("x")}
	assert.Error(t, form.Validate())

	form.PaymentFile = nil
	form.Resume = &Attachment{Name: "cv.exe", Content: strings.NewReader("x")}
	assert.Error(t, form.Validate())

	form.Resume = nil
	assert.Error(t, form.Validate())
}

func TestEnvelopeHelpers(t *testing.T) {
	env := Page("ok", []int{1}, 2, 4, 9)
	assert.True(t, env.Success)
	assert.Equal(t, &Pagination{Page: 2, Limit: 4, Total: 9, TotalPages: 3}, env.Pagination)

	b, err := json.Marshal(Fail("Job not found", ""))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"message":"Job not found"}`, string(b))
}
