package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeverity_String(t *testing.T) {
	tests := []struct {
		sev  Severity
		want string
	}{
		{SeverityError, "error"},
		{SeverityWarning, "warning"},
		{SeverityInfo, "info"},
		{Severity(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.sev.String(); got != tt.want {
			t.Errorf("Severity(%d).String() = %q, want %q", tt.sev, got, tt.want)
		}
	}
}

func TestIssue_Error(t *testing.T) {
	tests := []struct {
		name  string
		issue Issue
		want  string
	}{
		{
			name:  "full",
			issue: Issue{Severity: SeverityError, Path: "a.md", Field: "name", Message: "is invalid", Value: "Bad Name"},
			want:  `a.md: error: field "name": is invalid (got Bad Name)`,
		},
		{
			name:  "message only",
			issue: Issue{Severity: SeverityWarning, Message: "no heading"},
			want:  "warning: no heading",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.issue.Error())
		})
	}
}

func TestResult_Counts(t *testing.T) {
	var r Result
	assert.False(t, r.HasErrors())
	assert.False(t, r.HasWarnings())

	r.AddWarning("b.md", "description", "is recommended", nil)
	assert.False(t, r.HasErrors())
	assert.True(t, r.HasWarnings())

	r.AddError("a.md", "name", "is required", nil)
	r.AddInfo("a.md", "", "note", nil)
	assert.True(t, r.HasErrors())
	assert.Len(t, r.Errors(), 1)
	assert.Len(t, r.Warnings(), 1)

	var nilResult *Result
	assert.False(t, nilResult.HasErrors())
	assert.Nil(t, nilResult.Errors())
}

func TestResult_MergeAndSort(t *testing.T) {
	a := &Result{Files: 1}
	a.AddWarning("z.md", "description", "missing", nil)
	b := &Result{Files: 2}
	b.AddWarning("a.md", "", "second", nil)
	b.AddError("a.md", "name", "first", nil)
	b.AddWarning("a.md", "", "third", nil)

	a.Merge(b)
	a.Merge(nil)
	a.Sort()

	require.Len(t, a.Issues, 4)
	assert.Equal(t, 3, a.Files)
	got := make([]string, 0, len(a.Issues))
	for _, i := range a.Issues {
		got = append(got, i.Path+":"+i.Message)
	}
	assert.Equal(t, []string{"a.md:first", "a.md:second", "a.md:third", "z.md:missing"}, got)
}
