package validator

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Severity represents the impact of a validation issue.
type Severity int

const (
	// SeverityError indicates a blocking validation failure.
	SeverityError Severity = iota
	// SeverityWarning indicates a recommended but non-blocking issue.
	SeverityWarning
	// SeverityInfo indicates an informational note.
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return "unknown"
	}
}

// MarshalText renders the severity by name in JSON reports.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Issue represents a single validation problem.
type Issue struct {
	Severity Severity `json:"severity"`
	// Path is the file the issue was found in.
	Path string `json:"path"`
	// Field is the frontmatter field at fault, if any.
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	// Value is the offending value, if any.
	Value any `json:"value,omitempty"`
}

// Error implements the error interface.
func (i Issue) Error() string {
	var sb strings.Builder
	if i.Path != "" {
		sb.WriteString(i.Path)
		sb.WriteString(": ")
	}
	sb.WriteString(i.Severity.String())
	sb.WriteString(": ")
	if i.Field != "" {
		sb.WriteString("field \"")
		sb.WriteString(i.Field)
		sb.WriteString("\": ")
	}
	sb.WriteString(i.Message)
	if i.Value != nil {
		fmt.Fprintf(&sb, " (got %v)", i.Value)
	}
	return sb.String()
}

// Result aggregates validation issues.
type Result struct {
	// Files is the number of files examined.
	Files  int     `json:"files"`
	Issues []Issue `json:"issues"`
}

// Add appends an issue.
func (r *Result) Add(sev Severity, path, field, message string, value any) {
	r.Issues = append(r.Issues, Issue{
		Severity: sev,
		Path:     path,
		Field:    field,
		Message:  message,
		Value:    value,
	})
}

// AddError adds an error issue to the result.
func (r *Result) AddError(path, field, message string, value any) {
	r.Add(SeverityError, path, field, message, value)
}

// AddWarning adds a warning issue to the result.
func (r *Result) AddWarning(path, field, message string, value any) {
	r.Add(SeverityWarning, path, field, message, value)
}

// AddInfo adds an info issue to the result.
func (r *Result) AddInfo(path, field, message string, value any) {
	r.Add(SeverityInfo, path, field, message, value)
}

// Merge appends every issue of other and adds its file count.
func (r *Result) Merge(other *Result) {
	if other == nil {
		return
	}
	r.Files += other.Files
	r.Issues = append(r.Issues, other.Issues...)
}

// Sort orders issues by path, then severity, then field. Issues that compare
// equal keep their insertion order.
func (r *Result) Sort() {
	slices.SortStableFunc(r.Issues, func(a, b Issue) int {
		return cmp.Or(
			cmp.Compare(a.Path, b.Path),
			cmp.Compare(a.Severity, b.Severity),
			cmp.Compare(a.Field, b.Field),
		)
	})
}

// HasErrors returns true if any issue has SeverityError.
func (r *Result) HasErrors() bool {
	return r.count(SeverityError) > 0
}

// HasWarnings returns true if any issue has SeverityWarning.
func (r *Result) HasWarnings() bool {
	return r.count(SeverityWarning) > 0
}

// Errors returns all issues with SeverityError.
func (r *Result) Errors() []Issue {
	return r.filter(SeverityError)
}

// Warnings returns all issues with SeverityWarning.
func (r *Result) Warnings() []Issue {
	return r.filter(SeverityWarning)
}

func (r *Result) count(sev Severity) int {
	if r == nil {
		return 0
	}
	n := 0
	for _, i := range r.Issues {
		if i.Severity == sev {
			n++
		}
	}
	return n
}

func (r *Result) filter(sev Severity) []Issue {
	if r == nil {
		return nil
	}
	var res []Issue
	for _, i := range r.Issues {
		if i.Severity == sev {
			res = append(res, i)
		}
	}
	return res
}
