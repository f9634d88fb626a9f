package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
)

// Format specifies the output format for validation reports.
type Format string

const (
	// FormatText produces human-readable text output.
	FormatText Format = "text"
	// FormatJSON produces machine-readable JSON output.
	FormatJSON Format = "json"
)

// maxValueLen bounds how much of an offending value is echoed in text output.
const maxValueLen = 50

// Reporter formats and writes validation results.
type Reporter struct {
	out    io.Writer
	format Format
}

// NewReporter creates a new Reporter.
func NewReporter(out io.Writer, format Format) *Reporter {
	return &Reporter{
		out:    out,
		format: format,
	}
}

// Report writes the validation result to the output.
func (r *Reporter) Report(result *Result) error {
	if result == nil {
		return nil
	}

	switch r.format {
	case FormatJSON:
		return r.reportJSON(result)
	default:
		return r.reportText(result)
	}
}

func (r *Reporter) reportJSON(result *Result) error {
	if result.Issues == nil {
		result = &Result{Files: result.Files, Issues: []Issue{}}
	}
	encoder := json.NewEncoder(r.out)
	encoder.SetIndent("", "  ")
	return errors.Wrap(encoder.Encode(result), "encoding JSON report")
}

// reportText prints issues grouped by file, in the order they are stored.
func (r *Reporter) reportText(result *Result) error {
	errs := result.Errors()
	warnings := result.Warnings()

	if len(errs) == 0 && len(warnings) == 0 {
		fmt.Fprintln(r.out, color.GreenString("✓ %d file(s) validated", result.Files))
		return nil
	}

	current := ""
	for _, i := range result.Issues {
		if i.Severity == SeverityInfo {
			continue
		}
		if i.Path != current {
			if current != "" {
				fmt.Fprintln(r.out)
			}
			current = i.Path
			fmt.Fprintln(r.out, color.New(color.Bold).Sprint(current))
		}
		r.printIssue(i)
	}
	fmt.Fprintln(r.out)

	summary := []string{}
	if len(errs) > 0 {
		summary = append(summary, color.RedString("%d error(s)", len(errs)))
	}
	if len(warnings) > 0 {
		summary = append(summary, color.YellowString("%d warning(s)", len(warnings)))
	}
	fmt.Fprintf(r.out, "%d file(s) checked: %s\n", result.Files, strings.Join(summary, ", "))

	return nil
}

func (r *Reporter) printIssue(i Issue) {
	c := color.FgYellow
	if i.Severity == SeverityError {
		c = color.FgRed
	}
	printer := color.New(c).SprintFunc()

	var sb strings.Builder
	sb.WriteString("  ")
	sb.WriteString(printer(i.Severity.String()))
	sb.WriteString(" ")

	if i.Field != "" {
		sb.WriteString(i.Field)
		sb.WriteString(": ")
	}

	sb.WriteString(i.Message)

	if i.Value != nil {
		valStr := fmt.Sprintf("%v", i.Value)
		if len(valStr) > maxValueLen {
			valStr = valStr[:maxValueLen-3] + "..."
		}
		sb.WriteString(color.New(color.FgHiBlack).Sprintf(" [%s]", valStr))
	}

	fmt.Fprintln(r.out, sb.String())
}
