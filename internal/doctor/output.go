package doctor

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/thoreinstein/bonitahooks/internal/errors"
)

// WriteJSON writes the report as indented JSON.
func WriteJSON(w io.Writer, report *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(report), "encoding JSON")
}

// WriteText writes errors and warnings, or every result when verbose, followed
// by a summary line.
func WriteText(w io.Writer, report *Report, verbose bool) {
	hasOutput := false
	for _, result := range report.Results {
		problem := result.Status == SeverityError || result.Status == SeverityWarning
		if !verbose && !problem {
			continue
		}

		hasOutput = true
		fmt.Fprintf(w, "%s [%s] %s: %s\n", statusIcon(result.Status), result.Category, result.Name, result.Message)
		if result.FixHint != "" && problem {
			fmt.Fprintf(w, "  hint: %s\n", result.FixHint)
		}
	}

	if hasOutput {
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Summary: %d passed, %d info, %d warnings, %d errors\n",
		report.Summary.Passed, report.Summary.Info, report.Summary.Warnings, report.Summary.Errors)
}

func statusIcon(s Severity) string {
	switch s {
	case SeverityPass:
		return color.GreenString("✓")
	case SeverityInfo:
		return color.CyanString("ℹ")
	case SeverityWarning:
		return color.YellowString("⚠")
	case SeverityError:
		return color.RedString("✗")
	default:
		return "?"
	}
}
