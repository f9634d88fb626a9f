package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/thoreinstein/bonitahooks/internal/errors"
	"github.com/thoreinstein/bonitahooks/internal/logging"
	"github.com/thoreinstein/bonitahooks/internal/rule"
)

// renderMarkdown renders content for w: styled and wrapped to the terminal
// width on a TTY, plain otherwise.
func renderMarkdown(content string, w io.Writer) (string, error) {
	style := glamour.WithStandardStyle("notty")
	if logging.SupportsColor(w) {
		style = glamour.WithAutoStyle()
	}

	r, err := glamour.NewTermRenderer(
		style,
		glamour.WithWordWrap(logging.Width(w)),
	)
	if err != nil {
		return "", errors.Wrap(err, "creating markdown renderer")
	}

	rendered, err := r.Render(content)
	if err != nil {
		return "", errors.Wrap(err, "rendering markdown")
	}

	// glamour adds trailing newlines; normalize to a single trailing newline.
	return strings.TrimRight(rendered, "\n") + "\n", nil
}

// pickCheck lets the user fuzzy-search checks with a guidance preview and
// prints the chosen check's guidance.
func pickCheck(w io.Writer, refs []rule.CheckRef) error {
	if len(refs) == 0 {
		fmt.Fprintln(w, "No checks found.")
		return nil
	}

	idx, err := fuzzyfinder.Find(
		refs,
		func(i int) string {
			return fmt.Sprintf("%s: %s", refs[i].Check.ID, refs[i].Check.Message)
		},
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i == -1 {
				return ""
			}
			return checkMarkdown(refs[i].Check, refs[i].Sets)
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil
		}
		return errors.Wrap(err, "interactive picker failed")
	}

	out, err := renderMarkdown(checkMarkdown(refs[idx].Check, refs[idx].Sets), w)
	if err != nil {
		return err
	}
	fmt.Fprint(w, out)
	return nil
}
