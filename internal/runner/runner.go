// Package runner dispatches a hook invocation: it decodes the envelope,
// applies the rule-set path filters, reads the edited file once and writes
// one warning line per fired check.
//
// Hooks are advisory. Run never fails and always reports ExitSuccess; every
// problem (bad input, unknown set, unreadable file) degrades to no output.
package runner

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/thoreinstein/bonitahooks/internal/errors"
	"github.com/thoreinstein/bonitahooks/internal/hook"
	"github.com/thoreinstein/bonitahooks/internal/report"
	"github.com/thoreinstein/bonitahooks/internal/rule"
	"github.com/thoreinstein/bonitahooks/pkg/fileutil"
)

// FileReader reads the file under inspection.
type FileReader interface {
	ReadFile(path string, limit int64) ([]byte, error)
}

type osReader struct{}

func (osReader) ReadFile(path string, limit int64) ([]byte, error) {
	return fileutil.ReadFileWithLimit(path, limit)
}

// Runner evaluates rule sets against edited files.
type Runner struct {
	registry *rule.Registry
	reader   FileReader
	glyph    string
	maxSize  int64
	logger   *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithReader replaces the file reader.
func WithReader(fr FileReader) Option {
	return func(r *Runner) { r.reader = fr }
}

// WithGlyph sets the warning line prefix.
func WithGlyph(glyph string) Option {
	return func(r *Runner) { r.glyph = glyph }
}

// WithMaxFileSize sets the largest file that will be read.
func WithMaxFileSize(n int64) Option {
	return func(r *Runner) { r.maxSize = n }
}

// WithLogger sets the logger used for debug tracing.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) { r.logger = l }
}

// New creates a Runner over registry.
func New(registry *rule.Registry, opts ...Option) *Runner {
	r := &Runner{
		registry: registry,
		reader:   osReader{},
		glyph:    report.DefaultGlyph,
		maxSize:  fileutil.MaxFileSize,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run handles one hook invocation. The envelope is read from stdin and
// warnings are written to stderr. With no setNames every registered set
// whose filter matches the path is applied.
func (r *Runner) Run(ctx context.Context, stdin io.Reader, stderr io.Writer, setNames ...string) int {
	in, err := hook.Read(stdin)
	if err != nil {
		r.logger.Debug("ignoring hook input", "error", err)
		return errors.ExitSuccess
	}

	path := in.FilePath()
	if path == "" {
		r.logger.Debug("no file path in hook input", "tool", in.ToolName, "event", in.HookEventName)
		return errors.ExitSuccess
	}
	if !filepath.IsAbs(path) && in.CWD != "" {
		path = filepath.Join(in.CWD, path)
	}

	findings, err := r.CheckFile(ctx, path, setNames...)
	if err != nil {
		r.logger.Debug("skipping file", "path", path, "error", err)
		return errors.ExitSuccess
	}

	buf := report.New(r.glyph)
	for _, f := range findings {
		buf.Add(path, f.Message)
	}
	if _, err := buf.WriteTo(stderr); err != nil {
		r.logger.Debug("writing warnings", "error", err)
	}

	r.logger.Debug("hook finished", "path", path, "warnings", buf.Len())
	return errors.ExitSuccess
}

// CheckFile evaluates the selected sets against the file at path and returns
// the findings, de-duplicated by check ID. A path outside every selected
// set's filter yields no findings and does not touch the file system.
func (r *Runner) CheckFile(ctx context.Context, path string, setNames ...string) ([]rule.Finding, error) {
	sets, err := r.applicable(path, setNames)
	if err != nil {
		return nil, err
	}
	if len(sets) == 0 {
		return nil, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "before reading file")
	}

	data, err := r.reader.ReadFile(path, r.maxSize)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	src := rule.NewSource(path, data)

	var findings []rule.Finding
	seen := make(map[string]bool)
	for _, s := range sets {
		r.logger.Debug("evaluating", "set", s.Name, "path", path)
		for _, f := range s.Evaluate(src) {
			if seen[f.CheckID] {
				continue
			}
			seen[f.CheckID] = true
			findings = append(findings, f)
		}
	}
	return findings, nil
}

func (r *Runner) applicable(path string, setNames []string) ([]*rule.Set, error) {
	if len(setNames) == 0 {
		return r.registry.Matching(path), nil
	}
	selected, err := r.registry.Select(setNames...)
	if err != nil {
		return nil, err
	}
	var out []*rule.Set
	for _, s := range selected {
		if s.Matches(path) {
			out = append(out, s)
		}
	}
	return out, nil
}
