package lint

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/thoreinstein/bonitahooks/internal/logging"
	"github.com/thoreinstein/bonitahooks/internal/validator"
	"github.com/thoreinstein/bonitahooks/pkg/fileutil"
)

// DefaultConcurrency bounds how many files are read at once.
const DefaultConcurrency = 8

// Linter validates Markdown assets.
type Linter struct {
	concurrency int
	maxSize     int64
	logger      *slog.Logger
}

// Option configures a Linter.
type Option func(*Linter)

// WithConcurrency sets the number of files processed in parallel.
func WithConcurrency(n int) Option {
	return func(l *Linter) {
		if n > 0 {
			l.concurrency = n
		}
	}
}

// WithMaxFileSize sets the largest file that will be read.
func WithMaxFileSize(n int64) Option {
	return func(l *Linter) { l.maxSize = n }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Linter) { l.logger = logger }
}

// New creates a Linter.
func New(opts ...Option) *Linter {
	l := &Linter{
		concurrency: DefaultConcurrency,
		maxSize:     fileutil.MaxFileSize,
		logger:      logging.NewDiscard(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Dir lints every asset under root.
func (l *Linter) Dir(ctx context.Context, root string) (*validator.Result, error) {
	targets, err := Discover(root)
	if err != nil {
		return nil, err
	}
	l.logger.Debug("discovered assets", "root", root, "count", len(targets))
	return l.Targets(ctx, targets)
}

// Targets lints the given files. Per-file problems are issues in the result;
// only cancellation returns an error.
func (l *Linter) Targets(ctx context.Context, targets []Target) (*validator.Result, error) {
	results := make([]validator.Result, len(targets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.concurrency)
	for i, t := range targets {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			l.File(t, &results[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &validator.Result{Files: len(targets)}
	for i := range results {
		res.Merge(&results[i])
	}
	res.Sort()
	return res, nil
}

// File lints a single target into res.
func (l *Linter) File(t Target, res *validator.Result) {
	content, err := fileutil.ReadFileWithLimit(t.Path, l.maxSize)
	if err != nil {
		res.AddError(t.Path, "", "cannot read file: "+err.Error(), nil)
		return
	}
	l.logger.Debug("linting", "path", t.Path, "kind", t.Kind)

	switch t.Kind {
	case KindSkill:
		lintSkill(t.Path, content, res)
	case KindCommand:
		lintCommand(t.Path, content, res)
	case KindAgent:
		lintAgent(t.Path, content, res)
	}
}
