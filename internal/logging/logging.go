package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/thoreinstein/bonitahooks/internal/errors"
)

// Format specifies the output format for log messages.
type Format string

const (
	// FormatText produces human-readable text output.
	FormatText Format = "text"
	// FormatJSON produces machine-readable JSON output.
	FormatJSON Format = "json"
)

// LevelTrace is below Debug and enables the noisiest output (-vvv).
const LevelTrace = slog.LevelDebug - 4

// Config holds the configuration for creating a new logger.
type Config struct {
	// Level sets the minimum log level. Messages below this level are discarded.
	Level slog.Level
	// Format specifies the output format (text or JSON).
	Format Format
	// Output is where log messages are written. Defaults to os.Stderr if nil.
	Output io.Writer
}

// New creates a logger with the given configuration.
// Unknown formats fall back to FormatText.
func New(cfg Config) *slog.Logger {
	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: cfg.Level}

	var handler slog.Handler
	switch cfg.Format {
	case FormatJSON:
		handler = slog.NewJSONHandler(output, opts)
	default:
		handler = NewHandler(output, opts)
	}

	return slog.New(handler)
}

// NewDiscard creates a logger that discards all output.
func NewDiscard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// LevelFromVerbosity maps a -v count to a level.
// 0 (or less) is Warn, 1 is Info, 2 is Debug and anything higher is Trace.
func LevelFromVerbosity(v int) slog.Level {
	switch {
	case v <= 0:
		return slog.LevelWarn
	case v == 1:
		return slog.LevelInfo
	case v == 2:
		return slog.LevelDebug
	default:
		return LevelTrace
	}
}

// Options describes how the process logger should be assembled.
type Options struct {
	// Verbosity is the -v count.
	Verbosity int
	// Quiet restricts output to errors. It cannot be combined with Verbosity.
	Quiet bool
	// Format selects the primary handler format.
	Format Format
	// Output is the primary writer, usually the command's stderr.
	Output io.Writer
	// File, when set, receives a JSON copy of every record.
	File io.Writer
}

// ErrQuietVerbose is returned by Setup when Quiet and Verbosity are both set.
var ErrQuietVerbose = errors.New("cannot use --quiet and --verbose together")

// Setup builds a logger from opts. The BONITAHOOKS_DEBUG environment variable
// raises verbosity when no -v flag was given ("1"/"true" is Debug, "2" is Trace).
func Setup(opts Options) (*slog.Logger, error) {
	if opts.Quiet && opts.Verbosity > 0 {
		return nil, ErrQuietVerbose
	}

	level := slog.LevelError
	if !opts.Quiet {
		v := opts.Verbosity
		if v == 0 {
			switch os.Getenv("BONITAHOOKS_DEBUG") {
			case "1", "true":
				v = 2
			case "2":
				v = 3
			}
		}
		level = LevelFromVerbosity(v)
	}

	primary := New(Config{Level: level, Format: opts.Format, Output: opts.Output}).Handler()
	if opts.File == nil {
		return slog.New(primary), nil
	}

	fileHandler := slog.NewJSONHandler(opts.File, &slog.HandlerOptions{Level: level})
	return slog.New(NewMultiHandler(primary, fileHandler)), nil
}

type ctxKey struct{}

// NewContext returns a copy of ctx carrying logger.
func NewContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext returns the logger stored in ctx, or slog.Default().
func FromContext(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && l != nil {
			return l
		}
	}
	return slog.Default()
}

// testWriter adapts testing.T to io.Writer for use with slog handlers.
type testWriter struct {
	t *testing.T
}

func (w *testWriter) Write(p []byte) (n int, err error) {
	w.t.Helper()
	msg := string(p)
	if len(msg) > 0 && msg[len(msg)-1] == '\n' {
		msg = msg[:len(msg)-1]
	}
	w.t.Log(msg)
	return len(p), nil
}

// ForTest creates a Debug-level logger that writes to the test's log output.
func ForTest(t *testing.T) *slog.Logger {
	t.Helper()
	return New(Config{
		Level:  slog.LevelDebug,
		Format: FormatText,
		Output: &testWriter{t: t},
	})
}
