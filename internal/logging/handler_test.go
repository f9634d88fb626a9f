package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestHandler_Handle(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	now := time.Now()
	logger.Info("hello world", "foo", "value")

	output := buf.String()
	for _, want := range []string{"INFO", "hello world", "foo=value", now.Format(time.Kitchen)} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q: %q", want, output)
		}
	}
	if !strings.HasSuffix(output, "\n") {
		t.Errorf("output should end with newline: %q", output)
	}
}

func TestHandler_WithAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, nil)).With("set", "integration-test")

	logger.Info("message", "check", "no-thread-sleep")

	output := buf.String()
	if !strings.Contains(output, "set=integration-test") {
		t.Errorf("expected common attribute in output, got: %q", output)
	}
	if !strings.Contains(output, "check=no-thread-sleep") {
		t.Errorf("expected local attribute in output, got: %q", output)
	}
}

func TestHandler_WithGroup(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, nil)).WithGroup("hook")

	logger.Info("dispatch", "path", "/x/FooIT.java", slog.Group("input", "tool", "Edit"))

	output := buf.String()
	if !strings.Contains(output, "hook.path=/x/FooIT.java") {
		t.Errorf("expected group-prefixed key, got: %q", output)
	}
	if !strings.Contains(output, "hook.input.tool=Edit") {
		t.Errorf("expected nested group key, got: %q", output)
	}
}

func TestHandler_Enabled(t *testing.T) {
	h := NewHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn})

	ctx := t.Context()
	if h.Enabled(ctx, slog.LevelInfo) {
		t.Error("expected Info level to be disabled when min level is Warn")
	}
	if !h.Enabled(ctx, slog.LevelWarn) {
		t.Error("expected Warn level to be enabled")
	}
}

func TestHandler_NoTime(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, nil)

	r := slog.NewRecord(time.Time{}, slog.LevelInfo, "no time", 0)
	if err := h.Handle(t.Context(), r); err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	if got := buf.String(); !strings.HasPrefix(got, "INFO") {
		t.Errorf("expected record to start with level, got: %q", got)
	}
}

func TestHandler_TraceLevelName(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, &slog.HandlerOptions{Level: LevelTrace}))

	logger.Log(t.Context(), LevelTrace, "deep")

	if !strings.Contains(buf.String(), "TRACE") {
		t.Errorf("expected TRACE level name, got: %q", buf.String())
	}
}

func TestHandler_Redaction(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, nil))

	logger.Info("sensitive data", "api_key", "secret12345", "foo", "ghp_secrettoken")

	output := buf.String()
	if strings.Contains(output, "secret12345") || strings.Contains(output, "ghp_secrettoken") {
		t.Errorf("sensitive values should be redacted: %q", output)
	}
	if !strings.Contains(output, "api_key=****2345") {
		t.Errorf("expected masked api_key, got: %q", output)
	}
	if !strings.Contains(output, "foo=****oken") {
		t.Errorf("expected masked token value, got: %q", output)
	}
}
