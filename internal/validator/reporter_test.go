package validator

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noColor(t *testing.T) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
}

func TestReporter_TextPassed(t *testing.T) {
	noColor(t)
	var buf bytes.Buffer

	require.NoError(t, NewReporter(&buf, FormatText).Report(&Result{Files: 3}))
	assert.Equal(t, "✓ 3 file(s) validated\n", buf.String())
}

func TestReporter_TextGroupsByFile(t *testing.T) {
	noColor(t)
	res := &Result{Files: 2}
	res.AddError("a.md", "name", "is required", nil)
	res.AddWarning("a.md", "", "body has no heading", nil)
	res.AddWarning("b.md", "description", "is recommended", nil)

	var buf bytes.Buffer
	require.NoError(t, NewReporter(&buf, FormatText).Report(res))

	want := "a.md\n" +
		"  error name: is required\n" +
		"  warning body has no heading\n" +
		"\n" +
		"b.md\n" +
		"  warning description: is recommended\n" +
		"\n" +
		"2 file(s) checked: 1 error(s), 2 warning(s)\n"
	assert.Equal(t, want, buf.String())
}

func TestReporter_TruncatesValues(t *testing.T) {
	noColor(t)
	res := &Result{Files: 1}
	res.AddError("a.md", "name", "is too long", string(bytes.Repeat([]byte("x"), 80)))

	var buf bytes.Buffer
	require.NoError(t, NewReporter(&buf, FormatText).Report(res))
	assert.Contains(t, buf.String(), "["+string(bytes.Repeat([]byte("x"), 47))+"...]")
}

func TestReporter_JSON(t *testing.T) {
	res := &Result{Files: 1}
	res.AddError("a.md", "name", "is required", nil)

	var buf bytes.Buffer
	require.NoError(t, NewReporter(&buf, FormatJSON).Report(res))

	var decoded struct {
		Files  int `json:"files"`
		Issues []struct {
			Severity string `json:"severity"`
			Path     string `json:"path"`
			Field    string `json:"field"`
		} `json:"issues"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 1, decoded.Files)
	require.Len(t, decoded.Issues, 1)
	assert.Equal(t, "error", decoded.Issues[0].Severity)
	assert.Equal(t, "a.md", decoded.Issues[0].Path)
}

func TestReporter_JSONEmptyIssuesIsArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewReporter(&buf, FormatJSON).Report(&Result{}))
	assert.Contains(t, buf.String(), `"issues": []`)
}

func TestReporter_NilResult(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewReporter(&buf, FormatText).Report(nil))
	assert.Empty(t, buf.String())
}
