package doctor

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockCheck struct {
	mock.Mock
}

func (m *mockCheck) Name() string     { return m.Called().String(0) }
func (m *mockCheck) Category() string { return m.Called().String(0) }

func (m *mockCheck) Run() *CheckResult {
	res, _ := m.Called().Get(0).(*CheckResult)
	return res
}

func newMockCheck(t *testing.T, name string, result *CheckResult) *mockCheck {
	t.Helper()
	m := &mockCheck{}
	m.On("Name").Return(name).Maybe()
	m.On("Category").Return("test").Maybe()
	m.On("Run").Return(result).Once()
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func TestSeverity_String(t *testing.T) {
	tests := []struct {
		sev  Severity
		want string
	}{
		{SeverityPass, "pass"},
		{SeverityInfo, "info"},
		{SeverityWarning, "warning"},
		{SeverityError, "error"},
		{Severity(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.sev.String(); got != tt.want {
			t.Errorf("Severity(%d).String() = %q, want %q", tt.sev, got, tt.want)
		}
	}
}

func TestRunner_Run(t *testing.T) {
	tests := []struct {
		name         string
		statuses     []Severity
		wantPassed   int
		wantInfo     int
		wantWarnings int
		wantErrors   int
	}{
		{name: "empty runner"},
		{name: "all pass", statuses: []Severity{SeverityPass, SeverityPass}, wantPassed: 2},
		{
			name:         "mixed",
			statuses:     []Severity{SeverityPass, SeverityInfo, SeverityWarning, SeverityError, SeverityError},
			wantPassed:   1,
			wantInfo:     1,
			wantWarnings: 1,
			wantErrors:   2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRunner()
			for _, s := range tt.statuses {
				r.AddCheck(newMockCheck(t, "c", &CheckResult{Name: "c", Category: "test", Status: s}))
			}

			report := r.Run()
			assert.Len(t, report.Results, len(tt.statuses))
			assert.Equal(t, tt.wantPassed, report.Summary.Passed)
			assert.Equal(t, tt.wantInfo, report.Summary.Info)
			assert.Equal(t, tt.wantWarnings, report.Summary.Warnings)
			assert.Equal(t, tt.wantErrors, report.Summary.Errors)
			assert.Equal(t, tt.wantErrors > 0, report.HasErrors())
			assert.Equal(t, tt.wantWarnings > 0, report.HasWarnings())
		})
	}
}

func TestRunner_Run_FillsNameAndOrder(t *testing.T) {
	r := NewRunner(
		newMockCheck(t, "first", &CheckResult{Status: SeverityPass}),
		newMockCheck(t, "second", nil),
	)
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.FixedZone("x", 3600))
	r.now = func() time.Time { return fixed }

	report := r.Run()
	require.Len(t, report.Results, 2)
	assert.Equal(t, "first", report.Results[0].Name)
	assert.Equal(t, "test", report.Results[0].Category)
	assert.Equal(t, "second", report.Results[1].Name)
	assert.Equal(t, fixed.UTC(), report.Timestamp)
}

func sampleReport() *Report {
	r := NewRunner(
		staticCheck{&CheckResult{Name: "config", Category: "config", Status: SeverityPass, Message: "loaded"}},
		staticCheck{&CheckResult{Name: "rules-file", Category: "rules", Status: SeverityInfo, Message: "no custom rules file configured"}},
		staticCheck{&CheckResult{Name: "settings", Category: "settings", Status: SeverityWarning, Message: "no bonitahooks hooks installed", FixHint: "generate"}},
	)
	return r.Run()
}

type staticCheck struct{ result *CheckResult }

func (s staticCheck) Name() string      { return s.result.Name }
func (s staticCheck) Category() string  { return s.result.Category }
func (s staticCheck) Run() *CheckResult { return s.result }

func TestWriteText(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	t.Run("problems only", func(t *testing.T) {
		var buf bytes.Buffer
		WriteText(&buf, sampleReport(), false)
		want := "⚠ [settings] settings: no bonitahooks hooks installed\n" +
			"  hint: generate\n" +
			"\n" +
			"Summary: 1 passed, 1 info, 1 warnings, 0 errors\n"
		assert.Equal(t, want, buf.String())
	})

	t.Run("verbose", func(t *testing.T) {
		var buf bytes.Buffer
		WriteText(&buf, sampleReport(), true)
		assert.Contains(t, buf.String(), "✓ [config] config: loaded\n")
		assert.Contains(t, buf.String(), "ℹ [rules] rules-file: no custom rules file configured\n")
	})
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleReport()))

	var decoded struct {
		Results []struct {
			Name   string `json:"name"`
			Status string `json:"status"`
		} `json:"results"`
		Summary Summary `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded.Results, 3)
	assert.Equal(t, "warning", decoded.Results[2].Status)
	assert.Equal(t, 1, decoded.Summary.Warnings)
}
