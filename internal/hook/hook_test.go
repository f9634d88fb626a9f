package hook

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_FilePath(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "edit event",
			input: `{"session_id":"s1","hook_event_name":"PostToolUse","tool_name":"Edit","tool_input":{"file_path":"/src/test/java/pkg/FooIT.java","old_string":"a"}}`,
			want:  "/src/test/java/pkg/FooIT.java",
		},
		{name: "minimal", input: `{"tool_input":{"file_path":"/a/B.java"}}`, want: "/a/B.java"},
		{name: "empty input", input: ``, want: ""},
		{name: "malformed json", input: `{"tool_input":`, want: ""},
		{name: "not an object", input: `["x"]`, want: ""},
		{name: "missing tool_input", input: `{"tool_name":"Bash"}`, want: ""},
		{name: "tool_input not an object", input: `{"tool_input":"x"}`, want: ""},
		{name: "file_path not a string", input: `{"tool_input":{"file_path":42}}`, want: ""},
		{name: "file_path null", input: `{"tool_input":{"file_path":null}}`, want: ""},
		{name: "bash command only", input: `{"tool_input":{"command":"ls"}}`, want: ""},
		{name: "notebook edit is not a file edit", input: `{"tool_name":"NotebookEdit","tool_input":{"notebook_path":"/a/B.java"}}`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decode(strings.NewReader(tt.input))
			assert.Equal(t, tt.want, got.FilePath())
		})
	}
}

func TestRead_Fields(t *testing.T) {
	in, err := Read(strings.NewReader(`{"session_id":"abc","hook_event_name":"PostToolUse","tool_name":"Write","cwd":"/work","tool_input":{"file_path":"/work/X.java"}}`))
	require.NoError(t, err)

	assert.Equal(t, "abc", in.SessionID)
	assert.Equal(t, EventPostToolUse, in.HookEventName)
	assert.Equal(t, "Write", in.ToolName)
	assert.Equal(t, "/work", in.CWD)
	assert.Equal(t, "/work/X.java", in.FilePath())
}

func TestRead_Errors(t *testing.T) {
	for _, input := range []string{"", "{", "null x"} {
		in, err := Read(strings.NewReader(input))
		assert.Error(t, err, "input %q", input)
		assert.Empty(t, in.FilePath())
	}
}

func TestRead_SizeLimit(t *testing.T) {
	huge := `{"tool_input":{"file_path":"/a.java"},"pad":"` + strings.Repeat("x", MaxInputSize) + `"}`
	_, err := Read(strings.NewReader(huge))
	assert.Error(t, err, "truncated input should fail to parse")
}
