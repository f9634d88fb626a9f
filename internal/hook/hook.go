// Package hook decodes the JSON envelope an AI assistant writes to a hook's
// standard input.
//
// Decoding is deliberately permissive: hooks are advisory, so any input that
// cannot be understood is treated as "no file path" and the caller exits
// quietly.
package hook

import (
	"encoding/json"
	"io"

	"github.com/thoreinstein/bonitahooks/internal/errors"
)

// MaxInputSize bounds how much of stdin is read.
const MaxInputSize = 1 << 20

// Event names the host uses for the hook_event_name field.
const (
	EventPostToolUse = "PostToolUse"
	EventPreToolUse  = "PreToolUse"
)

// Input is the subset of the envelope bonitahooks understands.
type Input struct {
	SessionID     string          `json:"session_id,omitempty"`
	HookEventName string          `json:"hook_event_name,omitempty"`
	ToolName      string          `json:"tool_name,omitempty"`
	CWD           string          `json:"cwd,omitempty"`
	ToolInput     json.RawMessage `json:"tool_input,omitempty"`
}

// toolInput holds the fields of tool_input that are read. FilePath is left
// as raw JSON so a non-string value does not fail the whole decode.
type toolInput struct {
	FilePath json.RawMessage `json:"file_path"`
}

// FilePath returns tool_input.file_path, or "" if it is absent or not a string.
func (in Input) FilePath() string {
	if len(in.ToolInput) == 0 {
		return ""
	}
	var ti toolInput
	if err := json.Unmarshal(in.ToolInput, &ti); err != nil || len(ti.FilePath) == 0 {
		return ""
	}
	var path string
	if err := json.Unmarshal(ti.FilePath, &path); err != nil {
		return ""
	}
	return path
}

// Read decodes an envelope from r. On any failure it returns the zero Input
// together with the cause, which callers typically only log.
func Read(r io.Reader) (Input, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxInputSize))
	if err != nil {
		return Input{}, errors.Wrap(err, "reading hook input")
	}
	if len(data) == 0 {
		return Input{}, errors.New("empty hook input")
	}

	var in Input
	if err := json.Unmarshal(data, &in); err != nil {
		return Input{}, errors.Wrap(err, "parsing hook input")
	}
	return in, nil
}

// Decode is Read without the error.
func Decode(r io.Reader) Input {
	in, _ := Read(r)
	return in
}
