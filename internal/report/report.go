// Package report accumulates advisory warning lines for a single hook run.
package report

import (
	"io"
	"path/filepath"
	"strings"
)

// DefaultGlyph prefixes every warning line.
const DefaultGlyph = "⚠️"

// Buffer is an append-only list of warning lines. The zero value is ready to
// use with DefaultGlyph.
type Buffer struct {
	Glyph string
	lines []string
}

// New returns a Buffer using glyph, or DefaultGlyph when glyph is empty.
func New(glyph string) *Buffer {
	return &Buffer{Glyph: glyph}
}

// Add appends "<glyph> <base name of file>: <message>".
func (b *Buffer) Add(file, message string) {
	glyph := b.Glyph
	if glyph == "" {
		glyph = DefaultGlyph
	}
	b.lines = append(b.lines, glyph+" "+filepath.Base(file)+": "+message)
}

// Len returns the number of lines.
func (b *Buffer) Len() int {
	return len(b.lines)
}

// Lines returns a copy of the accumulated lines.
func (b *Buffer) Lines() []string {
	return append([]string(nil), b.lines...)
}

// String returns the lines joined by newlines, with a trailing newline when
// non-empty.
func (b *Buffer) String() string {
	if len(b.lines) == 0 {
		return ""
	}
	return strings.Join(b.lines, "\n") + "\n"
}

// WriteTo writes the buffer to w. Nothing is written when it is empty.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	if len(b.lines) == 0 {
		return 0, nil
	}
	n, err := io.WriteString(w, b.String())
	return int64(n), err
}
