package logging

import (
	"io"
	"os"

	"golang.org/x/term"
)

// DefaultWidth is used when the terminal width cannot be determined.
const DefaultWidth = 80

func fd(w io.Writer) (int, bool) {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return 0, false
	}
	return int(f.Fd()), true
}

// IsTTY reports whether w is a terminal.
func IsTTY(w io.Writer) bool {
	n, ok := fd(w)
	return ok && term.IsTerminal(n)
}

// SupportsColor reports whether w should receive ANSI colour codes.
// NO_COLOR and TERM=dumb disable colour regardless of the writer.
func SupportsColor(w io.Writer) bool {
	return supportsColor(IsTTY(w))
}

func supportsColor(isTTY bool) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return isTTY
}

// Width returns the column count of the terminal behind w, or DefaultWidth.
func Width(w io.Writer) int {
	n, ok := fd(w)
	if !ok || !term.IsTerminal(n) {
		return DefaultWidth
	}
	cols, _, err := term.GetSize(n)
	if err != nil || cols <= 0 {
		return DefaultWidth
	}
	return cols
}
