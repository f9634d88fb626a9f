// Package cmd holds build metadata injected via ldflags:
//
//	go build -ldflags "-X github.com/thoreinstein/bonitahooks/cmd.Version=v1.2.0"
package cmd

import "fmt"

// Build-time variables set via ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info returns the multi-line version banner.
func Info() string {
	return fmt.Sprintf("bonitahooks version %s\n  commit: %s\n  built:  %s\n", Version, Commit, Date)
}
