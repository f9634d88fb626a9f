// Command bonitahooks checks Java sources edited by an AI coding assistant
// against Bonita project conventions.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/thoreinstein/bonitahooks/cmd/bonitahooks/commands"
	"github.com/thoreinstein/bonitahooks/internal/errors"
)

func main() {
	err := commands.Execute()
	if err == nil {
		return
	}

	var exitErr *errors.ExitError
	if errors.As(err, &exitErr) && exitErr.Err == nil {
		os.Exit(exitErr.Code)
	}

	fmt.Fprintln(os.Stderr, color.RedString("Error:"), err)
	if errors.As(err, &exitErr) && exitErr.Suggestion != "" {
		fmt.Fprintln(os.Stderr, exitErr.Suggestion)
	}
	os.Exit(errors.ExitCode(err))
}
