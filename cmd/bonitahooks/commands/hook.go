package commands

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/bonitahooks/internal/logging"
	"github.com/thoreinstein/bonitahooks/internal/rule"
	"github.com/thoreinstein/bonitahooks/internal/runner"
)

func init() {
	rootCmd.AddCommand(hookCmd)
}

var hookCmd = &cobra.Command{
	Use:   "hook [set...]",
	Short: "Check the file named by a hook envelope read from stdin",
	Long: `Read a PostToolUse hook envelope from stdin and check the file named by
tool_input.file_path.

With set names, only those rule sets are applied, and only when their path
filter matches. Without arguments every rule set whose filter matches the
path is applied.

Violations are written to stderr, one line per check. The command always
exits 0: malformed input, unknown sets, unreadable files and config
problems are ignored so the assistant is never blocked. Run with -vv to see
why a file was skipped.`,
	Example: `  echo '{"tool_input":{"file_path":"/work/src/test/java/LoanIT.java"}}' | bonitahooks hook integration-test`,
	RunE: runHook,
}

func runHook(c *cobra.Command, args []string) error {
	logger := logging.FromContext(c.Context())
	cfg := activeConfig()
	if configLoadErr != nil {
		logger.Debug("config unavailable, using defaults", "error", configLoadErr)
	}

	reg, err := rule.Assemble(cfg.RulesPath(), cfg.DisabledChecks)
	if err != nil {
		logger.Debug("custom rules unavailable, using built-in sets", "error", err)
		reg = rule.Builtin().Without(cfg.DisabledChecks...)
	}

	r := runner.New(reg,
		runner.WithGlyph(cfg.Glyph),
		runner.WithMaxFileSize(cfg.MaxFileSize),
		runner.WithLogger(logger),
	)
	r.Run(c.Context(), c.InOrStdin(), c.ErrOrStderr(), args...)
	return nil
}
