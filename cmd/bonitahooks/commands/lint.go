package commands

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/bonitahooks/internal/errors"
	"github.com/thoreinstein/bonitahooks/internal/lint"
	"github.com/thoreinstein/bonitahooks/internal/logging"
	"github.com/thoreinstein/bonitahooks/internal/validator"
)

var lintJSON bool

func init() {
	lintCmd.Flags().BoolVar(&lintJSON, "json", false,
		"output results as JSON")
	rootCmd.AddCommand(lintCmd)
}

var lintCmd = &cobra.Command{
	Use:   "lint [dir]",
	Short: "Validate skills, slash commands and agents",
	Long: `Validate the Markdown assets under dir (default: .claude):

  skills/<name>/SKILL.md  frontmatter with a kebab-case name matching the
                          directory and a description; a heading in the body
  commands/**/*.md        non-empty body; a description is recommended
  agents/*.md             a name; a description is recommended

Exit codes:
  0 - No errors (warnings allowed)
  1 - At least one error`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLint,
}

func runLint(c *cobra.Command, args []string) error {
	root := ".claude"
	if len(args) == 1 {
		root = args[0]
	}

	l := lint.New(
		lint.WithMaxFileSize(activeConfig().MaxFileSize),
		lint.WithLogger(logging.FromContext(c.Context())),
	)
	res, err := l.Dir(c.Context(), root)
	if err != nil {
		return errors.NewUserError(err, "Pass the directory holding skills/, commands/ and agents/")
	}

	format := validator.FormatText
	if lintJSON {
		format = validator.FormatJSON
	}
	if err := validator.NewReporter(c.OutOrStdout(), format).Report(res); err != nil {
		return err
	}

	if res.HasErrors() {
		return errors.NewExitError(nil, errors.ExitUser)
	}
	return nil
}
