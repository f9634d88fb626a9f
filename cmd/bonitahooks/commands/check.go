package commands

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/bonitahooks/internal/errors"
	"github.com/thoreinstein/bonitahooks/internal/git"
	"github.com/thoreinstein/bonitahooks/internal/logging"
	"github.com/thoreinstein/bonitahooks/internal/report"
	"github.com/thoreinstein/bonitahooks/internal/rule"
	"github.com/thoreinstein/bonitahooks/internal/runner"
)

var (
	checkSets    []string
	checkStrict  bool
	checkJSON    bool
	checkChanged bool
)

func init() {
	checkCmd.Flags().StringSliceVarP(&checkSets, "set", "s", nil,
		"rule set(s) to apply (default: every set matching the path)")
	checkCmd.Flags().BoolVar(&checkStrict, "strict", false,
		"exit 1 when any violation is found")
	checkCmd.Flags().BoolVar(&checkJSON, "json", false,
		"output results as JSON")
	checkCmd.Flags().BoolVar(&checkChanged, "changed", false,
		"also check files git reports as modified or untracked")
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check [file]...",
	Short: "Check files against the rule sets",
	Long: `Check one or more files directly, outside of a hook.

Warnings use the same format as the hook. Paths are made absolute before
the rule set path filters are applied. With --changed, the files git
reports as modified, staged or untracked are added, keeping only those a
rule set applies to.

Exit codes:
  0 - No violations, or violations without --strict
  1 - Violations found with --strict, or a file could not be read`,
	Example: `  bonitahooks check src/test/java/org/acme/LoanIT.java
  bonitahooks check --set unit-test --strict src/test/java/org/acme/*Test.java
  bonitahooks check --changed --strict`,
	Args: func(c *cobra.Command, args []string) error {
		if checkChanged {
			return nil
		}
		return cobra.MinimumNArgs(1)(c, args)
	},
	RunE: runCheck,
}

// fileResult is the JSON form of one checked file.
type fileResult struct {
	Path     string         `json:"path"`
	Findings []rule.Finding `json:"findings"`
	Error    string         `json:"error,omitempty"`
}

func runCheck(c *cobra.Command, args []string) error {
	reg, err := loadRegistry()
	if err != nil {
		return err
	}
	if _, err := reg.Select(checkSets...); err != nil {
		return errors.NewUserError(err, "Run 'bonitahooks rules list' to see rule sets")
	}

	cfg := activeConfig()
	r := runner.New(reg,
		runner.WithGlyph(cfg.Glyph),
		runner.WithMaxFileSize(cfg.MaxFileSize),
		runner.WithLogger(logging.FromContext(c.Context())),
	)

	if checkChanged {
		changed, err := changedFiles(c, reg)
		if err != nil {
			return err
		}
		args = append(args, changed...)
	}

	results := make([]fileResult, 0, len(args))
	buf := report.New(cfg.Glyph)
	var failed []string
	total := 0

	seen := make(map[string]bool, len(args))
	for _, arg := range args {
		path, err := filepath.Abs(arg)
		if err != nil {
			return errors.Wrapf(err, "resolving %s", arg)
		}
		key := path
		if resolved, err := filepath.EvalSymlinks(path); err == nil {
			key = resolved
		}
		if seen[key] {
			continue
		}
		seen[key] = true

		res := fileResult{Path: path, Findings: []rule.Finding{}}
		findings, err := r.CheckFile(c.Context(), path, checkSets...)
		if err != nil {
			res.Error = err.Error()
			failed = append(failed, arg)
		} else if len(findings) > 0 {
			res.Findings = findings
		}
		for _, f := range res.Findings {
			buf.Add(path, f.Message)
		}
		total += len(res.Findings)
		results = append(results, res)
	}

	if checkJSON {
		enc := json.NewEncoder(c.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return errors.Wrap(err, "encoding JSON")
		}
	} else {
		if _, err := buf.WriteTo(c.OutOrStdout()); err != nil {
			return errors.Wrap(err, "writing report")
		}
		for _, res := range results {
			if res.Error != "" {
				fmt.Fprintf(c.ErrOrStderr(), "%s: %s\n", res.Path, res.Error)
			}
		}
	}

	if len(failed) > 0 {
		return errors.NewUserError(errors.Newf("%d file(s) could not be checked", len(failed)), "")
	}
	if checkStrict && total > 0 {
		return errors.NewExitError(errors.ErrFindings, errors.ExitUser)
	}
	return nil
}

// changedFiles lists the git changes some rule set applies to.
func changedFiles(c *cobra.Command, reg *rule.Registry) ([]string, error) {
	files, err := git.Changed(c.Context(), ".")
	if errors.Is(err, git.ErrNotRepository) {
		return nil, errors.NewUserError(err, "Run --changed inside a git work tree")
	}
	if err != nil {
		return nil, errors.NewSystemError(err, "")
	}

	var out []string
	for _, f := range files {
		if len(reg.Matching(f)) > 0 {
			out = append(out, f)
		}
	}
	logging.FromContext(c.Context()).Debug("changed files", "total", len(files), "checked", len(out))
	return out, nil
}
