package commands

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/bonitahooks/internal/config"
	"github.com/thoreinstein/bonitahooks/internal/doctor"
	"github.com/thoreinstein/bonitahooks/internal/errors"
	"github.com/thoreinstein/bonitahooks/internal/paths"
	"github.com/thoreinstein/bonitahooks/internal/rule"
	"github.com/thoreinstein/bonitahooks/internal/settings"
)

var (
	doctorJSON    bool
	doctorVerbose bool
	doctorBinary  string
)

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false,
		"output results as JSON")
	doctorCmd.Flags().BoolVar(&doctorVerbose, "all", false,
		"show every check, including passed ones")
	doctorCmd.Flags().StringVar(&doctorBinary, "binary", settings.DefaultBinary,
		"command name hooks use to invoke bonitahooks")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose configuration issues",
	Long: `Run diagnostic checks on the bonitahooks configuration, the custom rules
file and the hook wiring in .claude/settings.json.

Exit codes:
  0 - No errors or warnings
  1 - Warnings present, no errors
  2 - Errors present`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func runDoctor(c *cobra.Command, _ []string) error {
	cfg := activeConfig()

	// Settings references are resolved against the sets the hook would see,
	// falling back to built-in sets when the rules file is broken.
	reg, err := rule.Assemble(cfg.RulesPath(), nil)
	if err != nil {
		reg = rule.Builtin()
	}

	runner := doctor.NewRunner(
		doctor.NewConfigCheck(func() (*config.Config, error) {
			return loadedConfig, configLoadErr
		}, reg),
		doctor.NewRulesFileCheck(cfg.RulesPath(), rule.Builtin()),
		doctor.NewSettingsCheck(paths.SettingsPath("."), reg, doctorBinary),
	)
	report := runner.Run()

	if doctorJSON {
		if err := doctor.WriteJSON(c.OutOrStdout(), report); err != nil {
			return err
		}
	} else {
		doctor.WriteText(c.OutOrStdout(), report, doctorVerbose)
	}

	switch {
	case report.HasErrors():
		return errors.NewExitError(nil, errors.ExitSystem)
	case report.HasWarnings():
		return errors.NewExitError(nil, errors.ExitUser)
	}
	return nil
}
