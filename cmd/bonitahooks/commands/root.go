// Package commands implements the CLI commands for bonitahooks.
package commands

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/bonitahooks/cmd"
	"github.com/thoreinstein/bonitahooks/internal/config"
	"github.com/thoreinstein/bonitahooks/internal/errors"
	"github.com/thoreinstein/bonitahooks/internal/logging"
	"github.com/thoreinstein/bonitahooks/internal/rule"
)

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// configPath holds the value of the --config flag.
var configPath string

// loadedConfig and configLoadErr hold the outcome of config loading.
var (
	loadedConfig  *config.Config
	configLoadErr error
)

// logFileHandle is the open --log-file, closed after the command runs.
var logFileHandle io.Closer

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"config file (default: .bonitahooks/config.yaml, then the user config dir)")

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("bonitahooks version {{.Version}}\n")

	// Silence errors and usage so main controls error output.
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func initConfig() {
	config.Init()
	loadedConfig, configLoadErr = config.Load(configPath)
}

var rootCmd = &cobra.Command{
	Use:   "bonitahooks",
	Short: "Convention checks for Bonita Java projects edited by an AI assistant",
	Long: `bonitahooks checks Java sources against Bonita project conventions.

It is meant to run as a PostToolUse hook: the assistant pipes a JSON
envelope naming the edited file to 'bonitahooks hook', and any convention
violations are printed to stderr as advisory warnings. The hook never
blocks the assistant.

It also generates the settings.json hook wiring per project type and lints
the skills, slash commands and agents that configure the assistant.`,
	Example: `  # Wire the hooks into a Bonita process project
  bonitahooks settings generate --project-type bonita-process --merge

  # Check files directly
  bonitahooks check src/test/java/org/acme/LoanIT.java

  # List rule sets and checks
  bonitahooks rules list

  See Also: bonitahooks doctor, bonitahooks lint`,
	PersistentPreRunE: func(c *cobra.Command, _ []string) error {
		if err := setupLogging(c); err != nil {
			if c.Name() == "hook" {
				setLogger(c, logging.NewDiscard())
				return nil
			}
			return err
		}
		return checkConfig(c)
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if logFileHandle != nil {
			_ = logFileHandle.Close()
			logFileHandle = nil
		}
	},
	Run: func(c *cobra.Command, _ []string) {
		_ = c.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(c *cobra.Command) error {
	opts := logging.Options{
		Verbosity: verbosity,
		Quiet:     quiet,
		Format:    logging.Format(logFormat),
		Output:    c.ErrOrStderr(),
	}

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.NewUserError(err, "failed to open log file")
		}
		logFileHandle = f
		opts.File = f
	}

	logger, err := logging.Setup(opts)
	if err != nil {
		return errors.NewUserError(err, "Run 'bonitahooks --help' for flag usage")
	}
	setLogger(c, logger)
	return nil
}

func setLogger(c *cobra.Command, logger *slog.Logger) {
	slog.SetDefault(logger)

	ctx := c.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	c.SetContext(logging.NewContext(ctx, logger))
}

// checkConfig fails commands that need a valid config when loading failed.
// The hook stays advisory and falls back to defaults, doctor reports the
// problem itself, and the config commands are how it gets fixed.
func checkConfig(c *cobra.Command) error {
	if configLoadErr == nil {
		return nil
	}
	switch c.Name() {
	case "hook", "doctor", "version", "help", "gen-doc":
		return nil
	}
	if c.HasParent() && c.Parent().Name() == "config" {
		return nil
	}
	return errors.NewConfigError(configLoadErr)
}

// activeConfig returns the loaded config, or defaults when loading failed.
func activeConfig() *config.Config {
	if loadedConfig == nil {
		return config.Default()
	}
	return loadedConfig
}

// loadRegistry builds the rule registry from the active config.
func loadRegistry() (*rule.Registry, error) {
	cfg := activeConfig()
	reg, err := rule.Assemble(cfg.RulesPath(), cfg.DisabledChecks)
	if err != nil {
		return nil, errors.NewConfigError(err)
	}
	return reg, nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
