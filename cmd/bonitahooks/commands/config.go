package commands

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/bonitahooks/internal/config"
	"github.com/thoreinstein/bonitahooks/internal/editor"
	"github.com/thoreinstein/bonitahooks/internal/errors"
	"github.com/thoreinstein/bonitahooks/internal/logging"
	"github.com/thoreinstein/bonitahooks/internal/paths"
	"github.com/thoreinstein/bonitahooks/internal/settings"
	"github.com/thoreinstein/bonitahooks/pkg/fileutil"
)

var configProject bool

func init() {
	for _, c := range []*cobra.Command{configSetCmd, configEditCmd} {
		c.Flags().BoolVar(&configProject, "project", false,
			"use the project file .bonitahooks/config.yaml instead of the user file")
	}
	configCmd.AddCommand(configListCmd, configGetCmd, configSetCmd, configEditCmd, configPathCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage bonitahooks configuration",
	Long: `Manage the YAML configuration. The project file .bonitahooks/config.yaml
is read first, then the user file in the XDG config directory. --config
overrides both.

Without a subcommand, prints the effective configuration.`,
	Example: `  bonitahooks config
  bonitahooks config get disabled_checks
  bonitahooks config set disabled_checks UT-003,JS-001 --project
  bonitahooks config edit

See Also: bonitahooks doctor`,
	Args: cobra.NoArgs,
	RunE: runConfigList,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigList,
}

var configGetCmd = &cobra.Command{
	Use:       "get <key>",
	Short:     "Print one configuration value",
	Long:      `Print one configuration value. List values are printed one per line.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: config.Keys,
	RunE:      runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value, creating the file if needed. disabled_checks
takes a comma-separated list. The result is validated before it is written.`,
	Example: `  bonitahooks config set glyph "!!"
  bonitahooks config set default_project_type bonita-process --project`,
	Args:      cobra.ExactArgs(2),
	ValidArgs: config.Keys,
	RunE:      runConfigSet,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the configuration file in $EDITOR",
	Long: `Open the configuration file in $VISUAL or $EDITOR, falling back to nano
and then vi. A missing file is created with the defaults first. The file is
validated after the editor exits.`,
	Args: cobra.NoArgs,
	RunE: runConfigEdit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show which configuration file is in use",
	Args:  cobra.NoArgs,
	RunE: func(c *cobra.Command, _ []string) error {
		w := c.OutOrStdout()
		used := "(none, using defaults)"
		if loadedConfig != nil && loadedConfig.File != "" {
			used = loadedConfig.File
		}
		fmt.Fprintf(w, "in use:  %s\n", used)
		fmt.Fprintf(w, "project: %s\n", config.ProjectFile("."))
		fmt.Fprintf(w, "user:    %s\n", config.UserFile())
		return nil
	},
}

func runConfigList(c *cobra.Command, _ []string) error {
	if configLoadErr != nil {
		return errors.NewConfigError(configLoadErr)
	}
	data, err := yaml.Marshal(activeConfig())
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}
	_, err = c.OutOrStdout().Write(data)
	return errors.Wrap(err, "writing config")
}

func runConfigGet(c *cobra.Command, args []string) error {
	if configLoadErr != nil {
		return errors.NewConfigError(configLoadErr)
	}
	cfg := activeConfig()
	w := c.OutOrStdout()

	switch args[0] {
	case "version":
		fmt.Fprintln(w, cfg.Version)
	case "glyph":
		fmt.Fprintln(w, cfg.Glyph)
	case "disabled_checks":
		for _, id := range cfg.DisabledChecks {
			fmt.Fprintln(w, id)
		}
	case "rules_file":
		fmt.Fprintln(w, cfg.RulesFile)
	case "max_file_size":
		fmt.Fprintln(w, strconv.FormatInt(cfg.MaxFileSize, 10))
	case "default_project_type":
		fmt.Fprintln(w, cfg.DefaultProjectType)
	default:
		return errors.NewUserError(errors.Newf("unknown key %q", args[0]),
			"Valid keys: "+strings.Join(config.Keys, ", "))
	}
	return nil
}

func runConfigSet(c *cobra.Command, args []string) error {
	key, value := args[0], args[1]
	if key == "default_project_type" && value != "" {
		if _, err := settings.LookupType(value); err != nil {
			return errors.NewUserError(err, "Run 'bonitahooks settings types' to see project types")
		}
	}

	target := configTarget()
	if err := config.Set(target, key, value); err != nil {
		return errors.NewUserError(err, "Valid keys: "+strings.Join(config.Keys, ", "))
	}
	logging.FromContext(c.Context()).Info("updated config", "path", target, "key", key)
	fmt.Fprintf(c.OutOrStdout(), "Set %s = %s in %s\n", key, value, target)
	return nil
}

func runConfigEdit(c *cobra.Command, _ []string) error {
	target := configTarget()
	if _, err := os.Stat(target); errors.Is(err, fs.ErrNotExist) {
		if err := paths.EnsureDir(filepath.Dir(target), 0); err != nil {
			return errors.NewSystemError(err, "")
		}
		if err := fileutil.AtomicWriteYAML(target, config.Default()); err != nil {
			return errors.NewSystemError(err, "")
		}
	}

	fmt.Fprintf(c.ErrOrStderr(), "Location: %s\n", target)
	if err := editor.Open(c.Context(), target, c.InOrStdin(), c.OutOrStdout(), c.ErrOrStderr()); err != nil {
		return errors.NewSystemError(err, "Set $EDITOR to an installed editor")
	}

	config.Init()
	if _, err := config.Load(target); err != nil {
		return errors.NewUserError(err, "Run 'bonitahooks config edit' again to fix it")
	}
	return nil
}

// configTarget picks the file config set and edit write to.
func configTarget() string {
	switch {
	case configPath != "":
		return configPath
	case configProject:
		return config.ProjectFile(".")
	default:
		return config.UserFile()
	}
}
