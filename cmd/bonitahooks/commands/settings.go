package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/bonitahooks/cmd"
	"github.com/thoreinstein/bonitahooks/internal/backup"
	"github.com/thoreinstein/bonitahooks/internal/errors"
	"github.com/thoreinstein/bonitahooks/internal/logging"
	"github.com/thoreinstein/bonitahooks/internal/paths"
	"github.com/thoreinstein/bonitahooks/internal/settings"
)

var (
	settingsProjectType string
	settingsOutput      string
	settingsMerge       bool
	settingsBinary      string
	settingsNoBackup    bool
	settingsRestoreTo   string
)

func init() {
	settingsGenerateCmd.Flags().StringVarP(&settingsProjectType, "project-type", "t", "",
		"project type (default: default_project_type from config)")
	settingsGenerateCmd.Flags().StringVarP(&settingsOutput, "output", "o", "",
		"write to this file instead of stdout")
	settingsGenerateCmd.Flags().BoolVar(&settingsMerge, "merge", false,
		"merge into the project's .claude/settings.json (or --output), keeping other settings")
	settingsGenerateCmd.Flags().StringVar(&settingsBinary, "binary", settings.DefaultBinary,
		"command used to invoke bonitahooks from the hook")
	settingsGenerateCmd.Flags().BoolVar(&settingsNoBackup, "no-backup", false,
		"do not snapshot an existing settings file before writing")
	settingsRestoreCmd.Flags().StringVarP(&settingsRestoreTo, "output", "o", "",
		"restore to this file instead of the original location")
	settingsCmd.AddCommand(settingsGenerateCmd, settingsTypesCmd, settingsBackupsCmd, settingsRestoreCmd)
	rootCmd.AddCommand(settingsCmd)
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Generate settings.json hook wiring",
}

var settingsGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate PostToolUse hook wiring for a project type",
	Long: `Generate the settings.json hooks that run bonitahooks after every file
edit, one command per rule set of the project type.

Without --output or --merge the document is printed to stdout. With --merge
the existing file is read, every previous bonitahooks hook command is
replaced, and all other settings and hooks are kept. Files are written
atomically, and an existing file is snapshotted first unless --no-backup
is given.`,
	Example: `  bonitahooks settings generate --project-type bonita-process
  bonitahooks settings generate -t java-library --merge
  bonitahooks settings generate -t bonita-connector -o .claude/settings.json`,
	Args: cobra.NoArgs,
	RunE: runSettingsGenerate,
}

var settingsTypesCmd = &cobra.Command{
	Use:   "types",
	Short: "List project types",
	Args:  cobra.NoArgs,
	RunE: func(c *cobra.Command, _ []string) error {
		tw := tabwriter.NewWriter(c.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "TYPE\tSETS\tDESCRIPTION")
		for _, pt := range settings.Types() {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", pt.Name, joinComma(pt.Sets), pt.Description)
		}
		return errors.Wrap(tw.Flush(), "flushing output")
	},
}

func runSettingsGenerate(c *cobra.Command, _ []string) error {
	name := settingsProjectType
	if name == "" {
		name = activeConfig().DefaultProjectType
	}
	if name == "" {
		return errors.NewUserError(errors.New("no project type given"),
			"Pass --project-type or set default_project_type; run 'bonitahooks settings types'")
	}

	pt, err := settings.LookupType(name)
	if err != nil {
		return errors.NewUserError(err, "Run 'bonitahooks settings types' to see project types")
	}

	generated := settings.Generate(pt, settingsBinary)
	logger := logging.FromContext(c.Context())

	target := settingsOutput
	if settingsMerge && target == "" {
		target = paths.SettingsPath(".")
	}

	if target == "" {
		data, err := settings.Marshal(generated)
		if err != nil {
			return err
		}
		_, err = c.OutOrStdout().Write(data)
		return errors.Wrap(err, "writing settings")
	}

	doc := generated
	if settingsMerge {
		existing, err := settings.Load(target)
		if err != nil {
			return errors.NewUserError(err, "Fix the JSON or run without --merge")
		}
		doc = settings.Merge(existing, generated, settingsBinary)
	}

	if !settingsNoBackup {
		if _, err := os.Stat(target); err == nil {
			mf, err := backup.NewManager(backup.WithVersion(cmd.Version)).Backup(target)
			if err != nil {
				return errors.NewSystemError(err, "Retry with --no-backup to skip the snapshot")
			}
			logger.Info("backed up settings file", "path", target, "backup", mf.ID)
		}
	}

	if err := settings.Save(target, doc); err != nil {
		return errors.NewSystemError(err, "")
	}
	logger.Info("wrote hook settings", "path", target, "project_type", pt.Name, "hooks", len(pt.Sets))
	fmt.Fprintf(c.OutOrStdout(), "Wrote %s (%s: %s)\n", target, pt.Name, joinComma(pt.Sets))
	return nil
}

var settingsBackupsCmd = &cobra.Command{
	Use:   "backups",
	Short: "List settings snapshots taken before rewrites",
	Args:  cobra.NoArgs,
	RunE: func(c *cobra.Command, _ []string) error {
		list, err := backup.NewManager().List()
		if err != nil {
			return errors.NewSystemError(err, "")
		}
		if len(list) == 0 {
			fmt.Fprintln(c.OutOrStdout(), "No backups.")
			return nil
		}
		tw := tabwriter.NewWriter(c.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tCREATED\tSOURCE")
		for _, mf := range list {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", mf.ID, mf.CreatedAt.Local().Format("2006-01-02 15:04:05"), mf.Source)
		}
		return errors.Wrap(tw.Flush(), "flushing output")
	},
}

var settingsRestoreCmd = &cobra.Command{
	Use:   "restore [id]",
	Short: "Restore a settings snapshot",
	Long: `Restore a snapshot taken by 'settings generate'. Without an id the
newest snapshot is restored to the file it was taken from.`,
	Example: `  bonitahooks settings restore
  bonitahooks settings restore 20260123T100712 -o /tmp/settings.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		var id string
		if len(args) == 1 {
			id = args[0]
		}
		mf, err := backup.NewManager().Restore(id, settingsRestoreTo)
		switch {
		case errors.Is(err, backup.ErrNoBackupsFound), errors.Is(err, errors.ErrNotFound):
			return errors.NewUserError(err, "Run 'bonitahooks settings backups' to see snapshots")
		case err != nil:
			return errors.NewSystemError(err, "")
		}
		target := settingsRestoreTo
		if target == "" {
			target = mf.Source
		}
		fmt.Fprintf(c.OutOrStdout(), "Restored %s from backup %s\n", target, mf.ID)
		return nil
	},
}
