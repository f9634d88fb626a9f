package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/thoreinstein/bonitahooks/internal/errors"
	"github.com/thoreinstein/bonitahooks/internal/paths"
)

var (
	genDocDir    string
	genDocFormat string
)

func init() {
	genDocCmd.Flags().StringVarP(&genDocDir, "dir", "d", "", "output directory")
	genDocCmd.Flags().StringVar(&genDocFormat, "format", "markdown", "output format: markdown, man")
	rootCmd.AddCommand(genDocCmd)
}

var genDocCmd = &cobra.Command{
	Use:    "gen-doc",
	Short:  "Generate reference documentation for the CLI",
	Hidden: true,
	Args:   cobra.NoArgs,
	RunE: func(c *cobra.Command, _ []string) error {
		if genDocDir == "" {
			return errors.NewUserError(errors.New("output directory is required"), "Pass --dir")
		}
		if err := paths.EnsureDir(genDocDir, 0); err != nil {
			return errors.NewSystemError(err, "")
		}

		root := c.Root()
		root.DisableAutoGenTag = true

		var err error
		switch genDocFormat {
		case "markdown":
			err = doc.GenMarkdownTreeCustom(root, genDocDir, docFrontmatter, func(name string) string { return name })
		case "man":
			err = doc.GenManTree(root, &doc.GenManHeader{Title: "BONITAHOOKS", Section: "1"}, genDocDir)
		default:
			return errors.NewUserError(errors.Newf("unknown format %q", genDocFormat), "Use markdown or man")
		}
		if err != nil {
			return errors.NewSystemError(errors.Wrap(err, "generating documentation"), "")
		}

		fmt.Fprintf(c.OutOrStdout(), "Documentation generated in %s\n", genDocDir)
		return nil
	},
}

// docFrontmatter titles each page after its command path,
// e.g. bonitahooks_settings_generate.md becomes "bonitahooks settings generate".
func docFrontmatter(filename string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	title := strings.ReplaceAll(base, "_", " ")
	return fmt.Sprintf("---\ntitle: %q\ndescription: \"Reference for %s\"\n---\n", title, title)
}
