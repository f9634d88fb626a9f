package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/bonitahooks/internal/errors"
	"github.com/thoreinstein/bonitahooks/internal/rule"
)

var rulesListJSON bool

func init() {
	rulesListCmd.Flags().BoolVar(&rulesListJSON, "json", false,
		"output as JSON")
	rulesCmd.AddCommand(rulesListCmd, rulesShowCmd, rulesPickCmd)
	rootCmd.AddCommand(rulesCmd)
}

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Inspect rule sets and checks",
	Long: `Inspect the effective rule sets: the built-in sets, any sets from the
configured rules file, minus the checks listed in disabled_checks.`,
}

var rulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List rule sets and their checks",
	Args:  cobra.NoArgs,
	RunE:  runRulesList,
}

var rulesShowCmd = &cobra.Command{
	Use:   "show <check-id>",
	Short: "Show the guidance for a check",
	Args:  cobra.ExactArgs(1),
	RunE:  runRulesShow,
}

var rulesPickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Pick a check interactively and show its guidance",
	Args:  cobra.NoArgs,
	RunE:  runRulesPick,
}

// setJSON is the JSON form of a rule set.
type setJSON struct {
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Path        string      `json:"path"`
	Checks      []checkEntryJSON `json:"checks"`
}

type checkEntryJSON struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

func runRulesList(c *cobra.Command, _ []string) error {
	reg, err := loadRegistry()
	if err != nil {
		return err
	}

	if rulesListJSON {
		return outputRulesJSON(c.OutOrStdout(), reg)
	}
	return outputRulesTable(c.OutOrStdout(), reg)
}

func outputRulesJSON(w io.Writer, reg *rule.Registry) error {
	sets := make([]setJSON, 0, len(reg.Sets()))
	for _, s := range reg.Sets() {
		sj := setJSON{Name: s.Name, Description: s.Description, Path: s.PathPattern.String(), Checks: []checkEntryJSON{}}
		for _, ch := range s.Checks {
			sj.Checks = append(sj.Checks, checkEntryJSON{ID: ch.ID, Message: ch.Message})
		}
		sets = append(sets, sj)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(sets), "encoding JSON")
}

func outputRulesTable(w io.Writer, reg *rule.Registry) error {
	for i, s := range reg.Sets() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s  %s\n", s.Name, s.PathPattern)
		if s.Description != "" {
			fmt.Fprintf(w, "  %s\n", s.Description)
		}

		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, ch := range s.Checks {
			fmt.Fprintf(tw, "  %s\t%s\n", ch.ID, ch.Message)
		}
		if err := tw.Flush(); err != nil {
			return errors.Wrap(err, "flushing output")
		}
	}
	return nil
}

func runRulesShow(c *cobra.Command, args []string) error {
	reg, err := loadRegistry()
	if err != nil {
		return err
	}

	ch, err := reg.Check(args[0])
	if err != nil {
		return errors.NewUserError(err, "Run 'bonitahooks rules list' to see check IDs")
	}

	out, err := renderMarkdown(checkMarkdown(ch, usedBy(reg, ch.ID)), c.OutOrStdout())
	if err != nil {
		return err
	}
	fmt.Fprint(c.OutOrStdout(), out)
	return nil
}

func runRulesPick(c *cobra.Command, _ []string) error {
	reg, err := loadRegistry()
	if err != nil {
		return err
	}
	return pickCheck(c.OutOrStdout(), reg.Checks())
}

// usedBy returns the names of the sets containing check id.
func usedBy(reg *rule.Registry, id string) []string {
	for _, ref := range reg.Checks() {
		if ref.Check.ID == id {
			return ref.Sets
		}
	}
	return nil
}

// checkMarkdown renders a check as a Markdown document.
func checkMarkdown(ch rule.Check, sets []string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", ch.ID)
	fmt.Fprintf(&sb, "**%s**\n\n", ch.Message)
	if len(sets) > 0 {
		fmt.Fprintf(&sb, "Rule sets: %s\n\n", strings.Join(sets, ", "))
	}
	if ch.Guidance != "" {
		sb.WriteString(strings.TrimSpace(ch.Guidance))
		sb.WriteString("\n")
	}
	return sb.String()
}
