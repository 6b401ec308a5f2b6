package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/sbomcheck/internal/cli/output"
	"github.com/leapstack-labs/sbomcheck/pkg/check"
	"github.com/spf13/cobra"
)

// RulesOptions holds options for the rules command.
type RulesOptions struct {
	Verbose bool   // Show rationale
	Format  string // Output format
}

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	opts := &RulesOptions{}
	cmd := &cobra.Command{
		Use:   "rules [rule-id]",
		Short: "List the completeness rules",
		Long: `List the completeness rules applied to every SPDX document.

Rules are shown in evaluation order. Creation-info rules always run; package
and file rules only run when the document contains packages or files.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # List all rules
  sbomcheck rules

  # Show details for a specific rule
  sbomcheck rules PK01

  # Output as JSON
  sbomcheck rules --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return showRule(cmd, args[0], opts)
			}
			return listRules(cmd, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "V", false, "Show rule rationale")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")

	return cmd
}

func commandRenderer(cmd *cobra.Command, format string) *output.Renderer {
	r := NewCommandContext(cmd).Renderer
	if format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(format))
	}
	return r
}

func listRules(cmd *cobra.Command, opts *RulesOptions) error {
	r := commandRenderer(cmd, opts.Format)
	rules := check.Rules()

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(map[string]any{"rules": rules, "count": len(rules)})
	case output.ModeMarkdown:
		r.Println("# Completeness Rules")
		r.Println("")
		for _, rule := range rules {
			r.Printf("- **%s** (%s) - %s\n", rule.ID, rule.ElementName, rule.Description)
			if opts.Verbose && rule.Rationale != "" {
				r.Println("  > " + rule.Rationale)
			}
		}
		r.Println("")
		return nil
	default:
		return listRulesText(r, rules, opts.Verbose)
	}
}

func listRulesText(r *output.Renderer, rules []check.RuleInfo, verbose bool) error {
	styles := r.Styles()

	r.Println("")
	r.Println(styles.Header1.Render(fmt.Sprintf("Completeness Rules (%d)", len(rules))))
	r.Println("")

	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Name", "Element", "Description"})
	for _, rule := range rules {
		t.AppendRow(table.Row{rule.ID, rule.Name, rule.ElementName, rule.Description})
	}
	t.Render()

	if verbose {
		r.Println("")
		for _, rule := range rules {
			if rule.Rationale == "" {
				continue
			}
			r.Printf("  %s  %s\n", styles.Bold.Render(rule.ID), styles.Muted.Render(rule.Rationale))
		}
	}

	r.Println("")
	r.Println(styles.Muted.Render("Use 'sbomcheck rules <rule-id>' for details on one rule"))
	r.Println("")

	return nil
}

func showRule(cmd *cobra.Command, ruleID string, opts *RulesOptions) error {
	r := commandRenderer(cmd, opts.Format)

	rule, ok := check.RuleByID(ruleID)
	if !ok {
		return fmt.Errorf("rule %q not found", ruleID)
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(rule)
	case output.ModeMarkdown:
		r.Printf("# %s - %s\n\n", rule.ID, rule.Name)
		r.Printf("**Element:** `%s`\n\n", rule.ElementName)
		r.Println(rule.Description)
		if rule.Rationale != "" {
			r.Println("")
			r.Println("> " + rule.Rationale)
		}
		r.Println("")
		return nil
	default:
		styles := r.Styles()
		r.Println("")
		r.Println(styles.Header1.Render(fmt.Sprintf("%s - %s", rule.ID, rule.Name)))
		r.Println("")
		r.Printf("  %s: %s\n", styles.Bold.Render("Element"), rule.ElementName)
		r.Println("")
		r.Println(styles.Bold.Render("Description"))
		r.Println("  " + rule.Description)
		if rule.Rationale != "" {
			r.Println("")
			r.Println(styles.Bold.Render("Why This Matters"))
			r.Println("  " + rule.Rationale)
		}
		r.Println("")
		return nil
	}
}
