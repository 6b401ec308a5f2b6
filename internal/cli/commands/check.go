package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/sbomcheck/internal/cli/output"
	"github.com/leapstack-labs/sbomcheck/pkg/check"
	"github.com/leapstack-labs/sbomcheck/pkg/spdx/validation"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// CheckOptions holds options for the check command.
type CheckOptions struct {
	Dir    string // Directory containing SPDX JSON files
	JSON   bool   // Write aggregated results to a JSON file
	NoCSV  bool   // Skip writing per-document CSV exception files
	Format string // Override console output format
}

// fileResult pairs one scanned file with its check result.
type fileResult struct {
	Name   string
	Result check.Result
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	opts := &CheckOptions{}
	cmd := &cobra.Command{
		Use:   "check <dir>",
		Short: "Check SPDX documents for specification and completeness issues",
		Long: `Check every SPDX JSON document in a directory.

Each document is parsed, validated against the SPDX 2.3 specification, and
then checked for completeness: suppliers, analyzed files, copyright text, and
license evidence. Documents are checked concurrently; findings are reported
per document in a stable order.

A CSV exception file is written next to the results for every document that
is not fully compliant.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # Check all *.spdx.json files in a directory
  sbomcheck check ./sboms

  # Also write aggregated results.json
  sbomcheck check ./sboms --json

  # Write CSV and JSON output to a separate directory
  sbomcheck check ./sboms --json --out-dir ./reports

  # Machine-readable console output
  sbomcheck check ./sboms --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Dir = args[0]
			return runCheck(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Write aggregated results to a JSON file")
	cmd.Flags().BoolVar(&opts.NoCSV, "no-csv", false, "Skip writing per-document CSV exception files")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Console output format: text, markdown, json")

	return cmd
}

func runCheck(cmd *cobra.Command, opts *CheckOptions) error {
	cmdCtx := NewCommandContext(cmd)
	cfg := cmdCtx.Cfg
	logger := cmdCtx.Logger
	r := cmdCtx.Renderer

	// Override renderer if format flag is set
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	results, err := checkDirectory(cmd, opts.Dir, cfg.Extension, cfg.Workers)
	if err != nil {
		return err
	}
	logger.Info("checked documents", "dir", opts.Dir, "count", len(results))

	renderCheckResults(r, results)

	if !opts.NoCSV {
		if err := writeCSVFiles(cfg.OutDir, results); err != nil {
			return fmt.Errorf("failed to write CSV output: %w", err)
		}
	}
	if opts.JSON {
		path := filepath.Join(cfg.OutDir, cfg.ResultsFile)
		if err := writeResultsJSON(path, results); err != nil {
			return fmt.Errorf("failed to write JSON output: %w", err)
		}
		logger.Info("wrote aggregated results", "path", path)
	}

	for _, fr := range results {
		if fr.Result.HasFindings() {
			return fmt.Errorf("completeness issues found")
		}
	}
	return nil
}

// checkDirectory checks every SPDX document in dir. Files that do not carry
// the SPDX extension are reported as parse failures rather than skipped, so
// a stray file in an SBOM drop is never silently ignored. Documents are
// independent, so they are checked concurrently; result order follows the
// directory listing.
func checkDirectory(cmd *cobra.Command, dir, extension string, workers int) ([]fileResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	results := make([]fileResult, len(entries))
	g, _ := errgroup.WithContext(cmd.Context())
	g.SetLimit(workers)

	for i, entry := range entries {
		g.Go(func() error {
			path := filepath.Join(dir, entry.Name())
			results[i] = fileResult{
				Name:   entry.Name(),
				Result: checkFile(path, entry, extension),
			}
			return nil
		})
	}
	// Workers never return errors; failures are data in the results.
	_ = g.Wait()

	return results, nil
}

func checkFile(path string, entry os.DirEntry, extension string) check.Result {
	if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), extension) {
		return check.FailedResult([]string{fmt.Sprintf(
			"File %s not recognized. Please ensure your files are SPDX JSON format and end with %q.",
			path, extension)})
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return check.FailedResult([]string{fmt.Sprintf("File %s could not be read: %v.", path, err)})
	}

	return check.Run(data, validation.Validate)
}
