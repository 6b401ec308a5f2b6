package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/sbomcheck/internal/cli/output"
	"github.com/leapstack-labs/sbomcheck/pkg/check"
)

// renderCheckResults renders per-document results in the renderer's mode.
func renderCheckResults(r *output.Renderer, results []fileResult) {
	if r.EffectiveMode() == output.ModeJSON {
		renderCheckJSON(r, results)
		return
	}

	styles := r.Styles()
	compliant, failed, findings := 0, 0, 0

	for _, fr := range results {
		if !fr.Result.HasFindings() {
			compliant++
			r.Success(fmt.Sprintf("%s is compliant", fr.Name))
			continue
		}

		if errs := fr.Result.ParseErrors(); len(errs) > 0 {
			failed++
			r.Failure(fmt.Sprintf("%s is not compliant, as it could not be parsed:", fr.Name))
			for _, msg := range errs {
				r.Printf("  %s %s\n", styles.Muted.Render("*"), msg)
			}
			continue
		}

		findings++
		r.Failure(fmt.Sprintf("%s parsed, but is not compliant with validation standards:", fr.Name))
		renderDiagnosticsTable(r, fr.Result)
	}

	r.Println("")
	r.Printf("Summary: %d compliant, %d with findings, %d unparseable (%d files)\n",
		compliant, findings, failed, len(results))
}

func renderDiagnosticsTable(r *output.Renderer, result check.Result) {
	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	if r.EffectiveMode() == output.ModeMarkdown {
		t.SetStyle(table.StyleDefault)
	} else {
		t.SetStyle(table.StyleLight)
	}
	t.AppendHeader(table.Row{"SPDX ID", "Element", "Message"})

	for _, rec := range result.Records() {
		id := rec.SPDXID
		if id == "" {
			id = "-"
		}
		t.AppendRow(table.Row{id, rec.ElementType, oneLine(rec.Message)})
	}

	if r.EffectiveMode() == output.ModeMarkdown {
		t.RenderMarkdown()
	} else {
		t.Render()
	}
}

// oneLine flattens a diagnostic message (which may carry the marker prefix
// with embedded newlines) into a single display line.
func oneLine(msg string) string {
	return strings.TrimSpace(strings.ReplaceAll(msg, "\n", " "))
}

// checkFileJSON is the per-document JSON shape shared by the console JSON
// mode and the aggregated results file.
type checkFileJSON struct {
	Errors           []string       `json:"errors"`
	ValidatorResults []check.Record `json:"validator_results"`
}

func fileJSON(result check.Result) checkFileJSON {
	out := checkFileJSON{
		Errors:           result.ParseErrors(),
		ValidatorResults: result.Records(),
	}
	// Keep empty collections as [] rather than null in the serialized form.
	if out.Errors == nil {
		out.Errors = []string{}
	}
	return out
}

func renderCheckJSON(r *output.Renderer, results []fileResult) {
	flattened := make(map[string]checkFileJSON, len(results))
	for _, fr := range results {
		flattened[fr.Name] = fileJSON(fr.Result)
	}
	_ = r.JSON(flattened)
}

// writeResultsJSON writes the aggregated results for all scanned files.
func writeResultsJSON(path string, results []fileResult) error {
	flattened := make(map[string]checkFileJSON, len(results))
	for _, fr := range results {
		flattened[fr.Name] = fileJSON(fr.Result)
	}

	data, err := json.MarshalIndent(flattened, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

// writeCSVFiles writes one <name>_exceptions.csv per document that has
// diagnostics to report. Clean and unparseable documents get no CSV file.
func writeCSVFiles(outDir string, results []fileResult) error {
	for _, fr := range results {
		if len(fr.Result.Diagnostics()) == 0 {
			continue
		}
		path := filepath.Join(outDir, fr.Name+"_exceptions.csv")
		if err := writeCSV(path, fr.Result.CSVRows()); err != nil {
			return err
		}
	}
	return nil
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
