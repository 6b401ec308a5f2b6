package check

import "strings"

// CSVHeader is the fixed header row of the CSV projection. It is emitted even
// when a result holds no diagnostics.
var CSVHeader = []string{"spdx_id", "parent_id", "element_type", "message"}

// Result aggregates everything found while checking one document: the merged
// specification and completeness diagnostics, or the parse errors that
// prevented checking. A result is constructed once and read-only afterwards.
// Parse errors and diagnostics are mutually exclusive: an unparseable
// document produces no diagnostics at all.
type Result struct {
	diagnostics []Diagnostic
	parseErrors []string
}

// NewResult builds a success-path result from the merged diagnostic sequence.
func NewResult(diagnostics []Diagnostic) Result {
	return Result{diagnostics: diagnostics}
}

// FailedResult builds a parse-failure result. No diagnostics are attached;
// an unreadable document cannot be validated.
func FailedResult(parseErrors []string) Result {
	return Result{parseErrors: parseErrors}
}

// Diagnostics returns the ordered diagnostic sequence. Specification
// diagnostics precede completeness diagnostics.
func (r Result) Diagnostics() []Diagnostic {
	return r.diagnostics
}

// ParseErrors returns the parse error messages, if parsing failed.
func (r Result) ParseErrors() []string {
	return r.parseErrors
}

// HasFindings reports whether there is anything to report: either parse
// errors or diagnostics. A clean document returns false. Callers wanting a
// validity flag invert this.
func (r Result) HasFindings() bool {
	return len(r.diagnostics) > 0 || len(r.parseErrors) > 0
}

// Record is the plain key/value projection of one diagnostic, suitable for
// JSON serialization.
type Record struct {
	SPDXID      string `json:"spdx_id"`
	ParentID    string `json:"parent_id"`
	ElementType string `json:"element_type"`
	Message     string `json:"message"`
}

// Records returns one record per diagnostic, in diagnostic order.
func (r Result) Records() []Record {
	records := make([]Record, 0, len(r.diagnostics))
	for _, d := range r.diagnostics {
		records = append(records, Record{
			SPDXID:      d.SPDXID,
			ParentID:    d.ParentID,
			ElementType: d.ElementType.String(),
			Message:     d.Message,
		})
	}
	return records
}

// CSVRows returns the CSV projection: the fixed header followed by one row
// per diagnostic. Embedded newlines are stripped from messages so every
// finding stays on a single line.
func (r Result) CSVRows() [][]string {
	rows := make([][]string, 0, 1+len(r.diagnostics))
	rows = append(rows, CSVHeader)
	for _, d := range r.diagnostics {
		rows = append(rows, []string{
			d.SPDXID,
			d.ParentID,
			d.ElementType.String(),
			strings.ReplaceAll(d.Message, "\n", ""),
		})
	}
	return rows
}
