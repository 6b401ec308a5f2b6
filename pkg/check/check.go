// Package check implements the SBOM completeness check core: the rule engine,
// the aggregated check result, and the single-document orchestration.
//
// The generic SPDX parser and specification validator are external
// collaborators. The parser is consumed through pkg/spdx; the validator is
// injected as a Validator so the core depends only on its contract.
package check

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/leapstack-labs/sbomcheck/pkg/spdx"
)

// Run checks one serialized SPDX JSON document end to end: deserialize,
// parse into the document model, run the specification validator, then the
// completeness rules.
//
// A document that cannot be deserialized or parsed yields a parse-failure
// Result carrying the parser's messages verbatim; no diagnostics are produced
// for it. Otherwise the result holds the validator's diagnostics followed by
// the completeness diagnostics.
func Run(data []byte, validate Validator) Result {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return FailedResult([]string{fmt.Sprintf("document is not valid JSON: %v", err)})
	}

	doc, err := spdx.Parse(raw)
	if err != nil {
		var parseErr *spdx.ParseError
		if errors.As(err, &parseErr) {
			return FailedResult(parseErr.Messages)
		}
		return FailedResult([]string{err.Error()})
	}

	var diags []Diagnostic
	if validate != nil {
		diags = validate(doc)
	}
	diags = append(diags, Completeness(doc)...)

	return NewResult(diags)
}
