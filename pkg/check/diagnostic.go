package check

import "github.com/leapstack-labs/sbomcheck/pkg/spdx"

// ExceptionMarker prefixes every message produced by the completeness engine.
// It distinguishes completeness findings from the generic specification
// diagnostics that share the same shape.
const ExceptionMarker = "\n*** completeness exception ***\n"

// ElementType identifies which part of an SPDX document a diagnostic is about.
type ElementType int

const (
	// ElementCreationInfo scopes a diagnostic to the document metadata.
	ElementCreationInfo ElementType = iota
	// ElementDocument scopes a diagnostic to the document as a whole.
	ElementDocument
	// ElementPackage scopes a diagnostic to a single package.
	ElementPackage
	// ElementFile scopes a diagnostic to a single file.
	ElementFile
)

// String returns the serialized element type used in records and CSV output.
func (e ElementType) String() string {
	switch e {
	case ElementCreationInfo:
		return "creation_info"
	case ElementDocument:
		return "document"
	case ElementPackage:
		return "package"
	case ElementFile:
		return "file"
	default:
		return "unknown"
	}
}

// Diagnostic is one finding about a document: a message scoped to an element
// type, optionally tied to a subject element id. Document- and metadata-scoped
// diagnostics carry no SPDXID.
type Diagnostic struct {
	ElementType ElementType
	SPDXID      string
	ParentID    string
	Message     string
}

// Validator is the contract of the external specification-conformance
// validator. The completeness core never inspects how its diagnostics are
// produced; it only merges them ahead of its own.
type Validator func(doc *spdx.Document) []Diagnostic

// completenessDiagnostic builds a marker-prefixed finding.
func completenessDiagnostic(elem ElementType, spdxID, message string) Diagnostic {
	return Diagnostic{
		ElementType: elem,
		SPDXID:      spdxID,
		Message:     ExceptionMarker + message,
	}
}
