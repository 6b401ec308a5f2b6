// Package spdx provides the in-memory model for SPDX 2.3 documents and a
// parser that builds it from generic JSON values.
package spdx

// Assertion describes whether an optional SPDX field carries a real value.
// SPDX distinguishes a missing field from an explicit NOASSERTION ("no claim
// is made") and from NONE ("there is no value"), so presence checks cannot be
// a simple empty-string test.
type Assertion int

const (
	// Absent means the field was not present in the document.
	Absent Assertion = iota
	// NoAssertion means the document explicitly declines to make a claim.
	NoAssertion
	// None means the document explicitly states there is no value.
	None
	// Asserted means the field carries a genuine value.
	Asserted
)

// String returns the string representation of the assertion state.
func (a Assertion) String() string {
	switch a {
	case Absent:
		return "absent"
	case NoAssertion:
		return "NOASSERTION"
	case None:
		return "NONE"
	case Asserted:
		return "asserted"
	default:
		return "unknown"
	}
}

// License is a concluded or declared license field. Only a license in the
// Asserted state counts as an actual license expression.
type License struct {
	State      Assertion
	Expression string
}

// ParseLicense interprets a raw license string from an SPDX document.
func ParseLicense(s string) License {
	switch s {
	case "":
		return License{State: Absent}
	case "NOASSERTION":
		return License{State: NoAssertion}
	case "NONE":
		return License{State: None}
	default:
		return License{State: Asserted, Expression: s}
	}
}

// IsExpression reports whether the license is a genuine license expression,
// as opposed to absent, NOASSERTION, or NONE.
func (l License) IsExpression() bool {
	return l.State == Asserted
}

// String returns the serialized form of the license field.
func (l License) String() string {
	if l.State == Asserted {
		return l.Expression
	}
	return l.State.String()
}

// Supplier is a package supplier field, for example "Organization: Acme".
type Supplier struct {
	State Assertion
	Value string
}

// ParseSupplier interprets a raw supplier string from an SPDX document.
func ParseSupplier(s string) Supplier {
	switch s {
	case "":
		return Supplier{State: Absent}
	case "NOASSERTION":
		return Supplier{State: NoAssertion}
	default:
		return Supplier{State: Asserted, Value: s}
	}
}

// IsSet reports whether a real supplier value was provided.
func (s Supplier) IsSet() bool {
	return s.State == Asserted
}

// CreationInfo holds the document-level metadata of an SPDX document.
type CreationInfo struct {
	SPDXVersion        string
	DataLicense        string
	SPDXID             string
	Name               string
	Namespace          string
	LicenseListVersion string
	Created            string
	Creators           []string
}

// Package is one package entry in an SPDX document.
type Package struct {
	SPDXID           string
	Name             string
	Version          string
	DownloadLocation string
	FilesAnalyzed    bool
	Supplier         Supplier
	LicenseConcluded License
	LicenseDeclared  License
	CopyrightText    string
	Checksums        []Checksum
}

// File is one file entry in an SPDX document.
type File struct {
	SPDXID             string
	Name               string
	LicenseConcluded   License
	LicenseInfoInFiles []string
	CopyrightText      string
	Checksums          []Checksum
}

// Checksum is a single checksum attached to a package or file.
type Checksum struct {
	Algorithm string
	Value     string
}

// RelationshipType tags the kind of a relationship between two elements.
type RelationshipType string

// RelationshipDescribes marks the document's top-level package.
const RelationshipDescribes RelationshipType = "DESCRIBES"

// Relationship links two SPDX elements by id.
type Relationship struct {
	SPDXElementID  string
	Type           RelationshipType
	RelatedElement string
}

// Document is the parsed form of an SPDX 2.3 document. It is built once by
// Parse and read-only afterwards.
type Document struct {
	CreationInfo  CreationInfo
	Packages      []Package
	Files         []File
	Relationships []Relationship
}

// ElementIDs returns the set of element ids defined by the document: the
// document id itself plus every package and file id.
func (d *Document) ElementIDs() map[string]bool {
	ids := make(map[string]bool, 1+len(d.Packages)+len(d.Files))
	ids[d.CreationInfo.SPDXID] = true
	for _, p := range d.Packages {
		ids[p.SPDXID] = true
	}
	for _, f := range d.Files {
		ids[f.SPDXID] = true
	}
	return ids
}

// DescribesRelationships returns the DESCRIBES relationships in document order.
func (d *Document) DescribesRelationships() []Relationship {
	var out []Relationship
	for _, r := range d.Relationships {
		if r.Type == RelationshipDescribes {
			out = append(out, r)
		}
	}
	return out
}
