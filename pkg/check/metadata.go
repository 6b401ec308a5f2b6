package check

// RuleInfo documents one completeness rule for tooling (the `rules` command,
// generated docs). The metadata is descriptive only: evaluation stays the
// explicit staged sequence in Completeness, which is what guarantees the
// diagnostic ordering.
type RuleInfo struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Element     ElementType `json:"-"`
	ElementName string      `json:"element_type"`
	Description string      `json:"description"`
	Rationale   string      `json:"rationale,omitempty"`
}

// rules lists every completeness rule in evaluation order.
var rules = []RuleInfo{
	{
		ID:          "CI01",
		Name:        "creation-info.version",
		Element:     ElementCreationInfo,
		Description: "The document's SPDX version must be one of the supported versions.",
		Rationale:   "Checks are calibrated against SPDX 2.3 field semantics; other versions may rename or drop the audited fields.",
	},
	{
		ID:          "CI02",
		Name:        "creation-info.name",
		Element:     ElementCreationInfo,
		Description: "The document must have a non-empty name.",
		Rationale:   "An unnamed SBOM cannot be tied back to the product it inventories.",
	},
	{
		ID:          "CI03",
		Name:        "creation-info.license-list-version",
		Element:     ElementCreationInfo,
		Description: "The document must state which SPDX license list version its identifiers come from.",
		Rationale:   "License identifiers are only meaningful relative to a license list release.",
	},
	{
		ID:          "DC01",
		Name:        "document.has-packages",
		Element:     ElementDocument,
		Description: "The document must contain at least one package. Without packages no further package or file checks run.",
		Rationale:   "An SBOM without packages inventories nothing.",
	},
	{
		ID:          "DC02",
		Name:        "document.describes-count",
		Element:     ElementDocument,
		Description: "Exactly one DESCRIBES relationship from the document must exist.",
		Rationale:   "Auditors need a single unambiguous top-level package.",
	},
	{
		ID:          "DC03",
		Name:        "document.describes-target",
		Element:     ElementDocument,
		Description: "The DESCRIBES relationship must target the first package in the packages section.",
		Rationale:   "Consumers treat the first package entry as the primary package.",
	},
	{
		ID:          "PK01",
		Name:        "package.supplier",
		Element:     ElementPackage,
		Description: "Every package must name a supplier; NOASSERTION does not count.",
		Rationale:   "Provenance auditing needs to know who supplied each component.",
	},
	{
		ID:          "PK02",
		Name:        "package.files-analyzed",
		Element:     ElementPackage,
		Description: "Every package must have had its files analyzed.",
		Rationale:   "Unanalyzed packages may hide files with conflicting license terms.",
	},
	{
		ID:          "PK03",
		Name:        "package.copyright",
		Element:     ElementPackage,
		Description: "A package asserting a concluded or declared license must carry copyright text.",
		Rationale:   "A license claim without copyright evidence is not auditable.",
	},
	{
		ID:          "DC04",
		Name:        "document.has-files",
		Element:     ElementDocument,
		Description: "The document must contain at least one file. Without files no file checks run.",
		Rationale:   "Package-only SBOMs cannot support file-level license review.",
	},
	{
		ID:          "FL01",
		Name:        "file.name",
		Element:     ElementFile,
		Description: "Every file must have a non-empty name.",
	},
	{
		ID:          "FL02",
		Name:        "file.license-info",
		Element:     ElementFile,
		Description: "A file with a concluded license must list the license info found in the file.",
		Rationale:   "The concluded license should be backed by evidence discovered in the file itself.",
	},
	{
		ID:          "FL03",
		Name:        "file.copyright",
		Element:     ElementFile,
		Description: "A file with a concluded license must carry copyright text.",
	},
}

// Rules returns metadata for all completeness rules in evaluation order.
func Rules() []RuleInfo {
	out := make([]RuleInfo, len(rules))
	copy(out, rules)
	for i := range out {
		out[i].ElementName = out[i].Element.String()
	}
	return out
}

// RuleByID looks up a single rule's metadata.
func RuleByID(id string) (RuleInfo, bool) {
	for _, r := range Rules() {
		if r.ID == id {
			return r, true
		}
	}
	return RuleInfo{}, false
}
