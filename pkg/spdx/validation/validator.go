// Package validation implements the generic SPDX 2.3 conformance checks that
// run before the completeness rules. The check core consumes this package
// only through the check.Validator contract.
package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/leapstack-labs/sbomcheck/pkg/check"
	"github.com/leapstack-labs/sbomcheck/pkg/spdx"
)

// DocumentSPDXID is the mandatory id of the document element.
const DocumentSPDXID = "SPDXRef-DOCUMENT"

// DataLicense is the only data license SPDX 2.3 permits.
const DataLicense = "CC0-1.0"

const createdLayout = "2006-01-02T15:04:05Z"

var versionPattern = regexp.MustCompile(`^SPDX-\d+\.\d+$`)

var creatorPrefixes = []string{"Person: ", "Organization: ", "Tool: "}

// Validate runs the specification-conformance checks against a parsed
// document and returns plain diagnostics, without the completeness marker.
// The order is deterministic: creation info, document structure, packages.
func Validate(doc *spdx.Document) []check.Diagnostic {
	var diags []check.Diagnostic
	diags = append(diags, validateCreationInfo(doc.CreationInfo)...)
	diags = append(diags, validateDescribes(doc)...)
	diags = append(diags, validateElementIDs(doc)...)
	diags = append(diags, validateRelationships(doc)...)
	diags = append(diags, validatePackages(doc.Packages)...)
	return diags
}

func validateCreationInfo(ci spdx.CreationInfo) []check.Diagnostic {
	var diags []check.Diagnostic

	if !versionPattern.MatchString(ci.SPDXVersion) {
		diags = append(diags, creationInfoDiagnostic(
			fmt.Sprintf("spdxVersion must be of the form \"SPDX-M.N\", but is: %s", ci.SPDXVersion)))
	}
	if ci.DataLicense != DataLicense {
		diags = append(diags, creationInfoDiagnostic(
			fmt.Sprintf("dataLicense must be %q, but is: %s", DataLicense, ci.DataLicense)))
	}
	if ci.SPDXID != DocumentSPDXID {
		diags = append(diags, creationInfoDiagnostic(
			fmt.Sprintf("the document SPDXID must be %q, but is: %s", DocumentSPDXID, ci.SPDXID)))
	}
	if u, err := url.Parse(ci.Namespace); err != nil || !u.IsAbs() {
		diags = append(diags, creationInfoDiagnostic(
			fmt.Sprintf("documentNamespace must be a valid absolute URI, but is: %s", ci.Namespace)))
	}
	if _, err := time.Parse(createdLayout, ci.Created); err != nil {
		diags = append(diags, creationInfoDiagnostic(
			fmt.Sprintf("created must be a UTC timestamp of the form YYYY-MM-DDThh:mm:ssZ, but is: %s", ci.Created)))
	}
	if len(ci.Creators) == 0 {
		diags = append(diags, creationInfoDiagnostic("creators must contain at least one entry"))
	}
	for _, creator := range ci.Creators {
		if !hasCreatorPrefix(creator) {
			diags = append(diags, creationInfoDiagnostic(
				fmt.Sprintf("creator must start with \"Person:\", \"Organization:\" or \"Tool:\", but is: %s", creator)))
		}
	}

	return diags
}

// validateDescribes enforces the SPDX rule that a document with anything but
// a single package must say what it describes.
func validateDescribes(doc *spdx.Document) []check.Diagnostic {
	if len(doc.Packages) == 1 {
		return nil
	}
	for _, rel := range doc.Relationships {
		if rel.Type == spdx.RelationshipDescribes && rel.SPDXElementID == doc.CreationInfo.SPDXID {
			return nil
		}
		if rel.Type == "DESCRIBED_BY" && rel.RelatedElement == doc.CreationInfo.SPDXID {
			return nil
		}
	}
	return []check.Diagnostic{{
		ElementType: check.ElementDocument,
		Message: fmt.Sprintf("there must be at least one relationship \"%s DESCRIBES ...\" or "+
			"\"... DESCRIBED_BY %s\" when there is not only a single package present",
			DocumentSPDXID, DocumentSPDXID),
	}}
}

func validateElementIDs(doc *spdx.Document) []check.Diagnostic {
	var diags []check.Diagnostic
	seen := map[string]bool{doc.CreationInfo.SPDXID: true}
	for _, p := range doc.Packages {
		if seen[p.SPDXID] {
			diags = append(diags, documentDiagnostic(
				fmt.Sprintf("the document contains multiple elements with the same SPDXID: %s", p.SPDXID)))
		}
		seen[p.SPDXID] = true
	}
	for _, f := range doc.Files {
		if seen[f.SPDXID] {
			diags = append(diags, documentDiagnostic(
				fmt.Sprintf("the document contains multiple elements with the same SPDXID: %s", f.SPDXID)))
		}
		seen[f.SPDXID] = true
	}
	return diags
}

func validateRelationships(doc *spdx.Document) []check.Diagnostic {
	var diags []check.Diagnostic
	known := doc.ElementIDs()
	for _, rel := range doc.Relationships {
		for _, ref := range []string{rel.SPDXElementID, rel.RelatedElement} {
			if ref == "NOASSERTION" || ref == "NONE" {
				continue
			}
			if !known[ref] {
				diags = append(diags, documentDiagnostic(
					fmt.Sprintf("relationship refers to an unknown SPDXID: %s", ref)))
			}
		}
	}
	return diags
}

func validatePackages(packages []spdx.Package) []check.Diagnostic {
	var diags []check.Diagnostic
	for _, pkg := range packages {
		if pkg.DownloadLocation == "" {
			diags = append(diags, check.Diagnostic{
				ElementType: check.ElementPackage,
				SPDXID:      pkg.SPDXID,
				Message:     "package must have a downloadLocation",
			})
		}
	}
	return diags
}

func hasCreatorPrefix(creator string) bool {
	for _, prefix := range creatorPrefixes {
		if strings.HasPrefix(creator, prefix) {
			return true
		}
	}
	return false
}

func creationInfoDiagnostic(msg string) check.Diagnostic {
	return check.Diagnostic{ElementType: check.ElementCreationInfo, Message: msg}
}

func documentDiagnostic(msg string) check.Diagnostic {
	return check.Diagnostic{ElementType: check.ElementDocument, Message: msg}
}
