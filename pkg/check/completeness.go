package check

import (
	"fmt"

	"github.com/leapstack-labs/sbomcheck/pkg/spdx"
)

// SupportedVersions is the allow-list of SPDX specification versions the
// completeness engine accepts.
var SupportedVersions = []string{"SPDX-2.3"}

// Completeness evaluates the completeness rules against a parsed document and
// returns findings in a fixed order. The engine is pure: it never fails and
// never mutates the document — missing data is a finding, not an error.
//
// The rule groups run as guarded stages. A document without packages stops
// after the "no packages" finding; a document without files stops after the
// "no files" finding. Downstream consumers read diagnostics positionally, so
// the stage order is part of the contract.
func Completeness(doc *spdx.Document) []Diagnostic {
	diags := checkCreationInfo(doc.CreationInfo)

	if d := checkHasPackages(doc); d != nil {
		return append(diags, *d)
	}

	if d := checkPrimaryPackage(doc); d != nil {
		diags = append(diags, *d)
	}
	diags = append(diags, checkPackages(doc.Packages)...)

	if d := checkHasFiles(doc); d != nil {
		return append(diags, *d)
	}

	return append(diags, checkFiles(doc.Files)...)
}

func checkCreationInfo(ci spdx.CreationInfo) []Diagnostic {
	var diags []Diagnostic
	if !isSupportedVersion(ci.SPDXVersion) {
		diags = append(diags, completenessDiagnostic(ElementCreationInfo, "",
			fmt.Sprintf("The Document uses an invalid version. Valid versions include: %v.", SupportedVersions)))
	}
	if ci.Name == "" {
		diags = append(diags, completenessDiagnostic(ElementCreationInfo, "",
			"The Document has no name."))
	}
	if ci.LicenseListVersion == "" {
		diags = append(diags, completenessDiagnostic(ElementCreationInfo, "",
			"The Document does not have a license list version."))
	}
	return diags
}

func checkHasPackages(doc *spdx.Document) *Diagnostic {
	if len(doc.Packages) > 0 {
		return nil
	}
	d := completenessDiagnostic(ElementDocument, "", "The Document contains no packages.")
	return &d
}

// checkPrimaryPackage verifies that the document designates its first package
// as the single described top-level package. The count mismatch and target
// mismatch outcomes are mutually exclusive.
func checkPrimaryPackage(doc *spdx.Document) *Diagnostic {
	var describes []spdx.Relationship
	for _, rel := range doc.Relationships {
		if rel.Type == spdx.RelationshipDescribes && rel.SPDXElementID == doc.CreationInfo.SPDXID {
			describes = append(describes, rel)
		}
	}

	if len(describes) != 1 {
		d := completenessDiagnostic(ElementDocument, "",
			fmt.Sprintf("This SPDX Document has an incorrect number of DESCRIBES relationships. "+
				"An SPDX document must directly describe one top-level package. "+
				"This document describes %d packages.", len(describes)))
		return &d
	}

	if describes[0].RelatedElement != doc.Packages[0].SPDXID {
		d := completenessDiagnostic(ElementDocument, "",
			"This SPDX Document's DESCRIBES relationship is to a package other than the first "+
				"in the package info section. Either the relationship is incorrect or the "+
				"top-level package that the document is describing is not first in the "+
				"packages collection.")
		return &d
	}

	return nil
}

func checkPackages(packages []spdx.Package) []Diagnostic {
	var diags []Diagnostic
	for _, pkg := range packages {
		if !pkg.Supplier.IsSet() {
			diags = append(diags, completenessDiagnostic(ElementPackage, pkg.SPDXID,
				"This package has no supplier populated."))
		}
		if !pkg.FilesAnalyzed {
			diags = append(diags, completenessDiagnostic(ElementPackage, pkg.SPDXID,
				"The files have not been analyzed for this package."))
		}
		// Copyright text is only expected once a license is actually asserted;
		// NOASSERTION and NONE exempt the package.
		if pkg.LicenseConcluded.IsExpression() || pkg.LicenseDeclared.IsExpression() {
			if pkg.CopyrightText == "" {
				diags = append(diags, completenessDiagnostic(ElementPackage, pkg.SPDXID,
					"This package has declared licenses but no copyright text populated."))
			}
		}
	}
	return diags
}

func checkHasFiles(doc *spdx.Document) *Diagnostic {
	if len(doc.Files) > 0 {
		return nil
	}
	d := completenessDiagnostic(ElementDocument, "", "The Document contains no files.")
	return &d
}

func checkFiles(files []spdx.File) []Diagnostic {
	var diags []Diagnostic
	for _, file := range files {
		if file.Name == "" {
			diags = append(diags, completenessDiagnostic(ElementFile, file.SPDXID,
				"This file has no name."))
		}

		// The evidence checks only apply to files with a concluded license.
		if !file.LicenseConcluded.IsExpression() {
			continue
		}

		if len(file.LicenseInfoInFiles) == 0 {
			diags = append(diags, completenessDiagnostic(ElementFile, file.SPDXID,
				"This file has a concluded license but license_info_in_file is not populated."))
		}
		if file.CopyrightText == "" {
			diags = append(diags, completenessDiagnostic(ElementFile, file.SPDXID,
				"This file has a concluded license but no copyright text."))
		}
	}
	return diags
}

func isSupportedVersion(version string) bool {
	for _, v := range SupportedVersions {
		if v == version {
			return true
		}
	}
	return false
}
