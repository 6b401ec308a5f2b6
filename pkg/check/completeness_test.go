package check_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sbomcheck/pkg/check"
	"github.com/leapstack-labs/sbomcheck/pkg/spdx"
)

// completeDocument builds a document that passes every completeness rule.
// Tests break individual fields to provoke specific findings.
func completeDocument() *spdx.Document {
	return &spdx.Document{
		CreationInfo: spdx.CreationInfo{
			SPDXVersion:        "SPDX-2.3",
			DataLicense:        "CC0-1.0",
			SPDXID:             "SPDXRef-DOCUMENT",
			Name:               "example",
			Namespace:          "http://spdx.org/spdxdocs/example-1.0",
			LicenseListVersion: "3.20",
			Created:            "2023-09-07T20:33:12Z",
			Creators:           []string{"Organization: Acme", "Tool: acme-sbom-1.0"},
		},
		Packages: []spdx.Package{
			{
				SPDXID:           "SPDXRef-pkg",
				Name:             "acme-core",
				Version:          "1.0.0",
				DownloadLocation: "https://example.com/acme-core-1.0.0.tar.gz",
				FilesAnalyzed:    true,
				Supplier:         spdx.ParseSupplier("Organization: Acme"),
				LicenseConcluded: spdx.ParseLicense("MIT"),
				LicenseDeclared:  spdx.ParseLicense("MIT"),
				CopyrightText:    "Copyright Acme",
			},
		},
		Files: []spdx.File{
			{
				SPDXID:             "SPDXRef-file",
				Name:               "src/main.c",
				LicenseConcluded:   spdx.ParseLicense("MIT"),
				LicenseInfoInFiles: []string{"MIT"},
				CopyrightText:      "Copyright Acme",
			},
		},
		Relationships: []spdx.Relationship{
			{SPDXElementID: "SPDXRef-DOCUMENT", Type: spdx.RelationshipDescribes, RelatedElement: "SPDXRef-pkg"},
		},
	}
}

func messages(diags []check.Diagnostic) []string {
	out := make([]string, 0, len(diags))
	for _, d := range diags {
		out = append(out, strings.TrimPrefix(d.Message, check.ExceptionMarker))
	}
	return out
}

func TestCompleteness_CleanDocument(t *testing.T) {
	assert.Empty(t, check.Completeness(completeDocument()))
}

func TestCompleteness_EveryMessageCarriesMarker(t *testing.T) {
	doc := completeDocument()
	doc.CreationInfo.Name = ""
	doc.CreationInfo.LicenseListVersion = ""
	doc.Packages[0].Supplier = spdx.ParseSupplier("NOASSERTION")

	diags := check.Completeness(doc)
	require.NotEmpty(t, diags)
	for _, d := range diags {
		assert.True(t, strings.HasPrefix(d.Message, check.ExceptionMarker), "message %q", d.Message)
	}
}

func TestCompleteness_NoPackagesStopsEarly(t *testing.T) {
	doc := completeDocument()
	doc.Packages = nil
	doc.Files = nil
	doc.Relationships = nil

	diags := check.Completeness(doc)
	require.Len(t, diags, 1)
	assert.Equal(t, check.ElementDocument, diags[0].ElementType)
	assert.Equal(t, []string{"The Document contains no packages."}, messages(diags))
}

func TestCompleteness_NoFilesStopsAfterFinding(t *testing.T) {
	doc := completeDocument()
	doc.Files = nil

	diags := check.Completeness(doc)
	require.Len(t, diags, 1)
	assert.Equal(t, []string{"The Document contains no files."}, messages(diags))
}

func TestCompleteness_InvalidVersion(t *testing.T) {
	doc := completeDocument()
	doc.CreationInfo.SPDXVersion = "SPDX-2.2"

	diags := check.Completeness(doc)
	require.Len(t, diags, 1)
	assert.Equal(t, check.ElementCreationInfo, diags[0].ElementType)
	assert.Equal(t,
		"The Document uses an invalid version. Valid versions include: [SPDX-2.3].",
		messages(diags)[0])
}

func TestCompleteness_DescribesCount(t *testing.T) {
	tests := []struct {
		name string
		rels []spdx.Relationship
		want string
	}{
		{
			name: "zero",
			rels: nil,
			want: "This document describes 0 packages.",
		},
		{
			name: "two",
			rels: []spdx.Relationship{
				{SPDXElementID: "SPDXRef-DOCUMENT", Type: spdx.RelationshipDescribes, RelatedElement: "SPDXRef-pkg"},
				{SPDXElementID: "SPDXRef-DOCUMENT", Type: spdx.RelationshipDescribes, RelatedElement: "SPDXRef-other"},
			},
			want: "This document describes 2 packages.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := completeDocument()
			doc.Relationships = tt.rels

			diags := check.Completeness(doc)
			require.Len(t, diags, 1)
			assert.Equal(t, check.ElementDocument, diags[0].ElementType)
			assert.True(t, strings.HasSuffix(diags[0].Message, tt.want), "message %q", diags[0].Message)
		})
	}
}

func TestCompleteness_DescribesTargetMismatch(t *testing.T) {
	doc := completeDocument()
	doc.Packages = append(doc.Packages, spdx.Package{
		SPDXID:           "SPDXRef-extra",
		Name:             "acme-extra",
		DownloadLocation: "NOASSERTION",
		FilesAnalyzed:    true,
		Supplier:         spdx.ParseSupplier("Organization: Acme"),
		LicenseConcluded: spdx.ParseLicense("NOASSERTION"),
		LicenseDeclared:  spdx.ParseLicense("NOASSERTION"),
	})
	doc.Relationships = []spdx.Relationship{
		{SPDXElementID: "SPDXRef-DOCUMENT", Type: spdx.RelationshipDescribes, RelatedElement: "SPDXRef-extra"},
	}

	diags := check.Completeness(doc)
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Message, "DESCRIBES relationship is to a package other than the first")
}

func TestCompleteness_DescribesIgnoresOtherSources(t *testing.T) {
	// DESCRIBES relationships not originating from the document element do
	// not count towards the top-level package requirement.
	doc := completeDocument()
	doc.Relationships = append(doc.Relationships, spdx.Relationship{
		SPDXElementID:  "SPDXRef-pkg",
		Type:           spdx.RelationshipDescribes,
		RelatedElement: "SPDXRef-file",
	})

	assert.Empty(t, check.Completeness(doc))
}

func TestCompleteness_PackageFindings(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *spdx.Package)
		want   []string
	}{
		{
			name:   "supplier absent",
			mutate: func(p *spdx.Package) { p.Supplier = spdx.ParseSupplier("") },
			want:   []string{"This package has no supplier populated."},
		},
		{
			name:   "supplier noassertion",
			mutate: func(p *spdx.Package) { p.Supplier = spdx.ParseSupplier("NOASSERTION") },
			want:   []string{"This package has no supplier populated."},
		},
		{
			name:   "files not analyzed",
			mutate: func(p *spdx.Package) { p.FilesAnalyzed = false },
			want:   []string{"The files have not been analyzed for this package."},
		},
		{
			name:   "licensed but no copyright",
			mutate: func(p *spdx.Package) { p.CopyrightText = "" },
			want:   []string{"This package has declared licenses but no copyright text populated."},
		},
		{
			name: "no asserted license exempts copyright",
			mutate: func(p *spdx.Package) {
				p.LicenseConcluded = spdx.ParseLicense("NOASSERTION")
				p.LicenseDeclared = spdx.ParseLicense("NONE")
				p.CopyrightText = ""
			},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := completeDocument()
			tt.mutate(&doc.Packages[0])

			diags := check.Completeness(doc)
			assert.Equal(t, tt.want, messagesOrNil(diags))
			for _, d := range diags {
				assert.Equal(t, check.ElementPackage, d.ElementType)
				assert.Equal(t, "SPDXRef-pkg", d.SPDXID)
			}
		})
	}
}

func TestCompleteness_FileFindings(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(f *spdx.File)
		want   []string
	}{
		{
			name:   "no name",
			mutate: func(f *spdx.File) { f.Name = "" },
			want:   []string{"This file has no name."},
		},
		{
			name:   "missing license evidence",
			mutate: func(f *spdx.File) { f.LicenseInfoInFiles = nil },
			want:   []string{"This file has a concluded license but license_info_in_file is not populated."},
		},
		{
			name:   "missing copyright",
			mutate: func(f *spdx.File) { f.CopyrightText = "" },
			want:   []string{"This file has a concluded license but no copyright text."},
		},
		{
			name: "no concluded license exempts evidence checks",
			mutate: func(f *spdx.File) {
				f.LicenseConcluded = spdx.ParseLicense("NOASSERTION")
				f.LicenseInfoInFiles = nil
				f.CopyrightText = ""
			},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := completeDocument()
			tt.mutate(&doc.Files[0])

			diags := check.Completeness(doc)
			assert.Equal(t, tt.want, messagesOrNil(diags))
			for _, d := range diags {
				assert.Equal(t, check.ElementFile, d.ElementType)
				assert.Equal(t, "SPDXRef-file", d.SPDXID)
			}
		})
	}
}

// TestCompleteness_StageOrdering exercises a document with findings in every
// stage and asserts the fixed reporting order: creation info, then packages,
// then the files stage.
func TestCompleteness_StageOrdering(t *testing.T) {
	doc := completeDocument()
	doc.CreationInfo.Name = ""
	doc.CreationInfo.LicenseListVersion = ""
	doc.Packages[0].FilesAnalyzed = false
	doc.Packages[0].LicenseConcluded = spdx.ParseLicense("NOASSERTION")
	doc.Packages[0].LicenseDeclared = spdx.ParseLicense("NOASSERTION")
	doc.Files = nil

	diags := check.Completeness(doc)
	assert.Equal(t, []string{
		"The Document has no name.",
		"The Document does not have a license list version.",
		"The files have not been analyzed for this package.",
		"The Document contains no files.",
	}, messages(diags))
}

func messagesOrNil(diags []check.Diagnostic) []string {
	if len(diags) == 0 {
		return nil
	}
	return messages(diags)
}
