package check_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sbomcheck/pkg/check"
	"github.com/leapstack-labs/sbomcheck/pkg/spdx"
)

const sampleDocument = `{
	"spdxVersion": "SPDX-2.3",
	"dataLicense": "CC0-1.0",
	"SPDXID": "SPDXRef-DOCUMENT",
	"name": "",
	"documentNamespace": "http://spdx.org/spdxdocs/sample-1.0",
	"creationInfo": {
		"created": "2023-09-07T20:33:12Z",
		"creators": ["Organization: Acme", "Tool: acme-sbom-1.0"]
	},
	"packages": [
		{
			"SPDXID": "SPDXRef-pkg",
			"name": "sample",
			"versionInfo": "1.0",
			"downloadLocation": "NOASSERTION",
			"filesAnalyzed": false,
			"licenseConcluded": "BSD-3-Clause",
			"licenseDeclared": "BSD-3-Clause",
			"supplier": "Organization: Acme"
		}
	],
	"documentDescribes": ["SPDXRef-pkg"]
}`

func TestRun_InvalidJSON(t *testing.T) {
	result := check.Run([]byte("not json"), nil)

	assert.Empty(t, result.Diagnostics())
	require.Len(t, result.ParseErrors(), 1)
	assert.Contains(t, result.ParseErrors()[0], "document is not valid JSON")
}

func TestRun_ParseFailure(t *testing.T) {
	result := check.Run([]byte(`{"spdxVersion": "SPDX-2.3"}`), nil)

	assert.True(t, result.HasFindings())
	assert.Empty(t, result.Diagnostics())
	assert.Contains(t, result.ParseErrors(), "creationInfo does not exist")
}

func TestRun_CompletenessFindings(t *testing.T) {
	result := check.Run([]byte(sampleDocument), nil)

	assert.Empty(t, result.ParseErrors())
	diags := result.Diagnostics()
	require.Len(t, diags, 5)

	assert.Equal(t, check.ExceptionMarker+"The Document has no name.", diags[0].Message)
	assert.Equal(t, check.ExceptionMarker+"The Document does not have a license list version.", diags[1].Message)
	assert.Equal(t, check.ExceptionMarker+"The files have not been analyzed for this package.", diags[2].Message)
	assert.Equal(t, check.ExceptionMarker+"This package has declared licenses but no copyright text populated.", diags[3].Message)
	assert.Equal(t, check.ExceptionMarker+"The Document contains no files.", diags[4].Message)

	assert.Equal(t, "SPDXRef-pkg", diags[2].SPDXID)
	assert.Equal(t, "SPDXRef-pkg", diags[3].SPDXID)
}

func TestRun_ValidatorDiagnosticsComeFirst(t *testing.T) {
	validator := func(doc *spdx.Document) []check.Diagnostic {
		return []check.Diagnostic{
			{ElementType: check.ElementDocument, Message: "specification finding"},
		}
	}

	result := check.Run([]byte(sampleDocument), validator)

	diags := result.Diagnostics()
	require.NotEmpty(t, diags)
	assert.Equal(t, "specification finding", diags[0].Message)
	assert.Equal(t, check.ExceptionMarker+"The Document has no name.", diags[1].Message)
}

func TestRun_ValidatorNotCalledOnParseFailure(t *testing.T) {
	called := false
	validator := func(doc *spdx.Document) []check.Diagnostic {
		called = true
		return nil
	}

	result := check.Run([]byte(`{}`), validator)

	assert.False(t, called)
	assert.NotEmpty(t, result.ParseErrors())
}

func TestRun_CleanDocument(t *testing.T) {
	clean := `{
		"spdxVersion": "SPDX-2.3",
		"dataLicense": "CC0-1.0",
		"SPDXID": "SPDXRef-DOCUMENT",
		"name": "clean",
		"documentNamespace": "http://spdx.org/spdxdocs/clean-1.0",
		"creationInfo": {
			"created": "2023-09-07T20:33:12Z",
			"creators": ["Organization: Acme", "Tool: acme-sbom-1.0"],
			"licenseListVersion": "3.20"
		},
		"packages": [
			{
				"SPDXID": "SPDXRef-pkg",
				"name": "clean",
				"versionInfo": "1.0",
				"downloadLocation": "https://example.com/clean-1.0.tar.gz",
				"filesAnalyzed": true,
				"licenseConcluded": "MIT",
				"licenseDeclared": "MIT",
				"copyrightText": "Copyright Acme",
				"supplier": "Organization: Acme"
			}
		],
		"files": [
			{
				"SPDXID": "SPDXRef-file",
				"fileName": "main.c",
				"licenseConcluded": "MIT",
				"licenseInfoInFiles": ["MIT"],
				"copyrightText": "Copyright Acme"
			}
		],
		"documentDescribes": ["SPDXRef-pkg"]
	}`

	result := check.Run([]byte(clean), nil)

	assert.False(t, result.HasFindings())
	assert.Empty(t, result.Diagnostics())
	assert.Empty(t, result.ParseErrors())
}
