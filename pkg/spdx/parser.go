package spdx

import (
	"fmt"
	"strings"
)

// ParseError reports every structural problem found while building a Document
// from a generic JSON value. The messages are intended for end users and are
// carried verbatim into check results.
type ParseError struct {
	Messages []string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing SPDX document: %s", strings.Join(e.Messages, "; "))
}

// Parse builds a Document from a decoded JSON object. All structural errors
// are accumulated; when any are found the returned error is a *ParseError and
// the document is nil. Values that are present but empty are accepted here —
// judging emptiness is the validators' job, not the parser's.
func Parse(raw map[string]any) (*Document, error) {
	p := &parser{}

	doc := &Document{
		CreationInfo:  p.parseCreationInfo(raw),
		Packages:      p.parsePackages(raw),
		Files:         p.parseFiles(raw),
		Relationships: p.parseRelationships(raw),
	}

	// documentDescribes is shorthand for DESCRIBES relationships from the
	// document element. Expand it, skipping targets that already have an
	// explicit relationship.
	for _, target := range p.stringSlice(raw, "documentDescribes", "document") {
		rel := Relationship{
			SPDXElementID:  doc.CreationInfo.SPDXID,
			Type:           RelationshipDescribes,
			RelatedElement: target,
		}
		if !containsRelationship(doc.Relationships, rel) {
			doc.Relationships = append(doc.Relationships, rel)
		}
	}

	if len(p.errs) > 0 {
		return nil, &ParseError{Messages: p.errs}
	}
	return doc, nil
}

type parser struct {
	errs []string
}

func (p *parser) errorf(format string, args ...any) {
	p.errs = append(p.errs, fmt.Sprintf(format, args...))
}

func (p *parser) parseCreationInfo(raw map[string]any) CreationInfo {
	ci := CreationInfo{
		SPDXVersion: p.requiredString(raw, "spdxVersion", "document"),
		DataLicense: p.optionalString(raw, "dataLicense", "document"),
		SPDXID:      p.requiredString(raw, "SPDXID", "document"),
		Name:        p.requiredString(raw, "name", "document"),
		Namespace:   p.requiredString(raw, "documentNamespace", "document"),
	}

	section, ok := raw["creationInfo"]
	if !ok {
		p.errorf("creationInfo does not exist")
		return ci
	}
	m, ok := section.(map[string]any)
	if !ok {
		p.errorf("creationInfo must be an object")
		return ci
	}

	ci.Created = p.requiredString(m, "created", "creationInfo")
	ci.Creators = p.stringSlice(m, "creators", "creationInfo")
	if _, ok := m["creators"]; !ok {
		p.errorf("creationInfo: missing required field %q", "creators")
	}
	ci.LicenseListVersion = p.optionalString(m, "licenseListVersion", "creationInfo")

	return ci
}

func (p *parser) parsePackages(raw map[string]any) []Package {
	entries := p.objectSlice(raw, "packages", "document")
	packages := make([]Package, 0, len(entries))
	for i, m := range entries {
		where := fmt.Sprintf("packages[%d]", i)
		pkg := Package{
			SPDXID:           p.requiredString(m, "SPDXID", where),
			Name:             p.requiredString(m, "name", where),
			Version:          p.optionalString(m, "versionInfo", where),
			DownloadLocation: p.requiredString(m, "downloadLocation", where),
			FilesAnalyzed:    true,
			Supplier:         ParseSupplier(p.optionalString(m, "supplier", where)),
			LicenseConcluded: ParseLicense(p.optionalString(m, "licenseConcluded", where)),
			LicenseDeclared:  ParseLicense(p.optionalString(m, "licenseDeclared", where)),
			CopyrightText:    p.optionalString(m, "copyrightText", where),
			Checksums:        p.parseChecksums(m, where),
		}
		// filesAnalyzed defaults to true when omitted, per the SPDX spec.
		if v, ok := m["filesAnalyzed"]; ok {
			if b, ok := v.(bool); ok {
				pkg.FilesAnalyzed = b
			} else {
				p.errorf("%s: field %q must be a boolean", where, "filesAnalyzed")
			}
		}
		packages = append(packages, pkg)
	}
	return packages
}

func (p *parser) parseFiles(raw map[string]any) []File {
	entries := p.objectSlice(raw, "files", "document")
	files := make([]File, 0, len(entries))
	for i, m := range entries {
		where := fmt.Sprintf("files[%d]", i)
		files = append(files, File{
			SPDXID:             p.requiredString(m, "SPDXID", where),
			Name:               p.requiredString(m, "fileName", where),
			LicenseConcluded:   ParseLicense(p.optionalString(m, "licenseConcluded", where)),
			LicenseInfoInFiles: p.stringSlice(m, "licenseInfoInFiles", where),
			CopyrightText:      p.optionalString(m, "copyrightText", where),
			Checksums:          p.parseChecksums(m, where),
		})
	}
	return files
}

func (p *parser) parseRelationships(raw map[string]any) []Relationship {
	entries := p.objectSlice(raw, "relationships", "document")
	rels := make([]Relationship, 0, len(entries))
	for i, m := range entries {
		where := fmt.Sprintf("relationships[%d]", i)
		rels = append(rels, Relationship{
			SPDXElementID:  p.requiredString(m, "spdxElementId", where),
			Type:           RelationshipType(p.requiredString(m, "relationshipType", where)),
			RelatedElement: p.requiredString(m, "relatedSpdxElement", where),
		})
	}
	return rels
}

func (p *parser) parseChecksums(m map[string]any, where string) []Checksum {
	entries := p.objectSlice(m, "checksums", where)
	sums := make([]Checksum, 0, len(entries))
	for i, cm := range entries {
		cwhere := fmt.Sprintf("%s.checksums[%d]", where, i)
		sums = append(sums, Checksum{
			Algorithm: p.requiredString(cm, "algorithm", cwhere),
			Value:     p.requiredString(cm, "checksumValue", cwhere),
		})
	}
	return sums
}

// requiredString reads a string field that must be present. Empty values are
// allowed; a missing key or a non-string value is an error.
func (p *parser) requiredString(m map[string]any, key, where string) string {
	v, ok := m[key]
	if !ok {
		p.errorf("%s: missing required field %q", where, key)
		return ""
	}
	s, ok := v.(string)
	if !ok {
		p.errorf("%s: field %q must be a string", where, key)
		return ""
	}
	return s
}

func (p *parser) optionalString(m map[string]any, key, where string) string {
	v, ok := m[key]
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		p.errorf("%s: field %q must be a string", where, key)
		return ""
	}
	return s
}

func (p *parser) stringSlice(m map[string]any, key, where string) []string {
	v, ok := m[key]
	if !ok {
		return nil
	}
	list, ok := v.([]any)
	if !ok {
		p.errorf("%s: field %q must be an array of strings", where, key)
		return nil
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		s, ok := item.(string)
		if !ok {
			p.errorf("%s: field %q must be an array of strings", where, key)
			return nil
		}
		out = append(out, s)
	}
	return out
}

func (p *parser) objectSlice(m map[string]any, key, where string) []map[string]any {
	v, ok := m[key]
	if !ok {
		return nil
	}
	list, ok := v.([]any)
	if !ok {
		p.errorf("%s: field %q must be an array", where, key)
		return nil
	}
	out := make([]map[string]any, 0, len(list))
	for i, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			p.errorf("%s: %s[%d] must be an object", where, key, i)
			continue
		}
		out = append(out, obj)
	}
	return out
}

func containsRelationship(rels []Relationship, r Relationship) bool {
	for _, have := range rels {
		if have == r {
			return true
		}
	}
	return false
}
