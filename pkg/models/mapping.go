package models

import "strings"

// MappedName is one resolved entry of the name → accession mapping.
// Accession is empty when the service returned a value that does not carry
// a usable accession; Raw keeps the value as received for diagnostics.
type MappedName struct {
	Name      string `json:"name"`
	Accession string `json:"accession"`
	Raw       string `json:"raw,omitempty"`
}

// NormalizeAccession is the single normalization applied to accessions
// before they are compared or used as join keys.
func NormalizeAccession(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
