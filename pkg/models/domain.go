package models

// DomainRecord is one Pfam domain of a partner protein. A protein with
// several domains yields several records.
type DomainRecord struct {
	TargetID          string `json:"target_id"`
	TargetProteinName string `json:"target_protein_name"`
	DomainID          string `json:"domain_id"`
}

const (
	ColTargetProteinName = "Target_Protein_Name"
	ColDomainID          = "Domain_ID"
)

var DomainColumns = []string{ColTargetID, ColTargetProteinName, ColDomainID}
