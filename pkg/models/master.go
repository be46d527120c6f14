package models

// MasterRow is an interaction joined with one domain of its partner.
// InteractionLabel is always 1: the dataset only holds observed interactions.
type MasterRow struct {
	ChaperoneName     string `json:"chaperone_name"`
	ChaperoneID       string `json:"chaperone_id"`
	TargetID          string `json:"target_id"`
	TargetProteinName string `json:"target_protein_name"`
	DomainID          string `json:"domain_id"`
	InteractionLabel  int    `json:"interaction_label"`
	Source            string `json:"source"`
}

const ColInteractionLabel = "Interaction_Label"

// MasterColumns is the output column order of the master table.
var MasterColumns = []string{
	ColChaperoneName,
	ColChaperoneID,
	ColTargetID,
	ColTargetProteinName,
	ColDomainID,
	ColInteractionLabel,
	ColSource,
}
