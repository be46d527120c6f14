package models

// InteractionEdge records one chaperone–partner relationship as reported by
// a single interaction source.
type InteractionEdge struct {
	ChaperoneName string `json:"chaperone_name"`
	ChaperoneID   string `json:"chaperone_id"`
	TargetID      string `json:"target_id"`
	Source        string `json:"source"` // "IntAct", "BioGRID"
}

// Column names of the persisted interactions table.
const (
	ColChaperoneName = "Chaperone_Name"
	ColChaperoneID   = "Chaperone_ID"
	ColTargetID      = "Target_ID"
	ColSource        = "Source"
)

var InteractionColumns = []string{ColChaperoneName, ColChaperoneID, ColTargetID, ColSource}
