package models

import "time"

// Run is one recorded pipeline execution.
type Run struct {
	ID           string    `json:"id"`
	StartedAt    time.Time `json:"started_at"`
	FinishedAt   time.Time `json:"finished_at"`
	Outcome      string    `json:"outcome"`
	Interactions int       `json:"interactions"`
	Domains      int       `json:"domains"`
	MasterRows   int       `json:"master_rows"`
}
