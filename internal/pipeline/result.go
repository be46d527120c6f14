package pipeline

import (
	"fmt"

	"chapminer/internal/dataset"
	"chapminer/pkg/models"
)

const (
	StageMine     = "mine"
	StageAnnotate = "annotate"
)

// Failure records a remote call whose error was absorbed: the item it
// concerns contributed no rows, and the run went on.
type Failure struct {
	Stage string
	Key   string // accession ("P31689 via IntAct") or batch range ("batch 0-20")
	Err   error
}

func (f Failure) Error() string {
	return fmt.Sprintf("%s %s: %v", f.Stage, f.Key, f.Err)
}

func (f Failure) Unwrap() error { return f.Err }

type Outcome string

const (
	OutcomeComplete       Outcome = "complete"
	OutcomeNoInteractions Outcome = "no_interactions"
	OutcomeNoDomains      Outcome = "no_domains"
)

// Report is the result of one run. Tables past the stage where the run
// stopped are nil.
type Report struct {
	Mapping      []models.MappedName
	Interactions *dataset.Table
	Domains      *dataset.Table
	Master       *dataset.Table
	Outcome      Outcome
	Failures     []Failure
}

// Counts returns the row counts of the three tables (zero for nil tables).
func (r *Report) Counts() (interactions, domains, master int) {
	if r.Interactions != nil {
		interactions = r.Interactions.Len()
	}
	if r.Domains != nil {
		domains = r.Domains.Len()
	}
	if r.Master != nil {
		master = r.Master.Len()
	}
	return
}
