// Package pipeline builds the chaperone/partner domain dataset: it resolves
// chaperone names, mines interaction partners, annotates partners with Pfam
// domains and joins the two tables into the labeled master table.
package pipeline

import (
	"context"
	"log"

	"chapminer/internal/dataset"
)

type Pipeline struct {
	Chaperones []string
	Mapper     Mapper
	Miner      *Miner
	Annotator  *Annotator
}

func New(chaperones []string, mapper Mapper, miner *Miner, annotator *Annotator) *Pipeline {
	return &Pipeline{Chaperones: chaperones, Mapper: mapper, Miner: miner, Annotator: annotator}
}

// Run executes the stages in order, each consuming the full output of the
// previous one. Only a failed name mapping returns an error; an empty
// interaction or domain table ends the run early with the matching Outcome.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	mapping, err := Resolve(ctx, p.Mapper, p.Chaperones)
	if err != nil {
		return nil, err
	}
	rep := &Report{Mapping: mapping}

	edges, failures := p.Miner.Mine(ctx, mapping)
	rep.Failures = append(rep.Failures, failures...)
	rep.Interactions = dataset.InteractionsTable(edges)
	if rep.Interactions.Empty() {
		log.Printf("[pipeline] no interactions found")
		rep.Outcome = OutcomeNoInteractions
		return rep, nil
	}

	records, failures := p.Annotator.Annotate(ctx, UniqueTargets(edges))
	rep.Failures = append(rep.Failures, failures...)
	rep.Domains = dataset.DomainsTable(records)
	if rep.Domains.Empty() {
		log.Printf("[pipeline] no domain information found for targets")
		rep.Outcome = OutcomeNoDomains
		return rep, nil
	}

	master, err := Assemble(rep.Interactions, rep.Domains)
	if err != nil {
		return nil, err
	}
	rep.Master = master
	rep.Outcome = OutcomeComplete
	return rep, nil
}
