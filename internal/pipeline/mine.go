package pipeline

import (
	"context"
	"fmt"
	"log"

	"chapminer/internal/interactions"
	"chapminer/pkg/models"
)

// Miner queries every source for each mapped chaperone, in mapping order.
type Miner struct {
	Sources []interactions.Source
}

func NewMiner(sources ...interactions.Source) *Miner {
	return &Miner{Sources: sources}
}

// Mine returns one edge per distinct partner per source. A failing source
// call contributes no edges for that chaperone and is reported as a Failure.
func (m *Miner) Mine(ctx context.Context, mapping []models.MappedName) ([]models.InteractionEdge, []Failure) {
	var (
		edges    []models.InteractionEdge
		failures []Failure
	)

	for _, entry := range mapping {
		acc := models.NormalizeAccession(entry.Accession)
		log.Printf("[mine] processing %s (%s)", entry.Name, acc)

		if !validAccession(acc) {
			log.Printf("[mine] skipping %s: invalid accession format %q", entry.Name, entry.Raw)
			continue
		}

		for _, src := range m.Sources {
			partners, err := src.Partners(ctx, acc)
			if err != nil {
				f := Failure{Stage: StageMine, Key: fmt.Sprintf("%s via %s", acc, src.Name()), Err: err}
				log.Printf("[mine] %v", f)
				failures = append(failures, f)
				continue
			}

			seen := make(map[string]struct{}, len(partners))
			for _, p := range partners {
				p = models.NormalizeAccession(p)
				if p == "" || p == acc {
					continue
				}
				if _, dup := seen[p]; dup {
					continue
				}
				seen[p] = struct{}{}
				edges = append(edges, models.InteractionEdge{
					ChaperoneName: entry.Name,
					ChaperoneID:   acc,
					TargetID:      p,
					Source:        src.Name(),
				})
			}
			log.Printf("[mine] found %d partners in %s", len(seen), src.Name())
		}
	}

	return edges, failures
}

// validAccession accepts non-empty identifiers made of letters, digits and
// underscores, which covers accessions and entry names.
func validAccession(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
		default:
			return false
		}
	}
	return true
}
