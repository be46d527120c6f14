package pipeline

import (
	"context"
	"fmt"
	"log"

	"chapminer/pkg/models"
)

// Mapper resolves names to accessions with a single batched request.
// Names it cannot resolve are absent from the result.
type Mapper interface {
	MapNames(ctx context.Context, names []string) ([]models.MappedName, error)
}

// Resolve maps the chaperone names. Its error is fatal for the run.
func Resolve(ctx context.Context, m Mapper, names []string) ([]models.MappedName, error) {
	log.Printf("[resolve] mapping %d chaperone names to UniProt accessions", len(names))

	mapping, err := m.MapNames(ctx, names)
	if err != nil {
		return nil, fmt.Errorf("map chaperone names: %w", err)
	}

	log.Printf("[resolve] mapped %d chaperones", len(mapping))
	return mapping, nil
}
