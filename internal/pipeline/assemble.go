package pipeline

import (
	"fmt"
	"log"

	"chapminer/internal/dataset"
	"chapminer/pkg/models"
)

// Assemble inner-joins interactions with domains on Target_ID, labels every
// row 1 and projects onto models.MasterColumns. Columns missing from the
// join are left out. The inputs are not modified.
func Assemble(interactions, domains *dataset.Table) (*dataset.Table, error) {
	joined, err := dataset.InnerJoin(interactions, domains, models.ColTargetID)
	if err != nil {
		return nil, fmt.Errorf("assemble: %w", err)
	}

	master := joined.WithConstant(models.ColInteractionLabel, "1").Select(models.MasterColumns...)
	log.Printf("[assemble] %d interactions x %d domain rows -> %d master rows",
		interactions.Len(), domains.Len(), master.Len())
	return master, nil
}
