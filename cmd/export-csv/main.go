package main

import (
	"context"
	"flag"
	"log"
	"path/filepath"
	"strconv"
	"time"

	"chapminer/internal/config"
	"chapminer/internal/dataset"
	"chapminer/internal/store"
	"chapminer/pkg/database"
	"chapminer/pkg/models"
)

func main() {
	var (
		runID  = flag.String("run", store.LatestRun, "run id to export")
		outDir = flag.String("out", "data", "output directory")
		dbPath = flag.String("db", database.DefaultConfig().Path, "sqlite database path")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := database.MustOpen(database.Config{Path: *dbPath})
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	repo := store.NewRepo(db)
	run, err := repo.GetRun(ctx, *runID)
	if err != nil {
		log.Fatalf("lookup run failed: %v", err)
	}
	if run == nil {
		log.Fatalf("run %q not found", *runID)
	}

	if err := exportRun(ctx, repo, run.ID, *outDir); err != nil {
		log.Fatalf("export failed: %v", err)
	}

	log.Printf("✅ exported run %s to %s", run.ID, *outDir)
}

func exportRun(ctx context.Context, repo *store.Repo, runID, outDir string) error {
	edges, err := repo.ListInteractions(ctx, runID, "")
	if err != nil {
		return err
	}
	if err := dataset.WriteCSV(filepath.Join(outDir, config.InteractionsFile), dataset.InteractionsTable(edges)); err != nil {
		return err
	}

	domains, err := repo.ListDomains(ctx, runID, "")
	if err != nil {
		return err
	}
	if err := dataset.WriteCSV(filepath.Join(outDir, config.DomainsFile), dataset.DomainsTable(domains)); err != nil {
		return err
	}

	master := dataset.NewTable(models.MasterColumns...)
	q := store.MasterQuery{Limit: 1000}
	for {
		rows, err := repo.ListMaster(ctx, runID, q)
		if err != nil {
			return err
		}
		for _, m := range rows {
			if err := master.Append(m.ChaperoneName, m.ChaperoneID, m.TargetID, m.TargetProteinName,
				m.DomainID, strconv.Itoa(m.InteractionLabel), m.Source); err != nil {
				return err
			}
		}
		if len(rows) < q.Limit {
			break
		}
		q.Offset += q.Limit
	}
	return dataset.WriteCSV(filepath.Join(outDir, config.MasterFile), master)
}
