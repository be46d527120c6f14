package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log"
	"time"

	"chapminer/internal/config"
	"chapminer/internal/dataset"
	"chapminer/internal/store"
	"chapminer/pkg/database"
	"chapminer/pkg/models"
)

func main() {
	var (
		interactionsIn = flag.String("interactions", config.InteractionsFile, "input CSV path for interactions")
		domainsIn      = flag.String("domains", config.DomainsFile, "input CSV path for target domains")
		masterIn       = flag.String("master", config.MasterFile, "input CSV path for the master table")
		dbPath         = flag.String("db", database.DefaultConfig().Path, "sqlite database path")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	interactions, err := readOptional(*interactionsIn, models.InteractionColumns)
	if err != nil {
		log.Fatalf("import interactions failed: %v", err)
	}
	domains, err := readOptional(*domainsIn, models.DomainColumns)
	if err != nil {
		log.Fatalf("import domains failed: %v", err)
	}
	master, err := readOptional(*masterIn, models.MasterColumns)
	if err != nil {
		log.Fatalf("import master failed: %v", err)
	}

	outcome := "complete"
	switch {
	case interactions.Empty():
		outcome = "no_interactions"
	case domains.Empty():
		outcome = "no_domains"
	}

	db := database.MustOpen(database.Config{Path: *dbPath})
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	run, err := store.NewRepo(db).SaveRun(ctx, store.RunData{
		StartedAt:    time.Now(),
		Outcome:      outcome,
		Interactions: interactions,
		Domains:      domains,
		Master:       master,
	})
	if err != nil {
		log.Fatalf("save run failed: %v", err)
	}

	log.Printf("✅ imported run %s: %d interactions, %d domain rows, %d master rows",
		run.ID, run.Interactions, run.Domains, run.MasterRows)
}

// readOptional reads a persisted table. A missing file yields an empty
// table: the miner skips later files when it stops early.
func readOptional(path string, columns []string) (*dataset.Table, error) {
	t, err := dataset.ReadCSV(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("%s not found, importing no rows", path)
		return dataset.NewTable(columns...), nil
	}
	if err != nil {
		return nil, err
	}
	return t.Select(columns...), nil
}
