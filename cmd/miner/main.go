package main

import (
	"context"
	"log"
	"os"
	"time"

	"chapminer/internal/config"
	"chapminer/internal/dataset"
	"chapminer/internal/interactions"
	"chapminer/internal/pipeline"
	"chapminer/internal/store"
	"chapminer/internal/uniprot"
	"chapminer/pkg/database"
)

func main() {
	cfg, err := config.Load(configPath())
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx := context.Background()
	log.Println("--- starting chaperone domain miner ---")

	up := uniprot.NewClient(cfg.UniProt.BaseURL)
	up.PollInterval = cfg.UniProt.PollInterval.Duration

	sources := []interactions.Source{interactions.NewIntAct(cfg.IntAct.BaseURL, cfg.IntAct.Timeout.Duration)}
	switch {
	case cfg.BioGRIDActive():
		sources = append(sources, interactions.NewBioGRID(cfg.BioGRID.BaseURL, cfg.BioGRID.AccessKey, cfg.BioGRID.TaxID))
	case cfg.BioGRID.Enabled:
		log.Println("BioGRID enabled but no access key configured; skipping it")
	}

	annotator := pipeline.NewAnnotator(up)
	annotator.BatchSize = cfg.UniProt.BatchSize
	annotator.MaxIDLength = cfg.UniProt.MaxIDLength

	p := pipeline.New(cfg.Chaperones, up, pipeline.NewMiner(sources...), annotator)

	started := time.Now()
	rep, err := p.Run(ctx)
	if err != nil {
		log.Fatalf("pipeline failed: %v", err)
	}

	if err := writeOutputs(cfg.Output, rep); err != nil {
		log.Fatalf("write outputs failed: %v", err)
	}

	for _, f := range rep.Failures {
		log.Printf("skipped: %v", f)
	}

	if cfg.Store.Path != "" {
		persist(ctx, cfg.Store.Path, started, rep)
	}

	nInteractions, nDomains, nMaster := rep.Counts()
	switch rep.Outcome {
	case pipeline.OutcomeNoInteractions:
		log.Println("no interactions found; nothing written")
	case pipeline.OutcomeNoDomains:
		log.Printf("no domain information found for %d interactions; master table not written", nInteractions)
	default:
		log.Println("--- SUCCESS ---")
		log.Printf("✅ master dataset created: %s (%d rows, %d interactions, %d domain rows, %d failures)",
			cfg.Output.MasterPath(), nMaster, nInteractions, nDomains, len(rep.Failures))
	}
}

func configPath() string {
	if p := os.Getenv("CHAPMINER_CONFIG"); p != "" {
		return p
	}
	return "chapminer.toml"
}

// writeOutputs writes each table the run produced.
func writeOutputs(out config.OutputConfig, rep *pipeline.Report) error {
	if rep.Interactions.Empty() {
		return nil
	}
	if err := dataset.WriteCSV(out.InteractionsPath(), rep.Interactions); err != nil {
		return err
	}
	log.Printf("saved %d interactions to %s", rep.Interactions.Len(), out.InteractionsPath())

	if rep.Domains.Empty() {
		return nil
	}
	if err := dataset.WriteCSV(out.DomainsPath(), rep.Domains); err != nil {
		return err
	}
	log.Printf("saved %d domain rows to %s", rep.Domains.Len(), out.DomainsPath())

	if rep.Master == nil {
		return nil
	}
	return dataset.WriteCSV(out.MasterPath(), rep.Master)
}

// persist records the run in sqlite. Failures are logged only: the CSV
// files are the primary output.
func persist(ctx context.Context, path string, started time.Time, rep *pipeline.Report) {
	db, err := database.Open(database.Config{Path: path})
	if err != nil {
		log.Printf("[store] open %s: %v", path, err)
		return
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Printf("[store] migrate: %v", err)
		return
	}

	run, err := store.NewRepo(db).SaveRun(ctx, store.RunData{
		StartedAt:    started,
		Outcome:      string(rep.Outcome),
		Interactions: rep.Interactions,
		Domains:      rep.Domains,
		Master:       rep.Master,
	})
	if err != nil {
		log.Printf("[store] save run: %v", err)
		return
	}
	log.Printf("[store] recorded run %s in %s", run.ID, path)
}
