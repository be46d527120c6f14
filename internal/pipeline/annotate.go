package pipeline

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"chapminer/internal/dataset"
	"chapminer/internal/uniprot"
	"chapminer/pkg/models"
)

const (
	DefaultBatchSize   = 20
	DefaultMaxIDLength = 15

	// UnknownProteinName replaces missing protein names.
	UnknownProteinName = "Unknown"
)

// DomainSearcher looks up names and Pfam cross-references for a batch of
// accessions. The table uses UniProt's TSV headers (Entry, Protein names,
// Pfam).
type DomainSearcher interface {
	SearchDomains(ctx context.Context, accessions []string) (*dataset.Table, error)
}

type Annotator struct {
	Searcher    DomainSearcher
	BatchSize   int
	MaxIDLength int
}

func NewAnnotator(s DomainSearcher) *Annotator {
	return &Annotator{Searcher: s, BatchSize: DefaultBatchSize, MaxIDLength: DefaultMaxIDLength}
}

// UniqueTargets returns the distinct partner accessions of edges, sorted.
func UniqueTargets(edges []models.InteractionEdge) []string {
	set := make(map[string]struct{}, len(edges))
	for _, e := range edges {
		set[e.TargetID] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Batches splits ids into consecutive groups of at most size elements.
func Batches(ids []string, size int) [][]string {
	if size <= 0 {
		size = DefaultBatchSize
	}
	out := make([][]string, 0, (len(ids)+size-1)/size)
	for i := 0; i < len(ids); i += size {
		end := min(i+size, len(ids))
		out = append(out, ids[i:end])
	}
	return out
}

// Annotate fetches domain records for accessions, one remote query per
// batch. A failing batch contributes no records and is reported.
func (a *Annotator) Annotate(ctx context.Context, accessions []string) ([]models.DomainRecord, []Failure) {
	ids := dedupe(accessions)
	log.Printf("[annotate] retrieving domains for %d unique targets", len(ids))

	var (
		records  []models.DomainRecord
		failures []Failure
	)

	size := a.batchSize()
	for i, batch := range Batches(ids, size) {
		start := i * size
		key := fmt.Sprintf("batch %d-%d", start, start+size)

		valid := make([]string, 0, len(batch))
		for _, id := range batch {
			if len(id) > a.maxIDLength() {
				log.Printf("[annotate] %s: dropping over-long accession %q", key, id)
				continue
			}
			valid = append(valid, id)
		}
		if len(valid) == 0 {
			continue
		}

		tb, err := a.Searcher.SearchDomains(ctx, valid)
		if err != nil {
			f := Failure{Stage: StageAnnotate, Key: key, Err: err}
			log.Printf("[annotate] error fetching %s: %v", key, err)
			failures = append(failures, f)
			continue
		}
		records = append(records, DomainRecords(tb)...)
	}

	return records, failures
}

func (a *Annotator) batchSize() int {
	if a.BatchSize <= 0 {
		return DefaultBatchSize
	}
	return a.BatchSize
}

func (a *Annotator) maxIDLength() int {
	if a.MaxIDLength <= 0 {
		return DefaultMaxIDLength
	}
	return a.MaxIDLength
}

// DomainRecords expands annotation rows into one record per Pfam domain.
// Rows without an identifier or with an empty/"nan" Pfam field yield nothing.
func DomainRecords(tb *dataset.Table) []models.DomainRecord {
	if tb.Empty() {
		return nil
	}

	var out []models.DomainRecord
	for i := range tb.Rows {
		target := models.NormalizeAccession(tb.Value(i, uniprot.ColEntry))
		if target == "" {
			continue
		}

		pfam := strings.TrimSpace(tb.Value(i, uniprot.ColPfam))
		if isMissing(pfam) {
			continue
		}

		name := strings.TrimSpace(tb.Value(i, uniprot.ColProteinNames))
		if isMissing(name) {
			name = UnknownProteinName
		}
		name = shortName(name)

		for _, tok := range strings.Split(pfam, ";") {
			tok = strings.TrimSpace(tok)
			if tok == "" {
				continue
			}
			out = append(out, models.DomainRecord{
				TargetID:          target,
				TargetProteinName: name,
				DomainID:          tok,
			})
		}
	}
	return out
}

// shortName keeps the recommended name: text before the first '(' which
// starts the alternative names.
func shortName(name string) string {
	if i := strings.IndexByte(name, '('); i >= 0 {
		name = name[:i]
	}
	return strings.TrimSpace(name)
}

func isMissing(v string) bool {
	return v == "" || strings.EqualFold(v, "nan")
}

func dedupe(ids []string) []string {
	set := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = models.NormalizeAccession(id)
		if id == "" {
			continue
		}
		if _, ok := set[id]; ok {
			continue
		}
		set[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
