package pipeline

import (
	"context"

	"chapminer/internal/dataset"
	"chapminer/internal/uniprot"
	"chapminer/pkg/models"
)

type MockMapper struct {
	Mapping []models.MappedName
	Err     error
	Calls   [][]string
}

func (m *MockMapper) MapNames(ctx context.Context, names []string) ([]models.MappedName, error) {
	m.Calls = append(m.Calls, names)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Mapping, nil
}

type MockSource struct {
	SourceName string
	Results    map[string][]string
	Errs       map[string]error
	Queried    []string
}

func (m *MockSource) Name() string { return m.SourceName }

func (m *MockSource) Partners(ctx context.Context, accession string) ([]string, error) {
	m.Queried = append(m.Queried, accession)
	if err := m.Errs[accession]; err != nil {
		return nil, err
	}
	return m.Results[accession], nil
}

// annotation is one row of a fake UniProt search result.
type annotation struct {
	Name string
	Pfam string
}

type MockSearcher struct {
	Rows    map[string]annotation
	FailOn  map[string]error // keyed by any accession in the batch
	Batches [][]string
}

func (m *MockSearcher) SearchDomains(ctx context.Context, accessions []string) (*dataset.Table, error) {
	m.Batches = append(m.Batches, append([]string(nil), accessions...))
	for _, acc := range accessions {
		if err := m.FailOn[acc]; err != nil {
			return nil, err
		}
	}
	tb := dataset.NewTable(uniprot.ColEntry, uniprot.ColProteinNames, uniprot.ColPfam)
	for _, acc := range accessions {
		if row, ok := m.Rows[acc]; ok {
			_ = tb.Append(acc, row.Name, row.Pfam)
		}
	}
	return tb, nil
}
