package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chapminer/internal/config"
	"chapminer/internal/dataset"
	"chapminer/internal/pipeline"
	"chapminer/pkg/models"
)

func TestWriteOutputs_StopsAtEmptyDomains(t *testing.T) {
	out := config.Default().Output
	out.Dir = t.TempDir()

	rep := &pipeline.Report{
		Outcome: pipeline.OutcomeNoDomains,
		Interactions: dataset.InteractionsTable([]models.InteractionEdge{
			{ChaperoneName: "DNJA1_HUMAN", ChaperoneID: "P1", TargetID: "P2", Source: "IntAct"},
		}),
		Domains: dataset.NewTable(models.DomainColumns...),
	}
	require.NoError(t, writeOutputs(out, rep))

	got, err := dataset.ReadCSV(out.InteractionsPath())
	require.NoError(t, err)
	assert.Equal(t, 1, got.Len())

	_, err = os.Stat(out.DomainsPath())
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(out.MasterPath())
	assert.True(t, os.IsNotExist(err))
}

func TestWriteOutputs_NoInteractions(t *testing.T) {
	out := config.Default().Output
	out.Dir = t.TempDir()

	require.NoError(t, writeOutputs(out, &pipeline.Report{Outcome: pipeline.OutcomeNoInteractions}))

	entries, err := os.ReadDir(out.Dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWriteOutputs_Complete(t *testing.T) {
	out := config.Default().Output
	out.Dir = filepath.Join(t.TempDir(), "results")

	master := dataset.NewTable(models.MasterColumns...)
	require.NoError(t, master.Append("DNJA1_HUMAN", "P1", "P2", "Foo", "PF001", "1", "IntAct"))
	rep := &pipeline.Report{
		Outcome: pipeline.OutcomeComplete,
		Interactions: dataset.InteractionsTable([]models.InteractionEdge{
			{ChaperoneName: "DNJA1_HUMAN", ChaperoneID: "P1", TargetID: "P2", Source: "IntAct"},
		}),
		Domains: dataset.DomainsTable([]models.DomainRecord{
			{TargetID: "P2", TargetProteinName: "Foo", DomainID: "PF001"},
		}),
		Master: master,
	}
	require.NoError(t, writeOutputs(out, rep))

	got, err := dataset.ReadCSV(out.MasterPath())
	require.NoError(t, err)
	assert.Equal(t, models.MasterColumns, got.Columns)
	assert.Equal(t, master.Rows, got.Rows)
}
