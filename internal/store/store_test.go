package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chapminer/internal/dataset"
	"chapminer/pkg/database"
	"chapminer/pkg/models"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(database.Config{Path: filepath.Join(t.TempDir(), "test.db")})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))
	return db
}

func sampleRun() RunData {
	interactions := dataset.InteractionsTable([]models.InteractionEdge{
		{ChaperoneName: "DNJA1_HUMAN", ChaperoneID: "P31689", TargetID: "P0DMV8", Source: "IntAct"},
		{ChaperoneName: "DNJB1_HUMAN", ChaperoneID: "P25685", TargetID: "Q9Y6K9", Source: "IntAct"},
	})
	domains := dataset.DomainsTable([]models.DomainRecord{
		{TargetID: "P0DMV8", TargetProteinName: "Heat shock 70 kDa protein 1A", DomainID: "PF00012"},
		{TargetID: "Q9Y6K9", TargetProteinName: "NF-kappa-B essential modulator", DomainID: "PF11577"},
		{TargetID: "Q9Y6K9", TargetProteinName: "NF-kappa-B essential modulator", DomainID: "PF16516"},
	})
	master := dataset.NewTable(models.MasterColumns...)
	_ = master.Append("DNJA1_HUMAN", "P31689", "P0DMV8", "Heat shock 70 kDa protein 1A", "PF00012", "1", "IntAct")
	_ = master.Append("DNJB1_HUMAN", "P25685", "Q9Y6K9", "NF-kappa-B essential modulator", "PF11577", "1", "IntAct")
	_ = master.Append("DNJB1_HUMAN", "P25685", "Q9Y6K9", "NF-kappa-B essential modulator", "PF16516", "1", "IntAct")

	return RunData{
		StartedAt:    time.Now().Add(-time.Minute),
		Outcome:      "complete",
		Interactions: interactions,
		Domains:      domains,
		Master:       master,
	}
}

func TestSaveRun_RoundTrip(t *testing.T) {
	repo := NewRepo(openTestDB(t))
	ctx := context.Background()

	run, err := repo.SaveRun(ctx, sampleRun())
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, 2, run.Interactions)
	assert.Equal(t, 3, run.Domains)
	assert.Equal(t, 3, run.MasterRows)

	got, err := repo.GetRun(ctx, run.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "complete", got.Outcome)
	assert.Equal(t, 3, got.MasterRows)

	edges, err := repo.ListInteractions(ctx, run.ID, "")
	require.NoError(t, err)
	assert.Equal(t, dataset.Edges(sampleRun().Interactions), edges)

	domains, err := repo.ListDomains(ctx, run.ID, "q9y6k9")
	require.NoError(t, err)
	require.Len(t, domains, 2)
	assert.Equal(t, "PF16516", domains[1].DomainID)

	master, err := repo.ListMaster(ctx, run.ID, MasterQuery{Chaperone: "DNJB1_HUMAN"})
	require.NoError(t, err)
	require.Len(t, master, 2)
	assert.Equal(t, 1, master[0].InteractionLabel)

	total, err := repo.CountMaster(ctx, run.ID, MasterQuery{Domain: "pf00012"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
}

func TestSaveRun_PartialTables(t *testing.T) {
	repo := NewRepo(openTestDB(t))
	ctx := context.Background()

	data := sampleRun()
	data.Outcome = "no_domains"
	data.Domains, data.Master = nil, nil

	run, err := repo.SaveRun(ctx, data)
	require.NoError(t, err)
	assert.Equal(t, 2, run.Interactions)
	assert.Zero(t, run.Domains)

	master, err := repo.ListMaster(ctx, run.ID, MasterQuery{})
	require.NoError(t, err)
	assert.Empty(t, master)
}

func TestLatestRun(t *testing.T) {
	repo := NewRepo(openTestDB(t))
	ctx := context.Background()

	id, err := repo.ResolveRunID(ctx, LatestRun)
	require.NoError(t, err)
	assert.Empty(t, id)

	_, err = repo.SaveRun(ctx, sampleRun())
	require.NoError(t, err)
	second, err := repo.SaveRun(ctx, sampleRun())
	require.NoError(t, err)

	id, err = repo.ResolveRunID(ctx, LatestRun)
	require.NoError(t, err)
	assert.Equal(t, second.ID, id)

	runs, err := repo.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, second.ID, runs[0].ID)
}

func TestGetRun_Unknown(t *testing.T) {
	repo := NewRepo(openTestDB(t))
	run, err := repo.GetRun(context.Background(), "does-not-exist")
	require.NoError(t, err)
	assert.Nil(t, run)
}

func TestBuildMasterSQL_Paging(t *testing.T) {
	sqlStr, args := buildMasterSQL("run-1", MasterQuery{Chaperone: "A", Limit: 5000, Offset: -3}, false)
	assert.Contains(t, sqlStr, "chaperone_name = ?")
	assert.Equal(t, []any{"run-1", "A", 100, 0}, args)

	sqlStr, args = buildMasterSQL("run-1", MasterQuery{}, true)
	assert.Contains(t, sqlStr, "COUNT(*)")
	assert.Equal(t, []any{"run-1"}, args)
}
