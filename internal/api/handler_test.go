package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chapminer/internal/dataset"
	"chapminer/internal/store"
	"chapminer/pkg/database"
	"chapminer/pkg/models"
)

func setupRouter(t *testing.T) (*gin.Engine, models.Run) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Open(database.Config{Path: filepath.Join(t.TempDir(), "api.db")})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))

	repo := store.NewRepo(db)
	master := dataset.NewTable(models.MasterColumns...)
	require.NoError(t, master.Append("DNJA1_HUMAN", "P1", "P2", "Foo", "PF001", "1", "IntAct"))
	require.NoError(t, master.Append("DNJA1_HUMAN", "P1", "P2", "Foo", "PF002", "1", "IntAct"))
	interactions := dataset.InteractionsTable([]models.InteractionEdge{
		{ChaperoneName: "DNJA1_HUMAN", ChaperoneID: "P1", TargetID: "P2", Source: "IntAct"},
	})
	domains := dataset.DomainsTable([]models.DomainRecord{
		{TargetID: "P2", TargetProteinName: "Foo", DomainID: "PF001"},
		{TargetID: "P2", TargetProteinName: "Foo", DomainID: "PF002"},
	})
	run, err := repo.SaveRun(context.Background(), store.RunData{
		StartedAt:    time.Now(),
		Outcome:      "complete",
		Interactions: interactions,
		Domains:      domains,
		Master:       master,
	})
	require.NoError(t, err)

	r := gin.New()
	NewHandler(repo).RegisterRoutes(r.Group("/runs"))
	return r, run
}

func get(t *testing.T, r http.Handler, path string) (int, map[string]any) {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestListRuns(t *testing.T) {
	r, run := setupRouter(t)

	code, body := get(t, r, "/runs")
	assert.Equal(t, http.StatusOK, code)
	items := body["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, run.ID, items[0].(map[string]any)["id"])
}

func TestGetRun_Latest(t *testing.T) {
	r, run := setupRouter(t)

	code, body := get(t, r, "/runs/latest")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, run.ID, body["id"])
	assert.EqualValues(t, 2, body["master_rows"])
}

func TestGetRun_NotFound(t *testing.T) {
	r, _ := setupRouter(t)

	code, _ := get(t, r, "/runs/nope")
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = get(t, r, "/runs/nope/master")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestListMaster(t *testing.T) {
	r, run := setupRouter(t)

	code, body := get(t, r, "/runs/"+run.ID+"/master?domain=PF002")
	assert.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 1, body["total"])
	items := body["items"].([]any)
	require.Len(t, items, 1)
	row := items[0].(map[string]any)
	assert.Equal(t, "PF002", row["domain_id"])
	assert.EqualValues(t, 1, row["interaction_label"])
}

func TestListInteractionsAndDomains(t *testing.T) {
	r, _ := setupRouter(t)

	code, body := get(t, r, "/runs/latest/interactions?chaperone=DNJA1_HUMAN")
	assert.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 1, body["total"])

	code, body = get(t, r, "/runs/latest/domains?target=P2")
	assert.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 2, body["total"])

	code, body = get(t, r, "/runs/latest/domains?target=P404")
	assert.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 0, body["total"])
	assert.Empty(t, body["items"])
}
