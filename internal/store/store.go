// Package store persists pipeline runs and their three tables in sqlite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"chapminer/internal/dataset"
	"chapminer/pkg/models"
)

// LatestRun is accepted wherever a run id is expected.
const LatestRun = "latest"

type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

// RunData is what SaveRun records. Nil tables store no rows.
type RunData struct {
	StartedAt    time.Time
	Outcome      string
	Interactions *dataset.Table
	Domains      *dataset.Table
	Master       *dataset.Table
}

// SaveRun stores a run and its tables in one transaction and returns the
// run with its new id.
func (r *Repo) SaveRun(ctx context.Context, data RunData) (models.Run, error) {
	run := models.Run{
		ID:         uuid.NewString(),
		StartedAt:  data.StartedAt.UTC(),
		FinishedAt: time.Now().UTC(),
		Outcome:    data.Outcome,
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = run.FinishedAt
	}

	var (
		edges   []models.InteractionEdge
		domains []models.DomainRecord
		master  []models.MasterRow
	)
	if data.Interactions != nil {
		edges = dataset.Edges(data.Interactions)
	}
	if data.Domains != nil {
		domains = dataset.DomainRecords(data.Domains)
	}
	if data.Master != nil {
		master = dataset.MasterRows(data.Master)
	}
	run.Interactions, run.Domains, run.MasterRows = len(edges), len(domains), len(master)

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return run, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO runs (id, started_at, finished_at, outcome, interactions, domains, master_rows)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.StartedAt, run.FinishedAt, run.Outcome, run.Interactions, run.Domains, run.MasterRows); err != nil {
		return run, fmt.Errorf("insert run: %w", err)
	}

	if err := insertEdges(ctx, tx, run.ID, edges); err != nil {
		return run, err
	}
	if err := insertDomains(ctx, tx, run.ID, domains); err != nil {
		return run, err
	}
	if err := insertMaster(ctx, tx, run.ID, master); err != nil {
		return run, err
	}

	if err := tx.Commit(); err != nil {
		return run, fmt.Errorf("commit tx: %w", err)
	}
	return run, nil
}

func insertEdges(ctx context.Context, tx *sql.Tx, runID string, edges []models.InteractionEdge) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO interactions (run_id, seq, chaperone_name, chaperone_id, target_id, source)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare interactions: %w", err)
	}
	defer stmt.Close()

	for i, e := range edges {
		if _, err := stmt.ExecContext(ctx, runID, i, e.ChaperoneName, e.ChaperoneID, e.TargetID, nullString(e.Source)); err != nil {
			return fmt.Errorf("insert interaction %s/%s: %w", e.ChaperoneID, e.TargetID, err)
		}
	}
	return nil
}

func insertDomains(ctx context.Context, tx *sql.Tx, runID string, records []models.DomainRecord) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO target_domains (run_id, seq, target_id, target_protein_name, domain_id)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare domains: %w", err)
	}
	defer stmt.Close()

	for i, d := range records {
		if _, err := stmt.ExecContext(ctx, runID, i, d.TargetID, nullString(d.TargetProteinName), d.DomainID); err != nil {
			return fmt.Errorf("insert domain %s/%s: %w", d.TargetID, d.DomainID, err)
		}
	}
	return nil
}

func insertMaster(ctx context.Context, tx *sql.Tx, runID string, rows []models.MasterRow) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO master_rows (run_id, seq, chaperone_name, chaperone_id, target_id, target_protein_name, domain_id, interaction_label, source)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare master: %w", err)
	}
	defer stmt.Close()

	for i, m := range rows {
		if _, err := stmt.ExecContext(ctx, runID, i, m.ChaperoneName, m.ChaperoneID, m.TargetID,
			nullString(m.TargetProteinName), m.DomainID, m.InteractionLabel, nullString(m.Source)); err != nil {
			return fmt.Errorf("insert master row %d: %w", i, err)
		}
	}
	return nil
}

// ResolveRunID maps LatestRun to the id of the most recent run. It returns
// "" when no run matches.
func (r *Repo) ResolveRunID(ctx context.Context, id string) (string, error) {
	run, err := r.GetRun(ctx, id)
	if err != nil || run == nil {
		return "", err
	}
	return run.ID, nil
}

func (r *Repo) GetRun(ctx context.Context, id string) (*models.Run, error) {
	query := `SELECT id, started_at, finished_at, outcome, interactions, domains, master_rows FROM runs WHERE id = ?`
	args := []any{id}
	if id == LatestRun {
		query = `SELECT id, started_at, finished_at, outcome, interactions, domains, master_rows FROM runs ORDER BY rowid DESC LIMIT 1`
		args = nil
	}

	var run models.Run
	err := r.DB.QueryRowContext(ctx, query, args...).Scan(
		&run.ID, &run.StartedAt, &run.FinishedAt, &run.Outcome, &run.Interactions, &run.Domains, &run.MasterRows,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan run: %w", err)
	}
	return &run, nil
}

func (r *Repo) ListRuns(ctx context.Context, limit int) ([]models.Run, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, started_at, finished_at, outcome, interactions, domains, master_rows
		FROM runs
		ORDER BY rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	out := make([]models.Run, 0, limit)
	for rows.Next() {
		var run models.Run
		if err := rows.Scan(&run.ID, &run.StartedAt, &run.FinishedAt, &run.Outcome, &run.Interactions, &run.Domains, &run.MasterRows); err != nil {
			return nil, fmt.Errorf("list runs scan: %w", err)
		}
		out = append(out, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

func (r *Repo) ListInteractions(ctx context.Context, runID, chaperone string) ([]models.InteractionEdge, error) {
	query := `SELECT chaperone_name, chaperone_id, target_id, source FROM interactions WHERE run_id = ?`
	args := []any{runID}
	if c := strings.TrimSpace(chaperone); c != "" {
		query += ` AND chaperone_name = ?`
		args = append(args, c)
	}
	query += ` ORDER BY seq`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list interactions: %w", err)
	}
	defer rows.Close()

	out := []models.InteractionEdge{}
	for rows.Next() {
		var (
			e      models.InteractionEdge
			source sql.NullString
		)
		if err := rows.Scan(&e.ChaperoneName, &e.ChaperoneID, &e.TargetID, &source); err != nil {
			return nil, fmt.Errorf("list interactions scan: %w", err)
		}
		e.Source = source.String
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

func (r *Repo) ListDomains(ctx context.Context, runID, target string) ([]models.DomainRecord, error) {
	query := `SELECT target_id, target_protein_name, domain_id FROM target_domains WHERE run_id = ?`
	args := []any{runID}
	if t := models.NormalizeAccession(target); t != "" {
		query += ` AND target_id = ?`
		args = append(args, t)
	}
	query += ` ORDER BY seq`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list domains: %w", err)
	}
	defer rows.Close()

	out := []models.DomainRecord{}
	for rows.Next() {
		var (
			d    models.DomainRecord
			name sql.NullString
		)
		if err := rows.Scan(&d.TargetID, &name, &d.DomainID); err != nil {
			return nil, fmt.Errorf("list domains scan: %w", err)
		}
		d.TargetProteinName = name.String
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

type MasterQuery struct {
	Chaperone string
	Domain    string
	Limit     int
	Offset    int
}

func (r *Repo) CountMaster(ctx context.Context, runID string, q MasterQuery) (int, error) {
	sqlStr, args := buildMasterSQL(runID, q, true)
	var total int
	if err := r.DB.QueryRowContext(ctx, sqlStr, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count scan: %w", err)
	}
	return total, nil
}

func (r *Repo) ListMaster(ctx context.Context, runID string, q MasterQuery) ([]models.MasterRow, error) {
	sqlStr, args := buildMasterSQL(runID, q, false)

	rows, err := r.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("list master: %w", err)
	}
	defer rows.Close()

	out := []models.MasterRow{}
	for rows.Next() {
		var (
			m      models.MasterRow
			name   sql.NullString
			source sql.NullString
		)
		if err := rows.Scan(&m.ChaperoneName, &m.ChaperoneID, &m.TargetID, &name, &m.DomainID, &m.InteractionLabel, &source); err != nil {
			return nil, fmt.Errorf("list master scan: %w", err)
		}
		m.TargetProteinName = name.String
		m.Source = source.String
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

// buildMasterSQL builds either COUNT(*) or the paged SELECT over one run.
func buildMasterSQL(runID string, q MasterQuery, countOnly bool) (string, []any) {
	sqlStr := `
		SELECT chaperone_name, chaperone_id, target_id, target_protein_name, domain_id, interaction_label, source
		FROM master_rows
	`
	if countOnly {
		sqlStr = `SELECT COUNT(*) FROM master_rows`
	}

	where := []string{"run_id = ?"}
	args := []any{runID}

	if c := strings.TrimSpace(q.Chaperone); c != "" {
		where = append(where, "chaperone_name = ?")
		args = append(args, c)
	}
	if d := strings.TrimSpace(q.Domain); d != "" {
		where = append(where, "UPPER(domain_id) = ?")
		args = append(args, strings.ToUpper(d))
	}
	sqlStr += " WHERE " + strings.Join(where, " AND ")

	if !countOnly {
		sqlStr += " ORDER BY seq LIMIT ? OFFSET ?"
		limit := q.Limit
		if limit <= 0 || limit > 1000 {
			limit = 100
		}
		offset := q.Offset
		if offset < 0 {
			offset = 0
		}
		args = append(args, limit, offset)
	}

	return sqlStr, args
}

func nullString(raw string) sql.NullString {
	if raw == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: raw, Valid: true}
}
