// Package dataset holds the column-named tables the pipeline persists and
// the relational operations (join, projection) used to assemble them.
package dataset

import (
	"fmt"
	"strconv"

	"chapminer/pkg/models"
)

// Table is a header plus string rows. Every row has len(Columns) fields.
type Table struct {
	Columns []string
	Rows    [][]string
}

func NewTable(columns ...string) *Table {
	return &Table{Columns: append([]string(nil), columns...)}
}

func (t *Table) Len() int { return len(t.Rows) }

func (t *Table) Empty() bool { return t == nil || len(t.Rows) == 0 }

// Index returns the position of column name, or -1.
func (t *Table) Index(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

func (t *Table) Append(row ...string) error {
	if len(row) != len(t.Columns) {
		return fmt.Errorf("row has %d fields, table has %d columns", len(row), len(t.Columns))
	}
	t.Rows = append(t.Rows, append([]string(nil), row...))
	return nil
}

// Value returns the field of row i in column name ("" when absent).
func (t *Table) Value(i int, name string) string {
	idx := t.Index(name)
	if idx < 0 || i < 0 || i >= len(t.Rows) {
		return ""
	}
	return t.Rows[i][idx]
}

// WithConstant returns a copy of t with an extra column holding value.
func (t *Table) WithConstant(name, value string) *Table {
	out := NewTable(append(append([]string(nil), t.Columns...), name)...)
	out.Rows = make([][]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		row := make([]string, 0, len(r)+1)
		row = append(row, r...)
		out.Rows = append(out.Rows, append(row, value))
	}
	return out
}

// Select projects t onto columns, in that order. Columns that t does not
// have are skipped.
func (t *Table) Select(columns ...string) *Table {
	var keep []int
	var names []string
	for _, c := range columns {
		if idx := t.Index(c); idx >= 0 {
			keep = append(keep, idx)
			names = append(names, c)
		}
	}

	out := NewTable(names...)
	out.Rows = make([][]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		row := make([]string, len(keep))
		for i, idx := range keep {
			row[i] = r[idx]
		}
		out.Rows = append(out.Rows, row)
	}
	return out
}

// InnerJoin joins left and right on the column key. Output rows follow the
// order of left, and for each left row the order of its matches in right.
// The output has all left columns followed by the right columns except key;
// a right column whose name already exists on the left is skipped.
func InnerJoin(left, right *Table, key string) (*Table, error) {
	li := left.Index(key)
	if li < 0 {
		return nil, fmt.Errorf("join: left table has no column %q", key)
	}
	ri := right.Index(key)
	if ri < 0 {
		return nil, fmt.Errorf("join: right table has no column %q", key)
	}

	var rightCols []int
	columns := append([]string(nil), left.Columns...)
	for idx, c := range right.Columns {
		if idx == ri || left.Index(c) >= 0 {
			continue
		}
		rightCols = append(rightCols, idx)
		columns = append(columns, c)
	}

	byKey := make(map[string][]int, len(right.Rows))
	for i, r := range right.Rows {
		byKey[r[ri]] = append(byKey[r[ri]], i)
	}

	out := NewTable(columns...)
	for _, l := range left.Rows {
		for _, m := range byKey[l[li]] {
			row := make([]string, 0, len(columns))
			row = append(row, l...)
			for _, idx := range rightCols {
				row = append(row, right.Rows[m][idx])
			}
			out.Rows = append(out.Rows, row)
		}
	}
	return out, nil
}

func InteractionsTable(edges []models.InteractionEdge) *Table {
	t := NewTable(models.InteractionColumns...)
	t.Rows = make([][]string, 0, len(edges))
	for _, e := range edges {
		t.Rows = append(t.Rows, []string{e.ChaperoneName, e.ChaperoneID, e.TargetID, e.Source})
	}
	return t
}

func DomainsTable(records []models.DomainRecord) *Table {
	t := NewTable(models.DomainColumns...)
	t.Rows = make([][]string, 0, len(records))
	for _, r := range records {
		t.Rows = append(t.Rows, []string{r.TargetID, r.TargetProteinName, r.DomainID})
	}
	return t
}

// Edges converts an interactions table back into edges.
func Edges(t *Table) []models.InteractionEdge {
	out := make([]models.InteractionEdge, 0, t.Len())
	for i := range t.Rows {
		out = append(out, models.InteractionEdge{
			ChaperoneName: t.Value(i, models.ColChaperoneName),
			ChaperoneID:   t.Value(i, models.ColChaperoneID),
			TargetID:      t.Value(i, models.ColTargetID),
			Source:        t.Value(i, models.ColSource),
		})
	}
	return out
}

func DomainRecords(t *Table) []models.DomainRecord {
	out := make([]models.DomainRecord, 0, t.Len())
	for i := range t.Rows {
		out = append(out, models.DomainRecord{
			TargetID:          t.Value(i, models.ColTargetID),
			TargetProteinName: t.Value(i, models.ColTargetProteinName),
			DomainID:          t.Value(i, models.ColDomainID),
		})
	}
	return out
}

// MasterRows converts a master table into typed rows. A missing or
// unparsable label column reads as 1.
func MasterRows(t *Table) []models.MasterRow {
	out := make([]models.MasterRow, 0, t.Len())
	for i := range t.Rows {
		label := 1
		if v := t.Value(i, models.ColInteractionLabel); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				label = n
			}
		}
		out = append(out, models.MasterRow{
			ChaperoneName:     t.Value(i, models.ColChaperoneName),
			ChaperoneID:       t.Value(i, models.ColChaperoneID),
			TargetID:          t.Value(i, models.ColTargetID),
			TargetProteinName: t.Value(i, models.ColTargetProteinName),
			DomainID:          t.Value(i, models.ColDomainID),
			InteractionLabel:  label,
			Source:            t.Value(i, models.ColSource),
		})
	}
	return out
}
