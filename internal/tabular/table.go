package tabular

import (
	"sort"
	"strings"
)

// Table is one full in-memory copy of the tracking sheet: the header row, the
// reconciliation map derived from it, and every data row. Rows are rectangular;
// short input rows are padded and long ones truncated to the header width.
type Table struct {
	headers []string
	hmap    HeaderMap
	rows    [][]string
}

// New builds a table from a header row and data rows.
func New(headers []string, rows [][]string) *Table {
	t := &Table{
		headers: append([]string(nil), headers...),
		hmap:    BuildHeaderMap(headers),
		rows:    make([][]string, 0, len(rows)),
	}
	for _, r := range rows {
		t.rows = append(t.rows, fitRow(r, len(headers)))
	}
	return t
}

// NewEmpty builds a table with no columns and no rows, the stand-in for a
// missing or unreadable backing file.
func NewEmpty() *Table {
	return New(nil, nil)
}

func fitRow(r []string, width int) []string {
	out := make([]string, width)
	copy(out, r)
	return out
}

func (t *Table) Len() int     { return len(t.rows) }
func (t *Table) NumCols() int { return len(t.headers) }

// Headers returns the original header row in column order.
func (t *Table) Headers() []string {
	out := make([]string, len(t.headers))
	copy(out, t.headers)
	return out
}

// HeaderMap returns the reconciliation map for the current column set.
func (t *Table) HeaderMap() HeaderMap { return t.hmap }

// Row returns a copy of one data row.
func (t *Table) Row(i int) []string {
	out := make([]string, len(t.rows[i]))
	copy(out, t.rows[i])
	return out
}

// Rows returns a copy of all data rows.
func (t *Table) Rows() [][]string {
	out := make([][]string, len(t.rows))
	for i := range t.rows {
		out[i] = t.Row(i)
	}
	return out
}

// CellByKey returns the cell at row i in the column mapped to the canonical
// key; ok is false when the sheet has no such column.
func (t *Table) CellByKey(i int, key string) (string, bool) {
	col, ok := t.hmap.KeyIndex(key)
	if !ok {
		return "", false
	}
	return t.rows[i][col], true
}

// AppendRow adds one record keyed by original header. Headers the table does
// not have yet become new columns (existing rows get empty cells there);
// existing columns absent from the record are left empty. The reconciliation
// map is rebuilt when columns are added.
func (t *Table) AppendRow(record map[string]string) {
	added := false
	for _, h := range sortedNewHeaders(t, record) {
		t.headers = append(t.headers, h)
		for i := range t.rows {
			t.rows[i] = append(t.rows[i], "")
		}
		added = true
	}
	if added {
		t.hmap = BuildHeaderMap(t.headers)
	}
	row := make([]string, len(t.headers))
	used := make(map[string]bool, len(record))
	for i, h := range t.headers {
		if used[h] {
			continue
		}
		if v, ok := record[h]; ok {
			row[i] = v
			used[h] = true
		}
	}
	t.rows = append(t.rows, row)
}

// sortedNewHeaders lists record headers missing from the table, in the
// record's insertion-independent order (lexicographic, so appends are
// deterministic across runs).
func sortedNewHeaders(t *Table, record map[string]string) []string {
	have := make(map[string]bool, len(t.headers))
	for _, h := range t.headers {
		have[h] = true
	}
	var missing []string
	for h := range record {
		if !have[h] {
			missing = append(missing, h)
		}
	}
	sort.Strings(missing)
	return missing
}

// ValuesFor returns the distinct non-empty values of the column mapped to the
// canonical key, in first-occurrence order. When the column is absent, or
// present with no values, the fallback is returned verbatim. This feeds the
// form's dropdowns: historical spellings win over the built-in defaults.
func (t *Table) ValuesFor(key string, fallback []string) []string {
	col, ok := t.hmap.KeyIndex(key)
	if !ok {
		return fallback
	}
	seen := make(map[string]bool)
	var out []string
	for _, row := range t.rows {
		v := strings.TrimSpace(row[col])
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

// AggregateCounts returns how often each distinct non-empty value occurs in
// the column mapped to the canonical key. A missing column aggregates to an
// empty map, not an error.
func (t *Table) AggregateCounts(key string) map[string]int {
	counts := make(map[string]int)
	col, ok := t.hmap.KeyIndex(key)
	if !ok {
		return counts
	}
	for _, row := range t.rows {
		v := strings.TrimSpace(row[col])
		if v == "" {
			continue
		}
		counts[v]++
	}
	return counts
}

// FirstRowWhere returns the index of the first row whose cell under the
// canonical key equals want (surrounding whitespace ignored), or -1.
func (t *Table) FirstRowWhere(key, want string) int {
	col, ok := t.hmap.KeyIndex(key)
	if !ok {
		return -1
	}
	want = strings.TrimSpace(want)
	for i, row := range t.rows {
		if strings.TrimSpace(row[col]) == want {
			return i
		}
	}
	return -1
}
