package tabular

import (
	"fmt"
	"strings"
	"time"
)

// Predicate decides whether one row belongs in a filtered view.
type Predicate func(r RowView) bool

// RowView is a read-only handle on one row during filtering.
type RowView struct {
	t *Table
	i int
}

// ByKey returns the row's cell under a canonical key.
func (r RowView) ByKey(key string) (string, bool) {
	return r.t.CellByKey(r.i, key)
}

// KeyEquals matches rows whose cell under key equals want, ignoring
// surrounding whitespace. Rows without the column never match.
func KeyEquals(key, want string) Predicate {
	want = strings.TrimSpace(want)
	return func(r RowView) bool {
		v, ok := r.ByKey(key)
		if !ok {
			return false
		}
		return strings.TrimSpace(v) == want
	}
}

// KeyDateBetween matches rows whose cell under key parses as a date within
// [from, to], compared at day granularity. A zero from or to leaves that end
// open. Unparsable or empty cells never match.
func KeyDateBetween(key string, from, to time.Time) Predicate {
	fromDay := truncateToDay(from)
	toDay := truncateToDay(to)
	return func(r RowView) bool {
		v, ok := r.ByKey(key)
		if !ok {
			return false
		}
		d, ok := ParseCellDate(v)
		if !ok {
			return false
		}
		day := truncateToDay(d)
		if !from.IsZero() && day.Before(fromDay) {
			return false
		}
		if !to.IsZero() && day.After(toDay) {
			return false
		}
		return true
	}
}

func truncateToDay(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Filter returns a new table holding the rows every predicate accepts. The
// receiver is untouched; an empty result is a zero-row table, not an error.
func (t *Table) Filter(preds ...Predicate) *Table {
	out := New(t.headers, nil)
	for i := range t.rows {
		rv := RowView{t: t, i: i}
		keep := true
		for _, p := range preds {
			if !p(rv) {
				keep = false
				break
			}
		}
		if keep {
			out.rows = append(out.rows, fitRow(t.rows[i], len(t.headers)))
		}
	}
	return out
}

// Paginate returns page pageNumber (1-based) of pageSize rows. A page past the
// last row is a zero-row table. Non-positive sizes or page numbers are caller
// bugs and return an error.
func (t *Table) Paginate(pageSize, pageNumber int) (*Table, error) {
	if pageSize < 1 {
		return nil, fmt.Errorf("paginate: page size %d out of range", pageSize)
	}
	if pageNumber < 1 {
		return nil, fmt.Errorf("paginate: page number %d out of range", pageNumber)
	}
	start := (pageNumber - 1) * pageSize
	if start >= len(t.rows) {
		return New(t.headers, nil), nil
	}
	end := start + pageSize
	if end > len(t.rows) {
		end = len(t.rows)
	}
	return New(t.headers, t.rows[start:end]), nil
}

// PageCount returns how many pages of pageSize rows the table holds. An empty
// table has zero pages.
func (t *Table) PageCount(pageSize int) int {
	if pageSize < 1 {
		return 0
	}
	return (len(t.rows) + pageSize - 1) / pageSize
}
