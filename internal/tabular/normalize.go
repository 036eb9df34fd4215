// Package tabular implements the in-memory model of the tracking sheet: header
// canonicalization, the header reconciliation map rebuilt on every load, and the
// read-only views (filter, paginate, aggregate) the portal serves from it.
package tabular

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrColumnMissing reports a canonical key with no column in the current sheet.
var ErrColumnMissing = errors.New("column missing")

// NormalizeHeader derives the canonical key for a column header: surrounding
// whitespace is stripped, the rest is uppercased, and every character outside
// [0-9A-Z] is dropped. "A-Number ", "a number" and "A_NUMBER" all map to
// "ANUMBER".
func NormalizeHeader(header string) string {
	trimmed := strings.ToUpper(strings.TrimSpace(header))
	var b strings.Builder
	b.Grow(len(trimmed))
	for _, r := range trimmed {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteByte(byte(r))
		}
	}
	return b.String()
}

// HeaderMap is the reconciliation table between canonical keys and the sheet's
// original headers. Keys are pairwise distinct; headers keep their column order
// and may repeat. It is rebuilt from the header row on every load and never
// persisted.
type HeaderMap struct {
	keys    []string
	headers []string
	byKey   map[string]int
}

// BuildHeaderMap assigns one canonical key per header, in column order. When
// two headers normalize to the same base key, the first keeps the bare key and
// later ones get _2, _3, ... suffixes by order of appearance.
func BuildHeaderMap(headers []string) HeaderMap {
	hm := HeaderMap{
		keys:    make([]string, 0, len(headers)),
		headers: make([]string, 0, len(headers)),
		byKey:   make(map[string]int, len(headers)),
	}
	for _, h := range headers {
		base := NormalizeHeader(h)
		key := base
		for n := 2; ; n++ {
			if _, taken := hm.byKey[key]; !taken {
				break
			}
			key = base + "_" + strconv.Itoa(n)
		}
		hm.byKey[key] = len(hm.keys)
		hm.keys = append(hm.keys, key)
		hm.headers = append(hm.headers, h)
	}
	return hm
}

func (hm HeaderMap) Len() int { return len(hm.keys) }

// Header resolves a canonical key to the sheet's original header.
func (hm HeaderMap) Header(key string) (string, bool) {
	i, ok := hm.byKey[key]
	if !ok {
		return "", false
	}
	return hm.headers[i], true
}

// RequiredHeader is Header for columns the caller cannot proceed without; the
// returned error matches ErrColumnMissing.
func (hm HeaderMap) RequiredHeader(key string) (string, error) {
	h, ok := hm.Header(key)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrColumnMissing, key)
	}
	return h, nil
}

// HeaderOr resolves a canonical key to the original header, or returns def when
// the sheet has no such column.
func (hm HeaderMap) HeaderOr(key, def string) string {
	if h, ok := hm.Header(key); ok {
		return h
	}
	return def
}

// Key resolves an original header to its canonical key. For a duplicated
// header the first occurrence wins.
func (hm HeaderMap) Key(header string) (string, bool) {
	for i, h := range hm.headers {
		if h == header {
			return hm.keys[i], true
		}
	}
	return "", false
}

// HasKey reports whether the sheet has a column for the canonical key.
func (hm HeaderMap) HasKey(key string) bool {
	_, ok := hm.byKey[key]
	return ok
}

// KeyIndex returns the column index for a canonical key.
func (hm HeaderMap) KeyIndex(key string) (int, bool) {
	i, ok := hm.byKey[key]
	return i, ok
}

// Keys returns the canonical keys in column order.
func (hm HeaderMap) Keys() []string {
	out := make([]string, len(hm.keys))
	copy(out, hm.keys)
	return out
}

// Headers returns the original headers in column order.
func (hm HeaderMap) Headers() []string {
	out := make([]string, len(hm.headers))
	copy(out, hm.headers)
	return out
}
