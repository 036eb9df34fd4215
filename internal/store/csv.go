package store

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/kgp-ops/wpr-portal/internal/tabular"
)

// CSVCodec reads and writes the tracking table as CSV. Reads tolerate the
// encodings field exports actually arrive in: UTF-8 with or without BOM,
// BOM'd UTF-16, and legacy Windows-1252. Writes are plain UTF-8.
type CSVCodec struct{}

func (CSVCodec) Ext() string         { return ".csv" }
func (CSVCodec) ContentType() string { return "text/csv" }

func (CSVCodec) Decode(r io.Reader) (*tabular.Table, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	decoded, err := decodeToUTF8(raw)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(bytes.NewReader(decoded))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return tabular.NewEmpty(), nil
	}
	return tabular.New(records[0], records[1:]), nil
}

func (CSVCodec) Encode(w io.Writer, t *tabular.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Headers()); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for i, row := range t.Rows() {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// decodeToUTF8 normalizes raw file bytes to UTF-8: BOMs decide UTF-8/UTF-16,
// valid UTF-8 passes through, anything else is taken as Windows-1252.
func decodeToUTF8(raw []byte) ([]byte, error) {
	switch {
	case bytes.HasPrefix(raw, bomUTF8):
		return raw[len(bomUTF8):], nil
	case bytes.HasPrefix(raw, bomUTF16LE), bytes.HasPrefix(raw, bomUTF16BE):
		dec := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
		out, err := dec.Bytes(raw)
		if err != nil {
			return nil, fmt.Errorf("decode utf-16 csv: %w", err)
		}
		return out, nil
	case utf8.Valid(raw):
		return raw, nil
	default:
		out, err := charmap.Windows1252.NewDecoder().Bytes(raw)
		if err != nil {
			return nil, fmt.Errorf("decode windows-1252 csv: %w", err)
		}
		return out, nil
	}
}
