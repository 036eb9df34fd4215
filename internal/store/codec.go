// Package store reads and rewrites the tracking sheet on disk. Every load
// parses the whole file; every append rewrites the whole file. The codec is
// picked from the file extension, so a deployment can point the portal at an
// .xlsx workbook or a plain .csv without touching code.
package store

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/kgp-ops/wpr-portal/internal/tabular"
)

// TableCodec serializes the tracking table to and from one file format.
type TableCodec interface {
	Decode(r io.Reader) (*tabular.Table, error)
	Encode(w io.Writer, t *tabular.Table) error
	// ContentType is the MIME type served when the format is downloaded.
	ContentType() string
	// Ext is the canonical file extension, dot included.
	Ext() string
}

// CodecForPath picks the codec for a backing file path by extension.
func CodecForPath(path string) (TableCodec, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx", ".xlsm":
		return WorkbookCodec{}, nil
	case ".csv":
		return CSVCodec{}, nil
	default:
		return nil, fmt.Errorf("unsupported tracker file extension %q", ext)
	}
}
