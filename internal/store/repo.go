package store

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kgp-ops/wpr-portal/internal/platform/logger"
	"github.com/kgp-ops/wpr-portal/internal/tabular"
)

// Snapshot is one full read of the backing file. Warning is set when the file
// existed but could not be parsed; the table is then empty and the portal
// keeps serving in degraded form.
type Snapshot struct {
	Table   *tabular.Table
	Warning string
}

// TrackerRepo is the only way in and out of the tracking sheet. There is no
// caching and no locking: every call re-reads the file, and two concurrent
// appends race with the later rewrite winning. That hazard is accepted for
// this deployment size; any cache added here would have to be invalidated on
// every Append.
type TrackerRepo interface {
	Load(ctx context.Context) (*Snapshot, error)
	Append(ctx context.Context, record map[string]string) error
	// Encode serializes a table in the backing file's own format, for export
	// downloads.
	Encode(t *tabular.Table) ([]byte, error)
	Path() string
	ContentType() string
	Ext() string
}

type fileRepo struct {
	path  string
	codec TableCodec
	log   *logger.Logger
}

func NewFileRepo(path string, baseLog *logger.Logger) (TrackerRepo, error) {
	codec, err := CodecForPath(path)
	if err != nil {
		return nil, err
	}
	return &fileRepo{
		path:  path,
		codec: codec,
		log:   baseLog.With("repo", "tracker", "file", path),
	}, nil
}

func (r *fileRepo) Path() string        { return r.path }
func (r *fileRepo) ContentType() string { return r.codec.ContentType() }
func (r *fileRepo) Ext() string         { return r.codec.Ext() }

// Load reads the whole backing file. A missing file is a normal first run and
// yields an empty table; an unreadable one yields an empty table plus a
// warning for the caller to surface.
func (r *fileRepo) Load(ctx context.Context) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			r.log.Debug("Tracking file not found, starting empty")
			return &Snapshot{Table: tabular.NewEmpty()}, nil
		}
		r.log.Warn("Tracking file could not be opened", "error", err)
		return &Snapshot{Table: tabular.NewEmpty(), Warning: r.readWarning(err)}, nil
	}
	defer f.Close()

	tbl, err := r.codec.Decode(f)
	if err != nil {
		r.log.Warn("Tracking file could not be parsed", "error", err)
		return &Snapshot{Table: tabular.NewEmpty(), Warning: r.readWarning(err)}, nil
	}
	return &Snapshot{Table: tbl}, nil
}

func (r *fileRepo) readWarning(err error) string {
	return fmt.Sprintf("tracking file %s could not be read (%v); continuing with an empty sheet", filepath.Base(r.path), err)
}

// Append re-reads the file, adds one record keyed by original header, and
// rewrites the whole file. The rewrite goes through a temp file and rename so
// a crash mid-write never leaves a torn sheet. A file the load step could not
// parse is treated as empty, so the rewrite replaces its content; that matches
// the read model and is accepted.
func (r *fileRepo) Append(ctx context.Context, record map[string]string) error {
	snap, err := r.Load(ctx)
	if err != nil {
		return err
	}
	snap.Table.AppendRow(record)

	if err := r.rewrite(snap.Table); err != nil {
		return fmt.Errorf("append to %s: %w", filepath.Base(r.path), err)
	}
	r.log.Info("Appended row to tracking file", "rows", snap.Table.Len())
	return nil
}

func (r *fileRepo) rewrite(t *tabular.Table) error {
	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if err := r.codec.Encode(tmp, t); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace tracking file: %w", err)
	}
	return nil
}

func (r *fileRepo) Encode(t *tabular.Table) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.codec.Encode(&buf, t); err != nil {
		return nil, fmt.Errorf("encode table: %w", err)
	}
	return buf.Bytes(), nil
}
