package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/kgp-ops/wpr-portal/internal/platform/logger"
)

func testLogger(tb testing.TB) *logger.Logger {
	tb.Helper()
	log, err := logger.New("test")
	if err != nil {
		tb.Fatalf("init logger: %v", err)
	}
	return log
}

func TestNewFileRepoUnsupportedExtension(t *testing.T) {
	if _, err := NewFileRepo(filepath.Join(t.TempDir(), "tracker.txt"), testLogger(t)); err == nil {
		t.Fatalf("NewFileRepo(.txt): want error")
	}
}

func TestLoadMissingFile(t *testing.T) {
	repo, err := NewFileRepo(filepath.Join(t.TempDir(), "tracker.xlsx"), testLogger(t))
	if err != nil {
		t.Fatalf("NewFileRepo: %v", err)
	}
	snap, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if snap.Warning != "" {
		t.Fatalf("missing file warning: want empty got=%q", snap.Warning)
	}
	if snap.Table.Len() != 0 || snap.Table.NumCols() != 0 {
		t.Fatalf("missing file table: want empty got rows=%d cols=%d", snap.Table.Len(), snap.Table.NumCols())
	}
}

func TestLoadUnreadableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracker.xlsx")
	if err := os.WriteFile(path, []byte("this is not a workbook"), 0o644); err != nil {
		t.Fatalf("seed garbage: %v", err)
	}
	repo, err := NewFileRepo(path, testLogger(t))
	if err != nil {
		t.Fatalf("NewFileRepo: %v", err)
	}
	snap, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if snap.Warning == "" {
		t.Fatalf("unreadable file: want warning")
	}
	if snap.Table.Len() != 0 {
		t.Fatalf("unreadable file table: want empty got rows=%d", snap.Table.Len())
	}
}

func TestAppendThenLoadRoundTrip(t *testing.T) {
	for _, name := range []string{"tracker.xlsx", "tracker.csv"} {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repo, err := NewFileRepo(filepath.Join(t.TempDir(), name), testLogger(t))
			if err != nil {
				t.Fatalf("NewFileRepo: %v", err)
			}

			if err := repo.Append(ctx, map[string]string{"Name": "Alice", "A.Number": "A123"}); err != nil {
				t.Fatalf("first Append: %v", err)
			}
			snap, err := repo.Load(ctx)
			if err != nil {
				t.Fatalf("Load after first append: %v", err)
			}
			if snap.Table.Len() != 1 || snap.Table.NumCols() != 2 {
				t.Fatalf("first append: want 1x2 got %dx%d", snap.Table.Len(), snap.Table.NumCols())
			}

			if err := repo.Append(ctx, map[string]string{"Name": "Bob", "Permit Type": "Hot Work"}); err != nil {
				t.Fatalf("second Append: %v", err)
			}
			snap, err = repo.Load(ctx)
			if err != nil {
				t.Fatalf("Load after second append: %v", err)
			}
			if snap.Table.Len() != 2 {
				t.Fatalf("second append: want 2 rows got %d", snap.Table.Len())
			}
			// First row survives the rewrite untouched.
			if v, ok := snap.Table.CellByKey(0, "NAME"); !ok || v != "Alice" {
				t.Fatalf("row 0 NAME: want=%q got=%q ok=%v", "Alice", v, ok)
			}
			if v, ok := snap.Table.CellByKey(0, "ANUMBER"); !ok || v != "A123" {
				t.Fatalf("row 0 ANUMBER: want=%q got=%q ok=%v", "A123", v, ok)
			}
			// Last appended record comes back intact.
			if v, _ := snap.Table.CellByKey(1, "NAME"); v != "Bob" {
				t.Fatalf("row 1 NAME: want=%q got=%q", "Bob", v)
			}
			if v, _ := snap.Table.CellByKey(1, "PERMITTYPE"); v != "Hot Work" {
				t.Fatalf("row 1 PERMITTYPE: want=%q got=%q", "Hot Work", v)
			}
		})
	}
}

func TestAppendLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewFileRepo(filepath.Join(dir, "tracker.csv"), testLogger(t))
	if err != nil {
		t.Fatalf("NewFileRepo: %v", err)
	}
	if err := repo.Append(context.Background(), map[string]string{"Name": "Alice"}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "tracker.csv" {
		t.Fatalf("temp files left behind: %v", entries)
	}
}

func TestEncodeMatchesBackingFormat(t *testing.T) {
	ctx := context.Background()
	repo, err := NewFileRepo(filepath.Join(t.TempDir(), "tracker.csv"), testLogger(t))
	if err != nil {
		t.Fatalf("NewFileRepo: %v", err)
	}
	if err := repo.Append(ctx, map[string]string{"Name": "Alice"}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	snap, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	out, err := repo.Encode(snap.Table)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if string(out) != "Name\nAlice\n" {
		t.Fatalf("Encode: got=%q", string(out))
	}
	if repo.ContentType() != "text/csv" || repo.Ext() != ".csv" {
		t.Fatalf("codec metadata: got type=%q ext=%q", repo.ContentType(), repo.Ext())
	}
}
