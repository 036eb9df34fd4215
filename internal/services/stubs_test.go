package services

import (
	"bytes"
	"context"
	"testing"

	"github.com/kgp-ops/wpr-portal/internal/audit"
	"github.com/kgp-ops/wpr-portal/internal/platform/logger"
	"github.com/kgp-ops/wpr-portal/internal/store"
	"github.com/kgp-ops/wpr-portal/internal/tabular"
)

func testLogger(tb testing.TB) *logger.Logger {
	tb.Helper()
	log, err := logger.New("test")
	if err != nil {
		tb.Fatalf("init logger: %v", err)
	}
	return log
}

// stubTracker serves a fixed table and captures appended records.
type stubTracker struct {
	table     *tabular.Table
	warning   string
	appends   []map[string]string
	appendErr error
}

func (s *stubTracker) Load(ctx context.Context) (*store.Snapshot, error) {
	return &store.Snapshot{Table: s.table, Warning: s.warning}, nil
}

func (s *stubTracker) Append(ctx context.Context, record map[string]string) error {
	if s.appendErr != nil {
		return s.appendErr
	}
	s.appends = append(s.appends, record)
	return nil
}

func (s *stubTracker) Encode(t *tabular.Table) ([]byte, error) {
	var buf bytes.Buffer
	if err := (store.CSVCodec{}).Encode(&buf, t); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *stubTracker) Path() string        { return "stub.csv" }
func (s *stubTracker) ContentType() string { return "text/csv" }
func (s *stubTracker) Ext() string         { return ".csv" }

// captureAudit records events in memory.
type captureAudit struct {
	subs []audit.SubmissionEvent
	exps []audit.ExportEvent
}

func (c *captureAudit) RecordSubmission(ctx context.Context, ev audit.SubmissionEvent) error {
	c.subs = append(c.subs, ev)
	return nil
}

func (c *captureAudit) RecordExport(ctx context.Context, ev audit.ExportEvent) error {
	c.exps = append(c.exps, ev)
	return nil
}

func (c *captureAudit) RecentSubmissions(ctx context.Context, limit int) ([]audit.SubmissionEvent, error) {
	if limit > len(c.subs) {
		limit = len(c.subs)
	}
	return c.subs[:limit], nil
}

func (c *captureAudit) RecentExports(ctx context.Context, limit int) ([]audit.ExportEvent, error) {
	if limit > len(c.exps) {
		limit = len(c.exps)
	}
	return c.exps[:limit], nil
}

// masterTable is a small sheet with deliberately odd header spellings, one
// employee master block, and a few historical permits.
func masterTable() *tabular.Table {
	return tabular.New(
		[]string{"NAME", "A.Number", "JOB TITLE", "IQAMA ID", "SUPERVISOR", "Work Area", "DISCIPLINE / DEPARTMENT", "Permit Type", "SHIFT", "Permit No.", "DATE", "START TIME", "END TIME"},
		[][]string{
			{"Alice", "A123", "Fitter", "IQ1", "Sam", "", "", "", "", "", "", "", ""},
			{"Bob", "B456", "Welder", "IQ2", "Sam", "", "", "", "", "", "", "", ""},
			{"Alice", "A123", "Fitter", "IQ1", "Sam", "Unit 3", "Mechanical", "Hot Work", "Day", "P-1", "2025-03-01", "08:00", "17:00"},
			{"Bob", "B456", "Welder", "IQ2", "Sam", "Unit 1", "Electrical", "Cold Work", "Night", "P-2", "2025-03-02", "19:00", "04:00"},
			{"Alice", "A123", "Fitter", "IQ1", "Sam", "Unit 3", "Mechanical", "Hot Work", "Day", "P-3", "2025-03-05", "08:00", "17:00"},
		},
	)
}
