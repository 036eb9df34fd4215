package audit

import (
	"context"
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kgp-ops/wpr-portal/internal/platform/logger"
)

// Recorder writes and reads activity events. Callers log and move on when a
// write fails; nothing here is load-bearing for the portal's data.
type Recorder interface {
	RecordSubmission(ctx context.Context, ev SubmissionEvent) error
	RecordExport(ctx context.Context, ev ExportEvent) error
	RecentSubmissions(ctx context.Context, limit int) ([]SubmissionEvent, error)
	RecentExports(ctx context.Context, limit int) ([]ExportEvent, error)
}

// OpenDB opens (creating if needed) the audit database and migrates its
// schema.
func OpenDB(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open audit db: %w", err)
	}
	if err := db.AutoMigrate(&SubmissionEvent{}, &ExportEvent{}); err != nil {
		return nil, fmt.Errorf("migrate audit db: %w", err)
	}
	return db, nil
}

type dbRecorder struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRecorder(db *gorm.DB, baseLog *logger.Logger) Recorder {
	return &dbRecorder{db: db, log: baseLog.With("repo", "audit")}
}

func (r *dbRecorder) RecordSubmission(ctx context.Context, ev SubmissionEvent) error {
	if ev.EventID == "" {
		ev.EventID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(&ev).Error; err != nil {
		return fmt.Errorf("record submission event: %w", err)
	}
	return nil
}

func (r *dbRecorder) RecordExport(ctx context.Context, ev ExportEvent) error {
	if ev.EventID == "" {
		ev.EventID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(&ev).Error; err != nil {
		return fmt.Errorf("record export event: %w", err)
	}
	return nil
}

func (r *dbRecorder) RecentSubmissions(ctx context.Context, limit int) ([]SubmissionEvent, error) {
	var evs []SubmissionEvent
	err := r.db.WithContext(ctx).Order("at DESC").Limit(limit).Find(&evs).Error
	if err != nil {
		return nil, fmt.Errorf("list submission events: %w", err)
	}
	return evs, nil
}

func (r *dbRecorder) RecentExports(ctx context.Context, limit int) ([]ExportEvent, error) {
	var evs []ExportEvent
	err := r.db.WithContext(ctx).Order("at DESC").Limit(limit).Find(&evs).Error
	if err != nil {
		return nil, fmt.Errorf("list export events: %w", err)
	}
	return evs, nil
}

// NopRecorder is the sink used when the audit database is disabled or could
// not be opened; the portal runs without activity history.
type NopRecorder struct{}

func (NopRecorder) RecordSubmission(context.Context, SubmissionEvent) error { return nil }
func (NopRecorder) RecordExport(context.Context, ExportEvent) error         { return nil }
func (NopRecorder) RecentSubmissions(context.Context, int) ([]SubmissionEvent, error) {
	return nil, nil
}
func (NopRecorder) RecentExports(context.Context, int) ([]ExportEvent, error) {
	return nil, nil
}
