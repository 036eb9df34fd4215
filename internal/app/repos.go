package app

import (
	"fmt"

	"github.com/kgp-ops/wpr-portal/internal/audit"
	"github.com/kgp-ops/wpr-portal/internal/platform/logger"
	"github.com/kgp-ops/wpr-portal/internal/store"
)

type Repos struct {
	Tracker store.TrackerRepo
	Audit   audit.Recorder
}

func wireRepos(log *logger.Logger, cfg Config) (Repos, error) {
	log.Info("Wiring stores...")

	tracker, err := store.NewFileRepo(cfg.TrackerFile, log)
	if err != nil {
		return Repos{}, fmt.Errorf("init tracker store: %w", err)
	}

	if cfg.AuditDB == "" {
		log.Warn("Audit log disabled (WPR_AUDIT_DB is empty)")
		return Repos{Tracker: tracker, Audit: audit.NopRecorder{}}, nil
	}
	db, err := audit.OpenDB(cfg.AuditDB)
	if err != nil {
		// Audit is additive; the portal runs without history rather than
		// refusing to start.
		log.Warn("Audit log disabled", "path", cfg.AuditDB, "error", err)
		return Repos{Tracker: tracker, Audit: audit.NopRecorder{}}, nil
	}
	return Repos{Tracker: tracker, Audit: audit.NewRecorder(db, log)}, nil
}
