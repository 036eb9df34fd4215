package app

import (
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kgp-ops/wpr-portal/internal/platform/envutil"
	"github.com/kgp-ops/wpr-portal/internal/platform/logger"
	"github.com/kgp-ops/wpr-portal/internal/services"
)

type Config struct {
	TrackerFile       string
	AdminPassword     string
	AdminPasswordHash string
	AuditDB           string
	ActingSupervisor  string
	JWTSecret         string
	SessionTTL        time.Duration
	ListenAddr        string
	CORSOrigins       []string
	Options           services.OptionSets
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		TrackerFile:       envutil.String("WPR_TRACKER_FILE", "WPR TRACKING FILE.xlsx"),
		AdminPassword:     envutil.String("WPR_ADMIN_PASSWORD", "Admin@1234"),
		AdminPasswordHash: envutil.String("WPR_ADMIN_PASSWORD_HASH", ""),
		AuditDB:           auditDBPath(),
		ActingSupervisor:  envutil.String("WPR_ACTING_SUPERVISOR", "MECHANICAL SUPERVISOR"),
		JWTSecret:         envutil.String("WPR_JWT_SECRET", "defaultsecret"),
		SessionTTL:        time.Duration(envutil.Int("WPR_SESSION_TTL", 3600)) * time.Second,
		ListenAddr:        envutil.String("WPR_LISTEN_ADDR", ":8080"),
		CORSOrigins:       envutil.List("WPR_CORS_ORIGINS", nil),
		Options:           services.DefaultOptionSets(),
	}

	if path := envutil.String("WPR_FORM_OPTIONS_FILE", ""); path != "" {
		if err := mergeOptionsFile(&cfg.Options, path); err != nil {
			log.Warn("Form options file ignored", "path", path, "error", err)
		} else {
			log.Info("Form options loaded", "path", path)
		}
	}
	if cfg.JWTSecret == "defaultsecret" {
		log.Warn("WPR_JWT_SECRET not set, sessions signed with the default key")
	}
	return cfg
}

// auditDBPath distinguishes unset (default path) from explicitly empty
// (auditing disabled), which envutil.String folds together.
func auditDBPath() string {
	if v, ok := os.LookupEnv("WPR_AUDIT_DB"); ok {
		return strings.TrimSpace(v)
	}
	return "wpr_audit.db"
}

// mergeOptionsFile overlays the YAML lists onto the built-in fallbacks. Lists
// absent from the file keep their defaults.
func mergeOptionsFile(opts *services.OptionSets, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var file services.OptionSets
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return err
	}
	if len(file.WorkAreas) > 0 {
		opts.WorkAreas = file.WorkAreas
	}
	if len(file.Disciplines) > 0 {
		opts.Disciplines = file.Disciplines
	}
	if len(file.PermitTypes) > 0 {
		opts.PermitTypes = file.PermitTypes
	}
	if len(file.Shifts) > 0 {
		opts.Shifts = file.Shifts
	}
	if len(file.Supervisors) > 0 {
		opts.Supervisors = file.Supervisors
	}
	return nil
}
