package app

import (
	"github.com/kgp-ops/wpr-portal/internal/platform/logger"
	"github.com/kgp-ops/wpr-portal/internal/services"
)

type Services struct {
	Auth  services.AuthService
	Form  services.FormService
	Admin services.AdminService
}

func wireServices(log *logger.Logger, cfg Config, repos Repos) Services {
	log.Info("Wiring services...")

	authService := services.NewAuthService(log, services.AuthConfig{
		Password:     cfg.AdminPassword,
		PasswordHash: cfg.AdminPasswordHash,
		JWTSecret:    cfg.JWTSecret,
		SessionTTL:   cfg.SessionTTL,
	})
	formService := services.NewFormService(log, repos.Tracker, repos.Audit, services.FormConfig{
		ActingSupervisor: cfg.ActingSupervisor,
		Options:          cfg.Options,
	})
	adminService := services.NewAdminService(log, repos.Tracker, repos.Audit, nil)

	return Services{
		Auth:  authService,
		Form:  formService,
		Admin: adminService,
	}
}
