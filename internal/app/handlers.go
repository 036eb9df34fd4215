package app

import (
	httpH "github.com/kgp-ops/wpr-portal/internal/http/handlers"
	"github.com/kgp-ops/wpr-portal/internal/platform/logger"
)

type Handlers struct {
	Auth   *httpH.AuthHandler
	Form   *httpH.FormHandler
	Admin  *httpH.AdminHandler
	Health *httpH.HealthHandler
}

func wireHandlers(log *logger.Logger, svcs Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Auth:   httpH.NewAuthHandler(svcs.Auth),
		Form:   httpH.NewFormHandler(svcs.Form),
		Admin:  httpH.NewAdminHandler(svcs.Admin),
		Health: httpH.NewHealthHandler(),
	}
}
