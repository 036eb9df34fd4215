package app

import (
	httpx "github.com/kgp-ops/wpr-portal/internal/http"
	"github.com/kgp-ops/wpr-portal/internal/platform/logger"
)

func wireServer(log *logger.Logger, cfg Config, handlers Handlers, middleware Middleware) *httpx.Server {
	return httpx.NewServer(httpx.RouterConfig{
		Log:            log,
		CORSOrigins:    cfg.CORSOrigins,
		AuthHandler:    handlers.Auth,
		FormHandler:    handlers.Form,
		AdminHandler:   handlers.Admin,
		HealthHandler:  handlers.Health,
		AuthMiddleware: middleware.Auth,
	})
}
