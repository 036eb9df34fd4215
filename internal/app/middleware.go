package app

import (
	httpMW "github.com/kgp-ops/wpr-portal/internal/http/middleware"
	"github.com/kgp-ops/wpr-portal/internal/platform/logger"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

func wireMiddleware(log *logger.Logger, svcs Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, svcs.Auth),
	}
}
