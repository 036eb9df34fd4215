package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/kgp-ops/wpr-portal/internal/http/handlers"
	httpMW "github.com/kgp-ops/wpr-portal/internal/http/middleware"
	"github.com/kgp-ops/wpr-portal/internal/platform/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	CORSOrigins []string

	AuthHandler   *httpH.AuthHandler
	FormHandler   *httpH.FormHandler
	AdminHandler  *httpH.AdminHandler
	HealthHandler *httpH.HealthHandler

	AuthMiddleware *httpMW.AuthMiddleware
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpMW.AttachRequestContext())
	if cfg.Log != nil {
		r.Use(httpMW.RequestLogger(cfg.Log))
	}
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Entry form (public)
		if cfg.FormHandler != nil {
			api.GET("/form", cfg.FormHandler.Bootstrap)
			api.GET("/form/employee", cfg.FormHandler.Employee)
			api.POST("/permits", cfg.FormHandler.Submit)
		}

		// Admin login (public)
		if cfg.AuthHandler != nil {
			api.POST("/admin/login", cfg.AuthHandler.AdminLogin)
		}
	}

	admin := api.Group("/admin")
	{
		if cfg.AuthMiddleware != nil {
			admin.Use(cfg.AuthMiddleware.RequireAdmin())
		}

		if cfg.AdminHandler != nil {
			admin.GET("/records", cfg.AdminHandler.Records)
			admin.GET("/stats", cfg.AdminHandler.Stats)
			admin.GET("/export", cfg.AdminHandler.Export)
			admin.GET("/activity", cfg.AdminHandler.Activity)
		}
	}

	return r
}
