package app

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/jobtrack-backend/internal/http"
	httpH "github.com/yungbote/jobtrack-backend/internal/http/handlers"
	httpMW "github.com/yungbote/jobtrack-backend/internal/http/middleware"
	"github.com/yungbote/jobtrack-backend/internal/observability"
	"github.com/yungbote/jobtrack-backend/internal/platform/logger"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health      *httpH.HealthHandler
	Auth        *httpH.AuthHandler
	User        *httpH.UserHandler
	Application *httpH.ApplicationHandler
	Skill       *httpH.SkillHandler
}

func wireHandlers(log *logger.Logger, services Services, db httpH.Pinger) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:      httpH.NewHealthHandler(db),
		Auth:        httpH.NewAuthHandler(services.Auth),
		User:        httpH.NewUserHandler(services.User),
		Application: httpH.NewApplicationHandler(services.Application),
		Skill:       httpH.NewSkillHandler(services.Skill),
	}
}

func wireMiddleware(log *logger.Logger, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, services.Auth),
	}
}

func wireRouter(log *logger.Logger, cfg Config, metrics *observability.Metrics, handlers Handlers, middleware Middleware) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	return http.NewRouter(http.RouterConfig{
		Log:                log,
		Metrics:            metrics,
		CORSOrigins:        cfg.CORSOrigins,
		TracingEnabled:     cfg.Tracing.Enabled,
		ServiceName:        cfg.Tracing.ServiceName,
		HealthHandler:      handlers.Health,
		AuthHandler:        handlers.Auth,
		AuthMiddleware:     middleware.Auth,
		UserHandler:        handlers.User,
		ApplicationHandler: handlers.Application,
		SkillHandler:       handlers.Skill,
	})
}
