package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/jobtrack-backend/internal/http/handlers"
	httpMW "github.com/yungbote/jobtrack-backend/internal/http/middleware"
	"github.com/yungbote/jobtrack-backend/internal/observability"
	"github.com/yungbote/jobtrack-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	Metrics        *observability.Metrics
	CORSOrigins    []string
	TracingEnabled bool
	ServiceName    string

	AuthHandler        *httpH.AuthHandler
	AuthMiddleware     *httpMW.AuthMiddleware
	UserHandler        *httpH.UserHandler
	ApplicationHandler *httpH.ApplicationHandler
	SkillHandler       *httpH.SkillHandler

	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.TracingEnabled {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
		r.GET("/readyz", cfg.HealthHandler.Ready)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	api := r.Group("/api")
	{
		// Auth (public)
		if cfg.AuthHandler != nil {
			api.POST("/auth/register", cfg.AuthHandler.Register)
			api.POST("/auth/login", cfg.AuthHandler.Login)
			api.POST("/auth/refresh", cfg.AuthHandler.Refresh)
		}
	}

	protected := api.Group("/")
	{
		// Middleware
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// Auth (protected)
		if cfg.AuthHandler != nil {
			protected.POST("/auth/logout", cfg.AuthHandler.Logout)
		}

		// Profile
		if cfg.UserHandler != nil {
			protected.GET("/auth/profile", cfg.UserHandler.GetProfile)
			protected.PUT("/auth/profile", cfg.UserHandler.UpdateProfile)
		}

		// Applications
		if cfg.ApplicationHandler != nil {
			protected.GET("/applications", cfg.ApplicationHandler.List)
			protected.POST("/applications", cfg.ApplicationHandler.Create)
			protected.GET("/applications/stats", cfg.ApplicationHandler.Stats)
			protected.PUT("/applications/:id", cfg.ApplicationHandler.Update)
			protected.DELETE("/applications/:id", cfg.ApplicationHandler.Delete)
		}

		// Skills
		if cfg.SkillHandler != nil {
			protected.GET("/skills", cfg.SkillHandler.List)
			protected.POST("/skills", cfg.SkillHandler.Upsert)
			protected.GET("/skills/gap-analysis", cfg.SkillHandler.GapAnalysis)
			protected.DELETE("/skills/:name", cfg.SkillHandler.Delete)
		}
	}

	return r
}
