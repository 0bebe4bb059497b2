package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/jobtrack-backend/internal/observability"
	"github.com/yungbote/jobtrack-backend/internal/platform/logger"
	"github.com/yungbote/jobtrack-backend/internal/services"
)

type Services struct {
	Auth        services.AuthService
	User        services.UserService
	Application services.ApplicationService
	Skill       services.SkillService

	LoginLimiter services.LoginLimiter
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, repos Repos, clients Clients, metrics *observability.Metrics) Services {
	log.Info("Wiring services...")

	limiter := services.NewNoopLoginLimiter()
	if clients.Redis != nil && cfg.LoginLimit.MaxAttempts > 0 {
		limiter = services.NewRedisLoginLimiter(
			clients.Redis,
			log,
			cfg.LoginLimit.KeyPrefix,
			cfg.LoginLimit.MaxAttempts,
			cfg.LoginLimit.Window,
		)
	}

	return Services{
		Auth: services.NewAuthService(
			db,
			log,
			repos.User,
			repos.UserToken,
			limiter,
			metrics,
			cfg.JWTSecretKey,
			cfg.AccessTokenTTL,
			cfg.RefreshTokenTTL,
		),
		User:         services.NewUserService(db, log, repos.User),
		Application:  services.NewApplicationService(db, log, repos.Application),
		Skill:        services.NewSkillService(db, log, repos.UserSkill, repos.Application, metrics),
		LoginLimiter: limiter,
	}
}
