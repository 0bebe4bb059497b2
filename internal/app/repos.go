package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/jobtrack-backend/internal/data/repos"
	"github.com/yungbote/jobtrack-backend/internal/platform/logger"
)

type Repos struct {
	User        repos.UserRepo
	UserToken   repos.UserTokenRepo
	UserSkill   repos.UserSkillRepo
	Application repos.JobApplicationRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:        repos.NewUserRepo(db, log),
		UserToken:   repos.NewUserTokenRepo(db, log),
		UserSkill:   repos.NewUserSkillRepo(db, log),
		Application: repos.NewJobApplicationRepo(db, log),
	}
}
