package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/jobtrack-backend/internal/data/repos/application"
	"github.com/yungbote/jobtrack-backend/internal/data/repos/auth"
	"github.com/yungbote/jobtrack-backend/internal/data/repos/skill"
	"github.com/yungbote/jobtrack-backend/internal/data/repos/user"
	"github.com/yungbote/jobtrack-backend/internal/platform/logger"
)

type UserRepo = user.UserRepo
type UserTokenRepo = auth.UserTokenRepo

type UserSkillRepo = skill.UserSkillRepo
type JobApplicationRepo = application.JobApplicationRepo

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo { return user.NewUserRepo(db, baseLog) }
func NewUserTokenRepo(db *gorm.DB, baseLog *logger.Logger) UserTokenRepo {
	return auth.NewUserTokenRepo(db, baseLog)
}

func NewUserSkillRepo(db *gorm.DB, baseLog *logger.Logger) UserSkillRepo {
	return skill.NewUserSkillRepo(db, baseLog)
}
func NewJobApplicationRepo(db *gorm.DB, baseLog *logger.Logger) JobApplicationRepo {
	return application.NewJobApplicationRepo(db, baseLog)
}
