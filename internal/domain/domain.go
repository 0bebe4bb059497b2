package domain

import (
	"github.com/yungbote/jobtrack-backend/internal/domain/application"
	"github.com/yungbote/jobtrack-backend/internal/domain/auth"
	"github.com/yungbote/jobtrack-backend/internal/domain/skill"
	"github.com/yungbote/jobtrack-backend/internal/domain/user"
)

type User = user.User
type UserToken = auth.UserToken

type UserSkill = skill.UserSkill
type SkillLevel = skill.Level

type JobApplication = application.JobApplication
type RequiredSkill = application.RequiredSkill
type ApplicationStatus = application.Status
type SkillImportance = application.Importance
type Contact = application.Contact
type Offer = application.Offer
type StatusCount = application.StatusCount

// Models lists every persisted type in migration order.
func Models() []interface{} {
	return []interface{}{
		&User{},
		&UserToken{},
		&UserSkill{},
		&JobApplication{},
	}
}
