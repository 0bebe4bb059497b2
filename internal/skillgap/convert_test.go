package skillgap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"

	"github.com/yungbote/jobtrack-backend/internal/domain/application"
	"github.com/yungbote/jobtrack-backend/internal/domain/skill"
)

func TestFromApplicationsCopiesSkills(t *testing.T) {
	stored := &application.JobApplication{
		RequiredSkills: datatypes.JSONSlice[application.RequiredSkill]{
			{Name: "Go", Importance: application.ImportanceRequired},
		},
	}
	recs := FromApplications([]*application.JobApplication{stored, nil})
	assert.Len(t, recs, 1)

	recs[0].RequiredSkills[0].Name = "Rust"
	assert.Equal(t, "Go", stored.RequiredSkills[0].Name)
}

func TestFromUserSkills(t *testing.T) {
	recs := FromUserSkills([]*skill.UserSkill{
		{Name: "Go", Level: skill.LevelAdvanced},
		nil,
	})
	assert.Equal(t, []SkillRecord{{Name: "Go", Level: skill.LevelAdvanced}}, recs)
}
