package skillgap

import (
	"github.com/yungbote/jobtrack-backend/internal/domain/application"
	"github.com/yungbote/jobtrack-backend/internal/domain/skill"
)

// FromUserSkills snapshots stored skills into engine records.
func FromUserSkills(rows []*skill.UserSkill) []SkillRecord {
	out := make([]SkillRecord, 0, len(rows))
	for _, r := range rows {
		if r == nil {
			continue
		}
		out = append(out, SkillRecord{Name: r.Name, Level: r.Level})
	}
	return out
}

// FromApplications snapshots stored applications into engine records. The required
// skill slices are copied so the engine never aliases caller memory.
func FromApplications(rows []*application.JobApplication) []ApplicationRecord {
	out := make([]ApplicationRecord, 0, len(rows))
	for _, r := range rows {
		if r == nil {
			continue
		}
		reqs := make([]application.RequiredSkill, len(r.RequiredSkills))
		copy(reqs, r.RequiredSkills)
		out = append(out, ApplicationRecord{RequiredSkills: reqs})
	}
	return out
}
