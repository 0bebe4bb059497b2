package skillgap

import (
	"github.com/yungbote/jobtrack-backend/internal/domain/application"
	"github.com/yungbote/jobtrack-backend/internal/domain/skill"
)

// Classify compares every aggregated requirement with the user's skills.
//
// A requirement the user does not hold is missing whatever its tier. A held skill is
// only flagged when it is required and held at beginner level; intermediate holders of
// a required skill are not flagged. Output follows the index order.
func Classify(idx Index, skills []SkillRecord) []GapEntry {
	levels := make(map[string]skill.Level, len(skills))
	for _, s := range skills {
		if _, ok := levels[s.Name]; !ok {
			levels[s.Name] = s.Level
		}
	}

	gaps := make([]GapEntry, 0)
	for _, req := range idx.Requirements() {
		level, held := levels[req.Name]
		switch {
		case !held:
			gaps = append(gaps, GapEntry{
				Name:       req.Name,
				Importance: req.Importance,
				Status:     StatusMissing,
				Count:      req.Count,
			})
		case level == skill.LevelBeginner && req.Importance == application.ImportanceRequired:
			gaps = append(gaps, GapEntry{
				Name:         req.Name,
				Importance:   req.Importance,
				Status:       StatusNeedsImprovement,
				CurrentLevel: level,
				Count:        req.Count,
			})
		}
	}
	return gaps
}
