// Package skillgap reconciles a user's skill inventory against the skills their tracked
// applications ask for and returns a ranked list of gaps.
//
// Names are matched with exact string equality everywhere in this package. Folding and
// trimming belong to the writers that store skills and applications, not to the engine.
// The engine keeps no state between calls.
package skillgap

import (
	"github.com/yungbote/jobtrack-backend/internal/domain/application"
	"github.com/yungbote/jobtrack-backend/internal/domain/skill"
)

// Status classifies a single gap.
type Status string

const (
	StatusMissing          Status = "missing"
	StatusNeedsImprovement Status = "needs_improvement"
)

// SkillRecord is one skill the user holds.
type SkillRecord struct {
	Name  string
	Level skill.Level
}

// ApplicationRecord is the part of a job application the engine reads.
type ApplicationRecord struct {
	RequiredSkills []application.RequiredSkill
}

// AggregatedRequirement is one distinct skill name across all applications. Count is the
// number of applications that list the name and is always at least 1. A name repeated
// inside a single application counts once for that application, so Count never exceeds
// the number of applications. Importance comes from the first application, in input
// order, that lists the name.
type AggregatedRequirement struct {
	Name       string
	Importance application.Importance
	Count      int
}

// GapEntry is one row of the report. CurrentLevel is only set for needs_improvement.
type GapEntry struct {
	Name         string                 `json:"name"`
	Importance   application.Importance `json:"importance"`
	Status       Status                 `json:"status"`
	CurrentLevel skill.Level            `json:"currentLevel,omitempty"`
	Count        int                    `json:"count"`
}
