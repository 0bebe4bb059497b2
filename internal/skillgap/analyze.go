package skillgap

import "github.com/yungbote/jobtrack-backend/internal/domain/application"

// Analyze runs aggregation, classification and ranking over one user's snapshots.
// The result is never nil.
func Analyze(skills []SkillRecord, apps []ApplicationRecord) []GapEntry {
	return Rank(Classify(Aggregate(apps), skills))
}

// Summary counts a report by status.
type Summary struct {
	Missing          int
	NeedsImprovement int
	RequiredMissing  int
}

func Summarize(gaps []GapEntry) Summary {
	var s Summary
	for _, g := range gaps {
		switch g.Status {
		case StatusMissing:
			s.Missing++
			if g.Importance == application.ImportanceRequired {
				s.RequiredMissing++
			}
		case StatusNeedsImprovement:
			s.NeedsImprovement++
		}
	}
	return s
}
