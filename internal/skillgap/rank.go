package skillgap

import (
	"cmp"
	"slices"
	"strings"

	"github.com/yungbote/jobtrack-backend/internal/domain/application"
)

// Rank returns a sorted copy of entries: required before every other tier, then by
// Count descending, then by Name ascending. The input slice is left untouched.
func Rank(entries []GapEntry) []GapEntry {
	ranked := make([]GapEntry, len(entries))
	copy(ranked, entries)
	slices.SortStableFunc(ranked, compareGaps)
	return ranked
}

func compareGaps(a, b GapEntry) int {
	aReq := a.Importance == application.ImportanceRequired
	bReq := b.Importance == application.ImportanceRequired
	if aReq != bReq {
		if aReq {
			return -1
		}
		return 1
	}
	if c := cmp.Compare(b.Count, a.Count); c != 0 {
		return c
	}
	return strings.Compare(a.Name, b.Name)
}
