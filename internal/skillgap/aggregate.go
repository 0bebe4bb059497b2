package skillgap

// Index maps skill names to their aggregated requirement and remembers the order in
// which names were first seen.
type Index struct {
	order  []string
	byName map[string]*AggregatedRequirement
}

func (idx Index) Len() int { return len(idx.order) }

func (idx Index) Get(name string) (AggregatedRequirement, bool) {
	req, ok := idx.byName[name]
	if !ok {
		return AggregatedRequirement{}, false
	}
	return *req, true
}

// Requirements returns copies of every entry in first-seen order.
func (idx Index) Requirements() []AggregatedRequirement {
	out := make([]AggregatedRequirement, 0, len(idx.order))
	for _, name := range idx.order {
		out = append(out, *idx.byName[name])
	}
	return out
}

// Aggregate builds the requirement index for a set of applications.
//
// The first importance seen for a name is kept; later applications only bump Count.
// A name repeated inside one application counts once for that application. Entries
// with an empty name are skipped.
func Aggregate(apps []ApplicationRecord) Index {
	idx := Index{byName: make(map[string]*AggregatedRequirement)}
	for _, app := range apps {
		seen := make(map[string]struct{}, len(app.RequiredSkills))
		for _, rs := range app.RequiredSkills {
			if rs.Name == "" {
				continue
			}
			if _, dup := seen[rs.Name]; dup {
				continue
			}
			seen[rs.Name] = struct{}{}

			if req, ok := idx.byName[rs.Name]; ok {
				req.Count++
				continue
			}
			idx.byName[rs.Name] = &AggregatedRequirement{
				Name:       rs.Name,
				Importance: rs.Importance,
				Count:      1,
			}
			idx.order = append(idx.order, rs.Name)
		}
	}
	return idx
}
