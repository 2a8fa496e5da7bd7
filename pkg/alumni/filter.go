package alumni

import "strings"

// Criteria narrows the directory. Empty fields place no constraint.
type Criteria struct {
	Search     string `json:"search,omitempty" yaml:"search,omitempty"`
	Batch      string `json:"batch,omitempty" yaml:"batch,omitempty"`
	Geography  string `json:"geography,omitempty" yaml:"geography,omitempty"`
	WorkStatus string `json:"work_status,omitempty" yaml:"work_status,omitempty"`
}

// IsEmpty reports whether the criteria match every record.
func (c Criteria) IsEmpty() bool {
	return strings.TrimSpace(c.Search) == "" &&
		c.Batch == "" &&
		strings.TrimSpace(c.Geography) == "" &&
		c.WorkStatus == ""
}

// Matches reports whether r satisfies every active criterion.
func (c Criteria) Matches(r Record) bool {
	return c.matchesSearch(r) &&
		c.matchesBatch(r) &&
		c.matchesGeography(r) &&
		c.matchesWorkStatus(r)
}

// matchesSearch is a case-insensitive substring match over name, batch,
// geography and program track.
func (c Criteria) matchesSearch(r Record) bool {
	term := strings.ToLower(strings.TrimSpace(c.Search))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(r.Name), term) ||
		strings.Contains(r.Batch, term) ||
		strings.Contains(strings.ToLower(r.Geography), term) ||
		strings.Contains(strings.ToLower(r.ProgramTrack), term)
}

func (c Criteria) matchesBatch(r Record) bool {
	return c.Batch == "" || r.Batch == c.Batch
}

func (c Criteria) matchesGeography(r Record) bool {
	want := strings.TrimSpace(c.Geography)
	return want == "" || strings.TrimSpace(r.Geography) == want
}

// matchesWorkStatus is exact and case-sensitive, with no trimming.
func (c Criteria) matchesWorkStatus(r Record) bool {
	return c.WorkStatus == "" || r.WorkStatus == c.WorkStatus
}

// Filter returns the records matching c in their original order. The input
// is not modified.
func Filter(records []Record, c Criteria) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if c.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}
