package distribution

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Dataset holds the aggregate alumni statistics the dashboard renders.
type Dataset struct {
	Summary          Summary      `json:"summary" yaml:"summary"`
	ProgramTrack     Distribution `json:"program_track" yaml:"program_track"`
	WorkStatus       Distribution `json:"work_status" yaml:"work_status"`
	Geography        Distribution `json:"geography" yaml:"geography"`
	Batch            Distribution `json:"batch" yaml:"batch"`
	Mentoring        Distribution `json:"mentoring" yaml:"mentoring"`
	PlacementSupport Distribution `json:"placement_support" yaml:"placement_support"`
}

// Summary captures the headline numbers shown on the stat cards.
type Summary struct {
	TotalAlumni         int    `json:"total_alumni" yaml:"total_alumni"`
	TotalBatches        int    `json:"total_batches" yaml:"total_batches"`
	BatchRange          string `json:"batch_range" yaml:"batch_range"`
	ActiveProfessionals int    `json:"active_professionals" yaml:"active_professionals"`
	MentoringWilling    int    `json:"mentoring_willing" yaml:"mentoring_willing"`
	PlacementSupporters int    `json:"placement_supporters" yaml:"placement_supporters"`
}

// Dimension names one of the categorical dimensions of a Dataset.
type Dimension string

const (
	DimensionProgramTrack     Dimension = "program_track"
	DimensionWorkStatus       Dimension = "work_status"
	DimensionGeography        Dimension = "geography"
	DimensionBatch            Dimension = "batch"
	DimensionMentoring        Dimension = "mentoring"
	DimensionPlacementSupport Dimension = "placement_support"
)

// Dimensions lists every dimension in dataset order.
func Dimensions() []Dimension {
	return []Dimension{
		DimensionProgramTrack,
		DimensionWorkStatus,
		DimensionGeography,
		DimensionBatch,
		DimensionMentoring,
		DimensionPlacementSupport,
	}
}

// Dimension returns the distribution for the named dimension.
func (ds *Dataset) Dimension(d Dimension) (Distribution, bool) {
	switch d {
	case DimensionProgramTrack:
		return ds.ProgramTrack, true
	case DimensionWorkStatus:
		return ds.WorkStatus, true
	case DimensionGeography:
		return ds.Geography, true
	case DimensionBatch:
		return ds.Batch, true
	case DimensionMentoring:
		return ds.Mentoring, true
	case DimensionPlacementSupport:
		return ds.PlacementSupport, true
	default:
		return Distribution{}, false
	}
}

// Entry is a single category of a distribution.
type Entry struct {
	Label string `json:"label" yaml:"label"`
	Count int    `json:"count" yaml:"count"`
}

// Distribution maps category labels to counts. Entries keep the order of
// the source document because charts and filter dropdowns follow it.
type Distribution struct {
	Entries []Entry
}

// New builds a distribution from entries in the given order.
func New(entries ...Entry) Distribution {
	return Distribution{Entries: append([]Entry(nil), entries...)}
}

// Len returns the number of categories.
func (d Distribution) Len() int {
	return len(d.Entries)
}

// Labels returns the category labels in order, verbatim.
func (d Distribution) Labels() []string {
	labels := make([]string, len(d.Entries))
	for i, e := range d.Entries {
		labels[i] = e.Label
	}
	return labels
}

// Counts returns the counts in label order.
func (d Distribution) Counts() []int {
	counts := make([]int, len(d.Entries))
	for i, e := range d.Entries {
		counts[i] = e.Count
	}
	return counts
}

// Total sums every count.
func (d Distribution) Total() int {
	total := 0
	for _, e := range d.Entries {
		total += e.Count
	}
	return total
}

// Count returns the count recorded for label.
func (d Distribution) Count(label string) (int, bool) {
	for _, e := range d.Entries {
		if e.Label == label {
			return e.Count, true
		}
	}
	return 0, false
}

// UnmarshalYAML decodes a YAML mapping of label to count, preserving key order.
func (d *Distribution) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: distribution must be a mapping of label to count", node.Line)
	}

	entries := make([]Entry, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		var count int
		if err := value.Decode(&count); err != nil {
			return fmt.Errorf("line %d: count for %q: %w", value.Line, key.Value, err)
		}
		entries = append(entries, Entry{Label: key.Value, Count: count})
	}
	d.Entries = entries
	return nil
}

// MarshalYAML writes the distribution back as an ordered mapping.
func (d Distribution) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, e := range d.Entries {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Label, Style: yaml.DoubleQuotedStyle},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: fmt.Sprintf("%d", e.Count)},
		)
	}
	return node, nil
}

// MarshalJSON encodes the distribution as an ordered list of entries.
func (d Distribution) MarshalJSON() ([]byte, error) {
	entries := d.Entries
	if entries == nil {
		entries = []Entry{}
	}
	return json.Marshal(entries)
}

// UnmarshalJSON accepts the ordered list written by MarshalJSON.
func (d *Distribution) UnmarshalJSON(data []byte) error {
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	d.Entries = entries
	return nil
}
