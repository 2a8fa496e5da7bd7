package distribution

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// StatCard is one headline number on the dashboard.
type StatCard struct {
	Key   string `json:"key" yaml:"key"`
	Label string `json:"label" yaml:"label"`
	Value int    `json:"value" yaml:"value"`
	Note  string `json:"note,omitempty" yaml:"note,omitempty"`
}

// Display returns the value with thousands separators.
func (c StatCard) Display() string {
	return FormatCount(c.Value)
}

// FormatCount renders n with English thousands separators, e.g. 2,235.
func FormatCount(n int) string {
	return printer.Sprintf("%d", n)
}

// Cards returns the stat cards in display order.
func (s Summary) Cards() []StatCard {
	return []StatCard{
		{Key: "total_alumni", Label: "Total Alumni", Value: s.TotalAlumni},
		{Key: "total_batches", Label: "Batches", Value: s.TotalBatches, Note: s.BatchRange},
		{Key: "active_professionals", Label: "Active Professionals", Value: s.ActiveProfessionals},
		{Key: "mentoring_willing", Label: "Willing to Mentor", Value: s.MentoringWilling},
		{Key: "placement_supporters", Label: "Placement Supporters", Value: s.PlacementSupporters},
	}
}

// Card looks up a stat card by key.
func (s Summary) Card(key string) (StatCard, bool) {
	for _, c := range s.Cards() {
		if c.Key == key {
			return c, true
		}
	}
	return StatCard{}, false
}
