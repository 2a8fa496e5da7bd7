package distribution

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Palette is the color cycle used by every chart.
var Palette = []string{
	"#1FB8CD", "#FFC185", "#B4413C", "#ECEBD5", "#5D878F",
	"#DB4545", "#D2BA4C", "#964325", "#944454", "#13343B",
}

// ChartKind selects how a chart is drawn.
type ChartKind string

const (
	KindDoughnut      ChartKind = "doughnut"
	KindPie           ChartKind = "pie"
	KindBar           ChartKind = "bar"
	KindHorizontalBar ChartKind = "horizontal-bar"
)

// Tab groups charts on the dashboard.
type Tab string

const (
	TabOverview     Tab = "overview"
	TabDemographics Tab = "demographics"
	TabProfessional Tab = "professional"
	TabEngagement   Tab = "engagement"
)

// Chart describes one chart independently of the library drawing it.
type Chart struct {
	ID     string
	Title  string
	Tab    Tab
	Kind   ChartKind
	Series Distribution
	Colors []string
	XTitle string
	YTitle string
}

// Tooltips returns the tooltip text for every entry of the chart.
func (c Chart) Tooltips() []string {
	counts := c.Series.Counts()
	tips := make([]string, len(c.Series.Entries))
	for i, e := range c.Series.Entries {
		tips[i] = TooltipLabel(e.Label, e.Count, counts)
	}
	return tips
}

// Percentage returns value as a whole percentage of total, rounding halves
// up. A non-positive total yields 0.
func Percentage(value, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Floor(float64(value)/float64(total)*100 + 0.5))
}

// TooltipLabel formats "label: value (pct%)" where pct is taken over the
// sum of series.
func TooltipLabel(label string, value int, series []int) string {
	total := 0
	for _, v := range series {
		total += v
	}
	return fmt.Sprintf("%s: %d (%d%%)", label, value, Percentage(value, total))
}

// SortedDesc returns a copy ordered by count, largest first. Ties keep their
// original order.
func (d Distribution) SortedDesc() Distribution {
	out := New(d.Entries...)
	sort.SliceStable(out.Entries, func(i, j int) bool {
		return out.Entries[i].Count > out.Entries[j].Count
	})
	return out
}

// Top returns the first n entries.
func (d Distribution) Top(n int) Distribution {
	if n < 0 || n >= len(d.Entries) {
		return New(d.Entries...)
	}
	return New(d.Entries[:n]...)
}

// TrimLabels returns a copy with surrounding whitespace removed from labels.
func (d Distribution) TrimLabels() Distribution {
	return d.Relabel(strings.TrimSpace)
}

// Relabel returns a copy with every label passed through fn.
func (d Distribution) Relabel(fn func(string) string) Distribution {
	out := New(d.Entries...)
	for i := range out.Entries {
		out.Entries[i].Label = fn(out.Entries[i].Label)
	}
	return out
}

// Bucket merges several source labels into one.
type Bucket struct {
	Label   string
	Sources []string
}

// Collapse folds the distribution into buckets. Missing source labels count
// as zero. When remainder is non-empty an extra entry holds everything the
// buckets did not claim.
func (d Distribution) Collapse(buckets []Bucket, remainder string) Distribution {
	out := Distribution{Entries: make([]Entry, 0, len(buckets)+1)}
	claimed := 0
	for _, b := range buckets {
		sum := 0
		for _, src := range b.Sources {
			n, _ := d.Count(src)
			sum += n
		}
		claimed += sum
		out.Entries = append(out.Entries, Entry{Label: b.Label, Count: sum})
	}
	if remainder != "" {
		out.Entries = append(out.Entries, Entry{Label: remainder, Count: d.Total() - claimed})
	}
	return out
}

// BatchLabel renders a batch value the way the dashboard shows it.
func BatchLabel(batch string) string {
	return "Batch " + batch
}

var (
	mentoringBuckets = []Bucket{
		{Label: "Willing to Mentor", Sources: []string{"Yes", "yes"}},
		{Label: "Not Available", Sources: []string{"No. Won't be able to give time"}},
		{Label: "10 hrs/6 months", Sources: []string{"Yes, for 10 hours in 6 months"}},
		{Label: "20 hrs/12 months", Sources: []string{"Yes, for 20 hours in 12 months"}},
	}
	placementBuckets = []Bucket{
		{Label: "Yes", Sources: []string{"Yes", "yes"}},
		{Label: "No", Sources: []string{"No"}},
		{Label: "Maybe", Sources: []string{"May be"}},
	}
)

// Charts returns every dashboard chart in display order.
func Charts(ds *Dataset) []Chart {
	workStatusColors := paletteSlice(ds.WorkStatus.Len())
	mentoring := ds.Mentoring.Collapse(mentoringBuckets, "Other")

	return []Chart{
		{
			ID:     "bigBetChart",
			Title:  "Big Bet Distribution",
			Tab:    TabOverview,
			Kind:   KindDoughnut,
			Series: ds.ProgramTrack,
			Colors: Palette,
		},
		{
			ID:     "workStatusChart",
			Title:  "Work Status",
			Tab:    TabOverview,
			Kind:   KindPie,
			Series: ds.WorkStatus,
			Colors: workStatusColors,
		},
		{
			ID:     "batchChart",
			Title:  "Alumni by Batch",
			Tab:    TabDemographics,
			Kind:   KindBar,
			Series: ds.Batch.Relabel(BatchLabel),
			Colors: []string{Palette[0]},
			XTitle: "Batch Number",
			YTitle: "Number of Alumni",
		},
		{
			ID:     "stateChart",
			Title:  "Top States",
			Tab:    TabDemographics,
			Kind:   KindHorizontalBar,
			Series: ds.Geography.SortedDesc().Top(15).TrimLabels(),
			Colors: []string{Palette[1]},
			XTitle: "Number of Alumni",
			YTitle: "States",
		},
		{
			ID:     "workStatusDetailChart",
			Title:  "Work Status Breakdown",
			Tab:    TabProfessional,
			Kind:   KindBar,
			Series: ds.WorkStatus,
			Colors: workStatusColors,
			XTitle: "Work Status",
			YTitle: "Number of Alumni",
		},
		{
			ID:     "bigBetPieChart",
			Title:  "Top Big Bets",
			Tab:    TabProfessional,
			Kind:   KindPie,
			Series: ds.ProgramTrack.SortedDesc().Top(8),
			Colors: Palette,
		},
		{
			ID:     "mentoringChart",
			Title:  "Mentoring Availability",
			Tab:    TabEngagement,
			Kind:   KindDoughnut,
			Series: mentoring,
			Colors: paletteSlice(mentoring.Len()),
		},
		{
			ID:     "placementChart",
			Title:  "Placement Support",
			Tab:    TabEngagement,
			Kind:   KindPie,
			Series: ds.PlacementSupport.Collapse(placementBuckets, ""),
			Colors: []string{Palette[0], Palette[2], Palette[1]},
		},
	}
}

func paletteSlice(n int) []string {
	if n > len(Palette) {
		n = len(Palette)
	}
	return Palette[:n]
}
