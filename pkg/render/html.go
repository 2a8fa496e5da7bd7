// Package render draws a dashboard as a static HTML page or as terminal text.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/cncf/automation/alumni-dashboard/pkg/alumni"
	"github.com/cncf/automation/alumni-dashboard/pkg/dashboard"
	"github.com/cncf/automation/alumni-dashboard/pkg/distribution"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/dashboard.html.tmpl"))

// DefaultTitle heads every rendered dashboard.
const DefaultTitle = "Alumni Dashboard"

// Page is everything a renderer needs to draw one dashboard.
type Page struct {
	Title   string
	Dataset *distribution.Dataset
	View    dashboard.View
	Options dashboard.FilterOptions

	// Records is the whole directory. The page filters it in the browser,
	// so it is embedded regardless of View's criteria.
	Records []alumni.Record
}

// NewPage snapshots the controller's current state.
func NewPage(c *dashboard.Controller) Page {
	return Page{
		Title:   DefaultTitle,
		Dataset: c.Dataset(),
		View:    c.View(),
		Options: c.Options(),
		Records: c.Records(),
	}
}

type tabData struct {
	ID     string
	Title  string
	Charts []distribution.Chart
}

// chartData is the Chart.js-facing shape of a chart.
type chartData struct {
	ID        string                 `json:"id"`
	Type      string                 `json:"type"`
	IndexAxis string                 `json:"indexAxis,omitempty"`
	Labels    []string               `json:"labels"`
	Values    []int                  `json:"values"`
	Colors    []string               `json:"colors"`
	Tooltips  []string               `json:"tooltips"`
	Legend    bool                   `json:"legend"`
	Scales    map[string]interface{} `json:"scales,omitempty"`
}

// directoryRecord is a record as the in-page filter sees it: the raw fields
// the predicates run on plus the display values of its row.
type directoryRecord struct {
	alumni.Record
	BatchLabel      string `json:"batch_label"`
	WorkStatusBadge string `json:"work_status_badge"`
	MentoringBadge  string `json:"mentoring_badge"`
	PlacementBadge  string `json:"placement_badge"`
}

type pageData struct {
	Title    string
	Summary  distribution.Summary
	Cards    []distribution.StatCard
	Tabs     []tabData
	Charts   []chartData
	Criteria alumni.Criteria
	Options  dashboard.FilterOptions
	Columns  []string
	Rows     []dashboard.Row
	Shown    int
	Total    int

	Directory []directoryRecord
	NoResults string
}

var tabOrder = []struct {
	tab   distribution.Tab
	title string
}{
	{distribution.TabOverview, "Overview"},
	{distribution.TabDemographics, "Demographics"},
	{distribution.TabProfessional, "Professional"},
	{distribution.TabEngagement, "Engagement"},
}

// HTML writes the page as a self-contained HTML document.
func HTML(w io.Writer, p Page) error {
	if p.Dataset == nil {
		return fmt.Errorf("render html: page has no dataset")
	}
	title := p.Title
	if title == "" {
		title = DefaultTitle
	}

	charts := distribution.Charts(p.Dataset)
	data := pageData{
		Title:    title,
		Summary:  p.Dataset.Summary,
		Cards:    p.Dataset.Summary.Cards(),
		Criteria: p.View.Criteria,
		Options:  p.Options,
		Columns:  dashboard.Columns,
		Rows:     dashboard.TableRows(p.View.Records),
		Shown:    len(p.View.Records),
		Total:    p.View.Total,

		Directory: directoryRecords(p),
		NoResults: dashboard.NoResultsMessage,
	}

	for _, t := range tabOrder {
		td := tabData{ID: string(t.tab), Title: t.title}
		for _, c := range charts {
			if c.Tab == t.tab {
				td.Charts = append(td.Charts, c)
			}
		}
		data.Tabs = append(data.Tabs, td)
	}
	data.Tabs = append(data.Tabs, tabData{ID: "directory", Title: "Directory"})

	for _, c := range charts {
		data.Charts = append(data.Charts, toChartData(c))
	}

	if err := pageTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}

func directoryRecords(p Page) []directoryRecord {
	records := p.Records
	if records == nil {
		records = p.View.Records
	}
	out := make([]directoryRecord, 0, len(records))
	for _, r := range records {
		out = append(out, directoryRecord{
			Record:          r,
			BatchLabel:      distribution.BatchLabel(r.Batch),
			WorkStatusBadge: alumni.WorkStatusBadge(r.WorkStatus),
			MentoringBadge:  alumni.AnswerBadge(r.Mentoring),
			PlacementBadge:  alumni.AnswerBadge(r.PlacementSupport),
		})
	}
	return out
}

func toChartData(c distribution.Chart) chartData {
	cd := chartData{
		ID:       c.ID,
		Type:     string(c.Kind),
		Labels:   c.Series.Labels(),
		Values:   c.Series.Counts(),
		Colors:   c.Colors,
		Tooltips: c.Tooltips(),
		Legend:   true,
	}

	switch c.Kind {
	case distribution.KindBar, distribution.KindHorizontalBar:
		cd.Type = "bar"
		cd.Legend = false
		valueAxis, labelAxis := "y", "x"
		if c.Kind == distribution.KindHorizontalBar {
			cd.IndexAxis = "y"
			valueAxis, labelAxis = "x", "y"
		}
		cd.Scales = map[string]interface{}{
			valueAxis: map[string]interface{}{
				"beginAtZero": true,
				"title":       map[string]interface{}{"display": true, "text": axisTitle(c, valueAxis)},
			},
			labelAxis: map[string]interface{}{
				"title": map[string]interface{}{"display": true, "text": axisTitle(c, labelAxis)},
			},
		}
	}
	return cd
}

func axisTitle(c distribution.Chart, axis string) string {
	if axis == "x" {
		return c.XTitle
	}
	return c.YTitle
}
