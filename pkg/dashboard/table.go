package dashboard

import (
	"strings"

	"github.com/cncf/automation/alumni-dashboard/pkg/alumni"
	"github.com/cncf/automation/alumni-dashboard/pkg/distribution"
)

// NoResultsMessage is shown in place of rows when the view is empty.
const NoResultsMessage = "No alumni found matching your criteria"

// Columns are the directory table headers.
var Columns = []string{"Name", "Batch", "Big Bet", "State", "Work Status", "Mentoring", "Placement Support"}

// Row is one rendered directory row. A placeholder row carries only
// Message.
type Row struct {
	Name             string
	Batch            string
	ProgramTrack     string
	Geography        string
	WorkStatus       string
	WorkStatusBadge  string
	Mentoring        string
	MentoringBadge   string
	PlacementSupport string
	PlacementBadge   string

	Placeholder bool
	Message     string
}

// Cells returns the row's visible text in column order.
func (r Row) Cells() []string {
	if r.Placeholder {
		return []string{r.Message}
	}
	return []string{r.Name, r.Batch, r.ProgramTrack, r.Geography, r.WorkStatus, r.Mentoring, r.PlacementSupport}
}

// TableRows converts records to table rows. No records yields a single
// placeholder row.
func TableRows(records []alumni.Record) []Row {
	if len(records) == 0 {
		return []Row{{Placeholder: true, Message: NoResultsMessage}}
	}

	rows := make([]Row, 0, len(records))
	for _, r := range records {
		rows = append(rows, Row{
			Name:             r.Name,
			Batch:            distribution.BatchLabel(r.Batch),
			ProgramTrack:     r.ProgramTrack,
			Geography:        r.Geography,
			WorkStatus:       r.WorkStatus,
			WorkStatusBadge:  alumni.WorkStatusBadge(r.WorkStatus),
			Mentoring:        string(r.Mentoring),
			MentoringBadge:   alumni.AnswerBadge(r.Mentoring),
			PlacementSupport: string(r.PlacementSupport),
			PlacementBadge:   alumni.AnswerBadge(r.PlacementSupport),
		})
	}
	return rows
}

// Option is one entry of a filter dropdown.
type Option struct {
	Value string
	Label string
}

// FilterOptions lists the choices for each dropdown, in dataset order.
type FilterOptions struct {
	Batches      []Option
	Geographies  []Option
	WorkStatuses []Option
}

// Options derives the dropdown choices from the dataset.
func (c *Controller) Options() FilterOptions {
	return OptionsFor(c.dataset)
}

// OptionsFor derives dropdown choices from ds.
func OptionsFor(ds *distribution.Dataset) FilterOptions {
	var opts FilterOptions
	for _, b := range ds.Batch.Labels() {
		opts.Batches = append(opts.Batches, Option{Value: b, Label: distribution.BatchLabel(b)})
	}
	for _, g := range ds.Geography.Labels() {
		g = strings.TrimSpace(g)
		opts.Geographies = append(opts.Geographies, Option{Value: g, Label: g})
	}
	for _, s := range ds.WorkStatus.Labels() {
		opts.WorkStatuses = append(opts.WorkStatuses, Option{Value: s, Label: s})
	}
	return opts
}
