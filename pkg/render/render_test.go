package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cncf/automation/alumni-dashboard/pkg/alumni"
	"github.com/cncf/automation/alumni-dashboard/pkg/dashboard"
	"github.com/cncf/automation/alumni-dashboard/pkg/distribution"
)

func testController() *dashboard.Controller {
	ds := distribution.Default()
	return dashboard.New(ds, []alumni.Record{
		{Name: "Aarav Sharma", Batch: "5", ProgramTrack: "ABC", Geography: "Bihar", WorkStatus: "Intrapreneur", Mentoring: alumni.Yes, PlacementSupport: alumni.No},
		{Name: "<b>Diya</b> Verma", Batch: "12", ProgramTrack: "THC", Geography: "Assam", WorkStatus: "Entrepreneur", Mentoring: alumni.No, PlacementSupport: alumni.Yes},
	})
}

// tableBody returns the server-rendered rows of the directory table.
func tableBody(t *testing.T, out string) string {
	t.Helper()
	_, rest, ok := strings.Cut(out, `<tbody id="directoryTableBody">`)
	require.True(t, ok, "page has no directory table body")
	body, _, ok := strings.Cut(rest, "</tbody>")
	require.True(t, ok, "directory table body is not closed")
	return body
}

func TestHTML(t *testing.T) {
	c := testController()
	c.SetBatch("5")

	var buf bytes.Buffer
	require.NoError(t, HTML(&buf, NewPage(c)))
	out := buf.String()

	assert.Contains(t, out, "<title>Alumni Dashboard</title>")
	assert.Contains(t, out, "2,235")
	assert.Contains(t, out, `id="bigBetChart"`)
	assert.Contains(t, out, `id="placementChart"`)
	assert.Contains(t, out, "Aarav Sharma")
	assert.Contains(t, out, "status-badge--working")
	assert.Contains(t, out, `<option value="5" selected>Batch 5</option>`)
	assert.Contains(t, out, "Showing 1 of 2 alumni")
	body := tableBody(t, out)
	assert.Contains(t, body, "Aarav Sharma")
	assert.NotContains(t, body, "Verma")
	assert.NotContains(t, body, dashboard.NoResultsMessage)
}

func TestHTMLFiltersDirectoryInPage(t *testing.T) {
	c := testController()
	c.SetBatch("5")

	var buf bytes.Buffer
	require.NoError(t, HTML(&buf, NewPage(c)))
	out := buf.String()

	// Every record ships with the page, not just the initial matches.
	assert.Contains(t, out, "const directory = ")
	assert.Contains(t, out, `"name":"Aarav Sharma"`)
	assert.Contains(t, out, `"batch":"12"`)
	assert.Contains(t, out, `"batch_label":"Batch 12"`)
	assert.Contains(t, out, `"work_status_badge":"status-badge--entrepreneur"`)
	assert.Contains(t, out, `"placement_badge":"status-badge--yes"`)
	assert.Contains(t, out, `const noResults = "No alumni found matching your criteria"`)

	// Controls re-render the table body as they change.
	assert.Contains(t, out, `id="directoryFilters"`)
	assert.Contains(t, out, `getElementById('searchInput').addEventListener('input', filterDirectory)`)
	assert.Contains(t, out, `addEventListener('change', filterDirectory)`)
	assert.Contains(t, out, `getElementById('directoryTableBody')`)
	assert.Contains(t, out, `id="resultCount"`)
	for _, id := range []string{"searchInput", "batchFilter", "stateFilter", "workStatusFilter"} {
		assert.Contains(t, out, `id="`+id+`"`)
	}
}

func TestHTMLDirectoryFallsBackToView(t *testing.T) {
	c := testController()
	c.SetSearch("sharma")
	p := NewPage(c)
	p.Records = nil

	var buf bytes.Buffer
	require.NoError(t, HTML(&buf, p))
	out := buf.String()

	assert.Contains(t, out, `"name":"Aarav Sharma"`)
	assert.NotContains(t, out, "Verma")
}

func TestHTMLEscapesRecordText(t *testing.T) {
	c := testController()
	c.SetSearch("verma")

	var buf bytes.Buffer
	require.NoError(t, HTML(&buf, NewPage(c)))
	out := buf.String()

	assert.Contains(t, tableBody(t, out), "&lt;b&gt;Diya&lt;/b&gt; Verma")
	assert.Contains(t, out, `"name":"\u003cb\u003eDiya\u003c/b\u003e Verma"`)
	assert.NotContains(t, out, "<b>Diya</b>")
}

func TestHTMLNoResults(t *testing.T) {
	c := testController()
	c.SetWorkStatus("intrapreneur")

	var buf bytes.Buffer
	require.NoError(t, HTML(&buf, NewPage(c)))
	out := buf.String()

	body := tableBody(t, out)
	assert.Equal(t, 1, strings.Count(body, dashboard.NoResultsMessage))
	assert.Contains(t, body, `colspan="7"`)
	assert.Contains(t, out, "const columnCount =  7 ;")
}

func TestHTMLRequiresDataset(t *testing.T) {
	assert.Error(t, HTML(&bytes.Buffer{}, Page{}))
	assert.Error(t, Text(&bytes.Buffer{}, Page{}))
}

func TestText(t *testing.T) {
	c := testController()

	var buf bytes.Buffer
	require.NoError(t, Text(&buf, NewPage(c)))
	out := buf.String()

	assert.Contains(t, out, "Alumni Dashboard")
	assert.Contains(t, out, "2,235")
	assert.Contains(t, out, "Top States")
	assert.Contains(t, out, "Uttar Pradesh")
	assert.Contains(t, out, "1792 (80%)")
	assert.Contains(t, out, "Big Bet")
	assert.Contains(t, out, "Aarav Sharma")
	assert.Contains(t, out, "Showing 2 of 2 alumni")
}

func TestTextNoResults(t *testing.T) {
	c := testController()
	c.SetGeography("Kerala")

	var buf bytes.Buffer
	require.NoError(t, Text(&buf, NewPage(c)))
	assert.Contains(t, buf.String(), dashboard.NoResultsMessage)
	assert.NotContains(t, buf.String(), "Aarav Sharma")
}

func TestBarChart(t *testing.T) {
	chart := distribution.Chart{
		Title:  "Placement",
		Series: distribution.New(distribution.Entry{Label: "Yes", Count: 3}, distribution.Entry{Label: "No", Count: 1}, distribution.Entry{Label: "Maybe", Count: 0}),
	}
	out := BarChart(DefaultStyles(), chart, 8)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, 8, strings.Count(lines[1], "█"))
	assert.Equal(t, 2, strings.Count(lines[2], "█"))
	assert.Equal(t, 0, strings.Count(lines[3], "█"))
	assert.Contains(t, lines[1], "3 (75%)")
}
