package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cncf/automation/alumni-dashboard/pkg/alumni"
	"github.com/cncf/automation/alumni-dashboard/pkg/distribution"
)

func newTestController(t *testing.T) *Controller {
	t.Helper()
	ds := distribution.Default()
	records := alumni.NewGenerator(ds, alumni.WithSeed(11)).Generate(alumni.DefaultCount)
	return New(ds, records)
}

func TestControllerStartsUnfiltered(t *testing.T) {
	c := newTestController(t)

	v := c.View()
	assert.Len(t, v.Records, alumni.DefaultCount)
	assert.Equal(t, alumni.DefaultCount, v.Total)
	assert.False(t, v.Filtered())
	assert.Equal(t, c.Records(), v.Records)
}

func TestControllerApplyNotifiesListeners(t *testing.T) {
	c := newTestController(t)

	var seen []View
	c.OnChange(func(v View) { seen = append(seen, v) })

	v := c.SetBatch("5")
	require.Len(t, seen, 1)
	assert.Equal(t, v, seen[0])
	for _, r := range v.Records {
		assert.Equal(t, "5", r.Batch)
	}
	assert.True(t, v.Filtered())

	c.SetWorkStatus("Intrapreneur")
	require.Len(t, seen, 2)
	assert.Equal(t, alumni.Criteria{Batch: "5", WorkStatus: "Intrapreneur"}, seen[1].Criteria)
}

func TestControllerRecomputesFromFullSet(t *testing.T) {
	c := newTestController(t)

	c.SetWorkStatus("intrapreneur")
	assert.Empty(t, c.View().Records)

	// Relaxing the criteria must bring records back.
	v := c.SetWorkStatus("Intrapreneur")
	assert.NotEmpty(t, v.Records)
	assert.Equal(t, alumni.Filter(c.Records(), alumni.Criteria{WorkStatus: "Intrapreneur"}), v.Records)

	v = c.Reset()
	assert.Len(t, v.Records, alumni.DefaultCount)
	assert.True(t, c.Criteria().IsEmpty())
}

func TestControllerSearch(t *testing.T) {
	ds := distribution.Default()
	c := New(ds, []alumni.Record{
		{Name: "Aarav Sharma", Batch: "5", ProgramTrack: "ABC", Geography: "Bihar", WorkStatus: "Intrapreneur", Mentoring: alumni.Yes, PlacementSupport: alumni.Yes},
		{Name: "Diya Verma", Batch: "6", ProgramTrack: "THC", Geography: "Assam", WorkStatus: "Entrepreneur", Mentoring: alumni.No, PlacementSupport: alumni.No},
	})

	for _, term := range []string{"sharma", "SHARMA", "aar"} {
		v := c.SetSearch(term)
		require.Len(t, v.Records, 1, term)
		assert.Equal(t, "Aarav Sharma", v.Records[0].Name)
	}
}

func TestTableRows(t *testing.T) {
	rows := TableRows([]alumni.Record{{
		Name: "Aarav Sharma", Batch: "5", ProgramTrack: "ABC", Geography: "Bihar",
		WorkStatus: "Not working presently", Mentoring: alumni.Yes, PlacementSupport: alumni.No,
	}})
	require.Len(t, rows, 1)

	r := rows[0]
	assert.False(t, r.Placeholder)
	assert.Equal(t, "Batch 5", r.Batch)
	assert.Equal(t, alumni.BadgeNotWorking, r.WorkStatusBadge)
	assert.Equal(t, alumni.BadgeYes, r.MentoringBadge)
	assert.Equal(t, alumni.BadgeNo, r.PlacementBadge)
	assert.Len(t, r.Cells(), len(Columns))
}

func TestTableRowsPlaceholder(t *testing.T) {
	for _, records := range [][]alumni.Record{nil, {}} {
		rows := TableRows(records)
		require.Len(t, rows, 1)
		assert.True(t, rows[0].Placeholder)
		assert.Equal(t, []string{NoResultsMessage}, rows[0].Cells())
	}
}

func TestOptions(t *testing.T) {
	c := newTestController(t)
	opts := c.Options()

	require.Len(t, opts.Batches, 15)
	assert.Equal(t, Option{Value: "1", Label: "Batch 1"}, opts.Batches[0])
	assert.Equal(t, Option{Value: "16", Label: "Batch 16"}, opts.Batches[14])

	require.Len(t, opts.Geographies, 15)
	assert.Equal(t, Option{Value: "Uttar Pradesh", Label: "Uttar Pradesh"}, opts.Geographies[0])

	require.Len(t, opts.WorkStatuses, 5)
	assert.Equal(t, "Intrapreneur", opts.WorkStatuses[0].Value)
}

func TestCounter(t *testing.T) {
	c := &Counter{Target: 2235}
	assert.Equal(t, 0, c.Value())
	assert.Equal(t, 125, c.Frames())

	prev := 0
	for i := 0; i < c.Frames(); i++ {
		v := c.Step()
		assert.GreaterOrEqual(t, v, prev)
		prev = v
	}
	assert.True(t, c.Done())
	assert.Equal(t, 2235, c.Value())
	assert.Equal(t, 2235, c.Step())

	zero := &Counter{}
	assert.True(t, zero.Done())
}
