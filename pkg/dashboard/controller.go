// Package dashboard owns the directory state: the generated record set, the
// active filter criteria and the view derived from them.
package dashboard

import (
	"github.com/cncf/automation/alumni-dashboard/pkg/alumni"
	"github.com/cncf/automation/alumni-dashboard/pkg/distribution"
)

// View is the directory as currently filtered.
type View struct {
	Criteria alumni.Criteria
	Records  []alumni.Record
	Total    int
}

// Filtered reports whether the view hides any record.
func (v View) Filtered() bool {
	return len(v.Records) != v.Total
}

// Listener is notified after every recomputation of the view.
type Listener func(View)

// Controller holds the state of one dashboard. It is not safe for
// concurrent use; callers drive it from a single event loop.
type Controller struct {
	dataset   *distribution.Dataset
	records   []alumni.Record
	criteria  alumni.Criteria
	view      []alumni.Record
	listeners []Listener
}

// New creates a controller over records. The view starts unfiltered.
func New(ds *distribution.Dataset, records []alumni.Record) *Controller {
	all := append([]alumni.Record(nil), records...)
	return &Controller{
		dataset: ds,
		records: all,
		view:    alumni.Filter(all, alumni.Criteria{}),
	}
}

// Dataset returns the aggregate data the controller was built with.
func (c *Controller) Dataset() *distribution.Dataset {
	return c.dataset
}

// Records returns the full record set.
func (c *Controller) Records() []alumni.Record {
	return c.records
}

// Criteria returns the active criteria.
func (c *Controller) Criteria() alumni.Criteria {
	return c.criteria
}

// View returns the current filtered view.
func (c *Controller) View() View {
	return View{
		Criteria: c.criteria,
		Records:  c.view,
		Total:    len(c.records),
	}
}

// OnChange registers fn to run after each Apply.
func (c *Controller) OnChange(fn Listener) {
	c.listeners = append(c.listeners, fn)
}

// Apply replaces the criteria, recomputes the view from the full record set
// and notifies listeners.
func (c *Controller) Apply(criteria alumni.Criteria) View {
	c.criteria = criteria
	c.view = alumni.Filter(c.records, criteria)

	v := c.View()
	for _, fn := range c.listeners {
		fn(v)
	}
	return v
}

// SetSearch changes only the search text.
func (c *Controller) SetSearch(text string) View {
	next := c.criteria
	next.Search = text
	return c.Apply(next)
}

// SetBatch changes only the batch selector.
func (c *Controller) SetBatch(batch string) View {
	next := c.criteria
	next.Batch = batch
	return c.Apply(next)
}

// SetGeography changes only the geography selector.
func (c *Controller) SetGeography(geography string) View {
	next := c.criteria
	next.Geography = geography
	return c.Apply(next)
}

// SetWorkStatus changes only the work status selector.
func (c *Controller) SetWorkStatus(status string) View {
	next := c.criteria
	next.WorkStatus = status
	return c.Apply(next)
}

// Reset clears every criterion.
func (c *Controller) Reset() View {
	return c.Apply(alumni.Criteria{})
}
