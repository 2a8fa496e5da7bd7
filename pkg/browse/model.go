// Package browse is the interactive terminal dashboard. All filtering goes
// through a dashboard.Controller; the table redraws from its change
// notifications.
package browse

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cncf/automation/alumni-dashboard/pkg/alumni"
	"github.com/cncf/automation/alumni-dashboard/pkg/dashboard"
	"github.com/cncf/automation/alumni-dashboard/pkg/distribution"
	"github.com/cncf/automation/alumni-dashboard/pkg/render"
)

type page struct {
	tab   distribution.Tab
	title string
}

const directoryTab distribution.Tab = "directory"

var pages = []page{
	{distribution.TabOverview, "Overview"},
	{distribution.TabDemographics, "Demographics"},
	{distribution.TabProfessional, "Professional"},
	{distribution.TabEngagement, "Engagement"},
	{directoryTab, "Directory"},
}

// selector is a dropdown: index 0 means "all", i>0 picks options[i-1].
type selector struct {
	name    string
	options []dashboard.Option
	index   int
}

func (s *selector) next() { s.index = (s.index + 1) % (len(s.options) + 1) }
func (s *selector) prev() { s.index = (s.index + len(s.options)) % (len(s.options) + 1) }

func (s selector) value() string {
	if s.index == 0 {
		return ""
	}
	return s.options[s.index-1].Value
}

func (s selector) label() string {
	if s.index == 0 {
		return "All"
	}
	return s.options[s.index-1].Label
}

type tickMsg time.Time

// Model is the bubbletea model of the dashboard.
type Model struct {
	ctrl   *dashboard.Controller
	styles render.Styles
	charts []distribution.Chart

	page          int
	search        textinput.Model
	searchFocused bool
	batch         selector
	geography     selector
	workStatus    selector

	table    table.Model
	view     dashboard.View
	counters []dashboard.Counter
	cards    []distribution.StatCard

	width  int
	height int
}

// New builds a model driven by ctrl.
func New(ctrl *dashboard.Controller) *Model {
	opts := ctrl.Options()

	si := textinput.New()
	si.Placeholder = "Search by name, batch, state or big bet..."
	si.CharLimit = 64
	si.Width = 40

	cols := columns()
	width := 0
	for _, c := range cols {
		width += c.Width + 2
	}
	t := table.New(
		table.WithColumns(cols),
		table.WithFocused(true),
		table.WithHeight(15),
		table.WithWidth(width),
	)

	cards := ctrl.Dataset().Summary.Cards()
	counters := make([]dashboard.Counter, len(cards))
	for i, c := range cards {
		counters[i] = dashboard.Counter{Target: c.Value}
	}

	m := &Model{
		ctrl:       ctrl,
		styles:     render.DefaultStyles(),
		charts:     distribution.Charts(ctrl.Dataset()),
		search:     si,
		batch:      selector{name: "Batch", options: opts.Batches},
		geography:  selector{name: "State", options: opts.Geographies},
		workStatus: selector{name: "Work Status", options: opts.WorkStatuses},
		table:      t,
		counters:   counters,
		cards:      cards,
	}
	ctrl.OnChange(m.redraw)
	m.redraw(ctrl.View())
	return m
}

func columns() []table.Column {
	widths := []int{20, 9, 18, 16, 22, 10, 18}
	cols := make([]table.Column, len(dashboard.Columns))
	for i, title := range dashboard.Columns {
		cols[i] = table.Column{Title: title, Width: widths[i]}
	}
	return cols
}

func tick() tea.Cmd {
	return tea.Tick(dashboard.CounterFrame, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init starts the stat counter animation.
func (m *Model) Init() tea.Cmd {
	return tick()
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		done := true
		for i := range m.counters {
			m.counters[i].Step()
			done = done && m.counters[i].Done()
		}
		if done {
			return m, nil
		}
		return m, tick()

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table.SetWidth(msg.Width - 4)
		if h := msg.Height - 16; h > 3 {
			m.table.SetHeight(h)
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.searchFocused {
			return m.updateSearch(msg)
		}
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m *Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyEnter:
		m.searchFocused = false
		m.search.Blur()
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	// Live filtering on every keystroke.
	if m.search.Value() != before {
		m.apply()
	}
	return m, cmd
}

func (m *Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "tab":
		m.page = (m.page + 1) % len(pages)
		return m, nil
	case "shift+tab":
		m.page = (m.page + len(pages) - 1) % len(pages)
		return m, nil
	case "/":
		m.page = len(pages) - 1
		m.searchFocused = true
		return m, m.search.Focus()
	case "b":
		m.batch.next()
	case "B":
		m.batch.prev()
	case "g":
		m.geography.next()
	case "G":
		m.geography.prev()
	case "w":
		m.workStatus.next()
	case "W":
		m.workStatus.prev()
	case "c":
		m.search.SetValue("")
		m.batch.index, m.geography.index, m.workStatus.index = 0, 0, 0
	default:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	m.apply()
	return m, nil
}

// Criteria returns the criteria the controls currently express.
func (m *Model) Criteria() alumni.Criteria {
	return alumni.Criteria{
		Search:     m.search.Value(),
		Batch:      m.batch.value(),
		Geography:  m.geography.value(),
		WorkStatus: m.workStatus.value(),
	}
}

func (m *Model) apply() {
	m.ctrl.Apply(m.Criteria())
}

// redraw is the controller's change listener.
func (m *Model) redraw(v dashboard.View) {
	m.view = v
	rows := dashboard.TableRows(v.Records)
	out := make([]table.Row, 0, len(rows))
	for _, r := range rows {
		cells := r.Cells()
		for len(cells) < len(dashboard.Columns) {
			cells = append(cells, "")
		}
		out = append(out, table.Row(cells))
	}
	m.table.SetRows(out)
}

// View renders the current page.
func (m *Model) View() string {
	var sb strings.Builder

	sb.WriteString(m.styles.Title.Render(render.DefaultTitle))
	sb.WriteString("\n\n")
	sb.WriteString(m.renderCards())
	sb.WriteString("\n")
	sb.WriteString(m.renderTabs())
	sb.WriteString("\n\n")

	current := pages[m.page]
	if current.tab == directoryTab {
		sb.WriteString(m.renderDirectory())
	} else {
		for _, c := range m.charts {
			if c.Tab == current.tab {
				sb.WriteString(render.BarChart(m.styles, c, render.BarWidth))
				sb.WriteString("\n")
			}
		}
	}

	sb.WriteString("\n")
	sb.WriteString(m.styles.Muted.Render("[Tab] Page  [/] Search  [b/g/w] Batch/State/Status  [c] Clear  [q] Quit"))
	return sb.String()
}

func (m *Model) renderCards() string {
	cards := make([]distribution.StatCard, len(m.cards))
	for i, c := range m.cards {
		c.Value = m.counters[i].Value()
		cards[i] = c
	}
	return render.StatCards(m.styles, cards)
}

func (m *Model) renderTabs() string {
	var sb strings.Builder
	for i, p := range pages {
		style := m.styles.Muted
		if i == m.page {
			style = m.styles.Title.Underline(true)
		}
		sb.WriteString(style.Render(p.title))
		sb.WriteString("  ")
	}
	return sb.String()
}

func (m *Model) renderDirectory() string {
	var sb strings.Builder

	filterStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	if m.searchFocused {
		filterStyle = filterStyle.BorderForeground(lipgloss.Color(distribution.Palette[0]))
	}
	sb.WriteString(filterStyle.Render(m.search.View()))
	sb.WriteString("\n")

	for _, s := range []selector{m.batch, m.geography, m.workStatus} {
		sb.WriteString(m.styles.Bold.Render(s.name + ": "))
		sb.WriteString(s.label())
		sb.WriteString("   ")
	}
	sb.WriteString("\n\n")

	if len(m.view.Records) == 0 {
		sb.WriteString(m.styles.Muted.Render(dashboard.NoResultsMessage))
		sb.WriteString("\n")
	} else {
		sb.WriteString(m.table.View())
		sb.WriteString("\n")
	}
	sb.WriteString(m.styles.Muted.Render(fmt.Sprintf("Showing %d of %d alumni", len(m.view.Records), m.view.Total)))
	return sb.String()
}
