package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cncf/automation/alumni-dashboard/pkg/dashboard"
	"github.com/cncf/automation/alumni-dashboard/pkg/distribution"
)

// Styles holds the terminal styles used by the text renderer and the
// interactive browser.
type Styles struct {
	Title  lipgloss.Style
	Header lipgloss.Style
	Card   lipgloss.Style
	Number lipgloss.Style
	Bold   lipgloss.Style
	Body   lipgloss.Style
	Muted  lipgloss.Style
	Bar    lipgloss.Style
	Badges map[string]lipgloss.Style
}

// DefaultStyles returns the dashboard palette applied to terminal output.
func DefaultStyles() Styles {
	primary := lipgloss.Color(distribution.Palette[0])
	muted := lipgloss.Color("#626c71")

	return Styles{
		Title:  lipgloss.NewStyle().Bold(true).Foreground(primary),
		Header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#13343B")).Background(lipgloss.Color("#ECEBD5")).Padding(0, 1),
		Card:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(muted).Padding(0, 1),
		Number: lipgloss.NewStyle().Bold(true).Foreground(primary),
		Bold:   lipgloss.NewStyle().Bold(true),
		Body:   lipgloss.NewStyle(),
		Muted:  lipgloss.NewStyle().Foreground(muted),
		Bar:    lipgloss.NewStyle().Foreground(primary),
		Badges: map[string]lipgloss.Style{
			"status-badge--working":      lipgloss.NewStyle().Foreground(lipgloss.Color("#2e7d32")),
			"status-badge--not-working":  lipgloss.NewStyle().Foreground(lipgloss.Color("#DB4545")),
			"status-badge--entrepreneur": lipgloss.NewStyle().Foreground(lipgloss.Color("#D2BA4C")),
			"status-badge--studies":      lipgloss.NewStyle().Foreground(lipgloss.Color("#5D878F")),
			"status-badge--yes":          lipgloss.NewStyle().Foreground(lipgloss.Color("#2e7d32")),
			"status-badge--no":           lipgloss.NewStyle().Foreground(lipgloss.Color("#DB4545")),
		},
	}
}

// Badge renders text with the style registered for class.
func (s Styles) Badge(class, text string) string {
	if st, ok := s.Badges[class]; ok {
		return st.Render(text)
	}
	return text
}

// BarWidth is the widest a terminal bar gets.
const BarWidth = 40

// Text writes the whole dashboard as terminal text.
func Text(w io.Writer, p Page) error {
	if p.Dataset == nil {
		return fmt.Errorf("render text: page has no dataset")
	}
	styles := DefaultStyles()
	title := p.Title
	if title == "" {
		title = DefaultTitle
	}

	var sb strings.Builder
	sb.WriteString(styles.Title.Render(title))
	sb.WriteString("\n\n")
	sb.WriteString(StatCards(styles, p.Dataset.Summary.Cards()))
	sb.WriteString("\n\n")

	for _, c := range distribution.Charts(p.Dataset) {
		sb.WriteString(BarChart(styles, c, BarWidth))
		sb.WriteString("\n")
	}

	sb.WriteString(styles.Header.Render(" Directory "))
	sb.WriteString("\n")
	sb.WriteString(styles.Muted.Render(fmt.Sprintf("Showing %d of %d alumni", len(p.View.Records), p.View.Total)))
	sb.WriteString("\n\n")
	sb.WriteString(DirectoryTable(styles, dashboard.TableRows(p.View.Records)))

	_, err := io.WriteString(w, sb.String())
	return err
}

// StatCards lays the cards out side by side.
func StatCards(styles Styles, cards []distribution.StatCard) string {
	boxes := make([]string, 0, len(cards))
	for _, c := range cards {
		body := styles.Number.Render(c.Display()) + "\n" + c.Label
		if c.Note != "" {
			body += "\n" + styles.Muted.Render(c.Note)
		}
		boxes = append(boxes, styles.Card.Render(body))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}

// BarChart draws one chart as horizontal bars annotated with count and
// share of the series.
func BarChart(styles Styles, c distribution.Chart, width int) string {
	var sb strings.Builder
	sb.WriteString(styles.Header.Render(" " + c.Title + " "))
	sb.WriteString("\n")

	labelWidth, maxCount := 0, 0
	for _, e := range c.Series.Entries {
		if w := lipgloss.Width(e.Label); w > labelWidth {
			labelWidth = w
		}
		if e.Count > maxCount {
			maxCount = e.Count
		}
	}

	total := c.Series.Total()
	labelStyle := styles.Body.Width(labelWidth + 1)
	for _, e := range c.Series.Entries {
		n := 0
		if maxCount > 0 {
			n = e.Count * width / maxCount
		}
		if n == 0 && e.Count > 0 {
			n = 1
		}
		sb.WriteString(labelStyle.Render(e.Label))
		sb.WriteString(styles.Bar.Render(strings.Repeat("█", n)))
		sb.WriteString(fmt.Sprintf(" %d (%d%%)\n", e.Count, distribution.Percentage(e.Count, total)))
	}
	return sb.String()
}

// DirectoryTable renders rows under the directory column headers. A
// placeholder row prints its message alone.
func DirectoryTable(styles Styles, rows []dashboard.Row) string {
	if len(rows) == 1 && rows[0].Placeholder {
		return styles.Muted.Render(rows[0].Message) + "\n"
	}

	widths := make([]int, len(dashboard.Columns))
	for i, h := range dashboard.Columns {
		widths[i] = lipgloss.Width(h)
	}
	for _, r := range rows {
		for i, cell := range r.Cells() {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var sb strings.Builder
	for i, h := range dashboard.Columns {
		sb.WriteString(styles.Bold.Width(widths[i] + 2).Render(h))
	}
	sb.WriteString("\n")

	total := 0
	for _, w := range widths {
		total += w + 2
	}
	sb.WriteString(styles.Muted.Render(strings.Repeat("-", total)))
	sb.WriteString("\n")

	for _, r := range rows {
		badges := []string{"", "", "", "", r.WorkStatusBadge, r.MentoringBadge, r.PlacementBadge}
		for i, cell := range r.Cells() {
			padded := styles.Body.Width(widths[i] + 2).Render(cell)
			if badges[i] != "" {
				padded = styles.Badge(badges[i], padded)
			}
			sb.WriteString(padded)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
