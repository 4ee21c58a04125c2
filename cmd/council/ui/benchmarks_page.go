package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"council/internal/api"
)

// BenchmarksPageModel renders the pipeline performance summary.
type BenchmarksPageModel struct {
	viewport viewport.Model
	styles   Styles

	summary *api.BenchmarkSummary
	loading bool

	width  int
	height int
}

// NewBenchmarksPageModel creates a new benchmarks page component.
func NewBenchmarksPageModel(styles Styles) BenchmarksPageModel {
	vp := viewport.New(80, 20)
	return BenchmarksPageModel{
		viewport: vp,
		styles:   styles,
		loading:  true,
	}
}

// SetSize updates the size of the viewport.
func (m *BenchmarksPageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.viewport.Width = w
	m.viewport.Height = h - 4
	m.UpdateContent()
}

// SetSummary installs the fetched benchmark data.
func (m *BenchmarksPageModel) SetSummary(summary *api.BenchmarkSummary) {
	m.summary = summary
	m.loading = false
	m.UpdateContent()
}

// UpdateContent refreshes the viewport content.
func (m *BenchmarksPageModel) UpdateContent() {
	var sb strings.Builder

	sb.WriteString(m.styles.Header.Render("Benchmarks"))
	sb.WriteString("\n\n")

	if m.loading || m.summary == nil {
		sb.WriteString(m.styles.Muted.Render("Loading benchmarks..."))
		m.viewport.SetContent(sb.String())
		return
	}

	s := m.summary
	o := s.OverallStats
	sb.WriteString(m.styles.Title.Render("Overall"))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Jobs:             %d\n", o.TotalJobs))
	sb.WriteString(fmt.Sprintf("Questions:        %d\n", o.TotalQuestions))
	sb.WriteString(fmt.Sprintf("Avg confidence:   %.2f\n", o.AvgConfidence))
	sb.WriteString(fmt.Sprintf("Avg time/q:       %.1fs\n", o.AvgTimePerQuestion))
	sb.WriteString(fmt.Sprintf("Fastest question: %.1fs\n", o.FastestQuestion))
	sb.WriteString(fmt.Sprintf("Slowest question: %.1fs\n", o.SlowestQuestion))
	sb.WriteString("\n")

	if len(s.PhaseTimings) > 0 {
		table := NewSimpleTable("Phase Timings", []string{"Phase", "Avg Seconds"})
		phases := make([]string, 0, len(s.PhaseTimings))
		for p := range s.PhaseTimings {
			phases = append(phases, p)
		}
		sort.Strings(phases)
		for _, p := range phases {
			table.AddRow(p, fmt.Sprintf("%.2f", s.PhaseTimings[p]))
		}
		sb.WriteString(table.View(m.styles))
	}

	ce := s.CouncilEffectiveness
	sb.WriteString(m.styles.Title.Render("Council Effectiveness"))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Agent A selected: %d\n", ce.AgentASelected))
	sb.WriteString(fmt.Sprintf("Agent C selected: %d\n", ce.AgentCSelected))
	sb.WriteString(fmt.Sprintf("Combined:         %d\n", ce.CombinedSelected))
	sb.WriteString(fmt.Sprintf("Vetting: %s approved, %s rejected, %d pending\n",
		m.styles.Success.Render(fmt.Sprintf("%d", ce.Approved)),
		m.styles.Error.Render(fmt.Sprintf("%d", ce.Rejected)),
		ce.Pending))
	sb.WriteString("\n")

	if len(s.QuestionTypeStats) > 0 {
		table := NewSimpleTable("By Question Type", []string{"Type", "Count", "Avg Confidence", "Avg Time"})
		for _, row := range s.QuestionTypeStats {
			table.AddRow(
				row.Type,
				fmt.Sprintf("%d", row.Count),
				fmt.Sprintf("%.2f", row.AvgConfidence),
				fmt.Sprintf("%.1fs", row.AvgTime),
			)
		}
		sb.WriteString(table.View(m.styles))
	}

	sb.WriteString(m.styles.Muted.Render("r: refresh  e: export json"))
	m.viewport.SetContent(sb.String())
}

// Update handles viewport scrolling.
func (m BenchmarksPageModel) Update(msg tea.Msg) (BenchmarksPageModel, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the page.
func (m BenchmarksPageModel) View() string {
	return m.viewport.View()
}
