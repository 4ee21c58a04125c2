package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"council/internal/api"
)

// DetailPageModel renders a single subject: its unit and topic tree,
// uploaded materials, course outcomes, rubrics, and RAG index status.
type DetailPageModel struct {
	viewport viewport.Model
	styles   Styles

	detail  *api.SubjectDetail
	rag     *api.RAGStatus
	rubrics []api.Rubric
	loading bool

	width  int
	height int
}

// NewDetailPageModel creates a new subject detail page component.
func NewDetailPageModel(styles Styles) DetailPageModel {
	vp := viewport.New(80, 20)
	return DetailPageModel{
		viewport: vp,
		styles:   styles,
		loading:  true,
	}
}

// SetSize updates the size of the viewport.
func (m *DetailPageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.viewport.Width = w
	m.viewport.Height = h - 4
	m.UpdateContent()
}

// SetLoading marks the page as waiting on a fresh fetch.
func (m *DetailPageModel) SetLoading() {
	m.loading = true
	m.detail = nil
	m.rag = nil
	m.rubrics = nil
	m.UpdateContent()
}

// SetDetail installs the fetched subject data.
func (m *DetailPageModel) SetDetail(detail *api.SubjectDetail, rag *api.RAGStatus, rubrics []api.Rubric) {
	m.detail = detail
	m.rag = rag
	m.rubrics = rubrics
	m.loading = false
	m.UpdateContent()
}

// Detail returns the currently displayed subject, or nil.
func (m *DetailPageModel) Detail() *api.SubjectDetail {
	return m.detail
}

// UpdateContent refreshes the viewport content.
func (m *DetailPageModel) UpdateContent() {
	var sb strings.Builder

	if m.loading || m.detail == nil {
		sb.WriteString(m.styles.Muted.Render("Loading subject..."))
		m.viewport.SetContent(sb.String())
		return
	}

	d := m.detail
	sb.WriteString(m.styles.Header.Render(fmt.Sprintf("%s (%s)", d.Name, d.Code)))
	sb.WriteString("\n\n")

	if m.rag != nil {
		state := m.styles.Warning.Render("indexing")
		if m.rag.Ready {
			state = m.styles.Success.Render("ready")
		}
		sb.WriteString(fmt.Sprintf("RAG index: %s  (%d materials, %d chunks)\n\n",
			state, m.rag.MaterialCount, m.rag.TotalChunks))
	}

	sb.WriteString(m.styles.Title.Render("Units"))
	sb.WriteString("\n")
	if len(d.Units) == 0 {
		sb.WriteString(m.styles.Muted.Render("No units yet.") + "\n")
	}
	for _, u := range d.Units {
		sb.WriteString(m.styles.Bold.Render(fmt.Sprintf("Unit %d: %s", u.UnitNumber, u.Name)))
		if len(u.MappedCOs) > 0 {
			codes := make([]string, 0, len(u.MappedCOs))
			for _, co := range u.MappedCOs {
				codes = append(codes, co.Code)
			}
			sb.WriteString(m.styles.Muted.Render("  [" + strings.Join(codes, ", ") + "]"))
		}
		sb.WriteString("\n")
		for _, t := range u.Topics {
			line := fmt.Sprintf("  • %s", t.Title)
			if t.SampleQuestionsCount > 0 {
				line += m.styles.Muted.Render(fmt.Sprintf("  (%d samples)", t.SampleQuestionsCount))
			}
			sb.WriteString(line + "\n")
		}
		for _, lo := range u.LearningOutcomes {
			sb.WriteString(m.styles.Muted.Render(fmt.Sprintf("    %s %s", lo.Code, truncate(lo.Description, 60))) + "\n")
		}
	}
	sb.WriteString("\n")

	if len(d.CourseOutcomes) > 0 {
		sb.WriteString(m.styles.Title.Render("Course Outcomes"))
		sb.WriteString("\n")
		for _, co := range d.CourseOutcomes {
			sb.WriteString(fmt.Sprintf("%s  %s\n", m.styles.Bold.Render(co.Code), truncate(co.Description, 70)))
			if len(co.BloomsLevels) > 0 {
				sb.WriteString(m.styles.Muted.Render("    Bloom's: "+strings.Join(co.BloomsLevels, ", ")) + "\n")
			}
		}
		sb.WriteString("\n")
	}

	if len(d.Materials) > 0 {
		table := NewSimpleTable("Materials", []string{"ID", "File", "Type", "Chunks"})
		for _, mat := range d.Materials {
			table.AddRow(
				fmt.Sprintf("%d", mat.ID),
				truncate(mat.Filename, 40),
				mat.FileType,
				fmt.Sprintf("%d", mat.ChunkCount),
			)
		}
		sb.WriteString(table.View(m.styles))
	}

	if len(m.rubrics) > 0 {
		table := NewSimpleTable("Rubrics", []string{"ID", "Name", "Exam", "Marks", "Duration"})
		for _, r := range m.rubrics {
			table.AddRow(
				fmt.Sprintf("%d", r.ID),
				truncate(r.Name, 30),
				r.ExamType,
				fmt.Sprintf("%d", r.TotalMarks),
				fmt.Sprintf("%dm", r.Duration),
			)
		}
		sb.WriteString(table.View(m.styles))
	}

	m.viewport.SetContent(sb.String())
}

// Update handles viewport scrolling.
func (m DetailPageModel) Update(msg tea.Msg) (DetailPageModel, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the page.
func (m DetailPageModel) View() string {
	return m.viewport.View()
}
