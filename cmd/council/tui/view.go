package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the dashboard: header, active page, form overlay when
// one is open, and the status/help footer.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder

	sb.WriteString(m.headerView())
	sb.WriteString("\n")

	if m.formMode != FormNone && m.formMode != FormRubricPick {
		sb.WriteString(m.formView())
	} else if m.formMode == FormRubricPick {
		sb.WriteString(m.rubricPickView())
	} else {
		sb.WriteString(m.pageView())
	}

	sb.WriteString("\n")
	sb.WriteString(m.footerView())

	return sb.String()
}

func (m *Model) headerView() string {
	title := "council"
	screen := m.viewMode.String()
	server := m.client.BaseURL()
	left := m.styles.Header.Render(fmt.Sprintf(" %s | %s ", title, screen))
	right := m.styles.Muted.Render(" " + server)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (m *Model) pageView() string {
	switch m.viewMode {
	case SubjectsView:
		return m.subjectsPage.View()
	case DetailView:
		return m.detailPage.View()
	case GenerateView:
		return m.generatePage.View()
	case VettingView:
		return m.vettingPage.View()
	case BenchmarksView:
		return m.benchmarksPage.View()
	case TrainingView:
		return m.trainingPage.View()
	}
	return ""
}

func (m *Model) formView() string {
	var sb strings.Builder

	switch m.formMode {
	case FormNewSubject:
		sb.WriteString(m.styles.Title.Render("New Subject"))
	case FormNewUnit:
		sb.WriteString(m.styles.Title.Render("New Unit"))
	case FormApprove:
		sb.WriteString(m.styles.Title.Render("Approve Question"))
	case FormReject:
		sb.WriteString(m.styles.Title.Render("Reject Question"))
	case FormEdit:
		sb.WriteString(m.styles.Title.Render("Edit Question"))
	}
	sb.WriteString("\n\n")

	if m.formMode == FormEdit {
		sb.WriteString(m.formArea.View())
		sb.WriteString("\n\n")
		sb.WriteString(m.styles.Muted.Render("ctrl+d: submit  esc: cancel"))
		return m.styles.Card.Render(sb.String())
	}

	for i := range m.formInputs {
		sb.WriteString(m.formInputs[i].View())
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(m.styles.Muted.Render("enter: submit  tab: next field  esc: cancel"))
	return m.styles.Card.Render(sb.String())
}

func (m *Model) rubricPickView() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Choose Rubric"))
	sb.WriteString("\n\n")
	for i, r := range m.activeRubrics {
		marker := "  "
		style := m.styles.Body
		if i == m.rubricCursor {
			marker = "> "
			style = m.styles.Selected
		}
		sb.WriteString(style.Render(fmt.Sprintf("%s%s (%s, %d marks, %dm)",
			marker, r.Name, r.ExamType, r.TotalMarks, r.Duration)))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(m.styles.Muted.Render("enter: generate  esc: cancel"))
	return m.styles.Card.Render(sb.String())
}

func (m *Model) footerView() string {
	if m.status != "" {
		if m.statusErr {
			return m.styles.Error.Render(" ✗ " + m.status)
		}
		return m.styles.Success.Render(" ✓ " + m.status)
	}

	var help string
	switch m.viewMode {
	case SubjectsView:
		help = "enter: open  n: new  D: delete  r: refresh  v: vetting  b: benchmarks  q: quit"
	case DetailView:
		help = "g: generate  t: training  u: new unit  v: vetting  b: benchmarks  esc: back"
	case GenerateView:
		help = "v: vet batch (when done)  esc: back"
	case VettingView:
		if m.vettingPage.InBatchList() {
			help = "enter: open batch  r: refresh  esc: back"
		} else {
			help = "a: approve  x: reject  e: edit  s: skip  esc: batches"
		}
	case BenchmarksView:
		help = "r: refresh  e: export  esc: back"
	case TrainingView:
		help = "t: train  esc: back"
	}
	return m.styles.Footer.Render(help)
}
