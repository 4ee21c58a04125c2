package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"council/internal/api"
)

// SubjectsPageModel renders the subject list and tracks the selection
// cursor. It holds a copy of the last loaded subjects so the dashboard
// can apply optimistic updates before the server confirms them.
type SubjectsPageModel struct {
	viewport viewport.Model
	styles   Styles
	subjects []api.Subject
	cursor   int
	loading  bool
	width    int
	height   int
}

// NewSubjectsPageModel creates a new subjects page component.
func NewSubjectsPageModel(styles Styles) SubjectsPageModel {
	vp := viewport.New(80, 20)
	return SubjectsPageModel{
		viewport: vp,
		styles:   styles,
		loading:  true,
	}
}

// SetSize updates the size of the viewport.
func (m *SubjectsPageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.viewport.Width = w
	m.viewport.Height = h - 4
	m.UpdateContent()
}

// SetSubjects replaces the subject list and clamps the cursor.
func (m *SubjectsPageModel) SetSubjects(subjects []api.Subject) {
	m.subjects = subjects
	m.loading = false
	if m.cursor >= len(subjects) {
		m.cursor = len(subjects) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.UpdateContent()
}

// Subjects returns the current subject list.
func (m *SubjectsPageModel) Subjects() []api.Subject {
	return m.subjects
}

// Selected returns the subject under the cursor, or nil when the list
// is empty.
func (m *SubjectsPageModel) Selected() *api.Subject {
	if len(m.subjects) == 0 || m.cursor < 0 || m.cursor >= len(m.subjects) {
		return nil
	}
	return &m.subjects[m.cursor]
}

// Append adds a subject optimistically and moves the cursor to it.
func (m *SubjectsPageModel) Append(s api.Subject) {
	m.subjects = append(m.subjects, s)
	m.cursor = len(m.subjects) - 1
	m.UpdateContent()
}

// Remove drops the subject with the given id from the local list.
func (m *SubjectsPageModel) Remove(subjectID int) {
	kept := m.subjects[:0]
	for _, s := range m.subjects {
		if s.ID != subjectID {
			kept = append(kept, s)
		}
	}
	m.subjects = kept
	if m.cursor >= len(m.subjects) {
		m.cursor = len(m.subjects) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.UpdateContent()
}

// MoveCursor shifts the selection by delta, clamped to the list.
func (m *SubjectsPageModel) MoveCursor(delta int) {
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.subjects) {
		m.cursor = len(m.subjects) - 1
	}
	m.UpdateContent()
}

// UpdateContent refreshes the viewport content from the subject list.
func (m *SubjectsPageModel) UpdateContent() {
	var sb strings.Builder

	sb.WriteString(m.styles.Header.Render("Subjects"))
	sb.WriteString("\n\n")

	switch {
	case m.loading:
		sb.WriteString(m.styles.Muted.Render("Loading subjects..."))
	case len(m.subjects) == 0:
		sb.WriteString(m.styles.Muted.Render("No subjects yet. Press 'n' to create one."))
	default:
		table := NewSimpleTable("", []string{"", "ID", "Code", "Name", "Units", "Topics", "Materials"})
		table.Cursor = m.cursor
		for i, s := range m.subjects {
			marker := " "
			if i == m.cursor {
				marker = ">"
			}
			table.AddRow(
				marker,
				fmt.Sprintf("%d", s.ID),
				s.Code,
				truncate(s.Name, 40),
				fmt.Sprintf("%d", s.UnitCount),
				fmt.Sprintf("%d", s.TopicCount),
				fmt.Sprintf("%d", s.MaterialCount),
			)
		}
		sb.WriteString(table.View(m.styles))
	}

	m.viewport.SetContent(sb.String())
}

// Update handles viewport scrolling.
func (m SubjectsPageModel) Update(msg tea.Msg) (SubjectsPageModel, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the page.
func (m SubjectsPageModel) View() string {
	return m.viewport.View()
}
