package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"council/internal/api"
	"council/internal/vetting"
)

// VettingPageModel walks the pending-question queue for one batch. The
// question body is recovered from whatever the council agents emitted,
// rendered through glamour, and paired with the running dataset stats.
type VettingPageModel struct {
	viewport viewport.Model
	styles   Styles
	renderer *glamour.TermRenderer

	batches []api.VettingBatch
	queue   []api.Question
	index   int
	stats   *api.DatasetStats
	cos     []api.CourseOutcome

	// batchMode is true while the batch list is shown instead of a
	// question.
	batchMode   bool
	batchCursor int
	loading     bool

	width  int
	height int
}

// NewVettingPageModel creates a new vetting page component.
func NewVettingPageModel(styles Styles) VettingPageModel {
	vp := viewport.New(80, 20)
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(76),
	)
	if err != nil {
		renderer = nil
	}
	return VettingPageModel{
		viewport:  vp,
		styles:    styles,
		renderer:  renderer,
		batchMode: true,
		loading:   true,
	}
}

// SetSize updates the size of the viewport.
func (m *VettingPageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.viewport.Width = w
	m.viewport.Height = h - 4
	m.UpdateContent()
}

// SetBatches installs the batch list and switches to batch selection.
func (m *VettingPageModel) SetBatches(batches []api.VettingBatch) {
	m.batches = batches
	m.batchMode = true
	m.loading = false
	if m.batchCursor >= len(batches) {
		m.batchCursor = len(batches) - 1
	}
	if m.batchCursor < 0 {
		m.batchCursor = 0
	}
	m.UpdateContent()
}

// SetQueue installs the pending questions for the chosen batch along
// with the course outcomes used for mapping.
func (m *VettingPageModel) SetQueue(queue []api.Question, stats *api.DatasetStats, cos []api.CourseOutcome) {
	m.queue = queue
	m.stats = stats
	m.cos = cos
	m.index = 0
	m.batchMode = false
	m.loading = false
	m.UpdateContent()
}

// SetStats refreshes the dataset counters after a submission.
func (m *VettingPageModel) SetStats(stats *api.DatasetStats) {
	m.stats = stats
	m.UpdateContent()
}

// SelectedBatch returns the batch under the cursor, or nil.
func (m *VettingPageModel) SelectedBatch() *api.VettingBatch {
	if !m.batchMode || len(m.batches) == 0 {
		return nil
	}
	return &m.batches[m.batchCursor]
}

// Current returns the question being vetted, or nil when the queue is
// exhausted or the batch list is shown.
func (m *VettingPageModel) Current() *api.Question {
	if m.batchMode || m.index >= len(m.queue) {
		return nil
	}
	return &m.queue[m.index]
}

// COs returns the course outcomes loaded with the queue. Approve and
// edit submissions map against these, not whatever subject another
// screen happens to show.
func (m *VettingPageModel) COs() []api.CourseOutcome {
	return m.cos
}

// InBatchList reports whether the batch list is active.
func (m *VettingPageModel) InBatchList() bool {
	return m.batchMode
}

// Advance removes the current question from the queue and moves to the
// next one. It returns false when the queue is exhausted.
func (m *VettingPageModel) Advance() bool {
	if m.index < len(m.queue) {
		m.queue = append(m.queue[:m.index], m.queue[m.index+1:]...)
	}
	if m.index >= len(m.queue) {
		m.index = len(m.queue) - 1
	}
	if m.index < 0 {
		m.index = 0
	}
	m.UpdateContent()
	return len(m.queue) > 0
}

// Skip moves past the current question without removing it.
func (m *VettingPageModel) Skip() {
	if len(m.queue) == 0 {
		return
	}
	m.index = (m.index + 1) % len(m.queue)
	m.UpdateContent()
}

// MoveCursor shifts the batch selection by delta.
func (m *VettingPageModel) MoveCursor(delta int) {
	if !m.batchMode {
		return
	}
	m.batchCursor += delta
	if m.batchCursor < 0 {
		m.batchCursor = 0
	}
	if m.batchCursor >= len(m.batches) {
		m.batchCursor = len(m.batches) - 1
	}
	m.UpdateContent()
}

// UpdateContent refreshes the viewport content.
func (m *VettingPageModel) UpdateContent() {
	var sb strings.Builder

	sb.WriteString(m.styles.Header.Render("Vetting"))
	sb.WriteString("\n\n")

	if m.loading {
		sb.WriteString(m.styles.Muted.Render("Loading batches..."))
		m.viewport.SetContent(sb.String())
		return
	}

	if m.batchMode {
		m.renderBatchList(&sb)
	} else {
		m.renderQuestion(&sb)
	}

	m.viewport.SetContent(sb.String())
}

func (m *VettingPageModel) renderBatchList(sb *strings.Builder) {
	if len(m.batches) == 0 {
		sb.WriteString(m.styles.Muted.Render("No batches awaiting review."))
		return
	}
	table := NewSimpleTable("Batches", []string{"", "Job", "Subject", "Rubric", "Pending", "Progress"})
	table.Cursor = m.batchCursor
	for i, b := range m.batches {
		marker := " "
		if i == m.batchCursor {
			marker = ">"
		}
		table.AddRow(
			marker,
			fmt.Sprintf("#%d", b.JobID),
			truncate(b.SubjectName, 30),
			truncate(b.RubricName, 25),
			fmt.Sprintf("%d", b.PendingCount),
			fmt.Sprintf("%d%%", b.Progress),
		)
	}
	sb.WriteString(table.View(m.styles))
	sb.WriteString(m.styles.Muted.Render("enter: open batch  r: refresh"))
}

func (m *VettingPageModel) renderQuestion(sb *strings.Builder) {
	if len(m.queue) == 0 {
		sb.WriteString(m.styles.Success.Render("Queue empty. All questions vetted."))
		sb.WriteString("\n\n")
		m.renderStats(sb)
		return
	}

	q := m.queue[m.index]
	sb.WriteString(fmt.Sprintf("Question %d of %d  (#%d, %s, %d marks)\n\n",
		m.index+1, len(m.queue), q.ID, q.QuestionType, q.Marks))

	text := vetting.ExtractQuestionText(q.Text)
	body := vetting.FlattenMarkdown(text)
	if m.renderer != nil {
		if rendered, err := m.renderer.Render(text); err == nil {
			body = rendered
		}
	}
	sb.WriteString(body)
	sb.WriteString("\n")

	options := vetting.ExtractOptions(q.Options, q.QuestionType, q.Text)
	for _, opt := range options {
		sb.WriteString("  " + opt + "\n")
	}
	if len(options) > 0 && q.CorrectAnswer != "" {
		sb.WriteString(m.styles.Muted.Render("  answer: "+q.CorrectAnswer) + "\n")
	}
	sb.WriteString("\n")

	if q.ConfidenceScore > 0 {
		sb.WriteString(fmt.Sprintf("Confidence: %.2f  Source: %s\n", q.ConfidenceScore, q.SelectedFrom))
	}
	if len(m.cos) > 0 {
		codes := make([]string, 0, len(m.cos))
		for _, co := range m.cos {
			codes = append(codes, fmt.Sprintf("%d:%s", co.ID, co.Code))
		}
		sb.WriteString(m.styles.Muted.Render("COs: "+strings.Join(codes, "  ")) + "\n")
	}
	sb.WriteString("\n")

	m.renderStats(sb)
	sb.WriteString("\n")
	sb.WriteString(m.styles.Muted.Render("a: approve  x: reject  e: edit  s: skip  esc: batches"))
}

func (m *VettingPageModel) renderStats(sb *strings.Builder) {
	if m.stats == nil {
		return
	}
	ready := m.styles.Muted.Render("not ready for training")
	if m.stats.ReadyForTraining {
		ready = m.styles.Success.Render("ready for training")
	}
	sb.WriteString(fmt.Sprintf("Dataset: %s approved / %s rejected / %d vetted  (%s)\n",
		m.styles.Success.Render(fmt.Sprintf("%d", m.stats.Approved)),
		m.styles.Error.Render(fmt.Sprintf("%d", m.stats.Rejected)),
		m.stats.TotalVetted,
		ready))
}

// Update handles viewport scrolling.
func (m VettingPageModel) Update(msg tea.Msg) (VettingPageModel, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the page.
func (m VettingPageModel) View() string {
	return m.viewport.View()
}
