package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"council/internal/api"
)

// GeneratePageModel renders a running generation job: a progress bar
// driven by the job poller, phase status, and the result summary once
// the job reaches a terminal state.
type GeneratePageModel struct {
	viewport viewport.Model
	progress progress.Model
	spinner  spinner.Model
	styles   Styles

	job     *api.Job
	jobErr  error
	subject string
	rubric  string

	width  int
	height int
}

// NewGeneratePageModel creates a new generation page component.
func NewGeneratePageModel(styles Styles) GeneratePageModel {
	vp := viewport.New(80, 20)
	pr := progress.New(progress.WithDefaultGradient())
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner
	return GeneratePageModel{
		viewport: vp,
		progress: pr,
		spinner:  sp,
		styles:   styles,
	}
}

// SetSize updates the size of the viewport and progress bar.
func (m *GeneratePageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.viewport.Width = w
	m.viewport.Height = h - 4
	pw := w - 8
	if pw < 10 {
		pw = 10
	}
	m.progress.Width = pw
	m.UpdateContent()
}

// SetContext records the subject and rubric names shown above the bar.
func (m *GeneratePageModel) SetContext(subject, rubric string) {
	m.subject = subject
	m.rubric = rubric
	m.UpdateContent()
}

// SetJob installs the latest job snapshot from the poller.
func (m *GeneratePageModel) SetJob(job *api.Job) {
	m.job = job
	m.jobErr = nil
	m.UpdateContent()
}

// SetError records a transient poll error without dropping the last
// good snapshot.
func (m *GeneratePageModel) SetError(err error) {
	m.jobErr = err
	m.UpdateContent()
}

// Job returns the latest job snapshot, or nil.
func (m *GeneratePageModel) Job() *api.Job {
	return m.job
}

// Done reports whether the displayed job reached a terminal state.
func (m *GeneratePageModel) Done() bool {
	return m.job != nil && m.job.Terminal()
}

// UpdateContent refreshes the viewport content.
func (m *GeneratePageModel) UpdateContent() {
	var sb strings.Builder

	sb.WriteString(m.styles.Header.Render("Question Generation"))
	sb.WriteString("\n\n")

	if m.subject != "" {
		sb.WriteString(fmt.Sprintf("Subject: %s\n", m.styles.Bold.Render(m.subject)))
	}
	if m.rubric != "" {
		sb.WriteString(fmt.Sprintf("Rubric:  %s\n", m.styles.Bold.Render(m.rubric)))
	}
	sb.WriteString("\n")

	if m.job == nil {
		sb.WriteString(m.spinner.View() + " Starting job...\n")
		m.viewport.SetContent(sb.String())
		return
	}

	j := m.job
	sb.WriteString(fmt.Sprintf("Job #%d  %s\n\n", j.ID, m.styles.StatusStyle(j.Status).Render(j.Status)))

	pct := float64(j.Progress) / 100.0
	if pct > 1 {
		pct = 1
	}
	sb.WriteString(m.progress.ViewAs(pct))
	sb.WriteString(fmt.Sprintf("\n\n%d / %d questions generated\n",
		j.TotalQuestionsGenerated, j.TotalQuestionsRequested))

	if !j.Terminal() {
		sb.WriteString(m.spinner.View() + " Council deliberating...\n")
	}

	if j.Status == api.JobCompleted {
		sb.WriteString("\n")
		sb.WriteString(m.styles.Success.Render("Generation complete.") + "\n")
		sb.WriteString(fmt.Sprintf("Total time:     %.1fs\n", j.TotalTimeSeconds))
		sb.WriteString(fmt.Sprintf("Per question:   %.1fs\n", j.AvgTimePerQuestion))
		sb.WriteString(fmt.Sprintf("Avg confidence: %.2f\n", j.AvgConfidenceScore))
		sb.WriteString("\nPress 'v' to vet the new batch.\n")
	}
	if j.Status == api.JobFailed {
		sb.WriteString("\n")
		sb.WriteString(m.styles.Error.Render("Generation failed.") + "\n")
		if j.ErrorMessage != "" {
			sb.WriteString(j.ErrorMessage + "\n")
		}
	}

	if m.jobErr != nil {
		sb.WriteString("\n")
		sb.WriteString(m.styles.Warning.Render(fmt.Sprintf("poll error: %v (retrying)", m.jobErr)) + "\n")
	}

	m.viewport.SetContent(sb.String())
}

// Update handles spinner ticks and viewport scrolling.
func (m GeneratePageModel) Update(msg tea.Msg) (GeneratePageModel, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	m.spinner, cmd = m.spinner.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	if _, ok := msg.(spinner.TickMsg); ok {
		m.UpdateContent()
	}

	m.viewport, cmd = m.viewport.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// Tick returns the spinner tick command used while the job is live.
func (m GeneratePageModel) Tick() tea.Cmd {
	return m.spinner.Tick
}

// View renders the page.
func (m GeneratePageModel) View() string {
	return m.viewport.View()
}
