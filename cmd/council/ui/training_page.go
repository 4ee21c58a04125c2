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

// TrainingPageModel renders the skill training pipeline for a subject:
// dataset readiness, live phase progress from the poller, and the
// baseline versus trained scores once evaluation finishes.
type TrainingPageModel struct {
	viewport viewport.Model
	progress progress.Model
	spinner  spinner.Model
	styles   Styles

	status  *api.TrainingStatus
	pollErr error
	subject string
	loading bool

	width  int
	height int
}

// NewTrainingPageModel creates a new training page component.
func NewTrainingPageModel(styles Styles) TrainingPageModel {
	vp := viewport.New(80, 20)
	pr := progress.New(progress.WithDefaultGradient())
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner
	return TrainingPageModel{
		viewport: vp,
		progress: pr,
		spinner:  sp,
		styles:   styles,
		loading:  true,
	}
}

// SetSize updates the size of the viewport and progress bar.
func (m *TrainingPageModel) SetSize(w, h int) {
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

// SetSubject records the subject name shown in the header.
func (m *TrainingPageModel) SetSubject(name string) {
	m.subject = name
	m.UpdateContent()
}

// SetStatus installs the latest training snapshot.
func (m *TrainingPageModel) SetStatus(status *api.TrainingStatus) {
	m.status = status
	m.pollErr = nil
	m.loading = false
	m.UpdateContent()
}

// SetError records a transient poll error.
func (m *TrainingPageModel) SetError(err error) {
	m.pollErr = err
	m.loading = false
	m.UpdateContent()
}

// Status returns the latest snapshot, or nil.
func (m *TrainingPageModel) Status() *api.TrainingStatus {
	return m.status
}

// Running reports whether a training run is in flight.
func (m *TrainingPageModel) Running() bool {
	return m.status != nil && !m.status.Terminal()
}

func phaseLabel(status string) string {
	switch status {
	case api.TrainingGenerating:
		return "Generating skill from vetted dataset"
	case api.TrainingEvaluatingBaseline:
		return "Evaluating baseline model"
	case api.TrainingEvaluatingSkill:
		return "Evaluating trained skill"
	default:
		return status
	}
}

// UpdateContent refreshes the viewport content.
func (m *TrainingPageModel) UpdateContent() {
	var sb strings.Builder

	title := "Skill Training"
	if m.subject != "" {
		title = "Skill Training: " + m.subject
	}
	sb.WriteString(m.styles.Header.Render(title))
	sb.WriteString("\n\n")

	if m.loading {
		sb.WriteString(m.styles.Muted.Render("Loading training status..."))
		m.viewport.SetContent(sb.String())
		return
	}
	if m.status == nil {
		sb.WriteString(m.styles.Muted.Render("No training status available."))
		m.viewport.SetContent(sb.String())
		return
	}

	s := m.status
	sb.WriteString(fmt.Sprintf("Status: %s", m.styles.StatusStyle(s.Status).Render(s.Status)))
	if s.Version > 0 {
		sb.WriteString(m.styles.Muted.Render(fmt.Sprintf("  (skill v%d)", s.Version)))
	}
	sb.WriteString("\n\n")

	switch {
	case s.Status == api.TrainingUntrained:
		sb.WriteString("No skill trained for this subject yet.\n")
		if s.ReadyForTraining {
			sb.WriteString(m.styles.Success.Render("Dataset is ready.") + " Press 't' to start training.\n")
		} else {
			sb.WriteString(m.styles.Muted.Render("Vet more questions to unlock training.") + "\n")
		}
	case !s.Terminal():
		sb.WriteString(m.spinner.View() + " " + phaseLabel(s.Status) + "\n\n")
		pct := float64(s.Progress) / 100.0
		if pct > 1 {
			pct = 1
		}
		sb.WriteString(m.progress.ViewAs(pct))
		sb.WriteString("\n")
	case s.Status == api.TrainingComplete:
		sb.WriteString(m.styles.Success.Render("Training complete.") + "\n\n")
		sb.WriteString(fmt.Sprintf("Baseline score: %.1f%%\n", s.BaselineScore))
		sb.WriteString(fmt.Sprintf("Trained score:  %.1f%%\n", s.TrainedScore))
		improvement := m.styles.Success
		if s.ImprovementPct < 0 {
			improvement = m.styles.Error
		}
		sb.WriteString(fmt.Sprintf("Improvement:    %s\n", improvement.Render(fmt.Sprintf("%+.1f%%", s.ImprovementPct))))
		if s.AutoDeactivated {
			sb.WriteString("\n" + m.styles.Warning.Render("Skill auto-deactivated: "+s.DeactivationReason) + "\n")
		} else if s.IsActive {
			sb.WriteString("\n" + m.styles.Info.Render("Skill is active for generation.") + "\n")
		}
	case s.Status == api.TrainingFailed:
		sb.WriteString(m.styles.Error.Render("Training failed.") + "\n")
		if s.ErrorMessage != "" {
			sb.WriteString(s.ErrorMessage + "\n")
		}
	}

	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Dataset: %d approved, %d rejected used, %d test cases\n",
		s.ApprovedUsed, s.RejectedUsed, s.TotalTestCases))
	if s.TrainingLog != "" {
		sb.WriteString("\n" + m.styles.Title.Render("Log") + "\n")
		sb.WriteString(m.styles.Muted.Render(s.TrainingLog) + "\n")
	}

	if m.pollErr != nil {
		sb.WriteString("\n")
		sb.WriteString(m.styles.Warning.Render(fmt.Sprintf("poll error: %v (retrying)", m.pollErr)) + "\n")
	}

	m.viewport.SetContent(sb.String())
}

// Update handles spinner ticks and viewport scrolling.
func (m TrainingPageModel) Update(msg tea.Msg) (TrainingPageModel, tea.Cmd) {
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

// Tick returns the spinner tick command used while training runs.
func (m TrainingPageModel) Tick() tea.Cmd {
	return m.spinner.Tick
}

// View renders the page.
func (m TrainingPageModel) View() string {
	return m.viewport.View()
}
