package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"council/cmd/council/ui"
	"council/internal/api"
	"council/internal/config"
	"council/internal/discover"
	"council/internal/poll"
)

// Model is the main model for the interactive dashboard.
type Model struct {
	client *api.Client
	cfg    *config.Config
	logger *zap.Logger
	styles ui.Styles

	viewMode ViewMode
	width    int
	height   int

	// Pages
	subjectsPage   ui.SubjectsPageModel
	detailPage     ui.DetailPageModel
	generatePage   ui.GeneratePageModel
	vettingPage    ui.VettingPageModel
	benchmarksPage ui.BenchmarksPageModel
	trainingPage   ui.TrainingPageModel

	// Inline form state
	formMode   FormMode
	formInputs []textinput.Model
	formFocus  int
	formArea   textarea.Model

	// Generation context
	activeSubject *api.Subject
	activeRubrics []api.Rubric
	rubricCursor  int

	// Vetting context
	activeBatch *api.VettingBatch

	// placeholderSeq hands out negative ids for optimistic rows that
	// the server has not confirmed yet.
	placeholderSeq int

	// Poller plumbing. Cancels stop the goroutines when a screen is
	// left; the channels feed snapshots back into Update.
	jobCh       <-chan poll.Snapshot[api.Job]
	jobCancel   context.CancelFunc
	trainCh     <-chan poll.Snapshot[api.TrainingStatus]
	trainCancel context.CancelFunc

	// Dev-server discovery
	watcher *discover.Watcher

	// Status line
	status    string
	statusErr bool

	quitting bool
}

// Option configures the dashboard model.
type Option func(*Model)

// WithWatcher attaches a dev-server metadata watcher. Base URL changes
// repoint the client without restarting the dashboard.
func WithWatcher(w *discover.Watcher) Option {
	return func(m *Model) { m.watcher = w }
}

// WithStyles overrides the auto-detected theme.
func WithStyles(s ui.Styles) Option {
	return func(m *Model) { m.styles = s }
}

// New creates the dashboard model.
func New(client *api.Client, cfg *config.Config, logger *zap.Logger, opts ...Option) *Model {
	styles := ui.DefaultStyles()
	m := &Model{
		client:   client,
		cfg:      cfg,
		logger:   logger,
		styles:   styles,
		viewMode: SubjectsView,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.subjectsPage = ui.NewSubjectsPageModel(m.styles)
	m.detailPage = ui.NewDetailPageModel(m.styles)
	m.generatePage = ui.NewGeneratePageModel(m.styles)
	m.vettingPage = ui.NewVettingPageModel(m.styles)
	m.benchmarksPage = ui.NewBenchmarksPageModel(m.styles)
	m.trainingPage = ui.NewTrainingPageModel(m.styles)
	return m
}

// Init starts the subject load and, when configured, the dev-server
// metadata watcher.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadSubjects()}
	if m.watcher != nil {
		cmds = append(cmds, waitServerChange(m.watcher.Updates()))
	}
	return tea.Batch(cmds...)
}

// stopPollers cancels any live job or training watch.
func (m *Model) stopPollers() {
	if m.jobCancel != nil {
		m.jobCancel()
		m.jobCancel = nil
	}
	if m.trainCancel != nil {
		m.trainCancel()
		m.trainCancel = nil
	}
}

// setError puts an error in the status line.
func (m *Model) setError(err error) {
	m.status = err.Error()
	m.statusErr = true
}

// setStatus puts an informational notice in the status line.
func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

// clearStatus dismisses the status line.
func (m *Model) clearStatus() {
	m.status = ""
	m.statusErr = false
}
