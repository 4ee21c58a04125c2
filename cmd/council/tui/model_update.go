package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"council/cmd/council/ui"
	"council/internal/api"
	"council/internal/forms"
	"council/internal/vetting"
)

// Update is the main message loop.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		inner := msg.Height - 3
		m.subjectsPage.SetSize(msg.Width, inner)
		m.detailPage.SetSize(msg.Width, inner)
		m.generatePage.SetSize(msg.Width, inner)
		m.vettingPage.SetSize(msg.Width, inner)
		m.benchmarksPage.SetSize(msg.Width, inner)
		m.trainingPage.SetSize(msg.Width, inner)
		return m, nil

	case tea.KeyMsg:
		if m.formMode != FormNone {
			return m.handleFormKey(msg)
		}
		return m.handleKey(msg)

	case subjectsLoadedMsg:
		m.subjectsPage.SetSubjects(msg)
		return m, nil

	case subjectDetailMsg:
		m.detailPage.SetDetail(msg.detail, msg.rag, msg.rubrics)
		m.activeRubrics = msg.rubrics
		if msg.detail != nil {
			m.activeSubject = &api.Subject{ID: msg.detail.ID, Name: msg.detail.Name, Code: msg.detail.Code}
		}
		return m, nil

	case subjectCreatedMsg:
		m.subjectsPage.Remove(msg.placeholderID)
		if msg.subject != nil {
			m.subjectsPage.Append(*msg.subject)
			m.setStatus(fmt.Sprintf("Created subject %s", msg.subject.Code))
		}
		return m, nil

	case subjectDeletedMsg:
		m.setStatus(fmt.Sprintf("Deleted subject #%d", msg.subjectID))
		return m, nil

	case unitCreatedMsg:
		if m.activeSubject != nil {
			m.setStatus(fmt.Sprintf("Created unit %q", msg.unit.Name))
			m.detailPage.SetLoading()
			return m, m.loadSubjectDetail(m.activeSubject.ID)
		}
		return m, nil

	case generationStartedMsg:
		m.setStatus(msg.accepted.Message)
		return m, tea.Batch(
			m.startJobWatch(msg.accepted.JobID),
			m.generatePage.Tick(),
		)

	case jobSnapshotMsg:
		if msg.Err != nil {
			m.generatePage.SetError(msg.Err)
		} else {
			m.generatePage.SetJob(msg.Value)
		}
		if m.jobCh != nil {
			return m, waitJob(m.jobCh)
		}
		return m, nil

	case jobWatchDoneMsg:
		m.jobCancel = nil
		m.jobCh = nil
		return m, nil

	case trainingStartedMsg:
		m.setStatus(msg.accepted.Message)
		if m.activeSubject != nil && m.trainCancel == nil {
			return m, tea.Batch(
				m.startTrainingWatch(m.activeSubject.ID),
				m.trainingPage.Tick(),
			)
		}
		return m, nil

	case trainingSnapshotMsg:
		if msg.Err != nil {
			m.trainingPage.SetError(msg.Err)
		} else {
			m.trainingPage.SetStatus(msg.Value)
		}
		if m.trainCh != nil {
			return m, waitTraining(m.trainCh)
		}
		return m, nil

	case trainingWatchDoneMsg:
		m.trainCancel = nil
		m.trainCh = nil
		return m, nil

	case vettingBatchesMsg:
		m.vettingPage.SetBatches(msg)
		return m, nil

	case vettingQueueMsg:
		m.vettingPage.SetQueue(msg.queue, msg.stats, msg.cos)
		return m, nil

	case vettingSubmittedMsg:
		if msg.stats != nil {
			m.vettingPage.SetStats(msg.stats)
		}
		m.setStatus(fmt.Sprintf("Recorded verdict for question #%d", msg.questionID))
		return m, nil

	case benchmarksMsg:
		m.benchmarksPage.SetSummary(msg.summary)
		return m, nil

	case benchmarksExportedMsg:
		m.setStatus("Exported benchmarks to " + msg.path)
		return m, nil

	case serverChangedMsg:
		m.client.SetBaseURL(msg.baseURL)
		m.setStatus("Server changed to " + msg.baseURL)
		cmds := []tea.Cmd{m.refreshCurrent()}
		if m.watcher != nil {
			cmds = append(cmds, waitServerChange(m.watcher.Updates()))
		}
		return m, tea.Batch(cmds...)

	case statusMsg:
		m.setStatus(string(msg))
		return m, nil

	case errMsg:
		m.setError(msg.err)
		// Optimistic rows may now be stale; reconcile the list.
		if m.viewMode == SubjectsView {
			return m, m.loadSubjects()
		}
		return m, nil
	}

	return m, m.updateActivePage(msg)
}

// updateActivePage forwards spinner ticks and scrolling to the page
// that is on screen.
func (m *Model) updateActivePage(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.viewMode {
	case SubjectsView:
		m.subjectsPage, cmd = m.subjectsPage.Update(msg)
	case DetailView:
		m.detailPage, cmd = m.detailPage.Update(msg)
	case GenerateView:
		m.generatePage, cmd = m.generatePage.Update(msg)
	case VettingView:
		m.vettingPage, cmd = m.vettingPage.Update(msg)
	case BenchmarksView:
		m.benchmarksPage, cmd = m.benchmarksPage.Update(msg)
	case TrainingView:
		m.trainingPage, cmd = m.trainingPage.Update(msg)
	}
	return cmd
}

// refreshCurrent reloads the data behind the active screen.
func (m *Model) refreshCurrent() tea.Cmd {
	switch m.viewMode {
	case SubjectsView:
		return m.loadSubjects()
	case DetailView:
		if m.activeSubject != nil {
			m.detailPage.SetLoading()
			return m.loadSubjectDetail(m.activeSubject.ID)
		}
	case VettingView:
		if m.vettingPage.InBatchList() {
			return m.loadVettingBatches()
		}
		if m.activeBatch != nil {
			return m.loadVettingQueue(m.activeBatch.JobID, m.activeBatch.SubjectID)
		}
	case BenchmarksView:
		return m.loadBenchmarks()
	}
	return nil
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		m.stopPollers()
		return m, tea.Quit
	}

	if m.status != "" && msg.String() == "esc" && m.viewMode == SubjectsView {
		m.clearStatus()
		return m, nil
	}

	switch m.viewMode {
	case SubjectsView:
		return m.handleSubjectsKey(msg)
	case DetailView:
		return m.handleDetailKey(msg)
	case GenerateView:
		return m.handleGenerateKey(msg)
	case VettingView:
		return m.handleVettingKey(msg)
	case BenchmarksView:
		return m.handleBenchmarksKey(msg)
	case TrainingView:
		return m.handleTrainingKey(msg)
	}
	return m, nil
}

func (m *Model) handleSubjectsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		m.subjectsPage.MoveCursor(1)
	case "k", "up":
		m.subjectsPage.MoveCursor(-1)
	case "enter":
		if s := m.subjectsPage.Selected(); s != nil {
			m.activeSubject = s
			m.viewMode = DetailView
			m.detailPage.SetLoading()
			return m, m.loadSubjectDetail(s.ID)
		}
	case "n":
		m.openSubjectForm()
	case "D":
		if s := m.subjectsPage.Selected(); s != nil {
			id := s.ID
			m.subjectsPage.Remove(id)
			return m, m.deleteSubject(id)
		}
	case "r":
		return m, m.loadSubjects()
	case "v":
		m.viewMode = VettingView
		return m, m.loadVettingBatches()
	case "b":
		m.viewMode = BenchmarksView
		return m, m.loadBenchmarks()
	}
	return m, nil
}

func (m *Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.viewMode = SubjectsView
	case "u":
		m.openUnitForm()
	case "r":
		if m.activeSubject != nil {
			m.detailPage.SetLoading()
			return m, m.loadSubjectDetail(m.activeSubject.ID)
		}
	case "g":
		if m.activeSubject == nil {
			return m, nil
		}
		if len(m.activeRubrics) == 0 {
			m.setError(fmt.Errorf("no rubrics defined, create one first"))
			return m, nil
		}
		m.viewMode = GenerateView
		m.formMode = FormRubricPick
		m.rubricCursor = 0
		m.generatePage = ui.NewGeneratePageModel(m.styles)
		m.generatePage.SetContext(m.activeSubject.Name, "")
		m.generatePage.SetSize(m.width, m.height-3)
	case "t":
		if m.activeSubject == nil {
			return m, nil
		}
		m.viewMode = TrainingView
		m.trainingPage.SetSubject(m.activeSubject.Name)
		return m, tea.Batch(
			m.startTrainingWatch(m.activeSubject.ID),
			m.trainingPage.Tick(),
		)
	case "v":
		m.viewMode = VettingView
		return m, m.loadVettingBatches()
	case "b":
		m.viewMode = BenchmarksView
		return m, m.loadBenchmarks()
	}
	return m, nil
}

func (m *Model) handleGenerateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.stopPollers()
		m.viewMode = DetailView
		if m.activeSubject != nil {
			m.detailPage.SetLoading()
			return m, m.loadSubjectDetail(m.activeSubject.ID)
		}
	case "v":
		if m.generatePage.Done() {
			m.stopPollers()
			m.viewMode = VettingView
			return m, m.loadVettingBatches()
		}
	}
	return m, nil
}

func (m *Model) handleVettingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.vettingPage.InBatchList() {
		switch msg.String() {
		case "esc":
			m.viewMode = SubjectsView
		case "j", "down":
			m.vettingPage.MoveCursor(1)
		case "k", "up":
			m.vettingPage.MoveCursor(-1)
		case "r":
			return m, m.loadVettingBatches()
		case "enter":
			if b := m.vettingPage.SelectedBatch(); b != nil {
				m.activeBatch = b
				return m, m.loadVettingQueue(b.JobID, b.SubjectID)
			}
		}
		return m, nil
	}

	switch msg.String() {
	case "esc":
		return m, m.loadVettingBatches()
	case "s":
		m.vettingPage.Skip()
	case "a":
		if m.vettingPage.Current() != nil {
			m.openApproveForm()
		}
	case "x":
		if m.vettingPage.Current() != nil {
			m.openRejectForm()
		}
	case "e":
		if m.vettingPage.Current() != nil {
			m.openEditForm()
		}
	}
	return m, nil
}

func (m *Model) handleBenchmarksKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.viewMode = SubjectsView
	case "r":
		return m, m.loadBenchmarks()
	case "e":
		return m, m.exportBenchmarks()
	}
	return m, nil
}

func (m *Model) handleTrainingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.stopPollers()
		m.viewMode = DetailView
		if m.activeSubject != nil {
			m.detailPage.SetLoading()
			return m, m.loadSubjectDetail(m.activeSubject.ID)
		}
	case "t":
		status := m.trainingPage.Status()
		if m.activeSubject != nil && status != nil && status.ReadyForTraining && !m.trainingPage.Running() {
			return m, m.startTraining(m.activeSubject.ID)
		}
	}
	return m, nil
}

// =============================================================================
// FORMS
// =============================================================================

func newFormInput(placeholder string, focused bool) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = 200
	in.Width = 40
	if focused {
		in.Focus()
	}
	return in
}

func (m *Model) openSubjectForm() {
	m.formMode = FormNewSubject
	m.formInputs = []textinput.Model{
		newFormInput("Subject name", true),
		newFormInput("Code (e.g. CS301)", false),
	}
	m.formFocus = 0
}

func (m *Model) openUnitForm() {
	m.formMode = FormNewUnit
	m.formInputs = []textinput.Model{
		newFormInput("Unit name", true),
		newFormInput("Unit number", false),
	}
	m.formFocus = 0
}

func (m *Model) openApproveForm() {
	m.formMode = FormApprove
	in := newFormInput("CO ids, comma separated", true)
	in.SetValue(m.defaultCOList())
	m.formInputs = []textinput.Model{in}
	m.formFocus = 0
}

func (m *Model) openRejectForm() {
	m.formMode = FormReject
	m.formInputs = []textinput.Model{
		newFormInput("Rejection reason", true),
	}
	m.formFocus = 0
}

func (m *Model) openEditForm() {
	m.formMode = FormEdit
	area := textarea.New()
	area.SetWidth(m.width - 8)
	area.SetHeight(8)
	if q := m.vettingPage.Current(); q != nil {
		area.SetValue(vetting.ExtractQuestionText(q.Text))
	}
	area.Focus()
	m.formArea = area
}

// defaultCOList prefills the approve form with every course outcome
// loaded alongside the queue. The outcomes travel with the batch so the
// prefill works even when vetting was entered straight from the subject
// list.
func (m *Model) defaultCOList() string {
	if m.vettingPage.Current() == nil {
		return ""
	}
	cos := m.vettingPage.COs()
	ids := make([]string, 0, len(cos))
	for _, co := range cos {
		ids = append(ids, strconv.Itoa(co.ID))
	}
	return strings.Join(ids, ",")
}

func (m *Model) closeForm() {
	m.formMode = FormNone
	m.formInputs = nil
	m.formFocus = 0
}

func (m *Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.formMode == FormRubricPick {
		return m.handleRubricPickKey(msg)
	}
	if m.formMode == FormEdit {
		return m.handleEditFormKey(msg)
	}

	switch msg.String() {
	case "esc":
		m.closeForm()
		return m, nil
	case "tab", "shift+tab":
		m.formFocus = (m.formFocus + 1) % len(m.formInputs)
		for i := range m.formInputs {
			if i == m.formFocus {
				m.formInputs[i].Focus()
			} else {
				m.formInputs[i].Blur()
			}
		}
		return m, nil
	case "enter":
		return m.submitForm()
	}

	var cmd tea.Cmd
	m.formInputs[m.formFocus], cmd = m.formInputs[m.formFocus].Update(msg)
	return m, cmd
}

func (m *Model) handleRubricPickKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeForm()
		m.viewMode = DetailView
	case "j", "down":
		if m.rubricCursor < len(m.activeRubrics)-1 {
			m.rubricCursor++
		}
	case "k", "up":
		if m.rubricCursor > 0 {
			m.rubricCursor--
		}
	case "enter":
		if m.activeSubject == nil || m.rubricCursor >= len(m.activeRubrics) {
			return m, nil
		}
		rubric := m.activeRubrics[m.rubricCursor]
		m.closeForm()
		m.generatePage.SetContext(m.activeSubject.Name, rubric.Name)
		return m, tea.Batch(
			m.startGeneration(rubric.ID, m.activeSubject.ID),
			m.generatePage.Tick(),
		)
	}
	return m, nil
}

func (m *Model) handleEditFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeForm()
		return m, nil
	case "ctrl+d":
		return m.submitEdit()
	}
	var cmd tea.Cmd
	m.formArea, cmd = m.formArea.Update(msg)
	return m, cmd
}

func (m *Model) submitForm() (tea.Model, tea.Cmd) {
	switch m.formMode {
	case FormNewSubject:
		name := strings.TrimSpace(m.formInputs[0].Value())
		code := strings.TrimSpace(m.formInputs[1].Value())
		if err := forms.ValidateSubject(name, code); err != nil {
			m.setError(err)
			return m, nil
		}
		m.closeForm()
		m.placeholderSeq--
		placeholder := api.Subject{ID: m.placeholderSeq, Name: name, Code: code}
		m.subjectsPage.Append(placeholder)
		return m, m.createSubject(placeholder.ID, name, code)

	case FormNewUnit:
		if m.activeSubject == nil {
			m.closeForm()
			return m, nil
		}
		name := strings.TrimSpace(m.formInputs[0].Value())
		number, err := strconv.Atoi(strings.TrimSpace(m.formInputs[1].Value()))
		if err != nil {
			m.setError(fmt.Errorf("unit number must be an integer"))
			return m, nil
		}
		if err := forms.ValidateUnit(name, number); err != nil {
			m.setError(err)
			return m, nil
		}
		m.closeForm()
		return m, m.createUnit(m.activeSubject.ID, name, number)

	case FormApprove:
		q := m.vettingPage.Current()
		if q == nil {
			m.closeForm()
			return m, nil
		}
		ids, err := parseIDList(m.formInputs[0].Value())
		if err != nil {
			m.setError(err)
			return m, nil
		}
		sub := api.VettingSubmission{
			QuestionID: q.ID,
			Action:     api.VettingApproved,
			COMappings: ids,
			ReviewedBy: m.cfg.ReviewedBy,
		}
		if err := forms.ValidateVetting(sub); err != nil {
			m.setError(err)
			return m, nil
		}
		m.closeForm()
		m.vettingPage.Advance()
		return m, m.submitVetting(sub, m.batchSubjectID())

	case FormReject:
		q := m.vettingPage.Current()
		if q == nil {
			m.closeForm()
			return m, nil
		}
		reason := strings.TrimSpace(m.formInputs[0].Value())
		sub := api.VettingSubmission{
			QuestionID:      q.ID,
			Action:          api.VettingRejected,
			RejectionReason: reason,
			ReviewedBy:      m.cfg.ReviewedBy,
		}
		if err := forms.ValidateVetting(sub); err != nil {
			m.setError(err)
			return m, nil
		}
		m.closeForm()
		m.vettingPage.Advance()
		return m, m.submitVetting(sub, m.batchSubjectID())
	}

	m.closeForm()
	return m, nil
}

func (m *Model) submitEdit() (tea.Model, tea.Cmd) {
	q := m.vettingPage.Current()
	if q == nil {
		m.closeForm()
		return m, nil
	}
	text := strings.TrimSpace(m.formArea.Value())
	ids, err := parseIDList(m.defaultCOList())
	if err != nil || len(ids) == 0 {
		// Without known outcomes the edit still needs a mapping.
		ids = nil
	}
	sub := api.VettingSubmission{
		QuestionID: q.ID,
		Action:     api.VettingEdited,
		EditedText: text,
		COMappings: ids,
		ReviewedBy: m.cfg.ReviewedBy,
	}
	if err := forms.ValidateVetting(sub); err != nil {
		m.setError(err)
		return m, nil
	}
	m.closeForm()
	m.vettingPage.Advance()
	return m, m.submitVetting(sub, m.batchSubjectID())
}

// batchSubjectID returns the subject behind the open vetting batch.
func (m *Model) batchSubjectID() int {
	if m.activeBatch != nil {
		return m.activeBatch.SubjectID
	}
	if m.activeSubject != nil {
		return m.activeSubject.ID
	}
	return 0
}

func parseIDList(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	ids := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q", p)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
