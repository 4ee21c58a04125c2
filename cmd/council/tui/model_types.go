// Package tui provides the interactive dashboard for the council
// question pipeline. The implementation is split across files:
//   - model_types.go: ViewMode, form state, message types (this file)
//   - model.go: Model struct, constructor, Init
//   - model_update.go: Update loop and key handling
//   - commands.go: tea.Cmd wrappers over the API client and pollers
//   - view.go: Rendering functions
package tui

import (
	"council/internal/api"
	"council/internal/poll"
)

// ViewMode determines which screen is active.
type ViewMode int

const (
	SubjectsView ViewMode = iota
	DetailView
	GenerateView
	VettingView
	BenchmarksView
	TrainingView
)

func (v ViewMode) String() string {
	switch v {
	case SubjectsView:
		return "Subjects"
	case DetailView:
		return "Subject"
	case GenerateView:
		return "Generate"
	case VettingView:
		return "Vetting"
	case BenchmarksView:
		return "Benchmarks"
	case TrainingView:
		return "Training"
	default:
		return "Unknown"
	}
}

// FormMode represents the active inline form, if any. Keys are routed
// to the form inputs while one is open.
type FormMode int

const (
	FormNone FormMode = iota
	FormNewSubject
	FormNewUnit
	FormRubricPick
	FormApprove
	FormReject
	FormEdit
)

// =============================================================================
// MESSAGES
// =============================================================================

// subjectsLoadedMsg carries the refreshed subject list.
type subjectsLoadedMsg []api.Subject

// subjectDetailMsg carries everything the detail screen shows, fetched
// in parallel.
type subjectDetailMsg struct {
	detail  *api.SubjectDetail
	rag     *api.RAGStatus
	rubrics []api.Rubric
}

// subjectCreatedMsg confirms a create; the list was already updated
// optimistically with a placeholder.
type subjectCreatedMsg struct {
	placeholderID int
	subject       *api.Subject
}

type subjectDeletedMsg struct{ subjectID int }

type unitCreatedMsg struct{ unit *api.Unit }

type generationStartedMsg struct{ accepted *api.GenerateAccepted }

// jobSnapshotMsg is one tick from the generation job poller.
type jobSnapshotMsg poll.Snapshot[api.Job]

// jobWatchDoneMsg signals the job poller channel closed.
type jobWatchDoneMsg struct{}

// trainingSnapshotMsg is one tick from the training poller.
type trainingSnapshotMsg poll.Snapshot[api.TrainingStatus]

type trainingWatchDoneMsg struct{}

type trainingStartedMsg struct{ accepted *api.TrainingAccepted }

type vettingBatchesMsg []api.VettingBatch

type vettingQueueMsg struct {
	queue []api.Question
	stats *api.DatasetStats
	cos   []api.CourseOutcome
}

// vettingSubmittedMsg confirms a verdict; the queue already advanced
// optimistically.
type vettingSubmittedMsg struct {
	questionID int
	stats      *api.DatasetStats
}

type benchmarksMsg struct{ summary *api.BenchmarkSummary }

type benchmarksExportedMsg struct{ path string }

// serverChangedMsg arrives when the dev-server metadata file points the
// client at a new base URL.
type serverChangedMsg struct{ baseURL string }

// errMsg is a failed API call. The dashboard shows it in the status
// line without leaving the current screen.
type errMsg struct{ err error }

// statusMsg is a transient informational notice.
type statusMsg string
