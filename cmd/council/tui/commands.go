package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"council/internal/api"
	"council/internal/poll"
)

// apiCtx returns a context for one-shot API calls.
func (m *Model) apiCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), m.cfg.RequestTimeout())
}

func (m *Model) loadSubjects() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := m.apiCtx()
		defer cancel()
		subjects, err := client.ListSubjects(ctx)
		if err != nil {
			return errMsg{err}
		}
		return subjectsLoadedMsg(subjects)
	}
}

// loadSubjectDetail fetches the detail screen's three payloads in
// parallel. A missing RAG index is not an error, the screen just
// omits the banner.
func (m *Model) loadSubjectDetail(subjectID int) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := m.apiCtx()
		defer cancel()

		var (
			detail  *api.SubjectDetail
			rag     *api.RAGStatus
			rubrics []api.Rubric
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			detail, err = client.GetSubject(gctx, subjectID)
			return err
		})
		g.Go(func() error {
			rag, _ = client.GetRAGStatus(gctx, subjectID)
			return nil
		})
		g.Go(func() error {
			var err error
			rubrics, err = client.ListRubrics(gctx)
			return err
		})
		if err := g.Wait(); err != nil {
			return errMsg{err}
		}
		return subjectDetailMsg{detail: detail, rag: rag, rubrics: rubrics}
	}
}

func (m *Model) createSubject(placeholderID int, name, code string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := m.apiCtx()
		defer cancel()
		subject, err := client.CreateSubject(ctx, api.SubjectCreate{Name: name, Code: code})
		if err != nil {
			return errMsg{err}
		}
		return subjectCreatedMsg{placeholderID: placeholderID, subject: subject}
	}
}

func (m *Model) deleteSubject(subjectID int) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := m.apiCtx()
		defer cancel()
		if err := client.DeleteSubject(ctx, subjectID); err != nil {
			return errMsg{err}
		}
		return subjectDeletedMsg{subjectID: subjectID}
	}
}

func (m *Model) createUnit(subjectID int, name string, number int) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := m.apiCtx()
		defer cancel()
		unit, err := client.CreateUnit(ctx, subjectID, api.UnitCreate{Name: name, UnitNumber: number})
		if err != nil {
			return errMsg{err}
		}
		return unitCreatedMsg{unit: unit}
	}
}

func (m *Model) startGeneration(rubricID, subjectID int) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := m.apiCtx()
		defer cancel()
		accepted, err := client.StartGeneration(ctx, rubricID, subjectID)
		if err != nil {
			return errMsg{err}
		}
		return generationStartedMsg{accepted: accepted}
	}
}

// startJobWatch launches the job poller and returns the command that
// waits for its first snapshot.
func (m *Model) startJobWatch(jobID int) tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	m.jobCancel = cancel
	m.jobCh = poll.WatchJob(ctx, m.client, jobID, m.logger)
	return waitJob(m.jobCh)
}

func waitJob(ch <-chan poll.Snapshot[api.Job]) tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-ch
		if !ok {
			return jobWatchDoneMsg{}
		}
		return jobSnapshotMsg(snap)
	}
}

func (m *Model) startTrainingWatch(subjectID int) tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	m.trainCancel = cancel
	m.trainCh = poll.WatchTraining(ctx, m.client, subjectID, m.logger)
	return waitTraining(m.trainCh)
}

func waitTraining(ch <-chan poll.Snapshot[api.TrainingStatus]) tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-ch
		if !ok {
			return trainingWatchDoneMsg{}
		}
		return trainingSnapshotMsg(snap)
	}
}

func (m *Model) startTraining(subjectID int) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := m.apiCtx()
		defer cancel()
		accepted, err := client.StartTraining(ctx, subjectID)
		if err != nil {
			return errMsg{err}
		}
		return trainingStartedMsg{accepted: accepted}
	}
}

func (m *Model) loadVettingBatches() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := m.apiCtx()
		defer cancel()
		batches, err := client.ListVettingBatches(ctx)
		if err != nil {
			return errMsg{err}
		}
		return vettingBatchesMsg(batches)
	}
}

// loadVettingQueue fetches the pending questions for a batch plus the
// stats and course outcomes needed to vet them.
func (m *Model) loadVettingQueue(jobID, subjectID int) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := m.apiCtx()
		defer cancel()

		var (
			queue []api.Question
			stats *api.DatasetStats
			cos   []api.CourseOutcome
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			queue, err = client.GetVettingQueue(gctx, api.VettingQueueFilter{JobID: jobID, Status: "pending"})
			return err
		})
		g.Go(func() error {
			stats, _ = client.GetDatasetStats(gctx, subjectID)
			return nil
		})
		g.Go(func() error {
			var err error
			cos, err = client.ListCourseOutcomes(gctx, subjectID)
			return err
		})
		if err := g.Wait(); err != nil {
			return errMsg{err}
		}
		return vettingQueueMsg{queue: queue, stats: stats, cos: cos}
	}
}

func (m *Model) submitVetting(sub api.VettingSubmission, subjectID int) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := m.apiCtx()
		defer cancel()
		if err := client.SubmitVetting(ctx, sub); err != nil {
			return errMsg{err}
		}
		stats, _ := client.GetDatasetStats(ctx, subjectID)
		return vettingSubmittedMsg{questionID: sub.QuestionID, stats: stats}
	}
}

func (m *Model) loadBenchmarks() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := m.apiCtx()
		defer cancel()
		summary, err := client.GetBenchmarks(ctx)
		if err != nil {
			return errMsg{err}
		}
		return benchmarksMsg{summary: summary}
	}
}

// exportBenchmarks writes the raw export payload to a timestamped file
// in the working directory.
func (m *Model) exportBenchmarks() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := m.apiCtx()
		defer cancel()
		raw, err := client.ExportBenchmarks(ctx)
		if err != nil {
			return errMsg{err}
		}
		var pretty []byte
		if pretty, err = json.MarshalIndent(json.RawMessage(raw), "", "  "); err != nil {
			pretty = raw
		}
		path := fmt.Sprintf("benchmarks-%s.json", time.Now().Format("20060102-150405"))
		if err := os.WriteFile(path, pretty, 0o644); err != nil {
			return errMsg{fmt.Errorf("failed to write export: %w", err)}
		}
		return benchmarksExportedMsg{path: path}
	}
}

// waitServerChange blocks on the discovery watcher channel.
func waitServerChange(ch <-chan string) tea.Cmd {
	return func() tea.Msg {
		baseURL, ok := <-ch
		if !ok {
			return nil
		}
		return serverChangedMsg{baseURL: baseURL}
	}
}
