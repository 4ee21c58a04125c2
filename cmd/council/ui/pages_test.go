package ui

import (
	"errors"
	"strings"
	"testing"

	"council/internal/api"
)

func TestSubjectsPageCursorAndOptimisticUpdates(t *testing.T) {
	model := NewSubjectsPageModel(DefaultStyles())
	model.SetSize(80, 24)

	model.SetSubjects([]api.Subject{
		{ID: 1, Name: "Operating Systems", Code: "CS301", UnitCount: 5},
		{ID: 2, Name: "Databases", Code: "CS302"},
	})

	view := model.View()
	if !strings.Contains(view, "Operating Systems") {
		t.Fatalf("expected subject list to be rendered")
	}

	model.MoveCursor(1)
	if got := model.Selected(); got == nil || got.ID != 2 {
		t.Fatalf("expected cursor on subject 2, got %+v", got)
	}
	model.MoveCursor(5)
	if got := model.Selected(); got == nil || got.ID != 2 {
		t.Fatalf("cursor should clamp to last row")
	}

	model.Append(api.Subject{ID: 3, Name: "Networks", Code: "CS303"})
	if got := model.Selected(); got == nil || got.ID != 3 {
		t.Fatalf("append should move cursor to new subject")
	}

	model.Remove(3)
	if got := model.Selected(); got == nil || got.ID != 2 {
		t.Fatalf("remove should clamp cursor, got %+v", got)
	}
	if strings.Contains(model.View(), "Networks") {
		t.Fatalf("removed subject still rendered")
	}
}

func TestSubjectsPageEmptyState(t *testing.T) {
	model := NewSubjectsPageModel(DefaultStyles())
	model.SetSize(80, 24)
	model.SetSubjects(nil)

	if !strings.Contains(model.View(), "No subjects yet") {
		t.Fatalf("expected empty state hint")
	}
	if model.Selected() != nil {
		t.Fatalf("Selected should be nil for empty list")
	}
}

func TestDetailPageRendersTree(t *testing.T) {
	model := NewDetailPageModel(DefaultStyles())
	model.SetSize(80, 30)

	detail := &api.SubjectDetail{
		ID:   1,
		Name: "Operating Systems",
		Code: "CS301",
		Units: []api.Unit{
			{
				ID: 10, Name: "Process Management", UnitNumber: 1,
				Topics:    []api.Topic{{ID: 100, Title: "Scheduling", SampleQuestionsCount: 3}},
				MappedCOs: []api.CourseOutcome{{ID: 1, Code: "CO1"}},
			},
		},
		Materials:      []api.Material{{ID: 5, Filename: "notes.pdf", FileType: "pdf", ChunkCount: 42}},
		CourseOutcomes: []api.CourseOutcome{{ID: 1, Code: "CO1", Description: "Explain scheduling", BloomsLevels: []string{"Comprehension"}}},
	}
	rag := &api.RAGStatus{SubjectID: 1, MaterialCount: 1, TotalChunks: 42, Ready: true}
	model.SetDetail(detail, rag, []api.Rubric{{ID: 7, Name: "Midterm", ExamType: "midterm", TotalMarks: 50, Duration: 90}})

	view := model.View()
	for _, want := range []string{"Operating Systems", "Process Management", "Scheduling", "CO1", "notes.pdf", "Midterm"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q", want)
		}
	}
}

func TestGeneratePageProgress(t *testing.T) {
	model := NewGeneratePageModel(DefaultStyles())
	model.SetSize(80, 24)
	model.SetContext("Operating Systems", "Midterm")

	if !strings.Contains(model.View(), "Starting job") {
		t.Fatalf("expected starting state before first snapshot")
	}

	model.SetJob(&api.Job{ID: 9, Status: api.JobRunning, Progress: 40, TotalQuestionsRequested: 20, TotalQuestionsGenerated: 8})
	view := model.View()
	if !strings.Contains(view, "8 / 20") {
		t.Fatalf("expected question counter, got:\n%s", view)
	}
	if model.Done() {
		t.Fatalf("running job should not be done")
	}

	model.SetError(errors.New("connection refused"))
	if !strings.Contains(model.View(), "poll error") {
		t.Fatalf("transient poll errors should be surfaced")
	}

	model.SetJob(&api.Job{ID: 9, Status: api.JobCompleted, Progress: 100, TotalQuestionsRequested: 20, TotalQuestionsGenerated: 20, AvgConfidenceScore: 0.91})
	if !model.Done() {
		t.Fatalf("completed job should be done")
	}
	if !strings.Contains(model.View(), "Generation complete") {
		t.Fatalf("expected completion summary")
	}
}

func TestVettingPageQueueFlow(t *testing.T) {
	model := NewVettingPageModel(DefaultStyles())
	model.SetSize(80, 30)

	model.SetBatches([]api.VettingBatch{
		{JobID: 3, SubjectName: "Operating Systems", RubricName: "Midterm", PendingCount: 2, Progress: 50},
	})
	if !model.InBatchList() {
		t.Fatalf("expected batch list mode")
	}
	if got := model.SelectedBatch(); got == nil || got.JobID != 3 {
		t.Fatalf("expected batch 3 selected")
	}

	stats := &api.DatasetStats{SubjectID: 1, Approved: 4, Rejected: 1, TotalVetted: 5}
	model.SetQueue([]api.Question{
		{ID: 31, Text: "What is a context switch?", QuestionType: "MCQ", Marks: 1},
		{ID: 32, Text: "Define thrashing.", QuestionType: "Short Notes", Marks: 3},
	}, stats, []api.CourseOutcome{{ID: 1, Code: "CO1"}})

	if model.InBatchList() {
		t.Fatalf("expected question mode after SetQueue")
	}
	if got := model.Current(); got == nil || got.ID != 31 {
		t.Fatalf("expected first question current")
	}
	if !strings.Contains(model.View(), "context switch") {
		t.Fatalf("question text not rendered")
	}

	model.Skip()
	if got := model.Current(); got == nil || got.ID != 32 {
		t.Fatalf("skip should move to next question")
	}

	if !model.Advance() {
		t.Fatalf("one question should remain after advance")
	}
	if model.Advance() {
		t.Fatalf("queue should be exhausted")
	}
	if !strings.Contains(model.View(), "Queue empty") {
		t.Fatalf("expected empty queue message")
	}
}

func TestVettingPageWrappedQuestionJSON(t *testing.T) {
	model := NewVettingPageModel(DefaultStyles())
	model.SetSize(80, 30)
	model.SetQueue([]api.Question{
		{ID: 40, Text: `{"selected_question": {"question_text": "Explain paging."}}`, QuestionType: "Essay", Marks: 10},
	}, nil, nil)

	if !strings.Contains(model.View(), "Explain paging.") {
		t.Fatalf("expected wrapped question text to be recovered")
	}
}

func TestTrainingPagePhases(t *testing.T) {
	model := NewTrainingPageModel(DefaultStyles())
	model.SetSize(80, 24)
	model.SetSubject("Operating Systems")

	model.SetStatus(&api.TrainingStatus{Status: api.TrainingUntrained, ReadyForTraining: true})
	if !strings.Contains(model.View(), "Dataset is ready") {
		t.Fatalf("expected training hint when dataset ready")
	}
	if model.Running() {
		t.Fatalf("untrained is not a running state")
	}

	model.SetStatus(&api.TrainingStatus{Status: api.TrainingEvaluatingSkill, Progress: 80})
	if !model.Running() {
		t.Fatalf("evaluating_skill should be running")
	}

	model.SetStatus(&api.TrainingStatus{
		Status: api.TrainingComplete, BaselineScore: 55, TrainedScore: 72.5,
		ImprovementPct: 17.5, IsActive: true, Version: 2,
	})
	view := model.View()
	if !strings.Contains(view, "72.5") || !strings.Contains(view, "+17.5%") {
		t.Fatalf("expected score summary, got:\n%s", view)
	}
}

func TestBenchmarksPageSummary(t *testing.T) {
	model := NewBenchmarksPageModel(DefaultStyles())
	model.SetSize(80, 30)

	model.SetSummary(&api.BenchmarkSummary{
		OverallStats: api.OverallStats{TotalJobs: 3, TotalQuestions: 60, AvgConfidence: 0.88},
		PhaseTimings: map[string]float64{"draft": 4.2, "review": 2.1},
		CouncilEffectiveness: api.CouncilEffectiveness{
			AgentASelected: 20, AgentCSelected: 30, CombinedSelected: 10, Approved: 40, Rejected: 5, Pending: 15,
		},
		QuestionTypeStats: []api.QuestionTypeStats{{Type: "MCQ", Count: 40, AvgConfidence: 0.9, AvgTime: 5.5}},
	})

	view := model.View()
	for _, want := range []string{"draft", "review", "MCQ", "Agent A selected: 20"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q", want)
		}
	}
}
