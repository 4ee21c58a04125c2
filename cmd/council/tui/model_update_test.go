package tui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"council/internal/api"
	"council/internal/config"
)

func key(s string) tea.KeyMsg {
	if len(s) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func newTestModel(t *testing.T, handler http.Handler) *Model {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := api.New(srv.URL)
	m := New(client, config.DefaultConfig(), zap.NewNop())
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m
}

func TestModelSubjectNavigation(t *testing.T) {
	detail := api.SubjectDetail{ID: 2, Name: "Databases", Code: "CS302"}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/subjects/2", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(detail)
	})
	mux.HandleFunc("/api/subjects/2/rag-status", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(api.RAGStatus{SubjectID: 2, Ready: true})
	})
	mux.HandleFunc("/api/rubrics/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]api.Rubric{})
	})
	m := newTestModel(t, mux)

	m.Update(subjectsLoadedMsg{
		{ID: 1, Name: "Operating Systems", Code: "CS301"},
		{ID: 2, Name: "Databases", Code: "CS302"},
	})
	require.Equal(t, SubjectsView, m.viewMode)

	m.Update(key("j"))
	_, cmd := m.Update(key("enter"))
	require.Equal(t, DetailView, m.viewMode)
	require.NotNil(t, cmd)
	require.NotNil(t, m.activeSubject)
	assert.Equal(t, 2, m.activeSubject.ID)

	msg := cmd()
	detailMsg, ok := msg.(subjectDetailMsg)
	require.True(t, ok, "expected subjectDetailMsg, got %T", msg)
	m.Update(detailMsg)
	assert.Contains(t, m.View(), "Databases")

	m.Update(key("esc"))
	assert.Equal(t, SubjectsView, m.viewMode)
}

func TestModelCreateSubjectOptimistic(t *testing.T) {
	created := api.Subject{ID: 7, Name: "Networks", Code: "CS303"}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/subjects/", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		json.NewEncoder(w).Encode(created)
	})
	m := newTestModel(t, mux)
	m.Update(subjectsLoadedMsg{})

	m.Update(key("n"))
	require.Equal(t, FormNewSubject, m.formMode)

	m.formInputs[0].SetValue("Networks")
	m.formInputs[1].SetValue("CS303")
	_, cmd := m.Update(key("enter"))
	require.Equal(t, FormNone, m.formMode)
	require.NotNil(t, cmd)

	// Placeholder is visible before the server confirms.
	sel := m.subjectsPage.Selected()
	require.NotNil(t, sel)
	assert.Negative(t, sel.ID)
	assert.Equal(t, "Networks", sel.Name)

	m.Update(cmd())
	sel = m.subjectsPage.Selected()
	require.NotNil(t, sel)
	assert.Equal(t, 7, sel.ID)
}

func TestModelCreateSubjectValidation(t *testing.T) {
	m := newTestModel(t, http.NewServeMux())
	m.Update(subjectsLoadedMsg{})

	m.Update(key("n"))
	m.formInputs[0].SetValue("")
	m.formInputs[1].SetValue("CS303")
	_, cmd := m.Update(key("enter"))

	assert.Nil(t, cmd)
	assert.Equal(t, FormNewSubject, m.formMode, "form should stay open on validation error")
	assert.True(t, m.statusErr)
}

func TestModelDeleteSubjectOptimistic(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/subjects/1", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	})
	m := newTestModel(t, mux)
	m.Update(subjectsLoadedMsg{{ID: 1, Name: "Operating Systems", Code: "CS301"}})

	_, cmd := m.Update(key("D"))
	require.NotNil(t, cmd)
	assert.Nil(t, m.subjectsPage.Selected(), "row should disappear before the server confirms")

	msg := cmd()
	_, ok := msg.(subjectDeletedMsg)
	require.True(t, ok, "expected subjectDeletedMsg, got %T", msg)
}

func TestModelVettingApproveFlow(t *testing.T) {
	var submitted api.VettingSubmission
	mux := http.NewServeMux()
	mux.HandleFunc("/api/vetting/submit", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&submitted))
		json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
	})
	mux.HandleFunc("/api/vetting/dataset/3/stats", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(api.DatasetStats{SubjectID: 3, Approved: 1, TotalVetted: 1})
	})
	m := newTestModel(t, mux)

	m.viewMode = VettingView
	m.activeBatch = &api.VettingBatch{JobID: 9, SubjectID: 3}
	m.Update(vettingQueueMsg{
		queue: []api.Question{{ID: 40, Text: "Define deadlock.", QuestionType: "Short Notes", Marks: 3}},
		cos:   []api.CourseOutcome{{ID: 11, Code: "CO1"}},
	})

	m.Update(key("a"))
	require.Equal(t, FormApprove, m.formMode)
	m.formInputs[0].SetValue("11")

	_, cmd := m.Update(key("enter"))
	require.NotNil(t, cmd)
	assert.Nil(t, m.vettingPage.Current(), "queue should advance optimistically")

	m.Update(cmd())
	assert.Equal(t, 40, submitted.QuestionID)
	assert.Equal(t, api.VettingApproved, submitted.Action)
	assert.Equal(t, []int{11}, submitted.COMappings)
	assert.Equal(t, "Faculty", submitted.ReviewedBy)
}

func TestModelVettingEditMapsQueueOutcomes(t *testing.T) {
	var submitted api.VettingSubmission
	mux := http.NewServeMux()
	mux.HandleFunc("/api/vetting/submit", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&submitted))
		json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
	})
	mux.HandleFunc("/api/vetting/dataset/3/stats", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(api.DatasetStats{SubjectID: 3, Approved: 1, TotalVetted: 1})
	})
	m := newTestModel(t, mux)

	// Straight into vetting without ever opening a subject detail page.
	m.viewMode = VettingView
	m.activeBatch = &api.VettingBatch{JobID: 9, SubjectID: 3}
	m.Update(vettingQueueMsg{
		queue: []api.Question{{ID: 44, Text: "Define livelock.", QuestionType: "Short Notes", Marks: 3}},
		cos:   []api.CourseOutcome{{ID: 11, Code: "CO1"}, {ID: 12, Code: "CO2"}},
	})

	m.Update(key("e"))
	require.Equal(t, FormEdit, m.formMode)
	m.formArea.SetValue("Define livelock and contrast it with deadlock.")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	require.NotNil(t, cmd, "edit should submit with the queue's outcomes mapped")

	m.Update(cmd())
	assert.Equal(t, 44, submitted.QuestionID)
	assert.Equal(t, api.VettingEdited, submitted.Action)
	assert.Equal(t, []int{11, 12}, submitted.COMappings)
	assert.Equal(t, "Define livelock and contrast it with deadlock.", submitted.EditedText)
}

func TestModelVettingApprovePrefill(t *testing.T) {
	m := newTestModel(t, http.NewServeMux())
	m.viewMode = VettingView
	m.Update(vettingQueueMsg{
		queue: []api.Question{{ID: 45, Text: "Q", QuestionType: "MCQ", Marks: 1}},
		cos:   []api.CourseOutcome{{ID: 5, Code: "CO1"}, {ID: 6, Code: "CO2"}, {ID: 7, Code: "CO3"}},
	})

	m.Update(key("a"))
	require.Equal(t, FormApprove, m.formMode)
	assert.Equal(t, "5,6,7", m.formInputs[0].Value())
}

func TestModelVettingRejectRequiresReason(t *testing.T) {
	m := newTestModel(t, http.NewServeMux())
	m.viewMode = VettingView
	m.Update(vettingQueueMsg{
		queue: []api.Question{{ID: 41, Text: "Q", QuestionType: "MCQ", Marks: 1}},
	})

	m.Update(key("x"))
	require.Equal(t, FormReject, m.formMode)
	_, cmd := m.Update(key("enter"))

	assert.Nil(t, cmd)
	assert.Equal(t, FormReject, m.formMode)
	assert.True(t, m.statusErr)
}

func TestModelJobSnapshotLoop(t *testing.T) {
	m := newTestModel(t, http.NewServeMux())
	m.viewMode = GenerateView

	running := &api.Job{ID: 5, Status: api.JobRunning, Progress: 50, TotalQuestionsRequested: 10, TotalQuestionsGenerated: 5}
	m.Update(jobSnapshotMsg{Value: running})
	assert.Contains(t, m.View(), "5 / 10")

	done := &api.Job{ID: 5, Status: api.JobCompleted, Progress: 100, TotalQuestionsRequested: 10, TotalQuestionsGenerated: 10}
	m.Update(jobSnapshotMsg{Value: done})
	assert.True(t, m.generatePage.Done())
	m.Update(jobWatchDoneMsg{})
	assert.Nil(t, m.jobCancel)
}

func TestModelServerChangeRepointsClient(t *testing.T) {
	m := newTestModel(t, http.NewServeMux())
	m.Update(serverChangedMsg{baseURL: "http://10.0.0.5:8000"})
	assert.Equal(t, "http://10.0.0.5:8000", m.client.BaseURL())
	assert.Contains(t, m.status, "10.0.0.5")
}

func TestParseIDList(t *testing.T) {
	ids, err := parseIDList("1, 2,3")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, ids)

	_, err = parseIDList("1,x")
	assert.Error(t, err)

	ids, err = parseIDList("")
	require.NoError(t, err)
	assert.Empty(t, ids)
}
