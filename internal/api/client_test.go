package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIError_IncludesStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail": "Subject not found"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.GetSubject(context.Background(), 99)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Subject not found", apiErr.Detail)
	assert.Contains(t, err.Error(), "404")
	assert.Contains(t, err.Error(), "Subject not found")
}

func TestExtractDetail(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "detail string",
			body: `{"detail": "Rubric not found"}`,
			want: "Rubric not found",
		},
		{
			name: "message fallback",
			body: `{"message": "Internal Server Error", "detail": ""}`,
			want: "Internal Server Error",
		},
		{
			name: "global handler shape",
			body: `{"message": "Internal Server Error", "detail": "division by zero"}`,
			want: "division by zero",
		},
		{
			name: "structured validation detail",
			body: `{"detail": [{"loc": ["body", "name"], "msg": "field required"}]}`,
			want: `[{"loc": ["body", "name"], "msg": "field required"}]`,
		},
		{
			name: "non-json body",
			body: "Bad Gateway\n",
			want: "Bad Gateway",
		},
		{
			name: "empty body",
			body: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractDetail([]byte(tt.body))
			if got != tt.want {
				t.Errorf("extractDetail(%q) = %q, want %q", tt.body, got, tt.want)
			}
		})
	}
}

func TestClient_RequestHeaders(t *testing.T) {
	var gotRequestID, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRequestID = r.Header.Get("X-Request-ID")
		gotAccept = r.Header.Get("Accept")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.ListSubjects(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, gotRequestID, "every request carries an X-Request-ID")
	assert.Equal(t, "application/json", gotAccept)
}

func TestClient_TypedDecoding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/subjects/":
			w.Write([]byte(`[{"id": 1, "name": "Operating Systems", "code": "CS301",
				"created_at": "2026-08-01 10:00:00", "unit_count": 4, "topic_count": 12, "material_count": 3}]`))
		case "/api/generate/job/7":
			w.Write([]byte(`{"id": 7, "rubric_id": 2, "subject_id": 1, "status": "running",
				"progress": 40, "total_questions_requested": 10, "total_questions_generated": 4,
				"total_time_seconds": 0, "avg_time_per_question": 0, "avg_confidence_score": 0,
				"created_at": "2026-08-01 10:00:00"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := New(srv.URL)

	subjects, err := c.ListSubjects(context.Background())
	require.NoError(t, err)
	require.Len(t, subjects, 1)
	assert.Equal(t, "CS301", subjects[0].Code)
	assert.Equal(t, 12, subjects[0].TopicCount)

	job, err := c.GetJob(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, JobRunning, job.Status)
	assert.Equal(t, 40, job.Progress)
	assert.False(t, job.Terminal())
}

func TestJob_Terminal(t *testing.T) {
	for _, status := range []string{JobCompleted, JobFailed} {
		if !(Job{Status: status}).Terminal() {
			t.Errorf("status %q should be terminal", status)
		}
	}
	for _, status := range []string{JobPending, JobRunning} {
		if (Job{Status: status}).Terminal() {
			t.Errorf("status %q should not be terminal", status)
		}
	}
}

func TestClient_VettingQueueFilter(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.GetVettingQueue(context.Background(), VettingQueueFilter{
		Status: "pending",
		JobID:  3,
		Limit:  25,
	})
	require.NoError(t, err)

	assert.Contains(t, gotQuery, "status=pending")
	assert.Contains(t, gotQuery, "job_id=3")
	assert.Contains(t, gotQuery, "limit=25")
}

func TestClient_UploadMaterial(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("process scheduling basics"), 0o644))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "2", r.FormValue("unit_id"))
		assert.Empty(t, r.FormValue("topic_id"), "zero topic id must be omitted")

		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		assert.Equal(t, "notes.txt", hdr.Filename)

		json.NewEncoder(w).Encode(UploadResult{ID: 11, Filename: "notes.txt", ChunkCount: 1, FileType: "txt"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	res, err := c.UploadMaterial(context.Background(), 1, path, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, 11, res.ID)
	assert.Equal(t, 1, res.ChunkCount)
}

func TestClient_ContextCancellation(t *testing.T) {
	started := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}))
	defer srv.Close()

	c := New(srv.URL)
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	_, err := c.ListSubjects(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClient_SetBaseURL(t *testing.T) {
	c := New("http://10.0.0.5:8000/")
	if c.BaseURL() != "http://10.0.0.5:8000" {
		t.Errorf("trailing slash should be trimmed, got %q", c.BaseURL())
	}
	c.SetBaseURL("http://10.0.0.9:8000")
	if c.BaseURL() != "http://10.0.0.9:8000" {
		t.Errorf("SetBaseURL did not repoint the client, got %q", c.BaseURL())
	}
}

func TestClient_EmptyResponseBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL)
	// DELETE decodes into nil; an empty 200 body must not error.
	if err := c.DeleteRubric(context.Background(), 5); err != nil {
		t.Fatalf("DeleteRubric with empty body: %v", err)
	}
}

func TestQueryString(t *testing.T) {
	if q := queryString(map[string]string{}); q != "" {
		t.Errorf("empty params should yield empty string, got %q", q)
	}
	q := queryString(map[string]string{"status": "pending", "job_id": ""})
	if q != "?status=pending" {
		t.Errorf("empty values should be dropped, got %q", q)
	}
	if !strings.HasPrefix(q, "?") {
		t.Errorf("query string should start with ?, got %q", q)
	}
}
