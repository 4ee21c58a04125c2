package poll

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"council/internal/api"
)

type fakeStatus struct {
	State string
}

func TestWatcher_StopsOnTerminal(t *testing.T) {
	defer goleak.VerifyNone(t)

	var calls atomic.Int32
	states := []string{"pending", "running", "completed"}

	w := NewWatcher(
		func(ctx context.Context) (*fakeStatus, error) {
			i := calls.Add(1) - 1
			if int(i) >= len(states) {
				t.Error("fetch called after terminal state")
				return &fakeStatus{State: "completed"}, nil
			}
			return &fakeStatus{State: states[i]}, nil
		},
		func(s *fakeStatus) bool { return s.State == "completed" },
		5*time.Millisecond,
		nil,
	)

	var seen []string
	for snap := range w.Watch(context.Background()) {
		require.NoError(t, snap.Err)
		seen = append(seen, snap.Value.State)
	}

	assert.Equal(t, []string{"pending", "running", "completed"}, seen)
	assert.Equal(t, int32(3), calls.Load())
}

func TestWatcher_KeepsPollingThroughFetchErrors(t *testing.T) {
	defer goleak.VerifyNone(t)

	var calls atomic.Int32
	w := NewWatcher(
		func(ctx context.Context) (*fakeStatus, error) {
			switch calls.Add(1) {
			case 1:
				return &fakeStatus{State: "running"}, nil
			case 2:
				return nil, fmt.Errorf("connection refused")
			default:
				return &fakeStatus{State: "completed"}, nil
			}
		},
		func(s *fakeStatus) bool { return s.State == "completed" },
		5*time.Millisecond,
		nil,
	)

	var errs, oks int
	for snap := range w.Watch(context.Background()) {
		if snap.Err != nil {
			errs++
		} else {
			oks++
		}
	}

	assert.Equal(t, 1, errs, "the transient error should be reported")
	assert.Equal(t, 2, oks, "polling should continue past the error")
}

func TestWatcher_StopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	w := NewWatcher(
		func(ctx context.Context) (*fakeStatus, error) {
			return &fakeStatus{State: "running"}, nil
		},
		func(s *fakeStatus) bool { return false },
		5*time.Millisecond,
		nil,
	)

	ctx, cancel := context.WithCancel(context.Background())
	ch := w.Watch(ctx)

	// Drain a couple of snapshots, then cancel mid-flight.
	<-ch
	<-ch
	cancel()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, open := <-ch:
			if !open {
				return
			}
		case <-deadline:
			t.Fatal("channel not closed after cancel")
		}
	}
}

func TestWatchJob_TerminalStates(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		job := api.Job{ID: 3, Status: api.JobRunning, Progress: 50}
		if calls.Add(1) >= 2 {
			job.Status = api.JobFailed
			job.ErrorMessage = "Ollama is not running. Start Ollama first."
		}
		json.NewEncoder(w).Encode(job)
	}))
	defer srv.Close()

	client := api.New(srv.URL)

	var last *api.Job
	for snap := range WatchJob(context.Background(), client, 3, nil) {
		require.NoError(t, snap.Err)
		last = snap.Value
	}

	require.NotNil(t, last)
	assert.Equal(t, api.JobFailed, last.Status)
	assert.Contains(t, last.ErrorMessage, "Ollama")
}

func TestWatchTraining_UntrainedIsTerminal(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(api.TrainingStatus{Status: api.TrainingUntrained})
	}))
	defer srv.Close()

	client := api.New(srv.URL)

	var count int
	for snap := range WatchTraining(context.Background(), client, 1, nil) {
		require.NoError(t, snap.Err)
		count++
	}
	assert.Equal(t, 1, count, "untrained means nothing is running; one snapshot and stop")
}
