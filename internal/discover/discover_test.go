package discover

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMetadata_BaseURL(t *testing.T) {
	tests := []struct {
		name    string
		meta    Metadata
		want    string
		wantErr bool
	}{
		{
			name: "host and port",
			meta: Metadata{Host: "192.168.1.20", Port: 8000},
			want: "http://192.168.1.20:8000",
		},
		{
			name: "default port",
			meta: Metadata{Host: "10.0.0.5"},
			want: "http://10.0.0.5:8000",
		},
		{
			name: "https scheme",
			meta: Metadata{Host: "council.local", Port: 443, Scheme: "https"},
			want: "https://council.local:443",
		},
		{
			name:    "missing host",
			meta:    Metadata{Port: 8000},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.meta.BaseURL()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_Precedence(t *testing.T) {
	dir := t.TempDir()
	metaPath := filepath.Join(dir, "server.json")
	require.NoError(t, os.WriteFile(metaPath, []byte(`{"host": "192.168.1.30", "port": 8000}`), 0o644))

	t.Setenv("COUNCIL_SERVER", "")

	url, source := Resolve("http://explicit:9000/", metaPath, "http://fallback:8000")
	assert.Equal(t, "http://explicit:9000", url)
	assert.Equal(t, "flag", source)

	t.Setenv("COUNCIL_SERVER", "http://fromenv:8000")
	url, source = Resolve("", metaPath, "http://fallback:8000")
	assert.Equal(t, "http://fromenv:8000", url)
	assert.Equal(t, "env", source)

	t.Setenv("COUNCIL_SERVER", "")
	url, source = Resolve("", metaPath, "http://fallback:8000")
	assert.Equal(t, "http://192.168.1.30:8000", url)
	assert.Equal(t, "metadata", source)

	url, source = Resolve("", filepath.Join(dir, "missing.json"), "http://fallback:8000")
	assert.Equal(t, "http://fallback:8000", url)
	assert.Equal(t, "config", source)
}

func TestWatcher_PublishesOnChange(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	metaPath := filepath.Join(dir, "server.json")
	require.NoError(t, os.WriteFile(metaPath, []byte(`{"host": "10.0.0.1", "port": 8000}`), 0o644))

	w, err := NewWatcher(metaPath, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, w.Start(ctx))

	// The dev server moves hosts.
	require.NoError(t, os.WriteFile(metaPath, []byte(`{"host": "10.0.0.2", "port": 8000}`), 0o644))

	select {
	case url := <-w.Updates():
		assert.Equal(t, "http://10.0.0.2:8000", url)
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for watcher update")
	}

	cancel()
	w.Wait()
}

func TestWatcher_StopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	metaPath := filepath.Join(dir, "server.json")

	w, err := NewWatcher(metaPath, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, w.Start(ctx))
	cancel()
	w.Wait()

	_, open := <-w.Updates()
	assert.False(t, open, "updates channel should be closed after stop")
}

func TestWatcher_IgnoresUnrelatedFiles(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	metaPath := filepath.Join(dir, "server.json")

	w, err := NewWatcher(metaPath, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte(`{"host": "x"}`), 0o644))

	select {
	case url := <-w.Updates():
		t.Fatalf("unexpected update for unrelated file: %q", url)
	case <-time.After(500 * time.Millisecond):
	}

	cancel()
	w.Wait()
}
