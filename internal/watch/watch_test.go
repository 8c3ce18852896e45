package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitEvent(t *testing.T, w *Watcher) Event {
	t.Helper()
	select {
	case ev := <-w.Events():
		return ev
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestOpString(t *testing.T) {
	assert.Equal(t, "CREATE|WRITE", (OpCreate | OpWrite).String())
	assert.Equal(t, "UNKNOWN", Op(0).String())
	assert.True(t, (OpWrite | OpRemove).Has(OpRemove))
}

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := New(Options{
		Delay:  20 * time.Millisecond,
		Filter: func(p string) bool { return strings.HasSuffix(p, ".c") },
	})
	require.NoError(t, err)
	defer w.Close()
	require.NoError(t, w.Add(dir))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	path := filepath.Join(dir, "a.c")
	require.NoError(t, os.WriteFile(path, []byte("int x;\n"), 0o644))

	ev := waitEvent(t, w)
	assert.Equal(t, path, ev.Path)
	assert.True(t, ev.Op.Has(OpCreate) || ev.Op.Has(OpWrite))
}

func TestWatcherSubdirectories(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "src")
	require.NoError(t, os.Mkdir(sub, 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))

	w, err := New(Options{Delay: 20 * time.Millisecond})
	require.NoError(t, err)
	defer w.Close()
	require.NoError(t, w.Add(dir))

	path := filepath.Join(sub, "b.c")
	require.NoError(t, os.WriteFile(path, []byte("x;\n"), 0o644))
	assert.Equal(t, path, waitEvent(t, w).Path)
}

func TestWatcherCoalesces(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "c.c")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	w, err := New(Options{Delay: time.Hour})
	require.NoError(t, err)
	defer w.Close()
	require.NoError(t, w.Add(dir))

	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("x", i+1)), 0o644))
	}
	require.Eventually(t, func() bool {
		w.mu.Lock()
		defer w.mu.Unlock()
		return len(w.pending) == 1
	}, 5*time.Second, 10*time.Millisecond)

	w.Flush()
	ev := waitEvent(t, w)
	assert.Equal(t, path, ev.Path)
	assert.True(t, ev.Op.Has(OpWrite))
	select {
	case extra := <-w.Events():
		t.Fatalf("unexpected second event %+v", extra)
	default:
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	w, err := New(Options{Delay: 10 * time.Millisecond})
	require.NoError(t, err)
	defer w.Close()
	require.NoError(t, w.Add(dir))

	ctx, cancel := context.WithCancel(context.Background())
	got := make(chan string, 1)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(ev Event) error {
			got <- ev.Path
			cancel()
			return nil
		}, nil)
	}()

	path := filepath.Join(dir, "d.c")
	require.NoError(t, os.WriteFile(path, []byte("y;\n"), 0o644))
	select {
	case p := <-got:
		assert.Equal(t, path, p)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for Run callback")
	}
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestClose(t *testing.T) {
	w, err := New(Options{})
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	err = w.Add(t.TempDir())
	assert.True(t, errors.Is(err, ErrWatcherClosed))

	_, ok := <-w.Events()
	assert.False(t, ok)
}

func TestAddMissing(t *testing.T) {
	w, err := New(Options{})
	require.NoError(t, err)
	defer w.Close()
	assert.ErrorIs(t, w.Add(filepath.Join(t.TempDir(), "nope")), ErrPathNotExist)
}
