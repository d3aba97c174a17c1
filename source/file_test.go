package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, ch <-chan Snapshot) Snapshot {
	t.Helper()

	select {
	case snap := <-ch:
		return snap
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for a snapshot")
		return Snapshot{}
	}
}

func TestRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expr.txt")
	require.NoError(t, os.WriteFile(path, []byte("1 + 2"), 0o644))

	snap, err := NewFileSource(nil, path, 0).Read()
	require.NoError(t, err)
	require.Equal(t, "1 + 2", snap.Content)
	require.Equal(t, path, snap.Path)

	_, err = NewFileSource(nil, filepath.Join(t.TempDir(), "missing.txt"), 0).Read()
	require.True(t, errors.Is(err, os.ErrNotExist))
}

func TestWatchEmitsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expr.txt")
	require.NoError(t, os.WriteFile(path, []byte("1"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := make(chan Snapshot, 16)
	done := make(chan error, 1)

	src := NewFileSource(nil, path, 20*time.Millisecond)
	go func() { done <- src.Watch(ctx, out) }()

	require.Equal(t, "1", receive(t, out).Content)

	require.NoError(t, os.WriteFile(path, []byte("2 * 3"), 0o644))

	// Debouncing folds the truncate and write events of WriteFile together,
	// but the last snapshot must always carry the new content.
	deadline := time.After(5 * time.Second)
	for {
		select {
		case snap := <-out:
			if snap.Content == "2 * 3" {
				cancel()
				require.ErrorIs(t, <-done, context.Canceled)
				return
			}
		case <-deadline:
			t.Fatalf("did not observe the rewritten content")
		}
	}
}

func TestWatchMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "typo.txt")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	out := make(chan Snapshot, 1)
	err := NewFileSource(nil, path, 0).Watch(ctx, out)
	require.ErrorIs(t, err, os.ErrNotExist)
	require.NoError(t, ctx.Err(), "Watch must fail before the deadline")
	require.Empty(t, out)
}

func TestWatchFollowsRenameReplace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "expr.txt")
	require.NoError(t, os.WriteFile(path, []byte("1"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := make(chan Snapshot, 16)
	done := make(chan error, 1)

	src := NewFileSource(nil, path, 20*time.Millisecond)
	go func() { done <- src.Watch(ctx, out) }()

	require.Equal(t, "1", receive(t, out).Content)

	// Save the way editors do: write a sibling file and move it over the target.
	tmp := filepath.Join(dir, ".expr.txt.swp")
	require.NoError(t, os.WriteFile(tmp, []byte("4 / 2"), 0o644))
	require.NoError(t, os.Rename(tmp, path))

	deadline := time.After(5 * time.Second)
	for {
		select {
		case snap := <-out:
			if snap.Content == "4 / 2" {
				cancel()
				require.ErrorIs(t, <-done, context.Canceled)
				return
			}
		case err := <-done:
			t.Fatalf("watch stopped early: %v", err)
		case <-deadline:
			t.Fatalf("did not observe the replaced content")
		}
	}
}
