package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		path string
		kind ChangeKind
		ok   bool
	}{
		{"prefabs/character.yaml", ChangeSpec, true},
		{"prefabs/other.YML", ChangeSpec, true},
		{"prefabs/scripts/lamp.tengo", ChangeScript, true},
		{"prefabs/readme.md", 0, false},
	}
	for _, c := range cases {
		kind, ok := classify(c.path)
		assert.Equal(t, c.ok, ok, c.path)
		assert.Equal(t, c.kind, kind, c.path)
	}
}

func TestWatcherReportsSpecWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	path := filepath.Join(dir, "character.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: x\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	select {
	case change := <-w.Events:
		assert.Equal(t, path, change.Path)
		assert.Equal(t, ChangeSpec, change.Kind)
	case err := <-w.Errors:
		t.Fatalf("watcher error: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("no change reported")
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	select {
	case _, ok := <-w.Events:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("events not closed")
	}
}
