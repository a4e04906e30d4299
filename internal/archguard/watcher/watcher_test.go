package watcher

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archguard/archguard/internal/archguard/policy"
)

func TestPolicyChangeInvalidatesCache(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dependency-policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte("deny:\n  - name: lodash\n"), 0o644))

	cache := policy.NewCache(nil)
	doc, err := cache.Get(dir, "dependency-policy.yaml")
	require.NoError(t, err)
	verdict, _ := doc.Check("lodash")
	require.Equal(t, policy.VerdictDenied, verdict)

	w, err := NewWatcher(dir, "dependency-policy.yaml", cache, nil)
	require.NoError(t, err)
	defer w.Close()

	// Rewrite the policy keeping the mtime, so only the invalidation from the
	// change event can make the new content visible.
	info, err := os.Stat(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte("deny:\n  - name: moment\n"), 0o644))
	require.NoError(t, os.Chtimes(path, info.ModTime(), info.ModTime()))

	w.handleEvent(fsnotify.Event{Name: path, Op: fsnotify.Write})

	doc, err = cache.Get(dir, "dependency-policy.yaml")
	require.NoError(t, err)
	verdict, _ = doc.Check("moment")
	assert.Equal(t, policy.VerdictDenied, verdict)
}

func TestUnrelatedEventsIgnored(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dependency-policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte("deny:\n  - name: lodash\n"), 0o644))

	cache := policy.NewCache(nil)
	_, err := cache.Get(dir, "dependency-policy.yaml")
	require.NoError(t, err)

	w, err := NewWatcher(dir, "dependency-policy.yaml", cache, nil)
	require.NoError(t, err)
	defer w.Close()

	// Same-directory noise for a different file keeps the cache entry intact.
	info, err := os.Stat(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte("deny:\n  - name: moment\n"), 0o644))
	require.NoError(t, os.Chtimes(path, info.ModTime(), info.ModTime()))

	w.handleEvent(fsnotify.Event{Name: filepath.Join(dir, "README.md"), Op: fsnotify.Write})

	doc, err := cache.Get(dir, "dependency-policy.yaml")
	require.NoError(t, err)
	verdict, _ := doc.Check("lodash")
	assert.Equal(t, policy.VerdictDenied, verdict)
}
