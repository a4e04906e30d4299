package policy

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePolicy(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "dependency-policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCacheReloadsOnMtimeChange(t *testing.T) {
	dir := t.TempDir()
	path := writePolicy(t, dir, "deny:\n  - name: lodash\n")

	cache := NewCache(nil)
	doc, err := cache.Get(dir, "dependency-policy.yaml")
	require.NoError(t, err)
	verdict, _ := doc.Check("lodash")
	assert.Equal(t, VerdictDenied, verdict)

	// Rewrite with a bumped mtime so the next Get sees a newer file.
	require.NoError(t, os.WriteFile(path, []byte("deny:\n  - name: moment\n"), 0o644))
	require.NoError(t, os.Chtimes(path, time.Now(), time.Now().Add(2*time.Second)))

	doc, err = cache.Get(dir, "dependency-policy.yaml")
	require.NoError(t, err)
	verdict, _ = doc.Check("lodash")
	assert.Equal(t, VerdictUnlisted, verdict)
	verdict, _ = doc.Check("moment")
	assert.Equal(t, VerdictDenied, verdict)
}

func TestCacheMissingFileDegradesToEmpty(t *testing.T) {
	cache := NewCache(nil)
	doc, err := cache.Get(t.TempDir(), "dependency-policy.yaml")
	assert.Error(t, err)
	require.NotNil(t, doc)
	assert.True(t, doc.Empty())
}

func TestCacheMalformedFileDegradesToEmpty(t *testing.T) {
	dir := t.TempDir()
	writePolicy(t, dir, "allow: [unclosed")

	cache := NewCache(nil)
	doc, err := cache.Get(dir, "dependency-policy.yaml")
	assert.Error(t, err)
	require.NotNil(t, doc)
	assert.True(t, doc.Empty())
}

func TestCacheInvalidateForcesReload(t *testing.T) {
	dir := t.TempDir()
	path := writePolicy(t, dir, "deny:\n  - name: lodash\n")

	cache := NewCache(nil)
	_, err := cache.Get(dir, "dependency-policy.yaml")
	require.NoError(t, err)

	// Preserve the mtime so only Invalidate can make the change visible.
	info, err := os.Stat(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte("deny:\n  - name: moment\n"), 0o644))
	require.NoError(t, os.Chtimes(path, info.ModTime(), info.ModTime()))

	cache.Invalidate(dir)
	doc, err := cache.Get(dir, "dependency-policy.yaml")
	require.NoError(t, err)
	verdict, _ := doc.Check("moment")
	assert.Equal(t, VerdictDenied, verdict)
}
