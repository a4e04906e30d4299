package policy

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"
)

// Cache holds parsed policy documents keyed by resolved project root. Each
// entry remembers the policy file's mtime; a changed mtime reloads on the
// next Get, so invalidation is observable rather than implicit global state.
// Concurrent requests see a consistent snapshot behind a read-mostly lock.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*cached
	logger  hclog.Logger
}

type cached struct {
	doc   *Document
	mtime time.Time
}

func NewCache(logger hclog.Logger) *Cache {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Cache{
		entries: make(map[string]*cached),
		logger:  logger.Named("policy"),
	}
}

// Get returns the policy for root/fileName, reloading when the file changed
// since the cached parse. A missing or malformed document degrades to the
// empty policy; the returned error reports the degradation so the caller can
// surface a warning without blocking unrelated rule categories.
func (c *Cache) Get(root, fileName string) (*Document, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return &Document{}, err
	}
	path := filepath.Join(absRoot, fileName)

	info, statErr := os.Stat(path)
	if statErr != nil {
		c.mu.Lock()
		delete(c.entries, absRoot)
		c.mu.Unlock()
		return &Document{}, statErr
	}

	c.mu.RLock()
	entry, ok := c.entries[absRoot]
	c.mu.RUnlock()
	if ok && entry.mtime.Equal(info.ModTime()) {
		return entry.doc, nil
	}

	doc, err := LoadFile(path)
	if err != nil {
		c.logger.Warn("policy load failed, treating as empty policy", "path", path, "error", err)
		return &Document{}, err
	}

	c.mu.Lock()
	c.entries[absRoot] = &cached{doc: doc, mtime: info.ModTime()}
	c.mu.Unlock()

	c.logger.Debug("policy loaded", "path", path, "allow", len(doc.Allow), "deny", len(doc.Deny))
	return doc, nil
}

// Invalidate drops the cached policy for a project root. The watcher calls
// this on policy-file change events.
func (c *Cache) Invalidate(root string) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return
	}
	c.mu.Lock()
	delete(c.entries, absRoot)
	c.mu.Unlock()
	c.logger.Debug("policy cache invalidated", "root", absRoot)
}
