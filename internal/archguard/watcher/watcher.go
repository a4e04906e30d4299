package watcher

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/hashicorp/go-hclog"

	"github.com/archguard/archguard/internal/archguard/policy"
)

// Watcher monitors the dependency-policy file and invalidates the policy
// cache when it changes, so a long-lived server never serves decisions from
// a stale policy. It watches the containing directory rather than the file
// itself: editors replace files on save, which would drop a file-level watch.
type Watcher struct {
	watcher    *fsnotify.Watcher
	cache      *policy.Cache
	root       string
	policyPath string
	logger     hclog.Logger
}

// NewWatcher initializes a Watcher for the policy file at root/policyFile.
func NewWatcher(root, policyFile string, cache *policy.Cache, logger hclog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	policyPath := filepath.Join(absRoot, policyFile)
	if err := fw.Add(filepath.Dir(policyPath)); err != nil {
		fw.Close()
		return nil, err
	}

	return &Watcher{
		watcher:    fw,
		cache:      cache,
		root:       absRoot,
		policyPath: policyPath,
		logger:     logger.Named("watcher"),
	}, nil
}

// Start begins the event loop in its own goroutine.
func (w *Watcher) Start() {
	go func() {
		for {
			select {
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				w.handleEvent(event)
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				w.logger.Error("watch error", "error", err)
			}
		}
	}()
}

// Close stops the watcher and releases resources.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.policyPath {
		return
	}
	if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		w.logger.Info("policy file changed, invalidating cache", "path", w.policyPath, "op", event.Op.String())
		w.cache.Invalidate(w.root)
	}
}
