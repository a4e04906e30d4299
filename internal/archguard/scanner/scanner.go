package scanner

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// Options controls a single scan.
type Options struct {
	Extensions     []string // Allow-set of file extensions (with leading dot).
	ExcludedDirs   []string // Directory names skipped entirely, checked at directory level.
	MaxDepth       int      // Recursion bound; descent stops silently at this depth.
	FollowSymlinks bool     // Off by default: symlinked directories are not entered.
}

// Scanner walks a directory tree and returns candidate file paths.
type Scanner struct {
	opts   Options
	logger hclog.Logger
}

func New(opts Options, logger hclog.Logger) *Scanner {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = 12
	}
	return &Scanner{opts: opts, logger: logger.Named("scanner")}
}

// Scan returns the absolute paths of all files under root whose extension is
// in the allow-set. Ordering is filesystem traversal order; callers needing
// determinism must sort. Per-directory read errors are logged and that branch
// skipped; they never abort the scan.
func (s *Scanner) Scan(root string) ([]string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(absRoot); err != nil {
		return nil, err
	}

	var files []string
	s.walk(absRoot, 0, &files)
	return files, nil
}

func (s *Scanner) walk(dir string, depth int, files *[]string) {
	if depth > s.opts.MaxDepth {
		return
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		s.logger.Warn("skipping unreadable directory", "dir", dir, "error", err)
		return
	}

	for _, entry := range entries {
		name := entry.Name()
		full := filepath.Join(dir, name)

		if entry.IsDir() {
			if s.excluded(name) {
				continue
			}
			s.walk(full, depth+1, files)
			continue
		}

		if entry.Type()&os.ModeSymlink != 0 {
			if !s.opts.FollowSymlinks {
				continue
			}
			info, err := os.Stat(full)
			if err != nil {
				s.logger.Warn("skipping broken symlink", "path", full, "error", err)
				continue
			}
			if info.IsDir() {
				if !s.excluded(name) {
					s.walk(full, depth+1, files)
				}
				continue
			}
		}

		if s.allowedExt(name) {
			*files = append(*files, full)
		}
	}
}

func (s *Scanner) excluded(dirName string) bool {
	if strings.HasPrefix(dirName, ".") {
		return true
	}
	for _, excl := range s.opts.ExcludedDirs {
		if dirName == excl {
			return true
		}
	}
	return false
}

func (s *Scanner) allowedExt(name string) bool {
	ext := filepath.Ext(name)
	for _, e := range s.opts.Extensions {
		if ext == e {
			return true
		}
	}
	return false
}
