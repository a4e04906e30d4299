package analyzer

import (
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/archguard/archguard/internal/archguard/domain"
)

// Analyzer extracts FileFacts from a single source file. Where a tree-sitter
// grammar is available it walks the syntax tree; for checks that are textual
// by nature (leading directives, awaited-fetch sequences) and for files that
// fail to parse, it falls back to word-boundary-safe regex heuristics.
type Analyzer struct {
	logger hclog.Logger
}

func New(logger hclog.Logger) *Analyzer {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Analyzer{logger: logger.Named("analyzer")}
}

// Analyze builds FileFacts for one file. It never fails: a file whose syntax
// tree has errors degrades to heuristic-only facts (Parsed=false), because
// the tool is advisory, not a compiler gate.
func (a *Analyzer) Analyze(path string, content []byte) *domain.FileFacts {
	ext := filepath.Ext(path)
	facts := &domain.FileFacts{
		Path:              path,
		Extension:         ext,
		LineCount:         countLines(content),
		UsedHooks:         map[string]bool{},
		UsedBrowserAPIs:   map[string]bool{},
		EventHandlerNames: map[string]bool{},
	}

	facts.HasClientDirective, facts.HasServerDirective = leadingDirectives(content)

	if ok := a.extractFromTree(facts, content); ok {
		facts.Parsed = true
	} else {
		a.logger.Debug("falling back to heuristic facts", "path", path)
		extractHeuristic(facts, content)
	}

	// Awaited-fetch sequencing and combinator usage are matched textually
	// regardless of parse outcome.
	text := string(content)
	facts.AwaitedFetches = len(awaitedFetchRe.FindAllStringIndex(text, -1))
	facts.UsesPromiseAll = promiseAllRe.MatchString(text)
	if facts.FetchCallCount == 0 {
		facts.FetchCallCount = len(fetchCallRe.FindAllStringIndex(text, -1))
	}
	facts.UsesCacheWrapper = usesCacheWrapper(facts.ImportTargets, text)

	facts.IsComponentFile = ext == ".tsx" || ext == ".jsx" || importsReact(facts.ImportTargets)

	return facts
}

func importsReact(imports []string) bool {
	for _, imp := range imports {
		if imp == "react" || strings.HasPrefix(imp, "react/") {
			return true
		}
	}
	return false
}

func usesCacheWrapper(imports []string, text string) bool {
	for _, imp := range imports {
		if imp == "swr" || imp == "@tanstack/react-query" || imp == "react-query" {
			return true
		}
	}
	return cacheWrapperRe.MatchString(text)
}

// countLines counts source lines; a trailing newline does not add a line.
func countLines(content []byte) int {
	if len(content) == 0 {
		return 0
	}
	s := string(content)
	n := strings.Count(s, "\n")
	if !strings.HasSuffix(s, "\n") {
		n++
	}
	return n
}

// LineAt returns the trimmed 1-based line, for Finding context fields.
func LineAt(content []byte, line int) string {
	if line < 1 {
		return ""
	}
	lines := strings.Split(string(content), "\n")
	if line > len(lines) {
		return ""
	}
	return strings.TrimSpace(lines[line-1])
}
