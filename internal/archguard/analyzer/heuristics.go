package analyzer

import (
	"regexp"
	"strings"

	"github.com/archguard/archguard/internal/archguard/domain"
)

// Word-boundary-safe patterns: every pattern anchors on \b or an explicit
// syntactic neighbor so substring collisions (myUseEffect, colonClick) do
// not match.
var (
	hookCallRe     = regexp.MustCompile(`\b(use[A-Z][A-Za-z0-9]*)\s*\(`)
	browserAPIRe   = regexp.MustCompile(`\b(window|document|localStorage|sessionStorage|navigator)\s*[.\[]`)
	handlerAttrRe  = regexp.MustCompile(`\b(on[A-Z][A-Za-z]*)\s*=`)
	importRe       = regexp.MustCompile(`(?m)^\s*import\s+(?:type\s+)?(?:[^'"]*?from\s+)?['"]([^'"]+)['"]`)
	varDeclRe      = regexp.MustCompile(`(?m)^\s*(?:export\s+)?(?:const|let|var)\s+([A-Za-z_$][\w$]*)`)
	funcDeclRe     = regexp.MustCompile(`(?m)^\s*(?:export\s+)?(?:default\s+)?(?:async\s+)?function\s+([A-Za-z_$][\w$]*)`)
	classDeclRe    = regexp.MustCompile(`(?m)^\s*(?:export\s+)?(?:default\s+)?class\s+([A-Za-z_$][\w$]*)`)
	ifaceDeclRe    = regexp.MustCompile(`(?m)^\s*(?:export\s+)?interface\s+([A-Za-z_$][\w$]*)`)
	typeDeclRe     = regexp.MustCompile(`(?m)^\s*(?:export\s+)?type\s+([A-Za-z_$][\w$]*)\s*=`)
	fetchCallRe    = regexp.MustCompile(`\bfetch\s*\(`)
	awaitedFetchRe = regexp.MustCompile(`\bawait\s+fetch\s*\(`)
	promiseAllRe   = regexp.MustCompile(`\bPromise\.(all|allSettled)\s*\(`)
	cacheWrapperRe = regexp.MustCompile(`\b(unstable_cache|cache)\s*\(`)
)

// leadingDirectives reports the "use client" / "use server" markers. Only
// leading statements count: a string deeper in the file that merely contains
// the directive text is ignored.
func leadingDirectives(content []byte) (client, server bool) {
	inBlockComment := false
	for _, raw := range strings.Split(string(content), "\n") {
		line := strings.TrimSpace(raw)

		if inBlockComment {
			if idx := strings.Index(line, "*/"); idx >= 0 {
				line = strings.TrimSpace(line[idx+2:])
				inBlockComment = false
			} else {
				continue
			}
		}
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		if strings.HasPrefix(line, "/*") {
			if !strings.Contains(line, "*/") {
				inBlockComment = true
			}
			continue
		}

		switch strings.TrimSuffix(strings.Trim(line, `'";`), ";") {
		case "use client":
			client = true
			continue
		case "use server":
			server = true
			continue
		}
		// First real statement ends the directive window.
		return client, server
	}
	return client, server
}

// extractHeuristic fills facts from text patterns alone. Keyword-like text
// inside strings and comments will match; it never fails on unparseable
// input.
func extractHeuristic(facts *domain.FileFacts, content []byte) {
	text := string(content)

	for _, m := range hookCallRe.FindAllStringSubmatch(text, -1) {
		facts.UsedHooks[m[1]] = true
	}
	for _, m := range browserAPIRe.FindAllStringSubmatch(text, -1) {
		facts.UsedBrowserAPIs[m[1]] = true
	}
	if facts.Extension == ".tsx" || facts.Extension == ".jsx" {
		for _, m := range handlerAttrRe.FindAllStringSubmatch(text, -1) {
			facts.EventHandlerNames[m[1]] = true
		}
	}
	for _, m := range importRe.FindAllStringSubmatch(text, -1) {
		facts.ImportTargets = append(facts.ImportTargets, m[1])
	}

	decls := []struct {
		re   *regexp.Regexp
		kind domain.IdentifierKind
	}{
		{varDeclRe, domain.KindVariable},
		{funcDeclRe, domain.KindFunction},
		{classDeclRe, domain.KindClass},
		{ifaceDeclRe, domain.KindInterface},
		{typeDeclRe, domain.KindType},
	}
	for _, d := range decls {
		for _, m := range d.re.FindAllStringSubmatchIndex(text, -1) {
			name := text[m[2]:m[3]]
			line := 1 + strings.Count(text[:m[0]], "\n")
			facts.DeclaredIdentifiers = append(facts.DeclaredIdentifiers, domain.Identifier{
				Name:     name,
				Kind:     d.kind,
				Line:     line,
				Exported: strings.Contains(text[m[0]:m[2]], "export"),
			})
		}
	}

	facts.FetchCallCount = len(fetchCallRe.FindAllStringIndex(text, -1))
}
