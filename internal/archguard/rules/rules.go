package rules

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/archguard/archguard/internal/archguard/analyzer"
	"github.com/archguard/archguard/internal/archguard/domain"
)

// Rule is a named, pure predicate/extractor pair. Rules must not mutate
// FileFacts and must not depend on another rule's output: evaluation order
// between rules is not observable, so the set can run in any order or in
// parallel.
type Rule struct {
	ID        string
	Severity  domain.Severity
	AppliesTo func(ff *domain.FileFacts) bool
	Evaluate  func(ff *domain.FileFacts, content []byte) []domain.Finding
}

// Catalog returns the full rule set. maxFileLines parameterizes the size
// rule; everything else is fixed by convention.
func Catalog(maxFileLines int) []Rule {
	rules := []Rule{
		missingUseClient(),
		unnecessaryUseClient(),
		browserAPIInServer(),
		fetchWaterfall(),
		clientFetchNoDedupe(),
		fetchNoCacheOption(),
		componentNaming(),
		identifierNaming(),
		typeNaming(),
		componentFileMismatch(),
		unusedVariable(),
		sizeLimit(maxFileLines),
		rawImgElement(),
		hardcodedSecret(),
		clientEnvAccess(),
		noAnyType(),
		parseDegraded(),
	}
	return rules
}

// architectureRuleIDs covers the boundary, data-fetching, asset, and
// security families; everything else in the catalog is a style concern.
var architectureRuleIDs = map[string]bool{
	"missing-use-client":     true,
	"unnecessary-use-client": true,
	"browser-api-in-server":  true,
	"fetch-waterfall":        true,
	"client-fetch-no-dedupe": true,
	"fetch-no-cache-option":  true,
	"raw-img-element":        true,
	"hardcoded-secret":       true,
	"client-env-access":      true,
	"parse-degraded":         true,
}

// ArchitectureCatalog is the subset backing the architecture_check tool
// family; StyleCatalog backs style_check. Both share parse-degraded so a
// broken file is reported no matter which family runs.
func ArchitectureCatalog(maxFileLines int) []Rule {
	return filterCatalog(maxFileLines, true)
}

func StyleCatalog(maxFileLines int) []Rule {
	return filterCatalog(maxFileLines, false)
}

func filterCatalog(maxFileLines int, architecture bool) []Rule {
	var out []Rule
	for _, r := range Catalog(maxFileLines) {
		if architectureRuleIDs[r.ID] == architecture || r.ID == "parse-degraded" {
			out = append(out, r)
		}
	}
	return out
}

// EvaluateFile runs every applicable rule over one file and suppresses exact
// (ruleId, line, message) duplicates. Findings from different rule families
// on the same line are all kept.
func EvaluateFile(catalog []Rule, ff *domain.FileFacts, content []byte) []domain.Finding {
	var out []domain.Finding
	seen := map[string]bool{}

	for _, r := range catalog {
		if r.AppliesTo != nil && !r.AppliesTo(ff) {
			continue
		}
		for _, f := range r.Evaluate(ff, content) {
			key := fmt.Sprintf("%s|%d|%s", f.RuleID, f.Line, f.Message)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, f)
		}
	}
	return out
}

func finding(id string, sev domain.Severity, ff *domain.FileFacts, content []byte, line int, msg, fix string) domain.Finding {
	return domain.Finding{
		RuleID:   id,
		Severity: sev,
		Message:  msg,
		File:     ff.Path,
		Line:     line,
		Context:  analyzer.LineAt(content, line),
		Fix:      fix,
	}
}

// firstLineOf locates the first word-boundary occurrence of token, for rules
// whose facts carry no position of their own. Returns 1 when not found so a
// finding always has a valid location.
func firstLineOf(content []byte, token string) int {
	re, err := regexp.Compile(`(?m)\b` + regexp.QuoteMeta(token) + `\b`)
	if err != nil {
		return 1
	}
	loc := re.FindIndex(content)
	if loc == nil {
		return 1
	}
	line := 1
	for _, b := range content[:loc[0]] {
		if b == '\n' {
			line++
		}
	}
	return line
}

// sortedKeys keeps finding order deterministic: idempotent runs must yield
// identical arrays, and map iteration order is not.
func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
