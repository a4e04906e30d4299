package rules

import (
	"fmt"

	"github.com/archguard/archguard/internal/archguard/domain"
)

// noAnyType flags literal `any` annotations found by the parser. Only fires
// on fully parsed TypeScript files: the text heuristics cannot tell `any`
// the type from `any` the word.
func noAnyType() Rule {
	return Rule{
		ID:       "no-any-type",
		Severity: domain.SeverityWarning,
		AppliesTo: func(ff *domain.FileFacts) bool {
			return ff.Parsed && len(ff.AnyTypeLines) > 0
		},
		Evaluate: func(ff *domain.FileFacts, content []byte) []domain.Finding {
			var out []domain.Finding
			for _, line := range ff.AnyTypeLines {
				out = append(out, finding("no-any-type", domain.SeverityWarning, ff, content, line,
					fmt.Sprintf("'any' type annotation on line %d defeats type checking", line),
					"Replace 'any' with a concrete type or 'unknown'"))
			}
			return out
		},
	}
}

// parseDegraded records that a file's syntax tree was unusable and analysis
// fell back to text heuristics. A warning, not an error: the tool is
// advisory and a broken file still gets best-effort findings.
func parseDegraded() Rule {
	return Rule{
		ID:       "parse-degraded",
		Severity: domain.SeverityWarning,
		AppliesTo: func(ff *domain.FileFacts) bool {
			return !ff.Parsed
		},
		Evaluate: func(ff *domain.FileFacts, content []byte) []domain.Finding {
			return []domain.Finding{finding("parse-degraded", domain.SeverityWarning, ff, content, 1,
				fmt.Sprintf("%s could not be fully parsed; analysis degraded to text heuristics", ff.Path),
				"Fix the syntax error to restore precise analysis")}
		},
	}
}
