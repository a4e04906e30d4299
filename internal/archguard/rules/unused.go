package rules

import (
	"fmt"
	"regexp"

	"github.com/archguard/archguard/internal/archguard/domain"
)

// Identifiers the unused-variable rule never flags, on top of parameters and
// framework hook names: conventional names that frequently appear in
// destructuring positions the reference count cannot see.
var unusedExemptions = map[string]bool{
	"props":    true,
	"state":    true,
	"ref":      true,
	"key":      true,
	"children": true,
}

// unusedVariable flags declared identifiers with zero references after their
// declaration. The reference count is a whole-word occurrence count over the
// raw file; matches in strings and comments over-count, so the rule misses
// rather than false-flags.
func unusedVariable() Rule {
	return Rule{
		ID:       "unused-variable",
		Severity: domain.SeverityWarning,
		Evaluate: func(ff *domain.FileFacts, content []byte) []domain.Finding {
			var out []domain.Finding
			for _, id := range ff.DeclaredIdentifiers {
				if id.Kind == domain.KindParameter {
					continue
				}
				if id.Kind != domain.KindVariable && id.Kind != domain.KindFunction {
					continue
				}
				if id.Exported || unusedExemptions[id.Name] || domain.ClientOnlyHooks[id.Name] {
					continue
				}
				if len(id.Name) > 0 && id.Name[0] == '_' {
					continue
				}
				if countWordOccurrences(content, id.Name) <= 1 {
					out = append(out, finding("unused-variable", domain.SeverityWarning, ff, content, id.Line,
						fmt.Sprintf("'%s' is declared on line %d but never used", id.Name, id.Line),
						fmt.Sprintf("Remove '%s' or rename it to '_%s' to mark it intentionally unused", id.Name, id.Name)))
				}
			}
			return out
		},
	}
}

func countWordOccurrences(content []byte, name string) int {
	re, err := regexp.Compile(`\b` + regexp.QuoteMeta(name) + `\b`)
	if err != nil {
		return 0
	}
	return len(re.FindAllIndex(content, -1))
}
