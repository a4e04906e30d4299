package rules

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/archguard/archguard/internal/archguard/domain"
)

var (
	secretAssignRe = regexp.MustCompile(`(?i)\b(\w*(?:secret|token|password|api[_-]?key|private[_-]?key)\w*)\s*[:=]\s*['"]([^'"]{16,})['"]`)
	clientEnvRe    = regexp.MustCompile(`process\.env\.([A-Z0-9_]+)`)
)

// hardcodedSecret pattern-matches suspiciously named identifiers assigned a
// long literal. The entropy check weeds out placeholders and message strings;
// the name check weeds out ordinary long literals. Both must agree before the
// rule fires.
func hardcodedSecret() Rule {
	return Rule{
		ID:       "hardcoded-secret",
		Severity: domain.SeverityError,
		Evaluate: func(ff *domain.FileFacts, content []byte) []domain.Finding {
			text := string(content)
			var out []domain.Finding
			for _, m := range secretAssignRe.FindAllStringSubmatchIndex(text, -1) {
				name := text[m[2]:m[3]]
				value := text[m[4]:m[5]]
				if !looksLikeSecret(value) {
					continue
				}
				line := 1 + strings.Count(text[:m[0]], "\n")
				out = append(out, finding("hardcoded-secret", domain.SeverityError, ff, content, line,
					fmt.Sprintf("'%s' on line %d is assigned what looks like a hardcoded credential", name, line),
					fmt.Sprintf("Move the value of '%s' into an environment variable", name)))
			}
			return out
		},
	}
}

// clientEnvAccess flags environment reads in client files that lack the
// client-safe prefix: anything else is stripped at build time, so the read
// silently yields undefined in the browser.
func clientEnvAccess() Rule {
	return Rule{
		ID:       "client-env-access",
		Severity: domain.SeverityError,
		AppliesTo: func(ff *domain.FileFacts) bool {
			return ff.HasClientDirective
		},
		Evaluate: func(ff *domain.FileFacts, content []byte) []domain.Finding {
			text := string(content)
			var out []domain.Finding
			for _, m := range clientEnvRe.FindAllStringSubmatchIndex(text, -1) {
				name := text[m[2]:m[3]]
				if strings.HasPrefix(name, "NEXT_PUBLIC_") {
					continue
				}
				line := 1 + strings.Count(text[:m[0]], "\n")
				out = append(out, finding("client-env-access", domain.SeverityError, ff, content, line,
					fmt.Sprintf("process.env.%s is read in a client component without the NEXT_PUBLIC_ prefix", name),
					fmt.Sprintf("Rename the variable to NEXT_PUBLIC_%s or read it on the server", name)))
			}
			return out
		},
	}
}

// looksLikeSecret is an entropy proxy: mixed character classes and no spaces.
func looksLikeSecret(value string) bool {
	if strings.ContainsAny(value, " \t") {
		return false
	}
	var hasLetter, hasDigit bool
	for _, r := range value {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}
