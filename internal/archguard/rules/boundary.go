package rules

import (
	"fmt"

	"github.com/archguard/archguard/internal/archguard/domain"
)

// missingUseClient flags component files that reference client-only features
// (interactive hooks, browser globals, JSX event handlers) without the
// leading "use client" directive.
func missingUseClient() Rule {
	return Rule{
		ID:       "missing-use-client",
		Severity: domain.SeverityError,
		AppliesTo: func(ff *domain.FileFacts) bool {
			return ff.IsComponentFile && !ff.HasClientDirective
		},
		Evaluate: func(ff *domain.FileFacts, content []byte) []domain.Finding {
			if !ff.NeedsClient() {
				return nil
			}
			construct, line := firstClientFeature(ff, content)
			msg := fmt.Sprintf("Component uses %s but is missing the 'use client' directive", construct)
			return []domain.Finding{finding("missing-use-client", domain.SeverityError, ff, content, line,
				msg, "Add 'use client' as the first statement of the file")}
		},
	}
}

// unnecessaryUseClient flags the opposite drift: a directive present with no
// detected client-only feature, which forces the whole subtree into the
// interactive bundle for nothing.
func unnecessaryUseClient() Rule {
	return Rule{
		ID:       "unnecessary-use-client",
		Severity: domain.SeverityWarning,
		AppliesTo: func(ff *domain.FileFacts) bool {
			return ff.HasClientDirective
		},
		Evaluate: func(ff *domain.FileFacts, content []byte) []domain.Finding {
			if ff.NeedsClient() {
				return nil
			}
			return []domain.Finding{finding("unnecessary-use-client", domain.SeverityWarning, ff, content, 1,
				fmt.Sprintf("%s has the 'use client' directive but no detected hooks, browser APIs, or event handlers", ff.Path),
				"Remove the directive or move interactive logic into this file")}
		},
	}
}

// browserAPIInServer flags browser-global references in files without the
// client directive. Emitted alongside missing-use-client when both apply;
// overlapping findings across rule families are not deduplicated.
func browserAPIInServer() Rule {
	return Rule{
		ID:       "browser-api-in-server",
		Severity: domain.SeverityWarning,
		AppliesTo: func(ff *domain.FileFacts) bool {
			return !ff.HasClientDirective && len(ff.UsedBrowserAPIs) > 0
		},
		Evaluate: func(ff *domain.FileFacts, content []byte) []domain.Finding {
			var out []domain.Finding
			for _, api := range sortedKeys(ff.UsedBrowserAPIs) {
				line := firstLineOf(content, api)
				out = append(out, finding("browser-api-in-server", domain.SeverityWarning, ff, content, line,
					fmt.Sprintf("'%s' is referenced in a non-client file", api),
					"Split the browser-dependent code into a 'use client' component"))
			}
			return out
		},
	}
}

// firstClientFeature names the construct justifying the client requirement
// and locates its first occurrence, so the message references something the
// reader can find.
func firstClientFeature(ff *domain.FileFacts, content []byte) (string, int) {
	for _, h := range sortedKeys(ff.UsedHooks) {
		if domain.ClientOnlyHooks[h] {
			return h, firstLineOf(content, h)
		}
	}
	for _, api := range sortedKeys(ff.UsedBrowserAPIs) {
		return api, firstLineOf(content, api)
	}
	for _, handler := range sortedKeys(ff.EventHandlerNames) {
		return handler, firstLineOf(content, handler)
	}
	return "a client-only feature", 1
}
