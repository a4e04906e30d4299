package recommend

import "github.com/archguard/archguard/internal/archguard/domain"

// catalog maps rule ids to their remediation. Kept as data so adding a rule
// means adding a row, not code.
var catalog = map[string]domain.Recommendation{
	"missing-use-client": {
		Title:    "Add the client directive",
		Message:  "Files using hooks, browser APIs, or event handlers run in the interactive runtime and must opt in explicitly.",
		FixText:  "Add 'use client' as the first statement of the file.",
		DocLinks: []string{"https://react.dev/reference/rsc/use-client"},
	},
	"unnecessary-use-client": {
		Title:    "Drop the client directive",
		Message:  "No client-only feature was detected; the directive forces this subtree into the client bundle for nothing.",
		FixText:  "Remove the 'use client' line or move interactive logic into the file.",
		DocLinks: []string{"https://react.dev/reference/rsc/use-client"},
	},
	"browser-api-in-server": {
		Title:   "Isolate browser access",
		Message: "Browser globals are undefined during server rendering and will throw.",
		FixText: "Extract the browser-dependent code into a small 'use client' component.",
	},
	"fetch-waterfall": {
		Title:    "Parallelize independent requests",
		Message:  "Sequential awaited fetches serialize network latency.",
		FixText:  "Start the requests together and await them with Promise.all.",
		DocLinks: []string{"https://nextjs.org/docs/app/building-your-application/data-fetching/patterns"},
	},
	"client-fetch-no-dedupe": {
		Title:   "Deduplicate client fetches",
		Message: "Un-cached client fetches refire on every render and across sibling components.",
		FixText: "Use swr or react-query for client-side data fetching.",
	},
	"fetch-no-cache-option": {
		Title:   "Make caching explicit",
		Message: "A fetch without a cache or revalidate option relies on framework defaults that differ between routes.",
		FixText: "Pass { cache: 'force-cache' } or { next: { revalidate: n } }.",
	},
	"component-naming": {
		Title:   "PascalCase components",
		Message: "Lowercase component names are treated as intrinsic elements by the renderer.",
		FixText: "Rename the component to PascalCase.",
	},
	"identifier-naming": {
		Title:   "camelCase identifiers",
		Message: "Ordinary variables and functions follow camelCase in this codebase.",
	},
	"type-naming": {
		Title:   "PascalCase types",
		Message: "Interfaces, type aliases, and classes follow PascalCase in this codebase.",
	},
	"component-file-mismatch": {
		Title:   "Match component and file names",
		Message: "The exported component should match its file's base name so search and imports stay predictable.",
	},
	"unused-variable": {
		Title:   "Remove or underscore unused declarations",
		Message: "Dead declarations accumulate; the underscore prefix marks intentional ones.",
		FixText: "Delete the declaration or rename it with a leading underscore.",
	},
	"file-too-long": {
		Title:   "Split oversized files",
		Message: "Files past the line ceiling resist review and hide duplicated logic.",
		FixText: "Extract sub-components or helpers into their own modules.",
	},
	"file-near-size-limit": {
		Title:   "File approaching size ceiling",
		Message: "Split proactively before the hard limit turns this into an error.",
	},
	"raw-img-element": {
		Title:    "Use the optimized image component",
		Message:  "Raw <img> tags skip sizing, lazy loading, and format negotiation.",
		FixText:  "Import Image from 'next/image' and replace the tag.",
		DocLinks: []string{"https://nextjs.org/docs/app/api-reference/components/image"},
	},
	"hardcoded-secret": {
		Title:   "Move credentials out of source",
		Message: "Literals that look like credentials end up in version control and client bundles.",
		FixText: "Read the value from an environment variable or a secret manager.",
	},
	"client-env-access": {
		Title:    "Prefix client-visible env vars",
		Message:  "Only NEXT_PUBLIC_-prefixed variables are inlined into client bundles; others read as undefined.",
		FixText:  "Rename the variable with the NEXT_PUBLIC_ prefix or read it server-side.",
		DocLinks: []string{"https://nextjs.org/docs/app/building-your-application/configuring/environment-variables"},
	},
	"no-any-type": {
		Title:   "Avoid the any type",
		Message: "any disables checking for every value it touches.",
		FixText: "Use a concrete type, a generic, or unknown with narrowing.",
	},
	"parse-degraded": {
		Title:   "Fix the syntax error",
		Message: "The file could not be parsed, so only text heuristics ran on it.",
	},
	"dependency-denied": {
		Title:   "Remove denied dependency",
		Message: "The package is on the project deny list; see the policy notes for the sanctioned alternative.",
	},
	"dependency-not-allowed": {
		Title:   "Unreviewed dependency",
		Message: "The package is not on the allow list; have it reviewed and added, or remove it.",
	},
	"dependency-version-mismatch": {
		Title:   "Align dependency version",
		Message: "The installed version range falls outside the policy constraint.",
	},
}

var fallback = domain.Recommendation{
	Title:   "Review finding",
	Message: "No specific recommendation is registered for this rule; read the finding message and apply the project conventions.",
}

// For returns the remediation for a finding's rule id. Unknown ids get the
// generic fallback; this never fails.
func For(f domain.Finding) domain.Recommendation {
	if rec, ok := catalog[f.RuleID]; ok {
		return rec
	}
	return fallback
}
