package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/archguard/archguard/internal/archguard/domain"
)

// fetchWaterfall flags two or more awaited fetch calls with no parallelizing
// combinator in sight: a request waterfall that serializes latency.
func fetchWaterfall() Rule {
	return Rule{
		ID:       "fetch-waterfall",
		Severity: domain.SeverityWarning,
		AppliesTo: func(ff *domain.FileFacts) bool {
			return ff.AwaitedFetches >= 2 && !ff.UsesPromiseAll
		},
		Evaluate: func(ff *domain.FileFacts, content []byte) []domain.Finding {
			line := firstLineOf(content, "fetch")
			return []domain.Finding{finding("fetch-waterfall", domain.SeverityWarning, ff, content, line,
				fmt.Sprintf("%d sequential awaited fetch calls without Promise.all", ff.AwaitedFetches),
				"Batch independent requests with Promise.all to avoid a request waterfall")}
		},
	}
}

// clientFetchNoDedupe flags fetch calls inside a client component without a
// recognized request-deduplication pattern (swr, react-query, cache()).
func clientFetchNoDedupe() Rule {
	return Rule{
		ID:       "client-fetch-no-dedupe",
		Severity: domain.SeverityWarning,
		AppliesTo: func(ff *domain.FileFacts) bool {
			return ff.HasClientDirective && ff.FetchCallCount > 0 && !ff.UsesCacheWrapper
		},
		Evaluate: func(ff *domain.FileFacts, content []byte) []domain.Finding {
			line := firstLineOf(content, "fetch")
			return []domain.Finding{finding("client-fetch-no-dedupe", domain.SeverityWarning, ff, content, line,
				fmt.Sprintf("fetch is called %d time(s) in a client component without a caching wrapper", ff.FetchCallCount),
				"Wrap client-side data fetching in swr or react-query to deduplicate requests")}
		},
	}
}

var fetchOpenRe = regexp.MustCompile(`\bfetch\s*\(`)

// fetchNoCacheOption flags fetch calls that carry no cache-control or
// revalidation option within the 200 bytes following the call. Action files
// and 'use server' files are exempt.
func fetchNoCacheOption() Rule {
	return Rule{
		ID:       "fetch-no-cache-option",
		Severity: domain.SeverityWarning,
		AppliesTo: func(ff *domain.FileFacts) bool {
			if ff.FetchCallCount == 0 || ff.HasServerDirective {
				return false
			}
			return !strings.Contains(ff.Path, "actions")
		},
		Evaluate: func(ff *domain.FileFacts, content []byte) []domain.Finding {
			text := string(content)
			var out []domain.Finding
			for _, loc := range fetchOpenRe.FindAllStringIndex(text, -1) {
				end := loc[1] + 200
				if end > len(text) {
					end = len(text)
				}
				window := text[loc[1]:end]
				if strings.Contains(window, "cache:") || strings.Contains(window, "revalidate") {
					continue
				}
				line := 1 + strings.Count(text[:loc[0]], "\n")
				out = append(out, finding("fetch-no-cache-option", domain.SeverityWarning, ff, content, line,
					fmt.Sprintf("fetch call on line %d has no cache or revalidate option", line),
					"Pass { cache: 'force-cache' } or { next: { revalidate: n } } to make caching explicit"))
			}
			return out
		},
	}
}
