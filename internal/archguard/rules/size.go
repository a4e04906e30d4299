package rules

import (
	"fmt"

	"github.com/archguard/archguard/internal/archguard/domain"
)

// sizeLimit enforces the file-length ceiling: over the ceiling is an error,
// within 20% under it is a warning. The message always reports the ceiling
// and the overshoot so the caller needs no configuration lookup.
func sizeLimit(maxLines int) Rule {
	warnAt := maxLines - maxLines/5
	return Rule{
		ID:       "file-too-long",
		Severity: domain.SeverityError,
		AppliesTo: func(ff *domain.FileFacts) bool {
			return ff.LineCount > warnAt
		},
		Evaluate: func(ff *domain.FileFacts, content []byte) []domain.Finding {
			if ff.LineCount > maxLines {
				return []domain.Finding{finding("file-too-long", domain.SeverityError, ff, content, 1,
					fmt.Sprintf("File has %d lines, exceeding the %d-line ceiling by %d", ff.LineCount, maxLines, ff.LineCount-maxLines),
					"Split the file into smaller components or extract helpers into a separate module")}
			}
			return []domain.Finding{finding("file-near-size-limit", domain.SeverityWarning, ff, content, 1,
				fmt.Sprintf("File has %d lines, within 20%% of the %d-line ceiling", ff.LineCount, maxLines),
				"Consider splitting before the file grows past the ceiling")}
		},
	}
}
