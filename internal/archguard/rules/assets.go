package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/archguard/archguard/internal/archguard/domain"
)

var rawImgRe = regexp.MustCompile(`<img[\s>]`)

// rawImgElement flags raw <img> tags in component files: they bypass the
// framework's image optimization (sizing, lazy loading, format negotiation).
func rawImgElement() Rule {
	return Rule{
		ID:       "raw-img-element",
		Severity: domain.SeverityError,
		AppliesTo: func(ff *domain.FileFacts) bool {
			return ff.IsComponentFile
		},
		Evaluate: func(ff *domain.FileFacts, content []byte) []domain.Finding {
			text := string(content)
			var out []domain.Finding
			for _, loc := range rawImgRe.FindAllStringIndex(text, -1) {
				line := 1 + strings.Count(text[:loc[0]], "\n")
				out = append(out, finding("raw-img-element", domain.SeverityError, ff, content, line,
					fmt.Sprintf("Raw <img> element on line %d instead of the optimized Image component", line),
					"Import Image from 'next/image' and replace the <img> tag"))
			}
			return out
		},
	}
}
