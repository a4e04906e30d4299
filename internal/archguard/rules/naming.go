package rules

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/archguard/archguard/internal/archguard/domain"
)

func isPascalCase(name string) bool {
	if name == "" || !unicode.IsUpper(rune(name[0])) {
		return false
	}
	return !strings.Contains(name, "_")
}

func isCamelCase(name string) bool {
	if name == "" || !unicode.IsLower(rune(name[0])) {
		return false
	}
	return !strings.Contains(name, "_")
}

func isConstantCase(name string) bool {
	for _, r := range name {
		if !unicode.IsUpper(r) && !unicode.IsDigit(r) && r != '_' {
			return false
		}
	}
	return name != ""
}

// componentNaming requires exported functions in component files to be
// PascalCase: the renderer treats lowercase tags as intrinsic elements, so a
// lowercase component silently renders wrong.
func componentNaming() Rule {
	return Rule{
		ID:       "component-naming",
		Severity: domain.SeverityWarning,
		AppliesTo: func(ff *domain.FileFacts) bool {
			return ff.Extension == ".tsx" || ff.Extension == ".jsx"
		},
		Evaluate: func(ff *domain.FileFacts, content []byte) []domain.Finding {
			var out []domain.Finding
			for _, id := range ff.DeclaredIdentifiers {
				if id.Kind != domain.KindFunction || !id.Exported {
					continue
				}
				if !isPascalCase(id.Name) {
					out = append(out, finding("component-naming", domain.SeverityWarning, ff, content, id.Line,
						fmt.Sprintf("Exported component '%s' should be PascalCase", id.Name),
						fmt.Sprintf("Rename '%s' to '%s'", id.Name, pascalize(id.Name))))
				}
			}
			return out
		},
	}
}

// identifierNaming holds ordinary variables and non-exported functions to
// camelCase. PascalCase is tolerated in component files (component-valued
// variables) and CONSTANT_CASE is tolerated everywhere.
func identifierNaming() Rule {
	return Rule{
		ID:       "identifier-naming",
		Severity: domain.SeverityWarning,
		Evaluate: func(ff *domain.FileFacts, content []byte) []domain.Finding {
			var out []domain.Finding
			for _, id := range ff.DeclaredIdentifiers {
				if id.Kind != domain.KindVariable && id.Kind != domain.KindFunction {
					continue
				}
				if strings.HasPrefix(id.Name, "_") || isCamelCase(id.Name) || isConstantCase(id.Name) {
					continue
				}
				if isPascalCase(id.Name) && (ff.Extension == ".tsx" || ff.Extension == ".jsx") {
					continue
				}
				out = append(out, finding("identifier-naming", domain.SeverityWarning, ff, content, id.Line,
					fmt.Sprintf("%s '%s' on line %d should be camelCase", string(id.Kind), id.Name, id.Line), ""))
			}
			return out
		},
	}
}

// typeNaming requires interfaces, type aliases, and classes to be PascalCase.
func typeNaming() Rule {
	return Rule{
		ID:       "type-naming",
		Severity: domain.SeverityWarning,
		Evaluate: func(ff *domain.FileFacts, content []byte) []domain.Finding {
			var out []domain.Finding
			for _, id := range ff.DeclaredIdentifiers {
				switch id.Kind {
				case domain.KindInterface, domain.KindType, domain.KindClass:
				default:
					continue
				}
				if !isPascalCase(id.Name) {
					out = append(out, finding("type-naming", domain.SeverityWarning, ff, content, id.Line,
						fmt.Sprintf("%s '%s' should be PascalCase", string(id.Kind), id.Name),
						fmt.Sprintf("Rename '%s' to '%s'", id.Name, pascalize(id.Name))))
				}
			}
			return out
		},
	}
}

// componentFileMismatch expects the exported component to match its file's
// base name. Files following the "-client" suffix convention are exempt:
// their component is deliberately named after the server counterpart.
func componentFileMismatch() Rule {
	return Rule{
		ID:       "component-file-mismatch",
		Severity: domain.SeverityWarning,
		AppliesTo: func(ff *domain.FileFacts) bool {
			if ff.Extension != ".tsx" && ff.Extension != ".jsx" {
				return false
			}
			base := strings.TrimSuffix(filepath.Base(ff.Path), ff.Extension)
			return !strings.HasSuffix(base, "-client") && base != "index" && base != "page" && base != "layout"
		},
		Evaluate: func(ff *domain.FileFacts, content []byte) []domain.Finding {
			base := strings.TrimSuffix(filepath.Base(ff.Path), ff.Extension)
			want := pascalize(base)
			for _, id := range ff.DeclaredIdentifiers {
				if id.Kind == domain.KindFunction && id.Exported && isPascalCase(id.Name) {
					if id.Name == want {
						return nil
					}
					return []domain.Finding{finding("component-file-mismatch", domain.SeverityWarning, ff, content, id.Line,
						fmt.Sprintf("Exported component '%s' does not match file name '%s' (expected '%s')", id.Name, base, want),
						"")}
				}
			}
			return nil
		},
	}
}

// pascalize upper-cases the first letter of each -, _ or space separated
// segment: "user-card" -> "UserCard".
func pascalize(name string) string {
	segs := strings.FieldsFunc(name, func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	})
	var sb strings.Builder
	for _, s := range segs {
		sb.WriteString(strings.ToUpper(s[:1]) + s[1:])
	}
	return sb.String()
}
