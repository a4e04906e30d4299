package policy

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/archguard/archguard/internal/archguard/domain"
)

type manifest struct {
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// CheckManifest evaluates every declared package in a package.json against
// the policy: denied packages are errors, packages off a non-empty allow
// list are warnings, and installed versions outside the policy's semver
// constraint are warnings.
func CheckManifest(doc *Document, path string, content []byte) []domain.Finding {
	var m manifest
	if err := json.Unmarshal(content, &m); err != nil {
		return []domain.Finding{{
			RuleID:   "dependency-manifest-error",
			Severity: domain.SeverityWarning,
			Message:  fmt.Sprintf("%s could not be parsed: %v", path, err),
			File:     path,
			Line:     1,
		}}
	}

	deps := make(map[string]string, len(m.Dependencies)+len(m.DevDependencies))
	for name, version := range m.Dependencies {
		deps[name] = version
	}
	for name, version := range m.DevDependencies {
		deps[name] = version
	}

	names := make([]string, 0, len(deps))
	for name := range deps {
		names = append(names, name)
	}
	sort.Strings(names)

	var out []domain.Finding
	for _, name := range names {
		installed := deps[name]
		line := manifestLine(content, name)

		verdict, entry := doc.Check(name)
		switch verdict {
		case VerdictDenied:
			msg := fmt.Sprintf("Package '%s' is on the deny list", name)
			if entry.Notes != "" {
				msg += ": " + entry.Notes
			}
			out = append(out, domain.Finding{
				RuleID:   "dependency-denied",
				Severity: domain.SeverityError,
				Message:  msg,
				File:     path,
				Line:     line,
				Fix:      fmt.Sprintf("Remove '%s' from the manifest", name),
			})
		case VerdictUnlisted:
			if len(doc.Allow) > 0 {
				out = append(out, domain.Finding{
					RuleID:   "dependency-not-allowed",
					Severity: domain.SeverityWarning,
					Message:  fmt.Sprintf("Package '%s' is not on the allow list", name),
					File:     path,
					Line:     line,
					Fix:      fmt.Sprintf("Add '%s' to the policy allow list or remove it", name),
				})
			}
		case VerdictAllowed:
			if f := checkConstraint(entry, name, installed, path, line); f != nil {
				out = append(out, *f)
			}
		}
	}
	return out
}

func checkConstraint(entry *Entry, name, installed, path string, line int) *domain.Finding {
	if entry.Version == "" {
		return nil
	}
	constraint, err := semver.NewConstraint(entry.Version)
	if err != nil {
		return nil
	}
	version, err := semver.NewVersion(strings.TrimLeft(installed, "^~><= v"))
	if err != nil {
		// Workspace refs, tags, URLs: nothing to compare against.
		return nil
	}
	if constraint.Check(version) {
		return nil
	}
	return &domain.Finding{
		RuleID:   "dependency-version-mismatch",
		Severity: domain.SeverityWarning,
		Message:  fmt.Sprintf("Package '%s'@%s does not satisfy the policy constraint '%s'", name, installed, entry.Version),
		File:     path,
		Line:     line,
		Fix:      fmt.Sprintf("Update '%s' to a version matching '%s'", name, entry.Version),
	}
}

// manifestLine locates the dependency's declaration line so the finding
// points somewhere useful.
func manifestLine(content []byte, name string) int {
	re, err := regexp.Compile(`"` + regexp.QuoteMeta(name) + `"\s*:`)
	if err != nil {
		return 1
	}
	loc := re.FindIndex(content)
	if loc == nil {
		return 1
	}
	return 1 + strings.Count(string(content[:loc[0]]), "\n")
}
