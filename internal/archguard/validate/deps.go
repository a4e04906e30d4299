package validate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/archguard/archguard/internal/archguard/domain"
	"github.com/archguard/archguard/internal/archguard/policy"
)

// ValidateDependencies checks the project manifest against the dependency
// policy. A missing or malformed policy degrades to the empty policy with a
// warning noting the fallback; it never blocks the call.
func (v *Validator) ValidateDependencies(ctx context.Context, root string) (*domain.ValidationReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(absRoot); err != nil {
		return nil, fmt.Errorf("path not found: %w", err)
	}

	report := &domain.ValidationReport{
		Errors:   []domain.Finding{},
		Warnings: []domain.Finding{},
	}

	doc, err := v.loadPolicy(absRoot)
	if err != nil {
		report.Warnings = append(report.Warnings, domain.Finding{
			RuleID:   "dependency-policy-unavailable",
			Severity: domain.SeverityWarning,
			Message:  fmt.Sprintf("Dependency policy could not be loaded (%v); packages are unconstrained", err),
			File:     filepath.Join(absRoot, v.cfg.PolicyFile),
			Line:     1,
		})
	}

	manifestPath := filepath.Join(absRoot, "package.json")
	content, err := os.ReadFile(manifestPath)
	if err != nil {
		report.Warnings = append(report.Warnings, domain.Finding{
			RuleID:   "dependency-manifest-missing",
			Severity: domain.SeverityWarning,
			Message:  fmt.Sprintf("No package.json found at %s; nothing to check", absRoot),
			File:     manifestPath,
			Line:     1,
		})
	} else {
		report.FilesChecked = 1
		for _, f := range policy.CheckManifest(doc, manifestPath, content) {
			v.appendFinding(report, f, false)
		}
	}

	v.finalize(report)
	return report, nil
}

// CheckImport answers whether a single import specifier is admissible under
// the project's policy, without scanning the tree.
func (v *Validator) CheckImport(root, specifier string) (policy.Verdict, *policy.Entry, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return policy.VerdictUnlisted, nil, err
	}
	doc, loadErr := v.loadPolicy(absRoot)
	verdict, entry := doc.Check(specifier)
	return verdict, entry, loadErr
}

func (v *Validator) loadPolicy(absRoot string) (*policy.Document, error) {
	if v.policies == nil {
		return &policy.Document{}, nil
	}
	return v.policies.Get(absRoot, v.cfg.PolicyFile)
}
