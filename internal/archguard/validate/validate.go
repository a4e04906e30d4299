package validate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/hashicorp/go-hclog"

	"github.com/archguard/archguard/internal/archguard/analyzer"
	"github.com/archguard/archguard/internal/archguard/config"
	"github.com/archguard/archguard/internal/archguard/domain"
	"github.com/archguard/archguard/internal/archguard/policy"
	"github.com/archguard/archguard/internal/archguard/rules"
	"github.com/archguard/archguard/internal/archguard/scanner"
)

// RuleSet selects which rule families a call evaluates. The tool pairs of
// the protocol (architecture_check vs style_check) are the same Aggregator
// parameterized by this value.
type RuleSet string

const (
	RuleSetAll          RuleSet = "all"
	RuleSetArchitecture RuleSet = "architecture"
	RuleSetStyle        RuleSet = "style"
)

// Options controls a single validation call.
type Options struct {
	SingleFile     bool     // Force single-file mode even for paths that are directories.
	Strict         bool     // CI-strict: promote every warning to an error.
	IgnorePatterns []string // Extra directory names to exclude from scanning.
	RuleSet        RuleSet  // Empty means RuleSetAll.
}

// Validator runs the rule catalog over a file or directory and merges the
// findings into a ValidationReport. Each call is independent: FileFacts are
// built fresh per invocation and no mutable state is shared between
// concurrent requests (the policy cache is read-mostly and snapshot-safe).
type Validator struct {
	cfg      *config.Config
	analyzer *analyzer.Analyzer
	catalog  []rules.Rule
	policies *policy.Cache
	logger   hclog.Logger
}

func New(cfg *config.Config, policies *policy.Cache, logger hclog.Logger) *Validator {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if cfg == nil {
		c := config.DefaultConfig
		cfg = &c
	}
	return &Validator{
		cfg:      cfg,
		analyzer: analyzer.New(logger),
		catalog:  rules.Catalog(cfg.MaxFileLines),
		policies: policies,
		logger:   logger.Named("validate"),
	}
}

func (v *Validator) catalogFor(set RuleSet) []rules.Rule {
	switch set {
	case RuleSetArchitecture:
		return rules.ArchitectureCatalog(v.cfg.MaxFileLines)
	case RuleSetStyle:
		return rules.StyleCatalog(v.cfg.MaxFileLines)
	default:
		return v.catalog
	}
}

// Validate checks a directory or a single file. A nonexistent path is the
// only fatal input error; anything local to one file degrades that file's
// contribution and the batch continues. Cancellation is honored between
// files, never mid-file.
func (v *Validator) Validate(ctx context.Context, path string, opts Options) (*domain.ValidationReport, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("path not found: %w", err)
	}

	if opts.SingleFile || !info.IsDir() {
		return v.validateFiles(ctx, []string{abs}, opts)
	}

	sc := scanner.New(scanner.Options{
		Extensions:     v.cfg.Extensions,
		ExcludedDirs:   append(append([]string{}, v.cfg.ExcludedDirs...), opts.IgnorePatterns...),
		MaxDepth:       v.cfg.MaxDepth,
		FollowSymlinks: v.cfg.FollowSymlinks,
	}, v.logger)

	files, err := sc.Scan(abs)
	if err != nil {
		return nil, err
	}
	return v.validateFiles(ctx, files, opts)
}

func (v *Validator) validateFiles(ctx context.Context, files []string, opts Options) (*domain.ValidationReport, error) {
	report := &domain.ValidationReport{
		Errors:   []domain.Finding{},
		Warnings: []domain.Finding{},
	}
	catalog := v.catalogFor(opts.RuleSet)

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		content, err := os.ReadFile(file)
		if err != nil {
			v.logger.Warn("skipping unreadable file", "path", file, "error", err)
			report.Warnings = append(report.Warnings, domain.Finding{
				RuleID:   "file-unreadable",
				Severity: domain.SeverityWarning,
				Message:  fmt.Sprintf("%s could not be read: %v", file, err),
				File:     file,
				Line:     1,
			})
			report.FilesChecked++
			continue
		}

		facts := v.analyzer.Analyze(file, content)
		report.FilesChecked++
		v.accumulateStats(report, facts)

		for _, f := range rules.EvaluateFile(catalog, facts, content) {
			v.appendFinding(report, f, opts.Strict)
		}
	}

	v.finalize(report)
	return report, nil
}

// accumulateStats re-derives booleans from FileFacts rather than re-running
// rules: directive present means client, oversized means past the ceiling.
func (v *Validator) accumulateStats(report *domain.ValidationReport, facts *domain.FileFacts) {
	if facts.IsComponentFile {
		if facts.HasClientDirective {
			report.ComponentStats.ClientComponents++
		} else {
			report.ComponentStats.ServerComponents++
		}
	}
	if facts.UsesCacheWrapper {
		report.ComponentStats.UsingCache++
	}
	if facts.LineCount > v.cfg.MaxFileLines {
		report.ComponentStats.Oversized++
	}
}

func (v *Validator) appendFinding(report *domain.ValidationReport, f domain.Finding, strict bool) {
	if strict && f.Severity == domain.SeverityWarning {
		f.Severity = domain.SeverityError
	}
	switch f.Severity {
	case domain.SeverityError:
		report.Errors = append(report.Errors, f)
	default:
		report.Warnings = append(report.Warnings, f)
	}
}

// finalize computes the derived fields. Only called once every file has been
// evaluated: the summary and top-issue list are whole-batch properties, never
// streamed.
func (v *Validator) finalize(report *domain.ValidationReport) {
	counts := map[string]int{}
	for _, f := range report.Errors {
		counts[f.RuleID]++
	}
	for _, f := range report.Warnings {
		counts[f.RuleID]++
	}

	issues := make([]domain.IssueCount, 0, len(counts))
	for id, n := range counts {
		issues = append(issues, domain.IssueCount{RuleID: id, Count: n})
	}
	sort.Slice(issues, func(i, j int) bool {
		if issues[i].Count != issues[j].Count {
			return issues[i].Count > issues[j].Count
		}
		return issues[i].RuleID < issues[j].RuleID
	})
	if len(issues) > 5 {
		issues = issues[:5]
	}
	report.MostCommonIssues = issues

	report.Success = len(report.Errors) == 0
	report.Summary = summarize(report)
}

func summarize(r *domain.ValidationReport) string {
	verdict := "passed"
	if !r.Success {
		verdict = "failed"
	}
	s := fmt.Sprintf("Checked %d file(s): %d error(s), %d warning(s), validation %s (%d client / %d server components)",
		r.FilesChecked, len(r.Errors), len(r.Warnings), verdict,
		r.ComponentStats.ClientComponents, r.ComponentStats.ServerComponents)
	if len(r.MostCommonIssues) > 0 {
		top := r.MostCommonIssues[0]
		s += fmt.Sprintf("; most frequent issue: %s (%d)", top.RuleID, top.Count)
	}
	return s
}
