package mcp

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/archguard/archguard/internal/archguard/domain"
	"github.com/archguard/archguard/internal/archguard/policy"
	"github.com/archguard/archguard/internal/archguard/recommend"
	"github.com/archguard/archguard/internal/archguard/validate"
)

// Tool Inputs

// CheckOptions mirrors the protocol's recognized option keys.
type CheckOptions struct {
	SingleFile     bool     `json:"singleFile,omitempty"`
	IgnorePatterns []string `json:"ignorePatterns,omitempty"`
	Verbose        bool     `json:"verbose,omitempty"`
	Fix            bool     `json:"fix,omitempty"`
	Strict         bool     `json:"strict,omitempty"`
}

// CheckInput defines the input parameters shared by the check tools.
type CheckInput struct {
	Path    string        `json:"path" jsonschema:"required"`
	Options *CheckOptions `json:"options,omitempty"`
}

// ImportInput defines the input parameters for the check_import_allowed tool.
type ImportInput struct {
	Path   string `json:"path" jsonschema:"required"`
	Import string `json:"import" jsonschema:"required"`
}

// FindingDetail pairs a finding with its remediation, for verbose output.
type FindingDetail struct {
	domain.Finding
	Recommendation domain.Recommendation `json:"recommendation"`
}

// CheckResult is the JSON payload returned by every check tool. A validation
// failure is still a successful tool call: Success in the payload, not the
// transport status, communicates pass/fail.
type CheckResult struct {
	Success          bool                  `json:"success"`
	Errors           []string              `json:"errors"`
	Warnings         []string              `json:"warnings"`
	Summary          string                `json:"summary"`
	FilesChecked     int                   `json:"files_checked"`
	ComponentStats   domain.ComponentStats `json:"component_stats"`
	MostCommonIssues []domain.IssueCount   `json:"most_common_issues"`
	Findings         []FindingDetail       `json:"findings,omitempty"`
}

func (as *ArchguardServer) options(in *CheckOptions) (validate.Options, bool, bool) {
	if in == nil {
		return validate.Options{}, false, false
	}
	return validate.Options{
		SingleFile:     in.SingleFile,
		Strict:         in.Strict,
		IgnorePatterns: in.IgnorePatterns,
	}, in.Verbose, in.Fix
}

func formatResult(report *domain.ValidationReport, verbose, withFix bool) CheckResult {
	res := CheckResult{
		Success:          report.Success,
		Errors:           []string{},
		Warnings:         []string{},
		Summary:          report.Summary,
		FilesChecked:     report.FilesChecked,
		ComponentStats:   report.ComponentStats,
		MostCommonIssues: report.MostCommonIssues,
	}
	for _, f := range report.Errors {
		res.Errors = append(res.Errors, f.String())
	}
	for _, f := range report.Warnings {
		res.Warnings = append(res.Warnings, f.String())
	}
	if verbose || withFix {
		all := append(append([]domain.Finding{}, report.Errors...), report.Warnings...)
		for _, f := range all {
			if !withFix {
				f.Fix = ""
			}
			res.Findings = append(res.Findings, FindingDetail{
				Finding:        f,
				Recommendation: recommend.For(f),
			})
		}
	}
	return res
}

func toolResult(payload any) (*mcp.CallToolResult, any, error) {
	bytes, _ := json.MarshalIndent(payload, "", "  ")
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(bytes)},
		},
	}, nil, nil
}

func toolError(msg string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: msg},
		},
	}, nil, nil
}

// Tool Handlers

func (as *ArchguardServer) architectureCheck(ctx context.Context, req *mcp.CallToolRequest, input CheckInput) (*mcp.CallToolResult, any, error) {
	return as.runCheck(ctx, input, validate.RuleSetArchitecture, false)
}

func (as *ArchguardServer) checkComponentArchitecture(ctx context.Context, req *mcp.CallToolRequest, input CheckInput) (*mcp.CallToolResult, any, error) {
	return as.runCheck(ctx, input, validate.RuleSetArchitecture, true)
}

func (as *ArchguardServer) styleCheck(ctx context.Context, req *mcp.CallToolRequest, input CheckInput) (*mcp.CallToolResult, any, error) {
	return as.runCheck(ctx, input, validate.RuleSetStyle, false)
}

func (as *ArchguardServer) checkFileStyle(ctx context.Context, req *mcp.CallToolRequest, input CheckInput) (*mcp.CallToolResult, any, error) {
	return as.runCheck(ctx, input, validate.RuleSetStyle, true)
}

func (as *ArchguardServer) runCheck(ctx context.Context, input CheckInput, set validate.RuleSet, forceSingle bool) (*mcp.CallToolResult, any, error) {
	if input.Path == "" {
		return toolError("path is required")
	}
	opts, verbose, withFix := as.options(input.Options)
	opts.RuleSet = set
	if forceSingle {
		opts.SingleFile = true
	}

	report, err := as.Validator.Validate(ctx, input.Path, opts)
	if err != nil {
		return toolError(err.Error())
	}

	as.recordRun(input.Path, report)
	return toolResult(formatResult(report, verbose, withFix))
}

func (as *ArchguardServer) dependencyCheck(ctx context.Context, req *mcp.CallToolRequest, input CheckInput) (*mcp.CallToolResult, any, error) {
	if input.Path == "" {
		return toolError("path is required")
	}
	_, verbose, withFix := as.options(input.Options)

	report, err := as.Validator.ValidateDependencies(ctx, input.Path)
	if err != nil {
		return toolError(err.Error())
	}

	as.recordRun(input.Path, report)
	return toolResult(formatResult(report, verbose, withFix))
}

func (as *ArchguardServer) checkImportAllowed(ctx context.Context, req *mcp.CallToolRequest, input ImportInput) (*mcp.CallToolResult, any, error) {
	if input.Path == "" || input.Import == "" {
		return toolError("path and import are required")
	}

	verdict, entry, err := as.Validator.CheckImport(input.Path, input.Import)
	payload := map[string]interface{}{
		"import":  input.Import,
		"verdict": verdict,
		"allowed": verdict != policy.VerdictDenied,
	}
	if entry != nil && entry.Notes != "" {
		payload["notes"] = entry.Notes
	}
	if err != nil {
		payload["warning"] = "dependency policy unavailable; import is unconstrained"
	}
	return toolResult(payload)
}

func (as *ArchguardServer) recordRun(path string, report *domain.ValidationReport) {
	if as.Store == nil {
		return
	}
	if err := as.Store.RecordRun(path, report); err != nil {
		as.logger.Warn("failed to record run", "error", err)
	}
}
