package validate

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archguard/archguard/internal/archguard/domain"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func oversizedComponent(name string, lines int) string {
	var sb strings.Builder
	sb.WriteString("export default function " + name + "() {\n")
	sb.WriteString("  return <div>big</div>;\n")
	sb.WriteString("}\n")
	for i := 3; i < lines; i++ {
		sb.WriteString("// filler\n")
	}
	return sb.String()
}

func findByRule(findings []domain.Finding, ruleID string) []domain.Finding {
	var out []domain.Finding
	for _, f := range findings {
		if f.RuleID == ruleID {
			out = append(out, f)
		}
	}
	return out
}

func projectWithThreeFiles(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, "alpha.tsx", `import { useState } from 'react';

export default function Alpha() {
  const [count, setCount] = useState(0);
  return <button onClick={() => setCount(count + 1)}>{count}</button>;
}
`)
	writeFile(t, dir, "beta.tsx", `'use client';

export default function Beta() {
  return <p>beta</p>;
}
`)
	writeFile(t, dir, "gamma.tsx", oversizedComponent("Gamma", 600))
	return dir
}

func TestValidateDirectoryReport(t *testing.T) {
	dir := projectWithThreeFiles(t)

	v := New(nil, nil, nil)
	report, err := v.Validate(context.Background(), dir, Options{})
	require.NoError(t, err)

	assert.Equal(t, 3, report.FilesChecked)
	assert.False(t, report.Success)

	require.Len(t, report.Errors, 2)
	assert.Len(t, findByRule(report.Errors, "missing-use-client"), 1)
	assert.Len(t, findByRule(report.Errors, "file-too-long"), 1)

	require.Len(t, report.Warnings, 1)
	assert.Equal(t, "unnecessary-use-client", report.Warnings[0].RuleID)

	assert.Equal(t, 1, report.ComponentStats.ClientComponents)
	assert.Equal(t, 2, report.ComponentStats.ServerComponents)
	assert.Equal(t, 1, report.ComponentStats.Oversized)

	assert.Contains(t, report.Summary, "Checked 3 file(s)")
	assert.Contains(t, report.Summary, "validation failed")
	require.NotEmpty(t, report.MostCommonIssues)
	assert.Equal(t, 1, report.MostCommonIssues[0].Count)
}

func TestValidateIsIdempotent(t *testing.T) {
	dir := projectWithThreeFiles(t)
	v := New(nil, nil, nil)

	first, err := v.Validate(context.Background(), dir, Options{})
	require.NoError(t, err)
	second, err := v.Validate(context.Background(), dir, Options{})
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestBatchSurvivesBrokenFile(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 9; i++ {
		name := fmt.Sprintf("widget%d.tsx", i)
		writeFile(t, dir, name, fmt.Sprintf(`export default function Widget%d() {
  return <div>ok</div>;
}
`, i))
	}
	writeFile(t, dir, "broken.tsx", "const = {{{\n")

	v := New(nil, nil, nil)
	report, err := v.Validate(context.Background(), dir, Options{})
	require.NoError(t, err)

	assert.Equal(t, 10, report.FilesChecked)
	assert.Len(t, findByRule(report.Warnings, "parse-degraded"), 1)
	assert.Empty(t, report.Errors)
}

func TestStrictPromotesWarnings(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "beta.tsx", `'use client';

export default function Beta() {
  return <p>beta</p>;
}
`)

	v := New(nil, nil, nil)
	report, err := v.Validate(context.Background(), dir, Options{Strict: true})
	require.NoError(t, err)

	assert.False(t, report.Success)
	assert.Empty(t, report.Warnings)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, "unnecessary-use-client", report.Errors[0].RuleID)
	assert.Equal(t, domain.SeverityError, report.Errors[0].Severity)
}

func TestRuleSetSelection(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "alpha.tsx", `import { useState } from 'react';

export default function Alpha() {
  const [count, setCount] = useState(0);
  return <button onClick={() => setCount(count + 1)}>{count}</button>;
}
`)
	v := New(nil, nil, nil)

	arch, err := v.Validate(context.Background(), path, Options{RuleSet: RuleSetArchitecture})
	require.NoError(t, err)
	assert.Len(t, findByRule(arch.Errors, "missing-use-client"), 1)

	style, err := v.Validate(context.Background(), path, Options{RuleSet: RuleSetStyle})
	require.NoError(t, err)
	assert.Empty(t, findByRule(style.Errors, "missing-use-client"))
	assert.True(t, style.Success)
}

func TestValidateSingleFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "beta.tsx", `'use client';

export default function Beta() {
  return <p>beta</p>;
}
`)
	v := New(nil, nil, nil)
	report, err := v.Validate(context.Background(), path, Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, report.FilesChecked)
	assert.True(t, report.Success)
	require.Len(t, report.Warnings, 1)
}

func TestValidateMissingPath(t *testing.T) {
	v := New(nil, nil, nil)
	_, err := v.Validate(context.Background(), filepath.Join(t.TempDir(), "nope"), Options{})
	assert.Error(t, err)
}

func TestValidateHonorsCancellation(t *testing.T) {
	dir := projectWithThreeFiles(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	v := New(nil, nil, nil)
	_, err := v.Validate(ctx, dir, Options{})
	assert.ErrorIs(t, err, context.Canceled)
}
