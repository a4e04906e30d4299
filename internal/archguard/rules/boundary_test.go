package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archguard/archguard/internal/archguard/analyzer"
	"github.com/archguard/archguard/internal/archguard/domain"
)

func evaluate(t *testing.T, path, source string) []domain.Finding {
	t.Helper()
	content := []byte(source)
	facts := analyzer.New(nil).Analyze(path, content)
	return EvaluateFile(Catalog(500), facts, content)
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

func TestMissingUseClientOnStateHook(t *testing.T) {
	findings := evaluate(t, "counter.tsx", `import { useState } from 'react';

export default function Counter() {
  const [count, setCount] = useState(0);
  return <div>{count}</div>;
}
`)
	hits := findByRule(findings, "missing-use-client")
	require.Len(t, hits, 1)
	assert.Equal(t, domain.SeverityError, hits[0].Severity)
	assert.Contains(t, hits[0].Message, "useState")
	assert.Equal(t, "counter.tsx", hits[0].File)
}

func TestNoBoundaryErrorWhenDirectivePresent(t *testing.T) {
	findings := evaluate(t, "counter.tsx", `'use client';
import { useState } from 'react';

export default function Counter() {
  const [count, setCount] = useState(0);
  return <div>{count}</div>;
}
`)
	assert.Empty(t, findByRule(findings, "missing-use-client"))
	assert.Empty(t, findByRule(findings, "unnecessary-use-client"))
}

func TestUnnecessaryUseClient(t *testing.T) {
	findings := evaluate(t, "static.tsx", `'use client';

export default function Static() {
  return <p>static content</p>;
}
`)
	hits := findByRule(findings, "unnecessary-use-client")
	require.Len(t, hits, 1)
	assert.Equal(t, domain.SeverityWarning, hits[0].Severity)
	assert.Empty(t, findByRule(findings, "missing-use-client"))
}

func TestBrowserAPIInServerFileEmitsBothFamilies(t *testing.T) {
	findings := evaluate(t, "meta.tsx", `export default function Meta() {
  const title = document.title;
  return <span>{title}</span>;
}
`)
	// Overlapping findings from different rule families are both kept.
	assert.Len(t, findByRule(findings, "missing-use-client"), 1)
	assert.Len(t, findByRule(findings, "browser-api-in-server"), 1)
}
