package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnusedVariableFlagged(t *testing.T) {
	findings := evaluate(t, "page.tsx", `export default function Page() {
  const orphan = 42;
  return <div>done</div>;
}
`)
	hits := findByRule(findings, "unused-variable")
	require.Len(t, hits, 1)
	assert.Contains(t, hits[0].Message, "'orphan'")
	assert.Contains(t, hits[0].Fix, "_orphan")
}

func TestUnderscorePrefixSuppressesUnused(t *testing.T) {
	findings := evaluate(t, "page.tsx", `export default function Page() {
  const _orphan = 42;
  return <div>done</div>;
}
`)
	assert.Empty(t, findByRule(findings, "unused-variable"))
}

func TestExemptNamesNotFlagged(t *testing.T) {
	findings := evaluate(t, "page.tsx", `export default function Page() {
  const children = null;
  return <div>done</div>;
}
`)
	assert.Empty(t, findByRule(findings, "unused-variable"))
}

func TestUsedVariableNotFlagged(t *testing.T) {
	findings := evaluate(t, "page.tsx", `export default function Page() {
  const label = 'hi';
  return <div>{label}</div>;
}
`)
	assert.Empty(t, findByRule(findings, "unused-variable"))
}
