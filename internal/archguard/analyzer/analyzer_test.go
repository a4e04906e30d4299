package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeadingDirectiveDetection(t *testing.T) {
	cases := []struct {
		name   string
		source string
		client bool
	}{
		{
			name:   "directive as first statement",
			source: "'use client';\nexport default function A() { return null; }\n",
			client: true,
		},
		{
			name:   "directive after comments and blank lines",
			source: "// header comment\n\n/* block\ncomment */\n'use client';\nconst x = 1;\n",
			client: true,
		},
		{
			name:   "directive string deeper in the file does not count",
			source: "const label = 'nothing';\nconst s = 'use client';\n",
			client: false,
		},
		{
			name:   "double quotes accepted",
			source: "\"use client\"\nexport const a = 1;\n",
			client: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client, _ := leadingDirectives([]byte(tc.source))
			assert.Equal(t, tc.client, client)
		})
	}
}

func TestHookDetectionIsWordBoundarySafe(t *testing.T) {
	a := New(nil)

	facts := a.Analyze("widget.tsx", []byte(`
import { useEffect } from 'react';
export default function Widget() {
  useEffect(() => {}, []);
  return null;
}
`))
	require.True(t, facts.Parsed)
	assert.True(t, facts.UsedHooks["useEffect"])

	// A substring collision must not register as a hook.
	facts = a.Analyze("widget.tsx", []byte(`
function myUseEffect() {}
export default function Widget() {
  myUseEffect();
  return null;
}
`))
	require.True(t, facts.Parsed)
	assert.Empty(t, facts.UsedHooks)
}

func TestBrowserAPIAndHandlerDetection(t *testing.T) {
	a := New(nil)
	facts := a.Analyze("panel.tsx", []byte(`
export default function Panel() {
  const width = window.innerWidth;
  return <button onClick={() => console.log(width)}>go</button>;
}
`))
	require.True(t, facts.Parsed)
	assert.True(t, facts.UsedBrowserAPIs["window"])
	assert.True(t, facts.EventHandlerNames["onClick"])
}

func TestParseFailureFallsBackToHeuristics(t *testing.T) {
	a := New(nil)
	facts := a.Analyze("broken.tsx", []byte("const = {{{ useState(\n"))
	assert.False(t, facts.Parsed)
}

func TestImportAndDeclarationExtraction(t *testing.T) {
	a := New(nil)
	facts := a.Analyze("card.tsx", []byte(`import React from 'react';
import { fetchUser } from './api';

export interface CardProps {
  title: string;
}

export default function Card(props: CardProps) {
  const local = props.title;
  return <div>{local}</div>;
}
`))
	require.True(t, facts.Parsed)
	assert.Equal(t, []string{"react", "./api"}, facts.ImportTargets)
	assert.True(t, facts.IsComponentFile)

	var names []string
	for _, id := range facts.DeclaredIdentifiers {
		names = append(names, id.Name)
	}
	assert.Contains(t, names, "CardProps")
	assert.Contains(t, names, "Card")
	assert.Contains(t, names, "local")
}

func TestCountLines(t *testing.T) {
	assert.Equal(t, 0, countLines(nil))
	assert.Equal(t, 1, countLines([]byte("one")))
	assert.Equal(t, 1, countLines([]byte("one\n")))
	assert.Equal(t, 3, countLines([]byte("a\nb\nc\n")))
}

func TestFetchFacts(t *testing.T) {
	a := New(nil)
	facts := a.Analyze("loader.ts", []byte(`
export async function load() {
  const a = await fetch('/api/a');
  const b = await fetch('/api/b');
  return [a, b];
}
`))
	assert.Equal(t, 2, facts.FetchCallCount)
	assert.Equal(t, 2, facts.AwaitedFetches)
	assert.False(t, facts.UsesPromiseAll)
}
