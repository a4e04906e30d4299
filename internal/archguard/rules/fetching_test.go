package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchWaterfall(t *testing.T) {
	findings := evaluate(t, "lib/load.ts", `export async function load() {
  const a = await fetch('/api/a', { cache: 'no-store' });
  const b = await fetch('/api/b', { cache: 'no-store' });
  return [a, b];
}
`)
	hits := findByRule(findings, "fetch-waterfall")
	require.Len(t, hits, 1)
	assert.Contains(t, hits[0].Message, "2 sequential awaited fetch calls")
}

func TestPromiseAllSuppressesWaterfall(t *testing.T) {
	findings := evaluate(t, "lib/load.ts", `export async function load() {
  const [a, b] = await Promise.all([
    fetch('/api/a', { cache: 'no-store' }),
    fetch('/api/b', { cache: 'no-store' }),
  ]);
  return [a, b];
}
`)
	assert.Empty(t, findByRule(findings, "fetch-waterfall"))
}

func TestClientFetchWithoutDedupe(t *testing.T) {
	findings := evaluate(t, "widget.tsx", `'use client';
import { useState } from 'react';

export default function Widget() {
  const [data, setData] = useState(null);
  fetch('/api/widget', { cache: 'no-store' }).then(r => r.json()).then(setData);
  return <div>{data}</div>;
}
`)
	hits := findByRule(findings, "client-fetch-no-dedupe")
	require.Len(t, hits, 1)
	assert.Contains(t, hits[0].Fix, "swr")
}

func TestSWRImportSuppressesDedupeWarning(t *testing.T) {
	findings := evaluate(t, "widget.tsx", `'use client';
import useSWR from 'swr';

export default function Widget() {
  const { data } = useSWR('/api/widget', (url: string) => fetch(url).then(r => r.json()));
  return <div>{data}</div>;
}
`)
	assert.Empty(t, findByRule(findings, "client-fetch-no-dedupe"))
}

func TestFetchWithoutCacheOption(t *testing.T) {
	findings := evaluate(t, "lib/data.ts", `export async function data() {
  const res = await fetch('/api/data');
  return res.json();
}
`)
	hits := findByRule(findings, "fetch-no-cache-option")
	require.Len(t, hits, 1)
	assert.Contains(t, hits[0].Message, "no cache or revalidate option")
}

func TestCacheOptionSatisfiesRule(t *testing.T) {
	findings := evaluate(t, "lib/data.ts", `export async function data() {
  const res = await fetch('/api/data', { next: { revalidate: 60 } });
  return res.json();
}
`)
	assert.Empty(t, findByRule(findings, "fetch-no-cache-option"))
}

func TestActionFilesExemptFromCacheOption(t *testing.T) {
	findings := evaluate(t, "app/actions/save.ts", `export async function save(body: string) {
  await fetch('/api/save', { method: 'POST', body });
}
`)
	assert.Empty(t, findByRule(findings, "fetch-no-cache-option"))
}
