package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archguard/archguard/internal/archguard/domain"
)

func TestRecordAndRecentRuns(t *testing.T) {
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.RecordRun("/proj", &domain.ValidationReport{
		FilesChecked: 3,
		Errors:       []domain.Finding{{RuleID: "missing-use-client"}},
		Warnings:     []domain.Finding{{RuleID: "unnecessary-use-client"}},
		Success:      false,
		Summary:      "Checked 3 file(s): 1 error(s), 1 warning(s), validation failed (1 client / 2 server components)",
	}))
	require.NoError(t, s.RecordRun("/proj", &domain.ValidationReport{
		FilesChecked: 3,
		Errors:       []domain.Finding{},
		Warnings:     []domain.Finding{},
		Success:      true,
		Summary:      "Checked 3 file(s): 0 error(s), 0 warning(s), validation passed (1 client / 2 server components)",
	}))

	runs, err := s.RecentRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	// Newest first.
	assert.True(t, runs[0].Success)
	assert.Equal(t, 0, runs[0].ErrorCount)
	assert.False(t, runs[1].Success)
	assert.Equal(t, 1, runs[1].ErrorCount)
	assert.Equal(t, 1, runs[1].WarningCount)
	assert.Equal(t, "/proj", runs[1].Root)
}

func TestRecentRunsHonorsLimit(t *testing.T) {
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	for i := 0; i < 5; i++ {
		require.NoError(t, s.RecordRun("/proj", &domain.ValidationReport{Success: true}))
	}

	runs, err := s.RecentRuns(3)
	require.NoError(t, err)
	assert.Len(t, runs, 3)
}

func TestEmptyStore(t *testing.T) {
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	runs, err := s.RecentRuns(10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}
