package msa

import (
	"testing"

	"github.com/csander/hssp/internal/seqset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMSAEntry(t *testing.T, serial int, id, letters string) *seqset.Entry {
	t.Helper()
	codes, err := seqset.Decode(letters)
	require.NoError(t, err)
	return seqset.NewEntry(serial, id, codes)
}

func TestBuildRejectsTooFewSequences(t *testing.T) {
	_, err := Build([]*seqset.Entry{mustMSAEntry(t, 0, "a", "ACDE")}, DefaultOptions())
	require.Error(t, err)
}

func TestBuildAlignsAllEntriesToEqualLength(t *testing.T) {
	entries := []*seqset.Entry{
		mustMSAEntry(t, 0, "a", "ACDEFGHIKL"),
		mustMSAEntry(t, 1, "b", "ACDEFGHIKLMN"),
		mustMSAEntry(t, 2, "c", "ACDFGHIKL"),
	}
	opts := DefaultOptions()
	opts.Workers = 2

	result, err := Build(entries, opts)
	require.NoError(t, err)
	require.Len(t, result.Entries, 3)

	for _, e := range result.Entries {
		assert.Equal(t, result.Len(), e.Len())
	}
}

func TestBuildRejectsUnknownMatrixFamily(t *testing.T) {
	entries := []*seqset.Entry{
		mustMSAEntry(t, 0, "a", "ACDE"),
		mustMSAEntry(t, 1, "b", "ACDE"),
	}
	opts := DefaultOptions()
	opts.MatrixFamily = "NOPE"
	_, err := Build(entries, opts)
	require.Error(t, err)
}
