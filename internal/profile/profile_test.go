package profile

import (
	"testing"

	"github.com/csander/hssp/internal/seqset"
	"github.com/csander/hssp/internal/submat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustEntry(t *testing.T, id, letters string) *seqset.Entry {
	t.Helper()
	codes, err := seqset.Decode(letters)
	require.NoError(t, err)
	return seqset.NewEntry(0, id, codes)
}

func TestAlignIdenticalProfilesNeedsNoGaps(t *testing.T) {
	family, err := submat.NewFamily("GONNET")
	require.NoError(t, err)

	a := []*seqset.Entry{mustEntry(t, "a", "ACDEFGHIKL")}
	b := []*seqset.Entry{mustEntry(t, "b", "ACDEFGHIKL")}

	merged := Align(0.1, 0.1, a, b, family, 10, 0.2, 0.05, true)

	require.Len(t, merged, 2)
	assert.Equal(t, merged[0].Len(), merged[1].Len())
	for i := range merged[0].Residues {
		assert.Equal(t, merged[0].Residues[i], merged[1].Residues[i])
	}
}

func TestAlignDifferentLengthsInsertsGaps(t *testing.T) {
	family, err := submat.NewFamily("GONNET")
	require.NoError(t, err)

	a := []*seqset.Entry{mustEntry(t, "a", "ACDEFGHIKLMN")}
	b := []*seqset.Entry{mustEntry(t, "b", "ACDEFGHIKL")}

	merged := Align(0.2, 0.2, a, b, family, 10, 0.2, 0.05, true)

	require.Len(t, merged, 2)
	assert.Equal(t, merged[0].Len(), merged[1].Len())
	assert.GreaterOrEqual(t, merged[0].Len(), 12)
}

func TestScoreSkipsGapColumns(t *testing.T) {
	family, err := submat.NewFamily("GONNET")
	require.NoError(t, err)
	mat := family.At(0.1, true)

	a := []*seqset.Entry{mustEntry(t, "a", "A-")}
	b := []*seqset.Entry{mustEntry(t, "b", "-A")}

	assert.Equal(t, 0.0, Score(a, b, 0, 0, mat))
	assert.Equal(t, 0.0, Score(a, b, 1, 1, mat))
}
