package distance

import (
	"testing"

	"github.com/csander/hssp/internal/seqset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustEntry(t *testing.T, serial int, id, letters string) *seqset.Entry {
	t.Helper()
	codes, err := seqset.Decode(letters)
	require.NoError(t, err)
	return seqset.NewEntry(serial, id, codes)
}

func TestPairIdenticalSequencesAreZeroDistance(t *testing.T) {
	a := mustEntry(t, 0, "a", "ACDEFGHIKLMNPQRSTVWY")
	b := mustEntry(t, 1, "b", "ACDEFGHIKLMNPQRSTVWY")
	assert.InDelta(t, 0.0, Pair(a, b), 1e-9)
}

func TestPairCompletelyDissimilarSequencesAreFarApart(t *testing.T) {
	a := mustEntry(t, 0, "a", "AAAAAAAA")
	b := mustEntry(t, 1, "b", "WWWWWWWW")
	d := Pair(a, b)
	assert.Greater(t, d, 0.9)
}

func TestPairDistanceIsSymmetric(t *testing.T) {
	a := mustEntry(t, 0, "a", "ACDEFGHIKL")
	b := mustEntry(t, 1, "b", "ACDEAGHILL")
	assert.InDelta(t, Pair(a, b), Pair(b, a), 1e-9)
}

func TestPairToleratesLengthMismatch(t *testing.T) {
	a := mustEntry(t, 0, "a", "ACDEFGHIKLMN")
	b := mustEntry(t, 1, "b", "ACDEFGHIKL")
	d := Pair(a, b)
	assert.GreaterOrEqual(t, d, 0.0)
	assert.LessOrEqual(t, d, 1.0)
}

func TestCommonAnchorsFiltersNonMonotonic(t *testing.T) {
	a := mustEntry(t, 0, "a", "ACDEFG")
	b := mustEntry(t, 1, "b", "ACDEFG")
	a.Positions = []uint16{1, 2, 3, 4, 5, 6}
	b.Positions = []uint16{1, 2, 0, 4, 3, 6}

	anchors := commonAnchors(a, b)
	require.Len(t, anchors, 4)
	assert.Equal(t, anchor{i: 0, j: 0}, anchors[0])
	assert.Equal(t, anchor{i: 1, j: 1}, anchors[1])
	assert.Equal(t, anchor{i: 3, j: 3}, anchors[2])
	assert.Equal(t, anchor{i: 5, j: 5}, anchors[3])
}

func TestPairLengthMismatchKeepsSharedPrefixIdentical(t *testing.T) {
	// b is a's first 10 residues exactly; the best score is read on the
	// matrix's trailing edge, so the 2 extra trailing residues of a are left
	// uncharged after the fully-matched diagonal. Almost all 10 shared
	// residues should still come out identical — a regression in the gap
	// recurrence can silently shave a match or two off the shared prefix.
	a := mustEntry(t, 0, "a", "ACDEFGHIKLMN")
	b := mustEntry(t, 1, "b", "ACDEFGHIKL")
	d := Pair(a, b)
	assert.LessOrEqual(t, d, 1.0-8.0/12.0)
}

func TestAlignAnchoredRequiresLetterMatchAtAnchor(t *testing.T) {
	a := mustEntry(t, 0, "a", "ACDEFG")
	b := mustEntry(t, 1, "b", "ACWEFG")
	a.Positions = []uint16{1, 2, 3, 4, 5, 6}
	b.Positions = []uint16{1, 2, 3, 4, 5, 6}

	// Every column is anchored, but column 2 (D vs W) differs by letter, so
	// only 5 of the 6 anchors are identical.
	identical := alignAnchored(a.Residues, b.Residues, commonAnchors(a, b))
	assert.Equal(t, 5, identical)
}

func TestPairWithAnchorsMatchesUnanchoredOnIdenticalInput(t *testing.T) {
	a := mustEntry(t, 0, "a", "ACDEFGHIKL")
	b := mustEntry(t, 1, "b", "ACDEFGHIKL")
	a.Positions = []uint16{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	b.Positions = []uint16{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	assert.InDelta(t, 0.0, Pair(a, b), 1e-9)
}
