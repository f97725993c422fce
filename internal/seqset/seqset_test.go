package seqset

import (
	"testing"

	"github.com/csander/hssp/internal/residue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDecode(t *testing.T, s string) []residue.Code {
	t.Helper()
	codes, err := Decode(s)
	require.NoError(t, err)
	return codes
}

func TestInsertGap(t *testing.T) {
	e := NewEntry(0, "q", mustDecode(t, "ACDE"))
	e.Positions = []uint16{1, 2, 3, 4}

	e.InsertGap(2)

	assert.Equal(t, 5, e.Len())
	assert.Equal(t, residue.Gap, e.Residues[2])
	assert.Equal(t, []uint16{1, 2, 0, 3, 4}, e.Positions)
}

func TestInsertGapPastEndAppends(t *testing.T) {
	e := NewEntry(0, "q", mustDecode(t, "AC"))
	e.InsertGap(10)
	assert.Equal(t, 3, e.Len())
	assert.Equal(t, residue.Gap, e.Residues[2])
}

func TestRemoveGapsForbiddenWithPositions(t *testing.T) {
	e := NewEntry(0, "q", mustDecode(t, "A-C"))
	e.Positions = []uint16{1, 0, 2}
	require.Error(t, e.RemoveGaps())
}

func TestRemoveGapsCompacts(t *testing.T) {
	e := NewEntry(0, "q", mustDecode(t, "A--C"))
	require.NoError(t, e.RemoveGaps())
	assert.Equal(t, 2, e.Len())
}

func TestCutReslices(t *testing.T) {
	e := NewEntry(0, "q", mustDecode(t, "ACDEFG"))
	e.Cut(2, 3)
	assert.Equal(t, mustDecode(t, "DEF"), e.Residues)
}

func TestPruneMarksWithoutReleasing(t *testing.T) {
	e := NewEntry(0, "q", mustDecode(t, "ACDE"))
	assert.False(t, e.Pruned())
	e.Prune()
	assert.True(t, e.Pruned())
	assert.Equal(t, 4, e.Len())
}

func TestCopyIsIndependent(t *testing.T) {
	e := NewEntry(0, "q", mustDecode(t, "ACDE"))
	cp := e.Copy()
	cp.InsertGap(0)
	assert.Equal(t, 4, e.Len())
	assert.Equal(t, 5, cp.Len())
}
