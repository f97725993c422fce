package hssp

import (
	"testing"

	"github.com/csander/hssp/internal/seqset"
	"github.com/csander/hssp/internal/submat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustEntry(t *testing.T, serial int, id, letters string) *seqset.Entry {
	t.Helper()
	codes, err := seqset.Decode(letters)
	require.NoError(t, err)
	return seqset.NewEntry(serial, id, codes)
}

func TestReduceRowIdenticalSequencesHaveNoGaps(t *testing.T) {
	entries := []*seqset.Entry{
		mustEntry(t, 0, "query", "ACDEFG"),
		mustEntry(t, 1, "hit", "ACDEFG"),
	}
	h, err := ReduceRow(entries, 0, 1, submat.DistanceMatrix)
	require.NoError(t, err)

	assert.Equal(t, 1.0, h.Identity)
	assert.Equal(t, 0, h.GapN)
	assert.Equal(t, 0, h.Gaps)
	assert.Equal(t, 6, h.Length)
}

func TestReduceRowExtractsInsertionWithLowercaseFlanks(t *testing.T) {
	entries := []*seqset.Entry{
		mustEntry(t, 0, "query", "ACD---EFG"),
		mustEntry(t, 1, "hit", "ACDkmnEFG"),
	}
	h, err := ReduceRow(entries, 0, 1, submat.DistanceMatrix)
	require.NoError(t, err)

	require.Len(t, h.Insertions, 1)
	ins := h.Insertions[0]
	assert.Equal(t, 3, len(ins.Seq)-2) // flank chars plus the inserted run
	assert.Equal(t, byte('d'), ins.Seq[0])
	assert.Equal(t, byte('e'), ins.Seq[len(ins.Seq)-1])
}

func TestReduceRowSingleMismatchGivesExpectedIdentity(t *testing.T) {
	entries := []*seqset.Entry{
		mustEntry(t, 0, "query", "ACDE"),
		mustEntry(t, 1, "hit", "ACGE"),
	}
	h, err := ReduceRow(entries, 0, 1, submat.DistanceMatrix)
	require.NoError(t, err)

	assert.Equal(t, 4, h.Length)
	assert.Equal(t, 3, h.Identical)
	assert.Equal(t, 0.75, h.Identity)
}

func TestReduceRowCountsDeletionGapRuns(t *testing.T) {
	entries := []*seqset.Entry{
		mustEntry(t, 0, "query", "ACDEFGHIK"),
		mustEntry(t, 1, "hit", "ACD--GHIK"),
	}
	h, err := ReduceRow(entries, 0, 1, submat.DistanceMatrix)
	require.NoError(t, err)

	assert.Equal(t, 2, h.GapN)
	assert.Equal(t, 1, h.Gaps)
	assert.Empty(t, h.Insertions)
}

func TestReduceRowQueryNumberingIgnoresLeadingInsertion(t *testing.T) {
	entries := []*seqset.Entry{
		mustEntry(t, 0, "query", "-ACDEFG"),
		mustEntry(t, 1, "hit", "MACDEFG"),
	}
	h, err := ReduceRow(entries, 0, 1, submat.DistanceMatrix)
	require.NoError(t, err)

	// column 0 is query-gap-only (an insertion in the subject); the query's
	// own first real residue is still numbered 1, not 0.
	assert.Equal(t, 0, h.Begin)
	assert.Equal(t, 1, h.QueryFirst)
	assert.Equal(t, 6, h.QueryLast)
	assert.Equal(t, 2, h.SubjectFirst)
	assert.Equal(t, 7, h.SubjectLast)
}

func TestReduceRowQueryNumberingIgnoresTwoLeadingInsertions(t *testing.T) {
	entries := []*seqset.Entry{
		mustEntry(t, 0, "query", "--ACDEFG"),
		mustEntry(t, 1, "hit", "MYACDEFG"),
	}
	h, err := ReduceRow(entries, 0, 1, submat.DistanceMatrix)
	require.NoError(t, err)

	assert.Equal(t, 1, h.QueryFirst, "two leading insertion columns must not advance the query's own numbering")
	assert.Equal(t, 3, h.SubjectFirst)
}

func TestReduceRowSubjectNumberingIgnoresLeadingDeletion(t *testing.T) {
	entries := []*seqset.Entry{
		mustEntry(t, 0, "query", "MYACDEFG"),
		mustEntry(t, 1, "hit", "--ACDEFG"),
	}
	h, err := ReduceRow(entries, 0, 1, submat.DistanceMatrix)
	require.NoError(t, err)

	assert.Equal(t, 3, h.QueryFirst, "a leading deletion still consumes query numbering")
	assert.Equal(t, 1, h.SubjectFirst, "a leading deletion must not advance the subject's own numbering")
}

func TestHomologyThresholdClampsLength(t *testing.T) {
	short := homologyThreshold(5)
	atFloor := homologyThreshold(10)
	assert.Equal(t, short, atFloor)

	long := homologyThreshold(500)
	atCeiling := homologyThreshold(80)
	assert.Equal(t, long, atCeiling)
}
