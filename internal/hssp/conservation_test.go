package hssp

import (
	"math"
	"testing"

	"github.com/csander/hssp/internal/seqset"
	"github.com/csander/hssp/internal/submat"
	"github.com/stretchr/testify/assert"
)

func TestColumnWeightsDefaultsToOneWithoutOverlap(t *testing.T) {
	entries := []*seqset.Entry{
		mustEntry(t, 0, "a", "ACDE"),
	}
	windows := []window{{begin: 0, end: 4}}
	weights := ColumnWeights(entries, windows, submat.DistanceMatrix, 1)
	for _, w := range weights {
		assert.Equal(t, 1.0, w)
	}
}

func TestColumnWeightsAccumulateAcrossPairs(t *testing.T) {
	entries := []*seqset.Entry{
		mustEntry(t, 0, "a", "ACDE"),
		mustEntry(t, 1, "b", "ACDE"),
		mustEntry(t, 2, "c", "AWDY"),
	}
	windows := []window{{0, 4}, {0, 4}, {0, 4}}
	weights := ColumnWeights(entries, windows, submat.DistanceMatrix, 2)
	assert.Len(t, weights, 4)
	for _, w := range weights {
		assert.False(t, math.IsNaN(w))
	}
}

func TestColumnWeightsSkipsPrunedRows(t *testing.T) {
	entries := []*seqset.Entry{
		mustEntry(t, 0, "a", "ACDE"),
		mustEntry(t, 1, "b", "WWWW"),
	}
	entries[1].Prune()
	windows := []window{{0, 4}, {0, 4}}
	weights := ColumnWeights(entries, windows, submat.DistanceMatrix, 1)
	for _, w := range weights {
		assert.Equal(t, 1.0, w)
	}
}
