// Package submat provides distance-parameterized amino-acid substitution
// matrices: a 20x20 signed score table plus its non-negative-shifted
// companion, grouped into four-tier families selected by evolutionary
// distance.
package submat

import (
	"github.com/csander/hssp/internal/mserr"
	"github.com/csander/hssp/internal/residue"
)

// Matrix is a 20x20 substitution score table together with the summary
// statistics the profile aligner's gap-penalty rescaling needs.
type Matrix struct {
	scores          [residue.Count][residue.Count]int32
	MismatchAverage float64
	ScaleFactor     float64
}

// Score returns mat(a, b). Out-of-range (invalid) codes score 0, matching
// the boundary convention used throughout the DP kernels.
func (m *Matrix) Score(a, b residue.Code) int32 {
	if !a.Valid() || !b.Valid() {
		return 0
	}
	return m.scores[a][b]
}

// positive returns a companion matrix with every entry shifted so the
// minimum score is zero. Required by the alignment kernels, which assume
// scores are non-negative.
func (m *Matrix) positive() *Matrix {
	min := m.scores[0][0]
	for i := 0; i < residue.Count; i++ {
		for j := 0; j < residue.Count; j++ {
			if m.scores[i][j] < min {
				min = m.scores[i][j]
			}
		}
	}
	p := &Matrix{MismatchAverage: m.MismatchAverage, ScaleFactor: m.ScaleFactor}
	for i := 0; i < residue.Count; i++ {
		for j := 0; j < residue.Count; j++ {
			p.scores[i][j] = m.scores[i][j] - min
		}
	}
	return p
}

// mismatchAverage returns the magnitude (a positive number) of the mean of
// all negative entries, mas.cpp's definition of a matrix's
// "mismatch_average"; 0 when no entry is negative.
func mismatchAverage(scores [residue.Count][residue.Count]int32) float64 {
	var sum float64
	var n int
	for i := 0; i < residue.Count; i++ {
		for j := 0; j < residue.Count; j++ {
			if scores[i][j] < 0 {
				sum += float64(scores[i][j])
				n++
			}
		}
	}
	if n == 0 {
		return 0
	}
	return -sum / float64(n)
}

// Family holds four matrices ordered from most divergent (tier 0) to most
// similar (tier 3), selected by three descending distance cutoffs.
type Family struct {
	Name     string
	cutoff   [3]float64
	signed   [4]*Matrix
	pos      [4]*Matrix
}

// At returns the matrix appropriate for the given evolutionary distance,
// walking the cutoff array exactly as mas.cpp's substitution_matrix_family
// operator() does: a large distance (>= cutoff[0]) selects the most
// divergent tier; a small distance (< cutoff[2]) selects the most similar.
func (f *Family) At(distance float64, positive bool) *Matrix {
	ix := 0
	for ix < 3 && distance < f.cutoff[ix] {
		ix++
	}
	if positive {
		return f.pos[ix]
	}
	return f.signed[ix]
}

// NewFamily builds a named substitution-matrix family from the internal
// registry. Unknown names are a ResourceNotFound failure.
func NewFamily(name string) (*Family, error) {
	build, ok := registry[name]
	if !ok {
		return nil, &mserr.ResourceNotFound{Resource: name}
	}
	return build(), nil
}

var registry = map[string]func() *Family{
	"GONNET": newGonnetFamily,
	"BLOSUM": newBlosumFamily,
	"PAM":    newPAMFamily,
}

// DistanceMatrix is the fixed matrix used by the pairwise distance kernel in
// the role of mas.cpp's GONNET250: the generated base table of data.go at
// scale 1.0, not the published GONNET250 values.
var DistanceMatrix = buildScaledMatrix(scoreTableGonnet, 1.0, 0.4)
