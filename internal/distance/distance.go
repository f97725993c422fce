// Package distance implements the pairwise evolutionary distance kernel:
// a Gotoh three-matrix affine-gap global alignment under GONNET250, reduced
// to 1 - identity_fraction without ever materializing a traceback. Position
// anchors, when both entries carry one, split the problem into independent
// sub-rectangles so the DP never has to search across a forced pairing.
package distance

import (
	"github.com/csander/hssp/internal/residue"
	"github.com/csander/hssp/internal/seqset"
	"github.com/csander/hssp/internal/submat"
)

// Open and Wdn are mas.cpp's fixed gap costs for the distance kernel: the
// first residue of a gap costs Open, each further residue costs Wdn.
const (
	Open = 10.0
	Wdn  = 0.2
)

const negInf = -1e18

// Pair returns the estimated evolutionary distance between a and b:
// 1 - identicalPairs/max(|a|,|b|), from a global alignment under
// submat.DistanceMatrix. When both entries carry non-empty Positions, the
// alignment is restricted to the sub-rectangles bounded by matching anchors.
func Pair(a, b *seqset.Entry) float64 {
	denom := len(a.Residues)
	if len(b.Residues) > denom {
		denom = len(b.Residues)
	}
	if denom == 0 {
		return 0
	}

	anchors := commonAnchors(a, b)
	var identical int
	if len(anchors) == 0 {
		identical = align(a.Residues, b.Residues)
	} else {
		identical = alignAnchored(a.Residues, b.Residues, anchors)
	}
	return 1 - float64(identical)/float64(denom)
}

type anchor struct {
	i, j int // residue index in a, b
}

// commonAnchors walks both Positions vectors in step and returns the index
// pairs where they name the same nonzero value. Zeros are skipped; on a
// mismatch the side holding the strictly smaller position advances, so the
// anchors are strictly increasing in both sequences. Entries missing a
// Positions vector yield no anchors, which forces a single unrestricted
// global alignment.
func commonAnchors(a, b *seqset.Entry) []anchor {
	if len(a.Positions) == 0 || len(b.Positions) == 0 {
		return nil
	}
	var out []anchor
	for i, j := 0, 0; i < len(a.Positions) && j < len(b.Positions); {
		pa, pb := a.Positions[i], b.Positions[j]
		switch {
		case pa != 0 && pa == pb:
			out = append(out, anchor{i: i, j: j})
			i, j = i+1, j+1
		case pa == 0 || (pb != 0 && pa < pb):
			i++
		default:
			j++
		}
	}
	return out
}

// alignAnchored sums identity counts across the segments bounded by
// consecutive anchors, each aligned independently, plus the anchor column
// itself wherever the two anchored residues happen to share a letter (an
// anchor forces the DP to treat the column as diagonal; it does not by
// itself make the residues identical).
func alignAnchored(a, b []residue.Code, anchors []anchor) int {
	identical := 0
	prevI, prevJ := 0, 0
	for _, anc := range anchors {
		identical += align(a[prevI:anc.i], b[prevJ:anc.j])
		if a[anc.i] == b[anc.j] {
			identical++
		}
		prevI, prevJ = anc.i+1, anc.j+1
	}
	identical += align(a[prevI:], b[prevJ:])
	return identical
}

// align runs the Gotoh three-matrix DP over a and b and returns the identity
// count of the best-scoring alignment. As in mas.cpp's calculateDistance, a
// gap opens from the current cell's own diagonal candidate M rather than
// from the B matrix one row or column back, and B(x,y) draws its Ix/Iy
// predecessors from directly above and directly to the left rather than
// from the diagonal; the best score is taken across the entire trailing
// edge of the matrix instead of being forced to the bottom-right corner, so
// a run of unmatched residues at either sequence's end is not charged at
// all. The path itself is never stored: a
// parallel int matrix tracks, for each cell, the identity count of
// whichever candidate fed its winning score.
func align(a, b []residue.Code) int {
	m, n := len(a), len(b)
	if m == 0 || n == 0 {
		return 0
	}

	mat := submat.DistanceMatrix

	bPrev := make([]float64, n)
	ixPrev := make([]float64, n)
	iyPrev := make([]float64, n)
	idPrev := make([]int, n)

	bCur := make([]float64, n)
	ixCur := make([]float64, n)
	iyCur := make([]float64, n)
	idCur := make([]int, n)

	bestScore := negInf
	bestID := 0

	for x := 0; x < m; x++ {
		for y := 0; y < n; y++ {
			var ix1, iy1 float64
			if x > 0 {
				ix1 = ixPrev[y]
			}
			if y > 0 {
				iy1 = iyCur[y-1]
			}

			mScore := float64(mat.Score(a[x], b[y]))
			if x > 0 && y > 0 {
				mScore += bPrev[y-1]
			}

			match := 0
			if a[x] == b[y] {
				match = 1
			}

			var s float64
			var id int
			switch {
			case mScore >= ix1 && mScore >= iy1:
				s, id = mScore, match
				if x > 0 && y > 0 {
					id += idPrev[y-1]
				}
			case ix1 >= iy1:
				s, id = ix1, match
				if x > 0 {
					id += idPrev[y]
				}
			default:
				s, id = iy1, match
				if y > 0 {
					id += idCur[y-1]
				}
			}
			bCur[y] = s
			idCur[y] = id

			ixCur[y] = maxf(mScore-Open, ix1-Wdn)
			iyCur[y] = maxf(mScore-Open, iy1-Wdn)

			if (x == m-1 || y == n-1) && s > bestScore {
				bestScore, bestID = s, id
			}
		}

		bPrev, bCur = bCur, bPrev
		ixPrev, ixCur = ixCur, ixPrev
		iyPrev, iyCur = iyCur, iyPrev
		idPrev, idCur = idCur, idPrev
	}

	return bestID
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
