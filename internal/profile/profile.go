// Package profile implements profile-versus-profile alignment: the
// bottom-up merge step of progressive alignment, scoring whole columns of
// weighted entries against each other under position-specific, secondary
// structure-aware affine gap penalties.
package profile

import (
	"math"

	"github.com/csander/hssp/internal/residue"
	"github.com/csander/hssp/internal/seqset"
	"github.com/csander/hssp/internal/submat"
)

const negInf = -1e18

// direction is a traceback cell: diagonal (match/mismatch column), a gap
// opened in the b-side profile, or a gap opened in the a-side profile.
type direction int8

const (
	dirDiag direction = 0
	dirB    direction = 1  // gap in b: consume a, b stays put
	dirA    direction = -1 // gap in a: consume b, a stays put
)

// Score sums mat(ra, rb) over every cross pair of non-gap members of a and
// b at columns x and y, weighted by each entry's accumulated tree weight,
// and divides by len(a)*len(b): gap members add nothing to the sum but still
// count in the divisor, matching mas.cpp's score().
func Score(a, b []*seqset.Entry, x, y int, mat *submat.Matrix) float64 {
	var sum float64
	for _, ea := range a {
		ra := ea.Residues[x]
		if ra == residue.Gap {
			continue
		}
		for _, eb := range b {
			rb := eb.Residues[y]
			if rb == residue.Gap {
				continue
			}
			sum += ea.Weight * eb.Weight * float64(mat.Score(ra, rb))
		}
	}
	return sum / float64(len(a)*len(b))
}

// Align merges profile groups a and b into one, using dLeft+dRight (the
// branch lengths of the guide tree node being resolved) to pick a
// substitution matrix tier, and gop/gep/magic as the base affine gap costs
// before position-specific rescaling. ignorePositions forces a full
// rectangle DP even when every member's first entry carries Positions.
func Align(dLeft, dRight float64, a, b []*seqset.Entry, family *submat.Family, gop, gep, magic float64, ignorePositions bool) []*seqset.Entry {
	fa, fb := a[0], b[0]
	dimX, dimY := fa.Len(), fb.Len()

	mat := family.At(absf(dLeft+dRight), true)

	gop = scaleGapOpen(gop, dimX, dimY, mat.MismatchAverage, mat.ScaleFactor, magic)

	avgWeightA := avgWeight(a)
	avgWeightB := avgWeight(b)

	gopA := fill(dimX, gop*avgWeightA)
	gepA := fill(dimX, gep*(1+log10Ratio(dimX, dimY))*avgWeightA)
	adjustGapPenalties(gopA, gepA, a)

	gopB := fill(dimY, gop*avgWeightB)
	gepB := fill(dimY, gep*(1+log10Ratio(dimY, dimX))*avgWeightB)
	adjustGapPenalties(gopB, gepB, b)

	var anchors []segment
	if !ignorePositions && len(fa.Positions) > 0 && len(fb.Positions) > 0 {
		anchors = anchorSegments(fa.Positions, fb.Positions)
	}

	tb := newTraceMatrix(dimX, dimY)

	if len(anchors) == 0 {
		runSegment(tb, a, b, mat, gopA, gepA, gopB, gepB, 0, dimX, 0, dimY)
	} else {
		px, py := 0, 0
		for _, seg := range anchors {
			runSegment(tb, a, b, mat, gopA, gepA, gopB, gepB, px, seg.x, py, seg.y)
			tb.set(seg.x, seg.y, dirDiag)
			px, py = seg.x+1, seg.y+1
		}
		runSegment(tb, a, b, mat, gopA, gepA, gopB, gepB, px, dimX, py, dimY)
	}

	traceback(tb, a, b, dimX, dimY)

	merged := make([]*seqset.Entry, 0, len(a)+len(b))
	merged = append(merged, a...)
	merged = append(merged, b...)

	if !ignorePositions && len(fa.Positions) > 0 {
		mergePositions(merged[0], fa, fb)
	}

	return merged
}

type segment struct{ x, y int }

// anchorSegments finds the position pairs both profiles' lead entries
// agree on (same nonzero value, strictly increasing in both), the forced
// diagonal breakpoints that split the DP into independent sub-rectangles.
func anchorSegments(pa, pb []uint16) []segment {
	byValue := make(map[uint16]int, len(pb))
	for j, v := range pb {
		if v != 0 {
			byValue[v] = j
		}
	}
	var out []segment
	lastX, lastY := -1, -1
	for i, v := range pa {
		if v == 0 {
			continue
		}
		j, ok := byValue[v]
		if !ok || i <= lastX || j <= lastY {
			continue
		}
		out = append(out, segment{x: i, y: j})
		lastX, lastY = i, j
	}
	return out
}

// traceMatrix stores a direction byte per DP cell, flattened row-major.
type traceMatrix struct {
	dimX, dimY int
	cells      []direction
}

func newTraceMatrix(dimX, dimY int) *traceMatrix {
	return &traceMatrix{dimX: dimX, dimY: dimY, cells: make([]direction, dimX*dimY)}
}

func (t *traceMatrix) set(x, y int, d direction) { t.cells[x*t.dimY+y] = d }
func (t *traceMatrix) get(x, y int) direction     { return t.cells[x*t.dimY+y] }

// runSegment fills the DP rectangle [startX,endX) x [startY,endY), writing
// traceback directions into tb. Each segment is independent: no matrix
// carries state across a segment boundary, matching the windowed DP
// mas.cpp's align() performs between fixed-position anchors.
func runSegment(tb *traceMatrix, a, b []*seqset.Entry, mat *submat.Matrix, gopA, gepA, gopB, gepB []float64, startX, endX, startY, endY int) {
	if startX >= endX || startY >= endY {
		return
	}
	w, h := endX-startX, endY-startY

	bMat := make([]float64, w*h)
	ixMat := make([]float64, w*h)
	iyMat := make([]float64, w*h)
	idx := func(i, j int) int { return i*h + j }

	for i := 0; i < w; i++ {
		for j := 0; j < h; j++ {
			x, y := startX+i, startY+j

			var ix1, iy1 float64
			if i > 0 {
				ix1 = ixMat[idx(i-1, j)]
			}
			if j > 0 {
				iy1 = iyMat[idx(i, j-1)]
			}

			m := Score(a, b, x, y, mat)
			if i > 0 && j > 0 {
				m += bMat[idx(i-1, j-1)]
			}

			var s float64
			var dir direction
			switch {
			case m >= ix1 && m >= iy1:
				s, dir = m, dirDiag
			case ix1 >= iy1:
				s, dir = ix1, dirB
			default:
				s, dir = iy1, dirA
			}
			bMat[idx(i, j)] = s
			tb.set(x, y, dir)

			openA := 0.0
			if x < tb.dimX-1 {
				openA = gopA[x]
			}
			openB := 0.0
			if y < tb.dimY-1 {
				openB = gopB[y]
			}
			ixMat[idx(i, j)] = max(m-openA, ix1-gepA[x])
			iyMat[idx(i, j)] = max(m-openB, iy1-gepB[y])
		}
	}
}

// traceback walks tb from the bottom-right corner, inserting gaps into
// whichever profile side did not advance at each step, then pads any
// unreached leading rows/columns with start gaps.
func traceback(tb *traceMatrix, a, b []*seqset.Entry, dimX, dimY int) {
	x, y := dimX-1, dimY-1
	for x >= 0 && y >= 0 {
		switch tb.get(x, y) {
		case dirA:
			insertGapAll(a, x+1)
			y--
		case dirB:
			insertGapAll(b, y+1)
			x--
		default:
			x--
			y--
		}
	}
	for x >= 0 {
		insertGapAll(b, y+1)
		x--
	}
	for y >= 0 {
		insertGapAll(a, x+1)
		y--
	}
}

func insertGapAll(group []*seqset.Entry, pos int) {
	for _, e := range group {
		e.InsertGap(pos)
	}
}

// mergePositions fills the merged profile's leading entry with the
// column-wise max of the two input position vectors, following mas.cpp's
// max_pdb_nr rule: a column anchored in either side stays anchored.
func mergePositions(lead, fa, fb *seqset.Entry) {
	// lead may be fa itself, so read both inputs before replacing its vector.
	pa, pb := fa.Positions, fb.Positions
	lead.Positions = make([]uint16, lead.Len())
	for i := range lead.Positions {
		var va, vb uint16
		if i < len(pa) {
			va = pa[i]
		}
		if i < len(pb) {
			vb = pb[i]
		}
		if va > vb {
			lead.Positions[i] = va
		} else {
			lead.Positions[i] = vb
		}
	}
}

func avgWeight(group []*seqset.Entry) float64 {
	var sum float64
	for _, e := range group {
		sum += e.Weight
	}
	return sum / float64(len(group))
}

func fill(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// log10Ratio is mas.cpp's length-ratio adjustment to the initial gap extend
// cost: log10(dimX/dimY).
func log10Ratio(dimX, dimY int) float64 {
	return math.Log10(float64(dimX) / float64(dimY))
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
