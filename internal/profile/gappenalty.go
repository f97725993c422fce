package profile

import (
	"math"

	"github.com/csander/hssp/internal/residue"
	"github.com/csander/hssp/internal/seqset"
)

// clustalPenaltyByLetter is Clustal's per-residue gap-open multiplier,
// shifted by -0.2 as described in the NAR article it was lifted from. The
// historical table is ordered A,R,N,D,C,Q,E,G,H,I,L,K,M,F,P,S,T,W,Y,V; keyed
// by letter here rather than by residue.Code, which follows alphabetical
// order instead.
var clustalPenaltyByLetter = map[byte]float64{
	'A': 1.13 - 0.2, 'R': 0.72 - 0.2, 'N': 0.63 - 0.2, 'D': 0.96 - 0.2,
	'C': 1.13 - 0.2, 'Q': 1.07 - 0.2, 'E': 1.31 - 0.2, 'G': 0.61 - 0.2,
	'H': 1.00 - 0.2, 'I': 1.32 - 0.2, 'L': 1.21 - 0.2, 'K': 0.96 - 0.2,
	'M': 1.29 - 0.2, 'F': 1.20 - 0.2, 'P': 0.74 - 0.2, 'S': 0.76 - 0.2,
	'T': 0.89 - 0.2, 'W': 1.23 - 0.2, 'Y': 1.00 - 0.2, 'V': 1.25 - 0.2,
}

// secondaryStructurePenalty maps a DSSP secondary-structure letter to its
// gap-open multiplier; unclassified columns (loop, coil, or simply absent
// assignment) fall back to 1.0.
func secondaryStructurePenalty(ss byte) float64 {
	switch ss {
	case 'H', 'G', 'I':
		return 3.0
	case 'B':
		return 2.0
	case 'E':
		return 1.5
	default:
		return 1.0
	}
}

func isHydrophilicStretchResidue(c residue.Code) bool {
	return c.IsHydrophilic()
}

// adjustGapPenalties rescales per-column gap-open/extend costs for one
// profile side, mirroring mas.cpp's adjust_gp: columns that already carry a
// gap in some member get a cheaper open cost, isolated gaps near a mostly
// ungapped stretch get a more expensive one, long hydrophilic runs are
// gap-friendly, and secondary structure or residue identity further bias
// the remaining columns.
func adjustGapPenalties(gop, gep []float64, group []*seqset.Entry) {
	n := len(gop)
	gaps := make([]int, n)
	hydrophilicStretch := make([]bool, n)
	specificPenalty := make([]float64, n)

	for _, e := range group {
		for ix := 0; ix < n; ix++ {
			r := e.Residues[ix]
			if r == residue.Gap {
				gaps[ix]++
			}
			if ix < len(e.SecStruct) && e.SecStruct[ix] != 0 {
				specificPenalty[ix] += secondaryStructurePenalty(e.SecStruct[ix])
			} else if r.Valid() {
				specificPenalty[ix] += clustalPenaltyByLetter[residue.Letter(r)]
			} else {
				specificPenalty[ix] += 1.0
			}
		}

		si := 0
		for i := 0; i <= n; i++ {
			if i == n || !isHydrophilicStretchResidue(e.Residues[i]) {
				if i >= si+5 {
					for j := si; j < i; j++ {
						hydrophilicStretch[j] = true
					}
				}
				si = i + 1
			}
		}
	}

	groupSize := float64(len(group))
	for ix := 0; ix < n; ix++ {
		switch {
		case gaps[ix] > 0:
			gop[ix] *= 0.3 * (groupSize - float64(gaps[ix])) / groupSize
			gep[ix] /= 2
		default:
			nearGap, nearest := false, 8
			for d := 1; d < 8; d++ {
				if (ix+d < n && gaps[ix+d] > 0) || (ix-d >= 0 && gaps[ix-d] > 0) {
					nearGap, nearest = true, d
					break
				}
			}
			switch {
			case nearGap:
				gop[ix] *= (2 + float64(8-nearest)*2) / 8
			case hydrophilicStretch[ix]:
				gop[ix] /= 3
			default:
				gop[ix] *= specificPenalty[ix] / groupSize
			}
		}
	}
}

// scaleGapOpen derives the base per-column gap-open cost from the
// substitution matrix actually selected for this merge, rescaled for the
// logarithmic length-ratio term mas.cpp calls "magic".
func scaleGapOpen(gop float64, dimX, dimY int, mismatchAverage, scaleFactor, magic float64) float64 {
	minLen, maxLen := float64(dimX), float64(dimY)
	if minLen > maxLen {
		minLen, maxLen = maxLen, minLen
	}
	logmin := 1.0 / math.Log10(minLen)
	logdiff := 1.0 + 0.5*math.Log10(minLen/maxLen)
	return (gop / (logdiff * logmin)) * math.Abs(mismatchAverage) * scaleFactor * magic
}
