package submat

import (
	"math"

	"github.com/csander/hssp/internal/residue"
)

// class groups residues by broad physicochemical character. The matrix
// generator below uses it to derive a plausible 20x20 score table rather
// than transcribing the real bundled BLOSUM/GONNET resource files, which
// are not part of this module's retrieved corpus (see DESIGN.md).
type class int

const (
	hydrophobic class = iota
	aromatic
	polar
	positive
	negative
	special
)

var classOf = map[byte]class{
	'A': hydrophobic, 'C': hydrophobic, 'I': hydrophobic, 'L': hydrophobic,
	'M': hydrophobic, 'V': hydrophobic,
	'F': aromatic, 'W': aromatic, 'Y': aromatic,
	'N': polar, 'Q': polar, 'S': polar, 'T': polar,
	'H': positive, 'K': positive, 'R': positive,
	'D': negative, 'E': negative,
	'G': special, 'P': special,
}

// diagBase is the identity score for each residue before tier scaling: rare,
// structurally constrained residues (W, C, Y) score higher than common,
// flexible ones (A, G, S).
var diagBase = map[byte]int32{
	'A': 4, 'C': 11, 'D': 6, 'E': 5, 'F': 7,
	'G': 6, 'H': 8, 'I': 4, 'K': 5, 'L': 4,
	'M': 6, 'N': 6, 'P': 7, 'Q': 5, 'R': 5,
	'S': 4, 'T': 4, 'V': 4, 'W': 14, 'Y': 7,
}

func classPairScore(a, b class) int32 {
	if a == b {
		switch a {
		case aromatic:
			return 3
		case positive, negative:
			return 2
		default:
			return 1
		}
	}
	switch {
	case (a == negative && b == positive) || (a == positive && b == negative):
		return -2
	case a == negative || b == negative:
		return -1
	case a == hydrophobic && b == aromatic, a == aromatic && b == hydrophobic:
		return 1
	default:
		return -1
	}
}

// baseScore is the un-scaled score for a residue pair in the canonical
// alphabet order.
func baseScore(a, b residue.Code) int32 {
	la, lb := residue.Letter(a), residue.Letter(b)
	if la == lb {
		return diagBase[la]
	}
	return classPairScore(classOf[la], classOf[lb])
}

// scoreTableGonnet is the base (tier-0, unscaled) score table shared by the
// GONNET-flavoured family and the fixed distance-kernel matrix.
var scoreTableGonnet = buildBaseTable()

func buildBaseTable() [residue.Count][residue.Count]int32 {
	var t [residue.Count][residue.Count]int32
	for i := 0; i < residue.Count; i++ {
		for j := 0; j < residue.Count; j++ {
			t[i][j] = baseScore(residue.Code(i), residue.Code(j))
		}
	}
	return t
}

// buildScaledMatrix scales a base table by `scale` (rounding to nearest
// integer) and fills in the mismatch-average and scale-factor companions
// used by the profile aligner's gap-penalty rescaling.
func buildScaledMatrix(base [residue.Count][residue.Count]int32, scale, scaleFactor float64) *Matrix {
	m := &Matrix{ScaleFactor: scaleFactor}
	for i := 0; i < residue.Count; i++ {
		for j := 0; j < residue.Count; j++ {
			m.scores[i][j] = int32(math.Round(float64(base[i][j]) * scale))
		}
	}
	m.MismatchAverage = mismatchAverage(m.scores)
	return m
}

// buildFamily constructs a four-tier family from a base table, tier scale
// factors (most divergent to most similar) and descending distance cutoffs.
func buildFamily(name string, base [residue.Count][residue.Count]int32, tierScale [4]float64, scaleFactors [4]float64, cutoff [3]float64) *Family {
	f := &Family{Name: name, cutoff: cutoff}
	for i := 0; i < 4; i++ {
		m := buildScaledMatrix(base, tierScale[i], scaleFactors[i])
		f.signed[i] = m
		f.pos[i] = m.positive()
	}
	return f
}

func newGonnetFamily() *Family {
	return buildFamily("GONNET", scoreTableGonnet,
		[4]float64{0.6, 0.8, 1.0, 1.3},
		[4]float64{0.6, 0.5, 0.4, 0.3},
		[3]float64{0.55, 0.4, 0.25})
}

func newBlosumFamily() *Family {
	return buildFamily("BLOSUM", scoreTableGonnet,
		[4]float64{0.5, 0.75, 1.05, 1.4},
		[4]float64{0.55, 0.45, 0.35, 0.25},
		[3]float64{0.5, 0.35, 0.2})
}

func newPAMFamily() *Family {
	return buildFamily("PAM", scoreTableGonnet,
		[4]float64{0.45, 0.7, 0.95, 1.25},
		[4]float64{0.65, 0.5, 0.4, 0.3},
		[3]float64{0.6, 0.45, 0.3})
}
