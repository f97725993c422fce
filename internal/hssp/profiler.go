package hssp

import (
	"math"

	"github.com/csander/hssp/internal/residue"
	"github.com/csander/hssp/internal/seqset"
)

// ResidueMeta is the per-residue metadata the core consumes from external
// collaborators (DSSP extraction, PDB numbering) for every query residue,
// in query sequence order (gaps in the query carry no metadata).
type ResidueMeta struct {
	Chain byte
	PDBNr int
	// DSSP is the 34-character descriptor line produced by the external
	// DSSP step; copied through to the report unexamined.
	DSSP string
}

// ResidueInfo is one column of the query: its residue distribution across
// every retained hit, occupancy/deletion/insertion counts, entropy, and
// conservation weight. A chain-break placeholder row (Letter == 0) is
// inserted ahead of any residue whose PDB numbering jumps by more than one
// from its predecessor; it carries no distribution or statistics.
type ResidueInfo struct {
	Letter byte // 0 denotes a chain-break placeholder row
	Chain  byte
	PDBNr  int
	SeqPos int // column index within the MSA

	DSSP string

	Dist    [residue.Count]int
	NOcc    int
	NDel    int
	NIns    int
	Entropy float64
	Weight  float64
}

// BuildResidueInfo produces one ResidueInfo per non-gap query column (plus a
// chain-break placeholder wherever meta's PDB numbering jumps), counting
// occupancy, deletions, and insertions across hits, and copying in the
// conservation weight already computed for that column.
//
// meta must have one entry per non-gap query residue, in sequence order.
// hits may be in any order; entries[h.RowIndex] addresses each hit's row.
func BuildResidueInfo(entries []*seqset.Entry, queryIdx int, hits []*Hit, meta []ResidueMeta, weights []float64) []*ResidueInfo {
	q := entries[queryIdx]
	var out []*ResidueInfo

	metaIdx := 0
	for k := 0; k < q.Len(); k++ {
		qc := q.Residues[k]
		if qc == residue.Gap {
			continue
		}

		if metaIdx > 0 && metaIdx < len(meta) && meta[metaIdx].PDBNr > meta[metaIdx-1].PDBNr+1 {
			out = append(out, &ResidueInfo{})
		}

		info := &ResidueInfo{
			Letter: residue.Letter(qc),
			SeqPos: k,
			Weight: weights[k],
		}
		if metaIdx < len(meta) {
			info.Chain = meta[metaIdx].Chain
			info.PDBNr = meta[metaIdx].PDBNr
			info.DSSP = meta[metaIdx].DSSP
		}
		metaIdx++

		info.Dist[qc]++
		info.NOcc = 1

		for _, h := range hits {
			row := entries[h.RowIndex]
			rc := row.Residues[k]
			if rc.Valid() {
				info.NOcc++
				info.Dist[rc]++
			}
			if k > h.Begin && k < h.End && rc == residue.Gap {
				info.NDel++
			}
			if k+1 < q.Len() && q.Residues[k+1] == residue.Gap && isLowercaseInsertion(h, k+1) {
				info.NIns++
			}
		}

		info.Entropy = entropy(info.Dist, info.NOcc)
		for a := 0; a < residue.Count; a++ {
			info.Dist[a] = int(math.Round(100 * float64(info.Dist[a]) / float64(info.NOcc)))
		}

		out = append(out, info)
	}
	return out
}

// isLowercaseInsertion reports whether hit h's display row marks column k
// as a lowercase inserted residue (i.e. the column falls inside an
// insertion run in that hit's rendered alignment row).
func isLowercaseInsertion(h *Hit, k int) bool {
	if k >= len(h.Display) {
		return false
	}
	c := h.Display[k]
	return c >= 'a' && c <= 'y'
}

// entropy computes Shannon entropy in nats over the non-zero frequencies in
// dist, treated as counts out of total.
func entropy(dist [residue.Count]int, total int) float64 {
	if total <= 0 {
		return 0
	}
	var h float64
	for _, c := range dist {
		if c == 0 {
			continue
		}
		p := float64(c) / float64(total)
		h -= p * math.Log(p)
	}
	return h
}
