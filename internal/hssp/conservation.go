package hssp

import (
	"sync"

	"github.com/csander/hssp/internal/residue"
	"github.com/csander/hssp/internal/seqset"
	"github.com/csander/hssp/internal/submat"
	"github.com/csander/hssp/internal/workqueue"
)

// window is a row's aligned extent as a half-open range of columns. The
// query's window is simply its full length; a subject row's window is its
// reduced Hit.Begin/End, the columns not gapped in both it and the query.
type window struct{ begin, end int }

// ColumnWeights computes the per-column conservation weight vector used by
// the residue-column profiler: weight[k] = sumvar[k]/sumdist[k] (1.0 when
// sumdist[k] is zero, i.e. no pair of rows at a nonzero distance from each
// other both carries a residue at that column).
//
// windows[i] must give row i's own aligned extent; rows with the pruned bit
// set are skipped entirely, matching the filtered-out view seqset.Entry
// exposes to this kernel. Pair enumeration is a worker-per-i task queue:
// each worker claims one i and scores every j > i against it, accumulating
// into a thread-local vector merged under a single mutex at the end.
func ColumnWeights(entries []*seqset.Entry, windows []window, mat *submat.Matrix, workers int) []float64 {
	ncols := entries[0].Len()
	sumvar := make([]float64, ncols)
	sumdist := make([]float64, ncols)
	var mu sync.Mutex

	pool := workqueue.New(workers)
	for i := 0; i < len(entries)-1; i++ {
		if entries[i].Pruned() {
			continue
		}
		i := i
		pool.Submit(func() {
			localVar := make([]float64, ncols)
			localDist := make([]float64, ncols)
			for j := i + 1; j < len(entries); j++ {
				if entries[j].Pruned() {
					continue
				}
				accumulatePair(entries[i], entries[j], windows[i], windows[j], mat, localVar, localDist)
			}
			mu.Lock()
			for k := 0; k < ncols; k++ {
				sumvar[k] += localVar[k]
				sumdist[k] += localDist[k]
			}
			mu.Unlock()
		})
	}
	pool.Close()

	weights := make([]float64, ncols)
	for k := 0; k < ncols; k++ {
		if sumdist[k] == 0 {
			weights[k] = 1.0
		} else {
			weights[k] = sumvar[k] / sumdist[k]
		}
	}
	return weights
}

// accumulatePair scores one (i, j) pair over their overlap window, adding
// distance-weighted similarity to sumvar/sumdist at every column where both
// rows carry a residue.
func accumulatePair(a, b *seqset.Entry, wa, wb window, mat *submat.Matrix, sumvar, sumdist []float64) {
	lo, hi := wa.begin, wa.end
	if wb.begin > lo {
		lo = wb.begin
	}
	if wb.end < hi {
		hi = wb.end
	}
	if lo >= hi {
		return
	}

	len_, agr := 0, 0
	type col struct {
		k   int
		sim float64
	}
	present := make([]col, 0, hi-lo)
	for k := lo; k < hi; k++ {
		ra, rb := a.Residues[k], b.Residues[k]
		if ra == residue.Gap || rb == residue.Gap {
			continue
		}
		len_++
		if ra == rb {
			agr++
		}
		present = append(present, col{k: k, sim: float64(mat.Score(ra, rb))})
	}
	if len_ == 0 {
		return
	}

	distance := 1 - float64(agr)/float64(len_)
	for _, c := range present {
		sumvar[c.k] += distance * c.sim
		sumdist[c.k] += distance * 1.5
	}
}
