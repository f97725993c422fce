package hssp

import (
	"sort"

	"github.com/csander/hssp/internal/mserr"
	"github.com/csander/hssp/internal/seqset"
	"github.com/csander/hssp/internal/submat"
)

// Report is the fully reduced result the report writer consumes: the query
// row, the surviving hits in final report order, and one ResidueInfo per
// non-gap query column plus any chain-break placeholder rows.
type Report struct {
	Entries []*seqset.Entry
	Query   int
	Hits    []*Hit
	Columns []*ResidueInfo
}

// Build runs the HSSP reduction pipeline over a completed MSA whose first
// row is the query: row reduction and threshold filtering (§4.7),
// conservation weighting (§4.8), and residue-column profiling (§4.9).
func Build(entries []*seqset.Entry, meta []ResidueMeta, opts Options) (*Report, error) {
	if len(entries) < 1 {
		return nil, &mserr.TooFewSequences{Count: len(entries)}
	}
	queryIdx := 0

	if _, err := submat.NewFamily(opts.MatrixName); err != nil {
		return nil, err
	}
	// Identity/similarity and conservation scoring both use the fixed
	// GONNET250 distance matrix, independent of MatrixName (that name
	// selects the profile aligner's tiered family upstream of this
	// package).
	mat := submat.DistanceMatrix

	hits := make([]*Hit, 0, len(entries)-1)
	for i := 1; i < len(entries); i++ {
		if entries[i].Len() < int(opts.MinSeqLength) {
			entries[i].Prune()
			continue
		}
		h, err := ReduceRow(entries, queryIdx, i, mat)
		if err != nil {
			return nil, err
		}
		if !h.Passes(opts.Threshold) {
			entries[i].Prune()
			continue
		}
		hits = append(hits, h)
	}

	if len(hits) == 0 {
		return nil, &mserr.NoSurvivingRows{Threshold: opts.Threshold}
	}

	sortAndNumber(hits)
	if opts.MaxHits > 0 && uint32(len(hits)) > opts.MaxHits {
		for _, dropped := range hits[opts.MaxHits:] {
			entries[dropped.RowIndex].Prune()
		}
		hits = hits[:opts.MaxHits]
	}

	workers := opts.Workers
	if workers < 1 || !opts.MultiThreaded {
		workers = 1
	}
	windows := rowWindows(entries, queryIdx, hits)
	weights := ColumnWeights(entries, windows, mat, workers)

	columns := BuildResidueInfo(entries, queryIdx, hits, meta, weights)

	return &Report{Entries: entries, Query: queryIdx, Hits: hits, Columns: columns}, nil
}

// sortAndNumber orders hits by identity descending, alignment length as a
// tiebreaker, and assigns SerialNo in that final order.
func sortAndNumber(hits []*Hit) {
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Identity != hits[j].Identity {
			return hits[i].Identity > hits[j].Identity
		}
		return hits[i].Length > hits[j].Length
	})
	for i, h := range hits {
		h.SerialNo = i + 1
	}
}

// rowWindows gives every entry (query included) its own aligned extent:
// the query's is its full width, since it is never threshold-filtered;
// every hit's is the pairwise Begin/End its row reduction already computed.
func rowWindows(entries []*seqset.Entry, queryIdx int, hits []*Hit) []window {
	windows := make([]window, len(entries))
	windows[queryIdx] = window{begin: 0, end: entries[queryIdx].Len()}
	for _, h := range hits {
		windows[h.RowIndex] = window{begin: h.Begin, end: h.End}
	}
	return windows
}
