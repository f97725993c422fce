// Package hssp builds a homology-derived secondary-structure report from a
// completed multiple sequence alignment: per-row identity/similarity/gap
// statistics against a query row, per-column conservation weights, and a
// per-column residue distribution with entropy, insertion, and deletion
// counts.
package hssp

// Options configures the HSSP report builder. cmd/hsspbuild sets Threshold,
// MaxHits, MinSeqLength, MatrixName and Workers from its command-line flags;
// the remaining fields keep their DefaultOptions values there.
type Options struct {
	// Threshold is added to the length-dependent identity curve used to
	// decide whether a row is homologous enough to report.
	Threshold float64

	// MaxHits caps the number of rows kept after sorting; 0 means
	// unlimited.
	MaxHits uint32

	// MinSeqLength drops candidate rows shorter than this many residues
	// before threshold filtering.
	MinSeqLength uint32

	// IgnorePositions is carried with the rest of the pipeline's options;
	// the HSSP builder does not read it, and conservation weighting never
	// consults fixed-position vectors.
	IgnorePositions bool

	// MultiThreaded enables the parallel pair-enumeration queue behind
	// conservation weighting; false runs it on a single goroutine.
	MultiThreaded bool

	// MatrixName names the substitution matrix family of the profile
	// aligner upstream of this package; Build only checks that the family
	// exists. Identity/similarity/conservation scoring always uses the fixed
	// GONNET250 distance matrix, independent of this choice.
	MatrixName string

	// GapOpen, GapExtend are the base affine gap costs handed to the
	// profile aligner upstream of this package; HSSP reporting itself
	// does not apply them, but Options carries the whole pipeline's
	// knobs in one bag per the external interface contract.
	GapOpen   float64
	GapExtend float64

	// Magic is the profile aligner's gap-open rescaling constant, carried
	// through for the same reason as GapOpen/GapExtend.
	Magic float64

	// Workers bounds the conservation queue's worker count. 0 selects a
	// single worker, matching "falls back to 1 on request."
	Workers int
}

// DefaultOptions returns the report builder's defaults.
func DefaultOptions() Options {
	return Options{
		Threshold:       0.05,
		MaxHits:         0,
		MinSeqLength:    0,
		MatrixName:      "GONNET",
		MultiThreaded:   true,
		GapOpen:         10,
		GapExtend:       0.2,
		Magic:           0.05,
		Workers:         1,
	}
}
