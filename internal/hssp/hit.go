package hssp

import (
	"fmt"
	"math"

	"github.com/csander/hssp/internal/residue"
	"github.com/csander/hssp/internal/seqset"
	"github.com/csander/hssp/internal/submat"
)

// Insertion records a run of query-gap columns flanked by subject residues:
// a stretch of the subject sequence that has no counterpart in the query.
type Insertion struct {
	// IPos is the query residue number immediately preceding the run.
	IPos int
	// JPos is the subject residue number of the first inserted residue.
	JPos int
	// Seq is the preceding subject character, the inserted run, and the
	// following subject character, all lowercased.
	Seq string
}

// Hit is one non-query MSA row retained after homology filtering.
type Hit struct {
	RowIndex   int
	QueryIndex int
	Chain      byte

	// SerialNo is assigned by sortAndNumber once the final hit order is
	// known; zero until then.
	SerialNo int

	// ResidueOffset shifts this hit's subject residue numbers when
	// multiple chains are concatenated into one report.
	ResidueOffset int

	Identity   float64
	Similarity float64

	// Begin, End bound the half-open window of columns considered aligned
	// between this row and the query: the first and one past the last
	// column that is not gapped in both rows.
	Begin, End int

	// QueryFirst, QueryLast are the query's own 1-based residue numbers at
	// the first and last column where both rows carry a real residue
	// (IFIR/ILAS); a leading or trailing run where only one side has a
	// residue does not move them. SubjectFirst, SubjectLast are the same,
	// numbered along the subject's own residue sequence (JFIR/JLAS once
	// ResidueOffset is added). Both are 0 if the two rows never share a
	// real-residue column.
	QueryFirst, QueryLast     int
	SubjectFirst, SubjectLast int

	// Length is the count of non-(shared-gap) columns strictly between
	// Begin and End, inclusive — spec's fixed rule for what a length of
	// an alignment window with trailing gap columns should count.
	Length     int
	Identical  int
	Similar    int
	GapN       int
	Gaps       int
	Insertions []Insertion

	// Display is the subject row's text as it appears in the alignment
	// block: spaces outside [Begin, End), '.' for internal gaps.
	Display []byte
}

// columnKind classifies one MSA column for a query/subject pair.
type columnKind int

const (
	kindBothGap columnKind = iota
	kindBoth
	kindQueryGapOnly // insertion candidate: subject has a residue the query lacks
	kindSubjectGapOnly
)

func classify(q, s residue.Code) columnKind {
	qg, sg := q == residue.Gap, s == residue.Gap
	switch {
	case qg && sg:
		return kindBothGap
	case qg:
		return kindQueryGapOnly
	case sg:
		return kindSubjectGapOnly
	default:
		return kindBoth
	}
}

// ReduceRow walks the MSA columns of query against subject and produces the
// row statistics a homology report needs. An invalid residue code (one that
// is neither Gap nor a valid alphabet index) is an InternalConsistency bug:
// every entry should have been validated at decode time.
func ReduceRow(entries []*seqset.Entry, queryIdx, rowIdx int, mat *submat.Matrix) (*Hit, error) {
	q, s := entries[queryIdx], entries[rowIdx]
	if q.Len() != s.Len() {
		return nil, fmt.Errorf("hssp: query and row %d have different lengths (%d vs %d)", rowIdx, q.Len(), s.Len())
	}
	n := q.Len()

	h := &Hit{RowIndex: rowIdx, QueryIndex: queryIdx, Begin: -1}
	display := make([]byte, n)

	inGapRun := false
	var runKind columnKind
	insStart := -1

	// ipos, jpos are the query's and subject's own sequential residue
	// numbers, each advancing only on a column where that side carries a
	// real residue; QueryFirst/Last and SubjectFirst/Last are captured from
	// them only at a shared real-residue column, exactly as
	// seq_impl::update tracks m_ifir/m_ilas against ipos.
	ipos, jpos := 1, 1

	flushInsertion := func(runStart, runEnd int) {
		prevSubject := lastSubjectBefore(s.Residues, runStart)
		nextSubject := firstSubjectFrom(s.Residues, runEnd)
		var seq []byte
		if prevSubject >= 0 {
			seq = append(seq, lowerLetter(s.Residues[prevSubject]))
		}
		for k := runStart; k < runEnd; k++ {
			if s.Residues[k] != residue.Gap {
				seq = append(seq, lowerLetter(s.Residues[k]))
			}
		}
		if nextSubject >= 0 {
			seq = append(seq, lowerLetter(s.Residues[nextSubject]))
		}
		h.Insertions = append(h.Insertions, Insertion{
			IPos: ungappedCount(q.Residues, runStart),
			JPos: ungappedCount(s.Residues, runStart) + 1,
			Seq:  string(seq),
		})
	}

	for k := 0; k < n; k++ {
		qc, sc := q.Residues[k], s.Residues[k]
		if !qc.Valid() && qc != residue.Gap {
			return nil, fmt.Errorf("hssp: row %d: query column %d has an invalid residue code %d", rowIdx, k, qc)
		}
		if !sc.Valid() && sc != residue.Gap {
			return nil, fmt.Errorf("hssp: row %d: column %d has an invalid residue code %d", rowIdx, k, sc)
		}

		kind := classify(qc, sc)
		if kind == kindBothGap {
			display[k] = ' '
			if inGapRun {
				if runKind == kindQueryGapOnly {
					flushInsertion(insStart, k)
				}
				inGapRun = false
			}
			continue
		}

		if h.Begin < 0 {
			h.Begin = k
		}
		h.End = k + 1

		switch kind {
		case kindBoth:
			h.Length++
			if qc == sc {
				h.Identical++
			}
			if mat.Score(qc, sc) >= 0 {
				h.Similar++
			}
			display[k] = residue.Letter(sc)
			if inGapRun {
				if runKind == kindQueryGapOnly {
					flushInsertion(insStart, k)
				}
				inGapRun = false
			}

			h.QueryLast, h.SubjectLast = ipos, jpos
			if h.QueryFirst == 0 {
				h.QueryFirst, h.SubjectFirst = ipos, jpos
			}
			ipos++
			jpos++
		case kindQueryGapOnly:
			h.Length++
			h.GapN++
			display[k] = lowerLetter(sc)
			if !inGapRun || runKind != kindQueryGapOnly {
				h.Gaps++
				insStart = k
			}
			inGapRun, runKind = true, kindQueryGapOnly
			jpos++
		case kindSubjectGapOnly:
			h.Length++
			h.GapN++
			display[k] = '.'
			if !inGapRun || runKind != kindSubjectGapOnly {
				h.Gaps++
			}
			inGapRun, runKind = true, kindSubjectGapOnly
			ipos++
		}
	}
	if inGapRun && runKind == kindQueryGapOnly {
		flushInsertion(insStart, n)
	}

	if h.Begin < 0 {
		h.Begin, h.End = 0, 0
	}
	for k := 0; k < n; k++ {
		if k < h.Begin || k >= h.End {
			display[k] = ' '
		}
	}
	h.Display = display

	if h.Length > 0 {
		h.Identity = float64(h.Identical) / float64(h.Length)
		h.Similarity = float64(h.Similar) / float64(h.Length)
	}
	return h, nil
}

// homologyThreshold is the length-dependent identity curve named in the
// THRESHOLD report line: t(L) = (290.15 * L^-0.562) / 100, clamped to the
// [10, 80] window the original curve was fit over.
func homologyThreshold(length int) float64 {
	l := length
	if l < 10 {
		l = 10
	}
	if l > 80 {
		l = 80
	}
	return 290.15 * math.Pow(float64(l), -0.562) / 100
}

// Passes reports whether h's identity score clears the length-dependent
// homology curve plus the configured threshold margin.
func (h *Hit) Passes(threshold float64) bool {
	return h.Identity >= homologyThreshold(h.Length)+threshold
}

func lowerLetter(c residue.Code) byte {
	return residue.Letter(c) + ('a' - 'A')
}

func ungappedCount(residues []residue.Code, upTo int) int {
	n := 0
	for k := 0; k < upTo; k++ {
		if residues[k] != residue.Gap {
			n++
		}
	}
	return n
}

func lastSubjectBefore(residues []residue.Code, k int) int {
	for i := k - 1; i >= 0; i-- {
		if residues[i] != residue.Gap {
			return i
		}
	}
	return -1
}

func firstSubjectFrom(residues []residue.Code, k int) int {
	for i := k; i < len(residues); i++ {
		if residues[i] != residue.Gap {
			return i
		}
	}
	return -1
}
