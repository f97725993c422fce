// Package seqset is the gap-aware sequence container shared by the distance
// kernel, the guide tree, and the profile aligner: an Entry owns one row of
// residues plus the optional structural metadata (fixed positions,
// secondary structure) that must move in lockstep with every gap insertion.
package seqset

import (
	"fmt"

	"github.com/csander/hssp/internal/residue"
)

// Entry is one input sequence, and later one row of a multiple sequence
// alignment once gaps have been inserted by the alignment kernels.
type Entry struct {
	// Serial is the entry's input order; used as a tiebreaker wherever the
	// spec requires deterministic ordering among equal-ranked entries.
	Serial int

	ID          string
	Accession   string
	Description string

	Residues []residue.Code

	// Positions, if non-nil, has the same length as Residues at all times.
	// A value of 0 means "unconstrained"; any other value anchors that
	// column to the same value in another entry.
	Positions []uint16

	// SecStruct, if non-nil, has the same length as Residues: one DSSP-style
	// secondary-structure letter per residue.
	SecStruct []byte

	// Weight starts at 1 and accumulates branch-length shares during guide
	// tree construction.
	Weight float64

	pruned bool
}

// NewEntry creates an entry with the default weight of 1.
func NewEntry(serial int, id string, residues []residue.Code) *Entry {
	return &Entry{
		Serial:   serial,
		ID:       id,
		Residues: residues,
		Weight:   1,
	}
}

// Decode resolves a raw letter string into residue codes, failing on the
// first letter the alphabet does not recognize. This is the minimal
// decoding step any caller needs; it is not a FastA/Stockholm parser,
// which stays outside this package.
func Decode(letters string) ([]residue.Code, error) {
	codes := make([]residue.Code, len(letters))
	for i := 0; i < len(letters); i++ {
		c, err := residue.Resolve(letters[i])
		if err != nil {
			return nil, fmt.Errorf("seqset: position %d: %w", i, err)
		}
		codes[i] = c
	}
	return codes, nil
}

// Len returns the number of columns (including gaps) currently in the row.
func (e *Entry) Len() int {
	return len(e.Residues)
}

// Pruned reports whether the entry has been marked filtered-out. A pruned
// entry keeps its storage but the conservation kernel skips it.
func (e *Entry) Pruned() bool {
	return e.pruned
}

// Prune marks the entry as filtered-out without releasing storage.
func (e *Entry) Prune() {
	e.pruned = true
}

// Copy returns a deep copy so alignment kernels can mutate a row without
// affecting the caller's original.
func (e *Entry) Copy() *Entry {
	cp := *e
	cp.Residues = append([]residue.Code(nil), e.Residues...)
	if e.Positions != nil {
		cp.Positions = append([]uint16(nil), e.Positions...)
	}
	if e.SecStruct != nil {
		cp.SecStruct = append([]byte(nil), e.SecStruct...)
	}
	return &cp
}
