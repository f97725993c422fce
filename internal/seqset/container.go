package seqset

import (
	"fmt"

	"github.com/csander/hssp/internal/residue"
)

// InsertGap splices a gap at pos, extending Positions with an unconstrained
// 0 at the same index if present. A pos at or past the current length
// appends instead of panicking.
func (e *Entry) InsertGap(pos int) {
	if pos > len(e.Residues) {
		pos = len(e.Residues)
	}
	e.Residues = insertCode(e.Residues, pos, residue.Gap)
	if e.Positions != nil {
		e.Positions = insertPos(e.Positions, pos, 0)
	}
	if e.SecStruct != nil {
		e.SecStruct = insertByte(e.SecStruct, pos, 0)
	}
}

// RemoveGaps compacts the row in place, dropping every Gap residue and, if
// present, the secondary-structure letter at the same index. It is
// forbidden while a Positions vector is attached: the caller must dump
// positions first, since compaction would silently break the index
// alignment the positions vector depends on.
func (e *Entry) RemoveGaps() error {
	if e.Positions != nil {
		return fmt.Errorf("seqset: cannot remove gaps while a positions vector is attached")
	}
	kept := e.Residues[:0]
	keptSS := e.SecStruct[:0]
	for i, r := range e.Residues {
		if r != residue.Gap {
			kept = append(kept, r)
			if e.SecStruct != nil {
				keptSS = append(keptSS, e.SecStruct[i])
			}
		}
	}
	e.Residues = kept
	if e.SecStruct != nil {
		e.SecStruct = keptSS
	}
	return nil
}

// Append adds residues (and, if present, zero-filled positions/secondary
// structure) to the end of the row.
func (e *Entry) Append(residues ...residue.Code) {
	e.Residues = append(e.Residues, residues...)
	if e.Positions != nil {
		for range residues {
			e.Positions = append(e.Positions, 0)
		}
	}
	if e.SecStruct != nil {
		for range residues {
			e.SecStruct = append(e.SecStruct, 0)
		}
	}
}

// Cut trims the row in place to the window [pos, pos+n), reslicing rather
// than copying. Used by the HSSP loader to restrict an MSA to the query's
// aligned window.
func (e *Entry) Cut(pos, n int) {
	end := pos + n
	if end > len(e.Residues) {
		end = len(e.Residues)
	}
	e.Residues = e.Residues[pos:end]
	if e.Positions != nil {
		e.Positions = e.Positions[pos:end]
	}
	if e.SecStruct != nil {
		e.SecStruct = e.SecStruct[pos:end]
	}
}

func insertCode(s []residue.Code, pos int, v residue.Code) []residue.Code {
	s = append(s, residue.Gap)
	copy(s[pos+1:], s[pos:])
	s[pos] = v
	return s
}

func insertPos(s []uint16, pos int, v uint16) []uint16 {
	s = append(s, 0)
	copy(s[pos+1:], s[pos:])
	s[pos] = v
	return s
}

func insertByte(s []byte, pos int, v byte) []byte {
	s = append(s, 0)
	copy(s[pos+1:], s[pos:])
	s[pos] = v
	return s
}
