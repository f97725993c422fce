// Package residue defines the fixed amino-acid alphabet shared by every
// other package in this module: a process-wide, read-only lookup from ASCII
// letters to residue indices, and the reverse mapping back to letters.
package residue

import "fmt"

// Code is a residue index in [0, Count), or Gap.
type Code int8

// Count is the number of distinct amino acids in the alphabet.
const Count = 20

// Gap is the sentinel residue index for an alignment gap. It is distinct
// from every letter index.
const Gap Code = -1

// letters is the canonical ordering of the 20-letter amino-acid alphabet.
// Matrix tables in package submat are indexed according to this order.
const letters = "ACDEFGHIKLMNPQRSTVWY"

// gapChars are the ASCII characters, besides the residue letters, that
// resolve to Gap.
const gapChars = "-.*~_ "

var toCode [256]Code

func init() {
	for i := range toCode {
		toCode[i] = Code(-2) // invalid, distinct from Gap
	}
	for i := 0; i < len(letters); i++ {
		c := Code(i)
		toCode[letters[i]] = c
		toCode[letters[i]+('a'-'A')] = c
	}
	for i := 0; i < len(gapChars); i++ {
		toCode[gapChars[i]] = Gap
	}
}

// Resolve maps an ASCII letter to its residue code, or to Gap for any of the
// gap-equivalent characters. It reports an error for any other byte.
func Resolve(b byte) (Code, error) {
	c := toCode[b]
	if c == Code(-2) {
		return 0, fmt.Errorf("residue: invalid letter %q", b)
	}
	return c, nil
}

// Letter returns the canonical uppercase ASCII letter for a residue code, or
// '-' for Gap.
func Letter(c Code) byte {
	if c == Gap {
		return '-'
	}
	if c < 0 || int(c) >= Count {
		return '?'
	}
	return letters[c]
}

// Valid reports whether c is a residue index (not Gap, not invalid).
func (c Code) Valid() bool {
	return c >= 0 && int(c) < Count
}

// IsHydrophilic reports whether the residue belongs to the hydrophilic set
// {D,E,G,K,N,Q,P,R,S} used by the hydrophilic-stretch gap-penalty rule.
func (c Code) IsHydrophilic() bool {
	switch Letter(c) {
	case 'D', 'E', 'G', 'K', 'N', 'Q', 'P', 'R', 'S':
		return true
	default:
		return false
	}
}

func (c Code) String() string {
	return string(Letter(c))
}
