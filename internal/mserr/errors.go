// Package mserr defines the small set of fatal error kinds the alignment
// and report pipelines surface to their callers: every failure a CLI
// command needs to report distinctly is one of these five.
package mserr

import "fmt"

// Fatal is implemented by every error kind in this package, so callers can
// distinguish "stop the pipeline" failures from ordinary wrapped errors
// with a single type switch or errors.As.
type Fatal interface {
	error
	fatal()
}

// ResourceNotFound reports a named external resource (a substitution
// matrix family, an input file) that could not be located.
type ResourceNotFound struct {
	Resource string
}

func (e *ResourceNotFound) Error() string {
	return fmt.Sprintf("resource not found: %s", e.Resource)
}
func (e *ResourceNotFound) fatal() {}

// TooFewSequences reports an input set that does not carry enough entries
// to build a guide tree.
type TooFewSequences struct {
	Count int
}

func (e *TooFewSequences) Error() string {
	return fmt.Sprintf("too few sequences to align: got %d, need at least 2", e.Count)
}
func (e *TooFewSequences) fatal() {}

// MalformedInput reports input that failed validation before any alignment
// work began: an unrecognized residue letter, a position vector whose
// length does not match its sequence, and similar.
type MalformedInput struct {
	Reason string
}

func (e *MalformedInput) Error() string {
	return "malformed input: " + e.Reason
}
func (e *MalformedInput) fatal() {}

// NoSurvivingRows reports that every candidate row was dropped by the
// homology threshold, leaving nothing to report.
type NoSurvivingRows struct {
	Threshold float64
}

func (e *NoSurvivingRows) Error() string {
	return fmt.Sprintf("no rows survived the homology threshold %.4f", e.Threshold)
}
func (e *NoSurvivingRows) fatal() {}

// Internal reports a violated invariant: a bug in this module rather than
// a problem with the caller's input.
type Internal struct {
	Reason string
}

func (e *Internal) Error() string {
	return "internal error: " + e.Reason
}
func (e *Internal) fatal() {}
