// Package msa implements the progressive multiple sequence alignment
// driver: pairwise distances feed a guide tree, and the tree is resolved
// bottom-up, merging sibling profiles with the profile aligner, fanning out
// independent subtrees across goroutines as it goes.
package msa

import (
	"runtime"

	"github.com/csander/hssp/internal/distance"
	"github.com/csander/hssp/internal/distmat"
	"github.com/csander/hssp/internal/mserr"
	"github.com/csander/hssp/internal/profile"
	"github.com/csander/hssp/internal/seqset"
	"github.com/csander/hssp/internal/submat"
	"github.com/csander/hssp/internal/tree"
	"github.com/csander/hssp/internal/workqueue"
)

// Alignment is the completed multiple sequence alignment: every entry
// shares the same column count, following BurntSushi's seq.MSA shape.
type Alignment struct {
	Entries []*seqset.Entry
	length  int
}

// Len returns the number of columns, including gaps.
func (a *Alignment) Len() int { return a.length }

// Options configures the progressive driver.
type Options struct {
	MatrixFamily    string
	GapOpen         float64
	GapExtend       float64
	Magic           float64
	IgnorePositions bool
	Workers         int
}

// DefaultOptions matches mas.cpp's built-in defaults: GONNET250 tiers,
// gap open 10, gap extend 0.2, and the 0.05 "magic" scaling constant.
func DefaultOptions() Options {
	return Options{
		MatrixFamily: "GONNET",
		GapOpen:      10,
		GapExtend:    0.2,
		Magic:        0.05,
		Workers:      runtime.NumCPU(),
	}
}

// Build runs the full progressive pipeline over entries: pairwise
// distances, a neighbor-joining guide tree, then a bottom-up profile merge.
func Build(entries []*seqset.Entry, opts Options) (*Alignment, error) {
	if len(entries) < 2 {
		return nil, &mserr.TooFewSequences{Count: len(entries)}
	}

	family, err := submat.NewFamily(opts.MatrixFamily)
	if err != nil {
		return nil, err
	}

	d := pairwiseDistances(entries, opts.Workers)

	leaves := make([]tree.Node, len(entries))
	for i, e := range entries {
		leaves[i] = tree.NewLeaf(e)
	}
	root := tree.Build(d, leaves)

	r := &resolver{family: family, opts: opts}
	group := r.resolve(root)

	return &Alignment{Entries: group, length: group[0].Len()}, nil
}

// pairwiseDistances fills a distance matrix over entries using a bounded
// worker pool, one job per unordered pair, matching mas.cpp's
// calculateDistanceMatrix.
func pairwiseDistances(entries []*seqset.Entry, workers int) *distmat.Matrix {
	n := len(entries)
	d := distmat.New(n)

	pool := workqueue.New(workers)

	for i := 0; i < n-1; i++ {
		for j := i + 1; j < n; j++ {
			i, j := i, j
			pool.Submit(func() {
				dist := distance.Pair(entries[i], entries[j])
				d.Set(i, j, dist)
			})
		}
	}
	pool.Close()
	return d
}

// resolver walks the guide tree bottom-up, merging sibling groups with the
// profile aligner. Independent subtrees are resolved concurrently.
type resolver struct {
	family *submat.Family
	opts   Options
}

func (r *resolver) resolve(n tree.Node) []*seqset.Entry {
	switch node := n.(type) {
	case *tree.Leaf:
		return []*seqset.Entry{node.Entry}
	case *tree.Internal:
		var left, right []*seqset.Entry
		if node.Left.LeafCount() > 1 || node.Right.LeafCount() > 1 {
			done := make(chan struct{})
			go func() {
				left = r.resolve(node.Left)
				close(done)
			}()
			right = r.resolve(node.Right)
			<-done
		} else {
			left = r.resolve(node.Left)
			right = r.resolve(node.Right)
		}
		return profile.Align(node.DLeft, node.DRight, left, right, r.family,
			r.opts.GapOpen, r.opts.GapExtend, r.opts.Magic, r.opts.IgnorePositions)
	default:
		panic("msa: unknown guide tree node type")
	}
}
