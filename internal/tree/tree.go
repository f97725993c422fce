// Package tree builds the guide tree that drives progressive alignment: a
// binary tree over input entries, built by neighbor joining over a distance
// matrix, with conservation weight redistributed from branch lengths down
// to the leaves as the tree is assembled.
package tree

import (
	"math"

	"github.com/csander/hssp/internal/distmat"
	"github.com/csander/hssp/internal/seqset"
)

// Node is a guide tree node: either a Leaf wrapping one input entry, or an
// Internal node joining two subtrees. The progressive driver walks this
// interface bottom-up without needing to know which kind it holds.
type Node interface {
	// LeafCount is the number of entries reachable from this node.
	LeafCount() int
	// addWeight distributes a per-leaf branch-length share down to every
	// leaf reachable from this node.
	addWeight(w float64)
}

// Leaf wraps a single input entry.
type Leaf struct {
	Entry *seqset.Entry
}

// NewLeaf wraps entry as a tree leaf.
func NewLeaf(entry *seqset.Entry) *Leaf {
	return &Leaf{Entry: entry}
}

// LeafCount is always 1 for a Leaf.
func (l *Leaf) LeafCount() int { return 1 }

func (l *Leaf) addWeight(w float64) { l.Entry.Weight += w }

// Internal joins two subtrees at the branch lengths computed during
// neighbor joining.
type Internal struct {
	Left, Right   Node
	DLeft, DRight float64

	leafCount int
}

// newInternal joins left and right, crediting each side's leaves with its
// share of the branch length (mas.cpp's joined_node constructor: each leaf
// under a branch gets length/leafCount added to its running weight).
func newInternal(left, right Node, dLeft, dRight float64) *Internal {
	n := &Internal{
		Left: left, Right: right,
		DLeft: dLeft, DRight: dRight,
		leafCount: left.LeafCount() + right.LeafCount(),
	}
	left.addWeight(dLeft / float64(left.LeafCount()))
	right.addWeight(dRight / float64(right.LeafCount()))
	return n
}

// LeafCount is the number of leaves under this node.
func (n *Internal) LeafCount() int { return n.leafCount }

func (n *Internal) addWeight(w float64) {
	n.Left.addWeight(w)
	n.Right.addWeight(w)
}

// Build runs neighbor joining over d, consuming it, and returns the root of
// the resulting guide tree. leaves must be in the same order as d's initial
// labels (0..n-1). Fewer than two leaves is a caller error; Build panics on
// an empty leaves slice since the driver never calls it with fewer than two
// entries.
func Build(d *distmat.Matrix, leaves []Node) Node {
	byLabel := make(map[int]Node, len(leaves))
	for i, leaf := range leaves {
		byLabel[d.Label(i)] = leaf
	}
	nextLabel := len(leaves)

	for d.Size() > 2 {
		minI, minJ, sum := qCriterion(d)
		dI, dJ := branchLengths(d, minI, minJ, sum)

		labelI, labelJ := d.Label(minI), d.Label(minJ)
		nodeI, nodeJ := byLabel[labelI], byLabel[labelJ]

		if dI > dJ && nodeI.LeafCount() > nodeJ.LeafCount() {
			dI, dJ = dJ, dI
		}
		joined := newInternal(nodeJ, nodeI, dJ, dI)

		// JoinAndReplace wants the remaining taxa in post-deletion order:
		// minI (the larger index) is swapped with the last row first, then
		// minJ with the new last row.
		n := d.Size()
		order := make([]int, n)
		for x := range order {
			order[x] = x
		}
		order[minI] = order[n-1]
		order[minJ] = order[n-2]
		others := make([]float64, 0, n-2)
		for _, x := range order[:n-2] {
			others = append(others, (math.Abs(d.At(x, minI)-dI)+math.Abs(d.At(x, minJ)-dJ))/2)
		}

		newLabel := nextLabel
		nextLabel++
		d.JoinAndReplace(minI, minJ, newLabel, others)
		delete(byLabel, labelI)
		delete(byLabel, labelJ)
		byLabel[newLabel] = joined
	}

	nodeA, nodeB := byLabel[d.Label(0)], byLabel[d.Label(1)]
	half := d.At(0, 1) / 2
	return newInternal(nodeA, nodeB, half, half)
}

// qCriterion finds the pair (i, j), i > j, minimizing mas.cpp's Q value
// d(i,j) - (sum[i]+sum[j])/(r-2), along with the row-sum vector it used.
func qCriterion(d *distmat.Matrix) (minI, minJ int, sum []float64) {
	r := d.Size()
	sum = make([]float64, r)
	for i := 1; i < r; i++ {
		for j := 0; j < i; j++ {
			dij := d.At(i, j)
			sum[i] += dij
			sum[j] += dij
		}
	}

	best := math.MaxFloat64
	for i := 1; i < r; i++ {
		for j := 0; j < i; j++ {
			v := d.At(i, j) - (sum[i]+sum[j])/float64(r-2)
			if v < best {
				best, minI, minJ = v, i, j
			}
		}
	}
	return minI, minJ, sum
}

// branchLengths returns the two branch lengths joining minI and minJ to
// their new parent, following mas.cpp's joinNeighbours formula.
func branchLengths(d *distmat.Matrix, minI, minJ int, sum []float64) (dI, dJ float64) {
	r := d.Size()
	half := d.At(minI, minJ) / 2
	dI = half + math.Abs(sum[minI]-sum[minJ])/(2*float64(r-2))
	dJ = d.At(minI, minJ) - dI
	return dI, dJ
}
