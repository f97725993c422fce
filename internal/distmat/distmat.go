// Package distmat implements the symmetric distance matrix used by guide
// tree construction: only the strict lower triangle is stored, and a pair
// of rows/columns can be deleted (replaced by a freshly joined node) in
// O(n) via swap-with-last rather than a full O(n^2) rebuild.
package distmat

// Matrix is a symmetric matrix over a shrinking set of taxa. Row i holds
// columns 0..i-1; the diagonal is unused.
type Matrix struct {
	rows   [][]float64
	labels []int
}

// New creates an n-taxon matrix with labels 0..n-1 and all distances zero.
func New(n int) *Matrix {
	rows := make([][]float64, n)
	labels := make([]int, n)
	for i := 0; i < n; i++ {
		rows[i] = make([]float64, i)
		labels[i] = i
	}
	return &Matrix{rows: rows, labels: labels}
}

// Size returns the number of taxa currently represented.
func (m *Matrix) Size() int {
	return len(m.rows)
}

// Label returns the original (or joined-node) label stored at row i.
func (m *Matrix) Label(i int) int {
	return m.labels[i]
}

// At returns d(i, j); the diagonal is always 0.
func (m *Matrix) At(i, j int) float64 {
	if i == j {
		return 0
	}
	if i < j {
		i, j = j, i
	}
	return m.rows[i][j]
}

// Set writes d(i, j) = d(j, i) = v.
func (m *Matrix) Set(i, j int, v float64) {
	if i == j {
		return
	}
	if i < j {
		i, j = j, i
	}
	m.rows[i][j] = v
}

// deleteIndex removes taxon k by swapping its data with the last taxon and
// truncating, an O(n) operation.
func (m *Matrix) deleteIndex(k int) {
	n := len(m.rows)
	last := n - 1
	if k != last {
		for i := 0; i < n; i++ {
			if i == k || i == last {
				continue
			}
			dk, dl := m.At(i, k), m.At(i, last)
			m.Set(i, k, dl)
			m.Set(i, last, dk)
		}
		m.labels[k] = m.labels[last]
	}
	m.rows = m.rows[:last]
	m.labels = m.labels[:last]
}

// JoinAndReplace deletes rows/columns i and j (i != j), then appends a new
// row for the joined node, tagged with newLabel, with distances to every
// remaining taxon given in their (post-deletion) order. This is the single
// mutating step of each neighbor-joining iteration.
func (m *Matrix) JoinAndReplace(i, j, newLabel int, distances []float64) {
	if i < j {
		i, j = j, i
	}
	m.deleteIndex(i)
	m.deleteIndex(j)

	row := append([]float64(nil), distances...)
	m.rows = append(m.rows, row)
	m.labels = append(m.labels, newLabel)
}
