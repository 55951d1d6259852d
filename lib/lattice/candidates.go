package lattice

/* candidates.go enumerates the integer matrices tested by the symmetry
search. Restricting entries to {-1, 0, 1} is only valid because the search
runs in a reduced basis: any true lattice symmetry is representable with
small integer entries there. Lattices whose symmetries would need larger
entries in the reduced basis are not supported. */

import (
	"github.com/phil-mansfield/bravais/lib/geom"
)

// NumCandidates is the number of 3x3 integer matrices with every entry in
// {-1, 0, 1}.
const NumCandidates = 19683 // 3^9

// Candidate returns the n'th candidate symmetry matrix, 0 <= n <
// NumCandidates. The entries are the base-3 digits of n, shifted down to
// {-1, 0, 1}, so the enumeration is deterministic and any sub-range of it
// can be generated independently.
func Candidate(n int) geom.IMat {
	m := geom.IMat{ }
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m[i][j] = n%3 - 1
			n /= 3
		}
	}
	return m
}

// Candidates iterates over every candidate symmetry matrix in index order.
type Candidates struct {
	n int
}

// Next returns the next candidate matrix. The second return value is false
// once the enumeration is exhausted.
func (c *Candidates) Next() (geom.IMat, bool) {
	if c.n >= NumCandidates { return geom.IMat{ }, false }
	m := Candidate(c.n)
	c.n++
	return m, true
}

// Reset restarts the enumeration from the beginning.
func (c *Candidates) Reset() { c.n = 0 }
