/*package wigner implements the Wigner-Seitz cell of a lattice: the set of
points at least as close to the origin as to any other lattice point. The
cell is represented by its face half-space constraints, v.L <= L.L/2 for the
lattice vectors L whose perpendicular bisector planes touch the cell.*/
package wigner

import (
	"math"

	"github.com/phil-mansfield/bravais/lib/geom"
	"github.com/phil-mansfield/bravais/lib/lattice"
)

// Cell is the Wigner-Seitz cell of a lattice. It is built once by New and
// immutable afterward.
type Cell struct {
	r geom.Mat
	faces []geom.Vec // Cartesian lattice vectors whose bisectors bound the cell
	circum float64
	minHalf float64 // shortest face half-distance, used to scale OnBoundary
	tol float64
}

// New constructs the Wigner-Seitz cell of the lattice R (columns are lattice
// vectors) with relative tolerance tol for boundary classification.
//
// Candidate faces are the perpendicular bisectors of the lattice vectors with
// coefficients in {-2..2} relative to the reduced basis; every
// Voronoi-relevant vector of a reduced 3D basis lies in that shell.
// Candidates whose bisector plane does not touch the cell are discarded.
func New(R geom.Mat, tol float64) *Cell {
	reduced := lattice.Reduce(R, tol).Reduced

	candidates := []geom.Vec{ }
	for i0 := -2; i0 <= 2; i0++ {
		for i1 := -2; i1 <= 2; i1++ {
			for i2 := -2; i2 <= 2; i2++ {
				if i0 == 0 && i1 == 0 && i2 == 0 { continue }
				n := geom.Vec{ float64(i0), float64(i1), float64(i2) }
				candidates = append(candidates, reduced.MulVec(n))
			}
		}
	}

	// A candidate's plane touches the cell exactly when its midpoint L/2 is
	// inside every other half-space (within tolerance). Tangent planes that
	// touch only an edge or vertex survive this test too; they are redundant
	// but harmless for the distance computation below.
	faces := []geom.Vec{ }
	for i, L := range candidates {
		keep := true
		mid := L.Scale(0.5)
		for j, M := range candidates {
			if i == j { continue }
			slack := 0.5*M.Norm2() - mid.Dot(M)
			if slack < -tol*M.Norm2() {
				keep = false
				break
			}
		}
		if keep { faces = append(faces, L) }
	}

	minHalf := math.MaxFloat64
	for _, L := range faces {
		if h := 0.5 * L.Norm(); h < minHalf { minHalf = h }
	}

	cell := &Cell{ r: R, faces: faces, minHalf: minHalf, tol: tol }
	cell.circum = cell.circumRadius()
	return cell
}

// circumRadius finds the farthest vertex of the cell from the origin.
// Vertices are the feasible intersections of three face planes.
func (c *Cell) circumRadius() float64 {
	max := 0.0
	for i := 0; i < len(c.faces); i++ {
		for j := i + 1; j < len(c.faces); j++ {
			for k := j + 1; k < len(c.faces); k++ {
				Li, Lj, Lk := c.faces[i], c.faces[j], c.faces[k]
				// Solve v.L = L.L/2 for the three planes. Nearly parallel
				// triples have no well-conditioned intersection; skip them.
				A := geom.Mat{
					{Li[0], Li[1], Li[2]},
					{Lj[0], Lj[1], Lj[2]},
					{Lk[0], Lk[1], Lk[2]},
				}
				if math.Abs(A.Det()) <= c.tol*boxScale(Li, Lj, Lk) {
					continue
				}
				b := geom.Vec{
					0.5 * Li.Norm2(), 0.5 * Lj.Norm2(), 0.5 * Lk.Norm2(),
				}
				v := A.Solve(b)
				if c.contains(v) && v.Norm() > max { max = v.Norm() }
			}
		}
	}
	return max
}

// boxScale is the natural scale of the determinant of three row vectors.
func boxScale(a, b, d geom.Vec) float64 {
	return a.Norm() * b.Norm() * d.Norm()
}

// contains returns true if the Cartesian point v lies in the closed cell,
// within tolerance.
func (c *Cell) contains(v geom.Vec) bool {
	for _, L := range c.faces {
		if v.Dot(L) > 0.5*L.Norm2()*(1+c.tol) { return false }
	}
	return true
}

// CircumRadius returns the distance from the lattice origin to the farthest
// vertex of the cell.
func (c *Cell) CircumRadius() float64 { return c.circum }

// BoundaryDistance returns the signed distance from the point with
// fractional lattice coordinates x to the cell boundary. It is positive for
// points strictly inside, zero on the boundary, and negative outside.
func (c *Cell) BoundaryDistance(x geom.Vec) float64 {
	v := c.r.MulVec(x)
	min := math.MaxFloat64
	for _, L := range c.faces {
		d := 0.5*L.Norm() - v.Dot(L)/L.Norm()
		if d < min { min = d }
	}
	return min
}

// OnBoundary returns true if the point with fractional lattice coordinates x
// lies on the cell boundary to within the cell's tolerance.
func (c *Cell) OnBoundary(x geom.Vec) bool {
	return math.Abs(c.BoundaryDistance(x)) <= c.tol*c.minHalf
}
