/*package lattice implements lattice basis reduction and the brute-force
search for the point-group operations of a Bravais lattice. A lattice is
represented as a geom.Mat whose columns are the lattice vectors.*/
package lattice

import (
	"github.com/phil-mansfield/bravais/lib/geom"
)

// DefaultTolerance is the default relative tolerance used by geometric
// comparisons throughout bravais. It is loose enough to absorb the round-off
// accumulated by lattice vectors that went through text configuration files
// and a handful of matrix products.
const DefaultTolerance = 1e-4

// Reduction is the result of reducing a lattice basis. Reduced spans the same
// lattice as the original basis R, with Reduced = R*T and T*TInv = I. Both
// transmission matrices are unimodular.
type Reduction struct {
	Reduced geom.Mat
	T, TInv geom.IMat
}

// Reduce iteratively reduces a lattice basis toward shorter, more orthogonal
// vectors. Each sweep tries, for every direction k1, adding up to one of each
// of the other two lattice vectors to vector k1, and applies the first shear
// that shrinks the squared Frobenius norm of the basis by more than a
// relative tolerance tol. Sweeps repeat until none of the shears improve.
//
// The result is a reproducible "pretty good" basis, not a Minkowski-minimal
// one, and equivalent lattices presented with permuted or recombined columns
// can reduce to different (equally valid) bases. Callers must not rely on the
// reduced basis being canonical.
func Reduce(R geom.Mat, tol float64) Reduction {
	red := Reduction{ R, geom.IdentityI(), geom.IdentityI() }
	norm2 := red.Reduced.Norm2()
	for {
		changed := false
		for k1 := 0; k1 < 3; k1++ {
			k2, k3 := (k1+1)%3, (k1+2)%3
			for i := -1; i <= 1; i++ {
				for j := -1; j <= 1; j++ {
					// The shear d adds i copies of vector k2 and j copies of
					// vector k3 to vector k1. Its inverse subtracts them.
					d, dInv := geom.IdentityI(), geom.IdentityI()
					d[k2][k1], d[k3][k1] = i, j
					dInv[k2][k1], dInv[k3][k1] = -i, -j

					prop := red.Reduced.Mul(d.Float())
					// The tolerance guard keeps floating-point round-off from
					// cycling between equal-norm bases forever.
					if prop.Norm2() < norm2*(1-tol) {
						changed = true
						red.Reduced = prop
						red.T = red.T.Mul(d)
						red.TInv = dInv.Mul(red.TInv)
						norm2 = prop.Norm2()
					}
				}
			}
		}
		if !changed { break }
	}
	return red
}
