/*package geom contains fixed-size 3-vector and 3x3 matrix types and the
linear algebra needed by the lattice routines. The convention throughout
bravais is that the columns of a Mat are lattice vectors in a fixed Cartesian
frame.

The types here are plain value types rather than gonum Dense matrices because
the symmetry search multiplies hundreds of thousands of small matrices and
per-candidate heap allocation would dominate the runtime. gonum is still used
underneath for the operations where its numerics matter (inverses and linear
solves).
*/
package geom

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Vec is a 3-vector.
type Vec [3]float64

// IVec is an integer 3-vector, typically a set of lattice coordinates.
type IVec [3]int

// Mat is a 3x3 matrix. Mat[i][j] is the entry in row i, column j.
type Mat [3][3]float64

// IMat is an integer 3x3 matrix, typically a change of lattice basis.
type IMat [3][3]int

// Identity returns the 3x3 identity matrix.
func Identity() Mat {
	return Mat{ {1, 0, 0}, {0, 1, 0}, {0, 0, 1} }
}

// IdentityI returns the 3x3 integer identity matrix.
func IdentityI() IMat {
	return IMat{ {1, 0, 0}, {0, 1, 0}, {0, 0, 1} }
}

// FromCols builds a matrix whose columns are the three given vectors.
func FromCols(c0, c1, c2 Vec) Mat {
	return Mat{
		{c0[0], c1[0], c2[0]},
		{c0[1], c1[1], c2[1]},
		{c0[2], c1[2], c2[2]},
	}
}

// Add returns u + v.
func (u Vec) Add(v Vec) Vec {
	return Vec{ u[0] + v[0], u[1] + v[1], u[2] + v[2] }
}

// Sub returns u - v.
func (u Vec) Sub(v Vec) Vec {
	return Vec{ u[0] - v[0], u[1] - v[1], u[2] - v[2] }
}

// Scale returns s*u.
func (u Vec) Scale(s float64) Vec {
	return Vec{ s * u[0], s * u[1], s * u[2] }
}

// Dot returns the dot product of u and v.
func (u Vec) Dot(v Vec) float64 {
	return u[0]*v[0] + u[1]*v[1] + u[2]*v[2]
}

// Cross returns the cross product of u and v.
func (u Vec) Cross(v Vec) Vec {
	return Vec{
		u[1]*v[2] - u[2]*v[1],
		u[2]*v[0] - u[0]*v[2],
		u[0]*v[1] - u[1]*v[0],
	}
}

// Box returns the scalar triple product u . (v x w).
func Box(u, v, w Vec) float64 {
	return u.Dot(v.Cross(w))
}

// Norm2 returns the squared length of u.
func (u Vec) Norm2() float64 { return u.Dot(u) }

// Norm returns the length of u.
func (u Vec) Norm() float64 { return math.Sqrt(u.Norm2()) }

// Float converts an integer vector to a float vector.
func (u IVec) Float() Vec {
	return Vec{ float64(u[0]), float64(u[1]), float64(u[2]) }
}

// Add returns u + v.
func (u IVec) Add(v IVec) IVec {
	return IVec{ u[0] + v[0], u[1] + v[1], u[2] + v[2] }
}

// Sub returns u - v.
func (u IVec) Sub(v IVec) IVec {
	return IVec{ u[0] - v[0], u[1] - v[1], u[2] - v[2] }
}

// Col returns column j of m.
func (m Mat) Col(j int) Vec {
	return Vec{ m[0][j], m[1][j], m[2][j] }
}

// Row returns row i of m.
func (m Mat) Row(i int) Vec {
	return Vec{ m[i][0], m[i][1], m[i][2] }
}

// Transpose returns the transpose of m.
func (m Mat) Transpose() Mat {
	return Mat{
		{m[0][0], m[1][0], m[2][0]},
		{m[0][1], m[1][1], m[2][1]},
		{m[0][2], m[1][2], m[2][2]},
	}
}

// Mul returns the matrix product m*o.
func (m Mat) Mul(o Mat) Mat {
	p := Mat{ }
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			p[i][j] = m[i][0]*o[0][j] + m[i][1]*o[1][j] + m[i][2]*o[2][j]
		}
	}
	return p
}

// MulVec returns the matrix-vector product m*v.
func (m Mat) MulVec(v Vec) Vec {
	return Vec{
		m[0][0]*v[0] + m[0][1]*v[1] + m[0][2]*v[2],
		m[1][0]*v[0] + m[1][1]*v[1] + m[1][2]*v[2],
		m[2][0]*v[0] + m[2][1]*v[1] + m[2][2]*v[2],
	}
}

// Sub returns m - o.
func (m Mat) Sub(o Mat) Mat {
	p := Mat{ }
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			p[i][j] = m[i][j] - o[i][j]
		}
	}
	return p
}

// Scale returns s*m.
func (m Mat) Scale(s float64) Mat {
	p := Mat{ }
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			p[i][j] = s * m[i][j]
		}
	}
	return p
}

// Norm2 returns the squared Frobenius norm of m, the sum of the squares of
// its entries.
func (m Mat) Norm2() float64 {
	sum := 0.0
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			sum += m[i][j] * m[i][j]
		}
	}
	return sum
}

// Norm returns the Frobenius norm of m.
func (m Mat) Norm() float64 { return math.Sqrt(m.Norm2()) }

// dense converts m to a gonum Dense matrix.
func (m Mat) dense() *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		m[0][0], m[0][1], m[0][2],
		m[1][0], m[1][1], m[1][2],
		m[2][0], m[2][1], m[2][2],
	})
}

// fromDense converts a 3x3 gonum matrix back to a Mat.
func fromDense(d mat.Matrix) Mat {
	m := Mat{ }
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m[i][j] = d.At(i, j)
		}
	}
	return m
}

// Det returns the determinant of m.
func (m Mat) Det() float64 {
	return mat.Det(m.dense())
}

// Inverse returns the inverse of m. It panics if m is singular: every lattice
// handled by bravais is required to be non-degenerate, so a singular matrix
// here means a caller broke that precondition.
func (m Mat) Inverse() Mat {
	inv := &mat.Dense{ }
	if err := inv.Inverse(m.dense()); err != nil {
		panic("Inverse() called on a singular matrix. All lattices passed " +
			"to bravais must have nonzero determinant.")
	}
	return fromDense(inv)
}

// Solve returns the solution x of m*x = b. Like Inverse, it panics if m is
// singular.
func (m Mat) Solve(b Vec) Vec {
	x := &mat.VecDense{ }
	bv := mat.NewVecDense(3, []float64{ b[0], b[1], b[2] })
	if err := x.SolveVec(m.dense(), bv); err != nil {
		panic("Solve() called on a singular matrix.")
	}
	return Vec{ x.AtVec(0), x.AtVec(1), x.AtVec(2) }
}

// Float converts an integer matrix to a float matrix.
func (m IMat) Float() Mat {
	p := Mat{ }
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			p[i][j] = float64(m[i][j])
		}
	}
	return p
}

// Col returns column j of m.
func (m IMat) Col(j int) IVec {
	return IVec{ m[0][j], m[1][j], m[2][j] }
}

// Transpose returns the transpose of m.
func (m IMat) Transpose() IMat {
	return IMat{
		{m[0][0], m[1][0], m[2][0]},
		{m[0][1], m[1][1], m[2][1]},
		{m[0][2], m[1][2], m[2][2]},
	}
}

// Mul returns the integer matrix product m*o.
func (m IMat) Mul(o IMat) IMat {
	p := IMat{ }
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			p[i][j] = m[i][0]*o[0][j] + m[i][1]*o[1][j] + m[i][2]*o[2][j]
		}
	}
	return p
}

// MulVec returns the integer matrix-vector product m*v.
func (m IMat) MulVec(v IVec) IVec {
	return IVec{
		m[0][0]*v[0] + m[0][1]*v[1] + m[0][2]*v[2],
		m[1][0]*v[0] + m[1][1]*v[1] + m[1][2]*v[2],
		m[2][0]*v[0] + m[2][1]*v[1] + m[2][2]*v[2],
	}
}

// Det returns the determinant of m, computed exactly in integer arithmetic.
func (m IMat) Det() int {
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}

// Neg returns -m.
func (m IMat) Neg() IMat {
	p := IMat{ }
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			p[i][j] = -m[i][j]
		}
	}
	return p
}

// RoundVec rounds each component of v to the nearest integer and reports the
// largest absolute deviation from that integer.
func RoundVec(v Vec) (IVec, float64) {
	iv, err := IVec{ }, 0.0
	for i := 0; i < 3; i++ {
		r := math.Round(v[i])
		iv[i] = int(r)
		if d := math.Abs(v[i] - r); d > err { err = d }
	}
	return iv, err
}

// RoundMat rounds each entry of m to the nearest integer and reports the
// largest absolute deviation from that integer.
func RoundMat(m Mat) (IMat, float64) {
	im, err := IMat{ }, 0.0
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r := math.Round(m[i][j])
			im[i][j] = int(r)
			if d := math.Abs(m[i][j] - r); d > err { err = d }
		}
	}
	return im, err
}
