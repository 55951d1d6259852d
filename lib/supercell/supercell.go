/*package supercell builds the smallest real-space supercell commensurate
with the closure of a k-point mesh under a symmetry group.

Given an irreducible k-point set and the point group of the lattice, Build
computes the full symmetry-closed mesh, derives a primitive basis for the
mesh's reciprocal lattice, verifies that the mesh actually is a Bravais
lattice commensurate with the unit cell, and emits a canonical integer
supercell matrix. The transform records let downstream code express a
quantity computed on the irreducible mesh at any point of the full mesh by
applying the recorded operation, inversion flag, and zone offset in reverse.*/
package supercell

import (
	"errors"
	"fmt"
	"math"

	"github.com/phil-mansfield/bravais/lib/geom"
	"github.com/phil-mansfield/bravais/lib/lattice"
)

// ErrNotBravais is returned when the closed k-point mesh does not form a
// Bravais lattice. This is a configuration problem, not a bug: it is
// typically caused by an off-Gamma mesh (e.g. Monkhorst-Pack) whose
// symmetries are a strict subgroup of the lattice's.
var ErrNotBravais = errors.New(
	"The k-point mesh is not a Bravais lattice under the given symmetry " +
	"group. HINT: this can be caused by an off-Gamma k-point mesh (e.g. " +
	"Monkhorst-Pack) whose symmetries are a subgroup of those of the " +
	"lattice. Try switching to Gamma-centered sampling or disabling " +
	"symmetries.")

// ErrNotCommensurate is returned when the mesh's reciprocal basis does not
// correspond to an integer combination of unit-cell lattice vectors.
var ErrNotCommensurate = errors.New(
	"The k-point mesh does not correspond to a commensurate (integer) " +
	"supercell of the unit lattice. Try switching to Gamma-centered " +
	"sampling or disabling symmetries.")

// KTransform records how a closed-mesh point was generated from the
// irreducible k-point list: mesh[i] equals the Source'th irreducible point
// acted on by operation Sym, multiplied by Invert, plus the integer zone
// Offset that wrapped it into the centered zone.
type KTransform struct {
	Source int
	Sym int
	Invert int
	Offset geom.IVec
}

// Supercell relates a unit lattice R to the larger lattice that makes the
// k-point mesh periodic. RSuper = R * Super, and every mesh vector is
// integral in the basis dual to RSuper. Mesh and Transforms are index-aligned
// and immutable once built.
type Supercell struct {
	Super geom.IMat
	RSuper geom.Mat
	Mesh []geom.Vec
	Transforms []KTransform
	KBasis geom.Mat
}

// Build closes the irreducible k-point set kReduced under the symmetry
// operations ops (integer matrices in unit-lattice coordinates, as returned
// by lattice.FindSymmetries) and each inversion flag in invertList (typically
// []int{+1}, or []int{+1, -1} when time-reversal applies), then constructs
// the canonical supercell of the unit lattice R that makes the closed mesh
// periodic.
//
// The returned errors are terminal configuration problems: the sampling
// scheme and symmetry choice cannot be reconciled and the caller must change
// one of them upstream.
func Build(
	R geom.Mat, kReduced []geom.Vec, ops []geom.IMat,
	invertList []int, tol float64,
) (*Supercell, error) {
	if len(kReduced) == 0 {
		return nil, fmt.Errorf("The irreducible k-point list is empty.")
	}
	if len(ops) == 0 {
		return nil, fmt.Errorf("The symmetry operation list is empty. It " +
			"should contain at least the identity.")
	}
	if len(invertList) == 0 { invertList = []int{ 1 } }

	mesh, transforms := closeMesh(R, kReduced, ops, invertList, tol)

	kBasis := meshBasis(mesh, tol)
	kRed := lattice.Reduce(kBasis, tol)
	kBasis = kRed.Reduced
	kBasisInv := kBasis.Inverse()

	// Every mesh point must be integral in the mesh basis, relative to the
	// first point, and the basis cell must hold exactly one mesh point.
	for _, k := range mesh {
		_, errRound := geom.RoundVec(kBasisInv.MulVec(k.Sub(mesh[0])))
		if errRound > tol { return nil, ErrNotBravais }
	}
	n := float64(len(mesh))
	if math.Abs(math.Abs(kBasisInv.Det()) - n) > n*tol {
		return nil, ErrNotBravais
	}

	// The real-space supercell dual to the mesh basis, reduced for
	// reproducibility and rounded to integers.
	superTemp := R.Inverse().
		Mul(lattice.Reduce(R.Mul(kBasisInv.Transpose()), tol).Reduced)
	super, errRound := geom.RoundMat(superTemp)
	if errRound > tol { return nil, ErrNotCommensurate }

	super = pivotColumns(super)
	if super.Det() < 0 { super = super.Neg() }

	return &Supercell{
		Super: super,
		RSuper: R.Mul(super.Float()),
		Mesh: mesh,
		Transforms: transforms,
		KBasis: kBasis,
	}, nil
}

// closeMesh applies every (inversion flag, symmetry operation) pair to every
// irreducible k-point, wraps the results into the centered zone, and
// deduplicates them with a fuzzy periodic lookup.
func closeMesh(
	R geom.Mat, kReduced []geom.Vec, ops []geom.IMat,
	invertList []int, tol float64,
) ([]geom.Vec, []KTransform) {
	// Distances between fractional k-points are measured with the reciprocal
	// metric so that the dedup tolerance tracks the lattice's actual shape.
	rInv := R.Inverse()
	metric := rInv.Mul(rInv.Transpose())

	capacity := len(kReduced) * len(ops) * len(invertList)
	plook := NewPeriodicLookup(metric, tol, capacity)

	mesh := []geom.Vec{ }
	transforms := []KTransform{ }
	for _, invert := range invertList {
		for iReduced, kOrig := range kReduced {
			for iSym, m := range ops {
				k := m.Float().Transpose().MulVec(kOrig).
					Scale(float64(invert))
				// Wrap each fractional coordinate into [-0.5, 0.5),
				// recording the integer offset applied.
				offset := geom.IVec{ }
				for i := 0; i < 3; i++ {
					offset[i] = -int(math.Floor(0.5 + k[i]))
					k[i] += float64(offset[i])
				}
				if _, ok := plook.Find(k); !ok {
					plook.Insert(len(mesh), k)
					mesh = append(mesh, k)
					transforms = append(transforms,
						KTransform{ iReduced, iSym, invert, offset })
				}
			}
		}
	}
	return mesh, transforms
}

// meshBasis greedily picks three linearly independent difference vectors for
// the mesh, using the mesh itself plus its 26 neighboring periodic images so
// that the spacing across zone boundaries is seen too. The picks are the
// globally shortest difference, the shortest one not collinear with it, and
// the shortest one not coplanar with the first two, which together span the
// densest sublattice consistent with the mesh spacing.
func meshBasis(mesh []geom.Vec, tol float64) geom.Mat {
	kmesh333 := make([]geom.Vec, 0, 27*len(mesh))
	kmesh333 = append(kmesh333, mesh...)
	for i0 := -1; i0 <= 1; i0++ {
		for i1 := -1; i1 <= 1; i1++ {
			for i2 := -1; i2 <= 1; i2++ {
				if i0 == 0 && i1 == 0 && i2 == 0 { continue }
				zone := geom.Vec{ float64(i0), float64(i1), float64(i2) }
				for _, k := range mesh {
					kmesh333 = append(kmesh333, k.Add(zone))
				}
			}
		}
	}

	front := kmesh333[0]
	var v0, v1, v2 geom.Vec

	minNorm2 := math.MaxFloat64
	for _, k := range kmesh333[1:] {
		dk := k.Sub(front)
		if n2 := dk.Norm2(); n2 > 0 && n2 < minNorm2 {
			v0, minNorm2 = dk, n2
		}
	}

	minNorm2 = math.MaxFloat64
	crossThreshold := tol * v0.Norm()
	for _, k := range kmesh333[1:] {
		dk := k.Sub(front)
		if v0.Cross(dk).Norm() > crossThreshold {
			if n2 := dk.Norm2(); n2 < minNorm2 {
				v1, minNorm2 = dk, n2
			}
		}
	}

	minNorm2 = math.MaxFloat64
	boxThreshold := tol * v0.Cross(v1).Norm()
	for _, k := range kmesh333[1:] {
		dk := k.Sub(front)
		if math.Abs(geom.Box(v0, v1, dk)) > boxThreshold {
			if n2 := dk.Norm2(); n2 < minNorm2 {
				v2, minNorm2 = dk, n2
			}
		}
	}

	return geom.FromCols(v0, v1, v2)
}

// pivotColumns permutes the supercell's columns to the assignment that makes
// the matrix closest to diagonal, scored as the sum over columns of
// (diagonal entry)^2 / (column squared length). This makes the printed
// supercell human-readable and reproducible without changing the cell.
func pivotColumns(super geom.IMat) geom.IMat {
	permutations := [6][3]int{
		{0, 1, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0}, {1, 0, 2}, {0, 2, 1},
	}
	maxScore, best := -1.0, 0
	for p := range permutations {
		score := 0.0
		for k := 0; k < 3; k++ {
			col := super.Col(permutations[p][k])
			n2 := float64(col[0]*col[0] + col[1]*col[1] + col[2]*col[2])
			score += float64(col[k]*col[k]) / n2
		}
		if score > maxScore { maxScore, best = score, p }
	}

	pivoted := geom.IMat{ }
	for k := 0; k < 3; k++ {
		for i := 0; i < 3; i++ {
			pivoted[i][k] = super[i][permutations[best][k]]
		}
	}
	return pivoted
}
