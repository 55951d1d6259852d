package supercell

import (
	"math"
	"testing"

	"github.com/phil-mansfield/bravais/lib/geom"
	"github.com/phil-mansfield/bravais/lib/lattice"
)

var identityOps = []geom.IMat{ geom.IdentityI() }

func TestBuildGammaOnly(t *testing.T) {
	cell, err := Build(
		geom.Identity(), []geom.Vec{ {0, 0, 0} }, identityOps,
		[]int{ 1 }, lattice.DefaultTolerance,
	)
	if err != nil { t.Fatalf("Build failed: %s", err.Error()) }

	if cell.Super != geom.IdentityI() {
		t.Errorf("A Gamma-only mesh gave supercell %v, expected the " +
			"identity.", cell.Super)
	}
	if len(cell.Mesh) != 1 {
		t.Errorf("A Gamma-only mesh closed to %d points.", len(cell.Mesh))
	}
}

func TestBuildTwoPointLine(t *testing.T) {
	// A 2x1x1 mesh of the simple cubic cell: {Gamma, X}.
	cell, err := Build(
		geom.Identity(), []geom.Vec{ {0, 0, 0}, {0.5, 0, 0} }, identityOps,
		[]int{ 1 }, lattice.DefaultTolerance,
	)
	if err != nil { t.Fatalf("Build failed: %s", err.Error()) }

	exp := geom.IMat{ {2, 0, 0}, {0, 1, 0}, {0, 0, 1} }
	if cell.Super != exp {
		t.Errorf("Expected supercell %v, got %v.", exp, cell.Super)
	}
	if len(cell.Mesh) != 2 {
		t.Fatalf("Mesh closed to %d points, expected 2.", len(cell.Mesh))
	}

	// (0.5, 0, 0) wraps to -0.5, picking up a zone offset of -1.
	tr := cell.Transforms[1]
	if tr.Source != 1 || tr.Sym != 0 || tr.Invert != 1 ||
		tr.Offset != (geom.IVec{ -1, 0, 0 }) {
		t.Errorf("Unexpected transform record %+v.", tr)
	}

	// Supercell volume = mesh size * unit volume.
	vol := math.Abs(cell.RSuper.Det())
	if math.Abs(vol - 2) > 1e-9 {
		t.Errorf("Supercell volume is %g, expected 2.", vol)
	}
}

func TestBuildInversion(t *testing.T) {
	// A single off-center point plus time reversal closes to a two-point
	// mesh with spacing 1/2.
	cell, err := Build(
		geom.Identity(), []geom.Vec{ {0.25, 0, 0} }, identityOps,
		[]int{ 1, -1 }, lattice.DefaultTolerance,
	)
	if err != nil { t.Fatalf("Build failed: %s", err.Error()) }

	if len(cell.Mesh) != 2 {
		t.Fatalf("Mesh closed to %d points, expected 2.", len(cell.Mesh))
	}
	exp := geom.IMat{ {2, 0, 0}, {0, 1, 0}, {0, 0, 1} }
	if cell.Super != exp {
		t.Errorf("Expected supercell %v, got %v.", exp, cell.Super)
	}
	if cell.Transforms[1].Invert != -1 {
		t.Errorf("The second mesh point should be the time-reversed " +
			"image, got transform %+v.", cell.Transforms[1])
	}
}

func TestBuildWithSymmetryGroup(t *testing.T) {
	// A Gamma-centered 4x1x1 mesh under identity+inversion ops: the orbit
	// of each irreducible point stays on the same line.
	inv := geom.IMat{ {-1, 0, 0}, {0, -1, 0}, {0, 0, -1} }
	ops := []geom.IMat{ geom.IdentityI(), inv }

	kReduced := []geom.Vec{ {0, 0, 0}, {0.25, 0, 0}, {0.5, 0, 0} }
	cell, err := Build(
		geom.Identity(), kReduced, ops, []int{ 1 },
		lattice.DefaultTolerance,
	)
	if err != nil { t.Fatalf("Build failed: %s", err.Error()) }

	if len(cell.Mesh) != 4 {
		t.Fatalf("Mesh closed to %d points, expected 4.", len(cell.Mesh))
	}
	if d := cell.Super.Det(); d != 4 {
		t.Errorf("Supercell %v has determinant %d, expected 4.",
			cell.Super, d)
	}

	// Every mesh point must be at reciprocal lattice points of the
	// supercell, i.e. Super^t * k is integral.
	superT := cell.Super.Transpose().Float()
	for i, k := range cell.Mesh {
		if _, errRound := geom.RoundVec(superT.MulVec(k)); errRound > 1e-9 {
			t.Errorf("Mesh point %d, %v, is not commensurate with the " +
				"supercell.", i, k)
		}
	}

	// Mesh closure completeness: acting on any mesh point with any
	// operation (and wrapping) lands back on the mesh.
	rInv := geom.Identity().Inverse()
	metric := rInv.Mul(rInv.Transpose())
	plook := NewPeriodicLookup(metric, lattice.DefaultTolerance,
		len(cell.Mesh))
	for i, k := range cell.Mesh { plook.Insert(i, k) }

	for _, op := range ops {
		for i, k := range cell.Mesh {
			img := op.Float().Transpose().MulVec(k)
			for l := 0; l < 3; l++ {
				img[l] -= math.Floor(0.5 + img[l])
			}
			if _, ok := plook.Find(img); !ok {
				t.Errorf("The image %v of mesh point %d under %v is not " +
					"in the closed mesh.", img, i, op)
			}
		}
	}

	// Commensurability: every mesh point is integral in the k-basis.
	kBasisInv := cell.KBasis.Inverse()
	for i, k := range cell.Mesh {
		_, errRound := geom.RoundVec(kBasisInv.MulVec(k.Sub(cell.Mesh[0])))
		if errRound > lattice.DefaultTolerance {
			t.Errorf("Mesh point %d is not integral in the k-basis " +
				"(residual %g).", i, errRound)
		}
	}
}

func TestBuildNotBravais(t *testing.T) {
	// An incommensurate spacing: {Gamma, 0.4} is not a lattice with 2
	// points per zone.
	_, err := Build(
		geom.Identity(), []geom.Vec{ {0, 0, 0}, {0.4, 0, 0} }, identityOps,
		[]int{ 1 }, lattice.DefaultTolerance,
	)
	if err != ErrNotBravais {
		t.Errorf("Expected ErrNotBravais, got %v.", err)
	}
}

func TestBuildSubgroupMeshNotBravais(t *testing.T) {
	// Closing {Gamma, X} under the full cubic group scatters X onto all
	// three axes, which is not a Bravais lattice. This is the classic
	// Monkhorst-Pack-with-too-much-symmetry failure.
	cubic := lattice.FindSymmetries(
		geom.Identity(), [3]bool{ }, lattice.DefaultTolerance,
	)
	_, err := Build(
		geom.Identity(), []geom.Vec{ {0, 0, 0}, {0.5, 0, 0} }, cubic.Ops,
		[]int{ 1 }, lattice.DefaultTolerance,
	)
	if err != ErrNotBravais {
		t.Errorf("Expected ErrNotBravais, got %v.", err)
	}
}

func TestBuildEmptyInputs(t *testing.T) {
	if _, err := Build(
		geom.Identity(), []geom.Vec{ }, identityOps, []int{ 1 },
		lattice.DefaultTolerance,
	); err == nil {
		t.Errorf("Build accepted an empty k-point list.")
	}

	if _, err := Build(
		geom.Identity(), []geom.Vec{ {0, 0, 0} }, []geom.IMat{ },
		[]int{ 1 }, lattice.DefaultTolerance,
	); err == nil {
		t.Errorf("Build accepted an empty operation list.")
	}
}
