package lattice

import (
	"math"
	"testing"

	"github.com/phil-mansfield/bravais/lib/geom"
)

func TestCandidates(t *testing.T) {
	c := &Candidates{ }
	seen := map[geom.IMat]bool{ }

	n := 0
	for m, ok := c.Next(); ok; m, ok = c.Next() {
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				if m[i][j] < -1 || m[i][j] > 1 {
					t.Fatalf("Candidate %d has out-of-range entry %d.",
						n, m[i][j])
				}
			}
		}
		if seen[m] {
			t.Fatalf("Candidate %d, %v, was generated twice.", n, m)
		}
		seen[m] = true
		n++
	}

	if n != NumCandidates {
		t.Errorf("Generated %d candidates, expected %d.", n, NumCandidates)
	}
	if !seen[geom.IdentityI()] {
		t.Errorf("The identity was never generated.")
	}

	c.Reset()
	if m, ok := c.Next(); !ok || m != Candidate(0) {
		t.Errorf("Reset didn't restart the enumeration.")
	}
}

func containsOp(ops []geom.IMat, target geom.IMat) bool {
	for _, op := range ops {
		if op == target { return true }
	}
	return false
}

func TestFindSymmetriesGroupOrder(t *testing.T) {
	sqrt3 := math.Sqrt(3)
	tests := []struct{
		name string
		R geom.Mat
		nOps int
	} {
		// Simple cubic: the full octahedral group.
		{"cubic", geom.Identity(), 48},
		// The same lattice, presented badly: symmetries are a property of
		// the lattice, not its presentation.
		{"cubic skewed", geom.FromCols(
			geom.Vec{1, 0, 0}, geom.Vec{10, 1, 0}, geom.Vec{0, 0, 1},
		), 48},
		// Hexagonal: 12 in-plane operations times +-z.
		{"hexagonal", geom.FromCols(
			geom.Vec{1, 0, 0}, geom.Vec{-0.5, sqrt3 / 2, 0},
			geom.Vec{0, 0, 2},
		), 24},
		// Tetragonal: one stretched axis.
		{"tetragonal", geom.FromCols(
			geom.Vec{1, 0, 0}, geom.Vec{0, 1, 0}, geom.Vec{0, 0, 3},
		), 16},
		// Triclinic: only the identity and inversion survive.
		{"triclinic", geom.FromCols(
			geom.Vec{1, 0, 0}, geom.Vec{0.41, 1.07, 0},
			geom.Vec{0.13, 0.21, 0.95},
		), 2},
	}

	for i := range tests {
		sym := FindSymmetries(tests[i].R, [3]bool{ }, DefaultTolerance)

		if len(sym.Ops) != tests[i].nOps {
			t.Errorf("%d) %s: found %d operations, expected %d.",
				i, tests[i].name, len(sym.Ops), tests[i].nOps)
		}
		if !containsOp(sym.Ops, geom.IdentityI()) {
			t.Errorf("%d) %s: the identity is missing.", i, tests[i].name)
		}

		// Every returned operation must leave the original lattice's metric
		// invariant.
		metric := tests[i].R.Transpose().Mul(tests[i].R)
		for j, op := range sym.Ops {
			opf := op.Float()
			diff := metric.Sub(opf.Transpose().Mul(metric).Mul(opf))
			if diff.Norm() > DefaultTolerance*metric.Norm() {
				t.Errorf("%d) %s: operation %d, %v, does not preserve " +
					"the metric.", i, tests[i].name, j, op)
			}
		}
	}
}

func TestFindSymmetriesTruncated(t *testing.T) {
	// A cubic slab truncated along z: in-plane square symmetry (8
	// operations) times z -> +-z.
	sym := FindSymmetries(
		geom.Identity(), [3]bool{ false, false, true }, DefaultTolerance,
	)

	if len(sym.Ops) != 16 {
		t.Errorf("Found %d operations for the slab, expected 16.",
			len(sym.Ops))
	}
	for i, op := range sym.Ops {
		if op[0][2] != 0 || op[1][2] != 0 || op[2][0] != 0 || op[2][1] != 0 {
			t.Errorf("Operation %d, %v, couples the truncated direction " +
				"to a periodic one.", i, op)
		}
	}
}

func TestFindSymmetriesDeterministic(t *testing.T) {
	// The scan is parallel, so make sure the merged order is stable.
	a := FindSymmetries(geom.Identity(), [3]bool{ }, DefaultTolerance)
	b := FindSymmetries(geom.Identity(), [3]bool{ }, DefaultTolerance)

	if len(a.Ops) != len(b.Ops) {
		t.Fatalf("Two identical searches found %d and %d operations.",
			len(a.Ops), len(b.Ops))
	}
	for i := range a.Ops {
		if a.Ops[i] != b.Ops[i] {
			t.Errorf("Operation %d differs between identical searches.", i)
		}
	}
}
