package geom

import (
	"math"
	"testing"
)

func matEps(x, y Mat, eps float64) bool {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(x[i][j] - y[i][j]) > eps { return false }
		}
	}
	return true
}

func TestMulVec(t *testing.T) {
	tests := []struct{
		m Mat
		v, out Vec
	} {
		{Identity(), Vec{1, 2, 3}, Vec{1, 2, 3}},
		{Mat{ {2, 0, 0}, {0, 1, 0}, {0, 0, 1} }, Vec{1, 1, 1}, Vec{2, 1, 1}},
		{Mat{ {0, 1, 0}, {1, 0, 0}, {0, 0, 1} }, Vec{1, 2, 3}, Vec{2, 1, 3}},
	}

	for i := range tests {
		out := tests[i].m.MulVec(tests[i].v)
		if out != tests[i].out {
			t.Errorf("%d) Expected %v, got %v.", i, tests[i].out, out)
		}
	}
}

func TestDetInverse(t *testing.T) {
	tests := []struct{
		m Mat
		det float64
	} {
		{Identity(), 1},
		{Mat{ {2, 0, 0}, {0, 1, 0}, {0, 0, 1} }, 2},
		{Mat{ {1, 10, 0}, {0, 1, 0}, {0, 0, 1} }, 1},
		{Mat{ {1, 0.3, 0}, {0, 1, 0.2}, {0, 0, 1} }, 1},
		{Mat{ {0, 0.5, 0.5}, {0.5, 0, 0.5}, {0.5, 0.5, 0} }, 0.25},
	}

	for i := range tests {
		det := tests[i].m.Det()
		if math.Abs(det - tests[i].det) > 1e-10 {
			t.Errorf("%d) Expected det %g, got %g.", i, tests[i].det, det)
		}

		prod := tests[i].m.Mul(tests[i].m.Inverse())
		if !matEps(prod, Identity(), 1e-10) {
			t.Errorf("%d) m * m^-1 = %v, not the identity.", i, prod)
		}
	}
}

func TestSolve(t *testing.T) {
	m := Mat{ {2, 1, 0}, {0, 1, 0}, {1, 0, 1} }
	x := Vec{ 1, -2, 3 }
	b := m.MulVec(x)

	got := m.Solve(b)
	for i := 0; i < 3; i++ {
		if math.Abs(got[i] - x[i]) > 1e-10 {
			t.Errorf("Expected solution %v, got %v.", x, got)
			break
		}
	}
}

func TestCrossBox(t *testing.T) {
	x, y, z := Vec{1, 0, 0}, Vec{0, 1, 0}, Vec{0, 0, 1}

	if cr := x.Cross(y); cr != z {
		t.Errorf("x cross y = %v, expected %v.", cr, z)
	}
	if cr := y.Cross(x); cr != z.Scale(-1) {
		t.Errorf("y cross x = %v, expected %v.", cr, z.Scale(-1))
	}
	if b := Box(x, y, z); b != 1 {
		t.Errorf("Box(x, y, z) = %g, expected 1.", b)
	}
	if b := Box(x, y, x); b != 0 {
		t.Errorf("Box(x, y, x) = %g, expected 0.", b)
	}
}

func TestIMatDet(t *testing.T) {
	tests := []struct{
		m IMat
		det int
	} {
		{IdentityI(), 1},
		{IMat{ {2, 0, 0}, {0, 1, 0}, {0, 0, 1} }, 2},
		{IMat{ {1, -10, 0}, {0, 1, 0}, {0, 0, 1} }, 1},
		{IMat{ {0, 1, 0}, {1, 0, 0}, {0, 0, 1} }, -1},
	}

	for i := range tests {
		if det := tests[i].m.Det(); det != tests[i].det {
			t.Errorf("%d) Expected det %d, got %d.", i, tests[i].det, det)
		}
	}
}

func TestRoundVec(t *testing.T) {
	tests := []struct{
		v Vec
		iv IVec
		err float64
	} {
		{Vec{0, 0, 0}, IVec{0, 0, 0}, 0},
		{Vec{1.0001, -2.0001, 0}, IVec{1, -2, 0}, 0.0001},
		{Vec{0.4, 0, 0}, IVec{0, 0, 0}, 0.4},
		{Vec{-0.9999, 2, 3}, IVec{-1, 2, 3}, 0.0001},
	}

	for i := range tests {
		iv, err := RoundVec(tests[i].v)
		if iv != tests[i].iv {
			t.Errorf("%d) Expected %v, got %v.", i, tests[i].iv, iv)
		} else if math.Abs(err - tests[i].err) > 1e-10 {
			t.Errorf("%d) Expected residual %g, got %g.",
				i, tests[i].err, err)
		}
	}
}

func TestRoundMat(t *testing.T) {
	m := Mat{ {2.0001, 0, 0}, {0, 0.9999, 0}, {0, 0, 1} }
	im, err := RoundMat(m)

	exp := IMat{ {2, 0, 0}, {0, 1, 0}, {0, 0, 1} }
	if im != exp {
		t.Errorf("Expected %v, got %v.", exp, im)
	}
	if math.Abs(err - 0.0001) > 1e-10 {
		t.Errorf("Expected residual 0.0001, got %g.", err)
	}
}

func TestTransposeMul(t *testing.T) {
	m := Mat{ {1, 2, 3}, {4, 5, 6}, {7, 8, 10} }
	mt := m.Transpose()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if m[i][j] != mt[j][i] {
				t.Fatalf("Transpose mismatch at (%d, %d).", i, j)
			}
		}
	}

	// (m * m^-1) exercises Mul against gonum's inverse.
	if !matEps(m.Mul(m.Inverse()), Identity(), 1e-9) {
		t.Errorf("m * m^-1 is not the identity.")
	}
}
