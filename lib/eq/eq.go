/*package eq is a simple package for telling whether two arrays or matrices
are equal to one another, exactly or within a tolerance.*/
package eq

import (
	"math"

	"github.com/phil-mansfield/bravais/lib/geom"
)

// Ints returns true if two []int arrays are the same and false otherwise.
func Ints(x, y []int) bool {
	if len(x) != len(y) { return false }
	for i := range x {
		if x[i] != y[i] { return false }
	}
	return true
}

// Float64s returns true if two []float64 arrays are the same and false
// otherwise.
func Float64s(x, y []float64) bool {
	if len(x) != len(y) { return false }
	for i := range x {
		if x[i] != y[i] { return false }
	}
	return true
}

// Float64sEps returns true if the two []float64 arrays are within eps of one
// another and false otherwise.
func Float64sEps(x, y []float64, eps float64) bool {
	if len(x) != len(y) { return false }
	for i := range x {
		if x[i] + eps < y[i] || x[i] - eps > y[i] {
			return false
		}
	}
	return true
}

// IVecs returns true if two []geom.IVec arrays are the same and false
// otherwise.
func IVecs(x, y []geom.IVec) bool {
	if len(x) != len(y) { return false }
	for i := range x {
		if x[i] != y[i] { return false }
	}
	return true
}

// VecEps returns true if the two vectors are within eps of one another in
// every component and false otherwise.
func VecEps(x, y geom.Vec, eps float64) bool {
	for i := 0; i < 3; i++ {
		if math.Abs(x[i] - y[i]) > eps { return false }
	}
	return true
}

// VecsEps returns true if the two []geom.Vec arrays are within eps of one
// another element-wise and false otherwise.
func VecsEps(x, y []geom.Vec, eps float64) bool {
	if len(x) != len(y) { return false }
	for i := range x {
		if !VecEps(x[i], y[i], eps) { return false }
	}
	return true
}

// MatEps returns true if the two matrices are within eps of one another in
// every entry and false otherwise.
func MatEps(x, y geom.Mat, eps float64) bool {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(x[i][j] - y[i][j]) > eps { return false }
		}
	}
	return true
}

// IMats returns true if two []geom.IMat arrays are the same and false
// otherwise.
func IMats(x, y []geom.IMat) bool {
	if len(x) != len(y) { return false }
	for i := range x {
		if x[i] != y[i] { return false }
	}
	return true
}
