package spatialmath

import (
	"math"
)

// LinearDependent reports whether a and b are parallel, i.e. a == k*b for some non-zero k, to
// within tol per component. Components that are below tol in both vectors are ignored; a
// component that is below tol in only one vector means the vectors are independent. Two
// all-zero vectors are not considered dependent.
func LinearDependent(a, b []float64, tol float64) bool {
	if len(a) != len(b) {
		return false
	}
	found := false
	scale := 1.0
	for i := range a {
		absA, absB := math.Abs(a[i]), math.Abs(b[i])
		if (absA > tol && absB < tol) || (absA < tol && absB > tol) {
			return false
		}
		if absA < tol && absB < tol {
			continue
		}
		if !found {
			if b[i] == 0 {
				return false
			}
			scale = a[i] / b[i]
			found = true
		} else if math.Abs(a[i]-b[i]*scale) > tol {
			return false
		}
	}
	return found
}
