package spatialmath

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
)

// Quaternion returns the unit quaternion of r, with a non-negative real part.
func (r Rotation) Quaternion() quat.Number {
	r11, r12, r13 := r.mat[0], r.mat[1], r.mat[2]
	r21, r22, r23 := r.mat[3], r.mat[4], r.mat[5]
	r31, r32, r33 := r.mat[6], r.mat[7], r.mat[8]

	var q quat.Number
	// Branch on the largest of w, x, y, z so the divisor s never approaches zero.
	switch tr := r11 + r22 + r33; {
	case tr > 0:
		s := 2 * math.Sqrt(tr+1)
		q = quat.Number{Real: s / 4, Imag: (r32 - r23) / s, Jmag: (r13 - r31) / s, Kmag: (r21 - r12) / s}
	case r11 > r22 && r11 > r33:
		s := 2 * math.Sqrt(1+r11-r22-r33)
		q = quat.Number{Real: (r32 - r23) / s, Imag: s / 4, Jmag: (r12 + r21) / s, Kmag: (r13 + r31) / s}
	case r22 > r33:
		s := 2 * math.Sqrt(1+r22-r11-r33)
		q = quat.Number{Real: (r13 - r31) / s, Imag: (r12 + r21) / s, Jmag: s / 4, Kmag: (r23 + r32) / s}
	default:
		s := 2 * math.Sqrt(1+r33-r11-r22)
		q = quat.Number{Real: (r21 - r12) / s, Imag: (r13 + r31) / s, Jmag: (r23 + r32) / s, Kmag: s / 4}
	}
	if q.Real < 0 {
		q = Flip(q)
	}
	return q
}

// NewRotationFromQuaternion returns the rotation described by q. q is normalized first; a zero
// quaternion is rejected.
func NewRotationFromQuaternion(q quat.Number) (Rotation, error) {
	n := quat.Abs(q)
	if n == 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return Rotation{}, NewInvalidGroupElementError("quaternion must have a finite non-zero norm")
	}
	q = quat.Scale(1/n, q)
	w, x, y, z := q.Real, q.Imag, q.Jmag, q.Kmag
	return Rotation{[9]float64{
		1 - 2*(y*y+z*z), 2 * (x*y - w*z), 2 * (x*z + w*y),
		2 * (x*y + w*z), 1 - 2*(x*x+z*z), 2 * (y*z - w*x),
		2 * (x*z - w*y), 2 * (y*z + w*x), 1 - 2*(x*x+y*y),
	}}, nil
}

// Flip will multiply a quaternion by -1, returning a quaternion representing the same orientation but in the opposing octant.
func Flip(q quat.Number) quat.Number {
	return quat.Number{Real: -q.Real, Imag: -q.Imag, Jmag: -q.Jmag, Kmag: -q.Kmag}
}
