package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
)

// See here for a thorough explanation: https://en.wikipedia.org/wiki/Axis%E2%80%93angle_representation
// Basic explanation: Imagine a 3d cartesian grid centered at 0,0,0, and a sphere of radius 1 centered at
// that same point. An orientation can be expressed by first specifying an axis, i.e. a line from the origin
// to a point on that sphere, represented by (rx, ry, rz), and a rotation around that axis, theta.
// These four numbers can be used as-is (R4), or they can be converted to R3, where theta is multiplied by each of
// the unit sphere components to give a vector whose length is theta and whose direction is the original axis.
// The R3 form is exactly the SO(3) tangent vector used by RotationExpmap and Rotation.Logmap.

// R4AA represents an R4 axis angle.
type R4AA struct {
	Theta float64
	RX    float64
	RY    float64
	RZ    float64
}

// NewR4AA creates an R4AA representing no rotation about +Z.
func NewR4AA() *R4AA {
	return &R4AA{Theta: 0, RX: 0, RY: 0, RZ: 1}
}

// ToR3 converts an R4 angle axis to R3.
func (r4 *R4AA) ToR3() r3.Vector {
	return r3.Vector{X: r4.RX * r4.Theta, Y: r4.RY * r4.Theta, Z: r4.RZ * r4.Theta}
}

// Normalize scales the x, y, and z components of a R4 axis angle to be on the unit sphere.
func (r4 *R4AA) Normalize() error {
	norm := math.Sqrt(r4.RX*r4.RX + r4.RY*r4.RY + r4.RZ*r4.RZ)
	if norm == 0.0 { // prevent division by 0
		return NewInvalidGroupElementError("cannot normalize axis angle with a zero axis")
	}
	r4.RX /= norm
	r4.RY /= norm
	r4.RZ /= norm
	return nil
}

// Rotation returns the rotation of Theta radians about the (normalized) axis.
func (r4 *R4AA) Rotation() (Rotation, error) {
	normalized := *r4
	if err := normalized.Normalize(); err != nil {
		return Rotation{}, err
	}
	return RotationExpmap(normalized.ToR3()), nil
}

// R3ToR4 converts an R3 angle axis to R4.
func R3ToR4(aa r3.Vector) *R4AA {
	theta := aa.Norm()
	if theta == 0 {
		return NewR4AA()
	}
	return &R4AA{theta, aa.X / theta, aa.Y / theta, aa.Z / theta}
}

// AxisAngles returns the rotation in axis angle representation with Theta in [0, pi].
func (r Rotation) AxisAngles() *R4AA {
	return R3ToR4(r.Logmap())
}

// NewRotationFromAxisAngle returns the rotation of angle radians about axis, which need not be unit length.
func NewRotationFromAxisAngle(axis r3.Vector, angle float64) (Rotation, error) {
	return (&R4AA{Theta: angle, RX: axis.X, RY: axis.Y, RZ: axis.Z}).Rotation()
}
