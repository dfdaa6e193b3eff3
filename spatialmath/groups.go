package spatialmath

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
)

// SO3 describes the rotation group. It carries no state; its methods are the group operations on
// Rotation values with r3.Vector tangents, so generic code can be written once over any group.
type SO3 struct{}

// Dim returns the dimension of the SO(3) tangent space.
func (SO3) Dim() int { return 3 }

// Identity returns the identity rotation.
func (SO3) Identity() Rotation { return NewZeroRotation() }

// Compose returns a*b.
func (SO3) Compose(a, b Rotation) Rotation { return a.Compose(b) }

// Between returns a^-1 * b.
func (SO3) Between(a, b Rotation) Rotation { return a.Between(b) }

// AdjointMap returns the 3x3 adjoint of r.
func (SO3) AdjointMap(r Rotation) *mat.Dense { return r.AdjointMap() }

// Logmap returns the rotation vector of r.
func (SO3) Logmap(r Rotation) r3.Vector { return r.Logmap() }

// Expmap returns the rotation for the rotation vector omega.
func (SO3) Expmap(omega r3.Vector) Rotation { return RotationExpmap(omega) }

// LogmapWithDerivative returns the rotation vector of r and the derivative of the logarithm.
func (SO3) LogmapWithDerivative(r Rotation) (r3.Vector, *mat.Dense, error) {
	omega, H := r.LogmapWithDerivative()
	return omega, H, nil
}

// ExpmapWithDerivative returns the rotation for omega and the derivative of the exponential.
func (SO3) ExpmapWithDerivative(omega r3.Vector) (Rotation, *mat.Dense, error) {
	rot, H := RotationExpmapWithDerivative(omega)
	return rot, H, nil
}

// Coordinates flattens a rotation vector.
func (SO3) Coordinates(omega r3.Vector) []float64 {
	return []float64{omega.X, omega.Y, omega.Z}
}

// FromCoordinates builds a rotation vector from three values.
func (SO3) FromCoordinates(c []float64) r3.Vector {
	return r3.Vector{X: c[0], Y: c[1], Z: c[2]}
}

// SE3 describes the rigid transform group over Pose values with Twist tangents.
type SE3 struct{}

// Dim returns the dimension of the SE(3) tangent space.
func (SE3) Dim() int { return TwistDim }

// Identity returns the identity pose.
func (SE3) Identity() Pose { return NewZeroPose() }

// Compose returns a*b.
func (SE3) Compose(a, b Pose) Pose { return a.Compose(b) }

// Between returns a^-1 * b.
func (SE3) Between(a, b Pose) Pose { return a.Between(b) }

// AdjointMap returns the 6x6 adjoint of p.
func (SE3) AdjointMap(p Pose) *mat.Dense { return p.AdjointMap() }

// Logmap returns the twist of p.
func (SE3) Logmap(p Pose) Twist { return p.Logmap() }

// Expmap returns the pose for the twist xi.
func (SE3) Expmap(xi Twist) Pose { return PoseExpmap(xi) }

// LogmapWithDerivative has no closed form for SE(3) and always fails with ErrDerivativeUnavailable.
func (SE3) LogmapWithDerivative(Pose) (Twist, *mat.Dense, error) {
	return Twist{}, nil, NewDerivativeUnavailableError("SE3 logmap")
}

// ExpmapWithDerivative has no closed form for SE(3) and always fails with ErrDerivativeUnavailable.
// manifold.NumericalExpmapDerivative is the finite-difference substitute.
func (SE3) ExpmapWithDerivative(Twist) (Pose, *mat.Dense, error) {
	return Pose{}, nil, NewDerivativeUnavailableError("SE3 expmap")
}

// Coordinates flattens a twist, angular part first.
func (SE3) Coordinates(xi Twist) []float64 {
	return xi.Slice()
}

// FromCoordinates builds a twist from six values, angular part first.
func (SE3) FromCoordinates(c []float64) Twist {
	return Twist{
		Angular: r3.Vector{X: c[0], Y: c[1], Z: c[2]},
		Linear:  r3.Vector{X: c[3], Y: c[4], Z: c[5]},
	}
}
