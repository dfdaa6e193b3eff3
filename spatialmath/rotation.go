// Package spatialmath implements closed-form arithmetic on the rotation group SO(3) and the rigid
// transform group SE(3): composition, exponential and logarithm maps, adjoints and the Jacobians
// of those maps where a closed form exists.
package spatialmath

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
	"go.uber.org/multierr"
	"gonum.org/v1/gonum/mat"

	"go.viam.com/liegroup/utils"
)

// machineEpsilon is the float64 machine epsilon. Squared rotation angles at or below it are
// treated as zero rotations.
const machineEpsilon = 0x1p-52

const (
	// traces within this distance of -1 are rotations close enough to pi that the axis must be
	// recovered from the symmetric part of the matrix.
	nearPiTraceTolerance = 1e-3
	// trace-3 below this is the ordinary case; above it the angle is close to 0 (mod 2pi).
	nearZeroTraceTolerance = -1e-6
)

// DefaultOrthonormalTolerance bounds how far raw data may be from a proper rotation before
// the constructors reject it.
const DefaultOrthonormalTolerance = 1e-6

// Rotation is an element of SO(3): a 3x3 orthonormal matrix with determinant 1, stored row-major.
// Rotations are immutable values. The zero value is not a rotation; use NewZeroRotation,
// RotationExpmap or one of the constructors.
type Rotation struct {
	mat [9]float64
}

// ValidationOption configures how raw data is checked when it is turned into a group element.
type ValidationOption func(*validationOptions)

type validationOptions struct {
	tolerance float64
}

// WithTolerance sets the largest accepted deviation from orthonormality and unit determinant.
func WithTolerance(tolerance float64) ValidationOption {
	return func(opts *validationOptions) {
		opts.tolerance = tolerance
	}
}

func newValidationOptions(opts []ValidationOption) validationOptions {
	o := validationOptions{tolerance: DefaultOrthonormalTolerance}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewZeroRotation returns the rotation which signifies no rotation.
func NewZeroRotation() Rotation {
	return Rotation{[9]float64{1, 0, 0, 0, 1, 0, 0, 0, 1}}
}

// NewRotationFromMatrix checks that m is a proper rotation matrix and returns it as a Rotation.
// Every violated invariant is reported; each one matches ErrInvalidGroupElement.
func NewRotationFromMatrix(m mat.Matrix, opts ...ValidationOption) (Rotation, error) {
	if r, c := m.Dims(); r != 3 || c != 3 {
		return Rotation{}, NewInvalidGroupElementError(fmt.Sprintf("rotation must be 3x3, got %dx%d", r, c))
	}
	rot := rotationFromMatrix(m)
	if !utils.IsFinite(rot.mat[:]...) {
		return Rotation{}, NewInvalidGroupElementError("rotation has non-finite entries")
	}
	if err := rot.validate(newValidationOptions(opts).tolerance); err != nil {
		return Rotation{}, err
	}
	return rot, nil
}

func (r Rotation) validate(tolerance float64) error {
	m := r.Matrix()
	var rtr mat.Dense
	rtr.Mul(m.T(), m)
	rtr.Sub(&rtr, identity3())

	var err error
	if dev := mat.Norm(&rtr, 2); dev > tolerance {
		err = multierr.Append(err, NewInvalidGroupElementError(fmt.Sprintf("R^T*R deviates from identity by %g", dev)))
	}
	if det := mat.Det(m); math.Abs(det-1) > tolerance {
		err = multierr.Append(err, NewInvalidGroupElementError(fmt.Sprintf("determinant is %g, not 1", det)))
	}
	return err
}

func rotationFromMatrix(m mat.Matrix) Rotation {
	var r Rotation
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r.mat[3*i+j] = m.At(i, j)
		}
	}
	return r
}

// At returns the entry at the given row and column.
func (r Rotation) At(row, col int) float64 {
	return r.mat[3*row+col]
}

// Matrix returns a copy of the rotation as a 3x3 dense matrix.
func (r Rotation) Matrix() *mat.Dense {
	data := make([]float64, 9)
	copy(data, r.mat[:])
	return mat.NewDense(3, 3, data)
}

// Apply rotates v.
func (r Rotation) Apply(v r3.Vector) r3.Vector {
	return r3.Vector{
		X: r.mat[0]*v.X + r.mat[1]*v.Y + r.mat[2]*v.Z,
		Y: r.mat[3]*v.X + r.mat[4]*v.Y + r.mat[5]*v.Z,
		Z: r.mat[6]*v.X + r.mat[7]*v.Y + r.mat[8]*v.Z,
	}
}

// Compose returns r*other.
func (r Rotation) Compose(other Rotation) Rotation {
	var out mat.Dense
	out.Mul(r.Matrix(), other.Matrix())
	return rotationFromMatrix(&out)
}

// Inverse returns the inverse rotation, which for an orthonormal matrix is its transpose.
func (r Rotation) Inverse() Rotation {
	return rotationFromMatrix(r.Matrix().T())
}

// Between returns r^-1 * other, the rotation taking r to other.
func (r Rotation) Between(other Rotation) Rotation {
	var out mat.Dense
	out.Mul(r.Matrix().T(), other.Matrix())
	return rotationFromMatrix(&out)
}

// AdjointMap returns the 3x3 adjoint of r, which for SO(3) is the rotation matrix itself.
func (r Rotation) AdjointMap() *mat.Dense {
	return r.Matrix()
}

// Logmap returns the rotation vector of r. Its magnitude, the rotation angle, is in [0, pi].
func (r Rotation) Logmap() r3.Vector {
	r11, r12, r13 := r.mat[0], r.mat[1], r.mat[2]
	r21, r22, r23 := r.mat[3], r.mat[4], r.mat[5]
	r31, r32, r33 := r.mat[6], r.mat[7], r.mat[8]

	tr := r11 + r22 + r33

	if math.Abs(tr+1) < nearPiTraceTolerance {
		// Angle near pi. Work from the largest diagonal entry so the square root stays well away
		// from zero; w carries the sign of the (vanishing) antisymmetric part.
		var w, q1, q2, q3 float64
		var axis func(a, b, c float64) r3.Vector
		switch {
		case r33 > r22 && r33 > r11:
			w = r21 - r12
			q1, q2, q3 = 2+2*r33, r31+r13, r23+r32
			axis = func(a, b, c float64) r3.Vector { return r3.Vector{X: b, Y: c, Z: a} }
		case r22 > r11:
			w = r13 - r31
			q1, q2, q3 = 2+2*r22, r23+r32, r12+r21
			axis = func(a, b, c float64) r3.Vector { return r3.Vector{X: c, Y: a, Z: b} }
		default:
			w = r32 - r23
			q1, q2, q3 = 2+2*r11, r12+r21, r31+r13
			axis = func(a, b, c float64) r3.Vector { return r3.Vector{X: a, Y: b, Z: c} }
		}
		norm := math.Sqrt(q1*q1 + q2*q2 + q3*q3 + w*w)
		sgnW := 1.
		if w < 0 {
			sgnW = -1.
		}
		mag := math.Pi - (2*sgnW*w)/norm
		scale := 0.5 / math.Sqrt(q1) * mag
		return axis(q1, q2, q3).Mul(sgnW * scale)
	}

	var magnitude float64
	tr3 := tr - 3.0 // could be slightly positive if the matrix is not quite orthonormal
	if tr3 < nearZeroTraceTolerance {
		theta := math.Acos((tr - 1.0) / 2.0)
		magnitude = theta / (2.0 * math.Sin(theta))
	} else {
		// theta near 0 (mod 2pi): Taylor expansion of theta/(2 sin theta) in the trace.
		magnitude = 0.5 - tr3/12.0 + tr3*tr3/60.0
	}
	return r3.Vector{X: r32 - r23, Y: r13 - r31, Z: r21 - r12}.Mul(magnitude)
}

// LogmapWithDerivative returns the rotation vector of r together with the derivative of the
// logarithm, H, such that Logmap(r * RotationExpmap(d)) ~= r.Logmap() + H*d for small d.
func (r Rotation) LogmapWithDerivative() (r3.Vector, *mat.Dense) {
	omega := r.Logmap()
	return omega, RotationLogmapDerivative(omega)
}

// RotationLogmapDerivative returns the inverse of the right Jacobian of the exponential map at
// omega, the derivative of the logarithm at RotationExpmap(omega). |omega| must not exceed pi.
func RotationLogmapDerivative(omega r3.Vector) *mat.Dense {
	theta2 := omega.Dot(omega)
	W := Skew(omega)
	if theta2 <= machineEpsilon {
		return identityPlus(0.5, W, 0, W)
	}
	var WW mat.Dense
	WW.Mul(W, W)
	theta := math.Sqrt(theta2)
	halfTheta := theta / 2
	// 1/theta^2 - (1+cos)/(2 theta sin), rewritten with the half angle so it stays finite at pi.
	c := 1/theta2 - math.Cos(halfTheta)/(2*theta*math.Sin(halfTheta))
	return identityPlus(0.5, W, c, &WW)
}

// RotationExpmap returns the rotation obtained by turning |omega| radians about omega.
func RotationExpmap(omega r3.Vector) Rotation {
	rot, _ := rotationExpmap(omega, false)
	return rot
}

// RotationExpmapWithDerivative returns RotationExpmap(omega) and its derivative, the right
// Jacobian H for which RotationExpmap(omega + d) ~= RotationExpmap(omega) * RotationExpmap(H*d).
func RotationExpmapWithDerivative(omega r3.Vector) (Rotation, *mat.Dense) {
	return rotationExpmap(omega, true)
}

func rotationExpmap(omega r3.Vector, wantDerivative bool) (Rotation, *mat.Dense) {
	theta2 := omega.Dot(omega)
	W := Skew(omega)

	if theta2 <= machineEpsilon {
		var dexp *mat.Dense
		if wantDerivative {
			dexp = identityPlus(-0.5, W, 0, W)
		}
		return rotationFromMatrix(identityPlus(1, W, 0, W)), dexp
	}

	theta := math.Sqrt(theta2)
	sinTheta := math.Sin(theta)
	s2 := math.Sin(theta / 2)
	oneMinusCos := 2 * utils.Square(s2)

	var K, KK mat.Dense
	K.Scale(1/theta, W)
	KK.Mul(&K, &K)

	var dexp *mat.Dense
	if wantDerivative {
		a := oneMinusCos / theta
		b := 1.0 - sinTheta/theta
		dexp = identityPlus(-a, &K, b, &KK)
	}
	return rotationFromMatrix(identityPlus(sinTheta, &K, oneMinusCos, &KK)), dexp
}

// RotationAlmostEqual reports whether every entry of a and b differs by less than tol.
func RotationAlmostEqual(a, b Rotation, tol float64) bool {
	for i := range a.mat {
		if !utils.Float64AlmostEqual(a.mat[i], b.mat[i], tol) {
			return false
		}
	}
	return true
}
