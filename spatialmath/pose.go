package spatialmath

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"

	"go.viam.com/liegroup/utils"
)

// Rotations smaller than this are treated as pure translations by the SE(3) logarithm.
const nearIdentityAngle = 1e-10

// Pose is an element of SE(3): a rotation followed by a translation. It is the decomposed form of
// the 4x4 homogeneous transform [R t; 0 1]. Poses are immutable values.
type Pose struct {
	rot   Rotation
	trans r3.Vector
}

// NewZeroPose returns the identity transform.
func NewZeroPose() Pose {
	return Pose{rot: NewZeroRotation()}
}

// NewPose returns the pose that rotates by rot and then translates by trans.
func NewPose(rot Rotation, trans r3.Vector) Pose {
	return Pose{rot: rot, trans: trans}
}

// NewPoseFromTranslation returns a pose with no rotation.
func NewPoseFromTranslation(trans r3.Vector) Pose {
	return Pose{rot: NewZeroRotation(), trans: trans}
}

// NewPoseFromMatrix checks that m is a 4x4 homogeneous rigid transform and returns it as a Pose.
func NewPoseFromMatrix(m mat.Matrix, opts ...ValidationOption) (Pose, error) {
	if r, c := m.Dims(); r != 4 || c != 4 {
		return Pose{}, NewInvalidGroupElementError(fmt.Sprintf("pose must be 4x4, got %dx%d", r, c))
	}
	o := newValidationOptions(opts)
	for j, want := range []float64{0, 0, 0, 1} {
		if got := m.At(3, j); !utils.Float64AlmostEqual(got, want, o.tolerance) {
			return Pose{}, NewInvalidGroupElementError(fmt.Sprintf("bottom row entry %d is %g, not %g", j, got, want))
		}
	}
	rot, err := NewRotationFromMatrix(mat.DenseCopyOf(m).Slice(0, 3, 0, 3), opts...)
	if err != nil {
		return Pose{}, err
	}
	trans := r3.Vector{X: m.At(0, 3), Y: m.At(1, 3), Z: m.At(2, 3)}
	if !utils.IsFinite(trans.X, trans.Y, trans.Z) {
		return Pose{}, NewInvalidGroupElementError("translation has non-finite entries")
	}
	return Pose{rot: rot, trans: trans}, nil
}

// Rotation returns the rotational part of the pose.
func (p Pose) Rotation() Rotation {
	return p.rot
}

// Translation returns the translational part of the pose.
func (p Pose) Translation() r3.Vector {
	return p.trans
}

// Matrix returns the pose as a 4x4 homogeneous transform.
func (p Pose) Matrix() *mat.Dense {
	m := mat.NewDense(4, 4, nil)
	m.Slice(0, 3, 0, 3).(*mat.Dense).Copy(p.rot.Matrix())
	m.Set(0, 3, p.trans.X)
	m.Set(1, 3, p.trans.Y)
	m.Set(2, 3, p.trans.Z)
	m.Set(3, 3, 1)
	return m
}

// Transform maps a point expressed in the pose's frame into the parent frame.
func (p Pose) Transform(pt r3.Vector) r3.Vector {
	return p.rot.Apply(pt).Add(p.trans)
}

// Compose returns p*other.
func (p Pose) Compose(other Pose) Pose {
	return Pose{
		rot:   p.rot.Compose(other.rot),
		trans: p.trans.Add(p.rot.Apply(other.trans)),
	}
}

// Inverse returns the transform undoing p.
func (p Pose) Inverse() Pose {
	inv := p.rot.Inverse()
	return Pose{rot: inv, trans: inv.Apply(p.trans).Mul(-1)}
}

// Between returns p^-1 * other.
func (p Pose) Between(other Pose) Pose {
	inv := p.rot.Inverse()
	return Pose{
		rot:   inv.Compose(other.rot),
		trans: inv.Apply(other.trans.Sub(p.trans)),
	}
}

// AdjointMap returns the 6x6 adjoint of p laid out as [R, hat(t)*R; 0, R]. With this layout it
// acts on twists stacked linear part first, unlike Twist.Slice.
func (p Pose) AdjointMap() *mat.Dense {
	R := p.rot.Matrix()
	var tR mat.Dense
	tR.Mul(Skew(p.trans), R)

	res := mat.NewDense(TwistDim, TwistDim, nil)
	res.Slice(0, 3, 0, 3).(*mat.Dense).Copy(R)
	res.Slice(0, 3, 3, 6).(*mat.Dense).Copy(&tR)
	res.Slice(3, 6, 3, 6).(*mat.Dense).Copy(R)
	return res
}

// Logmap returns the twist whose exponential is p.
func (p Pose) Logmap() Twist {
	w := p.rot.Logmap()
	t := p.trans
	theta := w.Norm()
	if theta < nearIdentityAngle {
		return Twist{Angular: w, Linear: t}
	}
	// Closed form of the inverse left Jacobian applied to t, with W = hat(w/theta).
	axis := w.Mul(1 / theta)
	Wt := axis.Cross(t)
	WWt := axis.Cross(Wt)
	u := t.Sub(Wt.Mul(theta / 2)).Add(WWt.Mul(1 - theta/(2*math.Tan(theta/2))))
	return Twist{Angular: w, Linear: u}
}

// PoseExpmap returns the rigid motion obtained by following the screw described by xi for unit time.
func PoseExpmap(xi Twist) Pose {
	w, v := xi.Angular, xi.Linear
	rot := RotationExpmap(w)
	theta2 := w.Dot(w)
	if theta2 <= machineEpsilon {
		return Pose{rot: rot, trans: v}
	}
	wxv := w.Cross(v)
	tParallel := w.Mul(w.Dot(v))
	t := wxv.Sub(rot.Apply(wxv)).Add(tParallel).Mul(1 / theta2)
	return Pose{rot: rot, trans: t}
}

// PoseAlmostEqual reports whether the rotations and translations of a and b agree entrywise within tol.
func PoseAlmostEqual(a, b Pose, tol float64) bool {
	return RotationAlmostEqual(a.rot, b.rot, tol) &&
		utils.Float64AlmostEqual(a.trans.X, b.trans.X, tol) &&
		utils.Float64AlmostEqual(a.trans.Y, b.trans.Y, tol) &&
		utils.Float64AlmostEqual(a.trans.Z, b.trans.Z, tol)
}
