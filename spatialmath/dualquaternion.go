package spatialmath

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/dualquat"
	"gonum.org/v1/gonum/num/quat"
)

// DualQuaternion returns p as a unit dual quaternion. The real part is the rotation quaternion and
// the dual part is half the translation (as a pure quaternion) multiplied by the rotation.
func (p Pose) DualQuaternion() dualquat.Number {
	rq := p.rot.Quaternion()
	half := quat.Number{Imag: p.trans.X / 2, Jmag: p.trans.Y / 2, Kmag: p.trans.Z / 2}
	return dualquat.Number{Real: rq, Dual: quat.Mul(half, rq)}
}

// NewPoseFromDualQuaternion returns the pose encoded by dq. The dual quaternion is rescaled to unit
// norm; a zero real part, or a dual part that is not orthogonal to the real part, is rejected.
func NewPoseFromDualQuaternion(dq dualquat.Number, opts ...ValidationOption) (Pose, error) {
	n := quat.Abs(dq.Real)
	if n == 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return Pose{}, NewInvalidGroupElementError("dual quaternion real part must have a finite non-zero norm")
	}
	rq := quat.Scale(1/n, dq.Real)
	dual := quat.Scale(1/n, dq.Dual)

	// A unit dual quaternion satisfies Re(conj(real)*dual) == 0.
	if dot := quat.Mul(quat.Conj(rq), dual).Real; math.Abs(dot) > newValidationOptions(opts).tolerance {
		return Pose{}, NewInvalidGroupElementError(fmt.Sprintf("dual part is not orthogonal to real part (%g)", dot))
	}

	rot, err := NewRotationFromQuaternion(rq)
	if err != nil {
		return Pose{}, err
	}
	t := quat.Scale(2, quat.Mul(dual, quat.Conj(rq)))
	return NewPose(rot, r3.Vector{X: t.Imag, Y: t.Jmag, Z: t.Kmag}), nil
}

// Matrix4 returns p as an mgl64 homogeneous transform.
func (p Pose) Matrix4() mgl64.Mat4 {
	m := mgl64.Ident4()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m.Set(i, j, p.rot.At(i, j))
		}
	}
	m.Set(0, 3, p.trans.X)
	m.Set(1, 3, p.trans.Y)
	m.Set(2, 3, p.trans.Z)
	return m
}

// NewPoseFromMatrix4 checks that m is a rigid transform and returns it as a Pose.
func NewPoseFromMatrix4(m mgl64.Mat4, opts ...ValidationOption) (Pose, error) {
	dense := mat.NewDense(4, 4, nil)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			dense.Set(i, j, m.At(i, j))
		}
	}
	return NewPoseFromMatrix(dense, opts...)
}
