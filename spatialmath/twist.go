package spatialmath

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// TwistDim is the dimension of the SE(3) tangent space.
const TwistDim = 6

// Twist is a tangent vector of SE(3). When flattened the angular part always comes first
// (indices 0-2) and the linear part second (indices 3-5).
type Twist struct {
	Angular r3.Vector
	Linear  r3.Vector
}

// NewTwistFromSlice builds a twist from six values ordered angular first, linear second.
func NewTwistFromSlice(s []float64) (Twist, error) {
	if len(s) != TwistDim {
		return Twist{}, errors.Errorf("twist needs %d values, got %d", TwistDim, len(s))
	}
	return Twist{
		Angular: r3.Vector{X: s[0], Y: s[1], Z: s[2]},
		Linear:  r3.Vector{X: s[3], Y: s[4], Z: s[5]},
	}, nil
}

// Slice flattens the twist, angular part first.
func (t Twist) Slice() []float64 {
	return []float64{t.Angular.X, t.Angular.Y, t.Angular.Z, t.Linear.X, t.Linear.Y, t.Linear.Z}
}

// Vector returns the flattened twist as a gonum vector.
func (t Twist) Vector() *mat.VecDense {
	return mat.NewVecDense(TwistDim, t.Slice())
}

// Add returns the componentwise sum of two twists.
func (t Twist) Add(other Twist) Twist {
	return Twist{Angular: t.Angular.Add(other.Angular), Linear: t.Linear.Add(other.Linear)}
}

// Sub returns the componentwise difference of two twists.
func (t Twist) Sub(other Twist) Twist {
	return Twist{Angular: t.Angular.Sub(other.Angular), Linear: t.Linear.Sub(other.Linear)}
}

// Mul scales both parts of the twist.
func (t Twist) Mul(s float64) Twist {
	return Twist{Angular: t.Angular.Mul(s), Linear: t.Linear.Mul(s)}
}

// Norm is the Euclidean norm of the flattened twist.
func (t Twist) Norm() float64 {
	return mat.Norm(t.Vector(), 2)
}
