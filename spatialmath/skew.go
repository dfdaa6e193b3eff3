package spatialmath

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
)

// Skew returns the skew-symmetric ("hat") matrix of v, the matrix for which Skew(v)*y == v.Cross(y).
func Skew(v r3.Vector) *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		0, -v.Z, v.Y,
		v.Z, 0, -v.X,
		-v.Y, v.X, 0,
	})
}

func identity3() *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	})
}

// identityPlus returns I + a*A + b*B for 3x3 A and B.
func identityPlus(a float64, aMat mat.Matrix, b float64, bMat mat.Matrix) *mat.Dense {
	out := identity3()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out.Set(i, j, out.At(i, j)+a*aMat.At(i, j)+b*bMat.At(i, j))
		}
	}
	return out
}
