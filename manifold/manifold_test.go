package manifold_test

import (
	"math/rand"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"go.viam.com/liegroup/manifold"
	"go.viam.com/liegroup/spatialmath"
)

func randomVector(rnd *rand.Rand, bound float64) r3.Vector {
	return r3.Vector{
		X: (rnd.Float64()*2 - 1) * bound,
		Y: (rnd.Float64()*2 - 1) * bound,
		Z: (rnd.Float64()*2 - 1) * bound,
	}
}

func randomTwist(rnd *rand.Rand) spatialmath.Twist {
	return spatialmath.Twist{Angular: randomVector(rnd, 0.8), Linear: randomVector(rnd, 0.8).Mul(3)}
}

func coordinatesAlmostEqual(t *testing.T, actual, expected []float64, tol float64) {
	t.Helper()
	test.That(t, actual, test.ShouldHaveLength, len(expected))
	test.That(t, floats.EqualApprox(actual, expected, tol), test.ShouldBeTrue)
}

func TestLocalOfSelfIsZero(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	so3 := spatialmath.SO3{}
	se3 := spatialmath.SE3{}
	for i := 0; i < 20; i++ {
		r := so3.Expmap(randomVector(rnd, 0.8))
		coordinatesAlmostEqual(t, manifold.LocalCoordinates(so3, r, r), make([]float64, 3), 1e-14)

		p := se3.Expmap(randomTwist(rnd))
		coordinatesAlmostEqual(t, manifold.LocalCoordinates(se3, p, p), make([]float64, 6), 1e-12)
	}
}

func TestLocalRetractSO3(t *testing.T) {
	so3 := spatialmath.SO3{}
	t.Run("about a shared axis", func(t *testing.T) {
		a := so3.Expmap(r3.Vector{Z: 0.1})
		b := so3.Expmap(r3.Vector{Z: 0.3})
		coordinatesAlmostEqual(t, manifold.LocalCoordinates(so3, a, b), []float64{0, 0, 0.2}, 1e-12)

		c, err := manifold.RetractCoordinates(so3, a, []float64{0, 0, 0.2})
		test.That(t, err, test.ShouldBeNil)
		test.That(t, spatialmath.RotationAlmostEqual(c, b, 1e-12), test.ShouldBeTrue)
	})

	t.Run("retract inverts local", func(t *testing.T) {
		rnd := rand.New(rand.NewSource(2))
		for i := 0; i < 100; i++ {
			x := so3.Expmap(randomVector(rnd, 0.8))
			v := randomVector(rnd, 0.8)
			y := manifold.Retract(so3, x, v)
			coordinatesAlmostEqual(t, manifold.LocalCoordinates(so3, x, y), so3.Coordinates(v), 1e-10)
			test.That(t, spatialmath.RotationAlmostEqual(manifold.Retract(so3, x, manifold.Local(so3, x, y)), y, 1e-10),
				test.ShouldBeTrue)
		}
	})
}

func TestLocalRetractSE3(t *testing.T) {
	se3 := spatialmath.SE3{}
	rnd := rand.New(rand.NewSource(3))
	for i := 0; i < 100; i++ {
		x := se3.Expmap(randomTwist(rnd))
		v := randomTwist(rnd)
		y := manifold.Retract(se3, x, v)
		coordinatesAlmostEqual(t, manifold.LocalCoordinates(se3, x, y), v.Slice(), 1e-6)
		test.That(t, spatialmath.PoseAlmostEqual(manifold.Retract(se3, x, manifold.Local(se3, x, y)), y, 1e-6),
			test.ShouldBeTrue)
	}
}

func TestRetractCoordinatesLength(t *testing.T) {
	_, err := manifold.RetractCoordinates(spatialmath.SE3{}, spatialmath.NewZeroPose(), []float64{1, 2, 3})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "needs 6 coordinates, got 3")

	_, err = manifold.RetractCoordinates(spatialmath.SO3{}, spatialmath.NewZeroRotation(), []float64{1, 2, 3, 4})
	test.That(t, err, test.ShouldNotBeNil)
}

func TestNumericalDerivativesSO3(t *testing.T) {
	so3 := spatialmath.SO3{}
	for _, w := range []r3.Vector{
		{X: 0.1, Y: 0.27, Z: -0.2},
		{X: 1, Y: 1.2, Z: 1.3},
		{X: -2, Y: 0.3, Z: 0.5},
	} {
		_, analytic, err := so3.ExpmapWithDerivative(w)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, mat.EqualApprox(manifold.NumericalExpmapDerivative(so3, w, nil), analytic, 1e-6), test.ShouldBeTrue)

		rot := so3.Expmap(w)
		_, analyticLog, err := so3.LogmapWithDerivative(rot)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, mat.EqualApprox(manifold.NumericalLogmapDerivative(so3, rot, nil), analyticLog, 1e-6), test.ShouldBeTrue)
	}
}

func TestNumericalDerivativesSE3(t *testing.T) {
	se3 := spatialmath.SE3{}
	xi := spatialmath.Twist{
		Angular: r3.Vector{X: 0.4, Y: -0.2, Z: 0.3},
		Linear:  r3.Vector{X: 1, Y: 0.5, Z: -0.7},
	}
	H := manifold.NumericalExpmapDerivative(se3, xi, nil)
	rows, cols := H.Dims()
	test.That(t, rows, test.ShouldEqual, 6)
	test.That(t, cols, test.ShouldEqual, 6)

	// Expmap(xi + d) ~= Expmap(xi) * Expmap(H*d) to first order.
	d := spatialmath.Twist{
		Angular: r3.Vector{X: 1e-4, Y: -2e-4, Z: 0.5e-4},
		Linear:  r3.Vector{X: -1e-4, Y: 1e-4, Z: 3e-4},
	}
	var hd mat.VecDense
	hd.MulVec(H, d.Vector())
	predicted := manifold.Retract(se3, se3.Expmap(xi), se3.FromCoordinates(hd.RawVector().Data))
	test.That(t, spatialmath.PoseAlmostEqual(predicted, se3.Expmap(xi.Add(d)), 1e-7), test.ShouldBeTrue)

	// The logarithm's derivative inverts the exponential's.
	Hl := manifold.NumericalLogmapDerivative(se3, se3.Expmap(xi), nil)
	var prod mat.Dense
	prod.Mul(Hl, H)
	test.That(t, mat.EqualApprox(&prod, mat.NewDiagDense(6, []float64{1, 1, 1, 1, 1, 1}), 1e-6), test.ShouldBeTrue)
}
