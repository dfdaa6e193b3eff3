package manifold_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.viam.com/test"
	"gonum.org/v1/gonum/mat"

	"go.viam.com/liegroup/logging"
	"go.viam.com/liegroup/manifold"
	"go.viam.com/liegroup/spatialmath"
)

func TestLocalAllRetractAll(t *testing.T) {
	logger := logging.NewTestLogger(t)
	se3 := spatialmath.SE3{}
	rnd := rand.New(rand.NewSource(4))

	const n = 37
	origins := make([]spatialmath.Pose, n)
	others := make([]spatialmath.Pose, n)
	for i := range origins {
		origins[i] = se3.Expmap(randomTwist(rnd))
		others[i] = se3.Expmap(randomTwist(rnd))
	}

	tangents, err := manifold.LocalAll(context.Background(), logger, se3, origins, others)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, tangents, test.ShouldHaveLength, n)
	for i := range tangents {
		test.That(t, tangents[i], test.ShouldResemble, manifold.Local(se3, origins[i], others[i]))
	}

	retracted, err := manifold.RetractAll(context.Background(), logger, se3, origins, tangents)
	test.That(t, err, test.ShouldBeNil)
	for i := range retracted {
		test.That(t, retracted[i], test.ShouldResemble, manifold.Retract(se3, origins[i], tangents[i]))
		test.That(t, spatialmath.PoseAlmostEqual(retracted[i], others[i], 1e-6), test.ShouldBeTrue)
	}

	t.Run("empty input", func(t *testing.T) {
		out, err := manifold.LocalAll(context.Background(), logger, se3, nil, nil)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, out, test.ShouldHaveLength, 0)
	})

	t.Run("length mismatch", func(t *testing.T) {
		_, err := manifold.LocalAll(context.Background(), logger, se3, origins, others[:3])
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, err.Error(), test.ShouldContainSubstring, "37 origins but 3 others")

		_, err = manifold.RetractAll(context.Background(), logger, se3, origins[:1], tangents)
		test.That(t, err, test.ShouldNotBeNil)
	})

	t.Run("canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := manifold.RetractAll(ctx, logger, se3, origins, tangents)
		test.That(t, errors.Is(err, context.Canceled), test.ShouldBeTrue)
	})
}

func TestExpmapWithDerivativeAll(t *testing.T) {
	logger := logging.NewTestLogger(t)

	t.Run("SO3", func(t *testing.T) {
		so3 := spatialmath.SO3{}
		tangents := []r3.Vector{{X: 0.1}, {Y: -0.5, Z: 0.2}, {X: 1, Y: 1.2, Z: 1.3}, {}}
		rots, jacobians, err := manifold.ExpmapWithDerivativeAll(context.Background(), logger, so3, tangents)
		test.That(t, err, test.ShouldBeNil)
		for i, w := range tangents {
			rot, H := spatialmath.RotationExpmapWithDerivative(w)
			test.That(t, rots[i], test.ShouldResemble, rot)
			test.That(t, mat.Equal(jacobians[i], H), test.ShouldBeTrue)
		}
	})

	t.Run("SE3 reports every failure", func(t *testing.T) {
		se3 := spatialmath.SE3{}
		tangents := []spatialmath.Twist{{}, {Linear: r3.Vector{X: 1}}, {Angular: r3.Vector{Z: 0.3}}}
		_, jacobians, err := manifold.ExpmapWithDerivativeAll(context.Background(), logger, se3, tangents)
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, errors.Is(err, spatialmath.ErrDerivativeUnavailable), test.ShouldBeTrue)
		test.That(t, multierr.Errors(err), test.ShouldHaveLength, 3)
		test.That(t, err.Error(), test.ShouldContainSubstring, "tangent 2")
		for _, H := range jacobians {
			test.That(t, H, test.ShouldBeNil)
		}
	})
}
