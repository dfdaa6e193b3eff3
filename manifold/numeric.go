package manifold

import (
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"
)

// DefaultFiniteDifferenceStep is the step used by the numerical derivatives when no settings are given.
const DefaultFiniteDifferenceStep = 1e-6

func jacobianSettings(settings *fd.JacobianSettings) *fd.JacobianSettings {
	if settings != nil {
		return settings
	}
	return &fd.JacobianSettings{Formula: fd.Central, Step: DefaultFiniteDifferenceStep}
}

// NumericalExpmapDerivative estimates, with finite differences, the H for which
// Expmap(v + d) ~= Expmap(v) * Expmap(H*d). It is the fallback for groups whose
// ExpmapWithDerivative has no closed form; expect roughly the square root of machine precision.
// A nil settings uses central differences with DefaultFiniteDifferenceStep.
func NumericalExpmapDerivative[G, V any](grp Group[G, V], v V, settings *fd.JacobianSettings) *mat.Dense {
	base := grp.Expmap(v)
	f := func(y, x []float64) {
		copy(y, LocalCoordinates(grp, base, grp.Expmap(grp.FromCoordinates(x))))
	}
	n := grp.Dim()
	dst := mat.NewDense(n, n, nil)
	fd.Jacobian(dst, f, grp.Coordinates(v), jacobianSettings(settings))
	return dst
}

// NumericalLogmapDerivative estimates the H for which Logmap(g * Expmap(d)) ~= Logmap(g) + H*d.
func NumericalLogmapDerivative[G, V any](grp Group[G, V], g G, settings *fd.JacobianSettings) *mat.Dense {
	f := func(y, x []float64) {
		copy(y, grp.Coordinates(grp.Logmap(Retract(grp, g, grp.FromCoordinates(x)))))
	}
	n := grp.Dim()
	dst := mat.NewDense(n, n, nil)
	fd.Jacobian(dst, f, make([]float64, n), jacobianSettings(settings))
	return dst
}
