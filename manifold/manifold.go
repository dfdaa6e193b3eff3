// Package manifold defines local coordinates and retractions once for any Lie group, so
// optimization code can move between group elements and flat tangent vectors without knowing
// which group it is working in.
package manifold

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Group is the contract a Lie group satisfies. G is the element type and V the tangent vector
// type. Implementations are stateless descriptors such as spatialmath.SO3 and spatialmath.SE3;
// Dim is the tangent dimension and the length of every Coordinates slice.
type Group[G, V any] interface {
	Dim() int
	Identity() G
	Compose(a, b G) G
	Between(a, b G) G
	AdjointMap(g G) *mat.Dense
	Logmap(g G) V
	Expmap(v V) G
	LogmapWithDerivative(g G) (V, *mat.Dense, error)
	ExpmapWithDerivative(v V) (G, *mat.Dense, error)
	Coordinates(v V) []float64
	FromCoordinates(c []float64) V
}

// Local returns the tangent vector at origin pointing to other: Logmap(origin^-1 * other).
func Local[G, V any](grp Group[G, V], origin, other G) V {
	return grp.Logmap(grp.Between(origin, other))
}

// Retract moves origin along v: origin * Expmap(v).
func Retract[G, V any](grp Group[G, V], origin G, v V) G {
	return grp.Compose(origin, grp.Expmap(v))
}

// LocalCoordinates is Local with the result flattened.
func LocalCoordinates[G, V any](grp Group[G, V], origin, other G) []float64 {
	return grp.Coordinates(Local(grp, origin, other))
}

// RetractCoordinates is Retract taking a flat tangent vector of length grp.Dim().
func RetractCoordinates[G, V any](grp Group[G, V], origin G, c []float64) (G, error) {
	if len(c) != grp.Dim() {
		var zero G
		return zero, errors.Errorf("tangent needs %d coordinates, got %d", grp.Dim(), len(c))
	}
	return Retract(grp, origin, grp.FromCoordinates(c)), nil
}
