package spatialmath

import (
	"github.com/pkg/errors"
)

var (
	// ErrDerivativeUnavailable is returned when an analytic Jacobian is requested for an operation
	// that has no closed form.
	ErrDerivativeUnavailable = errors.New("derivative not available")

	// ErrInvalidGroupElement is returned when raw data does not describe a rotation or pose.
	ErrInvalidGroupElement = errors.New("invalid group element")
)

// NewDerivativeUnavailableError is used when the caller asks op for a Jacobian it cannot produce.
func NewDerivativeUnavailableError(op string) error {
	return errors.Wrapf(ErrDerivativeUnavailable, "%s", op)
}

// NewInvalidGroupElementError is used when constructing an element from data that violates a group invariant.
func NewInvalidGroupElementError(reason string) error {
	return errors.Wrap(ErrInvalidGroupElement, reason)
}
