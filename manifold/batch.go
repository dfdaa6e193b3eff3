package manifold

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gonum.org/v1/gonum/mat"

	"go.viam.com/liegroup/logging"
	"go.viam.com/liegroup/utils"
)

// LocalAll returns Local(grp, origins[i], others[i]) for every i. The work is spread over
// utils.ParallelFactor goroutines; group operations share no state so no locking is needed.
func LocalAll[G, V any](ctx context.Context, logger logging.Logger, grp Group[G, V], origins, others []G) ([]V, error) {
	if len(origins) != len(others) {
		return nil, errors.Errorf("have %d origins but %d others", len(origins), len(others))
	}
	out := make([]V, len(origins))
	err := utils.GroupWorkParallel(
		ctx,
		len(origins),
		func(numGroups int) {
			logger.Debugw("computing local coordinates", "count", len(origins), "workers", numGroups)
		},
		func(groupNum, groupSize, from, to int) (utils.MemberWorkFunc, utils.GroupWorkDoneFunc) {
			return func(memberNum, workNum int) {
				out[workNum] = Local(grp, origins[workNum], others[workNum])
			}, nil
		},
	)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RetractAll returns Retract(grp, origins[i], tangents[i]) for every i.
func RetractAll[G, V any](ctx context.Context, logger logging.Logger, grp Group[G, V], origins []G, tangents []V) ([]G, error) {
	if len(origins) != len(tangents) {
		return nil, errors.Errorf("have %d origins but %d tangents", len(origins), len(tangents))
	}
	out := make([]G, len(origins))
	err := utils.GroupWorkParallel(
		ctx,
		len(origins),
		func(numGroups int) {
			logger.Debugw("retracting", "count", len(origins), "workers", numGroups)
		},
		func(groupNum, groupSize, from, to int) (utils.MemberWorkFunc, utils.GroupWorkDoneFunc) {
			return func(memberNum, workNum int) {
				out[workNum] = Retract(grp, origins[workNum], tangents[workNum])
			}, nil
		},
	)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ExpmapWithDerivativeAll calls grp.ExpmapWithDerivative on every tangent. Failures are
// annotated with their index and combined into the returned error; the corresponding entries of
// the result slices are left as zero values while the successful ones are still filled in.
func ExpmapWithDerivativeAll[G, V any](
	ctx context.Context,
	logger logging.Logger,
	grp Group[G, V],
	tangents []V,
) ([]G, []*mat.Dense, error) {
	elems := make([]G, len(tangents))
	jacobians := make([]*mat.Dense, len(tangents))
	errs := make([]error, len(tangents))
	err := utils.GroupWorkParallel(
		ctx,
		len(tangents),
		func(numGroups int) {
			logger.Debugw("computing exponential map derivatives", "count", len(tangents), "workers", numGroups)
		},
		func(groupNum, groupSize, from, to int) (utils.MemberWorkFunc, utils.GroupWorkDoneFunc) {
			return func(memberNum, workNum int) {
				elems[workNum], jacobians[workNum], errs[workNum] = grp.ExpmapWithDerivative(tangents[workNum])
			}, nil
		},
	)
	if err != nil {
		return nil, nil, err
	}

	var combined error
	for i, e := range errs {
		if e != nil {
			combined = multierr.Append(combined, errors.Wrapf(e, "tangent %d", i))
		}
	}
	if combined != nil {
		logger.Debugw("exponential map derivatives failed", "failed", len(multierr.Errors(combined)), "count", len(tangents))
	}
	return elems, jacobians, combined
}
