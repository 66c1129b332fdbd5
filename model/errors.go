package model

import "fmt"

// InvalidInputError reports a malformed argument, inference does not
// start when it is returned.
type InvalidInputError struct {
	Arg    string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("model: invalid %s: %s", e.Arg, e.Reason)
}

func invalidInput(arg, format string, args ...interface{}) error {
	return &InvalidInputError{Arg: arg, Reason: fmt.Sprintf(format, args...)}
}

// DegenerateDistributionError reports a phi row whose k unnormalized
// responsibilities are all zero: the term has zero probability under
// every topic. The beta table must be smoothed before retrying.
type DegenerateDistributionError struct {
	Slot      int
	Term      uint32
	Iteration int
}

func (e *DegenerateDistributionError) Error() string {
	return fmt.Sprintf("model: zero mass for term %d (slot %d) at iteration %d",
		e.Term, e.Slot, e.Iteration)
}

// ConvergenceFailure is returned when the iteration cap is reached
// before gamma moved less than the tolerance. State holds the last
// iterate and can still be used as an approximate result.
type ConvergenceFailure struct {
	Iterations int
	Delta      float64
	State      *VariationalState
}

func (e *ConvergenceFailure) Error() string {
	return fmt.Sprintf("model: not converged after %d iterations, last delta %g",
		e.Iterations, e.Delta)
}
