package entropic

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by assessment calls.  Use errors.Is to classify
// a failure; every error returned by this package wraps one of these.
var (
	// ErrInvalidData indicates a nil or empty input buffer.
	ErrInvalidData = errors.New("invalid input data")

	// ErrWordSize indicates a requested symbol width outside [1,8]
	// (0 is accepted as a request for auto-detection).
	ErrWordSize = errors.New("word size must be between 1 and 8 bits")

	// ErrDegenerateAlphabet indicates the sample contains a single distinct
	// symbol.  No entropy is awarded and no estimators are run.
	ErrDegenerateAlphabet = errors.New("symbol alphabet consists of 1 symbol, no entropy awarded")

	// ErrAllocation indicates a resource failure inside the estimator suite,
	// typically from a bridge to a native library.
	ErrAllocation = errors.New("estimator suite resource failure")

	// ErrEstimator indicates an unexpected failure inside an estimator call
	// or the surrounding aggregation arithmetic.
	ErrEstimator = errors.New("estimator failure")
)

// AssessmentError records the operation that failed, the sentinel that
// classifies the failure, and any diagnostic text recovered from the
// underlying estimator.  The diagnostic is preserved verbatim.
type AssessmentError struct {
	Op  string
	Err error
	Msg string
}

func (e *AssessmentError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *AssessmentError) Unwrap() error {
	return e.Err
}

func newError(op string, err error, msg string) error {
	return &AssessmentError{
		Op:  op,
		Err: err,
		Msg: msg,
	}
}

// AllocationFailure is the panic value an estimator bridge raises when the underlying library
// reports a resource failure rather than a computational one.  The aggregator recovers it and
// tags the returned error with ErrAllocation instead of ErrEstimator.
type AllocationFailure struct {
	Msg string
}
