package entropic

import (
	"fmt"
	"io"
	"math"
	"os"
)

// MinRecommendedSamples is the minimum sample count NIST SP 800-90B
// recommends for a reliable estimate (1,000,000).  Smaller inputs are
// assessed anyway with a warning when verbosity allows.
const MinRecommendedSamples = 1000000

// Assessment estimates the min-entropy of a raw noise-source sample.  The
// zero value is not usable; construct with New.  An Assessment is safe for
// concurrent use: every call builds its own Sample and the configured suite
// is only read.
type Assessment struct {
	suite          *Suite
	verbose        int
	initialEntropy bool
}

// Option configures an Assessment.
type Option func(a *Assessment) error

// New returns an Assessment that dispatches to the given estimator suite.
// By default it assesses an unconditioned noise source (initial entropy) at
// normal verbosity.
func New(suite *Suite, opts ...Option) (*Assessment, error) {
	if suite == nil {
		return nil, fmt.Errorf("an estimator suite is required")
	}
	a := &Assessment{
		suite:          suite,
		verbose:        1,
		initialEntropy: true,
	}
	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// Verbose sets the diagnostic verbosity forwarded to estimators, clamped to
// [0,3].  The aggregation logic itself ignores it.
func Verbose(level int) Option {
	return func(a *Assessment) error {
		if level < 0 {
			level = 0
		}
		if level > 3 {
			level = 3
		}
		a.verbose = level
		return nil
	}
}

// ConditionedOutput marks the data as the output of a conditioning function
// rather than a raw noise source.  The literal channel is then out of scope
// and only the bitstring channel contributes to the assessed figure.
func ConditionedOutput() Option {
	return func(a *Assessment) error {
		a.initialEntropy = false
		return nil
	}
}

// AssessFile reads filename and assesses it with the given test type.
func (a *Assessment) AssessFile(filename string, wordSize int, testType TestType) (*Result, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, newError("AssessFile", err, fmt.Sprintf("failed to open file: %s", filename))
	}
	defer f.Close()
	return a.AssessReader(f, wordSize, testType)
}

// AssessReader consumes r completely and dispatches on testType.
func (a *Assessment) AssessReader(r io.Reader, wordSize int, testType TestType) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, newError("AssessReader", err, "failed to read data")
	}
	switch testType {
	case IID:
		return a.AssessIID(data, wordSize)
	case NonIID:
		return a.AssessNonIID(data, wordSize)
	default:
		return nil, newError("AssessReader", ErrInvalidData, "invalid test type")
	}
}

// AssessIID runs the fixed IID pipeline: the most-common-value estimate on
// both channels plus the chi-square, longest-repeated-substring, and
// permutation confirmatory tests.  A wordSize of 0 auto-detects the symbol
// width.
func (a *Assessment) AssessIID(data []byte, wordSize int) (res *Result, err error) {
	defer recoverEstimator("AssessIID", &res, &err)

	if err := a.suite.validateIID(); err != nil {
		return nil, newError("AssessIID", ErrEstimator, err.Error())
	}
	s, err := a.prepare("AssessIID", data, wordSize)
	if err != nil {
		return nil, err
	}

	estimators := make([]EstimatorResult, 0, 4)

	hOriginal := a.suite.MostCommon(s.Symbols, s.AlphSize, Literal, a.verbose)
	estimators = append(estimators, EstimatorResult{
		Name:            NameMostCommon,
		EntropyEstimate: hOriginal,
		Passed:          true,
		IsEntropyValid:  hOriginal >= 0,
	})

	hBitstring := 1.0
	if s.AlphSize > 2 {
		hBitstring = a.suite.MostCommon(s.Bits, 2, Bitstring, a.verbose)
	}

	for _, test := range []struct {
		name string
		run  ConfirmFunc
	}{
		{NameChiSquare, a.suite.ChiSquare},
		{NameLRSLength, a.suite.LRSLength},
		{NamePermutation, a.suite.Permutation},
	} {
		estimators = append(estimators, EstimatorResult{
			Name:            test.name,
			EntropyEstimate: -1.0,
			Passed:          test.run(s.Symbols, s.AlphSize, a.verbose),
			IsEntropyValid:  false,
		})
	}

	hAssessed := float64(s.WordSize)
	if s.AlphSize > 2 {
		hAssessed = math.Min(hAssessed, hBitstring*float64(s.WordSize))
	}
	hAssessed = math.Min(hAssessed, hOriginal)

	return &Result{
		MinEntropy: hAssessed,
		HOriginal:  hOriginal,
		HBitstring: hBitstring,
		HAssessed:  hAssessed,
		WordSize:   s.WordSize,
		TestType:   IID,
		Estimators: estimators,
	}, nil
}

// AssessNonIID runs all ten estimators of SP 800-90B Section 6.3, driven by
// the canonical dispatch table.  A wordSize of 0 auto-detects the symbol
// width.
func (a *Assessment) AssessNonIID(data []byte, wordSize int) (res *Result, err error) {
	defer recoverEstimator("AssessNonIID", &res, &err)

	if err := a.suite.validateNonIID(); err != nil {
		return nil, newError("AssessNonIID", ErrEstimator, err.Error())
	}
	s, err := a.prepare("AssessNonIID", data, wordSize)
	if err != nil {
		return nil, err
	}

	hOriginal := float64(s.WordSize)
	hBitstring := 1.0
	// The bitstring channel is skipped only for a binary initial-entropy
	// source, where it would duplicate the literal channel.
	useBitstring := s.AlphSize > 2 || !a.initialEntropy

	estimators := make([]EstimatorResult, 0, 10)
	for _, step := range nonIIDSteps {
		outcome := make([]float64, len(step.names))
		for i := range outcome {
			outcome[i] = -1.0
		}

		if useBitstring {
			for i, v := range step.eval(a.suite, s.Bits, 2, Bitstring, a.verbose) {
				if v >= 0 {
					hBitstring = math.Min(v, hBitstring)
					outcome[i] = v
				}
			}
		}
		if a.initialEntropy && (step.literal == literalWhenInitial || s.AlphSize == 2) {
			for i, v := range step.eval(a.suite, s.Symbols, s.AlphSize, Literal, a.verbose) {
				if v >= 0 {
					hOriginal = math.Min(v, hOriginal)
					outcome[i] = v
				}
			}
		}

		for i, name := range step.names {
			estimators = append(estimators, EstimatorResult{
				Name:            name,
				EntropyEstimate: outcome[i],
				Passed:          outcome[i] >= 0,
				IsEntropyValid:  outcome[i] >= 0,
			})
		}
	}

	hAssessed := float64(s.WordSize)
	if useBitstring {
		hAssessed = math.Min(hAssessed, hBitstring*float64(s.WordSize))
	}
	if a.initialEntropy {
		hAssessed = math.Min(hAssessed, hOriginal)
	}

	return &Result{
		MinEntropy: hAssessed,
		HOriginal:  hOriginal,
		HBitstring: hBitstring,
		HAssessed:  hAssessed,
		WordSize:   s.WordSize,
		TestType:   NonIID,
		Estimators: estimators,
	}, nil
}

// prepare normalizes the input and enforces the degenerate-alphabet rule
// before any estimator runs.
func (a *Assessment) prepare(op string, data []byte, wordSize int) (*Sample, error) {
	if len(data) < MinRecommendedSamples && a.verbose > 0 {
		fmt.Fprintf(os.Stderr, "Warning: data contains less than %d samples\n", MinRecommendedSamples)
	}
	s, err := NewSample(data, wordSize)
	if err != nil {
		if ae, ok := err.(*AssessmentError); ok {
			ae.Op = op
		}
		return nil, err
	}
	if s.AlphSize <= 1 {
		return nil, newError(op, ErrDegenerateAlphabet, "")
	}
	return s, nil
}

// recoverEstimator converts a panic escaping an estimator call into a tagged
// error, preserving the original diagnostic text.  An AllocationFailure is
// tagged ErrAllocation, anything else ErrEstimator.  No partial numeric
// result accompanies the error.
func recoverEstimator(op string, res **Result, err *error) {
	if r := recover(); r != nil {
		*res = nil
		switch v := r.(type) {
		case AllocationFailure:
			*err = newError(op, ErrAllocation, v.Msg)
		default:
			*err = newError(op, ErrEstimator, fmt.Sprintf("%v", r))
		}
	}
}
