package entropic

// TestType selects the assessment pipeline.
type TestType int

const (
	// IID runs the fixed pipeline for data assumed independent and
	// identically distributed.
	IID TestType = iota
	// NonIID runs the ten-estimator pipeline of SP 800-90B Section 6.3.
	NonIID
)

func (t TestType) String() string {
	switch t {
	case IID:
		return "IID"
	case NonIID:
		return "Non-IID"
	default:
		return "Unknown"
	}
}

// EstimatorResult is the outcome of a single estimator or confirmatory test.
// When IsEntropyValid is false the estimator either did not run for this
// configuration or declared itself not applicable; EntropyEstimate is then
// the -1.0 sentinel and should be disregarded.
type EstimatorResult struct {
	Name            string
	EntropyEstimate float64
	Passed          bool
	IsEntropyValid  bool
}

// Result is the aggregate output of one assessment call.  HOriginal is the
// running minimum over literal-channel estimates, HBitstring over
// bitstring-channel estimates, and HAssessed the conservative combination of
// both capped at WordSize.  MinEntropy always equals HAssessed.  Ownership
// transfers to the caller on return; the Result shares no state with the
// Assessment that produced it.
type Result struct {
	MinEntropy float64
	HOriginal  float64
	HBitstring float64
	HAssessed  float64
	WordSize   int
	TestType   TestType

	// Estimators holds one detail record per estimator in canonical order,
	// including estimators skipped for this configuration.
	Estimators []EstimatorResult
}
