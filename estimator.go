package entropic

import "fmt"

// Channel identifies which measurement stream an estimator consumes: the
// sample in its native alphabet or its binary expansion.
type Channel string

const (
	// Literal measures the sample in its native (possibly multi-bit) alphabet.
	Literal Channel = "Literal"

	// Bitstring measures the sample after expansion into a binary alphabet.
	Bitstring Channel = "Bitstring"
)

// EstimatorFunc is the contract for a single statistical entropy estimator.
// It receives the symbol sequence, the alphabet size in use, the channel
// label, and the verbosity knob.  It returns an entropy estimate in bits per
// symbol, or any negative value as a sentinel meaning the estimate is not
// applicable to this input.  Estimator internals are opaque to this package.
type EstimatorFunc func(symbols []uint8, alphSize int, ch Channel, verbose int) float64

// TupleFunc computes the t-tuple and longest-repeated-substring estimates in
// a single pass over the sample.  Either result may be a negative sentinel
// independently of the other.
type TupleFunc func(symbols []uint8, alphSize int, ch Channel, verbose int) (tTuple, lrs float64)

// ConfirmFunc is a confirmatory statistical test that yields only pass/fail
// and contributes no numeric entropy value.
type ConfirmFunc func(symbols []uint8, alphSize int, verbose int) bool

// Suite bundles the external estimators an Assessment dispatches to.  The
// ten entropy estimators serve the Non-IID pipeline; MostCommon plus the
// three confirmatory tests serve the IID pipeline.
type Suite struct {
	MostCommon  EstimatorFunc
	Collision   EstimatorFunc
	Markov      EstimatorFunc
	Compression EstimatorFunc
	TupleLRS    TupleFunc
	MultiMCW    EstimatorFunc
	Lag         EstimatorFunc
	MultiMMC    EstimatorFunc
	LZ78Y       EstimatorFunc

	ChiSquare   ConfirmFunc
	LRSLength   ConfirmFunc
	Permutation ConfirmFunc
}

// Canonical estimator names.  These appear verbatim in result detail records
// and must remain stable: callers key audit trails off them.
const (
	NameMostCommon  = "Most Common Value"
	NameCollision   = "Collision Test"
	NameMarkov      = "Markov Test"
	NameCompression = "Compression Test"
	NameTTuple      = "t-Tuple Test"
	NameLRS         = "LRS Test"
	NameMultiMCW    = "Multi Most Common in Window Test"
	NameLag         = "Lag Prediction Test"
	NameMultiMMC    = "Multi Markov Model with Counting Test"
	NameLZ78Y       = "LZ78Y Test"

	NameChiSquare   = "Chi-Square Tests"
	NameLRSLength   = "Length of Longest Repeated Substring Test"
	NamePermutation = "Permutation Tests"
)

// literalRule selects when an estimator also runs on the literal channel.
// The bitstring rule is uniform across all estimators, but the literal rule
// is not: most-common-value and the t-tuple/LRS pair run for any
// initial-entropy assessment, while the rest run only when the literal
// alphabet is binary.  The asymmetry follows SP 800-90B practice and is
// deliberate.
type literalRule int

const (
	literalWhenInitial literalRule = iota
	literalWhenInitialBinary
)

// nonIIDStep is one row of the declarative Non-IID dispatch table.  A step
// produces one outcome per name; the t-tuple/LRS pair is the only two-name
// step.
type nonIIDStep struct {
	names   []string
	literal literalRule
	eval    func(s *Suite, symbols []uint8, alphSize int, ch Channel, verbose int) []float64
}

func single(pick func(*Suite) EstimatorFunc) func(*Suite, []uint8, int, Channel, int) []float64 {
	return func(s *Suite, symbols []uint8, alphSize int, ch Channel, verbose int) []float64 {
		return []float64{pick(s)(symbols, alphSize, ch, verbose)}
	}
}

func pair(s *Suite, symbols []uint8, alphSize int, ch Channel, verbose int) []float64 {
	t, l := s.TupleLRS(symbols, alphSize, ch, verbose)
	return []float64{t, l}
}

// nonIIDSteps is the canonical ten-estimator order.  Every assessment reports
// exactly one outcome per name, in this order, whether or not the estimator
// ran for the active configuration.
var nonIIDSteps = []nonIIDStep{
	{names: []string{NameMostCommon}, literal: literalWhenInitial, eval: single(func(s *Suite) EstimatorFunc { return s.MostCommon })},
	{names: []string{NameCollision}, literal: literalWhenInitialBinary, eval: single(func(s *Suite) EstimatorFunc { return s.Collision })},
	{names: []string{NameMarkov}, literal: literalWhenInitialBinary, eval: single(func(s *Suite) EstimatorFunc { return s.Markov })},
	{names: []string{NameCompression}, literal: literalWhenInitialBinary, eval: single(func(s *Suite) EstimatorFunc { return s.Compression })},
	{names: []string{NameTTuple, NameLRS}, literal: literalWhenInitial, eval: pair},
	{names: []string{NameMultiMCW}, literal: literalWhenInitialBinary, eval: single(func(s *Suite) EstimatorFunc { return s.MultiMCW })},
	{names: []string{NameLag}, literal: literalWhenInitialBinary, eval: single(func(s *Suite) EstimatorFunc { return s.Lag })},
	{names: []string{NameMultiMMC}, literal: literalWhenInitialBinary, eval: single(func(s *Suite) EstimatorFunc { return s.MultiMMC })},
	{names: []string{NameLZ78Y}, literal: literalWhenInitialBinary, eval: single(func(s *Suite) EstimatorFunc { return s.LZ78Y })},
}

func (s *Suite) validateIID() error {
	missing := ""
	switch {
	case s.MostCommon == nil:
		missing = NameMostCommon
	case s.ChiSquare == nil:
		missing = NameChiSquare
	case s.LRSLength == nil:
		missing = NameLRSLength
	case s.Permutation == nil:
		missing = NamePermutation
	}
	if missing != "" {
		return fmt.Errorf("suite is missing %s", missing)
	}
	return nil
}

func (s *Suite) validateNonIID() error {
	for _, e := range []struct {
		name string
		ok   bool
	}{
		{NameMostCommon, s.MostCommon != nil},
		{NameCollision, s.Collision != nil},
		{NameMarkov, s.Markov != nil},
		{NameCompression, s.Compression != nil},
		{NameTTuple, s.TupleLRS != nil},
		{NameMultiMCW, s.MultiMCW != nil},
		{NameLag, s.Lag != nil},
		{NameMultiMMC, s.MultiMMC != nil},
		{NameLZ78Y, s.LZ78Y != nil},
	} {
		if !e.ok {
			return fmt.Errorf("suite is missing %s", e.name)
		}
	}
	return nil
}
