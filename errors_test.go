package entropic

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssessmentErrorFormat(t *testing.T) {
	tt := []struct {
		Name     string
		Err      error
		Expected string
	}{
		{
			Name:     "with message",
			Err:      newError("AssessIID", ErrWordSize, "got 12"),
			Expected: "AssessIID: got 12: word size must be between 1 and 8 bits",
		},
		{
			Name:     "without message",
			Err:      newError("AssessNonIID", ErrDegenerateAlphabet, ""),
			Expected: "AssessNonIID: symbol alphabet consists of 1 symbol, no entropy awarded",
		},
	}

	for _, tc := range tt {
		t.Run(tc.Name, func(t *testing.T) {
			assert.Equal(t, tc.Expected, tc.Err.Error())
		})
	}
}

func TestAssessmentErrorUnwrap(t *testing.T) {
	err := newError("op", ErrEstimator, "diagnostic")
	assert.True(t, errors.Is(err, ErrEstimator))
	assert.False(t, errors.Is(err, ErrInvalidData))

	var ae *AssessmentError
	assert.True(t, errors.As(err, &ae))
	assert.Equal(t, "op", ae.Op)
	assert.Equal(t, "diagnostic", ae.Msg)
}

func TestAssessmentErrorWrappedFurther(t *testing.T) {
	err := fmt.Errorf("assessment failed: %w", newError("op", ErrAllocation, ""))
	assert.True(t, errors.Is(err, ErrAllocation))
}
