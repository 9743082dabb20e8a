package gate

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stwrap/gatekeeper/pkg/testutil"
)

func TestCheckExpectations_FirstMismatchWins(t *testing.T) {
	errFirst := errors.New("first")
	errSecond := errors.New("second")

	rows := []Expectation{
		{Label: "a", Expected: testutil.FilledKey(1), Found: testutil.FilledKey(1), Err: errFirst},
		{Label: "b", Expected: testutil.FilledKey(2), Found: testutil.FilledKey(3), Err: errSecond},
		{Label: "c", Expected: testutil.FilledKey(4), Found: testutil.FilledKey(5), Err: errFirst},
	}

	err := CheckExpectations(newTestLog(), rows...)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errSecond))

	var mismatch *MismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, "b", mismatch.Label)
	assert.EqualValues(t, testutil.FilledKey(2), mismatch.Expected)
	assert.EqualValues(t, testutil.FilledKey(3), mismatch.Found)
}

func TestCheckExpectations_AllMatch(t *testing.T) {
	assert.NoError(t, CheckExpectations(newTestLog()))
	assert.NoError(t, CheckExpectations(
		newTestLog(),
		Expectation{Label: "a", Expected: testutil.FilledKey(1), Found: testutil.FilledKey(1), Err: ErrInvalidMint},
		Expectation{Label: "b", Expected: testutil.FilledKey(2), Found: testutil.FilledKey(2), Err: ErrInvalidMint},
	))
}
