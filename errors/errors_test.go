package errors_test

import (
	"fmt"
	"testing"

	"github.com/speakeasy-api/schemareader/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const errTest = errors.Error("test error")

func TestError_Is_Success(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		target   error
		expected bool
	}{
		{
			name:     "exact match",
			target:   errors.Error("test error"),
			expected: true,
		},
		{
			name:     "wrapped with separator",
			target:   errors.New("test error -- cause"),
			expected: true,
		},
		{
			name:     "different message",
			target:   errors.New("other error"),
			expected: false,
		},
		{
			name:     "prefix without separator",
			target:   errors.New("test errors"),
			expected: false,
		},
		{
			name:     "nil target",
			target:   nil,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, errTest.Is(tt.target))
		})
	}
}

func TestError_Wrap_Success(t *testing.T) {
	t.Parallel()

	cause := errors.New("bad value")
	err := errTest.Wrap(cause)

	assert.Equal(t, "test error -- bad value", err.Error())
	require.ErrorIs(t, err, errTest)
	require.ErrorIs(t, err, cause)
}

func TestError_Wrap_NilCause_Success(t *testing.T) {
	t.Parallel()

	err := errTest.Wrap(nil)
	assert.Equal(t, "test error", err.Error())
	require.ErrorIs(t, err, errTest)
}

func TestError_Wrapf_Success(t *testing.T) {
	t.Parallel()

	err := errTest.Wrapf("field %s: %d", "minLength", 3)
	assert.Equal(t, "test error -- field minLength: 3", err.Error())
	require.ErrorIs(t, err, errTest)
}

func TestError_WrappedByFmt_Success(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("reading schema: %w", errTest.Wrapf("oops"))
	require.ErrorIs(t, err, errTest)
	assert.False(t, errors.Is(err, errors.Error("another")))
}

func TestJoin_Success(t *testing.T) {
	t.Parallel()

	err := errors.Join(errTest, errors.New("second"))
	require.ErrorIs(t, err, errTest)
	assert.Contains(t, err.Error(), "second")
}
