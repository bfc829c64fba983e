package errors

import (
	"fmt"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
)

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: 0,
		},
		{
			name:     "plain error defaults to 1",
			err:      errors.New("boom"),
			expected: 1,
		},
		{
			name:     "exit code error",
			err:      ExitCodeError{Code: 3},
			expected: 3,
		},
		{
			name:     "wrapped exit code error",
			err:      fmt.Errorf("step failed: %w", ExitCodeError{Code: 42}),
			expected: 42,
		},
		{
			name:     "attached exit code wins over the cause",
			err:      WithExitCode(ExitCodeError{Code: 3}, 127),
			expected: 127,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetExitCode(tt.err))
		})
	}
}

func TestWithExitCode_Nil(t *testing.T) {
	assert.NoError(t, WithExitCode(nil, 5))
}

func TestWithExitCode_PreservesMessageAndChain(t *testing.T) {
	err := WithExitCode(ErrUnknownTask, ExitCodeUnknownTask)

	assert.Equal(t, "unknown task", err.Error())
	assert.ErrorIs(t, err, ErrUnknownTask)
}

func TestExitCodeError_Message(t *testing.T) {
	assert.Equal(t, "exit status 3", ExitCodeError{Code: 3}.Error())
}

func TestIsExitStatusOnly(t *testing.T) {
	assert.True(t, IsExitStatusOnly(ExitCodeError{Code: 3}))
	assert.True(t, IsExitStatusOnly(WithExitCode(ExitCodeError{Code: 3}, 3)))
	assert.False(t, IsExitStatusOnly(fmt.Errorf("step lint: %w", ExitCodeError{Code: 3})))
	assert.False(t, IsExitStatusOnly(ErrUnknownTask))
	assert.False(t, IsExitStatusOnly(nil))
}
