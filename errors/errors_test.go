package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorFormatting(t *testing.T) {
	err := New(ErrCodeBadValue, "\"abc\" is not a valid zoom factor")
	assert.Equal(t, "BAD_VALUE: \"abc\" is not a valid zoom factor", err.Error())

	wrapped := Wrap(fmt.Errorf("unbalanced quotes"), ErrCodeBadValue, "argument to --command is not a valid command")
	assert.Contains(t, wrapped.Error(), "caused by: unbalanced quotes")
}

func TestGetCode(t *testing.T) {
	err := IncompatibleConfigFile(2, 99)
	assert.Equal(t, ErrCodeIncompatibleConfigFile, GetCode(err))
	assert.True(t, Is(err, ErrCodeIncompatibleConfigFile))
	assert.False(t, Is(err, ErrCodeInvalidConfigFile))

	// Codes survive one level of wrapping
	outer := fmt.Errorf("merging session state: %w", err)
	assert.Equal(t, ErrCodeIncompatibleConfigFile, GetCode(outer))

	assert.Equal(t, ErrorCode(""), GetCode(nil))
	assert.Equal(t, ErrorCode(""), GetCode(fmt.Errorf("plain")))
}

func TestDetails(t *testing.T) {
	err := BadValue("--fd", "failed to parse %q as file descriptor number", "abc")
	assert.Equal(t, "--fd", err.Details["option"])

	err = UsageConflict("two roles given for one window")
	assert.Equal(t, ErrCodeUsageConflict, err.Code)
	assert.Nil(t, err.Details)
}
