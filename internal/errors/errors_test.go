package errors_test

import (
	stderrors "errors"
	"testing"

	"codeberg.org/mutker/errwrap/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactoryNewUsesDefaultMessage(t *testing.T) {
	err := errors.New().New(errors.ErrInvalidArgument)

	assert.Equal(t, errors.ErrInvalidArgument, err.Code())
	assert.Equal(t, "Invalid argument provided", err.Error())
	assert.Nil(t, err.Unwrap())
}

func TestFactoryWrapKeepsCause(t *testing.T) {
	cause := stderrors.New("disk full")
	err := errors.New().Wrap(errors.ErrRecordHistory, cause)

	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "Failed to record history entry: disk full", err.Error())
}

func TestWithMessageAndData(t *testing.T) {
	err := errors.New().
		WithMessage(errors.ErrInvalidArgument, "Argument must be a 32-bit integer").
		WithData("errorCode")

	assert.Equal(t, "Argument must be a 32-bit integer: errorCode", err.Error())
	assert.Equal(t, "errorCode", err.GetData())
	assert.Equal(t, errors.ErrInvalidArgument, err.Code())
}

func TestWithMessageDoesNotMutateOriginal(t *testing.T) {
	base := errors.New().New(errors.ErrTimeout)
	derived := base.WithMessage("took too long")

	assert.Equal(t, "Operation timed out", base.Error())
	assert.Equal(t, "took too long", derived.Error())
}

func TestGetErrorMessageUnknownCode(t *testing.T) {
	assert.Equal(t, "something_else", errors.GetErrorMessage(errors.ErrorCode("something_else")))
}

func TestHasCode(t *testing.T) {
	factory := errors.New()
	inner := factory.New(errors.ErrInvalidArgument)
	outer := factory.Wrap(errors.ErrWrapValue, inner)

	assert.True(t, errors.HasCode(outer, errors.ErrWrapValue))
	assert.True(t, errors.HasCode(outer, errors.ErrInvalidArgument))
	assert.False(t, errors.HasCode(outer, errors.ErrTimeout))
	assert.False(t, errors.HasCode(stderrors.New("plain"), errors.ErrInvalidArgument))
	assert.False(t, errors.HasCode(nil, errors.ErrInvalidArgument))
}

func TestAsExtractsDomainError(t *testing.T) {
	var target errors.Error
	err := errors.New().New(errors.ErrReadConfig)

	require.True(t, errors.As(err, &target))
	assert.Equal(t, errors.ErrReadConfig, target.Code())
}
