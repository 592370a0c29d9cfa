// Package vterror provides Wrapper, an immutable carrier for a 32-bit
// error code that an interop layer turns into a VT_ERROR variant.
package vterror

import (
	"fmt"

	"codeberg.org/mutker/errwrap/internal/errors"
	"codeberg.org/mutker/errwrap/internal/hresult"
)

// MsgMustBeInt32 is the message of the InvalidArgument error returned by
// FromValue.
const MsgMustBeInt32 = "Argument must be a 32-bit integer"

const paramErrorCode = "errorCode"

// Converter maps an error onto a status code
type Converter interface {
	HRForError(err error) int32
}

// ConverterFunc adapts a function to Converter
type ConverterFunc func(err error) int32

func (f ConverterFunc) HRForError(err error) int32 {
	return f(err)
}

// Wrapper holds an error code. The zero value holds 0.
type Wrapper struct {
	errorCode int32
}

// ArgumentData describes a rejected FromValue argument
type ArgumentData struct {
	Param string
	Type  string
}

func (d ArgumentData) String() string {
	return fmt.Sprintf("%s (got %s)", d.Param, d.Type)
}

// New stores code verbatim
func New(code int32) Wrapper {
	return Wrapper{errorCode: code}
}

// FromValue accepts a dynamically typed value that must be an int32.
// Integers of other widths are rejected as well; no narrowing is attempted.
func FromValue(v any) (Wrapper, error) {
	code, ok := v.(int32)
	if !ok {
		return Wrapper{}, errors.New().
			WithMessage(errors.ErrInvalidArgument, MsgMustBeInt32).
			WithData(ArgumentData{Param: paramErrorCode, Type: fmt.Sprintf("%T", v)})
	}

	return New(code), nil
}

// FromError stores the code conv derives from err. A nil conv, including
// a nil ConverterFunc, uses hresult.DefaultConverter.
func FromError(err error, conv Converter) Wrapper {
	if f, ok := conv.(ConverterFunc); conv == nil || (ok && f == nil) {
		conv = hresult.DefaultConverter
	}

	return New(conv.HRForError(err))
}

// ErrorCode returns the stored code
func (w Wrapper) ErrorCode() int32 {
	return w.errorCode
}

func (w Wrapper) String() string {
	return hresult.Format(w.errorCode)
}
