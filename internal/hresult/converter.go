package hresult

import "errors"

// Coder is implemented by errors that carry their own status code
type Coder interface {
	error
	HResult() int32
}

// Converter maps a Go error onto a status code. Errors whose chain holds a
// Coder yield that code; every other non-nil error yields the fallback.
type Converter struct {
	fallback int32
}

// NewConverter returns a Converter using fallback for errors that do not
// report a code. A fallback that does not indicate failure is replaced by
// E_FAIL so that a real error can never be reported as success.
func NewConverter(fallback int32) Converter {
	if !Failed(fallback) {
		fallback = E_FAIL
	}

	return Converter{fallback: fallback}
}

// DefaultConverter falls back to E_FAIL
var DefaultConverter = NewConverter(E_FAIL)

// Fallback returns the code used for errors without one
func (c Converter) Fallback() int32 {
	if c.fallback == 0 {
		return E_FAIL
	}

	return c.fallback
}

// HRForError returns S_OK for a nil error
func (c Converter) HRForError(err error) int32 {
	if err == nil {
		return S_OK
	}

	var coder Coder
	if errors.As(err, &coder) {
		return coder.HResult()
	}

	return c.Fallback()
}

// Error is a plain error that reports a fixed code
type Error struct {
	Code    int32
	Message string
}

// NewError returns an error reporting code
func NewError(code int32, msg string) *Error {
	return &Error{Code: code, Message: msg}
}

func (e *Error) Error() string {
	if e.Message == "" {
		return Format(e.Code)
	}

	return e.Message
}

func (e *Error) HResult() int32 {
	return e.Code
}
