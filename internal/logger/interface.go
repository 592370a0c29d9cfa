package logger

import "codeberg.org/mutker/errwrap/internal/errors"

// Logger is the logging surface injected into components that
// should not reach for the package-level functions directly.
type Logger interface {
	Debug() *LogEvent
	Info() *LogEvent
	Warn() *LogEvent
	Error() *LogEvent
	ErrorWithCode(err errors.Error) *LogEvent
	ErrorWithContext(err errors.Error, component, operation string) *LogEvent
}
