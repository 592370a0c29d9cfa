package errors

// Common error codes
const (
	// System errors
	ErrInvalidArgument ErrorCode = "invalid_argument"

	// Configuration errors
	ErrInvalidConfig  ErrorCode = "invalid_configuration"
	ErrBindFlags      ErrorCode = "bind_flags_failed"
	ErrReadConfig     ErrorCode = "read_config_failed"
	ErrParseFlags     ErrorCode = "parse_flags_failed"
	ErrInvalidHResult ErrorCode = "invalid_fallback_hresult"

	// Logging errors
	ErrInvalidLogLevel ErrorCode = "invalid_log_level"

	// Lifecycle errors
	ErrShutdownFailed ErrorCode = "shutdown_failed"

	// Application errors
	ErrInitApp     ErrorCode = "init_app_failed"
	ErrWrapValue   ErrorCode = "wrap_value_failed"
	ErrNoInput     ErrorCode = "no_input"
	ErrWriteOutput ErrorCode = "write_output_failed"

	// Operation errors
	ErrTimeout ErrorCode = "operation_timeout"

	// History errors
	ErrInitHistory   ErrorCode = "init_history_failed"
	ErrRecordHistory ErrorCode = "record_history_failed"
	ErrCloseHistory  ErrorCode = "close_history_failed"
)

// Common error messages
var errorMessages = map[ErrorCode]string{
	ErrInvalidArgument: "Invalid argument provided",
	ErrInvalidConfig:   "Invalid configuration",
	ErrBindFlags:       "Failed to bind flags",
	ErrReadConfig:      "Failed to read config file",
	ErrParseFlags:      "Failed to parse flags",
	ErrInvalidHResult:  "Invalid fallback HRESULT",
	ErrInvalidLogLevel: "Invalid log level",
	ErrShutdownFailed:  "Shutdown failed",
	ErrInitApp:         "Failed to initialize application",
	ErrWrapValue:       "Failed to wrap value",
	ErrNoInput:         "No values or errors to wrap",
	ErrWriteOutput:     "Failed to write output",
	ErrTimeout:         "Operation timed out",
	ErrInitHistory:     "Failed to initialize history",
	ErrRecordHistory:   "Failed to record history entry",
	ErrCloseHistory:    "Failed to close history database",
}

// GetErrorMessage returns the message for a given error code
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}

	return string(code)
}
