package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeIndexOutOfRange      ErrorCode = 100
	ErrCodeInvalidField         ErrorCode = 101
	ErrCodeInvalidDirection     ErrorCode = 102
	ErrCodeInvalidConfiguration ErrorCode = 103

	// Parse/evaluation errors (200-299)
	ErrCodeVariableNotFound ErrorCode = 200
	ErrCodeNotADataset      ErrorCode = 201
	ErrCodeMissingColumns   ErrorCode = 202
	ErrCodeEvaluationFailed ErrorCode = 203
	ErrCodeDatetimeUsage    ErrorCode = 204

	// Render errors (300-399)
	ErrCodeEmptyDataset   ErrorCode = 300
	ErrCodeFlatPriceRange ErrorCode = 301

	// Session errors (400-499)
	ErrCodeUnknownCommand  ErrorCode = 400
	ErrCodeSessionNotFound ErrorCode = 401

	// Buffer provider errors (500-599)
	ErrCodeBufferUnavailable ErrorCode = 500
)
