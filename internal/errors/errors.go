package errors

import (
	"fmt"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   appErr,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// GetCode returns the error code if it's an AppError, otherwise returns "UNKNOWN"
func GetCode(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Predefined error codes. The first four are the upload pipeline taxonomy;
// every one of them is terminal for the current request.
const (
	CodeUnsupportedFileType = "UNSUPPORTED_FILE_TYPE"
	CodeEncodingError       = "ENCODING_ERROR"
	CodeEmptyFile           = "EMPTY_FILE"
	CodeMalformedHeader     = "MALFORMED_HEADER"
	CodeFileTooLarge        = "FILE_TOO_LARGE"
	CodeConfigInvalid       = "CONFIG_INVALID"
	CodeInvalidInput        = "INVALID_INPUT"
	CodeInternalError       = "INTERNAL_ERROR"
)

// Common error constructors
func UnsupportedFileType(filename string) *AppError {
	return New(CodeUnsupportedFileType, fmt.Sprintf("unsupported file type: %s (only .csv files are accepted)", filename))
}

func EncodingError(message string) *AppError {
	return New(CodeEncodingError, message)
}

func EmptyFile(message string) *AppError {
	return New(CodeEmptyFile, message)
}

func MalformedHeader(message string) *AppError {
	return New(CodeMalformedHeader, message)
}

func FileTooLarge(size, limit int64) *AppError {
	return New(CodeFileTooLarge, fmt.Sprintf("file size %d bytes exceeds maximum allowed size %d bytes", size, limit))
}

func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

func InternalError(message string) *AppError {
	return New(CodeInternalError, message)
}
