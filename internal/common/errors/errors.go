// Package errors provides standardized errors for the boundary and infrastructure
// layers of applicant form sessions. Validation failures are not errors: they are
// reported as data by the rules package.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeUnknownField ErrorCode = "UNKNOWN_FIELD"
	ErrCodeInvalidValue ErrorCode = "INVALID_VALUE"
	ErrCodeUnknownSkill ErrorCode = "UNKNOWN_SKILL"

	ErrCodeEventDecodeFailed    ErrorCode = "EVENT_DECODE_FAILED"
	ErrCodeSnapshotDecodeFailed ErrorCode = "SNAPSHOT_DECODE_FAILED"

	ErrCodeSessionNotFound    ErrorCode = "SESSION_NOT_FOUND"
	ErrCodeSessionStoreFailed ErrorCode = "SESSION_STORE_FAILED"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`

	cause error
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("StandardError[%s]: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// NewUnknownFieldError is returned when an edit names a field that does not exist
// or cannot be set from text.
func NewUnknownFieldError(field string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnknownField,
		Message:   "Unknown or non-text field",
		Details:   fmt.Sprintf("field: %s", field),
		Metadata:  map[string]interface{}{"field": field},
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidValueError is returned when a value cannot be stored in its slot,
// e.g. a position outside the enumeration.
func NewInvalidValueError(field, value string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidValue,
		Message:   "Value not accepted for field",
		Details:   fmt.Sprintf("field: %s, value: %q", field, value),
		Metadata:  map[string]interface{}{"field": field},
		Timestamp: time.Now().UTC(),
	}
}

// NewUnknownSkillError is returned for skill toggles outside the catalog.
func NewUnknownSkillError(skill string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnknownSkill,
		Message:   "Skill is not in the catalog",
		Details:   fmt.Sprintf("skill: %s", skill),
		Timestamp: time.Now().UTC(),
	}
}

func NewEventDecodeError(details string, cause error) *StandardError {
	return &StandardError{
		Code:      ErrCodeEventDecodeFailed,
		Message:   "Event could not be decoded",
		Details:   details,
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
}

func NewSnapshotDecodeError(details string, cause error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSnapshotDecodeFailed,
		Message:   "Field values snapshot could not be decoded",
		Details:   details,
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
}

func NewSessionNotFoundError(sessionID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSessionNotFound,
		Message:   "Form session not found or expired",
		Details:   fmt.Sprintf("sessionId: %s", sessionID),
		Metadata:  map[string]interface{}{"sessionId": sessionID},
		Timestamp: time.Now().UTC(),
	}
}

// NewSessionStoreError wraps a failure of the backing session store. These are
// the only retryable errors.
func NewSessionStoreError(op string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSessionStoreFailed,
		Message:   "Session store operation failed",
		Details:   fmt.Sprintf("op: %s, error: %s", op, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// AsStandard returns the first StandardError in err's chain.
func AsStandard(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

// IsCode reports whether err carries the given code anywhere in its chain.
func IsCode(err error, code ErrorCode) bool {
	stdErr, ok := AsStandard(err)
	return ok && stdErr.Code == code
}

// IsRetryable reports whether err is worth retrying.
func IsRetryable(err error) bool {
	stdErr, ok := AsStandard(err)
	return ok && stdErr.Retryable
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "SESSION"):
		return "SESSION"
	case strings.Contains(codeStr, "DECODE"):
		return "DECODE"
	case strings.HasPrefix(codeStr, "UNKNOWN") || strings.Contains(codeStr, "INVALID"):
		return "INPUT"
	default:
		return "OTHER"
	}
}
