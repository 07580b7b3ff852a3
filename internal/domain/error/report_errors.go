// Package error defines domain-specific errors for the auction ledger reporting service.
package error

import "errors"

// Report domain errors.
var (
	// ErrInvalidRangeType is returned when the range type is not one of the supported values.
	ErrInvalidRangeType = errors.New("range must be: today, week, month, quarter, year, or custom")

	// ErrInvalidDateFormat is returned when a from/to date cannot be parsed.
	ErrInvalidDateFormat = errors.New("invalid date format, expected YYYY-MM-DD")

	// ErrInvalidAsOf is returned when as_of cannot be parsed.
	ErrInvalidAsOf = errors.New("invalid as_of format, expected RFC3339")

	// ErrUnknownReport is returned when a single report is requested by an unknown name.
	ErrUnknownReport = errors.New("unknown report")

	// ErrInvalidLimit is returned when a list limit is not a positive integer.
	ErrInvalidLimit = errors.New("limit must be a positive integer")

	// ErrRateLimited is returned when a client exceeds the report request budget.
	ErrRateLimited = errors.New("too many report requests")
)

// ReportErrorCode defines error codes for report errors.
// Format: RPT-XXYYYY where XX is category and YYYY is specific error.
type ReportErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidRangeType  ReportErrorCode = "RPT-010001"
	ErrCodeInvalidDateFormat ReportErrorCode = "RPT-010002"
	ErrCodeInvalidAsOf       ReportErrorCode = "RPT-010003"
	ErrCodeUnknownReport     ReportErrorCode = "RPT-010004"
	ErrCodeInvalidLimit      ReportErrorCode = "RPT-010005"

	// Throttling errors (02XXXX)
	ErrCodeRateLimited ReportErrorCode = "RPT-020001"

	// Internal errors (99XXXX)
	ErrCodeReportInternalError ReportErrorCode = "RPT-990001"
)

// ReportError represents a report error with code and message.
type ReportError struct {
	Code    ReportErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ReportError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ReportError) Unwrap() error {
	return e.Err
}

// NewReportError creates a new ReportError with the given code and message.
func NewReportError(code ReportErrorCode, message string, err error) *ReportError {
	return &ReportError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsValidationError reports whether the error carries a validation code.
func IsValidationError(err error) bool {
	var reportErr *ReportError
	if !errors.As(err, &reportErr) {
		return false
	}
	switch reportErr.Code {
	case ErrCodeInvalidRangeType,
		ErrCodeInvalidDateFormat,
		ErrCodeInvalidAsOf,
		ErrCodeUnknownReport,
		ErrCodeInvalidLimit:
		return true
	default:
		return false
	}
}
