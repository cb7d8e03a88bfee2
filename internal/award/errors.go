// Package award holds the award-record entity, the field-alias tables,
// the limit evaluator, and the pipeline that turns extracted form data
// into a finished record.
package award

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType categorizes record-processing failures.
type ErrorType int

const (
	ErrorTypeUnknown ErrorType = iota
	ErrorTypeExtraction
	ErrorTypeMissingFields
	ErrorTypeFormat
	ErrorTypeOrgResolution
	ErrorTypeLimitExceeded
	ErrorTypeDuplicateLogID
	ErrorTypeArchive
)

// String returns a string representation of the ErrorType.
func (et ErrorType) String() string {
	switch et {
	case ErrorTypeExtraction:
		return "EXTRACTION"
	case ErrorTypeMissingFields:
		return "MISSING_FIELDS"
	case ErrorTypeFormat:
		return "FORMAT"
	case ErrorTypeOrgResolution:
		return "ORG_RESOLUTION"
	case ErrorTypeLimitExceeded:
		return "LIMIT_EXCEEDED"
	case ErrorTypeDuplicateLogID:
		return "DUPLICATE_LOG_ID"
	case ErrorTypeArchive:
		return "ARCHIVE"
	default:
		return "UNKNOWN"
	}
}

// Recoverable reports whether the operator may decide to continue past
// this error type. Missing fields can be overridden at the prompt; an
// archive failure never invalidates an already-persisted record. Every
// other type aborts the record.
func (et ErrorType) Recoverable() bool {
	return et == ErrorTypeMissingFields || et == ErrorTypeArchive
}

// RecordError is a record-processing failure with an explicit category,
// so callers can distinguish "abort this record" from "ask the operator"
// without parsing message text.
type RecordError struct {
	Type    ErrorType
	Message string
	Fields  []string // populated for ErrorTypeMissingFields
	Err     error
}

// Error implements the error interface.
func (e *RecordError) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Type.String(), e.Message)
	if len(e.Fields) > 0 {
		msg += ": " + strings.Join(e.Fields, ", ")
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes the wrapped cause to errors.Is/As.
func (e *RecordError) Unwrap() error {
	return e.Err
}

// Recoverable reports whether the operator may continue past this error.
func (e *RecordError) Recoverable() bool {
	return e.Type.Recoverable()
}

// NewRecordError builds a RecordError of the given type.
func NewRecordError(t ErrorType, msg string) *RecordError {
	return &RecordError{Type: t, Message: msg}
}

// WrapRecordError builds a RecordError wrapping an underlying cause.
func WrapRecordError(t ErrorType, msg string, err error) *RecordError {
	return &RecordError{Type: t, Message: msg, Err: err}
}

// NewMissingFieldsError builds the recoverable missing-required-fields
// error carrying the field names for the operator prompt.
func NewMissingFieldsError(fields []string) *RecordError {
	return &RecordError{
		Type:    ErrorTypeMissingFields,
		Message: "required fields are not populated",
		Fields:  fields,
	}
}

// TypeOf extracts the ErrorType from a (possibly wrapped) error.
func TypeOf(err error) ErrorType {
	var re *RecordError
	if errors.As(err, &re) {
		return re.Type
	}
	return ErrorTypeUnknown
}
