package compiler

import (
	"errors"
	"fmt"
)

// Code categorizes compilation failures. Type-arithmetic failures are not
// re-coded here: the engine's errors propagate verbatim.
type Code string

const (
	// CodeColumnNotFound indicates a name or index that failed to resolve
	// against the active schema.
	CodeColumnNotFound Code = "COLUMN_NOT_FOUND"

	// CodeUnsupportedDataType indicates a source type with no column-type
	// mapping, or an invalid cast destination.
	CodeUnsupportedDataType Code = "UNSUPPORTED_DATA_TYPE"

	// CodeUnsupportedBinaryOperator indicates a binary operator outside
	// the provable subset.
	CodeUnsupportedBinaryOperator Code = "UNSUPPORTED_BINARY_OPERATOR"

	// CodeUnsupportedLogicalExpression indicates an expression shape
	// outside the provable subset.
	CodeUnsupportedLogicalExpression Code = "UNSUPPORTED_LOGICAL_EXPRESSION"

	// CodeUnsupportedLogicalPlan indicates a plan shape outside the
	// provable subset.
	CodeUnsupportedLogicalPlan Code = "UNSUPPORTED_LOGICAL_PLAN"

	// CodeInvalidPlaceholder indicates a placeholder whose index or type
	// could not be resolved.
	CodeInvalidPlaceholder Code = "INVALID_PLACEHOLDER"

	// CodeAnalyze wraps a nested legality failure whose root cause is not
	// one of the engine's own variants.
	CodeAnalyze Code = "ANALYZE_ERROR"
)

// Error is a compilation failure. Fragment carries the display form of
// the offending input so diagnostics can point at it.
type Error struct {
	Code     Code
	Message  string
	Fragment string
	Err      error // wrapped cause, if any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Fragment != "" {
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Message, e.Fragment)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the wrapped cause to errors.Is/As.
func (e *Error) Unwrap() error { return e.Err }

func compileErr(code Code, fragment string, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Fragment: fragment}
}

// CodeOf extracts the compiler error code from an error chain.
// Returns ("", false) if the error carries no compiler code.
func CodeOf(err error) (Code, bool) {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Code, true
	}
	return "", false
}
