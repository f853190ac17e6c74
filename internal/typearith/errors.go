package typearith

import (
	"errors"
	"fmt"

	"github.com/provesql/provesql/internal/coltype"
)

// Code categorizes type-arithmetic failures.
type Code string

const (
	// CodeInvalidColumnType indicates an operand type the operator cannot accept.
	CodeInvalidColumnType Code = "INVALID_COLUMN_TYPE"

	// CodeInvalidPrecision indicates the result would exceed the 75-digit limit.
	CodeInvalidPrecision Code = "INVALID_PRECISION"

	// CodeInvalidScale indicates the result scale left the signed 8-bit range.
	CodeInvalidScale Code = "INVALID_SCALE"

	// CodeCasting indicates an explicit cast between incompatible types.
	CodeCasting Code = "CASTING_ERROR"

	// CodeScaleCasting indicates a scale cast that would lose digits.
	CodeScaleCasting Code = "SCALE_CASTING_ERROR"
)

// Error is the typed failure returned by every engine entry point.
// Callers propagate it verbatim; the compiler never rewraps it.
type Error struct {
	Code    Code
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func errf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func invalidOperands(op string, lhs, rhs coltype.Type) *Error {
	return errf(CodeInvalidColumnType, "%s is not defined for %s and %s", op, lhs, rhs)
}

// CodeOf extracts the engine error code from an error chain.
// Returns ("", false) if the error is not an engine error.
func CodeOf(err error) (Code, bool) {
	var te *Error
	if errors.As(err, &te) {
		return te.Code, true
	}
	return "", false
}
