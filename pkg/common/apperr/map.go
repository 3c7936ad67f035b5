package apperr

import (
	"fmt"
)

// Generic Action Messages
const (
	MsgBadCapacity   = "capacity must be at least 1"
	MsgCapacityLimit = "capacity exceeds limit"
	MsgNilRegion     = "region is nil"
	MsgSmallRegion   = "region too small"
	MsgNilComparator = "comparator is nil"
	MsgFull          = "full"
	MsgEmpty         = "empty"
	MsgCorrupt       = "corrupt header"
	MsgHeapViolation = "heap property violated"
	MsgLayoutDrift   = "layout does not match buffer size"
	MsgExhausted     = "region exhausted"
	MsgUninitialized = "not initialized"
)

// MapError wraps an error with a standardized "<component> <msg>" message.
func MapError(component string, err error, code Code, msg string) *AppError {
	if err == nil {
		return nil
	}

	formattedMsg := fmt.Sprintf("%s: %s", component, msg)
	return Wrap(err, code, formattedMsg)
}

// NewError creates a new AppError with standardized message format.
// The returned error matches the code's sentinel under errors.Is.
func NewError(component string, code Code, msg string) *AppError {
	return New(code, fmt.Sprintf("%s: %s", component, msg), nil)
}

// NewErrorf is NewError with a formatted detail appended to msg.
func NewErrorf(component string, code Code, msg string, format string, args ...any) *AppError {
	return New(code, fmt.Sprintf("%s: %s (%s)", component, msg, fmt.Sprintf(format, args...)), nil)
}
