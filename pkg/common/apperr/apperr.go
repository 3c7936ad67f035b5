package apperr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Code is the result code shared by every container operation.
type Code int

const (
	Success Code = iota
	InvalidArgument
	OperationFailed
	AllocationFailed
)

func (c Code) String() string {
	switch c {
	case Success:
		return "success"
	case InvalidArgument:
		return "invalid argument"
	case OperationFailed:
		return "operation failed"
	case AllocationFailed:
		return "allocation failed"
	default:
		return fmt.Sprintf("code(%d)", int(c))
	}
}

// Sentinels matched with errors.Is. Every error returned by the container
// packages wraps exactly one of these.
var (
	ErrInvalidArgument  = &AppError{Code: InvalidArgument, Message: InvalidArgument.String()}
	ErrOperationFailed  = &AppError{Code: OperationFailed, Message: OperationFailed.String()}
	ErrAllocationFailed = &AppError{Code: AllocationFailed, Message: AllocationFailed.String()}
)

// AppError is a coded error with an optional cause.
type AppError struct {
	Code    Code
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + e.Cause.Error()
}

// Unwrap exposes the cause to errors.Is / errors.As.
func (e *AppError) Unwrap() error { return e.Cause }

// Is matches the code sentinels (ErrInvalidArgument and friends) for any
// AppError of that code, and otherwise requires the same code and message.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok || t.Code != e.Code {
		return false
	}
	return t.Message == t.Code.String() || t.Message == e.Message
}

// New creates a new AppError.
func New(code Code, msg string, cause error) *AppError {
	return &AppError{Code: code, Message: msg, Cause: cause}
}

// Newf creates a new AppError with a formatted message.
func Newf(code Code, format string, args ...any) *AppError {
	return &AppError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap annotates err with msg while keeping the code. A nil err yields nil.
func Wrap(err error, code Code, msg string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{Code: code, Message: msg, Cause: errors.WithStack(err)}
}

// CodeOf maps an error back to its result code. Foreign errors are treated
// as InvalidArgument since they can only come from bad caller input.
func CodeOf(err error) Code {
	if err == nil {
		return Success
	}
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return InvalidArgument
}
