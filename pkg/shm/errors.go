package shm

import "errors"

// Code is the closed set of domain error codes produced by this package.
type Code int

const (
	CodeSuccess Code = iota
	CodeAlreadyExists
	CodeNotFound
	CodePermissionDenied
	CodeInvalidArgument
	CodeSizeMismatch
	CodeMappingFailed
	CodeInvalidSize
	CodeInvalidName
	CodeUnknown
)

func (c Code) String() string {
	switch c {
	case CodeSuccess:
		return "success"
	case CodeAlreadyExists:
		return "shared memory already exists"
	case CodeNotFound:
		return "shared memory not found"
	case CodePermissionDenied:
		return "permission denied"
	case CodeInvalidArgument:
		return "invalid argument"
	case CodeSizeMismatch:
		return "size mismatch"
	case CodeMappingFailed:
		return "memory mapping failed"
	case CodeInvalidSize:
		return "invalid size (must be greater than zero)"
	case CodeInvalidName:
		return "invalid shared memory name"
	}
	return "unknown error"
}

// Sentinels for errors.Is. Every *Error returned by this package matches
// exactly one of these according to its Code.
var (
	ErrAlreadyExists    = errors.New("shared memory already exists")
	ErrNotFound         = errors.New("shared memory not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrSizeMismatch     = errors.New("size mismatch")
	ErrMappingFailed    = errors.New("memory mapping failed")
	ErrInvalidSize      = errors.New("invalid size (must be greater than zero)")
	ErrInvalidName      = errors.New("invalid shared memory name")
	ErrUnknown          = errors.New("unknown error")
)

func (c Code) sentinel() error {
	switch c {
	case CodeAlreadyExists:
		return ErrAlreadyExists
	case CodeNotFound:
		return ErrNotFound
	case CodePermissionDenied:
		return ErrPermissionDenied
	case CodeInvalidArgument:
		return ErrInvalidArgument
	case CodeSizeMismatch:
		return ErrSizeMismatch
	case CodeMappingFailed:
		return ErrMappingFailed
	case CodeInvalidSize:
		return ErrInvalidSize
	case CodeInvalidName:
		return ErrInvalidName
	}
	return ErrUnknown
}

// Error describes a failed shared memory operation. Err holds the host
// error (an errno on POSIX, a Windows error code on Windows) when one
// applies.
type Error struct {
	Code Code
	Op   string // the operation or host call that failed
	Name string // the user-supplied region name
	Err  error
}

func (e *Error) Error() string {
	s := "shm: " + e.Op
	if e.Name != "" {
		s += " " + e.Name
	}
	s += ": " + e.Code.String()
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches the sentinel corresponding to the error's code, so that
// errors.Is(err, shm.ErrNotFound) works regardless of the wrapped host
// error.
func (e *Error) Is(target error) bool {
	return target == e.Code.sentinel()
}

func opError(op, name string, code Code, err error) *Error {
	return &Error{Code: code, Op: op, Name: name, Err: err}
}
