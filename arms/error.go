package arms

import (
	"errors"

	"github.com/ONSdigital/log.go/v2/log"
)

// ErrorKind classifies a failed ARMS call
type ErrorKind int

const (
	// KindInput is a malformed or missing filter value
	KindInput ErrorKind = iota + 1
	// KindNetwork is an unreachable endpoint, a non-200 response or a rejected key
	KindNetwork
	// KindDecode is a body that is not JSON or lacks the expected data member
	KindDecode
)

func (k ErrorKind) String() string {
	switch k {
	case KindInput:
		return "input"
	case KindNetwork:
		return "network"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// Error is the error returned by every ARMS operation. It carries the kind of
// failure, the upstream status code (if any) and data to be logged alongside it.
type Error struct {
	kind    ErrorKind
	err     error
	code    int
	logData map[string]interface{}
}

// NewError creates a new Error of the given kind
func NewError(kind ErrorKind, err error, logData log.Data) *Error {
	return &Error{
		kind:    kind,
		err:     err,
		logData: logData,
	}
}

// WithCode sets the upstream status code and returns e
func (e *Error) WithCode(code int) *Error {
	e.code = code
	return e
}

func (e *Error) Error() string {
	if e.err == nil {
		return "nil"
	}
	return e.err.Error()
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.err
}

// Kind returns the failure classification
func (e *Error) Kind() ErrorKind {
	return e.kind
}

// Code returns the HTTP status returned by the ARMS API, or 0 if the
// request never got a response
func (e *Error) Code() int {
	return e.code
}

// LogData returns logData for the error
func (e *Error) LogData() map[string]interface{} {
	return e.logData
}

// IsInput reports whether err is an ARMS input error
func IsInput(err error) bool {
	return hasKind(err, KindInput)
}

// IsNetwork reports whether err is an ARMS network or authorisation error
func IsNetwork(err error) bool {
	return hasKind(err, KindNetwork)
}

// IsDecode reports whether err is an ARMS decode error
func IsDecode(err error) bool {
	return hasKind(err, KindDecode)
}

func hasKind(err error, kind ErrorKind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.kind == kind
	}
	return false
}
