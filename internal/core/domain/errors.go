package domain

import "errors"

// ErrorKind is the user facing failure category of a fetch
type ErrorKind int

const (
	ErrorKindNone ErrorKind = iota
	ErrorKindConnection
	ErrorKindService
	ErrorKindUnexpected
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorKindNone:
		return "none"
	case ErrorKindConnection:
		return "connection"
	case ErrorKindService:
		return "service"
	case ErrorKindUnexpected:
		return "unexpected"
	default:
		return "unknown"
	}
}

// KindedError is implemented by every fetch error so callers can categorise
// without knowing the concrete type.
type KindedError interface {
	error
	Kind() ErrorKind
}

// KindOf returns the failure category of err, ErrorKindNone for nil and
// ErrorKindUnexpected for anything that does not carry a kind
func KindOf(err error) ErrorKind {
	if err == nil {
		return ErrorKindNone
	}
	var kinded KindedError
	if errors.As(err, &kinded) {
		return kinded.Kind()
	}
	return ErrorKindUnexpected
}

// UserMessage is the short cause of err meant for people, falling back to
// the full error text
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var m interface{ Message() string }
	if errors.As(err, &m) {
		return m.Message()
	}
	return err.Error()
}
