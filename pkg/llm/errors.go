package llm

import (
	"errors"
	"fmt"
)

// ErrorKind classifies LLM failures
type ErrorKind string

// error kinds
const (
	KindTransport ErrorKind = "transport"  // network failure, no response
	KindTimeout   ErrorKind = "timeout"    // attempt deadline exceeded
	KindCanceled  ErrorKind = "canceled"   // caller canceled the context
	KindRateLimit ErrorKind = "rate_limit" // http 429
	KindServer    ErrorKind = "server"     // http 5xx
	KindRequest   ErrorKind = "request"    // other http errors, bad key, bad model
	KindEmpty     ErrorKind = "empty"      // response without choices
)

// errPermanent matches errors which must not be retried
var errPermanent = errors.New("permanent llm error")

// Error is returned by all Client methods
type Error struct {
	Kind       ErrorKind
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("llm %s error (status %d): %v", e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("llm %s error: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports permanent errors as errPermanent
func (e *Error) Is(target error) bool {
	return target == errPermanent && !e.Temporary()
}

// Temporary reports whether the call may succeed if repeated
func (e *Error) Temporary() bool {
	switch e.Kind {
	case KindTransport, KindTimeout, KindRateLimit, KindServer:
		return true
	default:
		return false
	}
}

func isTemporary(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Temporary()
}
