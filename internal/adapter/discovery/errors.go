package discovery

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"syscall"
	"time"

	"github.com/thushan/ollaview/internal/core/domain"
)

// ConnectionError means the service could not be reached at all
type ConnectionError struct {
	Err     error
	URL     string
	Latency time.Duration
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("unable to reach %s after %v: %v", e.URL, e.Latency, e.Err)
}

func (e *ConnectionError) Unwrap() error          { return e.Err }
func (e *ConnectionError) Kind() domain.ErrorKind { return domain.ErrorKindConnection }

// ServiceError means the service answered with something other than 200
type ServiceError struct {
	URL        string
	Status     string
	StatusCode int
	Latency    time.Duration
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s responded HTTP %d (%s) after %v", e.URL, e.StatusCode, e.Status, e.Latency)
}

func (e *ServiceError) Kind() domain.ErrorKind { return domain.ErrorKindService }

// UnexpectedError covers everything else: timeouts, unreadable or malformed
// bodies. Message is what the user gets to see.
type UnexpectedError struct {
	Err       error
	URL       string
	Operation string
	Latency   time.Duration
}

func (e *UnexpectedError) Error() string {
	return fmt.Sprintf("%s failed for %s after %v: %v", e.Operation, e.URL, e.Latency, e.Err)
}

func (e *UnexpectedError) Unwrap() error          { return e.Err }
func (e *UnexpectedError) Kind() domain.ErrorKind { return domain.ErrorKindUnexpected }

// Message is the human readable cause without URL and timing noise
func (e *UnexpectedError) Message() string {
	if e.Err == nil {
		return e.Operation
	}
	if errors.Is(e.Err, context.DeadlineExceeded) || isTimeout(e.Err) {
		return "request timed out"
	}
	var pe *ParseError
	if errors.As(e.Err, &pe) {
		return pe.Error()
	}
	var ue *url.Error
	if errors.As(e.Err, &ue) {
		return ue.Err.Error()
	}
	return e.Err.Error()
}

// ParseError indicates response parsing failed
type ParseError struct {
	Err    error
	Format string
	Data   []byte
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s response: %v", e.Format, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// classifyTransportError decides whether a failed http.Client.Do means the
// service is unreachable or something else went wrong. Timeouts are never
// connection errors, even when they happen while dialing.
func classifyTransportError(endpoint string, latency time.Duration, err error) error {
	if isTimeout(err) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &UnexpectedError{URL: endpoint, Operation: "http_request", Latency: latency, Err: err}
	}

	if isUnreachable(err) {
		return &ConnectionError{URL: endpoint, Latency: latency, Err: err}
	}

	return &UnexpectedError{URL: endpoint, Operation: "http_request", Latency: latency, Err: err}
}

func isTimeout(err error) bool {
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var te interface{ Timeout() bool }
	return errors.As(err, &te) && te.Timeout()
}

func isUnreachable(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	switch {
	case errors.Is(err, syscall.ECONNREFUSED),
		errors.Is(err, syscall.ECONNRESET),
		errors.Is(err, syscall.EHOSTUNREACH),
		errors.Is(err, syscall.ENETUNREACH),
		errors.Is(err, syscall.ECONNABORTED):
		return true
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return true
	}
	return false
}
