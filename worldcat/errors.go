package worldcat

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// ErrNotFound reports that every search strategy was exhausted without a
// match. It is a valid terminal outcome, not a failure.
var ErrNotFound = errors.New("worldcat: no matching record")

// AuthError indicates the credential exchange failed. No row can be
// processed without a token, so the run aborts.
type AuthError struct {
	Err error
}

func (e AuthError) Error() string {
	return fmt.Errorf("auth: %w", e.Err).Error()
}

func (e AuthError) Unwrap() error {
	return e.Err
}

// RequestError indicates a single search or fetch call failed with a
// transport error or a non-success status. It is terminal for that call
// only; the caller degrades to a lesser record.
type RequestError struct {
	Endpoint string
	Status   int
	Err      error
}

func (e RequestError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: http status %d", e.Endpoint, e.Status)
	}
	return fmt.Errorf("%s: %w", e.Endpoint, e.Err).Error()
}

func (e RequestError) Unwrap() error {
	return e.Err
}

// Category maps an error to a metrics label.
func Category(err error) string {
	if err == nil {
		return "unknown"
	}
	var auth AuthError
	if errors.As(err, &auth) {
		return "auth"
	}
	var req RequestError
	if errors.As(err, &req) {
		switch {
		case req.Status == http.StatusUnauthorized, req.Status == http.StatusForbidden:
			return "unauthorized"
		case req.Status == http.StatusNotFound:
			return "not_found"
		case req.Status == http.StatusTooManyRequests:
			return "rate_limited"
		case req.Status >= 500:
			return "server"
		case req.Status != 0:
			return "http"
		}
		err = req.Err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "timeout"
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return "connection"
	}
	return "other"
}
