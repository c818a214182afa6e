package domain

import (
	"errors"
	"fmt"
)

// ErrUnauthorized is returned when the backend rejects the bearer token on an
// authenticated call. By the time a caller sees it, the session has already
// been cleared and navigation forced to the login view.
var ErrUnauthorized = errors.New("authentication expired")

var ErrNoSession = errors.New("no active session")
var ErrInsufficientStock = errors.New("insufficient stock")
var ErrEmptyCart = errors.New("cart is empty")
var ErrBadExpiryDate = errors.New("malformed expiry date")

// RequestError is the discriminated failure payload decoded from a non-2xx
// backend response. Message is always populated: the backend's own message
// when present, a fixed fallback otherwise.
type RequestError struct {
	StatusCode int
	Message    string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
}
