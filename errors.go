package betfair

import (
	"errors"
	"fmt"
)

var (
	ErrNoSession      = errors.New("betfair: no session token")
	ErrInvalidSession = errors.New("betfair: invalid or expired session")
	ErrUnauthorized   = errors.New("betfair: unauthorized")
	ErrRateLimited    = errors.New("betfair: rate limited")
	ErrBadRequest     = errors.New("betfair: bad request")
	ErrTimeout        = errors.New("betfair: request timed out")
	ErrServerError    = errors.New("betfair: server error")
	ErrLoginFailed    = errors.New("betfair: login failed")
)

// APIError is an APING exception returned inside a JSON-RPC error envelope.
// The exchange reports business-level failures this way; transport-level
// failures (non-200 statuses, dead connections) surface as plain wrapped
// errors instead.
type APIError struct {
	Method       string // fully qualified method that failed
	Code         int    // JSON-RPC error code
	Message      string // JSON-RPC error message
	ErrorCode    string // APINGException errorCode, e.g. "INVALID_SESSION_INFORMATION"
	ErrorDetails string
	RequestUUID  string
}

func (e *APIError) Error() string {
	if e.ErrorCode != "" {
		return fmt.Sprintf("betfair: %s: %s (%s)", e.Method, e.ErrorCode, e.ErrorDetails)
	}
	return fmt.Sprintf("betfair: %s: rpc error %d: %s", e.Method, e.Code, e.Message)
}

// Unwrap classifies the exception so callers can branch with errors.Is
// without matching error-code strings themselves.
func (e *APIError) Unwrap() error {
	switch e.ErrorCode {
	case "INVALID_SESSION_INFORMATION", "NO_SESSION":
		return ErrInvalidSession
	case "INVALID_APP_KEY", "NO_APP_KEY", "ACCESS_DENIED":
		return ErrUnauthorized
	case "TOO_MANY_REQUESTS":
		return ErrRateLimited
	case "TOO_MUCH_DATA", "INVALID_INPUT_DATA", "REQUEST_SIZE_EXCEEDS_LIMIT":
		return ErrBadRequest
	case "TIMEOUT_ERROR":
		return ErrTimeout
	case "SERVICE_BUSY", "UNEXPECTED_ERROR":
		return ErrServerError
	}
	return nil
}

// LoginError is a failed identity operation (login, keep-alive, logout).
// Status carries the exchange's reason, e.g. "INVALID_USERNAME_OR_PASSWORD".
type LoginError struct {
	Op     string
	Status string
}

func (e *LoginError) Error() string {
	return fmt.Sprintf("betfair: %s failed: %s", e.Op, e.Status)
}

func (e *LoginError) Unwrap() error { return ErrLoginFailed }
