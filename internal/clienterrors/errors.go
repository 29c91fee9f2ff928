package clienterrors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Client-local validation errors
var (
	ErrValidation       = errors.New("validation failed")
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrOrganizerBid     = errors.New("organizer cannot bid on own auction")
	ErrAuctionNotActive = errors.New("auction is not active")
	ErrAuctionExpired   = errors.New("auction time has run out")
	ErrInvalidBid       = errors.New("invalid bid amount")
	ErrBidTooLow        = errors.New("bid amount too low")
	ErrBidInFlight      = errors.New("bid submission already in progress")
	ErrFileTooLarge     = errors.New("file too large")
	ErrMissingAddress   = errors.New("address is required")
)

// Session errors
var (
	ErrSessionExpired = errors.New("session expired")
	ErrNoRefreshToken = errors.New("no refresh token stored")
)

// ValidationError is a client-side rejection made before any network call.
// Message is safe to show to the user.
type ValidationError struct {
	Reason  error
	Message string
}

// NewValidation builds a ValidationError for reason with a user-facing message.
func NewValidation(reason error, format string, args ...any) *ValidationError {
	return &ValidationError{Reason: reason, Message: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() []error {
	return []error{ErrValidation, e.Reason}
}

// APIError is a non-2xx response from the backend.
type APIError struct {
	Status  int
	Message string
	Body    []byte
}

// NewAPIError decodes the server error payload, if any.
func NewAPIError(status int, body []byte) *APIError {
	return &APIError{Status: status, Message: extractMessage(body), Body: body}
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api: status %d", e.Status)
}

// IsUnauthorized reports whether err is a 401 from the backend.
func IsUnauthorized(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized
}

// StatusCode returns the HTTP status carried by err, or 0 for non-API errors.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// UserMessage picks the text to show for err: validation messages and
// server-provided 4xx messages verbatim, fallback for everything else.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}

	var vErr *ValidationError
	if errors.As(err, &vErr) && vErr.Message != "" {
		return vErr.Message
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" && apiErr.Status < http.StatusInternalServerError {
		return apiErr.Message
	}

	return fallback
}

// extractMessage looks for detail, error, message and then DRF field errors.
func extractMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}

	for _, key := range []string{"detail", "error", "message"} {
		if raw, ok := payload[key]; ok {
			if msg := firstString(raw); msg != "" {
				return msg
			}
		}
	}

	keys := make([]string, 0, len(payload))
	for k := range payload {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if msg := firstString(payload[k]); msg != "" {
			return k + ": " + msg
		}
	}
	return ""
}

func firstString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 {
		return strings.TrimSpace(list[0])
	}
	return ""
}
