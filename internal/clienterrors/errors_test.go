package clienterrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewAPIError_MessageExtraction(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "detail", body: `{"detail":"Неверный логин или пароль"}`, want: "Неверный логин или пароль"},
		{name: "error", body: `{"error":"Аукцион не активен"}`, want: "Аукцион не активен"},
		{name: "message", body: `{"message":"bad input"}`, want: "bad input"},
		{name: "detail_wins_over_error", body: `{"error":"second","detail":"first"}`, want: "first"},
		{name: "field_errors", body: `{"username":["already taken"],"email":["invalid"]}`, want: "email: invalid"},
		{name: "not_json", body: `<html>502</html>`, want: ""},
		{name: "empty", body: ``, want: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := NewAPIError(http.StatusBadRequest, []byte(tc.body))
			require.Equal(t, tc.want, err.Message)
		})
	}
}

func TestUserMessage(t *testing.T) {
	const fallback = "something went wrong"

	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "validation", err: NewValidation(ErrBidTooLow, "bid must exceed %d", 100), want: "bid must exceed 100"},
		{name: "business_error", err: fmt.Errorf("wrapped: %w", NewAPIError(400, []byte(`{"error":"too low"}`))), want: "too low"},
		{name: "server_error_uses_fallback", err: NewAPIError(500, []byte(`{"error":"trace"}`)), want: fallback},
		{name: "api_error_without_message", err: NewAPIError(404, nil), want: fallback},
		{name: "transport", err: errors.New("dial tcp: connection refused"), want: fallback},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, UserMessage(tc.err, fallback))
		})
	}
}

func TestValidationError_Unwrap(t *testing.T) {
	err := fmt.Errorf("auction: %w", NewValidation(ErrOrganizerBid, "you organize this auction"))

	require.True(t, errors.Is(err, ErrValidation))
	require.True(t, errors.Is(err, ErrOrganizerBid))
	require.False(t, errors.Is(err, ErrBidTooLow))
}

func TestStatusCode(t *testing.T) {
	require.Equal(t, 0, StatusCode(errors.New("plain")))
	require.True(t, IsUnauthorized(fmt.Errorf("x: %w", NewAPIError(401, nil))))
	require.False(t, IsUnauthorized(NewAPIError(403, nil)))
}
