package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	bidding "realty-client/internal/biddingService"
	"realty-client/internal/models"
	"realty-client/internal/repository"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T) (*gin.Engine, *clockwork.FakeClock) {
	t.Helper()
	repo := repository.NewMemoryRepo()
	clock := clockwork.NewFakeClockAt(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	router := SetupRouter(Services{
		Auth:       bidding.NewAuthService(repo, "test-secret", time.Minute, clock),
		Properties: bidding.NewPropertyService(repo),
		Bidding:    bidding.NewBiddingService(repo, clock),
	})
	return router, clock
}

func call(t *testing.T, router http.Handler, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	}
	return w.Code, resp
}

func register(t *testing.T, router http.Handler, username string, role models.Role) string {
	t.Helper()
	status, resp := call(t, router, http.MethodPost, "/api/auth/register/", "", models.RegisterInput{
		Username:        username,
		Email:           username + "@example.com",
		Role:            role,
		Password:        "secret123",
		PasswordConfirm: "secret123",
	})
	require.Equal(t, http.StatusCreated, status, resp)
	tokens := resp["tokens"].(map[string]any)
	return tokens["access"].(string)
}

func TestRequireAuth(t *testing.T) {
	router, _ := newTestServer(t)

	status, resp := call(t, router, http.MethodGet, "/api/auth/me/", "", nil)
	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, "Authentication credentials were not provided.", resp["detail"])

	status, resp = call(t, router, http.MethodGet, "/api/auth/me/", "garbage", nil)
	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, "Given token not valid for any token type", resp["detail"])

	token := register(t, router, "buyer", models.RoleBuyer)
	status, resp = call(t, router, http.MethodGet, "/api/auth/me/", token, nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "buyer", resp["username"])
}

func TestOptionalAuth(t *testing.T) {
	router, _ := newTestServer(t)

	status, resp := call(t, router, http.MethodGet, "/api/properties/", "", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, 0.0, resp["count"])

	// a bad token is rejected even on public routes so the client can refresh
	status, _ = call(t, router, http.MethodGet, "/api/properties/", "garbage", nil)
	require.Equal(t, http.StatusUnauthorized, status)
}

func TestAccessTokenExpiresAfterTTL(t *testing.T) {
	router, clock := newTestServer(t)
	token := register(t, router, "buyer", models.RoleBuyer)

	clock.Advance(2 * time.Minute)

	status, _ := call(t, router, http.MethodGet, "/api/auth/me/", token, nil)
	require.Equal(t, http.StatusUnauthorized, status)
}

func TestAuctionsRequireAuth(t *testing.T) {
	router, _ := newTestServer(t)

	status, _ := call(t, router, http.MethodGet, "/api/auctions/", "", nil)
	require.Equal(t, http.StatusUnauthorized, status)

	token := register(t, router, "buyer", models.RoleBuyer)
	status, resp := call(t, router, http.MethodGet, "/api/auctions/", token, nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, []any{}, resp["results"])
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{name: "bearer", header: "Bearer abc", want: "abc"},
		{name: "lowercase_scheme", header: "bearer abc", want: "abc"},
		{name: "other_scheme", header: "Basic abc", want: ""},
		{name: "no_token", header: "Bearer", want: ""},
		{name: "empty", header: "", want: ""},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			c.Request.Header.Set("Authorization", tc.header)
			require.Equal(t, tc.want, bearerToken(c))
		})
	}
}
