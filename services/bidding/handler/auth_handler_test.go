package handler

import (
	"io"
	"net/http"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"realty-client/internal/biddingerrors"
	"realty-client/internal/models"
)

// Test the auth endpoints and their error payload shapes
func TestAuthHandlers(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		path           string
		requestBody    any
		mockSetup      func(m *MockAuthServiceInterface)
		expectedStatus int
		expectedKey    string
		expectedMsg    string
	}{
		{
			name:        "login_success",
			method:      http.MethodPost,
			path:        "/auth/login/",
			requestBody: models.LoginInput{Login: "buyer", Password: "secret"},
			mockSetup: func(m *MockAuthServiceInterface) {
				m.EXPECT().Login("buyer", "secret").Return(models.TokenPair{Access: "a1", Refresh: "r1"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedKey:    "access",
			expectedMsg:    "a1",
		},
		{
			name:        "login_bad_credentials",
			method:      http.MethodPost,
			path:        "/auth/login/",
			requestBody: models.LoginInput{Login: "buyer", Password: "wrong"},
			mockSetup: func(m *MockAuthServiceInterface) {
				m.EXPECT().Login("buyer", "wrong").Return(models.TokenPair{}, biddingerrors.ErrInvalidCredentials)
			},
			expectedStatus: http.StatusUnauthorized,
			expectedKey:    "detail",
			expectedMsg:    "No active account found with the given credentials",
		},
		{
			name:        "refresh_success",
			method:      http.MethodPost,
			path:        "/auth/login/refresh/",
			requestBody: map[string]string{"refresh": "r1"},
			mockSetup: func(m *MockAuthServiceInterface) {
				m.EXPECT().Refresh("r1").Return(models.TokenPair{Access: "a2", Refresh: "r2"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedKey:    "refresh",
			expectedMsg:    "r2",
		},
		{
			name:        "refresh_revoked",
			method:      http.MethodPost,
			path:        "/auth/login/refresh/",
			requestBody: map[string]string{"refresh": "old"},
			mockSetup: func(m *MockAuthServiceInterface) {
				m.EXPECT().Refresh("old").Return(models.TokenPair{}, biddingerrors.ErrInvalidToken)
			},
			expectedStatus: http.StatusUnauthorized,
			expectedKey:    "detail",
			expectedMsg:    "Token is invalid or expired",
		},
		{
			name:           "refresh_missing_token",
			method:         http.MethodPost,
			path:           "/auth/login/refresh/",
			requestBody:    `{}`,
			mockSetup:      func(*MockAuthServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
			expectedKey:    "error",
			expectedMsg:    "invalid request payload",
		},
		{
			name:   "register_validation",
			method: http.MethodPost,
			path:   "/auth/register/",
			requestBody: models.RegisterInput{
				Username: "x", Email: "x@example.com", Role: models.RoleBuyer, Password: "a", PasswordConfirm: "b",
			},
			mockSetup: func(m *MockAuthServiceInterface) {
				m.EXPECT().Register(gomock.Any()).Return(models.RegisterResult{}, wrapInput("passwords do not match"))
			},
			expectedStatus: http.StatusBadRequest,
			expectedKey:    "error",
			expectedMsg:    "passwords do not match",
		},
		{
			name:        "logout_success",
			method:      http.MethodPost,
			path:        "/auth/logout/",
			requestBody: map[string]string{"refresh_token": "r1"},
			mockSetup: func(m *MockAuthServiceInterface) {
				m.EXPECT().Logout("r1").Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedKey:    "detail",
			expectedMsg:    "Successfully logged out.",
		},
		{
			name:   "profile",
			method: http.MethodGet,
			path:   "/auth/me/",
			mockSetup: func(m *MockAuthServiceInterface) {
				m.EXPECT().Profile(testBuyer.ID).Return(testBuyer, nil)
			},
			expectedStatus: http.StatusOK,
			expectedKey:    "username",
			expectedMsg:    "buyer",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			mockService := NewMockAuthServiceInterface(ctrl)
			tc.mockSetup(mockService)

			h := NewAuthHandler(mockService)
			router := newTestRouter()
			router.POST("/auth/login/", h.LoginHandler)
			router.POST("/auth/login/refresh/", h.RefreshHandler)
			router.POST("/auth/register/", h.RegisterHandler)
			router.POST("/auth/logout/", asUser(testBuyer), h.LogoutHandler)
			router.GET("/auth/me/", asUser(testBuyer), h.ProfileHandler)

			var body io.Reader
			if tc.requestBody != nil {
				body = jsonBody(t, tc.requestBody)
			}
			w, resp := doRequest(t, router, tc.method, tc.path, body, "application/json")

			require.Equal(t, tc.expectedStatus, w.Code, w.Body.String())
			require.Equal(t, tc.expectedMsg, resp[tc.expectedKey])
		})
	}
}

func wrapInput(reason string) error {
	return &inputError{reason: reason}
}

type inputError struct{ reason string }

func (e *inputError) Error() string { return "service: invalid input - " + e.reason }
func (e *inputError) Unwrap() error { return biddingerrors.ErrInvalidInput }
