package bidding

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"
	"golang.org/x/crypto/bcrypt"

	"realty-client/internal/biddingerrors"
	"realty-client/internal/models"
	"realty-client/internal/repository"
	"realty-client/utils"
)

// DefaultRefreshTTL is the lifetime of an issued refresh token
const DefaultRefreshTTL = 7 * 24 * time.Hour

// accessClaims is the payload of a sandbox access token
type accessClaims struct {
	UserID    int64  `json:"user_id"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// AuthService issues and verifies sandbox credentials
type AuthService struct {
	repo       repository.AuctionDB
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	clock      clockwork.Clock
}

// NewAuthService creates an AuthService signing HS256 access tokens with secret
func NewAuthService(repo repository.AuctionDB, secret string, accessTTL time.Duration, clock clockwork.Clock) *AuthService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &AuthService{
		repo:       repo,
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: DefaultRefreshTTL,
		clock:      clock,
	}
}

// Register creates an account and signs it in
func (s *AuthService) Register(in models.RegisterInput) (models.RegisterResult, error) {
	if err := validateRegistration(in); err != nil {
		return models.RegisterResult{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.RegisterResult{}, fmt.Errorf("service: hash password: %w", err)
	}

	u, err := s.repo.CreateUser(repository.UserRecord{
		User: models.User{
			Username: strings.TrimSpace(in.Username),
			FullName: strings.TrimSpace(in.FullName),
			Email:    strings.TrimSpace(in.Email),
			Phone:    strings.TrimSpace(in.Phone),
			Role:     in.Role,
		},
		PasswordHash: hash,
	})
	if err != nil {
		return models.RegisterResult{}, fmt.Errorf("service: register %s: %w", in.Username, err)
	}

	pair, err := s.issue(u.ID)
	if err != nil {
		return models.RegisterResult{}, err
	}

	utils.Info("sandbox: user registered", map[string]any{"user_id": u.ID, "role": u.Role})
	return models.RegisterResult{User: u.User, Tokens: pair}, nil
}

func validateRegistration(in models.RegisterInput) error {
	switch {
	case strings.TrimSpace(in.Username) == "":
		return fmt.Errorf("service: %w - username is required", biddingerrors.ErrInvalidInput)
	case strings.TrimSpace(in.Email) == "":
		return fmt.Errorf("service: %w - email is required", biddingerrors.ErrInvalidInput)
	case in.Role != models.RoleBuyer && in.Role != models.RoleSeller:
		return fmt.Errorf("service: %w - unknown role %q", biddingerrors.ErrInvalidInput, in.Role)
	case in.Password == "":
		return fmt.Errorf("service: %w - password is required", biddingerrors.ErrInvalidInput)
	case in.Password != in.PasswordConfirm:
		return fmt.Errorf("service: %w - passwords do not match", biddingerrors.ErrInvalidInput)
	}
	return nil
}

// Login exchanges credentials for a token pair
func (s *AuthService) Login(login, password string) (models.TokenPair, error) {
	u, err := s.repo.FindUserByLogin(login)
	if err != nil {
		if errors.Is(err, biddingerrors.ErrUserNotFound) {
			return models.TokenPair{}, biddingerrors.ErrInvalidCredentials
		}
		return models.TokenPair{}, fmt.Errorf("service: login: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)); err != nil {
		return models.TokenPair{}, biddingerrors.ErrInvalidCredentials
	}

	return s.issue(u.ID)
}

// Refresh rotates a refresh token: the old one is revoked and a new pair issued
func (s *AuthService) Refresh(refresh string) (models.TokenPair, error) {
	if !utils.IsID(refresh) {
		return models.TokenPair{}, biddingerrors.ErrInvalidToken
	}
	rt, err := s.repo.GetRefreshToken(refresh)
	if err != nil {
		return models.TokenPair{}, biddingerrors.ErrInvalidToken
	}
	if err := s.repo.DeleteRefreshToken(refresh); err != nil {
		// lost a race with another refresh of the same token
		return models.TokenPair{}, biddingerrors.ErrInvalidToken
	}
	if !s.clock.Now().Before(rt.ExpiresAt) {
		return models.TokenPair{}, biddingerrors.ErrInvalidToken
	}

	return s.issue(rt.UserID)
}

// Logout revokes a refresh token
func (s *AuthService) Logout(refresh string) error {
	if refresh == "" {
		return fmt.Errorf("service: %w - refresh_token is required", biddingerrors.ErrInvalidInput)
	}
	if !utils.IsID(refresh) {
		return biddingerrors.ErrInvalidToken
	}
	if err := s.repo.DeleteRefreshToken(refresh); err != nil {
		return biddingerrors.ErrInvalidToken
	}
	return nil
}

// Authenticate verifies an access token and returns its user
func (s *AuthService) Authenticate(access string) (models.User, error) {
	claims := &accessClaims{}
	token, err := jwt.ParseWithClaims(access, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.clock.Now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid || claims.TokenType != "access" {
		return models.User{}, biddingerrors.ErrInvalidToken
	}

	u, err := s.repo.GetUser(claims.UserID)
	if err != nil {
		return models.User{}, biddingerrors.ErrInvalidToken
	}
	return u.User, nil
}

// Profile returns the account of userID
func (s *AuthService) Profile(userID int64) (models.User, error) {
	u, err := s.repo.GetUser(userID)
	if err != nil {
		return models.User{}, fmt.Errorf("service: profile %d: %w", userID, err)
	}
	return u.User, nil
}

func (s *AuthService) issue(userID int64) (models.TokenPair, error) {
	now := s.clock.Now()

	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims{
		UserID:    userID,
		TokenType: "access",
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        utils.GenerateID(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
	}).SignedString(s.secret)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("service: sign access token: %w", err)
	}

	refresh := utils.GenerateID()
	if err := s.repo.SaveRefreshToken(repository.RefreshToken{
		Token:     refresh,
		UserID:    userID,
		ExpiresAt: now.Add(s.refreshTTL),
	}); err != nil {
		return models.TokenPair{}, fmt.Errorf("service: save refresh token: %w", err)
	}

	return models.TokenPair{Access: access, Refresh: refresh}, nil
}
