package session

//go:generate mockgen -source=store.go -destination=mock_auth.go -package=session

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"realty-client/internal/clienterrors"
	"realty-client/internal/models"
	"realty-client/internal/tokenstore"
	"realty-client/utils"
)

// State is the authentication state of the session.
type State int

const (
	Anonymous State = iota
	Authenticating
	Authenticated
)

func (s State) String() string {
	switch s {
	case Anonymous:
		return "anonymous"
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Fallback messages used when the server does not explain a failure.
const (
	LoginFailedMessage    = "Login failed. Please check your credentials."
	RegisterFailedMessage = "Registration failed. Please try again."
)

// AuthAPI is the part of the backend the session needs.
type AuthAPI interface {
	Login(ctx context.Context, in models.LoginInput) (*models.TokenPair, error)
	Register(ctx context.Context, in models.RegisterInput) (*models.RegisterResult, error)
	Logout(ctx context.Context, refresh string) error
	Profile(ctx context.Context) (*models.User, error)
}

// Store holds the current user and mediates every change of the stored
// tokens other than a refresh.
type Store struct {
	api    AuthAPI
	tokens tokenstore.Store

	mu        sync.RWMutex
	state     State
	user      *models.User
	lastError string
	loading   bool

	ready     chan struct{}
	readyOnce sync.Once

	subsMu sync.Mutex
	subs   map[int]func(State)
	nextID int
}

// NewStore creates a store that reports Loading until Init returns.
func NewStore(api AuthAPI, tokens tokenstore.Store) *Store {
	return &Store{
		api:     api,
		tokens:  tokens,
		state:   Anonymous,
		loading: true,
		ready:   make(chan struct{}),
		subs:    make(map[int]func(State)),
	}
}

// Init restores a persisted session. A stored access token is validated by
// fetching the profile; if that fails the tokens are dropped.
func (s *Store) Init(ctx context.Context) error {
	defer s.markReady()

	tokens, err := s.tokens.Load()
	if err != nil {
		s.transition(Anonymous, nil)
		return fmt.Errorf("session: load tokens: %w", err)
	}
	if tokens.Empty() {
		s.transition(Anonymous, nil)
		return nil
	}

	s.transition(Authenticating, nil)

	user, err := s.api.Profile(ctx)
	if err != nil {
		s.dropTokens()
		s.transition(Anonymous, nil)
		utils.Warn("session: stored session rejected", map[string]any{"error": err.Error()})
		return fmt.Errorf("session: restore: %w", err)
	}

	s.transition(Authenticated, user)
	utils.Info("session: restored", map[string]any{"user_id": user.ID})
	return nil
}

// Ready is closed once Init has finished.
func (s *Store) Ready() <-chan struct{} {
	return s.ready
}

// Loading reports whether the initial session check is still running.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// CurrentUser returns a copy of the cached profile, or nil when anonymous.
func (s *Store) CurrentUser() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Store) IsAuthenticated() bool {
	return s.State() == Authenticated
}

func (s *Store) IsBuyer() bool {
	return s.CurrentUser().IsBuyer()
}

func (s *Store) IsSeller() bool {
	return s.CurrentUser().IsSeller()
}

// LastError is the user-facing message of the last failed login or
// registration. It is reset by the next successful one.
func (s *Store) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastError
}

// Login exchanges credentials for tokens, stores them and loads the profile.
func (s *Store) Login(ctx context.Context, in models.LoginInput) error {
	in.Login = strings.TrimSpace(in.Login)
	if in.Login == "" || in.Password == "" {
		err := clienterrors.NewValidation(clienterrors.ErrValidation, "login and password are required")
		s.setLastError(err, LoginFailedMessage)
		return err
	}

	s.transition(Authenticating, nil)

	pair, err := s.api.Login(ctx, in)
	if err != nil {
		s.fail(err, LoginFailedMessage)
		return fmt.Errorf("session: login: %w", err)
	}

	if err := s.tokens.Save(tokenstore.Tokens{Access: pair.Access, Refresh: pair.Refresh}); err != nil {
		s.fail(err, LoginFailedMessage)
		return fmt.Errorf("session: save tokens: %w", err)
	}

	user, err := s.api.Profile(ctx)
	if err != nil {
		s.dropTokens()
		s.fail(err, LoginFailedMessage)
		return fmt.Errorf("session: load profile: %w", err)
	}

	s.succeed(user)
	utils.Info("session: logged in", map[string]any{"user_id": user.ID, "role": user.Role})
	return nil
}

// Register creates an account and signs into it.
func (s *Store) Register(ctx context.Context, in models.RegisterInput) error {
	if err := validateRegistration(in); err != nil {
		s.setLastError(err, RegisterFailedMessage)
		return err
	}

	s.transition(Authenticating, nil)

	res, err := s.api.Register(ctx, in)
	if err != nil {
		s.fail(err, RegisterFailedMessage)
		return fmt.Errorf("session: register: %w", err)
	}

	if err := s.tokens.Save(tokenstore.Tokens{Access: res.Tokens.Access, Refresh: res.Tokens.Refresh}); err != nil {
		s.fail(err, RegisterFailedMessage)
		return fmt.Errorf("session: save tokens: %w", err)
	}

	user := res.User
	s.succeed(&user)
	utils.Info("session: registered", map[string]any{"user_id": user.ID, "role": user.Role})
	return nil
}

// Logout tells the server to invalidate the refresh token and always
// removes the local tokens, whatever the server answered.
func (s *Store) Logout(ctx context.Context) error {
	tokens, err := s.tokens.Load()
	if err != nil {
		utils.Warn("session: load tokens on logout", map[string]any{"error": err.Error()})
	}

	if tokens.Refresh != "" {
		if err := s.api.Logout(ctx, tokens.Refresh); err != nil {
			utils.Warn("session: server logout failed", map[string]any{"error": err.Error()})
		}
	}

	clearErr := s.tokens.Clear()
	s.transition(Anonymous, nil)

	if clearErr != nil {
		return fmt.Errorf("session: clear tokens: %w", clearErr)
	}
	utils.Info("session: logged out", nil)
	return nil
}

// Expire drops the cached user after the API client gave up refreshing.
// The client has already cleared the tokens.
func (s *Store) Expire() {
	if s.State() == Anonymous {
		return
	}
	s.transition(Anonymous, nil)
	utils.Info("session: expired", nil)
}

// Subscribe registers fn for state changes and returns a function that
// removes it. fn runs on the goroutine that caused the change.
func (s *Store) Subscribe(fn func(State)) func() {
	s.subsMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.subsMu.Unlock()

	return func() {
		s.subsMu.Lock()
		delete(s.subs, id)
		s.subsMu.Unlock()
	}
}

func (s *Store) markReady() {
	s.readyOnce.Do(func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
		close(s.ready)
	})
}

func (s *Store) succeed(user *models.User) {
	s.mu.Lock()
	s.lastError = ""
	s.mu.Unlock()
	s.transition(Authenticated, user)
}

func (s *Store) setLastError(err error, fallback string) {
	s.mu.Lock()
	s.lastError = clienterrors.UserMessage(err, fallback)
	s.mu.Unlock()
}

func (s *Store) fail(err error, fallback string) {
	s.setLastError(err, fallback)
	s.transition(Anonymous, nil)
}

func (s *Store) dropTokens() {
	if err := s.tokens.Clear(); err != nil {
		utils.Error("session: clear tokens", map[string]any{"error": err.Error()})
	}
}

// transition sets the state and the cached user and notifies subscribers
// when the state changed.
func (s *Store) transition(next State, user *models.User) {
	s.mu.Lock()
	prev := s.state
	s.state = next
	s.user = user
	s.mu.Unlock()

	if prev == next {
		return
	}

	s.subsMu.Lock()
	fns := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subsMu.Unlock()

	for _, fn := range fns {
		fn(next)
	}
}

func validateRegistration(in models.RegisterInput) error {
	switch {
	case strings.TrimSpace(in.Username) == "":
		return clienterrors.NewValidation(clienterrors.ErrValidation, "username is required")
	case strings.TrimSpace(in.Email) == "":
		return clienterrors.NewValidation(clienterrors.ErrValidation, "email is required")
	case in.Role != models.RoleBuyer && in.Role != models.RoleSeller:
		return clienterrors.NewValidation(clienterrors.ErrValidation, "role must be buyer or seller")
	case in.Password == "":
		return clienterrors.NewValidation(clienterrors.ErrValidation, "password is required")
	case in.Password != in.PasswordConfirm:
		return clienterrors.NewValidation(clienterrors.ErrValidation, "passwords do not match")
	}
	return nil
}
