package integrationtests

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"realty-client/internal/apiclient"
	bidding "realty-client/internal/biddingService"
	"realty-client/internal/models"
	"realty-client/internal/repository"
	"realty-client/internal/server"
	"realty-client/internal/session"
	"realty-client/internal/tokenstore"
)

const testPassword = "secret123"

// Sandbox is an in-process marketplace backend on a fake clock
type Sandbox struct {
	Server *httptest.Server
	Clock  *clockwork.FakeClock
	Repo   *repository.MemoryRepo
	Auth   *bidding.AuthService
}

// StartSandbox serves the sandbox router with the given access token TTL
func StartSandbox(t *testing.T, accessTTL time.Duration) *Sandbox {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := repository.NewMemoryRepo()
	clock := clockwork.NewFakeClockAt(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	auth := bidding.NewAuthService(repo, "integration-secret", accessTTL, clock)

	router := server.SetupRouter(server.Services{
		Auth:       auth,
		Properties: bidding.NewPropertyService(repo),
		Bidding:    bidding.NewBiddingService(repo, clock),
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &Sandbox{Server: srv, Clock: clock, Repo: repo, Auth: auth}
}

// Session is one signed-in client: API client, token store and session state
type Session struct {
	Client *apiclient.Client
	Tokens *tokenstore.MemoryStore
	Store  *session.Store
}

// NewSession wires a client and session store against the sandbox
func (sb *Sandbox) NewSession(t *testing.T) *Session {
	t.Helper()

	tokens := tokenstore.NewMemoryStore()
	client := apiclient.New(sb.Server.URL+"/api", tokens, apiclient.WithTimeout(5*time.Second))
	store := session.NewStore(client, tokens)
	client.OnSessionExpired(store.Expire)

	require.NoError(t, store.Init(context.Background()))
	return &Session{Client: client, Tokens: tokens, Store: store}
}

// RegisterSession creates an account through the client and returns its signed-in session
func (sb *Sandbox) RegisterSession(t *testing.T, username string, role models.Role) *Session {
	t.Helper()

	s := sb.NewSession(t)
	err := s.Store.Register(context.Background(), models.RegisterInput{
		Username:        username,
		FullName:        "Test " + username,
		Email:           username + "@example.com",
		Role:            role,
		Password:        testPassword,
		PasswordConfirm: testPassword,
	})
	require.NoError(t, err)
	require.True(t, s.Store.IsAuthenticated())
	return s
}

// SeedAuction creates a listing and a time-bound auction owned by seller
func (sb *Sandbox) SeedAuction(t *testing.T, seller *Session, startPrice float64, duration time.Duration) *models.Auction {
	t.Helper()
	ctx := context.Background()

	p, err := seller.Client.CreateProperty(ctx, models.PropertyInput{
		Fields: map[string]string{
			"title": "Квартира для аукциона",
			"type":  string(models.PropertySale),
			"price": models.Amount(startPrice).String(),
			"rooms": "3",
		},
	})
	require.NoError(t, err)

	end := sb.Clock.Now().Add(duration)
	a, err := seller.Client.CreateAuction(ctx, models.AuctionInput{
		PropertyID: p.ID,
		StartPrice: startPrice,
		StartTime:  sb.Clock.Now(),
		EndTime:    &end,
		EndType:    models.EndByTime,
	})
	require.NoError(t, err)
	require.Equal(t, models.AuctionActive, a.Status)
	return a
}
