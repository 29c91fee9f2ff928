package apiclient

import (
	"context"
	"net/http"

	"realty-client/internal/models"
)

// Login exchanges credentials for a token pair. The pair is not stored;
// persisting it is the caller's decision.
func (c *Client) Login(ctx context.Context, in models.LoginInput) (*models.TokenPair, error) {
	var pair models.TokenPair
	if err := c.Do(ctx, http.MethodPost, "/auth/login/", in, &pair, WithoutAuth()); err != nil {
		return nil, err
	}
	return &pair, nil
}

func (c *Client) Register(ctx context.Context, in models.RegisterInput) (*models.RegisterResult, error) {
	var res models.RegisterResult
	if err := c.Do(ctx, http.MethodPost, "/auth/register/", in, &res, WithoutAuth()); err != nil {
		return nil, err
	}
	return &res, nil
}

// Logout blacklists refresh on the server.
func (c *Client) Logout(ctx context.Context, refresh string) error {
	body := map[string]string{"refresh_token": refresh}
	return c.post(ctx, "/auth/logout/", body, nil)
}

// Profile returns the account owning the current access token.
func (c *Client) Profile(ctx context.Context) (*models.User, error) {
	var u models.User
	if err := c.get(ctx, "/auth/me/", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) UpdateProfile(ctx context.Context, in models.ProfileUpdate) (*models.User, error) {
	var u models.User
	if err := c.Do(ctx, http.MethodPatch, "/auth/me/", in, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
