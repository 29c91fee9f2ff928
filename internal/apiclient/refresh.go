package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"realty-client/internal/clienterrors"
	"realty-client/internal/models"
	"realty-client/internal/tokenstore"
	"realty-client/utils"
)

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

// recoverSession returns an access token to replay a request that failed
// with 401 while carrying staleToken.
//
// Refreshes are single-flight per stale token: concurrent callers that got
// a 401 for the same token share one exchange. A caller arriving after that
// exchange finished finds a different token in the store and replays with
// it without refreshing again.
func (c *Client) recoverSession(ctx context.Context, staleToken string) (string, error) {
	v, err, _ := c.refreshGroup.Do(staleToken, func() (any, error) {
		tokens, err := c.tokens.Load()
		if err != nil {
			return "", fmt.Errorf("load tokens: %w", err)
		}

		if tokens.Access != "" && tokens.Access != staleToken {
			return tokens.Access, nil
		}

		if tokens.Refresh == "" {
			c.expireSession("no refresh token")
			return "", clienterrors.ErrNoRefreshToken
		}

		// the shared exchange must not die with whichever caller started it
		fresh, err := c.exchangeRefreshToken(context.WithoutCancel(ctx), tokens.Refresh)
		if err != nil {
			c.expireSession(err.Error())
			return "", fmt.Errorf("%w: refresh failed: %v", clienterrors.ErrSessionExpired, err)
		}

		if fresh.Refresh != "" {
			err = c.tokens.Save(tokenstore.Tokens{Access: fresh.Access, Refresh: fresh.Refresh})
		} else {
			err = c.tokens.SetAccess(fresh.Access)
		}
		if err != nil {
			// a token the store cannot keep is as good as no token
			c.expireSession("persist refreshed token: " + err.Error())
			return "", fmt.Errorf("%w: persist refreshed token: %v", clienterrors.ErrSessionExpired, err)
		}

		utils.Info("apiclient: access token refreshed", map[string]any{"rotated_refresh": fresh.Refresh != ""})
		return fresh.Access, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (c *Client) exchangeRefreshToken(ctx context.Context, refresh string) (*models.TokenPair, error) {
	req, err := c.prepare(http.MethodPost, c.refreshPath, refreshRequest{Refresh: refresh}, requestConfig{noAuth: true})
	if err != nil {
		return nil, err
	}

	status, data, err := c.send(ctx, req, "")
	if err != nil {
		return nil, fmt.Errorf("refresh request: %w", err)
	}
	if status != http.StatusOK {
		return nil, clienterrors.NewAPIError(status, data)
	}

	var pair models.TokenPair
	if err := json.Unmarshal(data, &pair); err != nil {
		return nil, fmt.Errorf("refresh response: %w", err)
	}
	if pair.Access == "" {
		return nil, errors.New("refresh response: missing access token")
	}
	return &pair, nil
}

func (c *Client) expireSession(reason string) {
	if err := c.tokens.Clear(); err != nil {
		utils.Error("apiclient: failed to clear tokens", map[string]any{"error": err.Error()})
	}
	utils.Warn("apiclient: session cleared", map[string]any{"reason": reason})

	c.hookMu.RLock()
	hook := c.onSessionExpired
	c.hookMu.RUnlock()
	if hook != nil {
		hook()
	}
}
