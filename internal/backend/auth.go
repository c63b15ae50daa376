package backend

import (
	"context"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/kapu/reeltalk-go/internal/domain"
	"github.com/kapu/reeltalk-go/pkg/errors"
)

type userEnvelope struct {
	User *domain.User `json:"user"`
}

// Me returns the profile of the user the configured token belongs to.
func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	body, err := c.DoRequest(ctx, http.MethodGet, "/auth/me", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeUser(body, "/auth/me")
}

// CompleteOnboarding stores the picked favorites and preferences.
func (c *Client) CompleteOnboarding(ctx context.Context, req domain.OnboardingRequest) (*domain.User, error) {
	body, err := c.DoRequest(ctx, http.MethodPost, "/auth/onboarding", nil, req)
	if err != nil {
		return nil, err
	}
	return decodeUser(body, "/auth/onboarding")
}

// decodeUser accepts both {"user": {...}} and a bare user object.
func decodeUser(body []byte, path string) (*domain.User, error) {
	var env userEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, errors.NewAPIError("failed to decode user", 502, map[string]any{
			"path": path,
		}).WithCause(err)
	}
	if env.User != nil {
		return env.User, nil
	}

	var user domain.User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, errors.NewAPIError("failed to decode user", 502, map[string]any{
			"path": path,
		}).WithCause(err)
	}
	return &user, nil
}
