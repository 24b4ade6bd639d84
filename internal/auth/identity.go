package auth

import (
	"context"
	"time"

	"mounti/pkg/client"
	apperrors "mounti/pkg/errors"
	"mounti/pkg/logger"
)

// Identity is what the external identity service returns for a valid
// session identifier.
type Identity struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture,omitempty"`
}

type IdentityClient interface {
	Exchange(ctx context.Context, sessionID string) (*Identity, error)
}

const sessionIDHeader = "X-Session-ID"

type httpIdentityClient struct {
	client *client.HttpClient
	log    *logger.Logger
}

// NewIdentityClient builds the HTTP client for the identity exchange. The
// timeout bounds the whole exchange; the upstream provider gets no
// retries and no circuit breaking.
func NewIdentityClient(baseURL string, timeout time.Duration, log *logger.Logger) IdentityClient {
	return &httpIdentityClient{
		client: client.NewHttpClient(baseURL, timeout),
		log:    log,
	}
}

func (c *httpIdentityClient) Exchange(ctx context.Context, sessionID string) (*Identity, error) {
	resp, err := c.client.POST(ctx, "", nil, map[string]string{
		sessionIDHeader: sessionID,
	})
	if err != nil {
		c.log.Error("Identity service unreachable", "error", err)
		return nil, apperrors.AuthService("Identity service unavailable", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Warn("Identity exchange rejected", "status", resp.StatusCode)
		return nil, apperrors.InvalidInput("Invalid session_id")
	}

	var identity Identity
	if err := resp.DecodeJSON(&identity); err != nil {
		return nil, apperrors.AuthService("Identity service returned malformed response", err)
	}
	if identity.Email == "" {
		return nil, apperrors.AuthService("Identity service returned no email", nil)
	}

	return &identity, nil
}
