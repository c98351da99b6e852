package profilesdk

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// SDKClient talks to a profiles service.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a client with a 10s request timeout.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// GetLiveness checks if the service is alive.
func (c *SDKClient) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/livez")
}

// GetReadiness checks if the service can reach its database. A 503 comes
// back as an *APIError; the body's checks are not surfaced.
func (c *SDKClient) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/readyz")
}

func (c *SDKClient) health(ctx context.Context, path string) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, path)
	if err != nil {
		return nil, err
	}

	var health HealthResponse
	if err := decodeJSON(resp, &health, http.StatusOK); err != nil {
		return nil, err
	}
	return &health, nil
}

// ListUsers fetches every user, newest first.
func (c *SDKClient) ListUsers(ctx context.Context) (*ListUsersResponse, error) {
	resp, err := c.doRequest(ctx, "/api/users")
	if err != nil {
		return nil, err
	}

	var out ListUsersResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetUser fetches one user. A missing user yields an error matching ErrNotFound.
func (c *SDKClient) GetUser(ctx context.Context, id int64) (*UserResponse, error) {
	resp, err := c.doRequest(ctx, "/api/users/"+strconv.FormatInt(id, 10))
	if err != nil {
		return nil, err
	}

	var out UserResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
