// Package hbclient provides the main entry point for creating Hostbridge API clients
package hbclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/hostbridge-io/hbapi/internal/client"
	"github.com/hostbridge-io/hbapi/pkg/hbapi"
)

// New creates a new Hostbridge API client. The endpoint is normalized
// (trailing slash trimmed, "https://" added when no scheme is present).
// When config carries an API key, the login probe runs before returning,
// so a bad key fails here rather than on the first resource call.
func New(ctx context.Context, config *hbapi.Config) (hbapi.Client, error) {
	if config == nil {
		return nil, hbapi.ErrConfigRequired
	}

	if config.Endpoint == "" {
		return nil, hbapi.ErrEndpointRequired
	}

	endpoint := strings.TrimSuffix(config.Endpoint, "/")
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}

	config.Endpoint = endpoint

	apiClient, err := client.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	if config.APIKey != "" {
		err = apiClient.Login(ctx, config.APIKey)
		if err != nil {
			return nil, err
		}
	}

	return apiClient, nil
}

// NewWithEndpoint creates a logged-out client for the given endpoint. Call
// Login before issuing resource operations.
func NewWithEndpoint(ctx context.Context, endpoint string) (hbapi.Client, error) {
	return New(ctx, &hbapi.Config{
		Endpoint: endpoint,
	})
}

// NewWithKey creates a client and logs in with the given API key.
func NewWithKey(ctx context.Context, endpoint, apiKey string) (hbapi.Client, error) {
	return New(ctx, &hbapi.Config{
		Endpoint: endpoint,
		APIKey:   apiKey,
	})
}
