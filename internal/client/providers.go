package client

import (
	"context"
	"fmt"

	"github.com/hostbridge-io/hbapi/internal/constants"
)

// ProvidersClient implements hbapi.ProvidersClient.
type ProvidersClient struct {
	session *Client
}

// List returns the names of the cloud providers available to the account.
func (c *ProvidersClient) List(ctx context.Context) ([]string, error) {
	transport, err := c.session.session()
	if err != nil {
		return nil, err
	}

	resp, err := transport.Get(ctx, c.session.path(constants.PathProviders), nil)
	if err != nil {
		return nil, fmt.Errorf("listing providers: %w", err)
	}

	return decodeResult[[]string](resp, "listing providers")
}
