// Package client implements the Hostbridge API session and the per-resource
// clients behind the hbapi interfaces.
package client

import (
	"context"
	"sync"

	"github.com/hostbridge-io/hbapi/internal/auth"
	"github.com/hostbridge-io/hbapi/internal/constants"
	internalhttp "github.com/hostbridge-io/hbapi/internal/http"
	"github.com/hostbridge-io/hbapi/pkg/hbapi"
)

// Client implements hbapi.Client. It owns the session (endpoint, version,
// key, transport) and the listing caches. One coarse lock guards session
// swaps; resource calls take the transport handle under it and then run
// unlocked.
type Client struct {
	mu        sync.Mutex
	endpoint  string
	version   string
	keySource *auth.StaticKeySource
	transport *internalhttp.Client // nil while logged out
	cache     hbapi.Cache
	config    *hbapi.Config

	providers *ProvidersClient
	stacks    *StacksClient
	sites     *SitesClient
	tags      *TagsClient
	domains   *DomainsClient
}

// New creates a logged-out session from config. Call Login (or use
// hbclient.New, which does it when an API key is configured) before issuing
// resource operations.
func New(config *hbapi.Config) (*Client, error) {
	if config == nil {
		return nil, hbapi.ErrConfigRequired
	}

	if config.Endpoint == "" {
		return nil, hbapi.ErrEndpointRequired
	}

	version := config.Version
	if version == "" {
		version = constants.DefaultAPIVersion
	}

	cache := config.Cache
	if cache == nil {
		cache = hbapi.NewMemoryCache(constants.DefaultCacheSize)
	}

	client := &Client{
		endpoint: config.Endpoint,
		version:  version,
		cache:    cache,
		config:   config,
	}

	client.providers = &ProvidersClient{session: client}
	client.stacks = &StacksClient{session: client}
	client.sites = &SitesClient{session: client}
	client.tags = &TagsClient{session: client}
	client.domains = &DomainsClient{session: client}

	return client, nil
}

// transportOptions translates config into transport options.
func (c *Client) transportOptions() []internalhttp.Option {
	var opts []internalhttp.Option

	if c.config.Logger != nil {
		opts = append(opts, internalhttp.WithLogger(c.config.Logger))
	}

	if c.config.Debug {
		opts = append(opts, internalhttp.WithDebug(true))
	}

	if c.config.UserAgent != "" {
		opts = append(opts, internalhttp.WithUserAgent(c.config.UserAgent))
	}

	if c.config.HTTPTimeout > 0 {
		opts = append(opts, internalhttp.WithTimeout(c.config.HTTPTimeout))
	}

	if c.config.RetryMax > 0 {
		waitMin := constants.DefaultRetryWaitMin
		waitMax := constants.DefaultRetryWaitMax

		if c.config.RetryWaitMin > 0 {
			waitMin = c.config.RetryWaitMin
		}

		if c.config.RetryWaitMax > 0 {
			waitMax = c.config.RetryWaitMax
		}

		opts = append(opts, internalhttp.WithRetryConfig(c.config.RetryMax, waitMin, waitMax))
	}

	return opts
}

// path prefixes a resource path with the API version segment.
func (c *Client) path(p string) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return "/" + c.version + "/" + p
}

// session returns the live transport, failing when logged out.
func (c *Client) session() (*internalhttp.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.transport == nil {
		return nil, hbapi.NewError(hbapi.ErrorKindNotAuthenticated, "not logged in")
	}

	return c.transport, nil
}

// Login validates the API key by probing the providers endpoint and opens
// the session. Calling it while already authenticated is a no-op with no
// network call. A 401 from the probe surfaces as a distinct "login failed"
// error and leaves the client logged out; any other failure is passed
// through unchanged.
func (c *Client) Login(ctx context.Context, apiKey string) error {
	c.mu.Lock()

	if c.transport != nil {
		c.mu.Unlock()

		return nil
	}

	keySource := auth.NewStaticKeySource(apiKey)
	transport := internalhttp.NewClient(c.endpoint, keySource, c.transportOptions()...)
	probePath := "/" + c.version + "/" + constants.PathProviders
	c.mu.Unlock()

	resp, err := transport.Get(ctx, probePath, nil)
	if err != nil {
		return err
	}

	_, err = unwrap(resp, "login")
	if err != nil {
		if hbapi.IsUnauthorized(err) {
			return hbapi.NewHTTPError(hbapi.ErrorKindUnauthorized, resp.StatusCode,
				"login failed: API key rejected")
		}

		return err
	}

	c.mu.Lock()
	c.keySource = keySource
	c.transport = transport
	c.mu.Unlock()

	return nil
}

// Logout clears the key, the transport handle, and all caches.
func (c *Client) Logout() {
	c.mu.Lock()

	if c.keySource != nil {
		c.keySource.Clear()
	}

	c.keySource = nil
	c.transport = nil
	cache := c.cache
	c.mu.Unlock()

	_ = cache.Clear(context.Background())
}

// Authenticated reports whether a session is open.
func (c *Client) Authenticated() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.transport != nil
}

// SetEndpoint changes the API base URL. The session is bound to the
// endpoint, so an open session is closed.
func (c *Client) SetEndpoint(endpoint string) {
	c.mu.Lock()
	wasAuthenticated := c.transport != nil
	c.endpoint = endpoint
	c.mu.Unlock()

	if wasAuthenticated {
		c.Logout()
	}
}

// SetVersion changes the API version path segment, closing an open session.
func (c *Client) SetVersion(version string) {
	c.mu.Lock()
	wasAuthenticated := c.transport != nil
	c.version = version
	c.mu.Unlock()

	if wasAuthenticated {
		c.Logout()
	}
}

// Providers implements hbapi.Client.
func (c *Client) Providers() hbapi.ProvidersClient {
	return c.providers
}

// Stacks implements hbapi.Client.
func (c *Client) Stacks() hbapi.StacksClient {
	return c.stacks
}

// Sites implements hbapi.Client.
func (c *Client) Sites() hbapi.SitesClient {
	return c.sites
}

// Tags implements hbapi.Client.
func (c *Client) Tags() hbapi.TagsClient {
	return c.tags
}

// Domains implements hbapi.Client.
func (c *Client) Domains() hbapi.DomainsClient {
	return c.domains
}
