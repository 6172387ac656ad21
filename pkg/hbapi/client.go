package hbapi

import (
	"context"
	"time"
)

// ProvidersClient lists the cloud providers available to the account.
type ProvidersClient interface {
	List(ctx context.Context) ([]string, error)
}

// StacksClient exposes stack operations. Stack materialization is not
// supported yet: List always fails with ErrorKindUnimplemented. The interface
// exists so the gap is explicit rather than silently absent.
type StacksClient interface {
	List(ctx context.Context) ([]StackRecord, error)
}

// StackRecord is a placeholder for the unmaterialized stack resource.
// Stacks are currently referenced by id only.
type StackRecord struct {
	ID ID `json:"id" yaml:"id"`
}

// SitesClient exposes the site lifecycle operations.
//
// List fills a client-side cache on first call and serves from it until a
// successful Create, Clone, or Delete invalidates it. Staleness after
// out-of-band remote changes is expected, not a bug.
type SitesClient interface {
	List(ctx context.Context) ([]*Site, error)
	Get(ctx context.Context, id ID) (*Site, error)
	Metadata(ctx context.Context, id ID) ([]MetadataRecord, error)
	Create(ctx context.Context, name string, stackID ID, siteType SiteType) (*Site, error)
	Clone(ctx context.Context, name string, stackID ID, sourceID ID) (*Site, error)
	Delete(ctx context.Context, id ID) (bool, error)
}

// TagsClient manages the labels attached to a site.
type TagsClient interface {
	List(ctx context.Context, siteID ID) (TagMap, error)
	Add(ctx context.Context, siteID ID, tag string) (TagMap, error)
	Delete(ctx context.Context, siteID ID, tagID ID) (bool, error)
}

// DomainsClient manages the hostnames bound to a site.
type DomainsClient interface {
	List(ctx context.Context, siteID ID) ([]DomainRecord, error)
	Add(ctx context.Context, siteID ID, hostname string) (ID, error)
	SetPrimary(ctx context.Context, siteID ID, domainID ID) (bool, error)
	Delete(ctx context.Context, siteID ID, domainID ID) (bool, error)
}

// SessionClient controls the lifetime of the authenticated session.
type SessionClient interface {
	// Login validates the key against the providers endpoint and opens the
	// session. Calling it while already authenticated is a no-op.
	Login(ctx context.Context, apiKey string) error

	// Logout clears the key, the transport handle, and all caches.
	Logout()

	// Authenticated reports whether a session is currently open.
	Authenticated() bool

	// SetEndpoint changes the API base URL. Forces a logout when
	// authenticated, since the session is bound to the endpoint.
	SetEndpoint(endpoint string)

	// SetVersion changes the API version path segment. Forces a logout when
	// authenticated.
	SetVersion(version string)
}

// Client is the full Hostbridge API surface.
type Client interface {
	SessionClient

	Providers() ProvidersClient
	Stacks() StacksClient
	Sites() SitesClient
	Tags() TagsClient
	Domains() DomainsClient
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a Client.
//
// Per-request timeouts should generally be controlled via the context passed
// to client methods. Failures are never retried unless RetryMax is set; when
// it is, only transient failures (>=500, 429, connection errors) are retried.
type Config struct {
	// Endpoint: base URL for the Hostbridge API. hbclient.New normalizes
	// this value by trimming a trailing slash and adding "https://" if no
	// scheme is present.
	Endpoint string

	// Version: API version path segment. Defaults to "v1".
	Version string

	// APIKey: account API key, sent as the "Key" header on every request.
	// When set, hbclient.New performs the login probe before returning.
	APIKey string

	// HTTPTimeout: optional default HTTP timeout where supported.
	HTTPTimeout time.Duration

	// RetryMax: maximum number of retries for transient failures. 0 (the
	// default) propagates every failure immediately.
	RetryMax int
	// RetryWaitMin: minimum backoff between retries. Applied when RetryMax > 0.
	RetryWaitMin time.Duration
	// RetryWaitMax: maximum backoff between retries. Applied when RetryMax > 0.
	RetryWaitMax time.Duration

	// Debug enables verbose HTTP request/response logging when a Logger is set.
	Debug bool
	// Logger: optional structured logger used by the HTTP layer.
	Logger Logger
	// UserAgent overrides the default User-Agent header sent by the client.
	UserAgent string

	// Cache: optional backend for the sites/stacks listing caches. Defaults
	// to an in-memory cache.
	Cache Cache
}
