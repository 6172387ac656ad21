package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second
)

// Retry limits. The library performs no retries unless configured; these are
// the bounds applied when a caller opts in.
const (
	// DefaultRetryMax is the retry budget the CLI opts into.
	DefaultRetryMax = 3

	// DefaultRetryWaitMin is the minimum wait time between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 10 * time.Second
)

// API defaults.
const (
	// DefaultAPIVersion is the path segment inserted between the endpoint
	// and the resource path.
	DefaultAPIVersion = "v1"

	// APIKeyHeader is the header carrying the API key on every request.
	APIKeyHeader = "Key"
)

// Cache defaults.
const (
	// DefaultCacheSize is the maximum number of entries in the memory cache.
	DefaultCacheSize = 1000

	// DefaultCacheTTL is how long a cached listing stays valid. Listings are
	// also invalidated explicitly after any successful mutation.
	DefaultCacheTTL = 1 * time.Hour
)

// Known resource paths.
const (
	PathProviders = "providers"
	PathSites     = "sites"
	PathTags      = "tags"
	PathDomains   = "domains"
)
