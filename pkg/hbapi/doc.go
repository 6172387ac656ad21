// Package hbapi defines the public types, interfaces, and errors of the
// Hostbridge API client library.
//
// The Hostbridge API manages hosted web properties: providers, stacks,
// sites, domains, and tags. Every endpoint responds with a uniform envelope
//
//	{ "success": bool, "result": <payload> }
//
// and authenticates with an account API key sent as the "Key" header.
//
// # Getting a client
//
// Use github.com/hostbridge-io/hbapi/pkg/hbclient to construct a client:
//
//	client, err := hbclient.NewWithKey(ctx, "https://api.hostbridge.example", apiKey)
//	if err != nil {
//		return err
//	}
//
//	sites, err := client.Sites().List(ctx)
//
// # Sites
//
// Site objects returned by the sites client lazily fetch their metadata:
// the first call to Metadata, Tags, or Domains performs one metadata request
// that populates all three. Mutations (AddTag, DeleteDomain, Delete, ...)
// call the API and update the local shadow only after the server confirms.
// Once Delete succeeds the object is terminally unusable and every method
// returns an error of kind ErrorKindSiteDeleted.
//
// # Caching
//
// Site listings are fetched once and cached until a create, clone, or
// delete invalidates them. The backend is pluggable (memory, NATS KV, or
// none); staleness after out-of-band remote changes is expected.
//
// # Errors
//
// All failures surface as *APIError with a closed Kind enumeration, plus
// predicates such as IsUnauthorized and IsRequestFailed. Nothing is retried
// unless Config.RetryMax opts in.
package hbapi
