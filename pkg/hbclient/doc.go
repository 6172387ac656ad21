// Package hbclient is the entry point for the Hostbridge API client library.
//
// It wires the transport, the credential source, and the listing cache, and
// performs the login probe when an API key is supplied:
//
//	client, err := hbclient.NewWithKey(ctx, "api.hostbridge.example", apiKey)
//	if err != nil {
//		// hbapi.IsUnauthorized(err) reports a rejected key
//		return err
//	}
//
//	providers, err := client.Providers().List(ctx)
//
// For non-default configuration (logger, retries, cache backend) build an
// hbapi.Config and pass it to New:
//
//	client, err := hbclient.New(ctx, &hbapi.Config{
//		Endpoint: "api.hostbridge.example",
//		APIKey:   apiKey,
//		Logger:   hbapi.NewHCLogAdapter(logger),
//		Debug:    true,
//	})
//
// See package hbapi for the client interfaces and error kinds.
package hbclient
