package constants

import "errors"

// Configuration errors.
var (
	ErrNoEndpointConfigured = errors.New("no API endpoint configured, use 'hbctl config set endpoint <url>' or --endpoint")
	ErrNoAPIKeyConfigured   = errors.New("no API key configured, run 'hbctl login' first")
	ErrUnknownConfigKey     = errors.New("unknown configuration key")
	ErrUnknownOutputFormat  = errors.New("unknown output format")
)

// Flag validation errors.
var (
	ErrStackIDRequired = errors.New("--stack flag is required")
	ErrTagNameRequired = errors.New("tag name is required")
)
