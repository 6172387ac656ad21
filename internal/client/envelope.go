package client

import (
	"encoding/json"
	"net/http"

	internalhttp "github.com/hostbridge-io/hbapi/internal/http"
	"github.com/hostbridge-io/hbapi/pkg/hbapi"
)

// unwrap validates the uniform response envelope and returns the raw result
// payload. The checks run in a fixed order:
//
//  1. HTTP 401 is an authorization failure.
//  2. A body without a boolean "success" field is malformed.
//  3. success != true is a server-reported failure; the raw payload is kept
//     in the message for diagnostics.
func unwrap(resp *internalhttp.Response, op string) (json.RawMessage, error) {
	if resp.StatusCode == http.StatusUnauthorized {
		return nil, hbapi.NewHTTPError(hbapi.ErrorKindUnauthorized, resp.StatusCode,
			"%s: API key rejected", op)
	}

	var envelope hbapi.Envelope

	err := json.Unmarshal(resp.Body, &envelope)
	if err != nil || envelope.Success == nil {
		return nil, hbapi.NewHTTPError(hbapi.ErrorKindMalformedResponse, resp.StatusCode,
			"%s: response has no success field: %s", op, string(resp.Body))
	}

	if !*envelope.Success {
		return nil, hbapi.NewHTTPError(hbapi.ErrorKindRequestFailed, resp.StatusCode,
			"%s: server reported failure: %s", op, string(resp.Body))
	}

	return envelope.Result, nil
}

// decodeResult unwraps the envelope and decodes the result payload into T.
func decodeResult[T any](resp *internalhttp.Response, op string) (T, error) {
	var zero T

	raw, err := unwrap(resp, op)
	if err != nil {
		return zero, err
	}

	var result T

	err = json.Unmarshal(raw, &result)
	if err != nil {
		return zero, hbapi.NewHTTPError(hbapi.ErrorKindMalformedResponse, resp.StatusCode,
			"%s: unexpected result shape: %v", op, err)
	}

	return result, nil
}
