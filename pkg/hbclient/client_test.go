package hbclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostbridge-io/hbapi/pkg/hbapi"
	"github.com/hostbridge-io/hbapi/pkg/hbclient"
)

func newProbeServer(t *testing.T) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/v1/providers", request.URL.Path)

		writer.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(writer).Encode(map[string]interface{}{
			"success": true,
			"result":  []string{"aws"},
		})
	}))
	t.Cleanup(server.Close)

	return server
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("requires config", func(t *testing.T) {
		t.Parallel()

		_, err := hbclient.New(context.Background(), nil)
		require.ErrorIs(t, err, hbapi.ErrConfigRequired)
	})

	t.Run("requires endpoint", func(t *testing.T) {
		t.Parallel()

		_, err := hbclient.New(context.Background(), &hbapi.Config{})
		require.ErrorIs(t, err, hbapi.ErrEndpointRequired)
	})

	t.Run("without a key the client stays logged out", func(t *testing.T) {
		t.Parallel()

		server := newProbeServer(t)

		apiClient, err := hbclient.New(context.Background(), &hbapi.Config{Endpoint: server.URL})
		require.NoError(t, err)
		assert.False(t, apiClient.Authenticated())
	})

	t.Run("with a key the login probe runs up front", func(t *testing.T) {
		t.Parallel()

		server := newProbeServer(t)

		apiClient, err := hbclient.New(context.Background(), &hbapi.Config{
			Endpoint: server.URL,
			APIKey:   "test-key",
		})
		require.NoError(t, err)
		assert.True(t, apiClient.Authenticated())
	})

	t.Run("a rejected key fails construction", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusUnauthorized)
		}))
		t.Cleanup(server.Close)

		_, err := hbclient.New(context.Background(), &hbapi.Config{
			Endpoint: server.URL,
			APIKey:   "bad-key",
		})
		require.Error(t, err)
		assert.True(t, hbapi.IsUnauthorized(err))
	})
}

func TestNew_EndpointNormalization(t *testing.T) {
	t.Parallel()

	t.Run("trims the trailing slash", func(t *testing.T) {
		t.Parallel()

		server := newProbeServer(t)

		apiClient, err := hbclient.NewWithKey(context.Background(), server.URL+"/", "test-key")
		require.NoError(t, err)
		assert.True(t, apiClient.Authenticated())
	})

	t.Run("adds https when no scheme is given", func(t *testing.T) {
		t.Parallel()

		server := newProbeServer(t)
		bare := strings.TrimPrefix(server.URL, "http://")

		// The probe fails because the test server does not speak TLS, which
		// proves the https scheme was applied.
		_, err := hbclient.NewWithKey(context.Background(), bare, "test-key")
		require.Error(t, err)
	})
}

func TestNewWithEndpoint(t *testing.T) {
	t.Parallel()

	apiClient, err := hbclient.NewWithEndpoint(context.Background(), "https://api.example.org")
	require.NoError(t, err)
	assert.False(t, apiClient.Authenticated())
}
