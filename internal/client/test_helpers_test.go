package client_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hostbridge-io/hbapi/internal/client"
	"github.com/hostbridge-io/hbapi/pkg/hbapi"
)

const testAPIKey = "test-key"

// testServer is an httptest server speaking the success/result envelope,
// with per-route handlers and call counting.
type testServer struct {
	*httptest.Server

	mu       sync.Mutex
	handlers map[string]http.HandlerFunc
	calls    map[string]int
}

func newEnvelopeServer(t *testing.T) *testServer {
	t.Helper()

	server := &testServer{
		handlers: make(map[string]http.HandlerFunc),
		calls:    make(map[string]int),
	}

	server.Server = httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		key := request.Method + " " + request.URL.Path

		server.mu.Lock()
		server.calls[key]++
		handler, ok := server.handlers[key]
		server.mu.Unlock()

		if !ok {
			t.Errorf("unexpected request: %s", key)
			writer.WriteHeader(http.StatusNotFound)

			return
		}

		handler(writer, request)
	}))

	t.Cleanup(server.Close)

	// Every session starts with the login probe.
	server.handle("GET /v1/providers", func(writer http.ResponseWriter, request *http.Request) {
		writeOK(writer, []string{"aws", "gcp"})
	})

	return server
}

func (s *testServer) handle(route string, handler http.HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.handlers[route] = handler
}

func (s *testServer) count(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.calls[route]
}

func writeOK(writer http.ResponseWriter, result interface{}) {
	writer.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(writer).Encode(map[string]interface{}{
		"success": true,
		"result":  result,
	})
}

func writeFailure(writer http.ResponseWriter, result interface{}) {
	writer.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(writer).Encode(map[string]interface{}{
		"success": false,
		"result":  result,
	})
}

// formBody decodes a form-encoded request body. ParseForm ignores the body
// on DELETE, so handlers asserting DELETE params use this instead.
func formBody(t *testing.T, request *http.Request) url.Values {
	t.Helper()

	body, err := io.ReadAll(request.Body)
	require.NoError(t, err)

	values, err := url.ParseQuery(string(body))
	require.NoError(t, err)

	return values
}

func newLoggedOutClient(t *testing.T, server *testServer) *client.Client {
	t.Helper()

	apiClient, err := client.New(&hbapi.Config{Endpoint: server.URL})
	require.NoError(t, err)

	return apiClient
}

func newLoggedInClient(t *testing.T, server *testServer) *client.Client {
	t.Helper()

	apiClient, err := client.New(&hbapi.Config{Endpoint: server.URL})
	require.NoError(t, err)

	err = apiClient.Login(context.Background(), testAPIKey)
	require.NoError(t, err)

	return apiClient
}
