package client_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostbridge-io/hbapi/pkg/hbapi"
)

func TestDomains_List(t *testing.T) {
	t.Parallel()

	server := newEnvelopeServer(t)
	server.handle("GET /v1/domains/1", func(writer http.ResponseWriter, request *http.Request) {
		writeOK(writer, []hbapi.DomainRecord{
			{ID: 5, Name: "blog.example.org", Primary: true, SiteID: 1},
			{ID: 6, Name: "www.example.org", Primary: false, SiteID: 1},
		})
	})

	apiClient := newLoggedInClient(t, server)

	domains, err := apiClient.Domains().List(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, domains, 2)
	assert.Equal(t, "blog.example.org", domains[0].Name)
	assert.True(t, domains[0].Primary)
}

func TestDomains_Add(t *testing.T) {
	t.Parallel()

	t.Run("posts the hostname and returns the new id", func(t *testing.T) {
		t.Parallel()

		server := newEnvelopeServer(t)
		server.handle("POST /v1/domains/1", func(writer http.ResponseWriter, request *http.Request) {
			require.NoError(t, request.ParseForm())
			assert.Equal(t, "shop.example.org", request.PostForm.Get("domain"))

			writeOK(writer, 42)
		})

		apiClient := newLoggedInClient(t, server)

		id, err := apiClient.Domains().Add(context.Background(), 1, "shop.example.org")
		require.NoError(t, err)
		assert.Equal(t, hbapi.ID(42), id)
	})

	t.Run("rejects bad hostnames before the network", func(t *testing.T) {
		t.Parallel()

		server := newEnvelopeServer(t)
		apiClient := newLoggedInClient(t, server)

		_, err := apiClient.Domains().Add(context.Background(), 1, "bad host!")
		assert.True(t, hbapi.IsInvalidArgument(err))
		assert.Equal(t, 0, server.count("POST /v1/domains/1"))
	})
}

func TestDomains_SetPrimary(t *testing.T) {
	t.Parallel()

	server := newEnvelopeServer(t)
	server.handle("PUT /v1/domains/1", func(writer http.ResponseWriter, request *http.Request) {
		require.NoError(t, request.ParseForm())
		assert.Equal(t, "6", request.PostForm.Get("domain_id"))

		writeOK(writer, true)
	})

	apiClient := newLoggedInClient(t, server)

	promoted, err := apiClient.Domains().SetPrimary(context.Background(), 1, 6)
	require.NoError(t, err)
	assert.True(t, promoted)
}

func TestDomains_Delete(t *testing.T) {
	t.Parallel()

	t.Run("sends the domain id and returns the confirmation", func(t *testing.T) {
		t.Parallel()

		server := newEnvelopeServer(t)
		server.handle("DELETE /v1/domains/1", func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "6", formBody(t, request).Get("domain_id"))

			writeOK(writer, true)
		})

		apiClient := newLoggedInClient(t, server)

		deleted, err := apiClient.Domains().Delete(context.Background(), 1, 6)
		require.NoError(t, err)
		assert.True(t, deleted)
	})

	t.Run("surfaces a declined delete", func(t *testing.T) {
		t.Parallel()

		server := newEnvelopeServer(t)
		server.handle("DELETE /v1/domains/1", func(writer http.ResponseWriter, request *http.Request) {
			writeOK(writer, false)
		})

		apiClient := newLoggedInClient(t, server)

		deleted, err := apiClient.Domains().Delete(context.Background(), 1, 5)
		require.NoError(t, err)
		assert.False(t, deleted)
	})
}
