package httpclient

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_AppliesTimeoutAndHeaders(t *testing.T) {
	var gotUA, gotHeader string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotHeader = r.Header.Get("X-Test")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client, err := NewHTTPClientBuilder(zerolog.Nop()).
		WithTimeout(3 * time.Second).
		WithUserAgent("agent/2").
		WithCustomHeader("X-Test", "yes").
		Build()
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, client.Timeout)

	resp, err := client.Get(server.URL)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "agent/2", gotUA)
	assert.Equal(t, "yes", gotHeader)
}

func TestBuilder_DoesNotFollowRedirects(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/elsewhere", http.StatusFound)
	}))
	defer server.Close()

	client, err := NewHTTPClientBuilder(zerolog.Nop()).Build()
	require.NoError(t, err)

	resp, err := client.Get(server.URL)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusFound, resp.StatusCode)
}

func TestNewHTTPClient_InvalidProxy(t *testing.T) {
	cfg := DefaultHTTPClientConfig()
	cfg.Proxy = "://bad"

	_, err := NewHTTPClient(cfg, zerolog.Nop())
	assert.Error(t, err)

	cfg.Proxy = "http://127.0.0.1:8080"
	_, err = NewHTTPClient(cfg, zerolog.Nop())
	assert.NoError(t, err)
}
