package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/common/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultsZeroConfig(t *testing.T) {
	client, err := New(config.HTTPClientConfig{})
	require.NoError(t, err)
	require.NotNil(t, client)
}

func TestGetSendsFixedAcceptHeader(t *testing.T) {
	var gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAccept = r.Header.Get("Accept")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client, err := New(config.DefaultHTTPClientConfig)
	require.NoError(t, err)

	resp, err := Get(context.Background(), client, srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Contains(t, gotAccept, "application/vnd.google.protobuf")
	assert.Contains(t, gotAccept, "text/plain")
}
