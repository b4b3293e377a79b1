// Package httpclient builds the shared HTTP client every per-URL scrape
// loop reuses, delegating transport/TLS/proxy concerns to
// github.com/prometheus/common/config (spec.md §1's "HTTP client and TLS"
// external collaborator, §5's recommendation to reuse one client across
// scrapes).
package httpclient

import (
	"context"
	"net/http"
	"reflect"

	"github.com/prometheus/common/config"

	"github.com/prometheus-community/scrapeinput/internal/exposition"
)

// clientName tags the connection-tracking metrics config.NewClientFromConfig
// registers for this client.
const clientName = "scrapeinput"

// New builds the *http.Client every scrape request is issued through. cfg
// is zero-value-safe; a zero config.HTTPClientConfig yields a plain client
// with redirects followed.
func New(cfg config.HTTPClientConfig) (*http.Client, error) {
	if reflect.DeepEqual(cfg, config.HTTPClientConfig{}) {
		cfg = config.DefaultHTTPClientConfig
	}
	return config.NewClientFromConfig(cfg, clientName)
}

// Get issues the scrape GET request with the fixed Accept header spec.md
// §4.6/§6 specifies, negotiating delimited protobuf over text format. ctx
// cancellation aborts an in-flight request (spec.md §4.6 "Cancellation").
func Get(ctx context.Context, client *http.Client, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", exposition.AcceptHeader)
	return client.Do(req)
}
