package analytics

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"BrentDash/pkg/config"
	xhttp "BrentDash/pkg/http"
)

// HTTPServiceBase centralizes client construction and JSON GET handling
// for the analytics backend.
type HTTPServiceBase struct {
	client *xhttp.Client
}

// NewHTTPServiceBase builds an HTTP client with timeout and base URL from config.
func NewHTTPServiceBase(cfg *config.Config) *HTTPServiceBase {
	timeout := cfg.Analytics.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &HTTPServiceBase{
		client: xhttp.NewClient(cfg.Analytics.BaseURL,
			xhttp.WithTimeout(timeout),
			xhttp.WithUserAgent("brentdash/"+cfg.Environment),
		),
	}
}

// NewHTTPServiceBaseWithClient wraps an existing client.
func NewHTTPServiceBaseWithClient(client *xhttp.Client) *HTTPServiceBase {
	return &HTTPServiceBase{client: client}
}

// GetJSON issues GET path?query under the base URL and decodes the body
// into dest. Errors are returned as they come: no retry.
func (b *HTTPServiceBase) GetJSON(ctx context.Context, path string, query url.Values, dest interface{}) error {
	if b.client == nil || b.client.BaseURL() == "" {
		return fmt.Errorf("analytics http client not initialized")
	}
	err := b.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:      xhttp.MethodGet,
		Path:        path,
		QueryParams: query,
	}, dest)
	if err != nil {
		return fmt.Errorf("get %s: %w", path, err)
	}
	return nil
}
