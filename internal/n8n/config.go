package n8n

import (
	"fmt"
	"net/url"
	"strings"

	kerrors "github.com/PolarWolf314/flowsync/internal/errors"
)

// Config holds the connection details for one n8n instance.
type Config struct {
	// Host is the instance base URL, always ending in "/" and never
	// including the /api/v1 prefix.
	Host *url.URL

	// APIKey is sent as X-N8N-API-KEY.
	APIKey string
}

// NewConfig builds a Config from a raw host string and API key.
func NewConfig(host, apiKey string) (Config, error) {
	u, err := NormalizeHost(host)
	if err != nil {
		return Config{}, err
	}
	return Config{Host: u, APIKey: apiKey}, nil
}

// NormalizeHost accepts the host the way users tend to paste it
// (with or without a trailing slash, /api/v1 or /v1 suffix) and returns
// the bare instance URL with a trailing slash.
func NormalizeHost(raw string) (*url.URL, error) {
	host := strings.TrimRight(strings.TrimSpace(raw), "/")
	switch {
	case strings.HasSuffix(host, "/api/v1"):
		host = strings.TrimSuffix(host, "/api/v1")
	case strings.HasSuffix(host, "/v1"):
		host = strings.TrimSuffix(host, "/v1")
	}
	host += "/"

	u, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid n8n host %q: %w", kerrors.ErrConfig, raw, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: invalid n8n host %q: expected http(s)://host", kerrors.ErrConfig, raw)
	}
	return u, nil
}

// Endpoint returns the absolute API URL for path, e.g. "workflows/42".
// path is already escaped (see url.PathEscape) and a query string in it is
// preserved.
func (c Config) Endpoint(path string) string {
	p, query, _ := strings.Cut(strings.TrimLeft(path, "/"), "?")
	ref := &url.URL{Path: "api/v1/" + p, RawPath: "api/v1/" + p, RawQuery: query}
	if unescaped, err := url.PathUnescape(p); err == nil {
		ref.Path = "api/v1/" + unescaped
	}
	return c.Host.ResolveReference(ref).String()
}
