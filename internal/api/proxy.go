package api

import (
	"fmt"
	"net/url"

	"golang.org/x/net/http/httpproxy"
)

// ProxyFor resolves the proxy to use for endpoint from the HTTP_PROXY,
// HTTPS_PROXY and NO_PROXY environment variables. Loopback endpoints are
// never proxied. It returns "" for a direct connection.
func ProxyFor(endpoint string) (string, error) {
	return proxyFor(httpproxy.FromEnvironment(), endpoint)
}

func proxyFor(cfg *httpproxy.Config, endpoint string) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint %q: %w", endpoint, err)
	}

	proxyURL, err := cfg.ProxyFunc()(u)
	if err != nil {
		return "", fmt.Errorf("invalid proxy configuration: %w", err)
	}
	if proxyURL == nil {
		return "", nil
	}
	return proxyURL.String(), nil
}
