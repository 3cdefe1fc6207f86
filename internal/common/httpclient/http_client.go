package httpclient

import (
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/aleister1102/jsonmonitor/internal/common/errorwrapper"
	"github.com/rs/zerolog"
)

// NewHTTPClient creates a new HTTP client with the given configuration.
// Redirects are never followed; API endpoints answer directly.
func NewHTTPClient(config HTTPClientConfig, logger zerolog.Logger) (*http.Client, error) {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   config.DialTimeout,
			KeepAlive: config.KeepAlive,
		}).DialContext,
		MaxIdleConns:          config.MaxIdleConns,
		MaxIdleConnsPerHost:   config.MaxIdleConnsPerHost,
		IdleConnTimeout:       config.IdleConnTimeout,
		TLSHandshakeTimeout:   config.TLSHandshakeTimeout,
		ExpectContinueTimeout: config.ExpectContinueTimeout,
		ForceAttemptHTTP2:     true,
	}

	if config.Proxy != "" {
		proxyURL, err := url.Parse(config.Proxy)
		if err != nil || proxyURL.Scheme == "" {
			if err == nil {
				err = errorwrapper.NewError("missing scheme in %q", config.Proxy)
			}
			return nil, errorwrapper.WrapError(err, "failed to parse proxy URL")
		}
		transport.Proxy = http.ProxyURL(proxyURL)
		logger.Info().Str("proxy", proxyURL.Redacted()).Msg("HTTP client configured with proxy")
	}

	client := &http.Client{
		Transport: &headerTransport{
			base:      transport,
			userAgent: config.UserAgent,
			headers:   config.CustomHeaders,
		},
		Timeout: config.Timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	logger.Debug().
		Dur("timeout", config.Timeout).
		Msg("HTTP client created")

	return client, nil
}

// headerTransport stamps the configured headers on every outgoing request
type headerTransport struct {
	base      http.RoundTripper
	userAgent string
	headers   map[string]string
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.userAgent == "" && len(t.headers) == 0 {
		return t.base.RoundTrip(req)
	}
	req = req.Clone(req.Context())
	if t.userAgent != "" && req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", t.userAgent)
	}
	for k, v := range t.headers {
		if req.Header.Get(k) == "" {
			req.Header.Set(k, v)
		}
	}
	return t.base.RoundTrip(req)
}

// HTTPClientBuilder provides a fluent interface for building HTTP clients
type HTTPClientBuilder struct {
	config HTTPClientConfig
	logger zerolog.Logger
}

// NewHTTPClientBuilder creates a new HTTP client builder
func NewHTTPClientBuilder(logger zerolog.Logger) *HTTPClientBuilder {
	return &HTTPClientBuilder{
		config: DefaultHTTPClientConfig(),
		logger: logger,
	}
}

// WithTimeout sets the request timeout
func (b *HTTPClientBuilder) WithTimeout(timeout time.Duration) *HTTPClientBuilder {
	if timeout > 0 {
		b.config.Timeout = timeout
	}
	return b
}

// WithProxy sets the proxy URL
func (b *HTTPClientBuilder) WithProxy(proxy string) *HTTPClientBuilder {
	b.config.Proxy = proxy
	return b
}

// WithUserAgent sets the User-Agent header
func (b *HTTPClientBuilder) WithUserAgent(userAgent string) *HTTPClientBuilder {
	b.config.UserAgent = userAgent
	return b
}

// WithCustomHeader adds a custom header
func (b *HTTPClientBuilder) WithCustomHeader(key, value string) *HTTPClientBuilder {
	if b.config.CustomHeaders == nil {
		b.config.CustomHeaders = make(map[string]string)
	}
	b.config.CustomHeaders[key] = value
	return b
}

// Build creates the HTTP client
func (b *HTTPClientBuilder) Build() (*http.Client, error) {
	return NewHTTPClient(b.config, b.logger)
}
