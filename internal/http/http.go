package http

import (
	gohttp "net/http"
	"time"
)

// ClientOption configures the outbound client handed to provider SDKs.
type ClientOption func(*gohttp.Client)

// NewClient returns an HTTP client for provider requests.
// Unless WithTimeout is given the client has no timeout, requests
// then run until the provider answers or the transport fails.
func NewClient(opts ...ClientOption) *gohttp.Client {
	c := &gohttp.Client{
		Transport: gohttp.DefaultTransport,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithTimeout sets the total time limit of a single request.
// A zero or negative duration disables the limit.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *gohttp.Client) {
		if timeout < 0 {
			timeout = 0
		}
		c.Timeout = timeout
	}
}

func WithTransport(rt gohttp.RoundTripper) ClientOption {
	return func(c *gohttp.Client) {
		if rt != nil {
			c.Transport = rt
		}
	}
}

// WithHeader adds a static header to every outgoing request.
func WithHeader(key, value string) ClientOption {
	return func(c *gohttp.Client) {
		c.Transport = headerTransport{
			base:  c.Transport,
			key:   key,
			value: value,
		}
	}
}

type headerTransport struct {
	base  gohttp.RoundTripper
	key   string
	value string
}

func (t headerTransport) RoundTrip(req *gohttp.Request) (*gohttp.Response, error) {
	r := req.Clone(req.Context())
	r.Header.Set(t.key, t.value)

	base := t.base
	if base == nil {
		base = gohttp.DefaultTransport
	}
	return base.RoundTrip(r)
}
