package transport

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// UserAgent is sent on every request.
const UserAgent = "Mozilla/5.0 (Windows NT 6.1; WOW64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/39.0.2171.71 Safari/537.36"

// DefaultTimeout bounds each request when no timeout is configured.
const DefaultTimeout = 15 * time.Second

// headerTransport sets fixed headers on every outgoing request.
type headerTransport struct {
	base    http.RoundTripper
	headers http.Header
}

// RoundTrip clones the request before mutating headers, as RoundTripper requires.
func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	for k, vs := range t.headers {
		r.Header.Del(k)
		for _, v := range vs {
			r.Header.Add(k, v)
		}
	}
	return t.base.RoundTrip(r)
}

// NewAccountClient creates an http.Client that carries the user agent and the
// BDUSS cookie for one account.
func NewAccountClient(bduss string, timeout time.Duration) (*http.Client, error) {
	if bduss == "" {
		return nil, errors.New("empty BDUSS")
	}
	if strings.ContainsAny(bduss, "\r\n;") {
		return nil, fmt.Errorf("BDUSS contains characters not allowed in a cookie value")
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	headers := http.Header{}
	headers.Set("User-Agent", UserAgent)
	headers.Set("Cookie", "BDUSS="+bduss)

	return &http.Client{
		Timeout: timeout,
		Transport: &headerTransport{
			base:    http.DefaultTransport,
			headers: headers,
		},
	}, nil
}
