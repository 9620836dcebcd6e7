package hostfuncs

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

// Method codes of the http namespace wire protocol.
const (
	MethodGet int32 = iota
	MethodPost
	MethodPut
	MethodDelete
	MethodPatch
	MethodHead
	MethodOptions
)

// MethodName translates a wire method code to the HTTP verb. Unknown codes
// map to "", which callers treat as an invalid request.
func MethodName(code int32) string {
	switch code {
	case MethodGet:
		return http.MethodGet
	case MethodPost:
		return http.MethodPost
	case MethodPut:
		return http.MethodPut
	case MethodDelete:
		return http.MethodDelete
	case MethodPatch:
		return http.MethodPatch
	case MethodHead:
		return http.MethodHead
	case MethodOptions:
		return http.MethodOptions
	}
	return ""
}

// HTTPRequest is one outbound request on behalf of a node.
type HTTPRequest struct {
	Method  string
	URL     string
	Headers map[string]string
	Body    []byte
}

// HTTPOption configures outbound HTTP behavior.
type HTTPOption func(*httpConfig)

type httpConfig struct {
	timeout         time.Duration
	maxRedirects    int
	maxBodySize     int64
	followRedirects bool
	blockPrivate    bool
}

func defaultHTTPConfig() httpConfig {
	return httpConfig{
		timeout:         30 * time.Second,
		maxRedirects:    10,
		followRedirects: true,
		maxBodySize:     10 * 1024 * 1024, // 10MB
	}
}

// WithHTTPRequestTimeout sets the request timeout.
func WithHTTPRequestTimeout(d time.Duration) HTTPOption {
	return func(c *httpConfig) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithHTTPMaxRedirects sets the redirect limit.
func WithHTTPMaxRedirects(n int) HTTPOption {
	return func(c *httpConfig) {
		if n >= 0 {
			c.maxRedirects = n
		}
	}
}

// WithHTTPFollowRedirects controls whether redirects are followed.
func WithHTTPFollowRedirects(follow bool) HTTPOption {
	return func(c *httpConfig) {
		c.followRedirects = follow
	}
}

// WithHTTPMaxBodySize sets the maximum response body size.
func WithHTTPMaxBodySize(size int64) HTTPOption {
	return func(c *httpConfig) {
		if size > 0 {
			c.maxBodySize = size
		}
	}
}

// WithHTTPBlockPrivate blocks requests that resolve to loopback, private or
// link-local addresses. Enable when running untrusted nodes next to internal
// services.
func WithHTTPBlockPrivate() HTTPOption {
	return func(c *httpConfig) {
		c.blockPrivate = true
	}
}

// HTTPResult is the outcome of an outbound request. StatusCode 0 means the
// request never produced a response.
type HTTPResult struct {
	StatusCode    int
	Headers       http.Header
	Body          []byte
	BodyTruncated bool
	Err           error
}

// PerformHTTPRequest executes one request with the configured limits. Pure
// Go, no WASM runtime involved; the host glue reduces the result to the wire
// status code.
func PerformHTTPRequest(ctx context.Context, req HTTPRequest, opts ...HTTPOption) HTTPResult {
	cfg := defaultHTTPConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if req.URL == "" {
		return HTTPResult{Err: fmt.Errorf("url is required")}
	}
	if req.Method == "" {
		req.Method = http.MethodGet
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.timeout)
	defer cancel()

	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, strings.ToUpper(req.Method), req.URL, body)
	if err != nil {
		return HTTPResult{Err: fmt.Errorf("build request: %w", err)}
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	client := newHTTPClient(cfg)
	resp, err := client.Do(httpReq)
	if err != nil {
		return HTTPResult{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	return readHTTPResponse(resp, cfg.maxBodySize)
}

func newHTTPClient(cfg httpConfig) *http.Client {
	transport := &http.Transport{
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		TLSClientConfig:       &tls.Config{MinVersion: tls.VersionTLS12},
	}

	if cfg.blockPrivate {
		dialer := &net.Dialer{}
		transport.DialContext = func(ctx context.Context, network, addr string) (net.Conn, error) {
			host, _, err := net.SplitHostPort(addr)
			if err != nil {
				return nil, err
			}
			ips, err := net.DefaultResolver.LookupIPAddr(ctx, host)
			if err != nil {
				return nil, err
			}
			for _, ip := range ips {
				if isPrivateAddr(ip.IP) {
					return nil, fmt.Errorf("request to private address %s blocked", ip.IP)
				}
			}
			return dialer.DialContext(ctx, network, addr)
		}
	}

	client := &http.Client{
		Timeout:   cfg.timeout,
		Transport: transport,
	}

	if !cfg.followRedirects {
		client.CheckRedirect = func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
	} else if cfg.maxRedirects > 0 {
		client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			if len(via) >= cfg.maxRedirects {
				return fmt.Errorf("stopped after %d redirects", cfg.maxRedirects)
			}
			return nil
		}
	}

	return client
}

func isPrivateAddr(ip net.IP) bool {
	return ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast() ||
		ip.IsLinkLocalMulticast() || ip.IsUnspecified()
}

func readHTTPResponse(resp *http.Response, maxBodySize int64) HTTPResult {
	bodyReader := io.LimitReader(resp.Body, maxBodySize+1)
	respBody, err := io.ReadAll(bodyReader)
	if err != nil {
		return HTTPResult{
			StatusCode: resp.StatusCode,
			Headers:    resp.Header,
			Err:        fmt.Errorf("read body: %w", err),
		}
	}

	truncated := false
	if int64(len(respBody)) > maxBodySize {
		respBody = respBody[:maxBodySize]
		truncated = true
	}

	return HTTPResult{
		StatusCode:    resp.StatusCode,
		Headers:       resp.Header,
		Body:          respBody,
		BodyTruncated: truncated,
	}
}
