package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"strconv"
	"strings"
	"time"

	"github.com/artpar/apitester/internal/core"
	"github.com/artpar/apitester/internal/logging"
	"golang.org/x/net/publicsuffix"
)

// Client sends core requests over HTTP.
type Client struct {
	httpClient *http.Client
	config     Config
	logger     *slog.Logger
}

// Config holds HTTP client configuration.
type Config struct {
	Timeout time.Duration
	Cookies bool
}

// Option is a function that configures the Client.
type Option func(*Client)

// NewClient creates a new HTTP client with the given options. Cookies set by
// the backend are kept in memory for the lifetime of the client, the way a
// browser keeps them for a page.
func NewClient(opts ...Option) *Client {
	client := &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		config: Config{
			Timeout: 30 * time.Second,
			Cookies: true,
		},
		logger: logging.Nop(),
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.config.Cookies && client.httpClient.Jar == nil {
		jar, err := cookiejar.New(&cookiejar.Options{
			PublicSuffixList: publicsuffix.List,
		})
		if err == nil {
			client.httpClient.Jar = jar
		}
	}

	return client
}

// WithTimeout sets the request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.config.Timeout = timeout
		c.httpClient.Timeout = timeout
	}
}

// WithTransport sets a custom round tripper.
func WithTransport(transport http.RoundTripper) Option {
	return func(c *Client) {
		c.httpClient.Transport = transport
	}
}

// WithoutCookies disables the in-memory cookie jar.
func WithoutCookies() Option {
	return func(c *Client) {
		c.config.Cookies = false
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Config returns the effective configuration.
func (c *Client) Config() Config {
	return c.config
}

// Send executes an HTTP request and returns the response. Any status code is
// a response; only transport failures are errors.
func (c *Client) Send(ctx context.Context, req *core.Request) (*core.Response, error) {
	startTime := time.Now()

	httpReq, err := c.toHTTPRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Debug("request failed", "id", req.ID(), "method", req.Method(), "url", req.URL(), "error", err)
		return nil, err
	}
	defer httpResp.Body.Close()

	bodyBytes, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, err
	}
	endTime := time.Now()

	c.logger.Debug("response received",
		"id", req.ID(),
		"method", req.Method(),
		"url", req.URL(),
		"status", httpResp.StatusCode,
		"duration", endTime.Sub(startTime),
	)

	return c.fromHTTPResponse(req, httpResp, bodyBytes, startTime, endTime), nil
}

func (c *Client) toHTTPRequest(ctx context.Context, req *core.Request) (*http.Request, error) {
	var bodyReader io.Reader
	if !req.Body().IsEmpty() {
		bodyReader = req.Body().Reader()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method().String(), req.URL(), bodyReader)
	if err != nil {
		return nil, err
	}

	for _, key := range req.Headers().Keys() {
		for _, value := range req.Headers().GetAll(key) {
			httpReq.Header.Add(key, value)
		}
	}

	return httpReq, nil
}

func (c *Client) fromHTTPResponse(req *core.Request, httpResp *http.Response, bodyBytes []byte, startTime, endTime time.Time) *core.Response {
	status := core.NewStatus(httpResp.StatusCode, statusText(httpResp))

	headers := core.NewHeaders()
	for key, values := range httpResp.Header {
		for _, value := range values {
			headers.Add(key, value)
		}
	}

	var body core.Body
	if len(bodyBytes) > 0 {
		body = core.NewRawBody(bodyBytes, httpResp.Header.Get("Content-Type"))
	} else {
		body = core.NewEmptyBody()
	}

	timing := core.Timing{
		StartTime: startTime,
		EndTime:   endTime,
		Total:     endTime.Sub(startTime),
	}

	return core.NewResponse(req.ID(), status).
		WithHeaders(headers).
		WithBody(body).
		WithTiming(timing)
}

// statusText returns the reason phrase the server sent, without the code.
func statusText(resp *http.Response) string {
	text := strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode))
	text = strings.TrimSpace(text)
	if text == "" {
		return http.StatusText(resp.StatusCode)
	}
	return text
}
