package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	pkgerrors "github.com/angelmondragon/stockdesk/pkg/errors"
	"github.com/angelmondragon/stockdesk/pkg/logger"
	"github.com/angelmondragon/stockdesk/pkg/metrics"
)

const (
	defaultRequestTimeout       = 30 * time.Second
	defaultProbeTimeout         = 5 * time.Second
	defaultErrorBodyLimit int64 = 64 << 10
	requestIDHeader             = "X-Request-Id"
	probeQuery                  = "{__typename}"
)

var errEndpointRequired = errors.New("remote endpoint is required")

// Request is one query document plus its variables.
// Operation names the request in logs and metrics and is not sent.
type Request struct {
	Operation string         `json:"-"`
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// Executor sends a Request and returns the raw "data" member of the reply.
type Executor interface {
	Execute(ctx context.Context, req Request, token string) (json.RawMessage, error)
}

// Client posts query documents to the single remote endpoint.
type Client struct {
	httpClient     *http.Client
	endpoint       string
	requestTimeout time.Duration
	probeTimeout   time.Duration
	errorBodyLimit int64
	defaultToken   string
	logg           *logger.Logger
	metrics        *metrics.RemoteMetrics
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithRequestTimeout bounds every request end to end, on top of the caller's context.
func WithRequestTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.requestTimeout = timeout
		}
	}
}

// WithProbeTimeout overrides the connectivity probe timeout.
func WithProbeTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.probeTimeout = timeout
		}
	}
}

// WithErrorBodyLimit caps how much of a failed response body is kept.
func WithErrorBodyLimit(limit int64) Option {
	return func(c *Client) {
		if limit > 0 {
			c.errorBodyLimit = limit
		}
	}
}

// WithDefaultToken is sent when a call supplies no token of its own.
func WithDefaultToken(token string) Option {
	return func(c *Client) {
		c.defaultToken = strings.TrimSpace(token)
	}
}

// WithLogger attaches a structured logger.
func WithLogger(logg *logger.Logger) Option {
	return func(c *Client) {
		c.logg = logg
	}
}

// WithMetrics attaches request metrics.
func WithMetrics(m *metrics.RemoteMetrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient builds a client for the given endpoint URL.
func NewClient(endpoint string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimSpace(endpoint)
	if trimmed == "" {
		return nil, errEndpointRequired
	}
	parsed, err := url.Parse(trimmed)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid remote endpoint %q", trimmed)
	}

	client := &Client{
		endpoint:       parsed.String(),
		httpClient:     &http.Client{},
		requestTimeout: defaultRequestTimeout,
		probeTimeout:   defaultProbeTimeout,
		errorBodyLimit: defaultErrorBodyLimit,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	if client.logg == nil {
		client.logg = logger.Nop()
	}
	return client, nil
}

// Execute sends req and returns the "data" member of the reply.
//
// A non-2xx status fails with CodeTransport, a non-empty "errors" array fails with CodeProtocol
// whatever the status, and a reply with neither "data" nor "errors" yields (nil, nil).
func (c *Client) Execute(ctx context.Context, req Request, token string) (json.RawMessage, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeTransport, "remote client not configured")
	}
	if strings.TrimSpace(req.Query) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "query document is required")
	}

	ctx = c.logg.WithOperation(ctx, req.Operation)
	start := time.Now()

	data, err := c.execute(ctx, req, token)

	outcome := metrics.OutcomeOK
	switch {
	case pkgerrors.IsCode(err, pkgerrors.CodeProtocol):
		outcome = metrics.OutcomeProtocol
		c.logg.Warn(c.logg.WithField(ctx, "remote_errors", pkgerrors.Dump(err).RemoteMessages), "remote.protocol_error")
	case pkgerrors.IsCode(err, pkgerrors.CodeDecode):
		outcome = metrics.OutcomeDecode
		c.logg.Error(ctx, "remote.decode_failed", err)
	case err != nil:
		outcome = metrics.OutcomeTransport
		c.logg.Error(ctx, "remote.request_failed", err)
	default:
		c.logg.Debug(c.logg.WithField(ctx, "duration_ms", time.Since(start).Milliseconds()), "remote.request_complete")
	}
	c.metrics.Observe(req.Operation, outcome, time.Since(start))

	return data, err
}

func (c *Client) execute(ctx context.Context, req Request, token string) (json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, c.requestTimeout)
	defer cancel()

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "marshal query document")
	}

	resp, err := c.post(ctx, payload, token)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.transportError(resp)
	}

	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Errors json.RawMessage `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDecode, err, "decode response envelope")
	}

	if hasEntries(envelope.Errors) {
		return nil, pkgerrors.New(pkgerrors.CodeProtocol, "remote returned errors").
			WithDetails(pkgerrors.ProtocolDetails{Errors: envelope.Errors})
	}
	if isAbsent(envelope.Data) {
		return nil, nil
	}
	return envelope.Data, nil
}

// Probe reports whether the endpoint answers a trivial query with a 2xx status.
// The body of the reply is not inspected.
func (c *Client) Probe(ctx context.Context) error {
	if c == nil {
		return pkgerrors.New(pkgerrors.CodeTransport, "remote client not configured")
	}
	ctx, cancel := context.WithTimeout(ctx, c.probeTimeout)
	defer cancel()

	payload, err := json.Marshal(Request{Query: probeQuery})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "marshal probe")
	}
	resp, err := c.post(ctx, payload, "")
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.transportError(resp)
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, c.errorBodyLimit))
	return nil
}

func (c *Client) post(ctx context.Context, payload []byte, token string) (*http.Response, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeTransport, err, "build remote request").
			WithDetails(pkgerrors.TransportDetails{})
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	t := strings.TrimSpace(token)
	if t == "" {
		t = c.defaultToken
	}
	if t != "" {
		httpReq.Header.Set("Authorization", "Bearer "+t)
	}
	if id := RequestIDFromContext(ctx); id != "" {
		httpReq.Header.Set(requestIDHeader, id)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeTransport, err, "execute remote request").
			WithDetails(pkgerrors.TransportDetails{})
	}
	return resp, nil
}

func (c *Client) transportError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, c.errorBodyLimit))
	return pkgerrors.New(pkgerrors.CodeTransport, fmt.Sprintf("remote responded with status %d", resp.StatusCode)).
		WithDetails(pkgerrors.TransportDetails{Status: resp.StatusCode, Body: string(body)})
}

func hasEntries(raw json.RawMessage) bool {
	if isAbsent(raw) {
		return false
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		// a non-array "errors" member is still an error report
		return true
	}
	return len(entries) > 0
}

func isAbsent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
