package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jmehdipour/rc-admin/internal/config"
	"github.com/jmehdipour/rc-admin/internal/metrics"
	"go.uber.org/zap"
)

// Result is the upstream answer relayed to the caller. Body is nil when the upstream sent no body.
type Result struct {
	Status int
	Body   json.RawMessage
}

// Request addresses the project's customers collection; Segments are appended below it.
type Request struct {
	Method   string
	Segments []string
	RawQuery string
}

type Client struct {
	baseURL   string
	projectID string
	secretKey string
	client    *http.Client
	log       *zap.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l }
}

func New(cfg config.UpstreamConfig, opts ...Option) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		projectID: cfg.ProjectID,
		secretKey: cfg.SecretAPIKey,
		client:    &http.Client{Timeout: cfg.Timeout},
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) ListCustomers(ctx context.Context, rawQuery string) (Result, error) {
	return c.Forward(ctx, Request{Method: http.MethodGet, RawQuery: rawQuery})
}

func (c *Client) DeleteCustomer(ctx context.Context, id string) (Result, error) {
	return c.Forward(ctx, Request{Method: http.MethodDelete, Segments: []string{id}})
}

// URL builds <base>/projects/<project>/customers[/<segment>...][?query] with every segment escaped once.
func (c *Client) URL(r Request) string {
	var b strings.Builder
	b.WriteString(c.baseURL)
	b.WriteString("/projects/")
	b.WriteString(url.PathEscape(c.projectID))
	b.WriteString("/customers")
	for _, seg := range r.Segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(seg))
	}
	if r.RawQuery != "" {
		b.WriteByte('?')
		b.WriteString(r.RawQuery)
	}
	return b.String()
}

// Forward performs one call against the customers API. Any HTTP status is returned as-is;
// only transport failures produce an error.
func (c *Client) Forward(ctx context.Context, r Request) (Result, error) {
	method := r.Method
	if method == "" {
		method = http.MethodGet
	}
	target := c.URL(r)

	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return Result{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	res, err := c.client.Do(req)
	metrics.UpstreamRequestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(method, "error").Inc()
		c.log.Warn("upstream request failed", zap.String("method", method), zap.Error(err))
		return Result{}, err
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(method, "error").Inc()
		c.log.Warn("upstream body read failed", zap.String("method", method), zap.Error(err))
		return Result{}, fmt.Errorf("read body: %w", err)
	}

	metrics.UpstreamRequestsTotal.WithLabelValues(method, strconv.Itoa(res.StatusCode)).Inc()
	c.log.Debug("upstream request",
		zap.String("method", method),
		zap.Int("status", res.StatusCode),
		zap.Int("bytes", len(raw)),
		zap.Duration("took", time.Since(start)),
	)

	return Result{Status: res.StatusCode, Body: ParseBody(raw)}, nil
}

// ParseBody keeps valid JSON untouched and wraps anything else as {"message": text}.
func ParseBody(raw []byte) json.RawMessage {
	if len(raw) == 0 {
		return nil
	}
	if json.Valid(raw) {
		return json.RawMessage(raw)
	}
	wrapped, err := json.Marshal(map[string]string{"message": string(raw)})
	if err != nil {
		return nil
	}
	return wrapped
}
