// Package claw provides the Go SDK for the ClawNet node HTTP API:
// node status, identity/DID resolution, wallet and escrow operations,
// reputation, the info/task/capability marketplaces, service contracts,
// and DAO governance.
package claw

import (
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the HTTP API address of a locally running node.
const DefaultBaseURL = "http://127.0.0.1:9528"

// DefaultTimeout bounds each request round trip unless a custom
// http.Client is supplied.
const DefaultTimeout = 30 * time.Second

// M is an open-ended JSON object. State-changing endpoints accept a free
// field set (the actor envelope plus operation fields); the SDK forwards
// it without inspection.
type M map[string]any

// QueryListStyle selects how multi-valued query parameters are encoded.
type QueryListStyle int

const (
	// ListRepeat repeats the parameter name for each value: k=a&k=b.
	ListRepeat QueryListStyle = iota
	// ListCommaJoin joins the values with commas: k=a,b (percent-encoded).
	ListCommaJoin
)

// Client talks to a single ClawNet node. All configuration is fixed at
// construction; a Client is safe for concurrent use by multiple goroutines.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	timeout     time.Duration
	apiKey      string
	tokenSource oauth2.TokenSource
	headers     map[string]string
	logger      *zap.Logger
	limiter     *rate.Limiter
	metrics     *Metrics
	listStyle   QueryListStyle

	// Resource services. Each is a thin path-formatting layer over the
	// client's transport; they share this Client's connection pool.
	Node       *NodeService
	Identity   *IdentityService
	Wallet     *WalletService
	Reputation *ReputationService
	Markets    *MarketsService
	Contracts  *ContractsService
	DAO        *DAOService
}

// Option is a functional option for configuring a Client.
type Option func(*Client) error

// WithHTTPClient sets a custom http.Client, overriding the default timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		c.httpClient = hc
		return nil
	}
}

// WithTimeout sets the per-request timeout on the default http.Client.
// It has no effect when combined with WithHTTPClient, in either order;
// a caller-supplied client is never mutated.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) error {
		c.timeout = d
		return nil
	}
}

// WithAPIKey attaches "Authorization: Bearer <key>" to every request.
func WithAPIKey(key string) Option {
	return func(c *Client) error {
		c.apiKey = key
		return nil
	}
}

// WithTokenSource attaches a bearer token from ts to every request,
// re-reading the source each call so rotating credentials stay fresh.
// Takes precedence over WithAPIKey.
func WithTokenSource(ts oauth2.TokenSource) Option {
	return func(c *Client) error {
		c.tokenSource = ts
		return nil
	}
}

// WithHeaders merges extra static headers into every request. Caller
// headers win over the SDK defaults (including Content-Type).
func WithHeaders(h map[string]string) Option {
	return func(c *Client) error {
		if c.headers == nil {
			c.headers = make(map[string]string, len(h))
		}
		for k, v := range h {
			c.headers[k] = v
		}
		return nil
	}
}

// WithLogger enables debug-level request logging.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) error {
		c.logger = l
		return nil
	}
}

// WithRateLimit throttles outgoing requests with a token bucket.
// rps is the steady-state requests per second; burst is the bucket size.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) error {
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
		return nil
	}
}

// WithMetrics records per-request Prometheus metrics (count by method and
// status, duration by method) into the given registerer.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(c *Client) error {
		m, err := NewMetrics(reg)
		if err != nil {
			return err
		}
		c.metrics = m
		return nil
	}
}

// WithQueryListStyle selects the encoding for multi-valued query
// parameters. The default is ListRepeat.
func WithQueryListStyle(s QueryListStyle) Option {
	return func(c *Client) error {
		c.listStyle = s
		return nil
	}
}

// New creates a Client for the node at baseURL. A trailing slash on
// baseURL is stripped once, at construction.
//
//	c, err := claw.New(claw.DefaultBaseURL, claw.WithAPIKey("secret"))
//	if err != nil { ... }
//	defer c.Close()
//	status, err := c.Node.GetStatus(ctx)
func New(baseURL string, opts ...Option) (*Client, error) {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  zap.NewNop(),
	}
	for _, o := range opts {
		if err := o(c); err != nil {
			return nil, err
		}
	}
	if c.httpClient == nil {
		timeout := DefaultTimeout
		if c.timeout > 0 {
			timeout = c.timeout
		}
		c.httpClient = &http.Client{Timeout: timeout}
	}

	c.Node = &NodeService{client: c}
	c.Identity = &IdentityService{client: c}
	c.Wallet = &WalletService{client: c}
	c.Reputation = &ReputationService{client: c}
	c.Markets = newMarketsService(c)
	c.Contracts = &ContractsService{client: c}
	c.DAO = &DAOService{client: c}
	return c, nil
}

// MustNew is like New but panics on error. Useful in tests and program init.
func MustNew(baseURL string, opts ...Option) *Client {
	c, err := New(baseURL, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// Close releases the client's idle connections. Requests already in
// flight are unaffected; the Client must not be reused afterwards.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

// BaseURL returns the configured node address (trailing slash stripped).
func (c *Client) BaseURL() string {
	return c.baseURL
}
