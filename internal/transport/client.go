// Package transport is the single HTTP path to the upstream: one
// rate-limited, retrying client per process, constructed at the
// composition root and injected into every search component.
package transport

import (
	"context"
	"io"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/punitarani/flights-tracker-sub001/pkg/logger"
	"github.com/punitarani/flights-tracker-sub001/pkg/metrics"
)

type Config struct {
	// RequestsPerSecond caps the sustained request rate; Burst is the
	// limiter's bucket size (1 means strict inter-request spacing).
	RequestsPerSecond float64
	Burst             int

	// MaxInFlight caps concurrent upstream requests; excess callers
	// queue until a slot frees up.
	MaxInFlight int

	MaxAttempts int
	BackoffBase time.Duration
	Timeout     time.Duration

	// UserAgent overrides the default browser-like identity.
	UserAgent string
}

func DefaultConfig() Config {
	return Config{
		RequestsPerSecond: 2,
		Burst:             1,
		MaxInFlight:       4,
		MaxAttempts:       3,
		BackoffBase:       250 * time.Millisecond,
		Timeout:           30 * time.Second,
	}
}

// RequestError is the typed failure surfaced after retries exhaust. A
// zero StatusCode means no response was received at all.
type RequestError struct {
	StatusCode int
	Reason     string
}

func (e *RequestError) Error() string {
	if e.StatusCode == 0 {
		return "upstream: " + e.Reason
	}
	return "upstream: status " + strconv.Itoa(e.StatusCode) + ": " + e.Reason
}

const defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

var defaultHeaders = map[string]string{
	"Content-Type": "application/x-www-form-urlencoded;charset=UTF-8",
	"Accept":       "*/*",
}

type Client struct {
	http    *http.Client
	limiter *rate.Limiter
	sem     chan struct{}
	cfg     Config
	log     logger.Logger
	metrics *metrics.Metrics
}

// NewClient builds the shared upstream client. metrics may be nil.
func NewClient(cfg Config, log logger.Logger, m *metrics.Metrics) *Client {
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = DefaultConfig().RequestsPerSecond
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	if cfg.MaxInFlight <= 0 {
		cfg.MaxInFlight = DefaultConfig().MaxInFlight
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultConfig().MaxAttempts
	}
	if cfg.BackoffBase <= 0 {
		cfg.BackoffBase = DefaultConfig().BackoffBase
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}

	return &Client{
		http:    &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		sem:     make(chan struct{}, cfg.MaxInFlight),
		cfg:     cfg,
		log:     log,
		metrics: m,
	}
}

// Post sends a form-encoded body and returns the raw response bytes.
// Caller headers win over the defaults on conflict.
func (c *Client) Post(ctx context.Context, url string, body string, headers map[string]string) ([]byte, error) {
	return c.do(ctx, http.MethodPost, url, body, headers)
}

// Get fetches a URL with the same rate/retry discipline as Post.
func (c *Client) Get(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, url, "", headers)
}

func (c *Client) do(ctx context.Context, method, url, body string, headers map[string]string) ([]byte, error) {
	start := time.Now()
	defer func() {
		c.metrics.ObserveRequestDuration(time.Since(start).Seconds())
	}()

	select {
	case c.sem <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	defer func() { <-c.sem }()

	var lastErr error
	for attempt := 0; attempt < c.cfg.MaxAttempts; attempt++ {
		if attempt > 0 {
			c.metrics.IncRetry()
			select {
			case <-time.After(backoff(c.cfg.BackoffBase, attempt)):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		data, err := c.doOnce(ctx, method, url, body, headers)
		if err == nil {
			c.metrics.IncUpstreamRequest("success")
			return data, nil
		}

		// An external abort must surface as the context error, not be
		// retried as a transient failure.
		if ctx.Err() != nil {
			c.metrics.IncUpstreamRequest("aborted")
			return nil, ctx.Err()
		}

		c.metrics.IncUpstreamRequest("failure")
		lastErr = err
		c.log.Warn("upstream request failed",
			"method", method, "url", url, "attempt", attempt+1, "error", err)
	}

	return nil, lastErr
}

func (c *Client) doOnce(ctx context.Context, method, url, body string, headers map[string]string) ([]byte, error) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, &RequestError{Reason: err.Error()}
	}

	for k, v := range defaultHeaders {
		req.Header.Set(k, v)
	}
	ua := c.cfg.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	req.Header.Set("User-Agent", ua)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &RequestError{Reason: "no response received: " + err.Error()}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RequestError{StatusCode: resp.StatusCode, Reason: "reading body: " + err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RequestError{StatusCode: resp.StatusCode, Reason: resp.Status}
	}

	return data, nil
}

// backoff is exponential in the attempt number with up to one base
// interval of jitter.
func backoff(base time.Duration, attempt int) time.Duration {
	d := base << (attempt - 1)
	return d + time.Duration(rand.Int63n(int64(base)))
}
