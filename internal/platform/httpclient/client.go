// Package httpclient is the outbound HTTP client used to reach the alert
// bridge. Every call goes through
//
//	breaker → rate limiter → propagated headers → client span → retry loop
//
// and is recorded in the client request metrics.
//
//	client := httpclient.New(&cfg.Client, "alert-bridge", metrics, logger)
//	resp, err := client.Do(ctx, req)
//
// Non-idempotent requests get an Idempotency-Key header before the first
// attempt, so a retried POST reaches the bridge with the key it already saw.
package httpclient

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/irebix/LayerVisSync/internal/platform/config"
	"github.com/irebix/LayerVisSync/internal/platform/telemetry"
)

// HeaderIdempotencyKey carries the per-call key that makes retries safe.
const HeaderIdempotencyKey = "Idempotency-Key"

// Client sends requests to one downstream service.
type Client struct {
	http    *http.Client
	baseURL string
	peer    string
	breaker *gobreaker.CircuitBreaker[struct{}]
	limiter *rate.Limiter
	retry   retryPolicy
	metrics *telemetry.Metrics
	logger  *slog.Logger
}

// New creates a Client for the downstream service named peer. peer labels
// spans, metrics and the breaker. metrics may be nil.
func New(cfg *config.ClientConfig, peer string, metrics *telemetry.Metrics, logger *slog.Logger) *Client {
	c := &Client{
		http:    &http.Client{Timeout: cfg.Timeout},
		baseURL: cfg.BaseURL,
		peer:    peer,
		retry:   newRetryPolicy(cfg.Retry),
		metrics: metrics,
		logger:  logger,
	}

	c.breaker = gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        peer,
		MaxRequests: clampUint32(cfg.CircuitBreaker.HalfOpenLimit),
		Timeout:     cfg.CircuitBreaker.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return int(counts.ConsecutiveFailures) >= cfg.CircuitBreaker.MaxFailures
		},
		// A caller giving up says nothing about the peer.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("alert bridge breaker changed state",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	})

	if rl := cfg.RateLimit; rl.RequestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(rl.RequestsPerSecond), max(rl.BurstSize, 1))
	}
	return c
}

// Do sends req. On success resp has an open body the caller closes. When
// the last retry still got a retryable status, both resp and err are
// non-nil. A breaker rejection or transport error returns a nil resp.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	start := time.Now()
	setIdempotencyKey(req)

	var resp *http.Response
	_, err := c.breaker.Execute(func() (struct{}, error) {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return struct{}{}, fmt.Errorf("waiting for %s rate limit: %w", c.peer, err)
			}
		}
		applyPropagated(ctx, req)

		spanCtx, span := c.startSpan(ctx, req)
		defer span.End()

		var err error
		resp, err = c.send(spanCtx, req.WithContext(spanCtx))
		endSpan(span, resp, err)
		return struct{}{}, err
	})

	c.record(ctx, req.Method, time.Since(start), resp, err)
	return resp, err
}

// BaseURL returns the configured base URL of the peer.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Name implements ports.HealthChecker.
func (c *Client) Name() string {
	return c.peer
}

// HealthCheck reports the peer from the breaker state alone; it never makes
// a request. A half-open breaker is degraded, an open one is failing.
func (c *Client) HealthCheck(_ context.Context) error {
	switch state := c.breaker.State(); state {
	case gobreaker.StateClosed:
		return nil
	case gobreaker.StateHalfOpen:
		return fmt.Errorf("%s: degraded (circuit breaker half-open)", c.peer)
	case gobreaker.StateOpen:
		return fmt.Errorf("%s: failing (circuit breaker open)", c.peer)
	default:
		return fmt.Errorf("%s: unknown circuit breaker state %v", c.peer, state)
	}
}

func setIdempotencyKey(req *http.Request) {
	switch req.Method {
	case http.MethodPost, http.MethodPatch:
	default:
		return
	}
	if req.Header.Get(HeaderIdempotencyKey) == "" {
		req.Header.Set(HeaderIdempotencyKey, uuid.NewString())
	}
}

func clampUint32(v int) uint32 {
	switch {
	case v <= 0:
		return 0
	case v > math.MaxUint32:
		return math.MaxUint32
	}
	return uint32(v)
}
