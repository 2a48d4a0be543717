package httpclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand/v2"
	"net/http"
	"strconv"
	"time"

	"github.com/irebix/LayerVisSync/internal/platform/config"
	"github.com/irebix/LayerVisSync/internal/platform/logging"
)

// jitter spreads each backoff delay by up to ±25%.
const jitter = 0.25

type retryPolicy struct {
	attempts   int
	initial    time.Duration
	ceiling    time.Duration
	multiplier float64
}

func newRetryPolicy(cfg config.RetryConfig) retryPolicy {
	return retryPolicy{
		attempts:   cfg.MaxAttempts,
		initial:    cfg.InitialInterval,
		ceiling:    cfg.MaxInterval,
		multiplier: cfg.Multiplier,
	}
}

// delay returns the wait before retry number n (n starts at 1). A
// Retry-After header on the previous response raises the wait, still capped
// at the ceiling.
func (p retryPolicy) delay(n int, prev *http.Response) time.Duration {
	d := float64(p.initial) * math.Pow(p.multiplier, float64(n-1))
	d = math.Min(d, float64(p.ceiling))
	d += d * jitter * (2*rand.Float64() - 1)

	if after, ok := retryAfter(prev); ok && float64(after) > d {
		d = math.Min(float64(after), float64(p.ceiling))
	}
	return time.Duration(math.Max(d, 0))
}

// retryAfter parses the Retry-After header in its seconds or HTTP-date form.
func retryAfter(resp *http.Response) (time.Duration, bool) {
	if resp == nil {
		return 0, false
	}
	v := resp.Header.Get("Retry-After")
	if v == "" {
		return 0, false
	}
	if secs, err := strconv.Atoi(v); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second, true
	}
	if at, err := http.ParseTime(v); err == nil {
		return max(time.Until(at), 0), true
	}
	return 0, false
}

// send runs the retry loop. The body is buffered once and replayed on every
// attempt. A response that is still retryable after the last attempt is
// returned together with an error, body open.
func (c *Client) send(ctx context.Context, req *http.Request) (*http.Response, error) {
	if c.retry.attempts < 1 {
		return nil, fmt.Errorf("httpclient: retry attempts must be >= 1, got %d", c.retry.attempts)
	}

	body, err := readBody(req)
	if err != nil {
		return nil, err
	}

	var (
		prev    *http.Response
		lastErr error
	)
	for n := range c.retry.attempts {
		if n > 0 {
			if err := c.pause(ctx, req, n, prev, lastErr); err != nil {
				return nil, err
			}
		}
		if body != nil {
			req.Body = io.NopCloser(bytes.NewReader(body))
			req.ContentLength = int64(len(body))
		}

		resp, err := c.http.Do(req)
		if err != nil {
			if !retryableErr(err) {
				return nil, err
			}
			prev, lastErr = nil, err
			continue
		}
		if !retryableStatus(resp.StatusCode) {
			return resp, nil
		}

		lastErr = fmt.Errorf("HTTP %d from %s", resp.StatusCode, c.peer)
		if n == c.retry.attempts-1 {
			return resp, lastErr
		}
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
		prev = resp
	}
	return nil, lastErr
}

func (c *Client) pause(ctx context.Context, req *http.Request, n int, prev *http.Response, lastErr error) error {
	d := c.retry.delay(n, prev)

	logging.FromContext(ctx).WarnContext(ctx, "retrying alert bridge request",
		slog.String("operation", "httpclient.Do"),
		slog.String("method", req.Method),
		slog.String("url", req.URL.String()),
		slog.String("peer_service", c.peer),
		slog.Int("attempt", n+1),
		slog.Int("max_attempts", c.retry.attempts),
		slog.Duration("backoff", d),
		slog.Any("error", lastErr),
	)

	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func readBody(req *http.Request) ([]byte, error) {
	if req.Body == nil || req.Body == http.NoBody {
		return nil, nil
	}
	defer req.Body.Close()
	b, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, fmt.Errorf("reading request body: %w", err)
	}
	return b, nil
}

// retryableErr treats every transport error as transient except the
// caller's own cancellation or deadline.
func retryableErr(err error) bool {
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}
