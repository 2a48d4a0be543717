package httpclient

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"
)

func TestRetryPolicy_Delay(t *testing.T) {
	t.Parallel()

	p := retryPolicy{initial: 100 * time.Millisecond, ceiling: 500 * time.Millisecond, multiplier: 2}

	tests := []struct {
		n    int
		base time.Duration
	}{
		{n: 1, base: 100 * time.Millisecond},
		{n: 2, base: 200 * time.Millisecond},
		{n: 3, base: 400 * time.Millisecond},
		{n: 10, base: 500 * time.Millisecond},
	}

	for _, tt := range tests {
		lo := time.Duration(float64(tt.base) * (1 - jitter))
		hi := time.Duration(float64(tt.base) * (1 + jitter))
		for range 50 {
			if d := p.delay(tt.n, nil); d < lo || d > hi {
				t.Fatalf("delay(%d) = %v, want within [%v, %v]", tt.n, d, lo, hi)
			}
		}
	}
}

func TestRetryPolicy_DelayHonorsRetryAfter(t *testing.T) {
	t.Parallel()

	p := retryPolicy{initial: 10 * time.Millisecond, ceiling: 3 * time.Second, multiplier: 2}

	tests := []struct {
		name  string
		after string
		want  time.Duration
	}{
		{name: "seconds", after: "2", want: 2 * time.Second},
		{name: "capped", after: "60", want: 3 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			resp := &http.Response{Header: http.Header{"Retry-After": {tt.after}}}
			if got := p.delay(1, resp); got != tt.want {
				t.Errorf("delay() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRetryAfter(t *testing.T) {
	t.Parallel()

	future := time.Now().Add(time.Hour).UTC().Format(http.TimeFormat)

	tests := []struct {
		name   string
		resp   *http.Response
		wantOK bool
		min    time.Duration
	}{
		{name: "nil response"},
		{name: "missing", resp: &http.Response{Header: http.Header{}}},
		{name: "garbage", resp: &http.Response{Header: http.Header{"Retry-After": {"soon"}}}},
		{name: "seconds", resp: &http.Response{Header: http.Header{"Retry-After": {"5"}}}, wantOK: true, min: 5 * time.Second},
		{name: "http date", resp: &http.Response{Header: http.Header{"Retry-After": {future}}}, wantOK: true, min: 50 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := retryAfter(tt.resp)
			if ok != tt.wantOK {
				t.Fatalf("retryAfter() ok = %v, want %v", ok, tt.wantOK)
			}
			if got < tt.min {
				t.Errorf("retryAfter() = %v, want at least %v", got, tt.min)
			}
		})
	}
}

func TestRetryableErr(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "canceled", err: context.Canceled, want: false},
		{name: "deadline", err: context.DeadlineExceeded, want: false},
		{name: "wrapped canceled", err: errors.Join(errors.New("dial"), context.Canceled), want: false},
		{name: "connection refused", err: errors.New("connection refused"), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := retryableErr(tt.err); got != tt.want {
				t.Errorf("retryableErr(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestRetryableStatus(t *testing.T) {
	t.Parallel()

	for code, want := range map[int]bool{
		http.StatusOK:                  false,
		http.StatusAccepted:            false,
		http.StatusBadRequest:          false,
		http.StatusNotFound:            false,
		http.StatusTooManyRequests:     true,
		http.StatusInternalServerError: true,
		http.StatusBadGateway:          true,
		http.StatusServiceUnavailable:  true,
	} {
		if got := retryableStatus(code); got != want {
			t.Errorf("retryableStatus(%d) = %v, want %v", code, got, want)
		}
	}
}

func TestClampUint32(t *testing.T) {
	t.Parallel()

	if got := clampUint32(-3); got != 0 {
		t.Errorf("clampUint32(-3) = %d, want 0", got)
	}
	if got := clampUint32(7); got != 7 {
		t.Errorf("clampUint32(7) = %d, want 7", got)
	}
}
