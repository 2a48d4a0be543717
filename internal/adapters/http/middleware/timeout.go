package middleware

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"net/http"
	"sync"
	"time"

	"github.com/irebix/LayerVisSync/internal/adapters/http/dto"
)

// Timeout bounds each request by d. The handler runs with a deadline on its
// context and writes into a buffer; if it finishes in time the buffer is
// sent, otherwise the client gets a 504 problem response and later writes
// fail with http.ErrHandlerTimeout. A panic in the handler is re-raised on
// the serving goroutine so Recovery still sees it. d <= 0 disables the
// deadline.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if d <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			r = r.WithContext(ctx)

			buf := &bufferedWriter{header: make(http.Header)}
			done := make(chan struct{})
			panicked := make(chan any, 1)

			go func() {
				defer func() {
					if v := recover(); v != nil {
						panicked <- v
					}
				}()
				next.ServeHTTP(buf, r)
				close(done)
			}()

			select {
			case v := <-panicked:
				panic(v)
			case <-done:
				buf.mu.Lock()
				defer buf.mu.Unlock()
				buf.copyTo(w)
			case <-ctx.Done():
				buf.mu.Lock()
				buf.expired = true
				buf.mu.Unlock()
				dto.WriteErrorResponse(w, r, fmt.Errorf("request exceeded %s: %w", d, context.DeadlineExceeded))
			}
		})
	}
}

// bufferedWriter holds the handler's response until Timeout decides which
// side answers the client.
type bufferedWriter struct {
	mu      sync.Mutex
	header  http.Header
	body    bytes.Buffer
	status  int
	expired bool
}

func (b *bufferedWriter) Header() http.Header {
	return b.header
}

func (b *bufferedWriter) WriteHeader(code int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.status == 0 && !b.expired {
		b.status = code
	}
}

func (b *bufferedWriter) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.expired {
		return 0, http.ErrHandlerTimeout
	}
	if b.status == 0 {
		b.status = http.StatusOK
	}
	return b.body.Write(p)
}

// copyTo must be called with b.mu held.
func (b *bufferedWriter) copyTo(w http.ResponseWriter) {
	maps.Copy(w.Header(), b.header)
	if b.status != 0 {
		w.WriteHeader(b.status)
	}
	if b.body.Len() > 0 {
		_, _ = w.Write(b.body.Bytes())
	}
}
