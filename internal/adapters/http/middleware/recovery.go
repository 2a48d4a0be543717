package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/irebix/LayerVisSync/internal/adapters/http/dto"
)

// errPanic is what the client sees; the panic value stays in the logs.
var errPanic = errors.New("internal server error")

// Recovery turns a handler panic into a logged error and, when nothing was
// written yet, an RFC 9457 500 response. http.ErrAbortHandler is re-raised
// so net/http can abort the connection as intended.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := newRecorder(w)
			defer func() {
				v := recover()
				if v == nil {
					return
				}
				if v == http.ErrAbortHandler { //nolint:errorlint // sentinel panic value
					panic(v)
				}

				logger.ErrorContext(r.Context(), "handler panicked",
					slog.String("operation", "middleware.Recovery"),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("panic", fmt.Sprint(v)),
					slog.String("stack", string(debug.Stack())),
				)
				if !rec.wrote {
					dto.WriteErrorResponse(rec, r, errPanic)
				}
			}()

			next.ServeHTTP(rec, r)
		})
	}
}
