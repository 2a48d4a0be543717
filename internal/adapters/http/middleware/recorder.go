// Package middleware holds the inbound request pipeline of the panel API.
// Stack assembles it in order:
//
//	Recovery → RequestID → CorrelationID → OpenTelemetry → Logging → Session → Timeout
package middleware

import "net/http"

// recorder remembers the status and size of a response. The first
// WriteHeader wins; a Write without one counts as 200.
type recorder struct {
	http.ResponseWriter
	status  int
	wrote   bool
	written int64
}

func newRecorder(w http.ResponseWriter) *recorder {
	return &recorder{ResponseWriter: w, status: http.StatusOK}
}

func (rec *recorder) WriteHeader(code int) {
	if rec.wrote {
		return
	}
	rec.status = code
	rec.wrote = true
	rec.ResponseWriter.WriteHeader(code)
}

func (rec *recorder) Write(b []byte) (int, error) {
	rec.wrote = true
	n, err := rec.ResponseWriter.Write(b)
	rec.written += int64(n)
	return n, err
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (rec *recorder) Unwrap() http.ResponseWriter {
	return rec.ResponseWriter
}
