package httpclient

import (
	"context"
	"net/http"
)

type propagatedKey struct{}

// WithHeader returns a context whose outbound requests carry the header
// name: value. Inbound middleware uses it for request, correlation and
// session ids. Later calls with the same name replace the value.
func WithHeader(ctx context.Context, name, value string) context.Context {
	h := Propagated(ctx).Clone()
	if h == nil {
		h = make(http.Header, 1)
	}
	h.Set(name, value)
	return context.WithValue(ctx, propagatedKey{}, h)
}

// Propagated returns the headers stored by WithHeader, or nil.
func Propagated(ctx context.Context) http.Header {
	h, _ := ctx.Value(propagatedKey{}).(http.Header)
	return h
}

// applyPropagated copies the context headers onto req without overriding
// headers the caller set explicitly.
func applyPropagated(ctx context.Context, req *http.Request) {
	for name, values := range Propagated(ctx) {
		if req.Header.Get(name) != "" || len(values) == 0 || values[0] == "" {
			continue
		}
		req.Header.Set(name, values[0])
	}
}
