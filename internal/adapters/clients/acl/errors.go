// Package acl is the outbound adapter for the panel bridge, the companion
// service that shows sync alerts to the user. Resource translators live in
// subpackages (acl/alert); request plumbing and error mapping live here.
package acl

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/irebix/LayerVisSync/internal/domain"
)

// maxProblemBytes caps how much of an error body is read.
const maxProblemBytes = 64 << 10

// problem is the subset of an RFC 9457 body the bridge sends back.
type problem struct {
	Detail string `json:"detail"`
	Errors []struct {
		Location string `json:"location"`
		Message  string `json:"message"`
	} `json:"errors"`
}

// ErrorFromResponse turns a bridge error response into a domain error.
// The problem detail, when present, becomes the message. A 400 or 422 with
// field errors becomes a *domain.ValidationError keyed by field name.
func ErrorFromResponse(resp *http.Response) error {
	p := readProblem(resp)
	detail := p.Detail
	if detail == "" {
		detail = http.StatusText(resp.StatusCode)
	}

	var sentinel error
	switch code := resp.StatusCode; {
	case code == http.StatusBadRequest, code == http.StatusUnprocessableEntity:
		if len(p.Errors) > 0 {
			fields := make(map[string]string, len(p.Errors))
			for _, e := range p.Errors {
				fields[strings.TrimPrefix(e.Location, "body.")] = e.Message
			}
			return &domain.ValidationError{Fields: fields}
		}
		sentinel = domain.ErrValidation
	case code == http.StatusUnauthorized, code == http.StatusForbidden:
		sentinel = domain.ErrForbidden
	case code == http.StatusNotFound:
		sentinel = domain.ErrNotFound
	case code == http.StatusConflict:
		sentinel = domain.ErrConflict
	case code == http.StatusTooManyRequests, code >= http.StatusInternalServerError:
		sentinel = domain.ErrUnavailable
	default:
		return fmt.Errorf("alert bridge: unexpected status %d: %s", code, detail)
	}
	return fmt.Errorf("alert bridge: %s: %w", detail, sentinel)
}

// readProblem decodes a problem+json body and returns the zero problem for
// any other content or a malformed body.
func readProblem(resp *http.Response) problem {
	var p problem
	if resp.Body == nil {
		return p
	}
	mt, _, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if err != nil || mt != "application/problem+json" {
		return p
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxProblemBytes)).Decode(&p); err != nil {
		return problem{}
	}
	return p
}
