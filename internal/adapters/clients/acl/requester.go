package acl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/irebix/LayerVisSync/internal/platform/httpclient"
)

// jsonCall is one JSON round trip to the bridge. in is sent when non-nil;
// out is filled from a response whose status equals want.
type jsonCall struct {
	method string
	path   string
	want   int
	in     any
	out    any
}

// exchange performs call through client. Any other status, including the
// retryable one the last retry gave up on, goes through ErrorFromResponse.
// The response body is always closed.
func exchange(ctx context.Context, client *httpclient.Client, logger *slog.Logger, call jsonCall) error {
	req, err := newJSONRequest(ctx, client.BaseURL()+call.path, call.method, call.in)
	if err != nil {
		return err
	}

	resp, err := client.Do(ctx, req)
	if resp != nil {
		defer func() {
			if cerr := resp.Body.Close(); cerr != nil {
				logger.WarnContext(ctx, "closing bridge response", slog.Any("error", cerr))
			}
		}()
	}

	switch {
	case resp == nil:
		logger.ErrorContext(ctx, "bridge request failed",
			slog.String("operation", "acl.exchange"),
			slog.String("method", call.method),
			slog.String("path", call.path),
			slog.Any("error", err),
		)
		return fmt.Errorf("%s %s: %w", call.method, call.path, err)
	case resp.StatusCode != call.want:
		logger.WarnContext(ctx, "bridge rejected request",
			slog.String("operation", "acl.exchange"),
			slog.String("method", call.method),
			slog.String("path", call.path),
			slog.Int("status", resp.StatusCode),
		)
		return ErrorFromResponse(resp)
	case call.out == nil:
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(call.out); err != nil {
		return fmt.Errorf("decoding %s %s response: %w", call.method, call.path, err)
	}
	return nil
}

func newJSONRequest(ctx context.Context, url, method string, in any) (*http.Request, error) {
	var body io.Reader = http.NoBody
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("encoding %s body: %w", method, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("building %s %s: %w", method, url, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}
