package acl

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/irebix/LayerVisSync/internal/adapters/clients/acl/alert"
	"github.com/irebix/LayerVisSync/internal/domain"
	"github.com/irebix/LayerVisSync/internal/platform/httpclient"
	"github.com/irebix/LayerVisSync/internal/ports"
)

// Compile-time interface checks.
var (
	_ ports.Alerter       = (*AlertClient)(nil)
	_ ports.HealthChecker = (*AlertClient)(nil)
)

const alertsPath = "/api/v1/alerts"

// AlertClient delivers user-facing alerts to the panel bridge with
// POST /api/v1/alerts. Circuit breaking, retry and tracing come from the
// underlying httpclient.Client.
type AlertClient struct {
	client     *httpclient.Client
	documentID string
	now        func() time.Time
	logger     *slog.Logger
}

// NewAlertClient creates an AlertClient that tags every alert with
// documentID.
func NewAlertClient(client *httpclient.Client, documentID string, logger *slog.Logger) *AlertClient {
	return &AlertClient{
		client:     client,
		documentID: documentID,
		now:        time.Now,
		logger:     logger,
	}
}

// Alert sends message to the bridge. A response the bridge did not accept
// is reported as domain.ErrUnavailable.
func (c *AlertClient) Alert(ctx context.Context, message string) error {
	body, err := alert.ToRequest(message, c.documentID, c.now())
	if err != nil {
		return &domain.ValidationError{Fields: map[string]string{"message": err.Error()}}
	}

	var resp alert.ResponseDTO
	err = exchange(ctx, c.client, c.logger, jsonCall{
		method: http.MethodPost,
		path:   alertsPath,
		want:   http.StatusAccepted,
		in:     body,
		out:    &resp,
	})
	if err != nil {
		return err
	}
	if !alert.Accepted(resp) {
		return fmt.Errorf("bridge returned alert status %q: %w", resp.Status, domain.ErrUnavailable)
	}

	c.logger.DebugContext(ctx, "alert delivered",
		slog.String("alert_id", resp.ID),
		slog.String("status", resp.Status),
	)
	return nil
}

// Name identifies the bridge in the health registry.
func (c *AlertClient) Name() string {
	return c.client.Name()
}

// HealthCheck reports the bridge's circuit breaker state. No request is made.
func (c *AlertClient) HealthCheck(ctx context.Context) error {
	return c.client.HealthCheck(ctx)
}
