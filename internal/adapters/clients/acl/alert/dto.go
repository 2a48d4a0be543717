// Package alert implements the Anti-Corruption Layer translators for the
// panel bridge's alert resource.
package alert

// Severity values understood by the bridge.
const (
	SeverityInfo    = "info"
	SeverityWarning = "warning"
)

// RequestDTO matches the bridge's CreateAlertRequest schema.
type RequestDTO struct {
	Message    string `json:"message"`
	Severity   string `json:"severity"`
	Source     string `json:"source"`
	DocumentID string `json:"document_id,omitempty"`
	RaisedAt   string `json:"raised_at"`
}

// ResponseDTO matches the bridge's Alert schema.
type ResponseDTO struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}
