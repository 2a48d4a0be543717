package alert

import (
	"errors"
	"strings"
	"time"
)

// Source identifies this service to the bridge.
const Source = "layersync"

// ErrEmptyMessage is returned for a message with no visible text.
var ErrEmptyMessage = errors.New("alert message is empty")

// ToRequest builds the bridge request for a user-facing message. Runs of
// whitespace are collapsed because the bridge renders a single line.
func ToRequest(message, documentID string, at time.Time) (RequestDTO, error) {
	text := strings.Join(strings.Fields(message), " ")
	if text == "" {
		return RequestDTO{}, ErrEmptyMessage
	}
	return RequestDTO{
		Message:    text,
		Severity:   SeverityWarning,
		Source:     Source,
		DocumentID: documentID,
		RaisedAt:   at.UTC().Format(time.RFC3339),
	}, nil
}

// Accepted reports whether the bridge queued or displayed the alert.
func Accepted(resp ResponseDTO) bool {
	switch resp.Status {
	case "queued", "shown":
		return resp.ID != ""
	default:
		return false
	}
}
