package alert

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestToRequest(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, 3, 1, 9, 30, 0, 0, time.FixedZone("CET", 3600))

	got, err := ToRequest("  Select at least two layers\n to sync.  ", "poster", at)
	if err != nil {
		t.Fatalf("ToRequest() error = %v", err)
	}

	want := RequestDTO{
		Message:    "Select at least two layers to sync.",
		Severity:   SeverityWarning,
		Source:     Source,
		DocumentID: "poster",
		RaisedAt:   "2026-03-01T08:30:00Z",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ToRequest() mismatch (-want +got):\n%s", diff)
	}
}

func TestToRequest_Empty(t *testing.T) {
	t.Parallel()

	if _, err := ToRequest(" \t\n", "", time.Now()); !errors.Is(err, ErrEmptyMessage) {
		t.Errorf("ToRequest() error = %v, want %v", err, ErrEmptyMessage)
	}
}

func TestAccepted(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		resp ResponseDTO
		want bool
	}{
		{name: "queued", resp: ResponseDTO{ID: "a1", Status: "queued"}, want: true},
		{name: "shown", resp: ResponseDTO{ID: "a1", Status: "shown"}, want: true},
		{name: "dropped", resp: ResponseDTO{ID: "a1", Status: "dropped"}, want: false},
		{name: "missing id", resp: ResponseDTO{Status: "queued"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Accepted(tt.resp); got != tt.want {
				t.Errorf("Accepted(%+v) = %v, want %v", tt.resp, got, tt.want)
			}
		})
	}
}
