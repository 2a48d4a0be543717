package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/irebix/LayerVisSync/internal/adapters/http/dto"
	"github.com/irebix/LayerVisSync/internal/domain"
	"github.com/irebix/LayerVisSync/internal/domain/layer"
	"github.com/irebix/LayerVisSync/internal/platform/logging"
)

// maxBodyBytes caps request bodies. Panel requests are a few hundred bytes.
const maxBodyBytes = 64 << 10

// pathInt reads a chi URL parameter that must be a positive integer.
func pathInt(r *http.Request, name string) (int64, error) {
	n, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || n <= 0 {
		return 0, domain.NewValidationError(name, "must be a positive integer")
	}
	return n, nil
}

// parseGroupIndex reads the 1-based {index} of a sync group.
func parseGroupIndex(r *http.Request) (int, error) {
	n, err := pathInt(r, "index")
	return int(n), err
}

// parseLayerID reads the {id} of a layer.
func parseLayerID(r *http.Request) (layer.ID, error) {
	n, err := pathInt(r, "id")
	return layer.ID(n), err
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.FromContext(r.Context()).ErrorContext(r.Context(), "encoding response",
			slog.Int("status", status),
			slog.Any("error", err),
		)
	}
}

type validatable interface {
	Validate() error
}

// decodeAndValidate strictly decodes one JSON object into dst and runs its
// Validate. On failure the problem response is already written and false
// is returned.
func decodeAndValidate[T validatable](w http.ResponseWriter, r *http.Request, dst T) bool {
	err := decodeStrict(http.MaxBytesReader(w, r.Body, maxBodyBytes), dst)
	if err == nil {
		err = dst.Validate()
	}
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return false
	}
	return true
}

// decodeStrict rejects unknown fields, trailing data and oversized bodies.
func decodeStrict(body io.Reader, dst any) error {
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err == nil && dec.More() {
		err = errors.New("trailing data")
	}

	var tooLarge *http.MaxBytesError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &tooLarge):
		return domain.NewValidationError("body", "must not exceed "+strconv.FormatInt(tooLarge.Limit, 10)+" bytes")
	case strings.HasPrefix(err.Error(), "json: unknown field"):
		return domain.NewValidationError("body", strings.TrimPrefix(err.Error(), "json: "))
	}
	return domain.NewValidationError("body", "invalid JSON")
}
