package middleware_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/irebix/LayerVisSync/internal/adapters/http/dto"
	"github.com/irebix/LayerVisSync/internal/adapters/http/middleware"
)

func TestTimeout_FastHandler(t *testing.T) {
	t.Parallel()

	h := middleware.Timeout(time.Second)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":10}`))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/document/layers", http.NoBody))

	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", got)
	}
	if got := rec.Body.String(); got != `{"id":10}` {
		t.Errorf("body = %q", got)
	}
}

func TestTimeout_ImplicitOK(t *testing.T) {
	t.Parallel()

	h := middleware.Timeout(time.Second)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/selection", http.NoBody))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestTimeout_SlowHandler(t *testing.T) {
	t.Parallel()

	lateWrite := make(chan error, 1)
	h := middleware.Timeout(20*time.Millisecond)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
		time.Sleep(10 * time.Millisecond)
		_, err := w.Write([]byte("too late"))
		lateWrite <- err
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/sync/toggle", http.NoBody))

	if rec.Code != http.StatusGatewayTimeout {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusGatewayTimeout)
	}
	if got := rec.Header().Get("Content-Type"); got != dto.ContentTypeProblem {
		t.Errorf("Content-Type = %q, want %q", got, dto.ContentTypeProblem)
	}
	var body dto.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body.Status != http.StatusGatewayTimeout {
		t.Errorf("body status = %d, want %d", body.Status, http.StatusGatewayTimeout)
	}

	select {
	case err := <-lateWrite:
		if !errors.Is(err, http.ErrHandlerTimeout) {
			t.Errorf("late Write error = %v, want http.ErrHandlerTimeout", err)
		}
	case <-time.After(time.Second):
		t.Fatal("handler never returned")
	}
}

func TestTimeout_DeadlineOnContext(t *testing.T) {
	t.Parallel()

	var hasDeadline bool
	h := middleware.Timeout(time.Second)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		_, hasDeadline = r.Context().Deadline()
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", http.NoBody))

	if !hasDeadline {
		t.Error("handler context has no deadline")
	}
}

func TestTimeout_ZeroDisables(t *testing.T) {
	t.Parallel()

	var hasDeadline bool
	h := middleware.Timeout(0)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		_, hasDeadline = r.Context().Deadline()
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", http.NoBody))

	if hasDeadline {
		t.Error("handler context has a deadline, want none")
	}
}

func TestTimeout_PanicReachesRecovery(t *testing.T) {
	t.Parallel()

	sink := &logSink{}
	boom := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})
	h := middleware.Chain(middleware.Recovery(sink.logger()), middleware.Timeout(time.Second))(boom)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", http.NoBody))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	sink.single(t, "handler panicked")
}
