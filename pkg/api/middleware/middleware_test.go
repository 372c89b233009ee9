package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/calligan/netgraph/pkg/logging"
)

func TestRequestID_Generated(t *testing.T) {
	var captured string
	handler := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = GetRequestID(r)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if captured == "" {
		t.Error("Expected a generated request ID in context")
	}
	if rec.Header().Get(RequestIDHeader) != captured {
		t.Errorf("Response header %q does not match context ID %q",
			rec.Header().Get(RequestIDHeader), captured)
	}
}

func TestRequestID_ClientSupplied(t *testing.T) {
	handler := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "client-id-42")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get(RequestIDHeader); got != "client-id-42" {
		t.Errorf("Expected client ID to survive, got %q", got)
	}
}

func TestRequestID_Sanitized(t *testing.T) {
	handler := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "evil\nid<script>")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get(RequestIDHeader); got != "evilidscript" {
		t.Errorf("Expected sanitized ID, got %q", got)
	}
}

func TestPanicRecovery(t *testing.T) {
	handler := PanicRecovery(logging.NewNopLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("Expected 500 after panic, got %d", rec.Code)
	}
}

type fakeRecorder struct {
	requests int
	inFlight int
	size     float64
}

func (f *fakeRecorder) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	f.requests++
}
func (f *fakeRecorder) RecordResponseSize(method, path string, size float64) { f.size = size }
func (f *fakeRecorder) IncHTTPRequestsInFlight()                             { f.inFlight++ }
func (f *fakeRecorder) DecHTTPRequestsInFlight()                             { f.inFlight-- }

func TestMetrics(t *testing.T) {
	rec := &fakeRecorder{}
	handler := Metrics(rec)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("hello"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if rec.requests != 1 {
		t.Errorf("Expected 1 recorded request, got %d", rec.requests)
	}
	if rec.inFlight != 0 {
		t.Errorf("Expected in-flight gauge back at 0, got %d", rec.inFlight)
	}
	if rec.size != 5 {
		t.Errorf("Expected response size 5, got %v", rec.size)
	}
}

func TestMetrics_NilRecorder(t *testing.T) {
	handler := Metrics(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusNoContent {
		t.Errorf("Expected handler to run with nil recorder, got %d", rec.Code)
	}
}

func TestLogging_DoesNotBreakChain(t *testing.T) {
	handler := Logging(logging.NewNopLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusTeapot {
		t.Errorf("Expected 418, got %d", rec.Code)
	}
}
