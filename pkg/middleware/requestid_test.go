package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRequestID_AssignsIDWhenAbsent(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestIDFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if seen == "" {
		t.Fatal("expected a generated request id in context")
	}
	if got := rec.Header().Get(HeaderRequestID); got != seen {
		t.Fatalf("expected response header %q to match context id %q", got, seen)
	}
}

func TestRequestID_PreservesCallerID(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "caller-supplied-id")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if seen != "caller-supplied-id" {
		t.Fatalf("expected caller id to be preserved, got %q", seen)
	}
	if got := rec.Header().Get(HeaderRequestID); got != "caller-supplied-id" {
		t.Fatalf("expected response header to echo caller id, got %q", got)
	}
}

func TestGetRequestIDFromContext_EmptyWithoutMiddleware(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := GetRequestIDFromContext(req.Context()); got != "" {
		t.Fatalf("expected empty id, got %q", got)
	}
}
