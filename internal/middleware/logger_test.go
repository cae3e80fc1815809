package middleware

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestRequestsAssignsIDAndLogsStatus(t *testing.T) {
	var buf bytes.Buffer
	var ctxID string
	h := Requests(zerolog.New(&buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxID = RequestIDFromContext(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/donations/mine", nil))

	rid := rec.Header().Get("X-Request-ID")
	if rid == "" {
		t.Fatalf("response lacks X-Request-ID")
	}
	if ctxID != rid {
		t.Fatalf("context id = %q, header id = %q, want equal", ctxID, rid)
	}
	if !strings.Contains(buf.String(), `"status":418`) {
		t.Fatalf("log line = %q, want recorded status 418", buf.String())
	}
}

func TestRequestsHonorsInboundID(t *testing.T) {
	var buf bytes.Buffer
	h := Requests(zerolog.New(&buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/v1/healthz", nil)
	req.Header.Set("X-Request-ID", "inbound-42")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "inbound-42" {
		t.Fatalf("X-Request-ID = %q, want inbound-42", got)
	}
	if !strings.Contains(buf.String(), "inbound-42") {
		t.Fatalf("log line = %q, want inbound id", buf.String())
	}
}

func TestRequestIDFromContextOutsideRequest(t *testing.T) {
	if got := RequestIDFromContext(context.Background()); got != "" {
		t.Fatalf("RequestIDFromContext = %q, want empty", got)
	}
}
