package observability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/louisbranch/oauthflow/internal/services/dashboard/platform/httpx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeRecorder struct {
	method, route string
	status        int
	calls         int
}

func (f *fakeRecorder) ObserveHTTP(method, route string, status int, _ time.Duration) {
	f.method, f.route, f.status = method, route, status
	f.calls++
}

func TestRequestLoggerLogsMethodAndPath(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	h := httpx.Chain(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}), httpx.RequestID(nil), RequestLogger(zap.New(core), nil, nil))

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	req.Header.Set("X-Request-ID", "req-123")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNoContent)
	}
	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	want := map[string]any{"method": "GET", "path": "/products", "status": int64(204), "request_id": "req-123"}
	for key, value := range want {
		if fields[key] != value {
			t.Fatalf("field %s = %v, want %v", key, fields[key], value)
		}
	}
}

func TestRequestLoggerCapturesImplicitStatusOKAndBytes(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	recorder := &fakeRecorder{}
	h := RequestLogger(zap.New(core), recorder, func(string) string { return "/healthz" })(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	fields := logs.All()[0].ContextMap()
	if fields["status"] != int64(200) || fields["bytes"] != int64(2) {
		t.Fatalf("fields = %v, want status 200 and 2 bytes", fields)
	}
	if _, ok := fields["latency"]; !ok {
		t.Fatalf("fields missing latency: %v", fields)
	}
	if recorder.calls != 1 || recorder.route != "/healthz" || recorder.status != http.StatusOK {
		t.Fatalf("recorder = %+v", recorder)
	}
}

func TestRequestLoggerLogsServerErrorsAtErrorLevel(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	h := RequestLogger(zap.New(core), nil, nil)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if got := logs.All()[0].Level; got != zapcore.ErrorLevel {
		t.Fatalf("level = %v, want error", got)
	}
}

func TestRequestLoggerRecordsClientClosedWhenNothingWritten(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	recorder := &fakeRecorder{}
	h := RequestLogger(zap.New(core), recorder, nil)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/fragments/me", nil).WithContext(ctx))

	if recorder.status != StatusClientClosedRequest {
		t.Fatalf("recorded status = %d, want %d", recorder.status, StatusClientClosedRequest)
	}
	if got := logs.All()[0].ContextMap()["status"]; got != int64(StatusClientClosedRequest) {
		t.Fatalf("logged status = %v, want %d", got, StatusClientClosedRequest)
	}
}

func TestRequestLoggerSeesRecoveredPanicAsServerError(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	recorder := &fakeRecorder{}
	logger := zap.New(core)
	h := httpx.Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}), httpx.RequestID(logger), RequestLogger(logger, recorder, nil), httpx.RecoverPanic(logger))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/explode", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusInternalServerError)
	}
	if recorder.calls != 1 || recorder.status != http.StatusInternalServerError {
		t.Fatalf("recorder = %+v", recorder)
	}
	entries := logs.FilterMessage("http request").All()
	if len(entries) != 1 || entries[0].Level != zapcore.ErrorLevel {
		t.Fatalf("request log entries = %v, want one error entry", entries)
	}
	if logs.FilterMessage("panic recovered").Len() != 1 {
		t.Fatalf("panic was not logged")
	}
}
