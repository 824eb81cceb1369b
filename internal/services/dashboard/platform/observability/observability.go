// Package observability provides request logging and metrics middleware.
package observability

import (
	"net/http"
	"time"

	"github.com/louisbranch/oauthflow/internal/platform/logging"
	"github.com/louisbranch/oauthflow/internal/services/dashboard/platform/httpx"
	"go.uber.org/zap"
)

// StatusClientClosedRequest is recorded for requests whose client went away
// before any response was written.
const StatusClientClosedRequest = 499

// HTTPRecorder receives one observation per served request.
type HTTPRecorder interface {
	ObserveHTTP(method, route string, status int, elapsed time.Duration)
}

// RequestLogger logs one entry per request with method, path, status, bytes,
// latency and request id, and records request metrics under the label
// returned by route.
func RequestLogger(logger *zap.Logger, recorder HTTPRecorder, route func(string) string) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			started := time.Now()
			sw := &statusWriter{ResponseWriter: w}
			next.ServeHTTP(sw, r)

			status := sw.status
			switch {
			case status == 0 && r.Context().Err() != nil:
				status = StatusClientClosedRequest
			case status == 0:
				status = http.StatusOK
			}
			elapsed := time.Since(started)
			if recorder != nil {
				label := r.URL.Path
				if route != nil {
					label = route(label)
				}
				recorder.ObserveHTTP(r.Method, label, status, elapsed)
			}
			log := logger
			if log == nil {
				log = zap.NewNop()
			}
			fields := []zap.Field{
				logging.Method(r.Method),
				logging.Path(r.URL.Path),
				logging.Status(status),
				logging.Bytes(sw.bytes),
				logging.Latency(elapsed),
				logging.RequestID(httpx.RequestIDFromContext(r.Context())),
			}
			switch {
			case status >= http.StatusInternalServerError:
				log.Error("http request", fields...)
			default:
				log.Info("http request", fields...)
			}
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(status int) {
	if w.status == 0 {
		w.status = status
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusWriter) Write(p []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(p)
	w.bytes += n
	return n, err
}

// Unwrap exposes the underlying writer to http.ResponseController.
func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
