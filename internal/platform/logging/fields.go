package logging

import (
	"time"

	"go.uber.org/zap"
)

// RequestID tags an entry with the correlation id.
func RequestID(v string) zap.Field { return zap.String("request_id", v) }

// Method tags an entry with the HTTP method.
func Method(v string) zap.Field { return zap.String("method", v) }

// Path tags an entry with the request path.
func Path(v string) zap.Field { return zap.String("path", v) }

// Status tags an entry with the HTTP status.
func Status(v int) zap.Field { return zap.Int("status", v) }

// Bytes tags an entry with the response size.
func Bytes(v int) zap.Field { return zap.Int("bytes", v) }

// Latency tags an entry with elapsed time.
func Latency(v time.Duration) zap.Field { return zap.Duration("latency", v) }

// Consumer tags an entry with the UI surface that owns a probe.
func Consumer(v string) zap.Field { return zap.String("consumer", v) }

// Outcome tags an entry with a probe outcome.
func Outcome(v string) zap.Field { return zap.String("outcome", v) }
