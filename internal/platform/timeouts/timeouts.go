// Package timeouts defines shared timeout constants for the dashboard process.
package timeouts

import "time"

// ReadHeader limits how long the HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long the HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second

// TelemetryFlush caps the time spent flushing spans on exit.
const TelemetryFlush = 3 * time.Second
