package session

import (
	"context"
	"sync"
	"time"

	"github.com/louisbranch/oauthflow/internal/platform/logging"
	"github.com/louisbranch/oauthflow/internal/services/dashboard/backend"
	"go.uber.org/zap"
)

// Observer is notified once when a mount applies its resolved state.
type Observer func(State)

// Recorder receives probe outcomes and discards.
type Recorder interface {
	ObserveProbe(consumer, outcome string, elapsed time.Duration)
	ObserveDiscard(consumer string)
}

// Option configures a Mount.
type Option func(*Mount)

// WithConsumer names the UI surface that owns the mount.
func WithConsumer(name string) Option {
	return func(m *Mount) {
		if name != "" {
			m.consumer = name
		}
	}
}

// WithObserver registers fn to run after the resolved state is applied.
func WithObserver(fn Observer) Option {
	return func(m *Mount) {
		if fn != nil {
			m.observers = append(m.observers, fn)
		}
	}
}

// WithLogger sets the logger used for probe outcomes and discards.
func WithLogger(logger *zap.Logger) Option {
	return func(m *Mount) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithRecorder sets the metrics sink.
func WithRecorder(recorder Recorder) Option {
	return func(m *Mount) {
		if recorder != nil {
			m.recorder = recorder
		}
	}
}

// Mount is one consumer's live instance of the session probe. Its state is
// Loading until the probe resolves, and it transitions at most once.
type Mount struct {
	consumer  string
	logger    *zap.Logger
	recorder  Recorder
	observers []Observer

	mu      sync.Mutex
	state   State
	live    bool
	applied bool

	cancel context.CancelFunc
	done   chan struct{}
}

// Start mounts a consumer and begins its probe on a new goroutine. The mount
// unmounts itself when ctx is cancelled.
func Start(ctx context.Context, resolver Resolver, creds backend.Credentials, opts ...Option) *Mount {
	if ctx == nil {
		ctx = context.Background()
	}
	m := &Mount{
		consumer: "unknown",
		state:    Loading(),
		live:     true,
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = logging.FromContext(ctx, nil)
	}

	probeCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	context.AfterFunc(probeCtx, m.Unmount)

	go m.run(probeCtx, resolver, creds)
	return m
}

func (m *Mount) run(ctx context.Context, resolver Resolver, creds backend.Credentials) {
	defer close(m.done)

	started := time.Now()
	var state State
	if resolver == nil {
		state = TransientError("session probe is not configured")
	} else {
		state = resolver.Probe(ctx, creds)
	}
	elapsed := time.Since(started)

	m.mu.Lock()
	if !m.live || ctx.Err() != nil {
		m.mu.Unlock()
		m.discard(state)
		return
	}
	m.state = state
	m.applied = true
	observers := m.observers
	m.mu.Unlock()

	if m.recorder != nil {
		m.recorder.ObserveProbe(m.consumer, state.Kind.String(), elapsed)
	}
	fields := []zap.Field{logging.Consumer(m.consumer), logging.Outcome(state.Kind.String()), logging.Latency(elapsed)}
	if state.Detail != "" {
		fields = append(fields, zap.String("detail", state.Detail))
	}
	m.logger.Debug("session probe resolved", fields...)

	for _, fn := range observers {
		fn(state)
	}
}

func (m *Mount) discard(state State) {
	if m.recorder != nil {
		m.recorder.ObserveDiscard(m.consumer)
	}
	m.logger.Debug("session probe result discarded after unmount",
		logging.Consumer(m.consumer),
		logging.Outcome(state.Kind.String()),
	)
}

// Consumer returns the owning surface name.
func (m *Mount) Consumer() string { return m.consumer }

// State returns the consumer's current local state.
func (m *Mount) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Live reports whether the mount has not been unmounted.
func (m *Mount) Live() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.live
}

// Done is closed once the probe finished, whether applied or discarded.
func (m *Mount) Done() <-chan struct{} { return m.done }

// Wait blocks until the probe finishes or ctx ends. It returns the resolved
// state and true when the result was applied; false means the mount was
// unmounted first and the caller must not render.
func (m *Mount) Wait(ctx context.Context) (State, bool) {
	select {
	case <-m.done:
	case <-ctx.Done():
		return m.State(), false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state, m.applied
}

// Unmount marks the mount dead and cancels its probe. It is idempotent.
func (m *Mount) Unmount() {
	m.mu.Lock()
	if !m.live {
		m.mu.Unlock()
		return
	}
	m.live = false
	m.mu.Unlock()
	m.cancel()
}
