package sessionprobe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/louisbranch/oauthflow/internal/services/dashboard/backend"
	module "github.com/louisbranch/oauthflow/internal/services/dashboard/module"
	"github.com/louisbranch/oauthflow/internal/services/dashboard/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingResolver struct {
	mu      sync.Mutex
	cookies []string
	state   session.State
	block   chan struct{}
}

func (r *recordingResolver) Probe(ctx context.Context, creds backend.Credentials) session.State {
	r.mu.Lock()
	for _, c := range creds.Cookies {
		r.cookies = append(r.cookies, c.Name+"="+c.Value)
	}
	r.mu.Unlock()
	if r.block != nil {
		<-r.block
	}
	return r.state
}

type discardCounter struct {
	mu       sync.Mutex
	discards int
	probes   int
}

func (d *discardCounter) ObserveProbe(string, string, time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.probes++
}

func (d *discardCounter) ObserveDiscard(string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.discards++
}

func (d *discardCounter) ObserveDataFetch(string, bool) {}

func TestResolveForwardsCookiesAndReturnsState(t *testing.T) {
	t.Parallel()

	resolver := &recordingResolver{state: session.Unauthenticated()}
	counter := &discardCounter{}
	req := httptest.NewRequest(http.MethodGet, "/fragments/nav", nil)
	req.AddCookie(&http.Cookie{Name: "JSESSIONID", Value: "s1"})

	state, ok := Resolve(req, module.Dependencies{Sessions: resolver, Metrics: counter}, "nav")

	require.True(t, ok)
	assert.Equal(t, session.Unauthenticated(), state)
	assert.Equal(t, []string{"JSESSIONID=s1"}, resolver.cookies)
	assert.Equal(t, 1, counter.probes)
}

func TestResolveReportsCancelledRequest(t *testing.T) {
	t.Parallel()

	resolver := &recordingResolver{state: session.Authenticated(session.Profile{Name: "Ada"}), block: make(chan struct{})}
	counter := &discardCounter{}
	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/fragments/me", nil).WithContext(ctx)

	done := make(chan bool, 1)
	go func() {
		_, ok := Resolve(req, module.Dependencies{Sessions: resolver, Metrics: counter}, "gate")
		done <- ok
	}()
	cancel()
	select {
	case ok := <-done:
		assert.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("Resolve did not return after cancellation")
	}
	close(resolver.block)
	require.Eventually(t, func() bool {
		counter.mu.Lock()
		defer counter.mu.Unlock()
		return counter.discards == 1
	}, 5*time.Second, time.Millisecond)
	counter.mu.Lock()
	assert.Equal(t, 0, counter.probes)
	counter.mu.Unlock()
}
