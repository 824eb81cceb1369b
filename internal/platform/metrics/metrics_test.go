package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveProbeCountsByConsumerAndOutcome(t *testing.T) {
	t.Parallel()

	reg, err := New()
	require.NoError(t, err)

	reg.ObserveProbe("nav", "authenticated", 10*time.Millisecond)
	reg.ObserveProbe("nav", "authenticated", 20*time.Millisecond)
	reg.ObserveProbe("gate", "unauthenticated", 5*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(reg.probeOutcomes.WithLabelValues("nav", "authenticated")))
	assert.Equal(t, 1.0, testutil.ToFloat64(reg.probeOutcomes.WithLabelValues("gate", "unauthenticated")))
}

func TestObserveDiscardAndDataFetch(t *testing.T) {
	t.Parallel()

	reg, err := New()
	require.NoError(t, err)

	reg.ObserveDiscard("gate")
	reg.ObserveDataFetch("products", false)
	reg.ObserveDataFetch("products", true)

	assert.Equal(t, 1.0, testutil.ToFloat64(reg.probeDiscards.WithLabelValues("gate")))
	assert.Equal(t, 1.0, testutil.ToFloat64(reg.dataFetches.WithLabelValues("products", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(reg.dataFetches.WithLabelValues("products", "ok")))
}

func TestNilRegistryIsInert(t *testing.T) {
	t.Parallel()

	var reg *Registry
	reg.ObserveHTTP(http.MethodGet, "/", http.StatusOK, time.Millisecond)
	reg.ObserveProbe("nav", "authenticated", time.Millisecond)
	reg.ObserveDiscard("nav")
	reg.ObserveDataFetch("hello", true)

	rr := httptest.NewRecorder()
	reg.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHandlerExposesCollectors(t *testing.T) {
	t.Parallel()

	reg, err := New()
	require.NoError(t, err)
	reg.ObserveHTTP(http.MethodGet, "/me", http.StatusOK, time.Millisecond)

	rr := httptest.NewRecorder()
	reg.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.True(t, strings.Contains(body, `oauthflow_http_requests_total{method="GET",route="/me",status="200"} 1`), body)
}
