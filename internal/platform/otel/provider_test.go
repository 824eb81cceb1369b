package otel_test

import (
	"context"
	"testing"

	"github.com/louisbranch/oauthflow/internal/platform/otel"
)

func TestConfigEnabled(t *testing.T) {
	cases := []struct {
		name string
		cfg  otel.Config
		want bool
	}{
		{name: "empty endpoint", cfg: otel.Config{}, want: false},
		{name: "blank endpoint", cfg: otel.Config{Endpoint: "   "}, want: false},
		{name: "disabled", cfg: otel.Config{Endpoint: "http://localhost:4318", Disabled: true}, want: false},
		{name: "enabled", cfg: otel.Config{Endpoint: "http://localhost:4318"}, want: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.cfg.Enabled(); got != tc.want {
				t.Fatalf("Enabled() = %t, want %t", got, tc.want)
			}
		})
	}
}

func TestSetup_NoopWhenEndpointEmpty(t *testing.T) {
	shutdown, err := otel.Setup(context.Background(), "test-service", otel.Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetup_NoopWhenExplicitlyDisabled(t *testing.T) {
	shutdown, err := otel.Setup(context.Background(), "test-service", otel.Config{
		Endpoint: "http://localhost:4318",
		Disabled: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}
