package otel

import (
	"context"
	"strings"
	"testing"
)

func TestNewProviders_EmptyEndpoint(t *testing.T) {
	p, err := NewProviders(context.Background(), "", "user-dashboard", false)
	if err != nil {
		t.Fatalf("NewProviders: %v", err)
	}
	if p.TracerProvider == nil || p.MeterProvider == nil {
		t.Fatal("empty endpoint should still return usable providers")
	}
	if err := p.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
}

func TestNewProviders_WhitespaceEndpoint(t *testing.T) {
	p, err := NewProviders(context.Background(), "   ", "user-dashboard", false)
	if err != nil {
		t.Fatalf("NewProviders: %v", err)
	}
	if err := p.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
}

func TestNewProviders_MissingHost(t *testing.T) {
	_, err := NewProviders(context.Background(), "http://", "user-dashboard", false)
	if err == nil {
		t.Fatal("expected error for endpoint without host")
	}
	if !strings.Contains(err.Error(), "missing host") {
		t.Fatalf("error = %q", err.Error())
	}
}

func TestNewProviders_EndpointWithPath(t *testing.T) {
	// The exporter dials lazily, so constructing against an unreachable
	// collector succeeds; only the host:port is used for the dial target.
	p, err := NewProviders(context.Background(), "http://localhost:4317/v1/traces", "user-dashboard", false)
	if err != nil {
		t.Fatalf("NewProviders: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_ = p.Shutdown(ctx)
}

func TestSetGlobal(t *testing.T) {
	p, err := NewProviders(context.Background(), "", "user-dashboard", false)
	if err != nil {
		t.Fatalf("NewProviders: %v", err)
	}
	p.SetGlobal()
	_ = p.Shutdown(context.Background())
}
