package storage

import (
	"testing"
)

func TestMemoryBackendAllow(t *testing.T) {
	t.Parallel()

	m := NewMemoryBackend(1, 2)
	t.Cleanup(func() { _ = m.Close() })

	ctx := t.Context()
	for i := range 2 {
		res, err := m.Allow(ctx, "203.0.113.1")
		if err != nil {
			t.Fatalf("Allow() error = %v", err)
		}
		if !res.Allowed {
			t.Fatalf("request %d within burst was rejected", i)
		}
	}

	res, err := m.Allow(ctx, "203.0.113.1")
	if err != nil {
		t.Fatalf("Allow() error = %v", err)
	}
	if res.Allowed {
		t.Fatal("request beyond burst was allowed")
	}
	if res.RetryAfter <= 0 {
		t.Errorf("RetryAfter = %v, want > 0", res.RetryAfter)
	}

	other, err := m.Allow(ctx, "203.0.113.2")
	if err != nil {
		t.Fatalf("Allow() error = %v", err)
	}
	if !other.Allowed {
		t.Error("independent key was rejected")
	}
}

func TestMemoryBackendCloseIsIdempotent(t *testing.T) {
	t.Parallel()

	m := NewMemoryBackend(1, 1)
	if err := m.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := m.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}
}
