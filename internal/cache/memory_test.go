package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMemory()
	m.now = func() time.Time { return now }

	if err := m.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	tests := []struct {
		name    string
		advance time.Duration
		wantHit bool
	}{
		{"fresh", 0, true},
		{"before ttl", 59 * time.Second, true},
		{"at ttl", time.Second, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now = now.Add(tt.advance)
			val, ok, err := m.Get(ctx, "k")
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			if ok != tt.wantHit {
				t.Fatalf("hit = %v, want %v", ok, tt.wantHit)
			}
			if ok && string(val) != "v" {
				t.Errorf("val = %q", val)
			}
		})
	}
}

func TestMemoryMissAndNoTTL(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	if _, ok, _ := m.Get(ctx, "absent"); ok {
		t.Error("expected miss for unknown key")
	}

	_ = m.Set(ctx, "k", []byte("v"), 0)
	m.now = func() time.Time { return time.Now().Add(24 * 365 * time.Hour) }
	if _, ok, _ := m.Get(ctx, "k"); !ok {
		t.Error("entry without ttl expired")
	}
}
