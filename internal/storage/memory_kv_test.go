package storage

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryKVQuota(t *testing.T) {
	kv := NewMemoryKV(10)
	ctx := context.Background()

	if err := kv.Set(ctx, "a", "1234"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := kv.Set(ctx, "b", "123456"); !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("expected ErrQuotaExceeded, got: %v", err)
	}
	if _, err := kv.Get(ctx, "b"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected rejected key to be absent, got: %v", err)
	}
	if err := kv.Set(ctx, "a", "123456789"); err != nil {
		t.Fatalf("replace within quota: %v", err)
	}
	if err := kv.Delete(ctx, "a"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := kv.Delete(ctx, "a"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}
