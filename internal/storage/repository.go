package storage

import (
	"context"
	"errors"
)

var (
	ErrNotFound      = errors.New("storage: not found")
	ErrQuotaExceeded = errors.New("storage: quota exceeded")
)

// DefaultQuotaBytes bounds the total size of all keys and values in a store.
const DefaultQuotaBytes = 5 * 1024 * 1024

// KV is a synchronous, per-device string store. Set replaces the whole value
// or fails without touching the previous one.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

func entrySize(key, value string) int64 {
	return int64(len(key) + len(value))
}
