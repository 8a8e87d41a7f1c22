package storage

import (
	"context"
	"fmt"
)

// MemoryKV keeps values in process memory. Used for --ephemeral sessions and
// tests.
type MemoryKV struct {
	values     map[string]string
	quotaBytes int64
}

func NewMemoryKV(quotaBytes int64) *MemoryKV {
	return &MemoryKV{values: make(map[string]string), quotaBytes: quotaBytes}
}

func (m *MemoryKV) Get(_ context.Context, key string) (string, error) {
	v, ok := m.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *MemoryKV) Set(_ context.Context, key, value string) error {
	if m.quotaBytes > 0 {
		var others int64
		for k, v := range m.values {
			if k != key {
				others += entrySize(k, v)
			}
		}
		if others+entrySize(key, value) > m.quotaBytes {
			return fmt.Errorf("%w: writing %q needs %d bytes, quota is %d", ErrQuotaExceeded, key, others+entrySize(key, value), m.quotaBytes)
		}
	}
	m.values[key] = value
	return nil
}

func (m *MemoryKV) Delete(_ context.Context, key string) error {
	if _, ok := m.values[key]; !ok {
		return ErrNotFound
	}
	delete(m.values, key)
	return nil
}
