// ABOUTME: Shared helpers for storage tests.
// ABOUTME: Builds stores over in-memory backends with a fixed clock.
package storage

import (
	"context"
	"testing"
	"time"

	"github.com/harperreed/yoroi/internal/kv"
)

var fixedNow = time.Date(2026, 2, 15, 10, 0, 0, 0, time.Local)

func setupTestStore(t *testing.T) (*Store, *kv.MemoryStore, *kv.MemoryStore) {
	t.Helper()
	plain := kv.NewMemoryStore()
	secure := kv.NewMemoryStore()
	s := New(plain, secure, WithClock(func() time.Time { return fixedNow }))
	t.Cleanup(func() { _ = s.Close() })
	return s, plain, secure
}

func rawSet(t *testing.T, s kv.Store, key, value string) {
	t.Helper()
	if err := s.Set(context.Background(), key, value); err != nil {
		t.Fatalf("Set(%s) failed: %v", key, err)
	}
}
