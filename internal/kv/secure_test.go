// ABOUTME: Tests for the encrypting secure store wrapper.
// ABOUTME: Covers lock policy, ciphertext at rest, key persistence, and tamper detection.
package kv

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSecureStoreContract(t *testing.T) {
	key, err := GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey failed: %v", err)
	}
	s := NewUnlockedSecureStore(NewMemoryStore(), key)
	defer s.Close()
	testStoreContract(t, s)
}

func TestSecureStoreLockedByDefault(t *testing.T) {
	s := NewSecureStore(NewMemoryStore(), filepath.Join(t.TempDir(), "master.key"))
	ctx := context.Background()

	if !s.Locked() {
		t.Fatal("new secure store should be locked")
	}
	if _, _, err := s.Get(ctx, "k"); !errors.Is(err, ErrLocked) {
		t.Errorf("Get while locked = %v, want ErrLocked", err)
	}
	if err := s.Set(ctx, "k", "v"); !errors.Is(err, ErrLocked) {
		t.Errorf("Set while locked = %v, want ErrLocked", err)
	}
	if err := s.Remove(ctx, "k"); !errors.Is(err, ErrLocked) {
		t.Errorf("Remove while locked = %v, want ErrLocked", err)
	}
}

func TestSecureStoreEncryptsAtRest(t *testing.T) {
	inner := NewMemoryStore()
	key, _ := GenerateKey()
	s := NewUnlockedSecureStore(inner, key)
	ctx := context.Background()

	if err := s.Set(ctx, "@yoroi_measurements", `[{"weight":80}]`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	raw, ok, _ := inner.Get(ctx, "@yoroi_measurements")
	if !ok {
		t.Fatal("inner store missing value")
	}
	if strings.Contains(raw, "weight") {
		t.Errorf("inner value is not encrypted: %q", raw)
	}
}

func TestSecureStoreUnlockPersistsKey(t *testing.T) {
	dir := t.TempDir()
	keyPath := filepath.Join(dir, "master.key")
	inner := NewMemoryStore()
	ctx := context.Background()

	s := NewSecureStore(inner, keyPath)
	if err := s.Unlock(); err != nil {
		t.Fatalf("Unlock failed: %v", err)
	}
	if err := s.Set(ctx, "@yoroi_mood_log", `[]`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	info, err := os.Stat(keyPath)
	if err != nil {
		t.Fatalf("key file missing: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("key file perm = %o, want 600", perm)
	}

	s.Lock()
	if _, _, err := s.Get(ctx, "@yoroi_mood_log"); !errors.Is(err, ErrLocked) {
		t.Errorf("Get after Lock = %v, want ErrLocked", err)
	}

	again := NewSecureStore(inner, keyPath)
	if err := again.Unlock(); err != nil {
		t.Fatalf("second Unlock failed: %v", err)
	}
	got, ok, err := again.Get(ctx, "@yoroi_mood_log")
	if err != nil || !ok || got != `[]` {
		t.Errorf("Get with reloaded key = %q, %v, %v", got, ok, err)
	}
}

func TestSecureStoreWrongKey(t *testing.T) {
	inner := NewMemoryStore()
	ctx := context.Background()
	k1, _ := GenerateKey()
	k2, _ := GenerateKey()

	if err := NewUnlockedSecureStore(inner, k1).Set(ctx, "k", "secret"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if _, _, err := NewUnlockedSecureStore(inner, k2).Get(ctx, "k"); !errors.Is(err, ErrDecrypt) {
		t.Errorf("Get with wrong key = %v, want ErrDecrypt", err)
	}
}

func TestSecureStorePlaintextValueRejected(t *testing.T) {
	inner := NewMemoryStore()
	ctx := context.Background()
	_ = inner.Set(ctx, "k", "not sealed")
	key, _ := GenerateKey()

	if _, _, err := NewUnlockedSecureStore(inner, key).Get(ctx, "k"); !errors.Is(err, ErrDecrypt) {
		t.Errorf("Get plaintext = %v, want ErrDecrypt", err)
	}
}

func TestSecureStoreUnlockRefusesNewKeyOverSealedData(t *testing.T) {
	dir := t.TempDir()
	keyPath := filepath.Join(dir, "master.key")
	inner := NewMemoryStore()
	ctx := context.Background()

	s := NewSecureStore(inner, keyPath)
	if err := s.Unlock(); err != nil {
		t.Fatalf("Unlock failed: %v", err)
	}
	if err := s.Set(ctx, "@yoroi_measurements", `[{"id":"m1","weight":82}]`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	s.Lock()

	if err := os.Remove(keyPath); err != nil {
		t.Fatalf("Remove key failed: %v", err)
	}
	again := NewSecureStore(inner, keyPath)
	if err := again.Unlock(); !errors.Is(err, ErrKeyMissing) {
		t.Fatalf("Unlock without key file = %v, want ErrKeyMissing", err)
	}
	if !again.Locked() {
		t.Error("store should stay locked")
	}
	if _, err := os.Stat(keyPath); !os.IsNotExist(err) {
		t.Errorf("a new key file was written: %v", err)
	}
}

func TestSecureStoreUnlockRejectsForeignKeyFile(t *testing.T) {
	dir := t.TempDir()
	keyPath := filepath.Join(dir, "master.key")
	inner := NewMemoryStore()

	if err := NewSecureStore(inner, keyPath).Unlock(); err != nil {
		t.Fatalf("Unlock failed: %v", err)
	}

	other := filepath.Join(t.TempDir(), "other.key")
	if err := NewSecureStore(NewMemoryStore(), other).Unlock(); err != nil {
		t.Fatalf("Unlock other failed: %v", err)
	}
	data, err := os.ReadFile(other)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if err := os.WriteFile(keyPath, data, 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	s := NewSecureStore(inner, keyPath)
	if err := s.Unlock(); !errors.Is(err, ErrDecrypt) {
		t.Errorf("Unlock with foreign key = %v, want ErrDecrypt", err)
	}
	if !s.Locked() {
		t.Error("store should stay locked")
	}
}
