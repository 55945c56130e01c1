// ABOUTME: Encrypting Store wrapper for sensitive keys (measurements, settings, mood).
// ABOUTME: Seals values with NaCl secretbox and refuses access until the master key is unlocked.
package kv

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/crypto/nacl/secretbox"
)

const (
	keySize    = 32
	nonceSize  = 24
	sealPrefix = "sb1:"

	// keyCheckKey holds a value sealed with the master key. Unlock opens it
	// to prove the key on disk is the one the data was sealed with.
	keyCheckKey   = "__secure_key_check"
	keyCheckValue = "ok"
)

var (
	// ErrDecrypt is returned when a stored value cannot be opened with the current key.
	ErrDecrypt = errors.New("decrypt value")
	// ErrKeyMissing is returned by Unlock when the key file is gone but sealed data remains.
	ErrKeyMissing = errors.New("master key missing for existing encrypted data")
)

// SecureStore encrypts values before handing them to the wrapped Store.
// It follows a "when unlocked" policy: every call fails with ErrLocked
// until Unlock has loaded the master key.
type SecureStore struct {
	inner   Store
	keyPath string

	mu  sync.RWMutex
	key *[keySize]byte
}

var _ Store = (*SecureStore)(nil)

// NewSecureStore wraps inner. The master key lives at keyPath and is
// created on first Unlock.
func NewSecureStore(inner Store, keyPath string) *SecureStore {
	return &SecureStore{inner: inner, keyPath: keyPath}
}

// NewUnlockedSecureStore wraps inner with an in-memory key.
func NewUnlockedSecureStore(inner Store, key [keySize]byte) *SecureStore {
	k := key
	return &SecureStore{inner: inner, key: &k}
}

// GenerateKey returns a random master key.
func GenerateKey() ([keySize]byte, error) {
	var key [keySize]byte
	if _, err := io.ReadFull(rand.Reader, key[:]); err != nil {
		return key, fmt.Errorf("generate key: %w", err)
	}
	return key, nil
}

// Unlock loads the master key from disk and checks it against the sealed
// key-check value. A new key is created only when the wrapped store holds no
// data sealed with a previous one.
func (s *SecureStore) Unlock() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.key != nil {
		return nil
	}
	if s.keyPath == "" {
		return fmt.Errorf("unlock: no key path configured")
	}

	ctx := context.Background()
	check, hasCheck, err := s.inner.Get(ctx, keyCheckKey)
	if err != nil {
		return fmt.Errorf("unlock: read key check: %w", err)
	}

	key, err := readKeyFile(s.keyPath)
	switch {
	case os.IsNotExist(err):
		if hasCheck {
			return fmt.Errorf("unlock: %w: %s", ErrKeyMissing, s.keyPath)
		}
		if key, err = createKeyFile(s.keyPath); err != nil {
			return err
		}
	case err != nil:
		return err
	case hasCheck:
		if _, err := openWith(&key, check); err != nil {
			return fmt.Errorf("unlock: key %s does not match stored data: %w", s.keyPath, err)
		}
		s.key = &key
		return nil
	}

	sealed, err := sealWith(&key, keyCheckValue)
	if err != nil {
		return fmt.Errorf("unlock: %w", err)
	}
	if err := s.inner.Set(ctx, keyCheckKey, sealed); err != nil {
		return fmt.Errorf("unlock: write key check: %w", err)
	}
	s.key = &key
	return nil
}

func readKeyFile(path string) ([keySize]byte, error) {
	var key [keySize]byte
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return key, err
	}
	if err != nil {
		return key, fmt.Errorf("read key: %w", err)
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(string(data)))
	if err != nil || len(raw) != keySize {
		return key, fmt.Errorf("read key: malformed key file %s", path)
	}
	copy(key[:], raw)
	return key, nil
}

func createKeyFile(path string) ([keySize]byte, error) {
	key, err := GenerateKey()
	if err != nil {
		return key, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return key, fmt.Errorf("create key directory: %w", err)
	}
	encoded := base64.StdEncoding.EncodeToString(key[:])
	if err := os.WriteFile(path, []byte(encoded), 0600); err != nil {
		return key, fmt.Errorf("write key: %w", err)
	}
	return key, nil
}

// Lock wipes the master key from memory.
func (s *SecureStore) Lock() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.key != nil {
		for i := range s.key {
			s.key[i] = 0
		}
	}
	s.key = nil
}

// Locked reports whether the master key is absent.
func (s *SecureStore) Locked() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.key == nil
}

func (s *SecureStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.key == nil {
		return "", false, ErrLocked
	}

	sealed, ok, err := s.inner.Get(ctx, key)
	if err != nil || !ok {
		return "", ok, err
	}
	plain, err := s.open(sealed)
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return plain, true, nil
}

func (s *SecureStore) Set(ctx context.Context, key, value string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.key == nil {
		return ErrLocked
	}

	sealed, err := s.seal(value)
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return s.inner.Set(ctx, key, sealed)
}

func (s *SecureStore) Remove(ctx context.Context, key string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.key == nil {
		return ErrLocked
	}
	return s.inner.Remove(ctx, key)
}

// Close locks the store and closes the wrapped Store.
func (s *SecureStore) Close() error {
	s.Lock()
	return s.inner.Close()
}

func (s *SecureStore) seal(plain string) (string, error) {
	return sealWith(s.key, plain)
}

func (s *SecureStore) open(sealed string) (string, error) {
	return openWith(s.key, sealed)
}

func sealWith(key *[keySize]byte, plain string) (string, error) {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}
	box := secretbox.Seal(nonce[:], []byte(plain), &nonce, key)
	return sealPrefix + base64.StdEncoding.EncodeToString(box), nil
}

func openWith(key *[keySize]byte, sealed string) (string, error) {
	if !strings.HasPrefix(sealed, sealPrefix) {
		return "", ErrDecrypt
	}
	box, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(sealed, sealPrefix))
	if err != nil || len(box) < nonceSize+secretbox.Overhead {
		return "", ErrDecrypt
	}
	var nonce [nonceSize]byte
	copy(nonce[:], box[:nonceSize])
	plain, ok := secretbox.Open(nil, box[nonceSize:], &nonce, key)
	if !ok {
		return "", ErrDecrypt
	}
	return string(plain), nil
}
