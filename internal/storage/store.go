// ABOUTME: Store owns the plain and secure backends and hosts every repository operation.
// ABOUTME: Mutations of one key are serialized through a per-key mutex.
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harperreed/yoroi/internal/kv"
	"github.com/harperreed/yoroi/internal/logging"
)

var (
	// ErrInvalidDate is returned when a date is not YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")
	// ErrNotFound is returned by prefix lookups that match nothing.
	ErrNotFound = errors.New("not found")
	// ErrAmbiguous is returned by prefix lookups that match several records.
	ErrAmbiguous = errors.New("ambiguous id prefix")
)

// Store implements Repository over two kv backends.
type Store struct {
	plain  kv.Store
	secure kv.Store
	log    *log.Logger
	now    func() time.Time
	locks  keyLocks
}

var _ Repository = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for degraded reads.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New returns a Store over the given backends.
func New(plain, secure kv.Store, opts ...Option) *Store {
	s := &Store{
		plain:  plain,
		secure: secure,
		log:    logging.Discard(),
		now:    time.Now,
		locks:  keyLocks{m: make(map[string]*sync.Mutex)},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewMemory returns a Store over two in-memory backends.
func NewMemory(opts ...Option) *Store {
	return New(kv.NewMemoryStore(), kv.NewMemoryStore(), opts...)
}

// Close closes both backends.
func (s *Store) Close() error {
	return errors.Join(s.plain.Close(), s.secure.Close())
}

func (s *Store) backend(key string) kv.Store {
	if IsSecureKey(key) {
		return s.secure
	}
	return s.plain
}

func (s *Store) today() string {
	return s.now().Format("2006-01-02")
}

// DataDir returns the default data directory following XDG spec.
func DataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "yoroi")
}

// keyLocks hands out one mutex per storage key.
type keyLocks struct {
	mu sync.Mutex
	m  map[string]*sync.Mutex
}

func (k *keyLocks) lock(key string) func() {
	k.mu.Lock()
	l, ok := k.m[key]
	if !ok {
		l = &sync.Mutex{}
		k.m[key] = l
	}
	k.mu.Unlock()
	l.Lock()
	return l.Unlock
}

// mutate runs fn while holding key's lock.
func (s *Store) mutate(ctx context.Context, key string, fn func() error) error {
	unlock := s.locks.lock(key)
	defer unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn()
}

func resolvePrefix(ids []string, prefix string) (string, error) {
	var match string
	for _, id := range ids {
		if id == prefix {
			return id, nil
		}
		if len(prefix) > 0 && len(id) >= len(prefix) && id[:len(prefix)] == prefix {
			if match != "" {
				return "", fmt.Errorf("%w %s: matches multiple records", ErrAmbiguous, prefix)
			}
			match = id
		}
	}
	if match == "" {
		return "", fmt.Errorf("%w: %s", ErrNotFound, prefix)
	}
	return match, nil
}
