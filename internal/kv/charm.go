// ABOUTME: Charm KV backed Store with E2E-encrypted cloud sync.
// ABOUTME: Syncs after every write and degrades to read-only when another process holds the lock.
package kv

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/charm/client"
	charmkv "github.com/charmbracelet/charm/kv"
	"github.com/dgraph-io/badger/v3"
)

const (
	// CharmDBName is the Charm KV database name.
	CharmDBName = "yoroi"
	charmHost   = "charm.2389.dev"
)

// CharmStore wraps a Charm KV database.
type CharmStore struct {
	kv       *charmkv.KV
	autoSync bool
	mu       sync.RWMutex
}

var _ Store = (*CharmStore)(nil)

// OpenCharm opens the yoroi Charm KV database and pulls remote state.
func OpenCharm() (*CharmStore, error) {
	if os.Getenv("CHARM_HOST") == "" {
		if err := os.Setenv("CHARM_HOST", charmHost); err != nil {
			return nil, fmt.Errorf("set charm host: %w", err)
		}
	}

	db, err := charmkv.OpenWithDefaultsFallback(CharmDBName)
	if err != nil {
		return nil, fmt.Errorf("open charm kv: %w", err)
	}

	c := &CharmStore{kv: db, autoSync: true}
	if !db.IsReadOnly() {
		_ = db.Sync()
	}
	return c, nil
}

func (c *CharmStore) Get(ctx context.Context, key string) (string, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	val, err := c.kv.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return string(val), true, nil
}

func (c *CharmStore) Set(ctx context.Context, key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.kv.IsReadOnly() {
		return ErrReadOnly
	}
	if err := c.kv.Set([]byte(key), []byte(value)); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	c.syncIfEnabled()
	return nil
}

func (c *CharmStore) Remove(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.kv.IsReadOnly() {
		return ErrReadOnly
	}
	if err := c.kv.Delete([]byte(key)); err != nil {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	c.syncIfEnabled()
	return nil
}

// Close closes the KV database connection.
func (c *CharmStore) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.kv != nil {
		return c.kv.Close()
	}
	return nil
}

// IsReadOnly returns true if another process (like the MCP server) holds the lock.
func (c *CharmStore) IsReadOnly() bool {
	return c.kv.IsReadOnly()
}

// Sync synchronizes local state with Charm Cloud.
func (c *CharmStore) Sync() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.kv.IsReadOnly() {
		return nil
	}
	return c.kv.Sync()
}

func (c *CharmStore) syncIfEnabled() {
	if c.autoSync && !c.kv.IsReadOnly() {
		_ = c.kv.Sync()
	}
}

// SetAutoSync enables or disables automatic sync after writes.
func (c *CharmStore) SetAutoSync(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.autoSync = enabled
}

// ID returns the Charm user ID for the current account.
func (c *CharmStore) ID() (string, error) {
	cc, err := client.NewClientWithDefaults()
	if err != nil {
		return "", fmt.Errorf("create charm client: %w", err)
	}
	return cc.ID()
}

// KeyCount reports how many keys the local replica holds.
func (c *CharmStore) KeyCount() (int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	keys, err := c.kv.Keys()
	if err != nil {
		return 0, fmt.Errorf("list keys: %w", err)
	}
	return len(keys), nil
}

// Reset wipes local data and rebuilds from Charm Cloud.
func (c *CharmStore) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.kv.Reset()
}
