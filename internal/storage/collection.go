// ABOUTME: Generic JSON collection loading and saving over a kv.Store.
// ABOUTME: Reads degrade to empty; read-modify-write paths refuse to overwrite what they cannot read.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

type normalizer[T any] interface {
	*T
	Normalize()
}

// idBackfiller is implemented by records that carry an ID.
type idBackfiller interface {
	BackfillID(id string)
}

// legacyIDSpace namespaces the IDs derived for records stored without one.
var legacyIDSpace = uuid.MustParse("6f3b1c9e-2d4a-5b8e-9c17-0a5e4d3f2b61")

// derivedID is stable for a given stored element, so a listed ID still
// resolves on the next read. n separates identical elements.
func derivedID(key, raw string, n int) string {
	return uuid.NewSHA1(legacyIDSpace, []byte(fmt.Sprintf("%s|%d|%s", key, n, raw))).String()
}

// stored is a collection read for a read-modify-write. Elements that do not
// decode are carried verbatim and written back after the decoded ones.
type stored[T any] struct {
	items  []T
	opaque []json.RawMessage
}

func (c stored[T]) MarshalJSON() ([]byte, error) {
	out := make([]json.RawMessage, 0, len(c.items)+len(c.opaque))
	for _, item := range c.items {
		data, err := json.Marshal(item)
		if err != nil {
			return nil, err
		}
		out = append(out, data)
	}
	return json.Marshal(append(out, c.opaque...))
}

func decodeList[T any, PT normalizer[T]](s *Store, key string, res gjson.Result) stored[T] {
	c := stored[T]{items: make([]T, 0)}
	seen := make(map[string]int)
	res.ForEach(func(_, v gjson.Result) bool {
		var item T
		if err := json.Unmarshal([]byte(v.Raw), &item); err != nil {
			s.log.Warn("undecodable record", "key", key, "err", err)
			c.opaque = append(c.opaque, json.RawMessage(v.Raw))
			return true
		}
		if b, ok := any(PT(&item)).(idBackfiller); ok {
			b.BackfillID(derivedID(key, v.Raw, seen[v.Raw]))
			seen[v.Raw]++
		}
		PT(&item).Normalize()
		c.items = append(c.items, item)
		return true
	})
	return c
}

// loadList reads key as a JSON array. Elements that do not decode are skipped.
func loadList[T any, PT normalizer[T]](ctx context.Context, s *Store, key string) []T {
	res, ok := s.readRaw(ctx, key)
	if !ok {
		return make([]T, 0)
	}
	if !res.IsArray() {
		s.log.Warn("stored value is not an array", "key", key)
		return make([]T, 0)
	}
	return decodeList[T, PT](s, key, res).items
}

// loadForUpdate reads key for a read-modify-write. Unlike loadList it fails
// when the backend cannot be read, so an unreadable collection is never
// overwritten. A value that is not a JSON array is already empty to every
// reader and is replaced.
func loadForUpdate[T any, PT normalizer[T]](ctx context.Context, s *Store, key string) (stored[T], error) {
	empty := stored[T]{items: make([]T, 0)}
	raw, ok, err := s.backend(key).Get(ctx, key)
	if err != nil {
		return empty, fmt.Errorf("read %s: %w", key, err)
	}
	if !ok {
		return empty, nil
	}
	if !gjson.Valid(raw) {
		s.log.Warn("replacing stored value that is not valid JSON", "key", key)
		return empty, nil
	}
	res := gjson.Parse(raw)
	if !res.IsArray() {
		s.log.Warn("replacing stored value that is not an array", "key", key)
		return empty, nil
	}
	return decodeList[T, PT](s, key, res), nil
}

// loadObject reads key as a JSON object into dst. It reports false when the
// key is absent, unreadable, corrupted, or not an object.
func loadObject(ctx context.Context, s *Store, key string, dst any) bool {
	res, ok := s.readRaw(ctx, key)
	if !ok {
		return false
	}
	if !res.IsObject() {
		s.log.Warn("stored value is not an object", "key", key)
		return false
	}
	if err := json.Unmarshal([]byte(res.Raw), dst); err != nil {
		s.log.Warn("failed to decode stored object", "key", key, "err", err)
		return false
	}
	return true
}

// loadObjectForUpdate is loadObject for read-modify-write paths: a backend
// read error is returned instead of reported as absent.
func loadObjectForUpdate(ctx context.Context, s *Store, key string, dst any) (bool, error) {
	if _, _, err := s.backend(key).Get(ctx, key); err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	return loadObject(ctx, s, key, dst), nil
}

// readRaw walks the first rungs of the read ladder: absent, unreadable, invalid JSON.
func (s *Store) readRaw(ctx context.Context, key string) (gjson.Result, bool) {
	raw, ok, err := s.backend(key).Get(ctx, key)
	if err != nil {
		s.log.Error("failed to read key", "key", key, "err", err)
		return gjson.Result{}, false
	}
	if !ok {
		return gjson.Result{}, false
	}
	if !gjson.Valid(raw) {
		s.log.Warn("stored value is not valid JSON", "key", key)
		return gjson.Result{}, false
	}
	return gjson.Parse(raw), true
}

// save serializes v and writes it under key in one call.
func (s *Store) save(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.backend(key).Set(ctx, key, string(data)); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

type dated interface {
	SortKey() string
}

// sortNewestFirst orders by day descending, then by creation time descending.
func sortNewestFirst[T dated](items []T, created func(T) time.Time) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].SortKey(), items[j].SortKey()
		if a != b {
			return a > b
		}
		return created(items[i]).After(created(items[j]))
	})
}
