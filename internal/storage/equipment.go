// ABOUTME: Club and gear repositories.
// ABOUTME: Defaults are seeded and persisted the first time the key is read.
package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/harperreed/yoroi/internal/models"
)

// loadSeeded returns the stored list, persisting seed when the key has never been written.
func loadSeeded[T any, PT normalizer[T]](ctx context.Context, s *Store, key string, seed func() []T) []T {
	_, present, err := s.backend(key).Get(ctx, key)
	if err != nil || present {
		return loadList[T, PT](ctx, s, key)
	}

	var out []T
	werr := s.mutate(ctx, key, func() error {
		if _, present, _ := s.backend(key).Get(ctx, key); present {
			out = loadList[T, PT](ctx, s, key)
			return nil
		}
		out = seed()
		return s.save(ctx, key, out)
	})
	if werr != nil {
		s.log.Warn("failed to seed defaults", "key", key, "err", werr)
	}
	return out
}

// peekSeeded is loadSeeded without the write: an unwritten key yields seed.
func peekSeeded[T any, PT normalizer[T]](ctx context.Context, s *Store, key string, seed func() []T) []T {
	_, present, err := s.backend(key).Get(ctx, key)
	if err != nil || present {
		return loadList[T, PT](ctx, s, key)
	}
	return seed()
}

func (s *Store) defaultClubs() []models.Club { return models.DefaultClubs(s.now().UTC()) }

func (s *Store) defaultGear() []models.Gear { return models.DefaultGear(s.now().UTC()) }

// GetUserClubs returns the user's clubs, seeding the defaults on first use.
func (s *Store) GetUserClubs(ctx context.Context) []models.Club {
	return loadSeeded[models.Club](ctx, s, KeyUserClubs, s.defaultClubs)
}

// AddClub appends a club with a fresh ID.
func (s *Store) AddClub(ctx context.Context, c models.Club) (*models.Club, error) {
	if strings.TrimSpace(c.Name) == "" {
		return nil, fmt.Errorf("add club: name is required")
	}
	c.ID = uuid.NewString()
	c.CreatedAt = s.now().UTC()
	c.Normalize()

	s.GetUserClubs(ctx)
	err := s.mutate(ctx, KeyUserClubs, func() error {
		clubs, err := loadForUpdate[models.Club](ctx, s, KeyUserClubs)
		if err != nil {
			return err
		}
		clubs.items = append(clubs.items, c)
		return s.save(ctx, KeyUserClubs, clubs)
	})
	if err != nil {
		return nil, fmt.Errorf("add club: %w", err)
	}
	return &c, nil
}

// UpdateClub replaces the club with the same ID. It returns false if none matched.
func (s *Store) UpdateClub(ctx context.Context, c models.Club) (bool, error) {
	s.GetUserClubs(ctx)
	return replaceByID(ctx, s, KeyUserClubs, c, func(x models.Club) string { return x.ID })
}

// DeleteClub removes the club with id. It returns false if none matched.
func (s *Store) DeleteClub(ctx context.Context, id string) (bool, error) {
	s.GetUserClubs(ctx)
	return deleteByID(ctx, s, KeyUserClubs, id, func(c models.Club) string { return c.ID })
}

// GetUserGear returns the user's gear, seeding the defaults on first use.
func (s *Store) GetUserGear(ctx context.Context) []models.Gear {
	return loadSeeded[models.Gear](ctx, s, KeyUserGear, s.defaultGear)
}

// AddGear appends gear with a fresh ID.
func (s *Store) AddGear(ctx context.Context, g models.Gear) (*models.Gear, error) {
	if strings.TrimSpace(g.Name) == "" {
		return nil, fmt.Errorf("add gear: name is required")
	}
	g.ID = uuid.NewString()
	g.CreatedAt = s.now().UTC()
	g.Normalize()

	s.GetUserGear(ctx)
	err := s.mutate(ctx, KeyUserGear, func() error {
		gear, err := loadForUpdate[models.Gear](ctx, s, KeyUserGear)
		if err != nil {
			return err
		}
		gear.items = append(gear.items, g)
		return s.save(ctx, KeyUserGear, gear)
	})
	if err != nil {
		return nil, fmt.Errorf("add gear: %w", err)
	}
	return &g, nil
}

// UpdateGear replaces the gear with the same ID. It returns false if none matched.
func (s *Store) UpdateGear(ctx context.Context, g models.Gear) (bool, error) {
	s.GetUserGear(ctx)
	return replaceByID(ctx, s, KeyUserGear, g, func(x models.Gear) string { return x.ID })
}

// DeleteGear removes the gear with id. It returns false if none matched.
func (s *Store) DeleteGear(ctx context.Context, id string) (bool, error) {
	s.GetUserGear(ctx)
	return deleteByID(ctx, s, KeyUserGear, id, func(g models.Gear) string { return g.ID })
}

func replaceByID[T any, PT normalizer[T]](ctx context.Context, s *Store, key string, item T, idOf func(T) string) (bool, error) {
	found := false
	err := s.mutate(ctx, key, func() error {
		c, err := loadForUpdate[T, PT](ctx, s, key)
		if err != nil {
			return err
		}
		for i := range c.items {
			if idOf(c.items[i]) == idOf(item) {
				c.items[i] = item
				found = true
				break
			}
		}
		if !found {
			return nil
		}
		return s.save(ctx, key, c)
	})
	if err != nil {
		return false, err
	}
	return found, nil
}
