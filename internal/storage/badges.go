// ABOUTME: Badge unlock repository over the @yoroi_user_badges collection.
// ABOUTME: Unlocking is idempotent on badge_id.
package storage

import (
	"context"
	"fmt"

	"github.com/harperreed/yoroi/internal/models"
)

// GetUnlockedBadges returns every unlock record in insertion order.
func (s *Store) GetUnlockedBadges(ctx context.Context) []models.BadgeUnlock {
	return loadList[models.BadgeUnlock](ctx, s, KeyUserBadges)
}

// IsBadgeUnlocked reports whether badgeID has been unlocked.
func (s *Store) IsBadgeUnlocked(ctx context.Context, badgeID string) bool {
	for _, b := range s.GetUnlockedBadges(ctx) {
		if b.BadgeID == badgeID {
			return true
		}
	}
	return false
}

// UnlockBadge records badgeID. It returns false if it was already unlocked.
func (s *Store) UnlockBadge(ctx context.Context, badgeID string) (bool, error) {
	if badgeID == "" {
		return false, fmt.Errorf("unlock badge: badge id is required")
	}
	added := false
	err := s.mutate(ctx, KeyUserBadges, func() error {
		badges, err := loadForUpdate[models.BadgeUnlock](ctx, s, KeyUserBadges)
		if err != nil {
			return err
		}
		for _, b := range badges.items {
			if b.BadgeID == badgeID {
				return nil
			}
		}
		badges.items = append(badges.items, models.BadgeUnlock{BadgeID: badgeID, UnlockedAt: s.now().UTC()})
		if err := s.save(ctx, KeyUserBadges, badges); err != nil {
			return err
		}
		added = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("unlock badge: %w", err)
	}
	if added {
		s.log.Info("badge unlocked", "badge", badgeID)
	}
	return added, nil
}
