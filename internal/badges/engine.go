// ABOUTME: Unlock predicates and progress for badges, plus the check-and-unlock pass.
// ABOUTME: Unlocking goes through the repository, which keeps it idempotent per badge.
package badges

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/harperreed/yoroi/internal/models"
)

// Store is the repository surface the unlock pass needs.
type Store interface {
	Source
	GetUnlockedBadges(ctx context.Context) []models.BadgeUnlock
	UnlockBadge(ctx context.Context, badgeID string) (bool, error)
}

// BadgeProgress pairs a badge with the user's standing on it.
type BadgeProgress struct {
	Badge      Badge      `json:"badge"`
	Unlocked   bool       `json:"unlocked"`
	UnlockedAt *time.Time `json:"unlocked_at,omitempty"`
	Current    float64    `json:"current"`
	Percent    float64    `json:"percent"`
}

// ShouldUnlock reports whether stats satisfy b.
func ShouldUnlock(b Badge, stats Stats) bool {
	if b.unlock != nil {
		return b.unlock(stats)
	}
	if b.metric == nil {
		return false
	}
	return b.metric(stats) >= b.Requirement
}

// Progress returns the current metric value for b and how far it is toward
// the requirement, capped at 100 percent.
func Progress(b Badge, stats Stats) (current, percent float64) {
	if b.metric == nil {
		return 0, 0
	}
	current = b.metric(stats)
	if b.Requirement <= 0 {
		return current, 100
	}
	return current, min(100, current/b.Requirement*100)
}

// AllProgress lists every badge with its progress as of now.
func AllProgress(ctx context.Context, store Store, now time.Time) []BadgeProgress {
	stats := CalculateStats(ctx, store, now)
	unlocked := unlockTimes(store.GetUnlockedBadges(ctx))

	out := make([]BadgeProgress, 0, len(All))
	for _, b := range All {
		cur, pct := Progress(b, stats)
		p := BadgeProgress{Badge: b, Current: cur, Percent: pct}
		if at, ok := unlocked[b.ID]; ok {
			p.Unlocked = true
			p.UnlockedAt = &at
		}
		out = append(out, p)
	}
	return out
}

// CheckAndUnlock unlocks every badge whose condition now holds and returns
// the newly unlocked ones. A failed unlock does not stop the pass.
func CheckAndUnlock(ctx context.Context, store Store, now time.Time) ([]Badge, error) {
	stats := CalculateStats(ctx, store, now)
	unlocked := unlockTimes(store.GetUnlockedBadges(ctx))

	var (
		fresh []Badge
		errs  []error
	)
	for _, b := range All {
		if _, ok := unlocked[b.ID]; ok || !ShouldUnlock(b, stats) {
			continue
		}
		ok, err := store.UnlockBadge(ctx, b.ID)
		if err != nil {
			errs = append(errs, fmt.Errorf("unlock %s: %w", b.ID, err))
			continue
		}
		if ok {
			fresh = append(fresh, b)
		}
	}
	return fresh, errors.Join(errs...)
}

func unlockTimes(list []models.BadgeUnlock) map[string]time.Time {
	out := make(map[string]time.Time, len(list))
	for _, u := range list {
		out[u.BadgeID] = u.UnlockedAt
	}
	return out
}
