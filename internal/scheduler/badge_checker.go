// ABOUTME: Periodic badge check that unlocks newly earned achievements on a cron schedule.
// ABOUTME: Each run computes stats from the repository and logs what it unlocked.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harperreed/yoroi/internal/badges"
	"github.com/robfig/cron/v3"
)

// DefaultSchedule runs the check four times a day.
const DefaultSchedule = "@every 6h"

const runTimeout = 5 * time.Minute

// BadgeChecker periodically runs badges.CheckAndUnlock.
type BadgeChecker struct {
	store    badges.Store
	cron     *cron.Cron
	schedule string
	log      *log.Logger
	now      func() time.Time
}

// NewBadgeChecker creates a checker. An empty schedule uses DefaultSchedule.
func NewBadgeChecker(store badges.Store, schedule string, logger *log.Logger) *BadgeChecker {
	if schedule == "" {
		schedule = DefaultSchedule
	}
	return &BadgeChecker{
		store:    store,
		cron:     cron.New(),
		schedule: schedule,
		log:      logger,
		now:      time.Now,
	}
}

// Start registers the job and starts the cron loop.
func (c *BadgeChecker) Start() error {
	c.log.Info("starting badge checker", "schedule", c.schedule)

	if _, err := c.cron.AddFunc(c.schedule, c.run); err != nil {
		return fmt.Errorf("add cron job: %w", err)
	}
	c.cron.Start()
	return nil
}

// Stop halts the cron loop and waits for a running check, or for ctx.
func (c *BadgeChecker) Stop(ctx context.Context) error {
	c.log.Info("stopping badge checker")
	done := c.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RunOnce performs a single check and returns the newly unlocked badges.
func (c *BadgeChecker) RunOnce(ctx context.Context) ([]badges.Badge, error) {
	fresh, err := badges.CheckAndUnlock(ctx, c.store, c.now())
	for _, b := range fresh {
		c.log.Info("badge unlocked", "id", b.ID, "name", b.Name, "xp", b.XP)
	}
	if err != nil {
		return fresh, fmt.Errorf("check badges: %w", err)
	}
	return fresh, nil
}

func (c *BadgeChecker) run() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	c.log.Debug("running badge check")
	fresh, err := c.RunOnce(ctx)
	if err != nil {
		c.log.Error("badge check failed", "err", err)
		return
	}
	c.log.Debug("badge check completed", "unlocked", len(fresh))
}
