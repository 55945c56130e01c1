// ABOUTME: MCP resource implementations for yoroi.
// ABOUTME: Provides yoroi://today and yoroi://summary resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/harperreed/yoroi/internal/badges"
	"github.com/harperreed/yoroi/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	todayURI   = "yoroi://today"
	summaryURI = "yoroi://summary"
)

func (s *Server) registerResources() {
	// yoroi://today - Everything logged today
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         todayURI,
		Name:        "Today's Yoroi Data",
		Description: "Workouts, weigh-ins, hydration and mood logged today",
		MIMEType:    "application/json",
	}, s.handleTodayResource)

	// yoroi://summary - Dashboard with streaks, latest weigh-in and badges
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         summaryURI,
		Name:        "Yoroi Summary Dashboard",
		Description: "Latest weigh-in, streaks, collection counts and badge progress",
		MIMEType:    "application/json",
	}, s.handleSummaryResource)
}

// Resource handlers

func (s *Server) handleTodayResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	today := models.Today(s.now())

	var workouts []models.Workout
	for _, w := range s.repo.GetAllWorkouts(ctx) {
		if w.Date == today {
			workouts = append(workouts, w)
		}
	}

	var measurements []models.Measurement
	for _, m := range s.repo.GetAllMeasurements(ctx) {
		if m.Date == today {
			measurements = append(measurements, m)
		}
	}

	hydration := s.hydrationFor(ctx, today)

	result := map[string]any{
		"date":         today,
		"workouts":     workouts,
		"measurements": measurements,
		"hydration": map[string]int{
			"total_ml": hydration.TotalML,
			"goal_ml":  hydration.GoalML,
			"percent":  hydration.Percent,
		},
		"mood": s.repo.GetTodayMood(ctx),
		"counts": map[string]int{
			"workouts":     len(workouts),
			"measurements": len(measurements),
		},
	}

	return jsonResource(todayURI, result)
}

func (s *Server) handleSummaryResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	now := s.now()
	progress := badges.AllProgress(ctx, s.repo, now)

	var unlockedIDs []string
	for _, p := range progress {
		if p.Unlocked {
			unlockedIDs = append(unlockedIDs, p.Badge.ID)
		}
	}

	recent := s.repo.GetWorkoutsByPeriod(ctx, 7)

	result := map[string]any{
		"generated_at":    now.Format(time.RFC3339),
		"latest_weighin":  s.repo.GetLatestMeasurement(ctx),
		"stats":           s.repo.GetStats(ctx),
		"badge_stats":     badges.CalculateStats(ctx, s.repo, now),
		"recent_workouts": recent,
		"badges": map[string]int{
			"unlocked": len(unlockedIDs),
			"total":    len(badges.All),
			"xp":       badges.TotalXP(unlockedIDs),
		},
	}

	return jsonResource(summaryURI, result)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
