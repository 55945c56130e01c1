// ABOUTME: MCP tool implementations for yoroi.
// ABOUTME: Workouts, measurements, hydration, mood, badges, nutrition, and field validation.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/harperreed/yoroi/internal/badges"
	"github.com/harperreed/yoroi/internal/models"
	"github.com/harperreed/yoroi/internal/nutrition"
	"github.com/harperreed/yoroi/internal/storage"
	"github.com/harperreed/yoroi/internal/validation"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_workout",
		Description: "Log a training session for a day",
	}, s.handleAddWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_workouts",
		Description: "List recent workouts, newest first, optionally filtered by type",
	}, s.handleListWorkouts)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_workout",
		Description: "Delete a workout by ID or ID prefix",
	}, s.handleDeleteWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_measurement",
		Description: "Record a weigh-in with optional body composition",
	}, s.handleAddMeasurement)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_measurements",
		Description: "List recent weigh-ins, newest first",
	}, s.handleListMeasurements)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_hydration",
		Description: "Log water intake in millilitres; a negative amount corrects an earlier entry",
	}, s.handleAddHydration)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "hydration_today",
		Description: "Show today's water total against the daily goal",
	}, s.handleHydrationToday)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "save_mood",
		Description: "Record a mood and energy level",
	}, s.handleSaveMood)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "unlock_badge",
		Description: "Unlock a badge by ID",
	}, s.handleUnlockBadge)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "check_badges",
		Description: "Evaluate every badge and unlock the ones now earned",
	}, s.handleCheckBadges)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "nutrition_plan",
		Description: "Compute BMR, TDEE, calorie target, macros and meal split",
	}, s.handleNutritionPlan)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "validate_field",
		Description: "Validate and sanitize a single form field",
	}, s.handleValidateField)
}

// Tool input/output types

type simpleOutput struct {
	Message string `json:"message"`
}

type addWorkoutInput struct {
	Date string `json:"date,omitempty" jsonschema:"Day of the session (YYYY-MM-DD), defaults to today"`
	Type string `json:"type" jsonschema:"Workout type (jjb, musculation, running, basic_fit, etc.)"`
}

type workoutOutput struct {
	ID      string `json:"id"`
	Date    string `json:"date"`
	Type    string `json:"type"`
	Message string `json:"message"`
}

type listInput struct {
	Type  string `json:"type,omitempty" jsonschema:"Filter by workout type"`
	Days  int    `json:"days,omitempty" jsonschema:"Only include the last N days"`
	Limit int    `json:"limit,omitempty" jsonschema:"Max results (default 20)"`
}

type idInput struct {
	ID string `json:"id" jsonschema:"Record ID or prefix"`
}

type addMeasurementInput struct {
	Date       string   `json:"date,omitempty" jsonschema:"Day of the weigh-in (YYYY-MM-DD), defaults to today"`
	Weight     float64  `json:"weight" jsonschema:"Weight in kg"`
	BodyFat    *float64 `json:"body_fat,omitempty" jsonschema:"Body fat percentage"`
	MuscleMass *float64 `json:"muscle_mass,omitempty" jsonschema:"Muscle mass in kg"`
	Water      *float64 `json:"water,omitempty" jsonschema:"Body water percentage"`
	Waist      *float64 `json:"waist,omitempty" jsonschema:"Waist girth in cm"`
	Notes      string   `json:"notes,omitempty" jsonschema:"Optional notes"`
}

type measurementOutput struct {
	ID      string   `json:"id"`
	Date    string   `json:"date"`
	Weight  float64  `json:"weight"`
	BMI     *float64 `json:"bmi,omitempty"`
	Message string   `json:"message"`
}

type addHydrationInput struct {
	Amount int    `json:"amount" jsonschema:"Amount in millilitres (50 to 2000); negative to correct an earlier entry"`
	Date   string `json:"date,omitempty" jsonschema:"Day (YYYY-MM-DD), defaults to today"`
}

type hydrationOutput struct {
	Date        string                  `json:"date"`
	TotalML     int                     `json:"total_ml"`
	GoalML      int                     `json:"goal_ml"`
	Percent     int                     `json:"percent"`
	Recommended float64                 `json:"recommended_l,omitempty"`
	Entries     []models.HydrationEntry `json:"entries,omitempty"`
	Message     string                  `json:"message"`
}

type saveMoodInput struct {
	Mood   string `json:"mood" jsonschema:"One of happy, energetic, calm, neutral, tired, stressed, sad"`
	Energy int    `json:"energy" jsonschema:"Energy level from 1 to 5"`
	Date   string `json:"date,omitempty" jsonschema:"Day (YYYY-MM-DD), defaults to today"`
}

type unlockBadgeInput struct {
	BadgeID string `json:"badge_id" jsonschema:"Badge ID, e.g. first_step"`
}

type badgeSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	XP   int    `json:"xp"`
}

type checkBadgesOutput struct {
	Unlocked []badgeSummary `json:"unlocked"`
	TotalXP  int            `json:"total_xp"`
	Message  string         `json:"message"`
}

type nutritionPlanInput struct {
	Weight        float64 `json:"weight,omitempty" jsonschema:"Weight in kg, defaults to the latest weigh-in"`
	Height        float64 `json:"height,omitempty" jsonschema:"Height in cm, defaults to the profile height"`
	Age           int     `json:"age" jsonschema:"Age in years"`
	Gender        string  `json:"gender,omitempty" jsonschema:"male or female, defaults to the profile gender"`
	ActivityLevel string  `json:"activity_level,omitempty" jsonschema:"sedentary, light, moderate, active or extreme"`
	Goal          string  `json:"goal,omitempty" jsonschema:"Goal ID, e.g. moderate_loss or maintain"`
	MacroProfile  string  `json:"macro_profile,omitempty" jsonschema:"Macro split ID, e.g. balanced"`
}

type validateFieldInput struct {
	Field string `json:"field" jsonschema:"Field name, e.g. weight or email"`
	Value any    `json:"value" jsonschema:"Value to validate"`
}

type validateFieldOutput struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
	Value any    `json:"value,omitempty"`
}

// Tool handlers

func (s *Server) handleAddWorkout(ctx context.Context, req *mcp.CallToolRequest, input addWorkoutInput) (*mcp.CallToolResult, workoutOutput, error) {
	if strings.TrimSpace(input.Type) == "" {
		return nil, workoutOutput{}, errors.New("workout type is required")
	}

	w, err := s.repo.AddWorkout(ctx, input.Date, input.Type)
	if err != nil {
		return nil, workoutOutput{}, fmt.Errorf("failed to add workout: %w", err)
	}

	return nil, workoutOutput{
		ID:      shortID(w.ID),
		Date:    w.Date,
		Type:    w.Type,
		Message: fmt.Sprintf("Added %s workout on %s (ID: %s)", w.Type, w.Date, shortID(w.ID)),
	}, nil
}

func (s *Server) handleListWorkouts(ctx context.Context, req *mcp.CallToolRequest, input listInput) (*mcp.CallToolResult, any, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}

	var workouts []models.Workout
	if input.Days > 0 {
		workouts = s.repo.GetWorkoutsByPeriod(ctx, input.Days)
	} else {
		workouts = s.repo.GetAllWorkouts(ctx)
	}

	out := make([]models.Workout, 0, min(len(workouts), input.Limit))
	for _, w := range workouts {
		if input.Type != "" && w.Type != input.Type {
			continue
		}
		out = append(out, w)
		if len(out) == input.Limit {
			break
		}
	}

	if len(out) == 0 {
		return nil, map[string]any{"message": "No workouts found."}, nil
	}
	return nil, map[string]any{"workouts": out}, nil
}

func (s *Server) handleDeleteWorkout(ctx context.Context, req *mcp.CallToolRequest, input idInput) (*mcp.CallToolResult, simpleOutput, error) {
	w, err := s.repo.FindWorkout(ctx, input.ID)
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to find workout: %w", err)
	}

	ok, err := s.repo.DeleteWorkout(ctx, w.ID)
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete workout: %w", err)
	}
	if !ok {
		return nil, simpleOutput{}, fmt.Errorf("workout %s: %w", input.ID, storage.ErrNotFound)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Deleted %s workout from %s (ID: %s)", w.Type, w.Date, shortID(w.ID)),
	}, nil
}

func (s *Server) handleAddMeasurement(ctx context.Context, req *mcp.CallToolRequest, input addMeasurementInput) (*mcp.CallToolResult, measurementOutput, error) {
	m := models.Measurement{
		Date:       input.Date,
		Weight:     input.Weight,
		BodyFat:    input.BodyFat,
		MuscleMass: input.MuscleMass,
		Water:      input.Water,
	}
	if m.Date == "" {
		m.Date = models.Today(s.now())
	}
	if input.Waist != nil {
		m.Measurements = &models.BodyMeasurements{Waist: input.Waist}
	}
	if input.Notes != "" {
		m.WithNotes(input.Notes)
	}

	if err := validation.ValidateMeasurement(&m); err != nil {
		return nil, measurementOutput{}, err
	}

	if settings := s.repo.GetUserSettings(ctx); settings.Height != nil {
		if bmi, err := nutrition.CalculateBMI(*settings.Height, m.Weight); err == nil {
			m.BMI = &bmi
		}
	}

	saved, err := s.repo.AddMeasurement(ctx, m)
	if err != nil {
		return nil, measurementOutput{}, fmt.Errorf("failed to add measurement: %w", err)
	}

	return nil, measurementOutput{
		ID:      shortID(saved.ID),
		Date:    saved.Date,
		Weight:  saved.Weight,
		BMI:     saved.BMI,
		Message: fmt.Sprintf("Added weigh-in: %.1f kg on %s (ID: %s)", saved.Weight, saved.Date, shortID(saved.ID)),
	}, nil
}

func (s *Server) handleListMeasurements(ctx context.Context, req *mcp.CallToolRequest, input listInput) (*mcp.CallToolResult, any, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}

	var ms []models.Measurement
	if input.Days > 0 {
		ms = s.repo.GetMeasurementsByPeriod(ctx, input.Days)
	} else {
		ms = s.repo.GetAllMeasurements(ctx)
	}
	if len(ms) > input.Limit {
		ms = ms[:input.Limit]
	}

	if len(ms) == 0 {
		return nil, map[string]any{"message": "No measurements found."}, nil
	}
	return nil, map[string]any{"measurements": ms}, nil
}

func (s *Server) handleAddHydration(ctx context.Context, req *mcp.CallToolRequest, input addHydrationInput) (*mcp.CallToolResult, hydrationOutput, error) {
	if r := validation.ValidateHydrationAmount(input.Amount); !r.Valid {
		return nil, hydrationOutput{}, fmt.Errorf("invalid amount %d: %s", input.Amount, r.Error)
	}

	e, err := s.repo.AddHydrationEntry(ctx, input.Amount, input.Date)
	if err != nil {
		return nil, hydrationOutput{}, fmt.Errorf("failed to add hydration: %w", err)
	}

	out := s.hydrationFor(ctx, e.Date)
	verb := "Added"
	if e.Amount < 0 {
		verb = "Corrected"
	}
	out.Message = fmt.Sprintf("%s %d ml on %s, %d/%d ml", verb, e.Amount, e.Date, out.TotalML, out.GoalML)
	return nil, out, nil
}

func (s *Server) handleHydrationToday(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, hydrationOutput, error) {
	out := s.hydrationFor(ctx, models.Today(s.now()))
	out.Entries = s.repo.GetHydrationByDate(ctx, out.Date)
	if latest := s.repo.GetLatestMeasurement(ctx); latest != nil {
		out.Recommended = nutrition.CalculateRecommendedHydration(latest.Weight)
	}
	out.Message = fmt.Sprintf("%d/%d ml today (%d%%)", out.TotalML, out.GoalML, out.Percent)
	return nil, out, nil
}

func (s *Server) hydrationFor(ctx context.Context, date string) hydrationOutput {
	total := s.repo.GetDailyHydrationTotal(ctx, date)
	goal := s.repo.GetHydrationSettings(ctx).GoalML()
	out := hydrationOutput{Date: date, TotalML: total, GoalML: goal}
	if goal > 0 {
		out.Percent = min(100, total*100/goal)
	}
	return out
}

func (s *Server) handleSaveMood(ctx context.Context, req *mcp.CallToolRequest, input saveMoodInput) (*mcp.CallToolResult, simpleOutput, error) {
	e, err := s.repo.SaveMood(ctx, storage.MoodInput{Date: input.Date, Mood: input.Mood, Energy: input.Energy})
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to save mood: %w", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Saved mood %s (energy %d) for %s", e.Mood, e.Energy, e.Date),
	}, nil
}

func (s *Server) handleUnlockBadge(ctx context.Context, req *mcp.CallToolRequest, input unlockBadgeInput) (*mcp.CallToolResult, simpleOutput, error) {
	b, ok := badges.ByID(input.BadgeID)
	if !ok {
		return nil, simpleOutput{}, fmt.Errorf("unknown badge: %s", input.BadgeID)
	}

	added, err := s.repo.UnlockBadge(ctx, b.ID)
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to unlock badge: %w", err)
	}
	if !added {
		return nil, simpleOutput{Message: fmt.Sprintf("Badge %s was already unlocked", b.Name)}, nil
	}

	s.log.Info("badge unlocked", "id", b.ID, "source", "mcp")
	return nil, simpleOutput{Message: fmt.Sprintf("Unlocked %s (+%d XP)", b.Name, b.XP)}, nil
}

func (s *Server) handleCheckBadges(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, checkBadgesOutput, error) {
	fresh, err := badges.CheckAndUnlock(ctx, s.repo, s.now())
	if err != nil {
		return nil, checkBadgesOutput{}, fmt.Errorf("failed to check badges: %w", err)
	}

	out := checkBadgesOutput{Unlocked: make([]badgeSummary, 0, len(fresh))}
	for _, b := range fresh {
		out.Unlocked = append(out.Unlocked, badgeSummary{ID: b.ID, Name: b.Name, XP: b.XP})
	}

	unlocked := s.repo.GetUnlockedBadges(ctx)
	ids := make([]string, len(unlocked))
	for i, u := range unlocked {
		ids[i] = u.BadgeID
	}
	out.TotalXP = badges.TotalXP(ids)

	if len(fresh) == 0 {
		out.Message = fmt.Sprintf("No new badges. %d unlocked, %d XP.", len(ids), out.TotalXP)
	} else {
		out.Message = fmt.Sprintf("Unlocked %d new badge(s). %d XP total.", len(fresh), out.TotalXP)
	}
	return nil, out, nil
}

func (s *Server) handleNutritionPlan(ctx context.Context, req *mcp.CallToolRequest, input nutritionPlanInput) (*mcp.CallToolResult, nutrition.Plan, error) {
	settings := s.repo.GetUserSettings(ctx)

	p := nutrition.Profile{
		Weight:        input.Weight,
		Height:        input.Height,
		Age:           input.Age,
		Gender:        nutrition.Gender(input.Gender),
		ActivityLevel: input.ActivityLevel,
		Goal:          input.Goal,
		MacroProfile:  input.MacroProfile,
	}
	if p.Weight <= 0 {
		if latest := s.repo.GetLatestMeasurement(ctx); latest != nil {
			p.Weight = latest.Weight
		}
	}
	if p.Height <= 0 && settings.Height != nil {
		p.Height = *settings.Height
	}
	if p.Gender == "" && settings.Gender != nil {
		p.Gender = nutrition.Gender(*settings.Gender)
	}

	switch {
	case p.Weight <= 0:
		return nil, nutrition.Plan{}, errors.New("weight is required: pass it or record a weigh-in")
	case p.Height <= 0:
		return nil, nutrition.Plan{}, errors.New("height is required: pass it or set it in the profile")
	case p.Age <= 0:
		return nil, nutrition.Plan{}, errors.New("age is required")
	case p.Gender != nutrition.Male && p.Gender != nutrition.Female:
		return nil, nutrition.Plan{}, fmt.Errorf("gender must be male or female, got %q", p.Gender)
	}

	return nil, nutrition.CalculateNutritionPlan(p), nil
}

func (s *Server) handleValidateField(ctx context.Context, req *mcp.CallToolRequest, input validateFieldInput) (*mcp.CallToolResult, validateFieldOutput, error) {
	r := validation.Validate(input.Field, input.Value)
	return nil, validateFieldOutput{Valid: r.Valid, Error: r.Error, Value: r.Value}, nil
}
