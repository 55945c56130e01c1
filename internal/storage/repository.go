// ABOUTME: Repository interface for yoroi data storage.
// ABOUTME: Defines the contract the CLI, MCP server, and badge engine consume.
package storage

import (
	"context"
	"time"

	"github.com/harperreed/yoroi/internal/models"
)

// Repository defines the storage interface for yoroi data.
// Reads never fail; they degrade to empty or default values.
type Repository interface {
	// Workouts
	GetAllWorkouts(ctx context.Context) []models.Workout
	GetWorkoutsByPeriod(ctx context.Context, days int) []models.Workout
	GetWorkoutsByMonth(ctx context.Context, year int, month time.Month) []models.Workout
	HasWorkoutOnDate(ctx context.Context, date string) bool
	AddWorkout(ctx context.Context, date, workoutType string) (*models.Workout, error)
	FindWorkout(ctx context.Context, idOrPrefix string) (*models.Workout, error)
	DeleteWorkout(ctx context.Context, id string) (bool, error)
	DeleteAllWorkouts(ctx context.Context) error

	// Measurements
	GetAllMeasurements(ctx context.Context) []models.Measurement
	GetLatestMeasurement(ctx context.Context) *models.Measurement
	GetMeasurementsByPeriod(ctx context.Context, days int) []models.Measurement
	AddMeasurement(ctx context.Context, m models.Measurement) (*models.Measurement, error)
	UpdateMeasurement(ctx context.Context, id string, patch models.MeasurementPatch) (bool, error)
	FindMeasurement(ctx context.Context, idOrPrefix string) (*models.Measurement, error)
	DeleteMeasurement(ctx context.Context, id string) (bool, error)
	DeleteAllMeasurements(ctx context.Context) error

	// Badges
	GetUnlockedBadges(ctx context.Context) []models.BadgeUnlock
	IsBadgeUnlocked(ctx context.Context, badgeID string) bool
	UnlockBadge(ctx context.Context, badgeID string) (bool, error)

	// Hydration
	GetAllHydrationEntries(ctx context.Context) []models.HydrationEntry
	GetHydrationByDate(ctx context.Context, date string) []models.HydrationEntry
	GetDailyHydrationTotal(ctx context.Context, date string) int
	AddHydrationEntry(ctx context.Context, amount int, date string) (*models.HydrationEntry, error)
	DeleteHydrationEntry(ctx context.Context, id string) (bool, error)
	GetHydrationSettings(ctx context.Context) models.HydrationSettings
	SaveHydrationSettings(ctx context.Context, settings models.HydrationSettings) error

	// Mood
	SaveMood(ctx context.Context, in MoodInput) (*models.MoodEntry, error)
	GetMoods(ctx context.Context, days int) []models.MoodEntry
	GetTodayMood(ctx context.Context) *models.MoodEntry

	// Profile
	GetUserSettings(ctx context.Context) models.UserSettings
	SaveUserSettings(ctx context.Context, patch map[string]any) error
	GetUserBodyStatus(ctx context.Context) models.BodyStatus
	SaveUserBodyStatus(ctx context.Context, status models.BodyStatus) error
	GetHomeLayout(ctx context.Context) []models.HomeSection
	SaveHomeLayout(ctx context.Context, sections []models.HomeSection) error
	SetSectionVisible(ctx context.Context, id string, visible bool) (bool, error)
	ResetHomeLayout(ctx context.Context) error
	GetSelectedLogo(ctx context.Context) string
	SaveSelectedLogo(ctx context.Context, logo string) error

	// Clubs and gear
	GetUserClubs(ctx context.Context) []models.Club
	AddClub(ctx context.Context, c models.Club) (*models.Club, error)
	UpdateClub(ctx context.Context, c models.Club) (bool, error)
	DeleteClub(ctx context.Context, id string) (bool, error)
	GetUserGear(ctx context.Context) []models.Gear
	AddGear(ctx context.Context, g models.Gear) (*models.Gear, error)
	UpdateGear(ctx context.Context, g models.Gear) (bool, error)
	DeleteGear(ctx context.Context, id string) (bool, error)

	// Backup and stats
	ExportAllData(ctx context.Context) (*Backup, error)
	ImportAllData(ctx context.Context, b *Backup) error
	ResetAllData(ctx context.Context) error
	GetStats(ctx context.Context) Stats
	CalculateWeightStreak(ctx context.Context) int
	CalculateWorkoutStreak(ctx context.Context) int

	// Lifecycle
	Close() error
}
