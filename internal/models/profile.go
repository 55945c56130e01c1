// ABOUTME: User settings, body status, home layout, clubs, gear, and logo models.
// ABOUTME: Settings keep unknown keys so newer fields survive a round trip through older code.
package models

import (
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
)

// UserSettings holds profile preferences.
type UserSettings struct {
	WeightUnit      string   `json:"weight_unit"`
	MeasurementUnit string   `json:"measurement_unit"`
	Theme           string   `json:"theme,omitempty"`
	Username        *string  `json:"username,omitempty"`
	Gender          *string  `json:"gender,omitempty"`
	Height          *float64 `json:"height,omitempty"`
	WeightGoal      *float64 `json:"weight_goal,omitempty"`
	StartWeight     *float64 `json:"start_weight,omitempty"`
	TargetDate      *string  `json:"target_date,omitempty"`
	// Extra holds keys this version does not know about.
	Extra map[string]json.RawMessage `json:"-"`
}

// DefaultUserSettings returns the settings created on first read.
func DefaultUserSettings() UserSettings {
	return UserSettings{WeightUnit: "kg", MeasurementUnit: "cm"}
}

var knownSettingsKeys = map[string]bool{
	"weight_unit": true, "measurement_unit": true, "theme": true, "username": true,
	"gender": true, "height": true, "weight_goal": true, "start_weight": true, "target_date": true,
}

// UnmarshalJSON decodes known fields and stashes the rest in Extra.
func (s *UserSettings) UnmarshalJSON(data []byte) error {
	type plain UserSettings
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	for k, v := range all {
		if knownSettingsKeys[k] {
			continue
		}
		if p.Extra == nil {
			p.Extra = make(map[string]json.RawMessage)
		}
		p.Extra[k] = v
	}
	*s = UserSettings(p)
	return nil
}

// MarshalJSON encodes known fields plus Extra.
func (s UserSettings) MarshalJSON() ([]byte, error) {
	type plain UserSettings
	data, err := json.Marshal(plain(s))
	if err != nil || len(s.Extra) == 0 {
		return data, err
	}
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, err
	}
	for k, v := range s.Extra {
		if _, ok := all[k]; !ok {
			all[k] = v
		}
	}
	return json.Marshal(all)
}

// Normalize restores defaults for blank units.
func (s *UserSettings) Normalize() {
	if s.WeightUnit == "" {
		s.WeightUnit = "kg"
	}
	if s.MeasurementUnit == "" {
		s.MeasurementUnit = "cm"
	}
}

// Accepted unit values.
var (
	WeightUnits      = []string{"kg", "lb"}
	MeasurementUnits = []string{"cm", "in"}
)

// ValidateUnits rejects unit values outside WeightUnits and MeasurementUnits.
func (s UserSettings) ValidateUnits() error {
	if !slices.Contains(WeightUnits, s.WeightUnit) {
		return fmt.Errorf("weight_unit must be kg or lb, got %q", s.WeightUnit)
	}
	if !slices.Contains(MeasurementUnits, s.MeasurementUnit) {
		return fmt.Errorf("measurement_unit must be cm or in, got %q", s.MeasurementUnit)
	}
	return nil
}

// ZoneStatus is the state of one body zone.
type ZoneStatus struct {
	Status string `json:"status"`
	Pain   int    `json:"pain"`
}

// BodyStatus maps a body zone (e.g. "left_knee") to its state.
type BodyStatus map[string]ZoneStatus

// HomeSection is one block of the home screen.
type HomeSection struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Visible bool   `json:"visible"`
}

// DefaultHomeSections is the canonical home layout order.
var DefaultHomeSections = []HomeSection{
	{ID: "hero", Label: "Poids actuel", Visible: true},
	{ID: "shortcuts", Label: "Accès rapide", Visible: true},
	{ID: "stats", Label: "Statistiques", Visible: true},
	{ID: "streak", Label: "Série en cours", Visible: true},
	{ID: "training", Label: "Entraînements", Visible: true},
	{ID: "hydration", Label: "Hydratation", Visible: true},
	{ID: "mood", Label: "Humeur du jour", Visible: true},
	{ID: "badges", Label: "Badges", Visible: true},
	{ID: "sleep", Label: "Sommeil", Visible: false},
	{ID: "nutrition", Label: "Nutrition", Visible: false},
}

// SavedSection is a stored home section. Visible is nil when the key was absent.
type SavedSection struct {
	ID      string `json:"id"`
	Label   string `json:"label,omitempty"`
	Visible *bool  `json:"visible,omitempty"`
}

// MergeHomeLayout overlays saved visibility flags on DefaultHomeSections.
// The result always has the default length and order; unknown ids are dropped.
func MergeHomeLayout(saved []SavedSection) []HomeSection {
	visible := make(map[string]bool, len(saved))
	for _, s := range saved {
		if s.Visible != nil {
			visible[s.ID] = *s.Visible
		}
	}
	out := make([]HomeSection, len(DefaultHomeSections))
	for i, def := range DefaultHomeSections {
		out[i] = def
		if v, ok := visible[def.ID]; ok {
			out[i].Visible = v
		}
	}
	return out
}

// Club types.
const (
	ClubBasicFit    = "basic_fit"
	ClubGracieBarra = "gracie_barra"
	ClubRunning     = "running"
	ClubOther       = "other"
)

// Club is a gym, academy, or training group.
type Club struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Type            string    `json:"type"`
	Color           string    `json:"color,omitempty"`
	SessionsPerWeek *int      `json:"sessions_per_week,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// NewClub creates a Club with a generated ID.
func NewClub(name, clubType string) *Club {
	return &Club{ID: uuid.NewString(), Name: name, Type: clubType, CreatedAt: time.Now().UTC()}
}

// BackfillID sets id when the record was stored without one.
func (c *Club) BackfillID(id string) {
	if c.ID == "" {
		c.ID = id
	}
}

// Normalize fills fields missing from records written by older versions.
func (c *Club) Normalize() {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Type == "" {
		c.Type = ClubOther
	}
}

// DefaultClubs are seeded the first time clubs are read.
func DefaultClubs(now time.Time) []Club {
	return []Club{
		{ID: "club_basic_fit", Name: "Basic-Fit", Type: ClubBasicFit, Color: "#FF6B00", CreatedAt: now},
		{ID: "club_gracie_barra", Name: "Gracie Barra", Type: ClubGracieBarra, Color: "#D32F2F", CreatedAt: now},
		{ID: "club_running", Name: "Running", Type: ClubRunning, Color: "#2E7D32", CreatedAt: now},
	}
}

// Gear types.
const (
	GearKimono    = "kimono"
	GearChaussure = "chaussure"
	GearGants     = "gants"
	GearOther     = "autre"
)

// Gear is a piece of training equipment.
type Gear struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Type         string    `json:"type"`
	Brand        *string   `json:"brand,omitempty"`
	PurchaseDate *string   `json:"purchase_date,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewGear creates Gear with a generated ID.
func NewGear(name, gearType string) *Gear {
	return &Gear{ID: uuid.NewString(), Name: name, Type: gearType, CreatedAt: time.Now().UTC()}
}

// BackfillID sets id when the record was stored without one.
func (g *Gear) BackfillID(id string) {
	if g.ID == "" {
		g.ID = id
	}
}

// Normalize fills fields missing from records written by older versions.
func (g *Gear) Normalize() {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	if g.Type == "" {
		g.Type = GearOther
	}
}

// DefaultGear is seeded the first time gear is read.
func DefaultGear(now time.Time) []Gear {
	return []Gear{
		{ID: "gear_kimono", Name: "Kimono", Type: GearKimono, CreatedAt: now},
		{ID: "gear_chaussure", Name: "Chaussures de course", Type: GearChaussure, CreatedAt: now},
		{ID: "gear_gants", Name: "Gants de boxe", Type: GearGants, CreatedAt: now},
	}
}

// DefaultLogo is the logo id used until the user picks one.
const DefaultLogo = "default"
