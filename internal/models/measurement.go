// ABOUTME: Body measurement model: weight plus optional body-composition and girth fields.
// ABOUTME: Decoding folds legacy camelCase keys into the current snake_case fields.
package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// BodyMeasurements holds girth measurements in the user's measurement unit.
type BodyMeasurements struct {
	Chest      *float64 `json:"chest,omitempty"`
	Waist      *float64 `json:"waist,omitempty"`
	Navel      *float64 `json:"navel,omitempty"`
	Hips       *float64 `json:"hips,omitempty"`
	LeftArm    *float64 `json:"left_arm,omitempty"`
	RightArm   *float64 `json:"right_arm,omitempty"`
	LeftThigh  *float64 `json:"left_thigh,omitempty"`
	RightThigh *float64 `json:"right_thigh,omitempty"`
	Shoulder   *float64 `json:"shoulder,omitempty"`
}

// Count returns how many girth fields are set.
func (b *BodyMeasurements) Count() int {
	if b == nil {
		return 0
	}
	n := 0
	for _, v := range []*float64{b.Chest, b.Waist, b.Navel, b.Hips, b.LeftArm, b.RightArm, b.LeftThigh, b.RightThigh, b.Shoulder} {
		if v != nil {
			n++
		}
	}
	return n
}

// Measurement is one weigh-in.
type Measurement struct {
	ID           string            `json:"id"`
	Date         string            `json:"date"`
	Weight       float64           `json:"weight"`
	BodyFat      *float64          `json:"body_fat,omitempty"`
	BodyFatKg    *float64          `json:"body_fat_kg,omitempty"`
	MuscleMass   *float64          `json:"muscle_mass,omitempty"`
	Water        *float64          `json:"water,omitempty"`
	WaterKg      *float64          `json:"water_kg,omitempty"`
	VisceralFat  *float64          `json:"visceral_fat,omitempty"`
	MetabolicAge *float64          `json:"metabolic_age,omitempty"`
	BoneMass     *float64          `json:"bone_mass,omitempty"`
	BMR          *float64          `json:"bmr,omitempty"`
	BMI          *float64          `json:"bmi,omitempty"`
	Measurements *BodyMeasurements `json:"measurements,omitempty"`
	Notes        *string           `json:"notes,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
}

// NewMeasurement creates a Measurement with a generated ID and current timestamp.
func NewMeasurement(date string, weight float64) *Measurement {
	return &Measurement{
		ID:        uuid.NewString(),
		Date:      date,
		Weight:    weight,
		CreatedAt: time.Now().UTC(),
	}
}

// WithBodyFat sets the body fat percentage.
func (m *Measurement) WithBodyFat(pct float64) *Measurement {
	m.BodyFat = &pct
	return m
}

// WithMuscleMass sets the muscle mass.
func (m *Measurement) WithMuscleMass(v float64) *Measurement {
	m.MuscleMass = &v
	return m
}

// WithWater sets the body water percentage.
func (m *Measurement) WithWater(pct float64) *Measurement {
	m.Water = &pct
	return m
}

// WithNotes sets notes on the measurement.
func (m *Measurement) WithNotes(notes string) *Measurement {
	m.Notes = &notes
	return m
}

// HasComposition reports whether any body-composition field is set.
func (m *Measurement) HasComposition() bool {
	return m.BodyFat != nil || m.MuscleMass != nil || m.Water != nil
}

// IsComplete reports whether composition and at least three girth fields are set.
func (m *Measurement) IsComplete() bool {
	return m.BodyFat != nil && m.MuscleMass != nil && m.Water != nil && m.Measurements.Count() >= 3
}

// BackfillID sets id when the record was stored without one.
func (m *Measurement) BackfillID(id string) {
	if m.ID == "" {
		m.ID = id
	}
}

// Normalize fills fields missing from records written by older versions.
func (m *Measurement) Normalize() {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = dateStart(m.Date)
	}
}

// SortKey returns the value records are ordered by.
func (m Measurement) SortKey() string { return m.Date }

type legacyMeasurementFields struct {
	BodyFat      *float64 `json:"bodyFat"`
	MuscleMass   *float64 `json:"muscleMass"`
	BoneMass     *float64 `json:"boneMass"`
	VisceralFat  *float64 `json:"visceralFat"`
	MetabolicAge *float64 `json:"metabolicAge"`
}

// UnmarshalJSON decodes current and legacy field spellings.
func (m *Measurement) UnmarshalJSON(data []byte) error {
	type plain Measurement
	var cur plain
	if err := json.Unmarshal(data, &cur); err != nil {
		return err
	}
	var legacy legacyMeasurementFields
	if err := json.Unmarshal(data, &legacy); err != nil {
		return err
	}
	fold := func(dst **float64, src *float64) {
		if *dst == nil && src != nil {
			*dst = src
		}
	}
	fold(&cur.BodyFat, legacy.BodyFat)
	fold(&cur.MuscleMass, legacy.MuscleMass)
	fold(&cur.BoneMass, legacy.BoneMass)
	fold(&cur.VisceralFat, legacy.VisceralFat)
	fold(&cur.MetabolicAge, legacy.MetabolicAge)
	*m = Measurement(cur)
	return nil
}

// MeasurementPatch is a partial update; nil fields are left unchanged.
type MeasurementPatch struct {
	Date         *string           `json:"date,omitempty"`
	Weight       *float64          `json:"weight,omitempty"`
	BodyFat      *float64          `json:"body_fat,omitempty"`
	MuscleMass   *float64          `json:"muscle_mass,omitempty"`
	Water        *float64          `json:"water,omitempty"`
	VisceralFat  *float64          `json:"visceral_fat,omitempty"`
	MetabolicAge *float64          `json:"metabolic_age,omitempty"`
	BoneMass     *float64          `json:"bone_mass,omitempty"`
	BMR          *float64          `json:"bmr,omitempty"`
	BMI          *float64          `json:"bmi,omitempty"`
	Measurements *BodyMeasurements `json:"measurements,omitempty"`
	Notes        *string           `json:"notes,omitempty"`
}

// Apply merges the patch into m. ID and CreatedAt are never changed.
func (p MeasurementPatch) Apply(m *Measurement) {
	if p.Date != nil {
		m.Date = *p.Date
	}
	if p.Weight != nil {
		m.Weight = *p.Weight
	}
	set := func(dst **float64, src *float64) {
		if src != nil {
			v := *src
			*dst = &v
		}
	}
	set(&m.BodyFat, p.BodyFat)
	set(&m.MuscleMass, p.MuscleMass)
	set(&m.Water, p.Water)
	set(&m.VisceralFat, p.VisceralFat)
	set(&m.MetabolicAge, p.MetabolicAge)
	set(&m.BoneMass, p.BoneMass)
	set(&m.BMR, p.BMR)
	set(&m.BMI, p.BMI)
	if p.Measurements != nil {
		cp := *p.Measurements
		m.Measurements = &cp
	}
	if p.Notes != nil {
		n := *p.Notes
		m.Notes = &n
	}
}
