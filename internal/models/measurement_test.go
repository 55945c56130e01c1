// ABOUTME: Tests for Measurement model decoding and patching.
// ABOUTME: Covers legacy camelCase folding and partial merges.
package models

import (
	"encoding/json"
	"testing"
)

func TestMeasurementLegacyKeys(t *testing.T) {
	raw := `{"id":"1","date":"2024-01-01","weight":80,"bodyFat":18.5,"muscleMass":40}`
	var m Measurement
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if m.BodyFat == nil || *m.BodyFat != 18.5 {
		t.Errorf("BodyFat = %v, want 18.5", m.BodyFat)
	}
	if m.MuscleMass == nil || *m.MuscleMass != 40 {
		t.Errorf("MuscleMass = %v, want 40", m.MuscleMass)
	}
}

func TestMeasurementSnakeCaseWins(t *testing.T) {
	raw := `{"id":"1","date":"2024-01-01","weight":80,"body_fat":20,"bodyFat":18.5}`
	var m Measurement
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if *m.BodyFat != 20 {
		t.Errorf("BodyFat = %v, want 20", *m.BodyFat)
	}
}

func TestMeasurementPatchApply(t *testing.T) {
	m := NewMeasurement("2024-01-01", 80).WithBodyFat(20)
	id, created := m.ID, m.CreatedAt

	w := 78.5
	MeasurementPatch{Weight: &w}.Apply(m)

	if m.Weight != 78.5 {
		t.Errorf("Weight = %v, want 78.5", m.Weight)
	}
	if m.BodyFat == nil || *m.BodyFat != 20 {
		t.Error("patch should keep untouched fields")
	}
	if m.ID != id || !m.CreatedAt.Equal(created) {
		t.Error("patch must not change ID or CreatedAt")
	}
}

func TestMeasurementIsComplete(t *testing.T) {
	m := NewMeasurement("2024-01-01", 80).WithBodyFat(20).WithMuscleMass(40).WithWater(55)
	if m.IsComplete() {
		t.Error("expected incomplete without girths")
	}
	a, b, c := 100.0, 80.0, 95.0
	m.Measurements = &BodyMeasurements{Chest: &a, Waist: &b, Hips: &c}
	if !m.IsComplete() {
		t.Error("expected complete with composition and three girths")
	}
}
