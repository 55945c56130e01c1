// ABOUTME: Measurement validation runs a weigh-in through the field rule table.
// ABOUTME: FieldErrors reports every failing field as a single error value.
package validation

import (
	"sort"
	"strings"

	"github.com/harperreed/yoroi/internal/models"
)

// FieldErrors maps field names to their validation messages.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e[k])
	}
	return "invalid fields: " + strings.Join(parts, "; ")
}

// ValidateMeasurement checks every populated field of m. On success the
// notes are replaced with their sanitized form.
func ValidateMeasurement(m *models.Measurement) error {
	record := map[string]any{
		"date":          m.Date,
		"weight":        m.Weight,
		"body_fat":      m.BodyFat,
		"muscle_mass":   m.MuscleMass,
		"water":         m.Water,
		"bone_mass":     m.BoneMass,
		"visceral_fat":  m.VisceralFat,
		"metabolic_age": m.MetabolicAge,
		"bmr":           m.BMR,
		"bmi":           m.BMI,
		"notes":         m.Notes,
	}
	if b := m.Measurements; b != nil {
		record["chest"] = b.Chest
		record["waist"] = b.Waist
		record["navel"] = b.Navel
		record["hips"] = b.Hips
		record["left_arm"] = b.LeftArm
		record["right_arm"] = b.RightArm
		record["left_thigh"] = b.LeftThigh
		record["right_thigh"] = b.RightThigh
		record["shoulder"] = b.Shoulder
	}

	res := ValidateObject(record)
	if !res.Valid {
		return FieldErrors(res.Errors)
	}

	if notes, ok := res.Sanitized["notes"].(string); ok {
		if notes == "" {
			m.Notes = nil
		} else {
			m.Notes = &notes
		}
	}
	return nil
}
