// ABOUTME: Field rule table for input validation, keyed by field name.
// ABOUTME: Numeric ranges are inclusive; messages are the user-facing French strings.
package validation

import "regexp"

// Kind selects the validator applied to a field.
type Kind string

const (
	KindNumber Kind = "number"
	KindString Kind = "string"
	KindEmail  Kind = "email"
	KindDate   Kind = "date"
)

// Rule describes how one field is checked.
type Rule struct {
	Kind      Kind
	Required  bool
	Min       *float64
	Max       *float64
	MinLength int
	MaxLength int
	Pattern   *regexp.Regexp
	Message   string
}

func number(min, max float64, msg string) Rule {
	return Rule{Kind: KindNumber, Min: &min, Max: &max, Message: msg}
}

func text(minLen, maxLen int, msg string) Rule {
	return Rule{Kind: KindString, MinLength: minLen, MaxLength: maxLen, Message: msg}
}

var rules = map[string]Rule{
	// weight and size
	"weight":    {Kind: KindNumber, Required: true, Min: ptr(20), Max: ptr(350), Message: "Poids entre 20 et 350 kg"},
	"height":    number(50, 280, "Taille entre 50 et 280 cm"),
	"height_cm": number(50, 280, "Taille entre 50 et 280 cm"),

	// body composition
	"bodyFat":        number(2, 60, "Masse grasse entre 2% et 60%"),
	"body_fat":       number(2, 60, "Masse grasse entre 2% et 60%"),
	"fat_percent":    number(2, 60, "Masse grasse entre 2% et 60%"),
	"muscleMass":     number(10, 70, "Masse musculaire entre 10% et 70%"),
	"muscle_mass":    number(10, 70, "Masse musculaire entre 10% et 70%"),
	"muscle_percent": number(10, 70, "Masse musculaire entre 10% et 70%"),
	"water":          number(30, 80, "Hydratation entre 30% et 80%"),
	"water_percent":  number(30, 80, "Hydratation entre 30% et 80%"),
	"boneMass":       number(1, 10, "Masse osseuse entre 1 et 10 kg"),
	"bone_mass":      number(1, 10, "Masse osseuse entre 1 et 10 kg"),
	"visceralFat":    number(1, 30, "Graisse viscérale entre 1 et 30"),
	"visceral_fat":   number(1, 30, "Graisse viscérale entre 1 et 30"),
	"metabolicAge":   number(12, 100, "Âge métabolique entre 12 et 100 ans"),
	"metabolic_age":  number(12, 100, "Âge métabolique entre 12 et 100 ans"),
	"bmr":            number(500, 5000, "BMR entre 500 et 5000 kcal"),
	"bmi":            number(10, 60, "BMI entre 10 et 60"),

	// girths
	"waist":       number(40, 200, "Tour de taille entre 40 et 200 cm"),
	"hips":        number(50, 200, "Hanches entre 50 et 200 cm"),
	"chest":       number(50, 200, "Poitrine entre 50 et 200 cm"),
	"neck":        number(20, 60, "Cou entre 20 et 60 cm"),
	"shoulder":    number(40, 100, "Épaules entre 40 et 100 cm"),
	"shoulders":   number(40, 100, "Épaules entre 40 et 100 cm"),
	"left_arm":    number(15, 60, "Bras gauche entre 15 et 60 cm"),
	"right_arm":   number(15, 60, "Bras droit entre 15 et 60 cm"),
	"left_thigh":  number(30, 100, "Cuisse gauche entre 30 et 100 cm"),
	"right_thigh": number(30, 100, "Cuisse droite entre 30 et 100 cm"),
	"left_calf":   number(20, 60, "Mollet gauche entre 20 et 60 cm"),
	"right_calf":  number(20, 60, "Mollet droit entre 20 et 60 cm"),
	"navel":       number(40, 200, "Tour de nombril entre 40 et 200 cm"),

	// user
	"name":     text(1, 50, "Nom entre 1 et 50 caractères"),
	"username": text(1, 50, "Pseudo entre 1 et 50 caractères"),
	"email":    {Kind: KindEmail, Message: "Email invalide"},
	"age":      number(10, 120, "Âge entre 10 et 120 ans"),

	// goals
	"target_weight": number(30, 300, "Objectif entre 30 et 300 kg"),
	"weight_goal":   number(30, 300, "Objectif entre 30 et 300 kg"),
	"goalWeight":    number(30, 300, "Objectif entre 30 et 300 kg"),
	"targetWeight":  number(30, 300, "Objectif entre 30 et 300 kg"),
	"start_weight":  number(20, 350, "Poids de départ entre 20 et 350 kg"),

	// activity
	"duration":         number(1, 600, "Durée entre 1 et 600 minutes"),
	"duration_minutes": number(1, 600, "Durée entre 1 et 600 minutes"),
	"rpe":              number(1, 10, "RPE entre 1 et 10"),
	"calories":         number(0, 10000, "Calories entre 0 et 10000"),
	"technique_rating": number(1, 5, "Note technique entre 1 et 5"),
	"date":             {Kind: KindDate, Message: "Date invalide"},

	// free text
	"notes": text(0, 1000, "Notes max 1000 caractères"),
	"note":  text(0, 1000, "Note max 1000 caractères"),

	// vitality
	"sleepHours":  number(0, 24, "Sommeil entre 0 et 24h"),
	"waterIntake": number(0, 10, "Eau entre 0 et 10 litres"),
	"energyLevel": number(1, 5, "Énergie entre 1 et 5"),
	"stressLevel": number(1, 5, "Stress entre 1 et 5"),

	// hydration
	"amount":    number(50, 2000, "Quantité entre 50 et 2000 ml"),
	"dailyGoal": number(0.5, 10, "Objectif entre 0.5 et 10 litres"),

	// injuries
	"eva_score": number(0, 10, "Échelle EVA entre 0 et 10"),
	"pain":      number(0, 10, "Douleur entre 0 et 10"),
}

func ptr(f float64) *float64 { return &f }

// Rules returns a copy of the rule table.
func Rules() map[string]Rule {
	out := make(map[string]Rule, len(rules))
	for k, v := range rules {
		if v.Min != nil {
			v.Min = ptr(*v.Min)
		}
		if v.Max != nil {
			v.Max = ptr(*v.Max)
		}
		out[k] = v
	}
	return out
}

// Lookup returns the rule for field, if one exists.
func Lookup(field string) (Rule, bool) {
	r, ok := rules[field]
	return r, ok
}
