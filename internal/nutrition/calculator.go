// ABOUTME: Pure energy and nutrient calculators: BMR, TDEE, goal calories, macros and meals.
// ABOUTME: Also derives protein, hydration and BMI recommendations from body weight.
package nutrition

import (
	"errors"
	"math"
)

// Gender selects the Mifflin-St Jeor constant.
type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)

// MinGoalCalories is the floor applied to any goal intake.
const MinGoalCalories = 1200

const (
	kcalPerGramProtein = 4
	kcalPerGramCarbs   = 4
	kcalPerGramFat     = 9
)

// MacroAmount is one macronutrient's share of the daily intake.
type MacroAmount struct {
	Grams      int `json:"grams"`
	Calories   int `json:"calories"`
	Percentage int `json:"percentage"`
}

// MacroResult splits a calorie total into macronutrients.
type MacroResult struct {
	Calories int         `json:"calories"`
	Protein  MacroAmount `json:"protein"`
	Carbs    MacroAmount `json:"carbs"`
	Fat      MacroAmount `json:"fat"`
}

// ProteinRecommendation is a daily protein range in grams.
type ProteinRecommendation struct {
	Min     int `json:"min"`
	Max     int `json:"max"`
	Optimal int `json:"optimal"`
}

// MealCalories is one meal slot with its calorie allowance.
type MealCalories struct {
	Name     string `json:"name"`
	Time     string `json:"time"`
	Calories int    `json:"calories"`
	Example  string `json:"example"`
}

// Profile carries the inputs of a full nutrition plan.
type Profile struct {
	Weight        float64 `json:"weight"`
	Height        float64 `json:"height"`
	Age           int     `json:"age"`
	Gender        Gender  `json:"gender"`
	ActivityLevel string  `json:"activity_level"`
	Goal          string  `json:"goal"`
	MacroProfile  string  `json:"macro_profile"`
}

// Plan is the full daily nutrition plan for a Profile.
type Plan struct {
	BMR          int                   `json:"bmr"`
	TDEE         int                   `json:"tdee"`
	GoalCalories int                   `json:"goal_calories"`
	Macros       MacroResult           `json:"macros"`
	Protein      ProteinRecommendation `json:"protein"`
	Deficit      int                   `json:"deficit"`
	Meals        []MealCalories        `json:"meals"`
	HydrationL   float64               `json:"hydration_l"`
}

// CalculateBMR returns the Mifflin-St Jeor basal metabolic rate in kcal.
// Weight is in kg, height in cm.
func CalculateBMR(weight, height float64, age int, gender Gender) int {
	base := 10*weight + 6.25*height - 5*float64(age)
	if gender == Male {
		return round(base + 5)
	}
	return round(base - 161)
}

// CalculateTDEE scales bmr by the activity multiplier. Unknown levels use
// the sedentary multiplier.
func CalculateTDEE(bmr int, activityLevel string) int {
	level, _ := FindActivityLevel(activityLevel)
	return round(float64(bmr) * level.Multiplier)
}

// CalculateGoalCalories applies the goal's adjustment to tdee, never going
// below MinGoalCalories.
func CalculateGoalCalories(tdee int, goal string) int {
	g, _ := FindGoal(goal)
	return max(tdee+g.CalorieAdjustment, MinGoalCalories)
}

// CalculateMacros splits totalCalories by the named profile. Each gram value
// is rounded on its own, so the parts may not add back to the total.
func CalculateMacros(totalCalories int, profile string) MacroResult {
	p, _ := FindMacroProfile(profile)
	total := float64(totalCalories)
	return MacroResult{
		Calories: totalCalories,
		Protein:  macro(total*p.Protein, kcalPerGramProtein, p.Protein),
		Carbs:    macro(total*p.Carbs, kcalPerGramCarbs, p.Carbs),
		Fat:      macro(total*p.Fat, kcalPerGramFat, p.Fat),
	}
}

func macro(kcal, perGram, fraction float64) MacroAmount {
	return MacroAmount{
		Grams:      round(kcal / perGram),
		Calories:   round(kcal),
		Percentage: round(fraction * 100),
	}
}

// GetProteinRecommendation returns the daily protein range for weight kg.
// Trained athletes need more per kg, and a calorie deficit raises the range.
func GetProteinRecommendation(weight float64, goal, activityLevel string) ProteinRecommendation {
	lo, hi := 0.8, 1.2
	switch activityLevel {
	case "moderate", "active":
		lo, hi = 1.4, 2.0
	case "extreme":
		lo, hi = 1.6, 2.2
	}
	if g, ok := FindGoal(goal); ok && g.IsLoss() {
		lo += 0.2
		hi += 0.3
	}
	return ProteinRecommendation{
		Min:     round(weight * lo),
		Max:     round(weight * hi),
		Optimal: round(weight * (lo + hi) / 2),
	}
}

// GetMealCalories distributes totalCalories across MealDistribution. The
// last meal absorbs rounding so the allowances sum to totalCalories.
func GetMealCalories(totalCalories int) []MealCalories {
	out := make([]MealCalories, len(MealDistribution))
	remaining := totalCalories
	for i, m := range MealDistribution {
		kcal := remaining
		if i < len(MealDistribution)-1 {
			kcal = round(float64(totalCalories) * m.Percentage)
			remaining -= kcal
		}
		out[i] = MealCalories{Name: m.Name, Time: m.Time, Calories: kcal, Example: m.Example}
	}
	return out
}

// CalculateNutritionPlan chains every calculator for one profile.
func CalculateNutritionPlan(p Profile) Plan {
	bmr := CalculateBMR(p.Weight, p.Height, p.Age, p.Gender)
	tdee := CalculateTDEE(bmr, p.ActivityLevel)
	goal := CalculateGoalCalories(tdee, p.Goal)
	return Plan{
		BMR:          bmr,
		TDEE:         tdee,
		GoalCalories: goal,
		Macros:       CalculateMacros(goal, p.MacroProfile),
		Protein:      GetProteinRecommendation(p.Weight, p.Goal, p.ActivityLevel),
		Deficit:      tdee - goal,
		Meals:        GetMealCalories(goal),
		HydrationL:   CalculateRecommendedHydration(p.Weight),
	}
}

// CalculateRecommendedHydration returns litres per day for weight kg,
// rounded up to the next half litre.
func CalculateRecommendedHydration(weight float64) float64 {
	if weight <= 0 {
		return 0
	}
	return math.Ceil(weight*0.033*2) / 2
}

var (
	ErrNonPositiveBody = errors.New("height and weight must be positive")
	ErrImplausibleBody = errors.New("height/weight out of plausible range")
)

// CalculateBMI expects height in centimeters and weight in kilograms.
func CalculateBMI(heightCm, weightKg float64) (float64, error) {
	if heightCm <= 0 || weightKg <= 0 {
		return 0, ErrNonPositiveBody
	}
	if heightCm < 50 || heightCm > 250 || weightKg < 10 || weightKg > 400 {
		return 0, ErrImplausibleBody
	}
	h := heightCm / 100
	return weightKg / (h * h), nil
}

// BMICategory labels a BMI value with its WHO class.
func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Insuffisance pondérale"
	case bmi < 25:
		return "Poids normal"
	case bmi < 30:
		return "Surpoids"
	case bmi < 35:
		return "Obésité classe I"
	case bmi < 40:
		return "Obésité classe II"
	default:
		return "Obésité classe III"
	}
}

func round(f float64) int {
	return int(math.Round(f))
}
