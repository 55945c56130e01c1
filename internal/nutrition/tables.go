// ABOUTME: Reference tables for energy expenditure, weight goals, macro splits and meals.
// ABOUTME: Lookups fall back to the first entry of each table for unknown ids.
package nutrition

// ActivityLevel maps a lifestyle to its TDEE multiplier.
type ActivityLevel struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Multiplier  float64 `json:"multiplier"`
	Description string  `json:"description"`
	Examples    string  `json:"examples"`
}

// Goal is a weight objective with its daily calorie adjustment.
type Goal struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	CalorieAdjustment int    `json:"calorie_adjustment"`
	Description       string `json:"description"`
	WeeklyChange      string `json:"weekly_change"`
	Warning           string `json:"warning,omitempty"`
}

// IsLoss reports whether the goal is a calorie deficit.
func (g Goal) IsLoss() bool { return g.CalorieAdjustment < 0 }

// MacroProfile splits calories between protein, carbohydrate and fat.
// The three fractions sum to 1.
type MacroProfile struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Protein     float64 `json:"protein"`
	Carbs       float64 `json:"carbs"`
	Fat         float64 `json:"fat"`
	Source      string  `json:"source"`
	Warning     string  `json:"warning,omitempty"`
}

// Meal is one slot of the daily meal distribution.
type Meal struct {
	Name       string  `json:"name"`
	Time       string  `json:"time"`
	Percentage float64 `json:"percentage"`
	Example    string  `json:"example"`
}

// ActivityLevels is ordered from least to most active.
var ActivityLevels = []ActivityLevel{
	{ID: "sedentary", Name: "Sédentaire", Multiplier: 1.2, Description: "Peu ou pas d'exercice, travail de bureau", Examples: "Bureau, télétravail, peu de marche"},
	{ID: "light", Name: "Légèrement actif", Multiplier: 1.375, Description: "Exercice léger 1-3 jours/semaine", Examples: "1-2 séances de sport, marche quotidienne"},
	{ID: "moderate", Name: "Modérément actif", Multiplier: 1.55, Description: "Exercice modéré 3-5 jours/semaine", Examples: "3-4 séances JJB/musculation"},
	{ID: "active", Name: "Très actif", Multiplier: 1.725, Description: "Exercice intense 6-7 jours/semaine", Examples: "5-6 séances, entraînement biquotidien"},
	{ID: "extreme", Name: "Athlète", Multiplier: 1.9, Description: "Exercice très intense + travail physique", Examples: "Compétiteur, 2 entraînements/jour"},
}

// Goals is ordered from largest deficit to largest surplus.
var Goals = []Goal{
	{ID: "aggressive_loss", Name: "Perte rapide", CalorieAdjustment: -750, Description: "Déficit important (-750 kcal)", WeeklyChange: "-0.75 kg/sem", Warning: "Ne pas maintenir plus de 4-6 semaines"},
	{ID: "moderate_loss", Name: "Perte modérée", CalorieAdjustment: -500, Description: "Déficit raisonnable (-500 kcal)", WeeklyChange: "-0.5 kg/sem"},
	{ID: "slow_loss", Name: "Perte lente", CalorieAdjustment: -250, Description: "Déficit léger (-250 kcal)", WeeklyChange: "-0.25 kg/sem"},
	{ID: "maintain", Name: "Maintien", CalorieAdjustment: 0, Description: "Maintenir le poids actuel", WeeklyChange: "0 kg/sem"},
	{ID: "slow_gain", Name: "Prise lente", CalorieAdjustment: 250, Description: "Surplus léger (+250 kcal)", WeeklyChange: "+0.25 kg/sem"},
	{ID: "moderate_gain", Name: "Prise modérée", CalorieAdjustment: 500, Description: "Surplus pour prise de masse (+500 kcal)", WeeklyChange: "+0.5 kg/sem"},
}

// MacroProfiles starts with the balanced split used as the fallback.
var MacroProfiles = []MacroProfile{
	{ID: "balanced", Name: "Équilibré", Description: "Répartition standard recommandée", Protein: 0.30, Carbs: 0.40, Fat: 0.30, Source: "ANSES - Agence nationale de sécurité sanitaire"},
	{ID: "high_protein", Name: "Haute protéine", Description: "Pour sportifs et prise de muscle", Protein: 0.35, Carbs: 0.40, Fat: 0.25, Source: "International Society of Sports Nutrition (ISSN)"},
	{ID: "low_carb", Name: "Low Carb", Description: "Réduction des glucides", Protein: 0.35, Carbs: 0.25, Fat: 0.40, Source: "Adapté pour sensibilité insuline"},
	{ID: "keto", Name: "Cétogène", Description: "Très faible en glucides", Protein: 0.25, Carbs: 0.05, Fat: 0.70, Source: "Régime cétogène standard", Warning: "Consulter un professionnel avant de commencer"},
	{ID: "athlete", Name: "Athlète Combat", Description: "Optimisé pour sports de combat", Protein: 0.30, Carbs: 0.50, Fat: 0.20, Source: "Recommandations pour athlètes d'endurance"},
}

// MealDistribution percentages sum to exactly 1.
var MealDistribution = []Meal{
	{Name: "Petit-déjeuner", Time: "7h00", Percentage: 0.25, Example: "Oeufs, pain complet, avocat, fruit"},
	{Name: "Déjeuner", Time: "12h30", Percentage: 0.35, Example: "Poulet, riz, légumes, huile d'olive"},
	{Name: "Collation", Time: "16h00", Percentage: 0.10, Example: "Fromage blanc, amandes, fruit"},
	{Name: "Dîner", Time: "20h00", Percentage: 0.30, Example: "Poisson, patate douce, salade"},
}

// FindActivityLevel returns the level with id, or sedentary.
func FindActivityLevel(id string) (ActivityLevel, bool) {
	for _, l := range ActivityLevels {
		if l.ID == id {
			return l, true
		}
	}
	return ActivityLevels[0], false
}

// FindGoal returns the goal with id, or a zero adjustment when unknown.
func FindGoal(id string) (Goal, bool) {
	for _, g := range Goals {
		if g.ID == id {
			return g, true
		}
	}
	return Goal{ID: id}, false
}

// FindMacroProfile returns the profile with id, or balanced.
func FindMacroProfile(id string) (MacroProfile, bool) {
	for _, p := range MacroProfiles {
		if p.ID == id {
			return p, true
		}
	}
	return MacroProfiles[0], false
}
