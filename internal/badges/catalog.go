// ABOUTME: Badge catalog: every achievement with its category, threshold and XP reward.
// ABOUTME: Each badge reads one progress metric from Stats; a few combine two metrics.
package badges

// Category groups badges on the achievements screen.
type Category string

const (
	CategoryStreak   Category = "streak"
	CategoryWeight   Category = "weight"
	CategoryTraining Category = "training"
	CategorySpecial  Category = "special"
	CategoryTime     Category = "time"
)

// Badge is one unlockable achievement.
type Badge struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
	Requirement float64  `json:"requirement"`
	XP          int      `json:"xp"`

	metric func(Stats) float64
	unlock func(Stats) bool
}

func bestStreak(s Stats) float64    { return float64(max(s.CurrentStreak, s.MaxStreak)) }
func currentStreak(s Stats) float64 { return float64(s.CurrentStreak) }
func weightLost(s Stats) float64    { return s.WeightLost }
func workouts(s Stats) float64      { return float64(s.TotalWorkouts) }
func daysUsing(s Stats) float64     { return float64(s.DaysUsingApp) }
func hydration(s Stats) float64     { return float64(s.HydrationStreak) }

func flag(f func(Stats) bool) func(Stats) float64 {
	return func(s Stats) float64 {
		if f(s) {
			return 1
		}
		return 0
	}
}

func streak(id, name, desc string, req float64, xp int) Badge {
	return Badge{ID: id, Name: name, Description: desc, Category: CategoryStreak, Requirement: req, XP: xp, metric: bestStreak}
}

func lost(id, name, desc string, req float64, xp int) Badge {
	return Badge{ID: id, Name: name, Description: desc, Category: CategoryWeight, Requirement: req, XP: xp, metric: weightLost}
}

func training(id, name, desc string, req float64, xp int) Badge {
	return Badge{ID: id, Name: name, Description: desc, Category: CategoryTraining, Requirement: req, XP: xp, metric: workouts}
}

func usage(id, name, desc string, req float64, xp int) Badge {
	return Badge{ID: id, Name: name, Description: desc, Category: CategoryTime, Requirement: req, XP: xp, metric: daysUsing}
}

// All is the full catalog in display order.
var All = []Badge{
	// streak
	streak("first_flame", "Premiere flamme", "7 jours de streak consecutifs", 7, 50),
	streak("fortnight_warrior", "Athlète quinzaine", "14 jours de streak consecutifs", 14, 100),
	streak("on_fire", "En feu", "30 jours de streak consecutifs", 30, 150),
	streak("fifty_days", "Cinquante jours", "50 jours de streak consecutifs", 50, 250),
	streak("inferno", "Inferno", "100 jours de streak consecutifs", 100, 500),
	streak("double_century", "Double centenaire", "200 jours de streak consecutifs", 200, 1000),
	streak("legendary_streak", "Legendaire", "365 jours de streak consecutifs", 365, 2000),
	streak("centurion", "Centurion", "150 jours de streak consecutifs", 150, 750),

	// weight
	{ID: "first_step", Name: "Premier pas", Description: "Premiere pesee enregistree", Category: CategoryWeight, Requirement: 1, XP: 25,
		metric: func(s Stats) float64 { return float64(s.TotalMeasurements) }},
	lost("first_three", "Premiers kilos", "3 kg perdus au total", 3, 75),
	lost("launched", "Lance", "5 kg perdus au total", 5, 100),
	lost("determined", "Determine", "10 kg perdus au total", 10, 250),
	lost("halfway_hero", "Heros mi-parcours", "15 kg perdus au total", 15, 400),
	lost("transformed", "Transforme", "20 kg perdus au total", 20, 500),
	lost("super_transformed", "Super transforme", "25 kg perdus au total", 25, 750),
	lost("ultimate_warrior", "Athlète ultime", "30 kg perdus au total", 30, 1000),
	{ID: "goal_reached", Name: "Objectif atteint", Description: "Atteindre ton objectif de poids", Category: CategoryWeight, Requirement: 1, XP: 1000,
		metric: flag(func(s Stats) bool { return s.GoalReached })},
	lost("first_kilo", "Premier kilo", "1 kg perdu au total", 1, 25),
	{ID: "halfway_goal", Name: "Mi-chemin", Description: "Atteindre 50% de ton objectif de poids", Category: CategoryWeight, Requirement: 1, XP: 500,
		metric: flag(func(s Stats) bool { return s.HalfwayGoalReached })},

	// training
	training("first_training", "Premier combat", "5 entrainements completes", 5, 25),
	training("beginner", "Debutant", "10 entrainements completes", 10, 50),
	training("committed", "Engage", "25 entrainements completes", 25, 100),
	training("regular", "Regulier", "50 entrainements completes", 50, 200),
	training("warrior", "Athlète", "100 entrainements completes", 100, 500),
	training("veteran", "Veteran", "200 entrainements completes", 200, 800),
	training("elite", "Elite", "300 entrainements completes", 300, 1200),
	training("master", "Maitre", "500 entrainements completes", 500, 2000),
	training("legend", "Legende", "1000 entrainements completes", 1000, 5000),
	training("champion", "Champion", "400 entrainements completes", 400, 1500),
	training("unstoppable", "Inarretable", "750 entrainements completes", 750, 3000),

	// special
	{ID: "team_yoroi_member", Name: "Membre Team Yoroi", Description: "Tu fais partie de la famille. Bienvenue, champion.", Category: CategorySpecial, Requirement: 0, XP: 100,
		metric: func(Stats) float64 { return 1 }},
	{ID: "early_bird", Name: "Leve-tot", Description: "10 pesees avant 7h du matin", Category: CategorySpecial, Requirement: 10, XP: 100,
		metric: func(s Stats) float64 { return float64(s.EarlyMeasurements) }},
	{ID: "night_owl", Name: "Noctambule", Description: "10 entrainements apres 21h", Category: CategorySpecial, Requirement: 10, XP: 100,
		metric: func(s Stats) float64 { return float64(s.LateWorkouts) }},
	{ID: "analyst", Name: "Analyste", Description: "50 mensurations prises", Category: CategorySpecial, Requirement: 50, XP: 150,
		metric: func(s Stats) float64 { return float64(s.MeasurementsWithDetails) }},
	{ID: "complete", Name: "Complet", Description: "Tous les champs remplis 30 fois", Category: CategorySpecial, Requirement: 30, XP: 300,
		metric: func(s Stats) float64 { return float64(s.CompleteMeasurements) }},
	{ID: "double_session", Name: "Double session", Description: "2 entrainements en 1 jour", Category: CategorySpecial, Requirement: 1, XP: 150,
		metric: flag(func(s Stats) bool { return s.HasDoubleSession })},
	{ID: "weekend_warrior", Name: "Athlète weekend", Description: "Entrainement samedi et dimanche", Category: CategorySpecial, Requirement: 1, XP: 100,
		metric: flag(func(s Stats) bool { return s.HasWeekendWarrior })},
	{ID: "seven_days_straight", Name: "Semaine parfaite", Description: "7 jours entrainement consecutifs", Category: CategorySpecial, Requirement: 7, XP: 200,
		metric: currentStreak},
	{ID: "perfect_month", Name: "Mois parfait", Description: "30 jours entrainement consecutifs", Category: CategorySpecial, Requirement: 30, XP: 500,
		metric: currentStreak},
	{ID: "hydration_master", Name: "Maitre hydratation", Description: "Objectif hydratation 7 jours de suite", Category: CategorySpecial, Requirement: 7, XP: 100,
		metric: hydration},
	{ID: "triple_session", Name: "Triple session", Description: "3 entrainements en 1 jour", Category: CategorySpecial, Requirement: 1, XP: 300,
		metric: flag(func(s Stats) bool { return s.HasTripleSession })},
	{ID: "hydration_legend", Name: "Legende hydratation", Description: "Objectif hydratation 30 jours de suite", Category: CategorySpecial, Requirement: 30, XP: 300,
		metric: hydration},

	// time
	usage("one_month", "1 mois", "Utiliser l'app pendant 1 mois", 30, 100),
	usage("six_months", "6 mois", "Utiliser l'app pendant 6 mois", 180, 300),
	usage("one_year", "1 an", "Utiliser l'app pendant 1 an", 365, 1000),
	{ID: "anniversary", Name: "Anniversaire", Description: "1 an jour pour jour depuis la premiere utilisation", Category: CategoryTime, Requirement: 1, XP: 500,
		metric: flag(func(s Stats) bool { return s.IsAnniversary })},
	usage("two_years", "2 ans", "Utiliser l'app pendant 2 ans", 730, 2000),

	// knight series
	training("squire", "Ecuyer", "Premiers pas sur le chemin de la chevalerie", 5, 50),
	training("knight", "Chevalier", "Adoube comme chevalier du royaume", 50, 250),
	training("knight_gold", "Chevalier d'Or", "Elite des chevaliers, armure doree", 100, 500),
	training("paladin", "Paladin", "Champion de la justice et de l'honneur", 200, 1000),
	streak("crusader", "Croise", "En croisade pour ta transformation", 7, 150),
	streak("guardian", "Gardien", "Gardien inebranlable de tes objectifs", 30, 300),
	{ID: "templar", Name: "Templier", Description: "Discipline de fer, corps d'acier", Category: CategorySpecial, Requirement: 1, XP: 400,
		metric: func(s Stats) float64 {
			return (min(float64(s.TotalWorkouts)/50, 1) + min(s.WeightLost/5, 1)) / 2
		},
		unlock: func(s Stats) bool { return s.TotalWorkouts >= 50 && s.WeightLost >= 5 }},
	{ID: "conqueror", Name: "Conquerant", Description: "Tu as conquis ton objectif", Category: CategoryWeight, Requirement: 1, XP: 750,
		metric: flag(func(s Stats) bool { return s.GoalReached })},
	usage("lord", "Seigneur", "Seigneur de ton domaine", 100, 500),
	{ID: "legendary_king", Name: "Roi Legendaire", Description: "Regne absolu sur ta transformation", Category: CategorySpecial, Requirement: 1, XP: 2000,
		metric: func(s Stats) float64 {
			goal := 0.0
			if s.GoalReached {
				goal = 1
			}
			return (min(float64(s.DaysUsingApp)/365, 1) + goal) / 2
		},
		unlock: func(s Stats) bool { return s.DaysUsingApp >= 365 && s.GoalReached }},
}

// ByID returns the badge with id.
func ByID(id string) (Badge, bool) {
	for _, b := range All {
		if b.ID == id {
			return b, true
		}
	}
	return Badge{}, false
}

// ByCategory returns the badges in c, in catalog order.
func ByCategory(c Category) []Badge {
	var out []Badge
	for _, b := range All {
		if b.Category == c {
			out = append(out, b)
		}
	}
	return out
}

// TotalXP sums the rewards of the given unlocked badge ids. Unknown ids are ignored.
func TotalXP(unlocked []string) int {
	total := 0
	for _, id := range unlocked {
		if b, ok := ByID(id); ok {
			total += b.XP
		}
	}
	return total
}
