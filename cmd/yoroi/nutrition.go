// ABOUTME: CLI commands for nutrition targets: full plan, macro split, meals and BMI.
// ABOUTME: The plan falls back to stored weight, height and gender when flags are omitted.
package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/harperreed/yoroi/internal/nutrition"
	"github.com/spf13/cobra"
)

var (
	nutWeight   float64
	nutHeight   float64
	nutAge      int
	nutGender   string
	nutActivity string
	nutGoal     string
	nutMacros   string
)

var nutritionCmd = &cobra.Command{
	Use:     "nutrition",
	Aliases: []string{"nut"},
	Short:   "Calorie and macro targets",
	Long: `Compute daily calorie and macro targets (Mifflin-St Jeor).

COMMANDS:

  plan     Full plan: BMR, TDEE, goal calories, macros, protein, meals
  macros   Split a calorie total into protein, carbs and fat
  meals    Spread a calorie total over the day's meals
  bmi      Body mass index from height and weight
  tables   Activity levels, goals and macro profiles`,
}

var nutritionPlanCmd = &cobra.Command{
	Use:   "plan",
	Short: "Full nutrition plan",
	Long: `Compute a full nutrition plan.

Weight defaults to your latest weigh-in, height and gender to your settings.

Examples:
  yoroi nutrition plan --age 30
  yoroi nutrition plan --weight 80 --height 180 --age 30 --gender male --goal moderate_loss`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		p := nutrition.Profile{
			Weight:        nutWeight,
			Height:        nutHeight,
			Age:           nutAge,
			Gender:        nutrition.Gender(nutGender),
			ActivityLevel: nutActivity,
			Goal:          nutGoal,
			MacroProfile:  nutMacros,
		}
		if p.Weight <= 0 {
			if m := repo.GetLatestMeasurement(ctx); m != nil {
				p.Weight = m.Weight
			}
		}
		s := repo.GetUserSettings(ctx)
		if p.Height <= 0 && s.Height != nil {
			p.Height = *s.Height
		}
		if p.Gender == "" && s.Gender != nil {
			p.Gender = nutrition.Gender(*s.Gender)
		}

		switch {
		case p.Weight <= 0:
			return fmt.Errorf("weight is required: pass --weight or log a weigh-in")
		case p.Height <= 0:
			return fmt.Errorf("height is required: pass --height or 'yoroi settings set height <cm>'")
		case p.Age <= 0:
			return fmt.Errorf("age is required: pass --age")
		case p.Gender != nutrition.Male && p.Gender != nutrition.Female:
			return fmt.Errorf("invalid gender: %q (use male or female)", p.Gender)
		}

		plan := nutrition.CalculateNutritionPlan(p)
		goal, _ := nutrition.FindGoal(p.Goal)

		fmt.Printf("%s\n", color.New(color.Bold).Sprintf("%.1f kg, %.0f cm, %d y, %s", p.Weight, p.Height, p.Age, p.Gender))
		fmt.Printf("  BMR             %d kcal\n", plan.BMR)
		fmt.Printf("  TDEE            %d kcal\n", plan.TDEE)
		fmt.Printf("  Goal            %d kcal", plan.GoalCalories)
		if goal.Name != "" {
			fmt.Printf(" (%s, %s)", goal.Name, goal.WeeklyChange)
		}
		fmt.Println()
		if plan.Deficit != 0 {
			fmt.Printf("  Deficit         %d kcal\n", plan.Deficit)
		}
		fmt.Printf("  Protein target  %d g (%d-%d)\n", plan.Protein.Optimal, plan.Protein.Min, plan.Protein.Max)
		fmt.Printf("  Water           %.1f L\n", plan.HydrationL)
		fmt.Println()
		printMacros(plan.Macros)
		fmt.Println()
		printMeals(plan.Meals)
		if goal.Warning != "" {
			color.Yellow("\n%s", goal.Warning)
		}
		return nil
	},
}

var nutritionMacrosCmd = &cobra.Command{
	Use:         "macros <calories>",
	Short:       "Split calories into macros",
	Args:        cobra.ExactArgs(1),
	Annotations: withoutStorage(),
	RunE: func(cmd *cobra.Command, args []string) error {
		kcal, err := parseCalories(args[0])
		if err != nil {
			return err
		}
		printMacros(nutrition.CalculateMacros(kcal, nutMacros))
		if p, _ := nutrition.FindMacroProfile(nutMacros); p.Warning != "" {
			color.Yellow("\n%s", p.Warning)
		}
		return nil
	},
}

var nutritionMealsCmd = &cobra.Command{
	Use:         "meals <calories>",
	Short:       "Spread calories over meals",
	Args:        cobra.ExactArgs(1),
	Annotations: withoutStorage(),
	RunE: func(cmd *cobra.Command, args []string) error {
		kcal, err := parseCalories(args[0])
		if err != nil {
			return err
		}
		printMeals(nutrition.GetMealCalories(kcal))
		return nil
	},
}

var nutritionBMICmd = &cobra.Command{
	Use:         "bmi <height-cm> <weight-kg>",
	Short:       "Body mass index",
	Args:        cobra.ExactArgs(2),
	Annotations: withoutStorage(),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid height: %s", args[0])
		}
		w, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid weight: %s", args[1])
		}
		bmi, err := nutrition.CalculateBMI(h, w)
		if err != nil {
			return err
		}
		fmt.Printf("BMI %.1f (%s)\n", bmi, nutrition.BMICategory(bmi))
		return nil
	},
}

var nutritionTablesCmd = &cobra.Command{
	Use:         "tables",
	Short:       "List activity levels, goals and macro profiles",
	Annotations: withoutStorage(),
	RunE: func(cmd *cobra.Command, args []string) error {
		faint := color.New(color.Faint)
		bold := color.New(color.Bold)

		bold.Println("Activity levels")
		for _, l := range nutrition.ActivityLevels {
			fmt.Printf("  %s x%.3g  %s\n", padRight(l.ID, 16), l.Multiplier, faint.Sprint(l.Description))
		}
		bold.Println("\nGoals")
		for _, g := range nutrition.Goals {
			fmt.Printf("  %s %+5d  %s\n", padRight(g.ID, 16), g.CalorieAdjustment, faint.Sprint(g.WeeklyChange))
		}
		bold.Println("\nMacro profiles")
		for _, p := range nutrition.MacroProfiles {
			fmt.Printf("  %s P%.0f/C%.0f/F%.0f  %s\n", padRight(p.ID, 16), p.Protein*100, p.Carbs*100, p.Fat*100, faint.Sprint(p.Description))
		}
		return nil
	},
}

func parseCalories(s string) (int, error) {
	kcal, err := strconv.Atoi(s)
	if err != nil || kcal <= 0 {
		return 0, fmt.Errorf("invalid calories: %s", s)
	}
	return kcal, nil
}

func printMacros(m nutrition.MacroResult) {
	fmt.Printf("  %-9s %4d g  %5d kcal  %3d%%\n", "Protein", m.Protein.Grams, m.Protein.Calories, m.Protein.Percentage)
	fmt.Printf("  %-9s %4d g  %5d kcal  %3d%%\n", "Carbs", m.Carbs.Grams, m.Carbs.Calories, m.Carbs.Percentage)
	fmt.Printf("  %-9s %4d g  %5d kcal  %3d%%\n", "Fat", m.Fat.Grams, m.Fat.Calories, m.Fat.Percentage)
}

func printMeals(meals []nutrition.MealCalories) {
	faint := color.New(color.Faint)
	for _, m := range meals {
		fmt.Printf("  %s %s %5d kcal  %s\n", padRight(m.Time, 6), padRight(m.Name, 16), m.Calories, faint.Sprint(m.Example))
	}
}

func init() {
	f := nutritionPlanCmd.Flags()
	f.Float64Var(&nutWeight, "weight", 0, "weight in kg (default latest weigh-in)")
	f.Float64Var(&nutHeight, "height", 0, "height in cm (default from settings)")
	f.IntVar(&nutAge, "age", 0, "age in years")
	f.StringVar(&nutGender, "gender", "", "male or female (default from settings)")
	f.StringVar(&nutActivity, "activity", "moderate", "activity level (see 'yoroi nutrition tables')")
	f.StringVar(&nutGoal, "goal", "maintain", "goal (see 'yoroi nutrition tables')")
	f.StringVar(&nutMacros, "macros", "balanced", "macro profile (see 'yoroi nutrition tables')")

	nutritionMacrosCmd.Flags().StringVar(&nutMacros, "macros", "balanced", "macro profile")

	nutritionCmd.AddCommand(nutritionPlanCmd)
	nutritionCmd.AddCommand(nutritionMacrosCmd)
	nutritionCmd.AddCommand(nutritionMealsCmd)
	nutritionCmd.AddCommand(nutritionBMICmd)
	nutritionCmd.AddCommand(nutritionTablesCmd)
	rootCmd.AddCommand(nutritionCmd)
}
