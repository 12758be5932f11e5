// Package fixtures holds the deterministic data served to test identities.
// Every accessor returns a fresh copy so callers may mutate what they get.
package fixtures

import (
	"strings"
	"time"

	"github.com/tanmald/plate-check-mvp/domain"
)

const (
	TestUserEmail  = "test@platecheck.app"
	TestUserDomain = "@test.platecheck.app"
	TestUserID     = "test-user-id"
	TestUserName   = "Test User"
)

// IsTestEmail reports whether the address belongs to a test identity. The
// match is exact and case-sensitive.
func IsTestEmail(email string) bool {
	if email == "" {
		return false
	}
	return email == TestUserEmail || strings.HasSuffix(email, TestUserDomain)
}

func Meals() []domain.Meal {
	return []domain.Meal{
		{
			ID:       "1",
			Type:     domain.MealTypeBreakfast,
			Name:     "Oatmeal with berries",
			Time:     "8:30 AM",
			Score:    92,
			Foods:    []string{"Oats", "Blueberries", "Almonds", "Honey"},
			Feedback: "Perfect match with your breakfast template!",
		},
		{
			ID:       "2",
			Type:     domain.MealTypeLunch,
			Name:     "Grilled chicken salad",
			Time:     "12:45 PM",
			Score:    78,
			Foods:    []string{"Chicken breast", "Mixed greens", "Tomatoes", "Caesar dressing"},
			Feedback: "Good protein choice. Consider olive oil instead of Caesar.",
		},
		{
			ID:       "3",
			Type:     domain.MealTypeSnack,
			Name:     "Greek yogurt",
			Time:     "3:30 PM",
			Score:    88,
			Foods:    []string{"Greek yogurt", "Granola"},
			Feedback: "Great snack!",
		},
	}
}

func Plan() *domain.NutritionPlan {
	return &domain.NutritionPlan{
		Name:       "Weight Management Plan",
		UploadedAt: "Dec 28, 2025",
		Source:     "Dr. Smith Nutrition Clinic",
		Templates: []domain.MealTemplate{
			{
				ID:            "1",
				Type:          domain.MealTypeBreakfast,
				Icon:          "🌅",
				Name:          "Breakfast",
				RequiredFoods: []string{"Whole grains", "Protein source", "Fruit"},
				AllowedFoods:  []string{"Oatmeal", "Eggs", "Greek yogurt", "Berries", "Whole wheat toast"},
				Calories:      "350-450",
				Protein:       "20-30g",
			},
			{
				ID:            "2",
				Type:          domain.MealTypeLunch,
				Icon:          "☀️",
				Name:          "Lunch",
				RequiredFoods: []string{"Lean protein", "Vegetables", "Complex carbs"},
				AllowedFoods:  []string{"Chicken", "Fish", "Salad greens", "Quinoa", "Brown rice"},
				Calories:      "450-550",
				Protein:       "30-40g",
			},
			{
				ID:            "3",
				Type:          domain.MealTypeDinner,
				Icon:          "🌙",
				Name:          "Dinner",
				RequiredFoods: []string{"Lean protein", "Vegetables"},
				AllowedFoods:  []string{"Salmon", "Chicken", "Tofu", "Broccoli", "Spinach"},
				Calories:      "400-500",
				Protein:       "25-35g",
			},
			{
				ID:            "4",
				Type:          domain.MealTypeSnack,
				Icon:          "🍎",
				Name:          "Snacks",
				RequiredFoods: []string{"Protein or fruit"},
				AllowedFoods:  []string{"Greek yogurt", "Nuts", "Apple", "Protein bar"},
				Calories:      "150-200",
				Protein:       "10-15g",
			},
		},
	}
}

func WeeklyData() []domain.WeeklyDataPoint {
	return []domain.WeeklyDataPoint{
		{Day: "Monday", ShortDay: "Mon", Score: 88, MealsLogged: 4},
		{Day: "Tuesday", ShortDay: "Tue", Score: 75, MealsLogged: 4},
		{Day: "Wednesday", ShortDay: "Wed", Score: 92, MealsLogged: 4},
		{Day: "Thursday", ShortDay: "Thu", Score: 68, MealsLogged: 3},
		{Day: "Friday", ShortDay: "Fri", Score: 45, MealsLogged: 2},
		{Day: "Saturday", ShortDay: "Sat", Score: 82, MealsLogged: 4},
		{Day: "Sunday", ShortDay: "Sun", Score: 85, MealsLogged: 3, IsToday: true},
	}
}

func DailyStats() *domain.DailyStats {
	return &domain.DailyStats{
		DailyScore:    85,
		Streak:        7,
		WeeklyAverage: 82,
		MealsLogged:   2,
		TotalMeals:    domain.ExpectedMealsPerDay,
	}
}

func MealResult() domain.MealAnalysis {
	return domain.MealAnalysis{
		Score:      78,
		Status:     domain.StatusOnPlan,
		Confidence: domain.ConfidenceHigh,
		DetectedFoods: []domain.DetectedFood{
			{Name: "Grilled chicken breast", Matched: true, Category: "Protein"},
			{Name: "Brown rice", Matched: true, Category: "Carbs"},
			{Name: "Steamed broccoli", Matched: true, Category: "Vegetables"},
			{Name: "Caesar dressing", Matched: false, Category: "Sauce"},
		},
		Feedback: "Great protein choice! The chicken and rice match your lunch template. Consider using olive oil instead of Caesar dressing for better plan adherence.",
		Suggestions: []domain.Suggestion{
			{Food: "Caesar dressing", Replacement: "Olive oil & lemon", Reason: "Lower sodium, fits plan"},
		},
	}
}

// Profile returns the test profile stamped with the given creation time.
func Profile(now time.Time) *domain.Profile {
	name := TestUserName
	return &domain.Profile{
		ID:        TestUserID,
		Email:     TestUserEmail,
		FullName:  &name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Identity builds the test identity for the given address.
func Identity(email string, now time.Time) domain.Identity {
	return domain.Identity{
		ID:          TestUserID,
		Email:       email,
		DisplayName: TestUserName,
		Kind:        domain.IdentityTest,
		Aud:         "authenticated",
		Role:        "authenticated",
		CreatedAt:   now,
	}
}
