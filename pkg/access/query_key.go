package access

import (
	"strings"
)

const (
	KeyProfile        = "profile"
	KeyMeals          = "meals"
	KeyNutritionPlan  = "nutrition-plan"
	KeyDailyProgress  = "daily-progress"
	KeyWeeklyProgress = "weekly-progress"
)

// QueryKey identifies one read. Identical keys may share a cached response.
type QueryKey struct {
	Kind   string
	UserID string
	Date   string
}

func (k QueryKey) String() string {
	parts := []string{k.Kind, k.UserID}
	if k.Date != "" {
		parts = append(parts, k.Date)
	}
	return strings.Join(parts, ":")
}
