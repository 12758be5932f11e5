package domain

var (
	MessageSuccessGetScreen = "screen composed successfully"
	MessageFailedGetScreen  = "failed to compose screen"
	MessageSuccessFlowStep  = "flow updated"
	MessageFailedFlowStep   = "flow transition rejected"
)

type (
	HomeScreen struct {
		Profile    *Profile    `json:"profile"`
		Stats      *DailyStats `json:"stats"`
		TodayMeals []Meal      `json:"todayMeals"`
		HasPlan    bool        `json:"hasPlan"`
		Greeting   string      `json:"greeting"`
		Name       string      `json:"name"`
	}

	ProgressScreen struct {
		Stats             *DailyStats       `json:"stats"`
		TodayMeals        []Meal            `json:"todayMeals"`
		PendingMealTypes  []string          `json:"pendingMealTypes"`
		Weekly            []WeeklyDataPoint `json:"weekly"`
		SeriesAverage     int               `json:"seriesAverage"`
		OnPlanDays        int               `json:"onPlanDays"`
		OffPlanPercentage int               `json:"offPlanPercentage"`
	}

	SettingsScreen struct {
		Profile  *Profile  `json:"profile"`
		Identity *Identity `json:"identity"`
		HasPlan  bool      `json:"hasPlan"`
		PlanName string    `json:"planName,omitempty"`
	}

	SelectMealRequest struct {
		MealType string `json:"meal_type" validate:"required,oneof=breakfast lunch dinner snack"`
	}

	OnboardingStepRequest struct {
		Step string `json:"step" validate:"required"`
	}

	EditProfileForm struct {
		FullName string `json:"full_name" validate:"min=2,max=100"`
		Email    string `json:"email" validate:"required,email,max=255"`
	}
)
