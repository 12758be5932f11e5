package domain

var (
	MessageSuccessGetDailyProgress  = "daily progress retrieved successfully"
	MessageSuccessGetWeeklyProgress = "weekly progress retrieved successfully"

	MessageFailedGetDailyProgress  = "failed to retrieve daily progress"
	MessageFailedGetWeeklyProgress = "failed to retrieve weekly progress"
)

const (
	StreakLookback = 30
	WeekLength     = 7
)

type (
	DailyStats struct {
		DailyScore    int `json:"dailyScore"`
		Streak        int `json:"streak"`
		WeeklyAverage int `json:"weeklyAverage"`
		MealsLogged   int `json:"mealsLogged"`
		TotalMeals    int `json:"totalMeals"`
	}

	WeeklyDataPoint struct {
		Day         string `json:"day"`
		ShortDay    string `json:"shortDay"`
		Date        string `json:"date,omitempty"`
		Score       int    `json:"score"`
		MealsLogged int    `json:"mealsLogged"`
		IsToday     bool   `json:"isToday,omitempty"`
	}

	// DayScore is a stored daily record reduced to what the aggregates need.
	DayScore struct {
		Date        string
		Score       int
		MealsLogged int
	}
)
