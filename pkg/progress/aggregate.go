package progress

import (
	"time"

	"github.com/tanmald/plate-check-mvp/domain"
)

// CalculateStreak counts consecutive on-plan days ending today. dates must
// be newest first; the walk stops at the first date that is not exactly
// today minus the streak so far.
func CalculateStreak(dates []string, today time.Time) int {
	streak := 0
	for _, d := range dates {
		expected := today.AddDate(0, 0, -streak).Format(domain.DateLayout)
		if d != expected {
			break
		}
		streak++
	}
	return streak
}

// WeeklyAverage is the mean of the stored scores rounded half up, 0 when
// there are none. Days without a row do not count.
func WeeklyAverage(scores []int) int {
	if len(scores) == 0 {
		return 0
	}
	sum := 0
	for _, s := range scores {
		sum += s
	}
	return roundHalfUp(sum, len(scores))
}

// SeriesAverage averages over every point of a series, zero days included.
func SeriesAverage(points []domain.WeeklyDataPoint) int {
	if len(points) == 0 {
		return 0
	}
	sum := 0
	for _, p := range points {
		sum += p.Score
	}
	return roundHalfUp(sum, len(points))
}

func roundHalfUp(sum, n int) int {
	q, r := sum/n, sum%n
	if r < 0 {
		q, r = q-1, r+n
	}
	if 2*r >= n {
		q++
	}
	return q
}

// BuildWeeklySeries lays the rows onto the seven days ending today. Missing
// days are zero and the last point is flagged as today.
func BuildWeeklySeries(rows []domain.DayScore, today time.Time) []domain.WeeklyDataPoint {
	byDate := make(map[string]domain.DayScore, len(rows))
	for _, r := range rows {
		byDate[r.Date] = r
	}

	start := today.AddDate(0, 0, -(domain.WeekLength - 1))
	todayKey := today.Format(domain.DateLayout)

	series := make([]domain.WeeklyDataPoint, 0, domain.WeekLength)
	for i := 0; i < domain.WeekLength; i++ {
		day := start.AddDate(0, 0, i)
		key := day.Format(domain.DateLayout)
		row := byDate[key]
		series = append(series, domain.WeeklyDataPoint{
			Day:         day.Weekday().String(),
			ShortDay:    day.Weekday().String()[:3],
			Date:        key,
			Score:       row.Score,
			MealsLogged: row.MealsLogged,
			IsToday:     key == todayKey,
		})
	}
	return series
}

// OnPlanDays counts the series days scoring at least 60, the looser bar
// the weekly view uses.
func OnPlanDays(points []domain.WeeklyDataPoint) int {
	n := 0
	for _, p := range points {
		if p.Score >= 60 {
			n++
		}
	}
	return n
}

// OffPlanPercentage is the share of the week below the on-plan bar, as a
// whole percent.
func OffPlanPercentage(points []domain.WeeklyDataPoint) int {
	return roundHalfUp((domain.WeekLength-OnPlanDays(points))*100, domain.WeekLength)
}
