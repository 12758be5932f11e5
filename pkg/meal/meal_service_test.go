package meal

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/tanmald/plate-check-mvp/domain"
	"github.com/tanmald/plate-check-mvp/entities"
	"github.com/tanmald/plate-check-mvp/pkg/fixtures"
)

type fakeMealRepository struct {
	rows     []*entities.MealLog
	saved    *entities.MealLog
	day      time.Time
	dayStart time.Time
	dayEnd   time.Time
	err      error
}

func (f *fakeMealRepository) GetMealsByUser(context.Context, string) ([]*entities.MealLog, error) {
	return f.rows, f.err
}

func (f *fakeMealRepository) CreateMealWithProgress(_ context.Context, meal *entities.MealLog, day, dayStart, dayEnd time.Time) (*entities.DailyProgress, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.saved, f.day, f.dayStart, f.dayEnd = meal, day, dayStart, dayEnd
	score, count := *meal.AdherenceScore, 1
	return &entities.DailyProgress{UserID: meal.UserID, Date: day, DailyAdherenceScore: &score, MealsLogged: &count}, nil
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestToMeal_Defaults(t *testing.T) {
	row := &entities.MealLog{
		ID:       uuid.New(),
		MealType: domain.MealTypeDinner,
		LoggedAt: time.Date(2026, 1, 5, 19, 5, 0, 0, time.UTC),
	}

	m := ToMeal(row, time.UTC)

	assert.Equal(t, "Meal", m.Name)
	assert.Equal(t, "7:05 PM", m.Time)
	assert.Equal(t, 0, m.Score)
	assert.Equal(t, []string{}, m.Foods)
	assert.Empty(t, m.ImageURL)
	assert.Empty(t, m.Feedback)
}

func TestToMeal_Passthrough(t *testing.T) {
	row := &entities.MealLog{
		ID:             uuid.New(),
		MealType:       domain.MealTypeBreakfast,
		MealName:       strPtr("Oatmeal"),
		LoggedAt:       time.Date(2026, 1, 5, 8, 30, 0, 0, time.UTC),
		AdherenceScore: intPtr(92),
		PhotoURL:       strPtr("https://cdn/x.jpg"),
		DetectedFoods:  []string{"Oats", "Berries"},
		AIFeedback:     strPtr("Nice"),
	}

	m := ToMeal(row, time.UTC)

	assert.Equal(t, "Oatmeal", m.Name)
	assert.Equal(t, "8:30 AM", m.Time)
	assert.Equal(t, 92, m.Score)
	assert.Equal(t, "https://cdn/x.jpg", m.ImageURL)
	assert.Equal(t, []string{"Oats", "Berries"}, m.Foods)
	assert.Equal(t, "Nice", m.Feedback)
}

func TestGetMeals_KeepsRepositoryOrder(t *testing.T) {
	repo := &fakeMealRepository{rows: []*entities.MealLog{
		{ID: uuid.New(), MealType: "lunch", LoggedAt: time.Date(2026, 1, 5, 12, 45, 0, 0, time.UTC)},
		{ID: uuid.New(), MealType: "breakfast", LoggedAt: time.Date(2026, 1, 5, 8, 30, 0, 0, time.UTC)},
	}}
	svc := NewMealService(repo, zaptest.NewLogger(t), time.UTC)

	meals, err := svc.GetMeals(context.Background(), uuid.NewString())

	require.NoError(t, err)
	require.Len(t, meals, 2)
	assert.Equal(t, "lunch", meals[0].Type)
	assert.Equal(t, "12:45 PM", meals[0].Time)
}

func TestGetMeals_Error(t *testing.T) {
	svc := NewMealService(&fakeMealRepository{err: errors.New("timeout")}, zaptest.NewLogger(t), time.UTC)

	_, err := svc.GetMeals(context.Background(), uuid.NewString())

	assert.EqualError(t, err, "timeout")
}

func TestSaveMeal_StoresAnalysisAndDay(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	repo := &fakeMealRepository{}
	svc := NewMealService(repo, zaptest.NewLogger(t), loc).(*mealService)
	svc.now = func() time.Time { return time.Date(2026, 1, 5, 23, 30, 0, 0, time.UTC) }
	result := fixtures.MealResult()

	saved, err := svc.SaveMeal(context.Background(), uuid.NewString(), domain.SaveMealRequest{
		MealType: domain.MealTypeLunch,
		PhotoURL: "https://cdn/lunch.jpg",
		Analysis: &result,
	})

	require.NoError(t, err)
	assert.Equal(t, 78, saved.Score)
	assert.Equal(t, []string{"Grilled chicken breast", "Brown rice", "Steamed broccoli", "Caesar dressing"}, []string(repo.saved.DetectedFoods))
	assert.Equal(t, result.Feedback, *repo.saved.AIFeedback)
	assert.Nil(t, repo.saved.MealName)

	var stored domain.MealAnalysis
	require.NoError(t, json.Unmarshal(repo.saved.Analysis, &stored))
	assert.Equal(t, result.Suggestions, stored.Suggestions)

	// 23:30 UTC is already the 6th two hours east
	assert.Equal(t, "2026-01-06", repo.day.Format("2006-01-02"))
	assert.Equal(t, 24*time.Hour, repo.dayEnd.Sub(repo.dayStart))
}

func TestSaveMeal_RejectsUnknownType(t *testing.T) {
	svc := NewMealService(&fakeMealRepository{}, zaptest.NewLogger(t), time.UTC)
	result := fixtures.MealResult()

	_, err := svc.SaveMeal(context.Background(), uuid.NewString(), domain.SaveMealRequest{MealType: "brunch", Analysis: &result})

	assert.ErrorIs(t, err, domain.ErrInvalidMealType)
}
