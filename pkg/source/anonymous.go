package source

import (
	"context"

	"github.com/tanmald/plate-check-mvp/domain"
)

// anonymousSource answers reads with empty results and refuses writes.
type anonymousSource struct{}

func (anonymousSource) Kind() Kind { return KindAnonymous }

func (anonymousSource) GetProfile(context.Context) (*domain.Profile, error) {
	return nil, nil
}

func (anonymousSource) UpdateProfile(context.Context, domain.UpdateProfileRequest) (*domain.Profile, error) {
	return nil, domain.ErrNoIdentity
}

func (anonymousSource) GetMeals(context.Context, string) ([]domain.Meal, error) {
	return []domain.Meal{}, nil
}

func (anonymousSource) SaveMeal(context.Context, domain.SaveMealRequest) (*domain.SavedMeal, error) {
	return nil, domain.ErrNoIdentity
}

func (anonymousSource) GetPlan(context.Context) (domain.PlanResult, error) {
	return domain.PlanResult{}, nil
}

func (anonymousSource) CreatePlan(context.Context, domain.CreatePlanRequest) (*domain.CreatedPlan, error) {
	return nil, domain.ErrPlanNotAuthenticated
}

func (anonymousSource) GetDailyProgress(context.Context, string) (*domain.DailyStats, error) {
	return nil, nil
}

func (anonymousSource) GetWeeklyProgress(context.Context) ([]domain.WeeklyDataPoint, error) {
	return []domain.WeeklyDataPoint{}, nil
}
