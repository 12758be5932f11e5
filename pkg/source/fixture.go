package source

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tanmald/plate-check-mvp/domain"
	"github.com/tanmald/plate-check-mvp/pkg/fixtures"
)

// fixtureSource serves test identities. It never reaches remote storage
// and its mutations succeed without persisting anything.
type fixtureSource struct {
	latency      time.Duration
	profileStamp time.Time
}

func (s *fixtureSource) Kind() Kind { return KindFixture }

func (s *fixtureSource) GetProfile(context.Context) (*domain.Profile, error) {
	return fixtures.Profile(s.profileStamp), nil
}

// UpdateProfile waits out the simulated latency and reports success with no
// profile, since nothing was written.
func (s *fixtureSource) UpdateProfile(ctx context.Context, _ domain.UpdateProfileRequest) (*domain.Profile, error) {
	timer := time.NewTimer(s.latency)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
		return nil, nil
	}
}

func (s *fixtureSource) GetMeals(context.Context, string) ([]domain.Meal, error) {
	return fixtures.Meals(), nil
}

func (s *fixtureSource) SaveMeal(_ context.Context, req domain.SaveMealRequest) (*domain.SavedMeal, error) {
	if req.Analysis == nil {
		return nil, domain.ErrMealAnalysisMissing
	}
	return &domain.SavedMeal{
		ID:       uuid.NewString(),
		MealType: req.MealType,
		Score:    req.Analysis.Score,
	}, nil
}

func (s *fixtureSource) GetPlan(context.Context) (domain.PlanResult, error) {
	return domain.PlanResult{Plan: fixtures.Plan(), HasPlan: true}, nil
}

func (s *fixtureSource) CreatePlan(_ context.Context, req domain.CreatePlanRequest) (*domain.CreatedPlan, error) {
	if len(req.Templates) == 0 {
		return nil, domain.ErrPlanTemplateEmpty
	}
	src := req.Source
	if src == "" {
		src = domain.DefaultPlanSource
	}
	return &domain.CreatedPlan{ID: uuid.NewString(), Name: req.Name, Source: src}, nil
}

func (s *fixtureSource) GetDailyProgress(context.Context, string) (*domain.DailyStats, error) {
	return fixtures.DailyStats(), nil
}

func (s *fixtureSource) GetWeeklyProgress(context.Context) ([]domain.WeeklyDataPoint, error) {
	return fixtures.WeeklyData(), nil
}
