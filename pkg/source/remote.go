package source

import (
	"context"

	"go.uber.org/zap"

	"github.com/tanmald/plate-check-mvp/domain"
	"github.com/tanmald/plate-check-mvp/pkg/meal"
	"github.com/tanmald/plate-check-mvp/pkg/plan"
	"github.com/tanmald/plate-check-mvp/pkg/profile"
	"github.com/tanmald/plate-check-mvp/pkg/progress"
)

// remoteSource serves a real identity from the backend tables.
type remoteSource struct {
	identity        domain.Identity
	profileService  profile.ProfileService
	mealService     meal.MealService
	planService     plan.PlanService
	progressService progress.ProgressService
	log             *zap.Logger
}

func (s *remoteSource) Kind() Kind { return KindRemote }

func (s *remoteSource) GetProfile(ctx context.Context) (*domain.Profile, error) {
	return s.profileService.GetProfile(ctx, s.identity.ID)
}

func (s *remoteSource) UpdateProfile(ctx context.Context, req domain.UpdateProfileRequest) (*domain.Profile, error) {
	return s.profileService.UpdateProfile(ctx, s.identity, req)
}

// GetMeals returns the full meal history; date only scopes the cache key.
func (s *remoteSource) GetMeals(ctx context.Context, date string) ([]domain.Meal, error) {
	s.log.Debug("fetching meals", zap.String("date", date))
	return s.mealService.GetMeals(ctx, s.identity.ID)
}

func (s *remoteSource) SaveMeal(ctx context.Context, req domain.SaveMealRequest) (*domain.SavedMeal, error) {
	return s.mealService.SaveMeal(ctx, s.identity.ID, req)
}

func (s *remoteSource) GetPlan(ctx context.Context) (domain.PlanResult, error) {
	return s.planService.GetPlan(ctx, s.identity.ID)
}

func (s *remoteSource) CreatePlan(ctx context.Context, req domain.CreatePlanRequest) (*domain.CreatedPlan, error) {
	return s.planService.CreatePlan(ctx, s.identity.ID, req)
}

func (s *remoteSource) GetDailyProgress(ctx context.Context, date string) (*domain.DailyStats, error) {
	return s.progressService.GetDailyProgress(ctx, s.identity.ID, date)
}

func (s *remoteSource) GetWeeklyProgress(ctx context.Context) ([]domain.WeeklyDataPoint, error) {
	return s.progressService.GetWeeklyProgress(ctx, s.identity.ID)
}
