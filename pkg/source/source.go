// Package source picks where an identity's data comes from. The choice is
// made once per identity, so callers never branch on test identities.
package source

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/tanmald/plate-check-mvp/domain"
	"github.com/tanmald/plate-check-mvp/pkg/meal"
	"github.com/tanmald/plate-check-mvp/pkg/plan"
	"github.com/tanmald/plate-check-mvp/pkg/profile"
	"github.com/tanmald/plate-check-mvp/pkg/progress"
)

type Kind string

const (
	KindRemote    Kind = "remote"
	KindFixture   Kind = "fixture"
	KindAnonymous Kind = "anonymous"
)

type (
	DataSource interface {
		Kind() Kind
		GetProfile(ctx context.Context) (*domain.Profile, error)
		UpdateProfile(ctx context.Context, req domain.UpdateProfileRequest) (*domain.Profile, error)
		GetMeals(ctx context.Context, date string) ([]domain.Meal, error)
		SaveMeal(ctx context.Context, req domain.SaveMealRequest) (*domain.SavedMeal, error)
		GetPlan(ctx context.Context) (domain.PlanResult, error)
		CreatePlan(ctx context.Context, req domain.CreatePlanRequest) (*domain.CreatedPlan, error)
		GetDailyProgress(ctx context.Context, date string) (*domain.DailyStats, error)
		GetWeeklyProgress(ctx context.Context) ([]domain.WeeklyDataPoint, error)
	}

	Resolver struct {
		profileService  profile.ProfileService
		mealService     meal.MealService
		planService     plan.PlanService
		progressService progress.ProgressService
		log             *zap.Logger
		latency         time.Duration
		now             func() time.Time

		// profileStamp dates the fixture profile, fixed for the resolver's lifetime.
		profileStamp time.Time
	}

	Option func(*Resolver)
)

// FixtureLatency is how long a fixture profile update pretends to take.
const FixtureLatency = 500 * time.Millisecond

func WithFixtureLatency(d time.Duration) Option {
	return func(r *Resolver) { r.latency = d }
}

func WithClock(now func() time.Time) Option {
	return func(r *Resolver) { r.now = now }
}

func NewResolver(
	profileService profile.ProfileService,
	mealService meal.MealService,
	planService plan.PlanService,
	progressService progress.ProgressService,
	log *zap.Logger,
	opts ...Option,
) *Resolver {
	r := &Resolver{
		profileService:  profileService,
		mealService:     mealService,
		planService:     planService,
		progressService: progressService,
		log:             log,
		latency:         FixtureLatency,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.profileStamp = r.now()
	return r
}

// For returns the data source serving identity. A nil identity gets the
// anonymous source.
func (r *Resolver) For(identity *domain.Identity) DataSource {
	switch {
	case identity == nil:
		return anonymousSource{}
	case identity.IsTest():
		return &fixtureSource{latency: r.latency, profileStamp: r.profileStamp}
	default:
		return &remoteSource{
			identity:        *identity,
			profileService:  r.profileService,
			mealService:     r.mealService,
			planService:     r.planService,
			progressService: r.progressService,
			log:             r.log.With(zap.String("user_id", identity.ID)),
		}
	}
}
