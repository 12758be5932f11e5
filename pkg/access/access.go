// Package access is what screens and handlers read and write through. It
// resolves the current identity to a data source on every call and keeps
// per-kind generations so cached reads can be invalidated.
package access

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/tanmald/plate-check-mvp/domain"
	"github.com/tanmald/plate-check-mvp/internal/utils"
	"github.com/tanmald/plate-check-mvp/pkg/session"
	"github.com/tanmald/plate-check-mvp/pkg/source"
)

type (
	IdentityProvider interface {
		Identity() *domain.Identity
		Subscribe(listener session.Listener) (unsubscribe func())
	}

	Access struct {
		provider    IdentityProvider
		resolver    *source.Resolver
		log         *zap.Logger
		loc         *time.Location
		now         func() time.Time
		mu          sync.RWMutex
		generations map[string]uint64
		unsubscribe func()
	}

	Option func(*Access)
)

func WithClock(now func() time.Time) Option {
	return func(a *Access) { a.now = now }
}

func NewAccess(provider IdentityProvider, resolver *source.Resolver, log *zap.Logger, loc *time.Location, opts ...Option) *Access {
	if loc == nil {
		loc = time.Local
	}
	a := &Access{
		provider:    provider,
		resolver:    resolver,
		log:         log,
		loc:         loc,
		now:         time.Now,
		generations: make(map[string]uint64),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.unsubscribe = provider.Subscribe(a.onSessionEvent)
	return a
}

// Close stops following session changes.
func (a *Access) Close() {
	a.unsubscribe()
}

// Today is the client-local calendar date.
func (a *Access) Today() string {
	return a.now().In(a.loc).Format(domain.DateLayout)
}

func (a *Access) Source() source.DataSource {
	return a.resolver.For(a.provider.Identity())
}

func (a *Access) Key(kind, date string) QueryKey {
	key := QueryKey{Kind: kind, Date: date}
	if identity := a.provider.Identity(); identity != nil {
		key.UserID = identity.ID
	}
	return key
}

func (a *Access) Generation(kind string) uint64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.generations[kind]
}

// Invalidate marks every cached read of the given kinds as stale.
func (a *Access) Invalidate(kinds ...string) {
	a.mu.Lock()
	for _, kind := range kinds {
		a.generations[kind]++
	}
	a.mu.Unlock()
}

func (a *Access) onSessionEvent(event domain.AuthEvent, _ *domain.Session) {
	if event == domain.AuthEventTokenRefreshed {
		return
	}
	a.log.Debug("session changed, invalidating reads", zap.String("event", string(event)))
	a.Invalidate(KeyProfile, KeyMeals, KeyNutritionPlan, KeyDailyProgress, KeyWeeklyProgress)
}

func (a *Access) GetProfile(ctx context.Context) (*domain.Profile, error) {
	return a.Source().GetProfile(ctx)
}

func (a *Access) UpdateProfile(ctx context.Context, req domain.UpdateProfileRequest) (*domain.Profile, error) {
	if err := utils.Validate.Struct(req); err != nil {
		return nil, err
	}
	p, err := a.Source().UpdateProfile(ctx, req)
	if err != nil {
		return nil, err
	}
	a.Invalidate(KeyProfile)
	return p, nil
}

func (a *Access) GetMeals(ctx context.Context, date string) ([]domain.Meal, error) {
	if _, err := time.Parse(domain.DateLayout, date); err != nil {
		return nil, domain.ErrInvalidDate
	}
	return a.Source().GetMeals(ctx, date)
}

func (a *Access) GetTodayMeals(ctx context.Context) ([]domain.Meal, error) {
	return a.GetMeals(ctx, a.Today())
}

func (a *Access) SaveMeal(ctx context.Context, req domain.SaveMealRequest) (*domain.SavedMeal, error) {
	if err := utils.Validate.Struct(req); err != nil {
		return nil, err
	}
	saved, err := a.Source().SaveMeal(ctx, req)
	if err != nil {
		return nil, err
	}
	a.Invalidate(KeyMeals, KeyDailyProgress, KeyWeeklyProgress)
	return saved, nil
}

func (a *Access) GetPlan(ctx context.Context) (domain.PlanResult, error) {
	return a.Source().GetPlan(ctx)
}

func (a *Access) CreatePlan(ctx context.Context, req domain.CreatePlanRequest) (*domain.CreatedPlan, error) {
	src := a.Source()
	if src.Kind() == source.KindAnonymous {
		return nil, domain.ErrPlanNotAuthenticated
	}
	if err := utils.Validate.Struct(req); err != nil {
		return nil, err
	}
	created, err := src.CreatePlan(ctx, req)
	if err != nil {
		return nil, err
	}
	a.Invalidate(KeyNutritionPlan)
	return created, nil
}

func (a *Access) GetDailyProgress(ctx context.Context, date string) (*domain.DailyStats, error) {
	return a.Source().GetDailyProgress(ctx, date)
}

func (a *Access) GetTodayProgress(ctx context.Context) (*domain.DailyStats, error) {
	return a.GetDailyProgress(ctx, a.Today())
}

func (a *Access) GetWeeklyProgress(ctx context.Context) ([]domain.WeeklyDataPoint, error) {
	return a.Source().GetWeeklyProgress(ctx)
}
