package screen

import (
	"context"
	"github.com/tanmald/plate-check-mvp/domain"
	"github.com/tanmald/plate-check-mvp/pkg/progress"
	"go.uber.org/zap"
	"strings"
	"time"
)

type (
	// DataReader is the slice of the access layer the screens read from.
	DataReader interface {
		GetProfile(ctx context.Context) (*domain.Profile, error)
		GetTodayMeals(ctx context.Context) ([]domain.Meal, error)
		GetTodayProgress(ctx context.Context) (*domain.DailyStats, error)
		GetWeeklyProgress(ctx context.Context) ([]domain.WeeklyDataPoint, error)
		GetPlan(ctx context.Context) (domain.PlanResult, error)
	}

	IdentityReader interface {
		Identity() *domain.Identity
	}

	ScreenService interface {
		Home(ctx context.Context) (*domain.HomeScreen, error)
		Progress(ctx context.Context) (*domain.ProgressScreen, error)
		Settings(ctx context.Context) (*domain.SettingsScreen, error)
	}

	screenService struct {
		data     DataReader
		identity IdentityReader
		log      *zap.Logger
		loc      *time.Location
		now      func() time.Time
	}
)

func NewScreenService(data DataReader, identity IdentityReader, log *zap.Logger, loc *time.Location) ScreenService {
	if loc == nil {
		loc = time.Local
	}
	return &screenService{
		data:     data,
		identity: identity,
		log:      log,
		loc:      loc,
		now:      time.Now,
	}
}

func (s *screenService) Home(ctx context.Context) (*domain.HomeScreen, error) {
	profile := s.profile(ctx)

	stats, err := s.data.GetTodayProgress(ctx)
	if err != nil {
		return nil, err
	}
	meals, err := s.data.GetTodayMeals(ctx)
	if err != nil {
		return nil, err
	}
	plan, err := s.data.GetPlan(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.HomeScreen{
		Profile:    profile,
		Stats:      stats,
		TodayMeals: meals,
		HasPlan:    plan.HasPlan,
		Greeting:   Greeting(s.now().In(s.loc)),
		Name:       DisplayName(profile, s.identity.Identity()),
	}, nil
}

func (s *screenService) Progress(ctx context.Context) (*domain.ProgressScreen, error) {
	stats, err := s.data.GetTodayProgress(ctx)
	if err != nil {
		return nil, err
	}
	meals, err := s.data.GetTodayMeals(ctx)
	if err != nil {
		return nil, err
	}
	weekly, err := s.data.GetWeeklyProgress(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.ProgressScreen{
		Stats:             stats,
		TodayMeals:        meals,
		PendingMealTypes:  PendingMealTypes(meals),
		Weekly:            weekly,
		SeriesAverage:     progress.SeriesAverage(weekly),
		OnPlanDays:        progress.OnPlanDays(weekly),
		OffPlanPercentage: progress.OffPlanPercentage(weekly),
	}, nil
}

func (s *screenService) Settings(ctx context.Context) (*domain.SettingsScreen, error) {
	plan, err := s.data.GetPlan(ctx)
	if err != nil {
		return nil, err
	}

	res := &domain.SettingsScreen{
		Profile:  s.profile(ctx),
		Identity: s.identity.Identity(),
		HasPlan:  plan.HasPlan,
	}
	if plan.Plan != nil {
		res.PlanName = plan.Plan.Name
	}
	return res, nil
}

// profile never fails a screen; a missing row just shows the fallbacks.
func (s *screenService) profile(ctx context.Context) *domain.Profile {
	p, err := s.data.GetProfile(ctx)
	if err != nil {
		s.log.Warn("screen without profile", zap.Error(err))
		return nil
	}
	return p
}

func Greeting(t time.Time) string {
	switch h := t.Hour(); {
	case h < 12:
		return "Good morning"
	case h < 18:
		return "Good afternoon"
	default:
		return "Good evening"
	}
}

// DisplayName picks the first name of the profile, then the identity's
// display name, then the local part of the email.
func DisplayName(profile *domain.Profile, identity *domain.Identity) string {
	if profile != nil && profile.FullName != nil {
		if fields := strings.Fields(*profile.FullName); len(fields) > 0 {
			return fields[0]
		}
	}
	if identity == nil {
		return ""
	}
	if fields := strings.Fields(identity.DisplayName); len(fields) > 0 {
		return fields[0]
	}
	local, _, _ := strings.Cut(identity.Email, "@")
	return local
}

// PendingMealTypes lists the categories with nothing logged yet, in the
// order of the day.
func PendingMealTypes(meals []domain.Meal) []string {
	logged := make(map[string]bool, len(meals))
	for _, m := range meals {
		logged[m.Type] = true
	}
	pending := make([]string, 0, len(domain.MealTypes))
	for _, t := range domain.MealTypes {
		if !logged[t] {
			pending = append(pending, t)
		}
	}
	return pending
}
