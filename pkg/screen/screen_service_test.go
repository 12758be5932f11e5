package screen

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/tanmald/plate-check-mvp/domain"
	"github.com/tanmald/plate-check-mvp/pkg/fixtures"
)

type fakeReader struct {
	profile    *domain.Profile
	profileErr error
	meals      []domain.Meal
	stats      *domain.DailyStats
	weekly     []domain.WeeklyDataPoint
	weeklyErr  error
	plan       domain.PlanResult
}

func (f *fakeReader) GetProfile(context.Context) (*domain.Profile, error) {
	return f.profile, f.profileErr
}

func (f *fakeReader) GetTodayMeals(context.Context) ([]domain.Meal, error) {
	return f.meals, nil
}

func (f *fakeReader) GetTodayProgress(context.Context) (*domain.DailyStats, error) {
	return f.stats, nil
}

func (f *fakeReader) GetWeeklyProgress(context.Context) ([]domain.WeeklyDataPoint, error) {
	return f.weekly, f.weeklyErr
}

func (f *fakeReader) GetPlan(context.Context) (domain.PlanResult, error) {
	return f.plan, nil
}

type identityOf struct{ identity *domain.Identity }

func (i identityOf) Identity() *domain.Identity { return i.identity }

func fixtureReader() *fakeReader {
	return &fakeReader{
		profile: &domain.Profile{Email: "sarah@example.com"},
		meals:   fixtures.Meals(),
		stats:   fixtures.DailyStats(),
		weekly:  fixtures.WeeklyData(),
		plan:    domain.PlanResult{Plan: fixtures.Plan(), HasPlan: true},
	}
}

func newTestService(t *testing.T, reader DataReader, identity *domain.Identity, now time.Time) *screenService {
	svc := NewScreenService(reader, identityOf{identity}, zaptest.NewLogger(t), time.UTC).(*screenService)
	svc.now = func() time.Time { return now }
	return svc
}

func TestHome(t *testing.T) {
	identity := &domain.Identity{ID: "u1", Email: "sarah.connor@example.com"}
	svc := newTestService(t, fixtureReader(), identity, time.Date(2026, 1, 11, 14, 0, 0, 0, time.UTC))

	home, err := svc.Home(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Good afternoon", home.Greeting)
	assert.Equal(t, "sarah.connor", home.Name)
	assert.True(t, home.HasPlan)
	assert.Equal(t, 85, home.Stats.DailyScore)
	assert.Len(t, home.TodayMeals, 3)
}

func TestHome_ProfileErrorIsNotFatal(t *testing.T) {
	reader := fixtureReader()
	reader.profileErr = domain.ErrProfileNotFound
	svc := newTestService(t, reader, nil, time.Date(2026, 1, 11, 7, 0, 0, 0, time.UTC))

	home, err := svc.Home(context.Background())

	require.NoError(t, err)
	assert.Nil(t, home.Profile)
	assert.Equal(t, "Good morning", home.Greeting)
	assert.Empty(t, home.Name)
}

func TestProgress(t *testing.T) {
	svc := newTestService(t, fixtureReader(), nil, time.Now())

	screen, err := svc.Progress(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{domain.MealTypeDinner}, screen.PendingMealTypes)
	assert.Equal(t, 76, screen.SeriesAverage)
	assert.Equal(t, 6, screen.OnPlanDays)
	assert.Equal(t, 14, screen.OffPlanPercentage)
}

func TestProgress_SurfacesErrors(t *testing.T) {
	reader := fixtureReader()
	reader.weeklyErr = errors.New("timeout")
	svc := newTestService(t, reader, nil, time.Now())

	_, err := svc.Progress(context.Background())
	assert.EqualError(t, err, "timeout")
}

func TestSettings(t *testing.T) {
	identity := fixtures.Identity(fixtures.TestUserEmail, time.Now())
	svc := newTestService(t, fixtureReader(), &identity, time.Now())

	settings, err := svc.Settings(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Weight Management Plan", settings.PlanName)
	assert.Equal(t, fixtures.TestUserID, settings.Identity.ID)
}

func TestDisplayName(t *testing.T) {
	name := "Sarah Connor"
	assert.Equal(t, "Sarah", DisplayName(&domain.Profile{FullName: &name}, nil))
	assert.Equal(t, "Test", DisplayName(nil, &domain.Identity{DisplayName: "Test User"}))
	assert.Equal(t, "", DisplayName(nil, nil))
}

func TestGreeting(t *testing.T) {
	assert.Equal(t, "Good evening", Greeting(time.Date(2026, 1, 1, 18, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Good morning", Greeting(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))
}
