package access

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/tanmald/plate-check-mvp/domain"
	"github.com/tanmald/plate-check-mvp/internal/utils/localstore"
	"github.com/tanmald/plate-check-mvp/pkg/fixtures"
	"github.com/tanmald/plate-check-mvp/pkg/session"
	"github.com/tanmald/plate-check-mvp/pkg/source"
)

type fakeProvider struct {
	mu        sync.Mutex
	identity  *domain.Identity
	listeners []session.Listener
}

func (f *fakeProvider) Identity() *domain.Identity {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.identity
}

func (f *fakeProvider) Subscribe(l session.Listener) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listeners = append(f.listeners, l)
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.listeners = nil
	}
}

func (f *fakeProvider) emit(event domain.AuthEvent) {
	f.mu.Lock()
	ls := append([]session.Listener(nil), f.listeners...)
	f.mu.Unlock()
	for _, l := range ls {
		l(event, nil)
	}
}

// Sunday 2026-01-11, 23:30 in UTC is already Monday in Asia/Jakarta.
var fixedNow = time.Date(2026, 1, 11, 23, 30, 0, 0, time.UTC)

func newTestAccess(t *testing.T, identity *domain.Identity, loc *time.Location) (*Access, *fakeProvider) {
	provider := &fakeProvider{identity: identity}
	resolver := source.NewResolver(nil, nil, nil, nil, zaptest.NewLogger(t), source.WithFixtureLatency(time.Millisecond))
	a := NewAccess(provider, resolver, zaptest.NewLogger(t), loc, WithClock(func() time.Time { return fixedNow }))
	t.Cleanup(a.Close)
	return a, provider
}

func testIdentity() *domain.Identity {
	identity := fixtures.Identity(fixtures.TestUserEmail, fixedNow)
	return &identity
}

func TestQueryKey_String(t *testing.T) {
	assert.Equal(t, "meals:u1:2026-01-11", QueryKey{Kind: KeyMeals, UserID: "u1", Date: "2026-01-11"}.String())
	assert.Equal(t, "nutrition-plan:u1", QueryKey{Kind: KeyNutritionPlan, UserID: "u1"}.String())
	assert.Equal(t, "profile:", QueryKey{Kind: KeyProfile}.String())
}

func TestAccess_TodayUsesLocation(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*3600)

	a, _ := newTestAccess(t, nil, time.UTC)
	assert.Equal(t, "2026-01-11", a.Today())

	b, _ := newTestAccess(t, nil, jakarta)
	assert.Equal(t, "2026-01-12", b.Today())
}

func TestAccess_KeyFollowsIdentity(t *testing.T) {
	a, provider := newTestAccess(t, nil, time.UTC)
	assert.Equal(t, "", a.Key(KeyMeals, "2026-01-11").UserID)

	provider.identity = testIdentity()
	assert.Equal(t, fixtures.TestUserID, a.Key(KeyMeals, "2026-01-11").UserID)
}

func TestAccess_TodayMealsForTestIdentity(t *testing.T) {
	a, _ := newTestAccess(t, testIdentity(), time.UTC)

	meals, err := a.GetTodayMeals(context.Background())

	require.NoError(t, err)
	assert.Len(t, meals, 3)
}

func TestAccess_GetMealsRejectsBadDate(t *testing.T) {
	a, _ := newTestAccess(t, testIdentity(), time.UTC)

	_, err := a.GetMeals(context.Background(), "11/01/2026")
	assert.ErrorIs(t, err, domain.ErrInvalidDate)
}

func TestAccess_CreatePlanInvalidatesPlan(t *testing.T) {
	a, _ := newTestAccess(t, testIdentity(), time.UTC)
	before := a.Generation(KeyNutritionPlan)

	_, err := a.CreatePlan(context.Background(), fixtures.Plan().ToRequest())

	require.NoError(t, err)
	assert.Equal(t, before+1, a.Generation(KeyNutritionPlan))
	assert.Equal(t, uint64(0), a.Generation(KeyMeals))
}

func TestAccess_CreatePlanWithoutIdentity(t *testing.T) {
	a, _ := newTestAccess(t, nil, time.UTC)

	_, err := a.CreatePlan(context.Background(), fixtures.Plan().ToRequest())

	assert.EqualError(t, err, "User not authenticated")
	assert.Equal(t, uint64(0), a.Generation(KeyNutritionPlan))
}

func TestAccess_CreatePlanValidates(t *testing.T) {
	a, _ := newTestAccess(t, testIdentity(), time.UTC)

	_, err := a.CreatePlan(context.Background(), domain.CreatePlanRequest{Name: "Empty"})

	var verr validator.ValidationErrors
	assert.ErrorAs(t, err, &verr)
}

func TestAccess_SaveMealInvalidatesReads(t *testing.T) {
	a, _ := newTestAccess(t, testIdentity(), time.UTC)
	analysis := fixtures.MealResult()

	saved, err := a.SaveMeal(context.Background(), domain.SaveMealRequest{MealType: domain.MealTypeLunch, Analysis: &analysis})

	require.NoError(t, err)
	assert.Equal(t, 78, saved.Score)
	assert.Equal(t, uint64(1), a.Generation(KeyMeals))
	assert.Equal(t, uint64(1), a.Generation(KeyDailyProgress))
	assert.Equal(t, uint64(1), a.Generation(KeyWeeklyProgress))
}

func TestAccess_UpdateProfileWithoutIdentity(t *testing.T) {
	a, _ := newTestAccess(t, nil, time.UTC)

	_, err := a.UpdateProfile(context.Background(), domain.UpdateProfileRequest{FullName: "Sarah"})
	assert.ErrorIs(t, err, domain.ErrNoIdentity)
}

func TestAccess_SessionEventsInvalidate(t *testing.T) {
	a, provider := newTestAccess(t, nil, time.UTC)

	provider.emit(domain.AuthEventSignedIn)
	assert.Equal(t, uint64(1), a.Generation(KeyProfile))
	assert.Equal(t, uint64(1), a.Generation(KeyWeeklyProgress))

	provider.emit(domain.AuthEventTokenRefreshed)
	assert.Equal(t, uint64(1), a.Generation(KeyProfile))

	a.Close()
	provider.emit(domain.AuthEventSignedOut)
	assert.Equal(t, uint64(1), a.Generation(KeyProfile))
}

func TestAccess_MockSignOutLeavesNoIdentity(t *testing.T) {
	ctx := context.Background()
	provider := session.NewProvider(session.NewDisabledBackend(), localstore.NewMemory(), "http://localhost:3000", zaptest.NewLogger(t))
	require.NoError(t, provider.Initialize(ctx))
	t.Cleanup(provider.Close)

	resolver := source.NewResolver(nil, nil, nil, nil, zaptest.NewLogger(t), source.WithFixtureLatency(time.Millisecond))
	a := NewAccess(provider, resolver, zaptest.NewLogger(t), time.UTC, WithClock(func() time.Time { return fixedNow }))
	t.Cleanup(a.Close)

	_, err := provider.SignIn(ctx, fixtures.TestUserEmail, "whatever")
	require.NoError(t, err)

	profile, err := a.GetProfile(ctx)
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, fixtures.TestUserID, profile.ID)

	before := a.Generation(KeyProfile)
	require.NoError(t, provider.SignOut(ctx))
	assert.Greater(t, a.Generation(KeyProfile), before)
	assert.Nil(t, provider.Identity())

	profile, err = a.GetProfile(ctx)
	require.NoError(t, err)
	assert.Nil(t, profile)

	meals, err := a.GetTodayMeals(ctx)
	require.NoError(t, err)
	assert.Empty(t, meals)

	plan, err := a.GetPlan(ctx)
	require.NoError(t, err)
	assert.False(t, plan.HasPlan)
	assert.Nil(t, plan.Plan)

	result := fixtures.MealResult()
	_, err = a.SaveMeal(ctx, domain.SaveMealRequest{MealType: domain.MealTypeLunch, Analysis: &result})
	assert.ErrorIs(t, err, domain.ErrNoIdentity)
}
