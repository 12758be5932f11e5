package plan

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"

	"github.com/tanmald/plate-check-mvp/domain"
	"github.com/tanmald/plate-check-mvp/entities"
	"github.com/tanmald/plate-check-mvp/pkg/fixtures"
)

type fakePlanRepository struct {
	plans     []*entities.NutritionPlan
	templates map[uuid.UUID][]*entities.MealTemplate
	getErr    error
	createErr error
}

func newFakePlanRepository() *fakePlanRepository {
	return &fakePlanRepository{templates: map[uuid.UUID][]*entities.MealTemplate{}}
}

func (f *fakePlanRepository) GetLatestPlanByUser(_ context.Context, userID string) (*entities.NutritionPlan, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	var latest *entities.NutritionPlan
	for _, p := range f.plans {
		if p.UserID.String() == userID && (latest == nil || p.CreatedAt.After(latest.CreatedAt)) {
			latest = p
		}
	}
	if latest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return latest, nil
}

func (f *fakePlanRepository) GetTemplatesByPlan(_ context.Context, planID string) ([]*entities.MealTemplate, error) {
	return f.templates[uuid.MustParse(planID)], nil
}

func (f *fakePlanRepository) CreatePlanWithTemplates(_ context.Context, plan *entities.NutritionPlan, templates []*entities.MealTemplate) error {
	if f.createErr != nil {
		return f.createErr
	}
	plan.CreatedAt = time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC).Add(time.Duration(len(f.plans)) * time.Hour)
	for _, t := range templates {
		t.PlanID = plan.ID
	}
	f.plans = append(f.plans, plan)
	f.templates[plan.ID] = templates
	return nil
}

func TestGetPlan_NoPlan(t *testing.T) {
	svc := NewPlanService(newFakePlanRepository(), zaptest.NewLogger(t), time.UTC)

	result, err := svc.GetPlan(context.Background(), uuid.NewString())

	require.NoError(t, err)
	assert.False(t, result.HasPlan)
	assert.Nil(t, result.Plan)
}

func TestGetPlan_OtherErrorsSurface(t *testing.T) {
	repo := newFakePlanRepository()
	repo.getErr = errors.New("permission denied")
	svc := NewPlanService(repo, zaptest.NewLogger(t), time.UTC)

	_, err := svc.GetPlan(context.Background(), uuid.NewString())

	assert.EqualError(t, err, "permission denied")
}

func TestCreateThenGetPlan_RoundTrip(t *testing.T) {
	repo := newFakePlanRepository()
	svc := NewPlanService(repo, zaptest.NewLogger(t), time.UTC)
	userID := uuid.NewString()

	req := fixtures.Plan().ToRequest()
	created, err := svc.CreatePlan(context.Background(), userID, req)
	require.NoError(t, err)
	assert.Equal(t, "Weight Management Plan", created.Name)

	tmpl := repo.templates[uuid.MustParse(created.ID)][0]
	assert.Equal(t, 350, *tmpl.TargetCaloriesMin)
	assert.Equal(t, 450, *tmpl.TargetCaloriesMax)
	assert.Equal(t, 20, *tmpl.TargetProteinMin)
	assert.Equal(t, 30, *tmpl.TargetProteinMax)

	result, err := svc.GetPlan(context.Background(), userID)
	require.NoError(t, err)
	require.True(t, result.HasPlan)
	assert.Equal(t, "Dr. Smith Nutrition Clinic", result.Plan.Source)
	assert.Equal(t, "Jan 5, 2026", result.Plan.UploadedAt)

	want := fixtures.Plan().Templates
	require.Len(t, result.Plan.Templates, len(want))
	for i, got := range result.Plan.Templates {
		assert.Equal(t, want[i].Type, got.Type)
		assert.Equal(t, want[i].Icon, got.Icon)
		assert.Equal(t, want[i].Name, got.Name)
		assert.Equal(t, want[i].Calories, got.Calories)
		assert.Equal(t, want[i].Protein, got.Protein)
		assert.Equal(t, want[i].RequiredFoods, got.RequiredFoods)
	}
}

func TestGetPlan_MostRecentWins(t *testing.T) {
	repo := newFakePlanRepository()
	svc := NewPlanService(repo, zaptest.NewLogger(t), time.UTC)
	userID := uuid.NewString()

	_, err := svc.CreatePlan(context.Background(), userID, domain.CreatePlanRequest{Name: "Old"})
	require.NoError(t, err)
	_, err = svc.CreatePlan(context.Background(), userID, domain.CreatePlanRequest{Name: "New"})
	require.NoError(t, err)

	result, err := svc.GetPlan(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "New", result.Plan.Name)
	assert.Equal(t, domain.DefaultPlanSource, result.Plan.Source)
}

func TestCreatePlan_SourceDefaults(t *testing.T) {
	svc := NewPlanService(newFakePlanRepository(), zaptest.NewLogger(t), time.UTC)
	userID := uuid.NewString()

	created, err := svc.CreatePlan(context.Background(), userID, domain.CreatePlanRequest{Name: "Mine"})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultPlanSource, created.Source)

	created, err = svc.CreatePlan(context.Background(), userID, domain.CreatePlanRequest{Name: "Clinic", Source: "Dr. Smith Nutrition Clinic"})
	require.NoError(t, err)
	assert.Equal(t, "Dr. Smith Nutrition Clinic", created.Source)
}

func TestCreatePlan_Failure(t *testing.T) {
	repo := newFakePlanRepository()
	repo.createErr = errors.New("insert failed")
	svc := NewPlanService(repo, zaptest.NewLogger(t), time.UTC)

	_, err := svc.CreatePlan(context.Background(), uuid.NewString(), domain.CreatePlanRequest{Name: "x"})

	assert.ErrorIs(t, err, domain.ErrCreatePlanFailed)
}

func TestToMealTemplate_Defaults(t *testing.T) {
	tmpl := ToMealTemplate(&entities.MealTemplate{ID: uuid.New(), MealType: "brunch", TemplateName: "Brunch"})

	assert.Equal(t, "🍽️", tmpl.Icon)
	assert.Equal(t, []string{}, tmpl.RequiredFoods)
	assert.Equal(t, []string{}, tmpl.AllowedFoods)
	assert.Equal(t, "0-0", tmpl.Calories)
	assert.Equal(t, "0-0g", tmpl.Protein)
}

func TestToTemplateRow_UnparsableBoundIsZero(t *testing.T) {
	row := ToTemplateRow(domain.PlanTemplateRequest{Type: "snack", Name: "Snacks", Calories: "about-200", Protein: "g"})

	assert.Equal(t, 0, *row.TargetCaloriesMin)
	assert.Equal(t, 200, *row.TargetCaloriesMax)
	assert.Equal(t, 0, *row.TargetProteinMin)
	assert.Equal(t, 0, *row.TargetProteinMax)
}
