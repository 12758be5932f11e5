package plan

import (
	"context"
	"errors"
	"github.com/google/uuid"
	"github.com/tanmald/plate-check-mvp/domain"
	"github.com/tanmald/plate-check-mvp/entities"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"time"
)

type (
	PlanService interface {
		GetPlan(ctx context.Context, userID string) (domain.PlanResult, error)
		CreatePlan(ctx context.Context, userID string, req domain.CreatePlanRequest) (*domain.CreatedPlan, error)
	}

	planService struct {
		planRepository PlanRepository
		log            *zap.Logger
		loc            *time.Location
	}
)

func NewPlanService(planRepository PlanRepository, log *zap.Logger, loc *time.Location) PlanService {
	if loc == nil {
		loc = time.Local
	}
	return &planService{
		planRepository: planRepository,
		log:            log,
		loc:            loc,
	}
}

// GetPlan loads the most recent plan with its templates. No plan is a
// normal result, not an error.
func (s *planService) GetPlan(ctx context.Context, userID string) (domain.PlanResult, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return domain.PlanResult{}, domain.ErrParseUUID
	}

	row, err := s.planRepository.GetLatestPlanByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.PlanResult{HasPlan: false}, nil
		}
		return domain.PlanResult{}, err
	}

	templates, err := s.planRepository.GetTemplatesByPlan(ctx, row.ID.String())
	if err != nil {
		return domain.PlanResult{}, err
	}

	plan := ToNutritionPlan(row, templates, s.loc)
	return domain.PlanResult{Plan: &plan, HasPlan: true}, nil
}

// CreatePlan stores the plan and all its templates atomically. Range
// strings are parsed into bounds, an unreadable bound becomes 0.
func (s *planService) CreatePlan(ctx context.Context, userID string, req domain.CreatePlanRequest) (*domain.CreatedPlan, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	plan := &entities.NutritionPlan{
		ID:       uuid.New(),
		UserID:   userUUID,
		PlanName: req.Name,
	}
	if req.Source != "" {
		source := req.Source
		plan.PlanSource = &source
	}

	templates := make([]*entities.MealTemplate, 0, len(req.Templates))
	for _, t := range req.Templates {
		templates = append(templates, ToTemplateRow(t))
	}

	if err := s.planRepository.CreatePlanWithTemplates(ctx, plan, templates); err != nil {
		s.log.Error("failed to create plan", zap.String("user_id", userID), zap.Error(err))
		return nil, errors.Join(domain.ErrCreatePlanFailed, err)
	}

	s.log.Info("plan created", zap.String("plan_id", plan.ID.String()), zap.Int("templates", len(templates)))
	created := &domain.CreatedPlan{ID: plan.ID.String(), Name: plan.PlanName, Source: domain.DefaultPlanSource}
	if plan.PlanSource != nil {
		created.Source = *plan.PlanSource
	}
	return created, nil
}

func ToNutritionPlan(row *entities.NutritionPlan, templates []*entities.MealTemplate, loc *time.Location) domain.NutritionPlan {
	plan := domain.NutritionPlan{
		Name:       row.PlanName,
		UploadedAt: row.CreatedAt.In(loc).Format(domain.PlanDateLayout),
		Source:     domain.DefaultPlanSource,
		Templates:  make([]domain.MealTemplate, 0, len(templates)),
	}
	if row.PlanSource != nil && *row.PlanSource != "" {
		plan.Source = *row.PlanSource
	}
	for _, t := range templates {
		plan.Templates = append(plan.Templates, ToMealTemplate(t))
	}
	return plan
}

func ToMealTemplate(row *entities.MealTemplate) domain.MealTemplate {
	return domain.MealTemplate{
		ID:            row.ID.String(),
		Type:          row.MealType,
		Icon:          domain.MealIcon(row.MealType),
		Name:          row.TemplateName,
		RequiredFoods: orEmpty(row.RequiredFoods),
		AllowedFoods:  orEmpty(row.AllowedFoods),
		Calories:      domain.NewRange(row.TargetCaloriesMin, row.TargetCaloriesMax).String(),
		Protein:       domain.NewRange(row.TargetProteinMin, row.TargetProteinMax).Grams(),
	}
}

func ToTemplateRow(t domain.PlanTemplateRequest) *entities.MealTemplate {
	calMin, calMax := domain.ParseRange(t.Calories).Bounds()
	proMin, proMax := domain.ParseRange(t.Protein).Bounds()
	return &entities.MealTemplate{
		ID:                uuid.New(),
		MealType:          t.Type,
		TemplateName:      t.Name,
		RequiredFoods:     orEmpty(t.RequiredFoods),
		AllowedFoods:      orEmpty(t.AllowedFoods),
		TargetCaloriesMin: calMin,
		TargetCaloriesMax: calMax,
		TargetProteinMin:  proMin,
		TargetProteinMax:  proMax,
	}
}

func orEmpty(foods []string) []string {
	if foods == nil {
		return []string{}
	}
	return append([]string{}, foods...)
}
