package plan

import (
	"context"
	"github.com/tanmald/plate-check-mvp/entities"
	"gorm.io/gorm"
)

type (
	PlanRepository interface {
		// GetLatestPlanByUser returns gorm.ErrRecordNotFound when the user
		// has no plan.
		GetLatestPlanByUser(ctx context.Context, userID string) (*entities.NutritionPlan, error)
		GetTemplatesByPlan(ctx context.Context, planID string) ([]*entities.MealTemplate, error)
		CreatePlanWithTemplates(ctx context.Context, plan *entities.NutritionPlan, templates []*entities.MealTemplate) error
	}

	planRepository struct {
		db *gorm.DB
	}
)

func NewPlanRepository(db *gorm.DB) PlanRepository {
	return &planRepository{
		db: db,
	}
}

func (r *planRepository) GetLatestPlanByUser(ctx context.Context, userID string) (*entities.NutritionPlan, error) {
	var plan entities.NutritionPlan
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(1).
		First(&plan).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *planRepository) GetTemplatesByPlan(ctx context.Context, planID string) ([]*entities.MealTemplate, error) {
	var templates []*entities.MealTemplate
	if err := r.db.WithContext(ctx).
		Where("plan_id = ?", planID).
		Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

func (r *planRepository) CreatePlanWithTemplates(ctx context.Context, plan *entities.NutritionPlan, templates []*entities.MealTemplate) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Templates").Create(plan).Error; err != nil {
			return err
		}
		for _, t := range templates {
			t.PlanID = plan.ID
		}
		if len(templates) == 0 {
			return nil
		}
		return tx.Create(&templates).Error
	})
}
