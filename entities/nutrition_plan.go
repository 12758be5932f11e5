package entities

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type NutritionPlan struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	PlanName   string    `json:"plan_name"`
	PlanSource *string   `json:"plan_source"`

	Templates []*MealTemplate `gorm:"foreignKey:PlanID"`
	Timestamp
}

func (NutritionPlan) TableName() string {
	return "nutrition_plans"
}

type MealTemplate struct {
	ID                uuid.UUID      `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	PlanID            uuid.UUID      `gorm:"type:uuid;index;not null" json:"plan_id"`
	MealType          string         `json:"meal_type"`
	TemplateName      string         `json:"template_name"`
	RequiredFoods     pq.StringArray `gorm:"type:text[]" json:"required_foods"`
	AllowedFoods      pq.StringArray `gorm:"type:text[]" json:"allowed_foods"`
	TargetCaloriesMin *int           `json:"target_calories_min"`
	TargetCaloriesMax *int           `json:"target_calories_max"`
	TargetProteinMin  *int           `json:"target_protein_min"`
	TargetProteinMax  *int           `json:"target_protein_max"`
}

func (MealTemplate) TableName() string {
	return "meal_templates"
}
