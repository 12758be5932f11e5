package domain

import (
	"errors"
)

var (
	MessageSuccessGetPlan    = "plan retrieved successfully"
	MessageSuccessCreatePlan = "plan created successfully"

	MessageFailedGetPlan    = "failed to retrieve plan"
	MessageFailedCreatePlan = "failed to create plan"

	ErrPlanNotFound         = errors.New("plan not found")
	ErrCreatePlanFailed     = errors.New("failed to create plan")
	ErrPlanTemplateEmpty    = errors.New("plan has no meal templates")
	ErrPlanNotAuthenticated = errors.New("User not authenticated")
)

const (
	DefaultPlanSource = "Uploaded Plan"
	DefaultMealIcon   = "🍽️"
	PlanDateLayout    = "Jan 2, 2006"
)

var mealIcons = map[string]string{
	MealTypeBreakfast: "🌅",
	MealTypeLunch:     "☀️",
	MealTypeDinner:    "🌙",
	MealTypeSnack:     "🍎",
}

// MealIcon returns the glyph shown next to a meal category.
func MealIcon(mealType string) string {
	if icon, ok := mealIcons[mealType]; ok {
		return icon
	}
	return DefaultMealIcon
}

type (
	MealTemplate struct {
		ID            string   `json:"id"`
		Type          string   `json:"type"`
		Icon          string   `json:"icon"`
		Name          string   `json:"name"`
		RequiredFoods []string `json:"requiredFoods"`
		AllowedFoods  []string `json:"allowedFoods"`
		Calories      string   `json:"calories"`
		Protein       string   `json:"protein"`
	}

	NutritionPlan struct {
		Name       string         `json:"name"`
		UploadedAt string         `json:"uploadedAt"`
		Source     string         `json:"source"`
		Templates  []MealTemplate `json:"templates"`
	}

	PlanResult struct {
		Plan    *NutritionPlan `json:"plan"`
		HasPlan bool           `json:"hasPlan"`
	}

	PlanTemplateRequest struct {
		Type          string   `json:"type" validate:"required,oneof=breakfast lunch dinner snack"`
		Name          string   `json:"name" validate:"required"`
		RequiredFoods []string `json:"requiredFoods"`
		AllowedFoods  []string `json:"allowedFoods"`
		Calories      string   `json:"calories"`
		Protein       string   `json:"protein"`
	}

	CreatePlanRequest struct {
		Name      string                `json:"name" validate:"required"`
		Source    string                `json:"source"`
		Templates []PlanTemplateRequest `json:"templates" validate:"required,min=1,dive"`
	}

	CreatedPlan struct {
		ID     string `json:"id"`
		Name   string `json:"name"`
		Source string `json:"source"`
	}
)

// ToRequest converts a displayed plan back into the shape CreatePlan accepts.
func (p NutritionPlan) ToRequest() CreatePlanRequest {
	req := CreatePlanRequest{
		Name:      p.Name,
		Source:    p.Source,
		Templates: make([]PlanTemplateRequest, 0, len(p.Templates)),
	}
	for _, t := range p.Templates {
		req.Templates = append(req.Templates, PlanTemplateRequest{
			Type:          t.Type,
			Name:          t.Name,
			RequiredFoods: t.RequiredFoods,
			AllowedFoods:  t.AllowedFoods,
			Calories:      t.Calories,
			Protein:       t.Protein,
		})
	}
	return req
}
